package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type DocumentChunk struct {
	Id         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Domain     string          `gorm:"type:varchar(32);not null;index"`
	Source     string          `gorm:"type:varchar(255);not null"`
	Content    string          `gorm:"type:text"`
	Embedding  pgvector.Vector `gorm:"type:vector(1536)"` // text-embedding-3-small uses 1536 dimensions
	ChunkIndex int             `gorm:"default:0"` // 0-based index for ordering
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
