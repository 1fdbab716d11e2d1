package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ai-customer-service-be/pkg/store"
)

// Chunk is a piece of a corpus file ready for embedding.
type Chunk struct {
	Domain     store.Domain
	Source     string // file name, not the full path
	Content    string
	ChunkIndex int
}

// LoadFile reads a single corpus document as plain text.
// Used for the preloaded static context (compliance documents).
func LoadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load document %s: %w", path, err)
	}
	return string(data), nil
}

// File is one corpus document before chunking.
type File struct {
	Domain  store.Domain
	Source  string // file name, not the full path
	Content string
}

// LoadDomainFiles walks the domain subdirectory of docsDir, loading
// every .txt and .md file. Files are visited in name order so repeated
// runs produce the same sequence.
func LoadDomainFiles(docsDir string, domain store.Domain) ([]File, error) {
	dir := filepath.Join(docsDir, string(domain))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".txt" && ext != ".md" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	files := make([]File, 0, len(names))
	for _, name := range names {
		content, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		files = append(files, File{Domain: domain, Source: name, Content: content})
	}

	return files, nil
}

// LoadDomainChunks loads a domain's files and splits each one into
// overlapping chunks.
func LoadDomainChunks(docsDir string, domain store.Domain, chunkSize, overlap int) ([]Chunk, error) {
	files, err := LoadDomainFiles(docsDir, domain)
	if err != nil {
		return nil, err
	}

	var chunks []Chunk
	for _, f := range files {
		for i, piece := range SplitText(f.Content, chunkSize, overlap) {
			chunks = append(chunks, Chunk{
				Domain:     domain,
				Source:     f.Source,
				Content:    piece,
				ChunkIndex: i,
			})
		}
	}

	return chunks, nil
}
