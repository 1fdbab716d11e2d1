package dto

// PublishIndexDocumentMessage travels over the indexing topic from the
// publisher to the consumer.
type PublishIndexDocumentMessage struct {
	Domain  string `json:"domain"`
	Source  string `json:"source"`
	Content string `json:"content"`
}
