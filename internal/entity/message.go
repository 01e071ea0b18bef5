package entity

import "time"

// ChatMessage vive apenas no cache local (quinta coleção). Não entra na
// migração; é descartada junto com o purge.
type ChatMessage struct {
	ID         string    `json:"id"`
	BusinessID string    `json:"business_id"`
	Author     string    `json:"author"`
	Body       string    `json:"body"`
	SentAt     time.Time `json:"sent_at"`
}
