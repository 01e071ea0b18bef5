package entity

import "time"

type EmailDirection string

const (
	DirectionSent     EmailDirection = "sent"
	DirectionReceived EmailDirection = "received"
)

// EmailRecord é imutável depois de criado. O ID vem do provedor (inbound)
// ou da resposta do envio (outbound) e é único por mensagem.
type EmailRecord struct {
	ID         string         `json:"id"`
	From       string         `json:"from"`
	To         string         `json:"to"`
	Subject    string         `json:"subject"`
	Text       string         `json:"text"`
	HTML       string         `json:"html,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
	Direction  EmailDirection `json:"direction"`
	BusinessID string         `json:"business_id,omitempty"`
}

// EmailThread é a sequência de e-mails de um negócio, ordenada por timestamp
// não-decrescente e sem IDs repetidos. Criada sob demanda, só cresce.
type EmailThread []EmailRecord

func (t EmailThread) Contains(emailID string) bool {
	for _, rec := range t {
		if rec.ID == emailID {
			return true
		}
	}
	return false
}
