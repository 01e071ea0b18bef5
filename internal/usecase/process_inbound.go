package usecase

import (
	"context"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/infra/queue"
)

// ProcessInbound adapta o payload da fila para o Execute. É o que o worker
// chama para cada entrega.
func (uc *IngestEmailUseCase) ProcessInbound(ctx context.Context, payload queue.InboundEmailPayload) (bool, string, error) {
	direction := entity.EmailDirection(payload.Direction)
	if direction != entity.DirectionSent {
		direction = entity.DirectionReceived
	}

	result, err := uc.Execute(ctx, IngestEmailInput{
		OwnerID:    payload.OwnerID,
		MessageID:  payload.MessageID,
		From:       payload.From,
		To:         payload.To,
		Subject:    payload.Subject,
		HTML:       payload.HTML,
		Text:       payload.Text,
		Timestamp:  payload.Timestamp,
		Direction:  direction,
		BusinessID: payload.BusinessID,
	})
	if err != nil {
		return false, "", err
	}
	return result.Matched, result.Heuristic, nil
}
