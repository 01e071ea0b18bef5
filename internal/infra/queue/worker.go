package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/xavierca1/ligue-outreach/internal/infra/http/middleware"
)

// InboundProcessor é o contrato com o usecase de ingestão. Interface local
// para o worker não depender do pacote usecase.
type InboundProcessor interface {
	ProcessInbound(ctx context.Context, payload InboundEmailPayload) (matched bool, heuristic string, err error)
}

type Worker struct {
	Channel   *amqp.Channel
	Processor InboundProcessor
}

func NewWorker(ch *amqp.Channel, processor InboundProcessor) *Worker {
	return &Worker{
		Channel:   ch,
		Processor: processor,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload InboundEmailPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem podre. Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] E-mail recebido de %s (assunto: %q)", payload.From, payload.Subject)

			// Entrega é at-least-once; a mescla de thread é idempotente,
			// então redelivery do mesmo message_id é inofensiva.
			matched, heuristic, err := w.Processor.ProcessInbound(context.Background(), payload)
			if err != nil {
				log.Printf("❌ [WORKER] Erro na ingestão: %s", err)
				d.Nack(false, false)
				continue
			}

			middleware.RecordEmailIngested(payload.Direction, matched)
			if matched {
				middleware.RecordMatchHeuristic(heuristic)
				log.Printf("✅ [WORKER] E-mail %s resolvido via %s", payload.MessageID, heuristic)
			} else {
				log.Printf("✅ [WORKER] E-mail %s guardado sem match", payload.MessageID)
			}
			d.Ack(false)
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}
