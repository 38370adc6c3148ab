package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// SalesNotifier define o contrato de aviso ao time comercial (hoje email,
// amanhã o que for).
type SalesNotifier interface {
	NotifyLeadCaptured(payload NotificationPayload) error
	NotifyDealWon(payload NotificationPayload) error
	NotifyMessageReceived(payload NotificationPayload) error
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier SalesNotifier
}

func NewWorker(ch *amqp.Channel, notifier SalesNotifier) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
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
			log.Printf("📥 [WORKER] Mensagem Recebida do RabbitMQ")

			var payload NotificationPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem podre (malformada). Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			if err := w.processMessage(payload); err != nil {
				log.Printf("❌ [WORKER] Erro ao notificar (%s): %s", payload.Event, err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}

func (w *Worker) processMessage(payload NotificationPayload) error {
	switch payload.Event {
	case EventLeadCaptured:
		log.Printf("📇 [WORKER] Novo lead: %s (%s)", payload.ClientName, payload.ProductInterest)
		return w.Notifier.NotifyLeadCaptured(payload)

	case EventDealWon:
		log.Printf("🏆 [WORKER] Venda fechada: %s por R$ %.2f", payload.ClientName, payload.FinalSalePrice)
		return w.Notifier.NotifyDealWon(payload)

	case EventMessageReceived:
		log.Printf("✉️ [WORKER] Mensagem (%s) de %s", payload.MessageKind, payload.MessageFrom)
		return w.Notifier.NotifyMessageReceived(payload)

	default:
		log.Printf("⚠️ Evento desconhecido: %s. Apenas logando.", payload.Event)
		// ACK mesmo assim, não sabemos tratar e requeue não vai ajudar.
		return nil
	}
}
