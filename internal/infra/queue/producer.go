package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Eventos publicados pelo back-office. O worker de notificações consome e
// avisa o time comercial.
const (
	EventLeadCaptured    = "lead.captured"
	EventDealWon         = "deal.won"
	EventMessageReceived = "message.received"
)

type NotificationPayload struct {
	Event string `json:"event"`

	LeadID          string  `json:"lead_id,omitempty"`
	ClientName      string  `json:"client_name,omitempty"`
	ClientEmail     string  `json:"client_email,omitempty"`
	ClientCompany   string  `json:"client_company,omitempty"`
	ProductInterest string  `json:"product_interest,omitempty"`
	Quantity        int     `json:"quantity,omitempty"`
	FinalSalePrice  float64 `json:"final_sale_price,omitempty"`
	Salesperson     string  `json:"salesperson,omitempty"`

	MessageKind string `json:"message_kind,omitempty"`
	MessageFrom string `json:"message_from,omitempty"`
	Summary     string `json:"summary,omitempty"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}


func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishNotification(ctx context.Context, payload NotificationPayload) error {

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %v", err)
	}


	err = p.Ch.PublishWithContext(ctx,
		ExchangeName, // ex.backoffice
		RoutingKey,   // k.notification
		false,        // Mandatory
		false,        // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Mensagem salva no disco (segurança!)
		},
	)

	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %v", err)
	}

	return nil
}
