package mail

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/confexa/confexa-backoffice/internal/infra/queue"
)

func NewEmailSender(host string, port int, user, password, salesTeamAddress string) *EmailSender {
	return &EmailSender{
		Host:             host,
		Port:             port,
		User:             user,
		Password:         password,
		SalesTeamAddress: salesTeamAddress,
	}
}

// NotifyLeadCaptured avisa o comercial que caiu orçamento novo no funil.
func (s *EmailSender) NotifyLeadCaptured(payload queue.NotificationPayload) error {
	subject := fmt.Sprintf("Novo lead no funil: %s", payload.ClientName)
	data := LeadAlertData{
		ClientName:      payload.ClientName,
		ClientCompany:   payload.ClientCompany,
		ProductInterest: payload.ProductInterest,
		Quantity:        payload.Quantity,
	}
	return s.send(subject, "lead_alert.html", data)
}

func (s *EmailSender) NotifyDealWon(payload queue.NotificationPayload) error {
	subject := fmt.Sprintf("🏆 Venda fechada: %s", payload.ClientName)
	data := DealWonData{
		ClientName:     payload.ClientName,
		FinalSalePrice: payload.FinalSalePrice,
		Salesperson:    payload.Salesperson,
	}
	return s.send(subject, "deal_won.html", data)
}

func (s *EmailSender) NotifyMessageReceived(payload queue.NotificationPayload) error {
	subject := fmt.Sprintf("Mensagem do site (%s): %s", payload.MessageKind, payload.MessageFrom)
	data := MessageAlertData{
		Kind:    payload.MessageKind,
		From:    payload.MessageFrom,
		Summary: payload.Summary,
	}
	return s.send(subject, "message_alert.html", data)
}

func (s *EmailSender) send(subject, templateName string, data any) error {
	tmplPath := filepath.Join("templates", templateName)
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("erro ao ler template de email: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", "nao-responda@confexa.com.br")
	m.SetHeader("To", s.SalesTeamAddress)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
