package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"padelmania/internal/models"
)

// ContactSender delivers a message sent from the contact page.
type ContactSender interface {
	SendContact(ctx context.Context, req models.ContactRequest) error
}

var contactTemplate = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html lang="es">
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #1e2a4a;">Nueva consulta desde la web</h2>
		<p><strong>Nombre:</strong> {{.Name}}</p>
		<p><strong>Email:</strong> {{.Email}}</p>
		<p><strong>Asunto:</strong> {{.Subject}}</p>
		<p style="white-space: pre-line;">{{.Message}}</p>
	</div>
</body>
</html>`))

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// SMTPMailer sends contact messages to the shop inbox, with Reply-To set to
// the customer.
type SMTPMailer struct {
	cfg SMTPConfig
	log *zap.Logger
}

func NewSMTPMailer(cfg SMTPConfig, log *zap.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, log: log}
}

func (m *SMTPMailer) SendContact(ctx context.Context, req models.ContactRequest) error {
	msg, err := m.buildMessage(req)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}
	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	m.log.Info("📤 sending contact message", zap.String("to", m.cfg.To), zap.String("subject", req.Subject))
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send contact message: %w", err)
	}
	return nil
}

func (m *SMTPMailer) buildMessage(req models.ContactRequest) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(m.cfg.To); err != nil {
		return nil, fmt.Errorf("to address: %w", err)
	}
	if err := msg.ReplyTo(req.Email); err != nil {
		return nil, fmt.Errorf("reply-to address: %w", err)
	}
	msg.Subject("[Padelmania] " + req.Subject)

	var body bytes.Buffer
	if err := contactTemplate.Execute(&body, req); err != nil {
		return nil, fmt.Errorf("render contact message: %w", err)
	}
	msg.SetBodyString(mail.TypeTextHTML, body.String())
	msg.AddAlternativeString(mail.TypeTextPlain, fmt.Sprintf("%s <%s>\n\n%s", req.Name, req.Email, req.Message))
	return msg, nil
}

// LogMailer only logs contact messages. Used when SMTP is not configured.
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendContact(_ context.Context, req models.ContactRequest) error {
	m.log.Info("📧 contact message received (SMTP not configured)",
		zap.String("name", req.Name),
		zap.String("email", req.Email),
		zap.String("subject", req.Subject),
		zap.Int("length", len(req.Message)),
	)
	return nil
}
