package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"

	"hunian-marketplace/internal/config"
)

// Service sends transactional mail for message and broadcast events. Calls
// are made from background goroutines; a failed send never affects the API
// response that triggered it.
type Service interface {
	SendNewMessageEmail(ctx context.Context, toEmail, recipientName, senderName, preview string) error
	SendBroadcastEmail(ctx context.Context, toEmail, recipientName, developerName, title, preview string) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
	}
}

var bodyTemplate = template.Must(template.New("body").Parse(`
<div style="font-family: sans-serif; max-width: 560px; margin: 0 auto;">
	<h2>{{.Title}}</h2>
	<p>Halo {{.Name}},</p>
	<p>{{.Intro}}</p>
	<blockquote style="border-left: 3px solid #ccc; padding-left: 12px; color: #555;">{{.Preview}}</blockquote>
	<p><a href="{{.Link}}">Buka percakapan</a></p>
</div>`))

type bodyData struct {
	Title   string
	Name    string
	Intro   string
	Preview string
	Link    string
}

func (s *service) sendEmail(toEmail, subject string, data bodyData) error {
	var body bytes.Buffer
	if err := bodyTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render email body: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Hunian <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

func (s *service) SendNewMessageEmail(ctx context.Context, toEmail, recipientName, senderName, preview string) error {
	return s.sendEmail(toEmail, "Pesan Baru - Hunian", bodyData{
		Title:   "Pesan Baru",
		Name:    recipientName,
		Intro:   fmt.Sprintf("%s mengirim pesan baru untuk Anda.", senderName),
		Preview: preview,
		Link:    fmt.Sprintf("https://%s/messages", s.config.Domain),
	})
}

func (s *service) SendBroadcastEmail(ctx context.Context, toEmail, recipientName, developerName, title, preview string) error {
	subject := "Siaran Baru - Hunian"
	if title != "" {
		subject = fmt.Sprintf("%s - Hunian", title)
	}
	return s.sendEmail(toEmail, subject, bodyData{
		Title:   "Siaran Mitra Baru",
		Name:    recipientName,
		Intro:   fmt.Sprintf("%s mengirim siaran untuk kantor Anda.", developerName),
		Preview: preview,
		Link:    fmt.Sprintf("https://%s/messages", s.config.Domain),
	})
}
