// Package mail отправляет служебные письма: подтверждение почты и сброс пароля.
//
// Транспорт выбирается конфигом: smtp, ses (Amazon SES v2) или log,
// который только пишет письмо в лог и нужен для локальной разработки.
package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/Altair788/AdHub/internal/server/config"
	"github.com/Altair788/AdHub/internal/shared/logger"
)

// Message: одно текстовое письмо.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Sender доставляет письмо получателю.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NewSender создаёт транспорт по cfg.Transport.
func NewSender(ctx context.Context, cfg config.MailConfig, log *logger.HTTPLogger) (Sender, error) {
	switch strings.ToLower(cfg.Transport) {
	case "smtp":
		return NewSMTPSender(cfg.SMTP), nil
	case "ses":
		return NewSESSender(ctx, cfg.SES)
	case "log", "":
		return NewLogSender(log), nil
	default:
		return nil, fmt.Errorf("mail: unknown transport %q", cfg.Transport)
	}
}

// Notifier собирает письма из шаблонов и отправляет их через Sender.
type Notifier struct {
	sender Sender
	from   string
	tpl    *Templates
}

func NewNotifier(sender Sender, from string, tpl *Templates) *Notifier {
	return &Notifier{sender: sender, from: from, tpl: tpl}
}

// SendActivation отправляет ссылку подтверждения почты.
func (n *Notifier) SendActivation(ctx context.Context, to, link string) error {
	subject, body, err := n.tpl.Render(TemplateActivation, map[string]any{
		"email": to,
		"link":  link,
	})
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, Message{From: n.from, To: to, Subject: subject, Body: body})
}

// SendPasswordReset отправляет ссылку сброса пароля.
func (n *Notifier) SendPasswordReset(ctx context.Context, to, link string) error {
	subject, body, err := n.tpl.Render(TemplatePasswordReset, map[string]any{
		"email": to,
		"link":  link,
	})
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, Message{From: n.from, To: to, Subject: subject, Body: body})
}
