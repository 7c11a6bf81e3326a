package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Altair788/AdHub/internal/server/config"
	"github.com/Altair788/AdHub/internal/server/mail"
	"github.com/Altair788/AdHub/internal/shared/logger"
)

type recordingSender struct {
	sent []mail.Message
	err  error
}

func (s *recordingSender) Send(_ context.Context, msg mail.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func TestNotifier_SendActivation(t *testing.T) {
	sender := &recordingSender{}
	n := mail.NewNotifier(sender, "noreply@adhub.test", mail.NewTemplates())

	err := n.SendActivation(context.Background(), "bob@example.com", "https://adhub.test/users/email-confirm/tok")
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	require.Equal(t, "noreply@adhub.test", msg.From)
	require.Equal(t, "bob@example.com", msg.To)
	require.Contains(t, msg.Body, "/users/email-confirm/tok")
}

func TestNotifier_SendPasswordReset_SenderError(t *testing.T) {
	sender := &recordingSender{err: errors.New("boom")}
	n := mail.NewNotifier(sender, "noreply@adhub.test", mail.NewTemplates())

	err := n.SendPasswordReset(context.Background(), "bob@example.com", "link")
	require.Error(t, err)
}

func TestNewSender(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNop()

	s, err := mail.NewSender(ctx, config.MailConfig{Transport: "log"}, log)
	require.NoError(t, err)
	require.IsType(t, &mail.LogSender{}, s)
	require.NoError(t, s.Send(ctx, mail.Message{To: "a@b.c", Subject: "s", Body: "b"}))

	s, err = mail.NewSender(ctx, config.MailConfig{Transport: "SMTP", SMTP: config.SMTPConfig{Host: "localhost", Port: 25}}, log)
	require.NoError(t, err)
	require.IsType(t, &mail.SMTPSender{}, s)

	_, err = mail.NewSender(ctx, config.MailConfig{Transport: "pigeon"}, log)
	require.Error(t, err)
}
