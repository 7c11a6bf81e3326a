package mail

import (
	"context"

	"go.uber.org/zap"

	"github.com/Altair788/AdHub/internal/shared/logger"
)

// LogSender не отправляет письма, а пишет их в лог.
type LogSender struct {
	log *logger.HTTPLogger
}

func NewLogSender(log *logger.HTTPLogger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.log.Info("mail (log transport)",
		s.log.Email(msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}
