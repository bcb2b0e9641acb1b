package notify

import (
	"context"

	"go.uber.org/zap"
)

// Sender delivers a single message to one recipient.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogSender is a stand-in delivery channel that logs instead of sending.
// Swap in an SMTP or provider-backed Sender for real delivery.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a logging sender.
func NewLogSender(logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{logger: logger}
}

// Send logs the message and reports success.
func (s *LogSender) Send(_ context.Context, to, subject, _ string) error {
	s.logger.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
