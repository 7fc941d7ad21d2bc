package notify

import (
	"context"

	"go.uber.org/zap"
)

type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) error
}

// LogSMSSender stands in for a real SMS gateway: it records the message to
// the service log instead of delivering it.
type LogSMSSender struct {
	log *zap.Logger
}

func NewLogSMSSender(log *zap.Logger) *LogSMSSender {
	return &LogSMSSender{log: log}
}

func (s *LogSMSSender) SendSMS(_ context.Context, phone, message string) error {
	s.log.Info("sms sent",
		zap.String("phone", phone),
		zap.String("message", message))
	return nil
}
