package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/anshmittal0811/Royal-Commerce/internal/notifier/domain"
	"github.com/anshmittal0811/Royal-Commerce/internal/notifier/notify"
)

// Notifier fans one payment notification out to email and, when a phone
// number is present, SMS. The channels are independent: a failed email
// never blocks the SMS and vice versa. Processing is at-least-once, so a
// redelivered message notifies the customer again.
type Notifier struct {
	email notify.EmailSender
	sms   notify.SMSSender
	log   *zap.Logger
}

func NewNotifier(email notify.EmailSender, sms notify.SMSSender, log *zap.Logger) *Notifier {
	return &Notifier{email: email, sms: sms, log: log}
}

// Handle decodes and dispatches one message. It only returns an error for
// undecodable payloads; delivery failures are logged and absorbed so the
// consumer keeps its offset moving.
func (n *Notifier) Handle(ctx context.Context, payload []byte) error {
	var msg domain.Notification
	if err := json.Unmarshal(payload, &msg); err != nil {
		return fmt.Errorf("decode notification: %w", err)
	}

	status := msg.Status()
	subject := fmt.Sprintf("Your order #%d is %s", msg.OrderID, status)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour order #%d is now %s.\nTotal: %.2f\nOrder date: %s\nDelivery address: %s\n",
		msg.UserName, msg.OrderID, status, msg.TotalAmount,
		msg.OrderDate.Format("2006-01-02 15:04"), msg.UserAddress,
	)

	if err := n.email.SendEmail(ctx, msg.UserEmail, subject, body); err != nil {
		n.log.Error("email notification failed",
			zap.Int64("order_id", msg.OrderID),
			zap.Error(err))
	}

	if msg.UserPhone == "" {
		return nil
	}

	sms := fmt.Sprintf("Order #%d %s. Total %.2f", msg.OrderID, status, msg.TotalAmount)
	if err := n.sms.SendSMS(ctx, msg.UserPhone, sms); err != nil {
		n.log.Error("sms notification failed",
			zap.Int64("order_id", msg.OrderID),
			zap.Error(err))
	}
	return nil
}
