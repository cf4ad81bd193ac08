package telegram

import (
	"context"

	"mail-telegram-notifier/internal/models"

	"github.com/sirupsen/logrus"
)

type Notifier struct {
	sender Sender
	log    logrus.FieldLogger
}

// NewNotifier creates a Notifier delivering through sender
func NewNotifier(sender Sender, log logrus.FieldLogger) *Notifier {
	return &Notifier{
		sender: sender,
		log:    log,
	}
}

// Notify formats the email and hands it to the sender. Failures are logged and returned.
func (n *Notifier) Notify(ctx context.Context, email models.Email) error {
	locallog := n.log.WithFields(logrus.Fields{
		"trace_id": email.TraceID,
		"uid":      email.UID,
	})

	if err := n.sender.SendMessage(ctx, Format(email)); err != nil {
		locallog.WithError(err).Error("Notification dispatch failed")
		return err
	}

	locallog.Info("Notification sent")
	return nil
}
