package runner

import (
	"context"
	"fmt"
	"sync"

	"mail-telegram-notifier/internal/emailprocessor"
	imapclient "mail-telegram-notifier/internal/imap"
	"mail-telegram-notifier/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrConnectionFailed is the RunResult error reported when the mailbox cannot be opened.
const ErrConnectionFailed = "connection failed"

// Notifier dispatches one decoded email.
type Notifier interface {
	Notify(ctx context.Context, email models.Email) error
}

// ClientFactory returns a fresh, unconnected mailbox client.
type ClientFactory func() imapclient.Client

// Runner performs one collect-and-notify invocation at a time.
type Runner struct {
	creds     imapclient.Credentials
	senders   []string
	newClient ClientFactory
	notifier  Notifier
	log       logrus.FieldLogger

	mu sync.Mutex
}

// New creates a Runner for the given configuration
func New(cfg *models.Config, newClient ClientFactory, notifier Notifier, log logrus.FieldLogger) *Runner {
	return &Runner{
		creds: imapclient.Credentials{
			Host:     cfg.Mailbox.Host,
			Port:     cfg.Mailbox.Port,
			Login:    cfg.Mailbox.Login,
			Password: cfg.Mailbox.Password,
			Folder:   cfg.Mailbox.Folder,
		},
		senders:   cfg.Senders,
		newClient: newClient,
		notifier:  notifier,
		log:       log,
	}
}

// Run opens the mailbox, collects unseen mail from the allow-listed senders and dispatches one
// notification per email. Overlapping calls are serialized because a mail store session cannot
// interleave commands. The session is closed on every path.
func (r *Runner) Run(ctx context.Context) models.RunResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	runLog := r.log.WithField("run_id", uuid.New().String())
	runLog.WithField("senders", len(r.senders)).Info("Checking for new emails")

	client := r.newClient()
	defer func() {
		if err := client.Close(); err != nil {
			runLog.WithError(err).Warn("Error closing mailbox session")
		}
	}()

	if err := imapclient.Open(client, r.creds); err != nil {
		runLog.WithError(err).Error("Could not open mailbox")
		return models.RunResult{Success: false, Error: ErrConnectionFailed}
	}
	runLog.WithField("folder", r.creds.Folder).Info("Mailbox opened")

	emails, err := collect(client, r.senders, runLog)
	if err != nil {
		runLog.WithError(err).Error("Email collection aborted")
		return models.RunResult{Success: false, Error: err.Error()}
	}

	if len(emails) == 0 {
		runLog.Info("No new emails to process")
		return models.RunResult{Success: true}
	}

	runLog.Infof("Dispatching %d notifications", len(emails))

	// Collected emails are already marked seen, so shutting down must not drop their notifications.
	dispatchCtx := context.WithoutCancel(ctx)

	failed := 0
	for _, email := range emails {
		if err := r.notifier.Notify(dispatchCtx, email); err != nil {
			failed++
		}
	}

	runLog.WithFields(logrus.Fields{
		"processed": len(emails),
		"failed":    failed,
	}).Info("Email check completed")
	return models.RunResult{Success: true, ProcessedCount: len(emails)}
}

// collect converts a panic escaping the collection phase into an error.
func collect(mailbox emailprocessor.Mailbox, senders []string, log logrus.FieldLogger) (emails []models.Email, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			emails = nil
			err = fmt.Errorf("unexpected error during collection: %v", rec)
		}
	}()
	return emailprocessor.NewProcessor(log).Collect(mailbox, senders), nil
}
