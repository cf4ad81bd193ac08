package emailprocessor

import (
	imapclient "mail-telegram-notifier/internal/imap"
	"mail-telegram-notifier/internal/mailparse"
	"mail-telegram-notifier/internal/models"

	"github.com/sirupsen/logrus"
)

// Mailbox is the part of an open session the processor needs.
type Mailbox interface {
	SearchUnseenFrom(sender string) ([]uint32, error)
	FetchRaw(uid uint32) ([]byte, error)
	MarkSeen(uid uint32) error
}

var _ Mailbox = (imapclient.Client)(nil)

// Decoder turns raw message bytes into an Email.
type Decoder func(uid uint32, raw []byte) (*models.Email, error)

type Processor struct {
	decode Decoder
	log    logrus.FieldLogger
}

// NewProcessor creates a Processor decoding messages with mailparse.Parse
func NewProcessor(log logrus.FieldLogger) *Processor {
	return &Processor{
		decode: mailparse.Parse,
		log:    log,
	}
}

// WithDecoder replaces the message decoder.
func (p *Processor) WithDecoder(decode Decoder) *Processor {
	p.decode = decode
	return p
}

// Collect searches unseen mail from every sender, fetches and decodes each distinct UID once
// and marks it seen. Search, fetch, decode and mark-seen failures are logged and contained:
// the affected sender or message is skipped and the rest of the run continues.
func (p *Processor) Collect(mailbox Mailbox, senders []string) []models.Email {
	uids := p.searchAll(mailbox, senders)
	p.log.Infof("Total unique unseen emails: %d", len(uids))

	emails := make([]models.Email, 0, len(uids))
	for _, uid := range uids {
		email, ok := p.processEmail(mailbox, uid)
		if ok {
			emails = append(emails, *email)
		}
	}

	p.log.Infof("Collected %d emails", len(emails))
	return emails
}

// searchAll unions the per-sender results, keeping first-seen order.
func (p *Processor) searchAll(mailbox Mailbox, senders []string) []uint32 {
	seen := make(map[uint32]struct{})
	var all []uint32

	for _, sender := range senders {
		uids, err := mailbox.SearchUnseenFrom(sender)
		if err != nil {
			p.log.WithError(err).WithField("sender", sender).Warn("Search failed, skipping sender")
			continue
		}
		p.log.WithField("sender", sender).Infof("Found %d unseen emails", len(uids))

		for _, uid := range uids {
			if _, dup := seen[uid]; dup {
				continue
			}
			seen[uid] = struct{}{}
			all = append(all, uid)
		}
	}
	return all
}

// processEmail runs fetch → decode → mark as seen for one UID.
// The message is marked seen only once it has been decoded.
func (p *Processor) processEmail(mailbox Mailbox, uid uint32) (*models.Email, bool) {
	uidLog := p.log.WithField("uid", uid)

	raw, err := mailbox.FetchRaw(uid)
	if err != nil {
		uidLog.WithError(err).Error("Fetch failed, message left unseen")
		return nil, false
	}

	email, err := p.decode(uid, raw)
	if err != nil {
		uidLog.WithError(err).Error("Decode failed, message left unseen")
		return nil, false
	}

	locallog := uidLog.WithField("trace_id", email.TraceID)
	locallog.WithField("from", email.From).Infof("Email decoded, subject: %s", preview(email.Subject, 50))

	if err := mailbox.MarkSeen(uid); err != nil {
		locallog.WithError(err).Warn("Mark as seen failed, message may be processed again next run")
	}

	return email, true
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
