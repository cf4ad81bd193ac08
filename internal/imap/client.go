package imap

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-sasl"
)

type StandardClient struct {
	client   *client.Client
	useTLS   bool
	selected bool
	timeout  time.Duration
}

// NewStandardClient creates a new StandardClient with a default timeout of 30 seconds for fetches.
// Set useTLS to false only for local plaintext servers.
func NewStandardClient(useTLS bool) *StandardClient {
	return &StandardClient{
		useTLS:  useTLS,
		timeout: 30 * time.Second,
	}
}

// Connect establishes a connection to the IMAP server, wrapped in TLS unless disabled.
func (c *StandardClient) Connect(server string) error {
	var (
		cl  *client.Client
		err error
	)
	if c.useTLS {
		cl, err = client.DialTLS(server, nil)
	} else {
		cl, err = client.Dial(server)
	}
	if err != nil {
		return fmt.Errorf("IMAP connection error: %w", err)
	}
	c.client = cl
	return nil
}

// Login authenticates with SASL PLAIN when the server advertises it and falls back to LOGIN.
func (c *StandardClient) Login(user, password string) error {
	if c.client == nil {
		return ErrNotConnected
	}
	if ok, _ := c.client.SupportAuth(sasl.Plain); ok {
		return c.client.Authenticate(sasl.NewPlainClient("", user, password))
	}
	return c.client.Login(user, password)
}

// SelectMailbox selects the specified mailbox (e.g., "INBOX") in read-write mode.
func (c *StandardClient) SelectMailbox(name string) error {
	if c.client == nil {
		return ErrNotConnected
	}
	if _, err := c.client.Select(name, false); err != nil {
		return err
	}
	c.selected = true
	return nil
}

// SearchUnseenFrom returns the UIDs of unseen messages whose From header matches sender.
func (c *StandardClient) SearchUnseenFrom(sender string) ([]uint32, error) {
	if c.client == nil {
		return nil, &SearchError{Sender: sender, Err: ErrNotConnected}
	}

	criteria := imap.NewSearchCriteria()
	criteria.WithoutFlags = []string{imap.SeenFlag}
	criteria.Header.Add("From", sender)

	uids, err := c.client.UidSearch(criteria)
	if err != nil {
		return nil, &SearchError{Sender: sender, Err: err}
	}
	return uids, nil
}

// FetchRaw retrieves the full RFC 5322 bytes of the message with the given UID. BODY.PEEK[] is
// used so the fetch itself does not set \Seen.
func (c *StandardClient) FetchRaw(uid uint32) ([]byte, error) {
	if c.client == nil {
		return nil, &FetchError{UID: uid, Err: ErrNotConnected}
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uid)

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{section.FetchItem(), imap.FetchUid}

	prevTimeout := c.client.Timeout
	c.client.Timeout = c.timeout
	defer func() { c.client.Timeout = prevTimeout }()

	messages := make(chan *imap.Message, 1)
	done := make(chan error, 1)

	go func() {
		done <- c.client.UidFetch(seqSet, items, messages)
	}()

	var msg *imap.Message
	for m := range messages {
		msg = m
	}

	if err := <-done; err != nil {
		return nil, &FetchError{UID: uid, Err: err}
	}
	if msg == nil {
		return nil, &FetchError{UID: uid, Err: errors.New("no message retrieved")}
	}

	r := msg.GetBody(section)
	if r == nil {
		return nil, &FetchError{UID: uid, Err: errors.New("message body could not be retrieved")}
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &FetchError{UID: uid, Err: err}
	}
	return raw, nil
}

// MarkSeen adds the \Seen flag to the message with the given UID.
func (c *StandardClient) MarkSeen(uid uint32) error {
	if c.client == nil {
		return &MarkReadError{UID: uid, Err: ErrNotConnected}
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uid)

	item := imap.FormatFlagsOp(imap.AddFlags, true)
	flags := []interface{}{imap.SeenFlag}

	if err := c.client.UidStore(seqSet, item, flags, nil); err != nil {
		return &MarkReadError{UID: uid, Err: err}
	}
	return nil
}

// Close closes the selected mailbox and logs out. It is safe to call on a client that never
// connected, and only the first call does anything.
func (c *StandardClient) Close() error {
	if c.client == nil {
		return nil
	}
	cl := c.client
	c.client = nil

	var closeErr error
	if c.selected {
		c.selected = false
		closeErr = cl.Close()
	}
	return errors.Join(closeErr, cl.Logout())
}
