package imap

import "net"

//go:generate mockgen -source=imap.go -destination=mock/client.go -package=mock

// Client is one mail store session. Identifiers are UIDs of the selected mailbox.
type Client interface {
	Connect(server string) error
	Login(user, password string) error
	SelectMailbox(name string) error
	SearchUnseenFrom(sender string) ([]uint32, error)
	FetchRaw(uid uint32) ([]byte, error)
	MarkSeen(uid uint32) error
	Close() error
}

// Credentials identify the mailbox to open. They are never logged.
type Credentials struct {
	Host     string
	Port     string
	Login    string
	Password string
	Folder   string
}

// Addr returns host:port.
func (c Credentials) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Open connects, authenticates and selects the folder. A failure at any stage is returned as a
// *ConnectionError. The caller closes client whatever the outcome.
func Open(client Client, creds Credentials) error {
	if err := client.Connect(creds.Addr()); err != nil {
		return &ConnectionError{Stage: StageConnect, Err: err}
	}
	if err := client.Login(creds.Login, creds.Password); err != nil {
		return &ConnectionError{Stage: StageAuthenticate, Err: err}
	}
	if err := client.SelectMailbox(creds.Folder); err != nil {
		return &ConnectionError{Stage: StageSelect, Err: err}
	}
	return nil
}
