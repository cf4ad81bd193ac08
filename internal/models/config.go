package models

import "time"

// Config represents the application configuration
type Config struct {
	Mailbox     MailboxConfig  `yaml:"mailbox"`
	Telegram    TelegramConfig `yaml:"telegram"`
	Senders     []string       `yaml:"senders"`
	RefreshTime time.Duration  `yaml:"refreshTime"`
	LogLevel    string         `yaml:"logLevel"`
}

// MailboxConfig represents IMAP mailbox configuration
type MailboxConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Login    string `yaml:"login"`
	Password string `yaml:"password"`
	Folder   string `yaml:"folder"`
	TLS      *bool  `yaml:"tls"`
}

// UseTLS reports whether the IMAP connection should be wrapped in TLS. Defaults to true.
func (m MailboxConfig) UseTLS() bool {
	return m.TLS == nil || *m.TLS
}

// TelegramConfig represents the notification channel configuration
type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID string `yaml:"chatId"`
	APIURL string `yaml:"apiUrl"`
}
