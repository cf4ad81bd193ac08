package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"mail-telegram-notifier/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	envIMAPServer     = "IMAP_SERVER"
	envIMAPPort       = "IMAP_PORT"
	envIMAPMailbox    = "IMAP_MAILBOX"
	envIMAPTLS        = "IMAP_TLS"
	envEmailLogin     = "EMAIL_LOGIN"
	envEmailPassword  = "EMAIL_PASSWORD"
	envTelegramToken  = "TELEGRAM_BOT_TOKEN"
	envTelegramChatID = "TELEGRAM_CHAT_ID"
	envTelegramAPIURL = "TELEGRAM_API_URL"
	envSenderEmails   = "SENDER_EMAILS"
	envRefreshTime    = "REFRESH_TIME"
	envLogLevel       = "LOG_LEVEL"
)

const (
	DefaultPort        = "993"
	DefaultFolder      = "INBOX"
	DefaultAPIURL      = "https://api.telegram.org"
	DefaultRefreshTime = time.Minute
)

// LoadEnvFile loads variables from a dotenv file into the process environment.
// A missing file is not an error; variables already set are not overridden.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Load reads the optional YAML file at filepath, overlays environment variables and fills defaults.
// The returned Config is not modified afterwards.
func Load(filepath string) (*models.Config, error) {
	var config models.Config

	if filepath != "" {
		configFile, err := os.ReadFile(filepath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(configFile, &config); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := applyEnv(&config); err != nil {
		return nil, err
	}
	applyDefaults(&config)
	config.Senders = normalizeSenders(config.Senders)

	return &config, nil
}

// ParseSenders splits a comma-separated allow-list, trimming entries and dropping empty ones
// and repeats. Order of first occurrence is kept.
func ParseSenders(raw string) []string {
	return normalizeSenders(strings.Split(raw, ","))
}

func normalizeSenders(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	senders := make([]string, 0, len(list))
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		senders = append(senders, s)
	}
	return senders
}

func applyEnv(config *models.Config) error {
	setString(&config.Mailbox.Host, envIMAPServer)
	setString(&config.Mailbox.Port, envIMAPPort)
	setString(&config.Mailbox.Folder, envIMAPMailbox)
	setString(&config.Mailbox.Login, envEmailLogin)
	setString(&config.Mailbox.Password, envEmailPassword)
	setString(&config.Telegram.Token, envTelegramToken)
	setString(&config.Telegram.ChatID, envTelegramChatID)
	setString(&config.Telegram.APIURL, envTelegramAPIURL)
	setString(&config.LogLevel, envLogLevel)

	if raw, ok := lookup(envIMAPTLS); ok {
		useTLS, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", envIMAPTLS, err)
		}
		config.Mailbox.TLS = &useTLS
	}

	if raw, ok := lookup(envRefreshTime); ok {
		refresh, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", envRefreshTime, err)
		}
		config.RefreshTime = refresh
	}

	if raw, ok := lookup(envSenderEmails); ok {
		config.Senders = ParseSenders(raw)
	}

	return nil
}

func applyDefaults(config *models.Config) {
	if config.Mailbox.Port == "" {
		config.Mailbox.Port = DefaultPort
	}
	if config.Mailbox.Folder == "" {
		config.Mailbox.Folder = DefaultFolder
	}
	if config.Telegram.APIURL == "" {
		config.Telegram.APIURL = DefaultAPIURL
	}
	if config.RefreshTime <= 0 {
		config.RefreshTime = DefaultRefreshTime
	}
}

// lookup returns a trimmed, non-empty environment value.
func lookup(name string) (string, bool) {
	value, ok := os.LookupEnv(name)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}

func setString(dst *string, name string) {
	if value, ok := lookup(name); ok {
		*dst = value
	}
}

// Validate ensures every required setting is present. All missing keys are reported together.
func Validate(config *models.Config) error {
	missing := []string{}
	if config.Mailbox.Host == "" {
		missing = append(missing, envIMAPServer)
	}
	if config.Mailbox.Login == "" {
		missing = append(missing, envEmailLogin)
	}
	if config.Mailbox.Password == "" {
		missing = append(missing, envEmailPassword)
	}
	if config.Telegram.Token == "" {
		missing = append(missing, envTelegramToken)
	}
	if config.Telegram.ChatID == "" {
		missing = append(missing, envTelegramChatID)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	port, err := strconv.Atoi(config.Mailbox.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid %s: %q", envIMAPPort, config.Mailbox.Port)
	}

	for _, sender := range config.Senders {
		if strings.ContainsAny(sender, "\r\n") {
			return fmt.Errorf("invalid sender %q: contains a line break", sender)
		}
	}
	return nil
}

// Summary returns a description of the configuration without secrets.
func Summary(config *models.Config) string {
	return fmt.Sprintf(
		"Config summary\n"+
			"- mailbox: %s@%s:%s/%s (tls: %t)\n"+
			"- senders: %d (%s)\n"+
			"- telegram chat: %s\n"+
			"- refresh time: %s",
		config.Mailbox.Login,
		config.Mailbox.Host,
		config.Mailbox.Port,
		config.Mailbox.Folder,
		config.Mailbox.UseTLS(),
		len(config.Senders),
		strings.Join(config.Senders, ", "),
		config.Telegram.ChatID,
		config.RefreshTime,
	)
}
