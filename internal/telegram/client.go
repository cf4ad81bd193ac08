package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mail-telegram-notifier/internal/models"

	"github.com/pkg/errors"
)

const requestTimeout = 10 * time.Second

// DispatchError is a failed delivery of one message.
type DispatchError struct {
	StatusCode  int
	Description string
	Err         error
}

func (e *DispatchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("telegram dispatch failed: %v", e.Err)
	}
	return fmt.Sprintf("telegram dispatch failed (status %d): %s", e.StatusCode, e.Description)
}

func (e *DispatchError) Unwrap() error { return e.Err }

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// Client posts messages to the Telegram Bot API sendMessage method.
type Client struct {
	baseURL    string
	token      string
	chatID     string
	httpClient *http.Client
}

// NewClient creates a Client for the configured bot and chat.
func NewClient(cfg models.TelegramConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.APIURL, "/"),
		token:      cfg.Token,
		chatID:     cfg.ChatID,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// SendMessage posts text in HTML parse mode. A non-2xx status, an {"ok":false} body or a
// transport failure is returned as a *DispatchError. The bot token never appears in errors.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	payload, err := json.Marshal(sendMessageRequest{
		ChatID:    c.chatID,
		Text:      text,
		ParseMode: ParseMode,
	})
	if err != nil {
		return errors.Wrap(err, "encode sendMessage payload")
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(c.redact(err), "build sendMessage request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &DispatchError{Err: c.redact(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return &DispatchError{StatusCode: resp.StatusCode, Err: errors.Wrap(err, "read sendMessage response")}
	}

	var apiResp apiResponse
	decodeErr := json.Unmarshal(body, &apiResp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		description := apiResp.Description
		if decodeErr != nil || description == "" {
			description = strings.TrimSpace(string(body))
		}
		return &DispatchError{StatusCode: resp.StatusCode, Description: description}
	}
	if decodeErr == nil && !apiResp.OK {
		return &DispatchError{StatusCode: resp.StatusCode, Description: apiResp.Description}
	}
	return nil
}

// redact strips the bot token from URL errors.
func (c *Client) redact(err error) error {
	var urlErr *url.Error
	if c.token != "" && errors.As(err, &urlErr) {
		redacted := *urlErr
		redacted.URL = strings.ReplaceAll(urlErr.URL, c.token, "<redacted>")
		return &redacted
	}
	return err
}
