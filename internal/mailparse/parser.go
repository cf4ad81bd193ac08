package mailparse

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"strings"
	"unicode/utf8"

	"mail-telegram-notifier/internal/models"

	"github.com/emersion/go-message"
	"github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
	"github.com/google/uuid"
)

const (
	// NoSubject replaces an absent or empty Subject header.
	NoSubject = "No subject"
	// MaxBodyLength is the number of characters kept from a body.
	MaxBodyLength = 500
)

// ErrEmptyMessage is returned by Parse when there are no bytes to decode.
var ErrEmptyMessage = errors.New("empty message")

var wordDecoder = &mime.WordDecoder{CharsetReader: charset.Reader}

// Parse normalizes a raw RFC 5322 message. Malformed input never fails: every field falls back
// to a best-effort value, so the only error is ErrEmptyMessage.
func Parse(uid uint32, raw []byte) (*models.Email, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyMessage
	}

	email := &models.Email{
		UID:     uid,
		TraceID: uuid.New().String(),
	}

	// An unknown charset or transfer encoding still yields a readable entity.
	entity, _ := message.Read(bytes.NewReader(raw))
	if entity == nil {
		// Unparseable header block: keep the raw bytes as the body.
		email.Subject = NoSubject
		email.Body = truncate(toUTF8(raw))
		return email, nil
	}

	email.From = ExtractSenderAddress(entity.Header.Get("From"))
	email.Subject = DecodeSubject(entity.Header.Get("Subject"))
	email.Body = bodyFromEntity(entity)

	return email, nil
}

// DecodeSubject decodes MIME-encoded words (e.g., "=?UTF-8?B?...?=") in a Subject header.
// An empty header yields NoSubject; a header that cannot be decoded is returned as UTF-8 with
// invalid sequences replaced.
func DecodeSubject(rawHeader string) string {
	if strings.TrimSpace(rawHeader) == "" {
		return NoSubject
	}
	decoded, err := DecodeHeader(rawHeader)
	if err != nil {
		return strings.ToValidUTF8(rawHeader, string(utf8.RuneError))
	}
	return strings.ToValidUTF8(decoded, string(utf8.RuneError))
}

// DecodeHeader decodes MIME-encoded headers to plain text, converting any registered charset to UTF-8
func DecodeHeader(encoded string) (string, error) {
	decoded, err := wordDecoder.DecodeHeader(encoded)
	if err != nil {
		return "", err
	}
	return decoded, nil
}

// ExtractSenderAddress returns the bare address of a "Name <address>" header, or "" when the
// header is absent or malformed.
func ExtractSenderAddress(fromHeader string) string {
	if strings.TrimSpace(fromHeader) == "" {
		return ""
	}
	addr, err := mail.ParseAddress(fromHeader)
	if err != nil {
		return ""
	}
	return addr.Address
}

// ExtractPlainTextBody returns the first text/plain part of a multipart message, or the single
// payload of a non-multipart one, truncated to MaxBodyLength characters.
func ExtractPlainTextBody(raw []byte) string {
	entity, _ := message.Read(bytes.NewReader(raw))
	if entity == nil {
		return truncate(toUTF8(raw))
	}
	return bodyFromEntity(entity)
}

func bodyFromEntity(entity *message.Entity) string {
	if mr := entity.MultipartReader(); mr != nil {
		body, _ := firstPlainText(mr)
		return truncate(body)
	}
	return truncate(readBody(entity))
}

// firstPlainText walks parts depth-first in document order and stops at the first text/plain one.
func firstPlainText(mr message.MultipartReader) (string, bool) {
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			return "", false
		}
		if p == nil || (err != nil && !message.IsUnknownCharset(err) && !message.IsUnknownEncoding(err)) {
			return "", false
		}

		if nested := p.MultipartReader(); nested != nil {
			if body, ok := firstPlainText(nested); ok {
				return body, true
			}
			continue
		}

		contentType, _, err := p.Header.ContentType()
		if err != nil {
			continue
		}
		if contentType == "text/plain" {
			return readBody(p), true
		}
	}
}

// readBody reads as much of the payload as possible and drops invalid UTF-8 sequences.
func readBody(entity *message.Entity) string {
	body, _ := io.ReadAll(entity.Body)
	return toUTF8(body)
}

func toUTF8(b []byte) string {
	return strings.ToValidUTF8(string(b), "")
}

func truncate(s string) string {
	if utf8.RuneCountInString(s) <= MaxBodyLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:MaxBodyLength])
}
