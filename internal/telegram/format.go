package telegram

import (
	"fmt"
	"html"

	"mail-telegram-notifier/internal/models"
)

// ParseMode is the Telegram render mode matching EscapeHTML.
const ParseMode = "HTML"

// EscapeHTML escapes text so mail content cannot inject markup into an HTML-mode message.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

// Format renders the notification for one email. Each field is escaped exactly once.
func Format(email models.Email) string {
	return fmt.Sprintf("📩 New email from %s\nSubject: %s\n\n%s",
		EscapeHTML(email.From),
		EscapeHTML(email.Subject),
		EscapeHTML(email.Body),
	)
}
