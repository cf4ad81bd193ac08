package telegram

import "context"

// Sender delivers one formatted message to the chat channel.
type Sender interface {
	SendMessage(ctx context.Context, text string) error
}
