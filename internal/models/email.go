package models

// Email represents a normalized parsed email message
type Email struct {
	UID     uint32
	From    string
	Subject string
	Body    string
	TraceID string
}
