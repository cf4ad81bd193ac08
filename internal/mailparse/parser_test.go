package mailparse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHeader(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "Plain ASCII",
			input:    "Hello World",
			expected: "Hello World",
		},
		{
			name:     "UTF-8 encoded",
			input:    "=?UTF-8?Q?Important_:_comment_mettre_=C3=A0_jour?=",
			expected: "Important : comment mettre à jour",
		},
		{
			name:     "ISO-8859-1 encoded",
			input:    "=?ISO-8859-1?Q?Caf=E9?=",
			expected: "Café",
		},
		{
			name:     "Base64 encoded",
			input:    "=?UTF-8?B?SGVsbG8gV29ybGQ=?=",
			expected: "Hello World",
		},
		{
			name:     "KOI8-R encoded",
			input:    "=?KOI8-R?B?8NLJ18XU?=",
			expected: "Привет",
		},
		{
			name:    "Unknown charset",
			input:   "=?x-unknown?Q?abc?=",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeHeader(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("DecodeHeader() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.expected {
				t.Errorf("DecodeHeader() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDecodeSubject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Missing header", input: "", expected: NoSubject},
		{name: "Blank header", input: "   ", expected: NoSubject},
		{name: "Encoded", input: "=?UTF-8?B?0J3QvtCy0L7QtSDQv9C40YHRjNC80L4=?=", expected: "Новое письмо"},
		{name: "Undecodable falls back to raw", input: "=?x-unknown?Q?abc?=", expected: "=?x-unknown?Q?abc?="},
		{name: "Invalid UTF-8 replaced", input: "Caf\xe9", expected: "Caf�"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DecodeSubject(tt.input))
		})
	}
}

func TestExtractSenderAddress(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Simple email",
			input:    "alerts@bank.example",
			expected: "alerts@bank.example",
		},
		{
			name:     "Email with name",
			input:    "Bank <alerts@bank.example>",
			expected: "alerts@bank.example",
		},
		{
			name:     "Email with quotes",
			input:    `"Bank Team" <alerts@bank.example>`,
			expected: "alerts@bank.example",
		},
		{
			name:     "Encoded display name",
			input:    "=?UTF-8?B?0JHQsNC90Lo=?= <alerts@bank.example>",
			expected: "alerts@bank.example",
		},
		{
			name:     "No email",
			input:    "Just some text",
			expected: "",
		},
		{
			name:     "Absent",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractSenderAddress(tt.input)
			if got != tt.expected {
				t.Errorf("ExtractSenderAddress() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func crlf(s string) []byte {
	return []byte(strings.ReplaceAll(s, "\n", "\r\n"))
}

const multipartAlternative = `From: Shop <shop@example.com>
Subject: Order
MIME-Version: 1.0
Content-Type: multipart/alternative; boundary="b1"

--b1
Content-Type: text/html; charset=utf-8

<p>html version</p>
--b1
Content-Type: text/plain; charset=utf-8

first plain
--b1
Content-Type: text/plain; charset=utf-8

second plain
--b1--
`

func TestExtractPlainTextBody(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "First text/plain part wins",
			raw:      multipartAlternative,
			expected: "first plain",
		},
		{
			name: "HTML only multipart",
			raw: `Content-Type: multipart/alternative; boundary="b1"

--b1
Content-Type: text/html

<p>only html</p>
--b1--
`,
			expected: "",
		},
		{
			name: "Nested multipart",
			raw: `Content-Type: multipart/mixed; boundary="outer"

--outer
Content-Type: multipart/alternative; boundary="inner"

--inner
Content-Type: text/html

<b>nested</b>
--inner
Content-Type: text/plain

nested plain
--inner--
--outer
Content-Type: application/pdf
Content-Disposition: attachment; filename="a.pdf"

%PDF
--outer--
`,
			expected: "nested plain",
		},
		{
			name: "Single part base64",
			raw: `Content-Type: text/plain; charset=utf-8
Content-Transfer-Encoding: base64

0J/RgNC40LLQtdGC
`,
			expected: "Привет",
		},
		{
			name: "Single part quoted-printable latin1",
			raw: `Content-Type: text/plain; charset=iso-8859-1
Content-Transfer-Encoding: quoted-printable

Caf=E9 cr=E8me`,
			expected: "Café crème",
		},
		{
			name: "Single part HTML is still the payload",
			raw: `Content-Type: text/html

<p>hi</p>`,
			expected: "<p>hi</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractPlainTextBody(crlf(tt.raw))
			assert.Equal(t, tt.expected, strings.TrimSpace(got))
		})
	}
}

func TestExtractPlainTextBody_InvalidUTF8Dropped(t *testing.T) {
	raw := append(crlf("Content-Type: text/plain\n\n"), []byte("ok\xff\xfeok")...)
	assert.Equal(t, "okok", ExtractPlainTextBody(raw))
}

func TestExtractPlainTextBody_Truncates(t *testing.T) {
	body := strings.Repeat("я", 600)
	raw := append(crlf("Content-Type: text/plain; charset=utf-8\n\n"), []byte(body)...)

	got := ExtractPlainTextBody(raw)
	assert.Equal(t, MaxBodyLength, len([]rune(got)))
	assert.Equal(t, strings.Repeat("я", MaxBodyLength), got)

	short := append(crlf("Content-Type: text/plain\n\n"), []byte("short")...)
	assert.Equal(t, "short", ExtractPlainTextBody(short))
}

func TestParse(t *testing.T) {
	email, err := Parse(7, crlf(multipartAlternative))
	require.NoError(t, err)

	assert.Equal(t, uint32(7), email.UID)
	assert.Equal(t, "shop@example.com", email.From)
	assert.Equal(t, "Order", email.Subject)
	assert.Equal(t, "first plain", strings.TrimSpace(email.Body))
	assert.NotEmpty(t, email.TraceID)
}

func TestParse_MissingHeaders(t *testing.T) {
	email, err := Parse(1, crlf("Content-Type: text/plain\n\nbody only"))
	require.NoError(t, err)

	assert.Equal(t, "", email.From)
	assert.Equal(t, NoSubject, email.Subject)
	assert.Equal(t, "body only", email.Body)
}

func TestParse_MalformedHeaderFallsBack(t *testing.T) {
	email, err := Parse(1, []byte("this is not a header line\r\n\r\nbody"))
	require.NoError(t, err)

	assert.Equal(t, NoSubject, email.Subject)
	assert.Contains(t, email.Body, "this is not a header line")
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse(1, nil)
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = Parse(1, []byte("\r\n  \r\n"))
	assert.ErrorIs(t, err, ErrEmptyMessage)
}
