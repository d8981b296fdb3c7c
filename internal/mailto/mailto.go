package mailto

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	a11yerrors "a11ypack/internal/errors"
)

// Address receives every form submission.
const Address = "a11ycontact@a11ysolutions.com"

// MaxURILength is the longest URI handed to the mail client. Longer URIs are
// truncated or rejected by common mail-client handlers.
const MaxURILength = 2000

// LineBreak joins body lines inside the URI. It is kept percent-encoded because
// raw newlines are not reliably preserved by mail-client handlers.
const LineBreak = "%0D%0A"

// Message is an outbound mail prepared for the user's mail client.
type Message struct {
	To      string
	Subject string
	Lines   []string
}

// Escape percent-encodes a value for a mailto query component. Spaces become %20.
func Escape(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}

// EncodeBody encodes each line on its own and joins them with LineBreak.
func EncodeBody(lines []string) string {
	encoded := make([]string, len(lines))
	for i, line := range lines {
		encoded[i] = Escape(line)
	}
	return strings.Join(encoded, LineBreak)
}

// BuildURI renders msg as mailto:<to>?subject=<subject>&body=<body>.
func BuildURI(msg Message) string {
	var b strings.Builder
	b.WriteString("mailto:")
	b.WriteString(msg.To)
	b.WriteString("?subject=")
	b.WriteString(Escape(msg.Subject))
	b.WriteString("&body=")
	b.WriteString(EncodeBody(msg.Lines))
	return b.String()
}

// URISink hands messages off by building their mailto URI. The HTTP layer
// reads the last URI back and forwards it to the browser.
type URISink struct {
	mu  sync.Mutex
	uri string
}

// NewURISink returns an empty sink.
func NewURISink() *URISink {
	return &URISink{}
}

// Handoff builds the URI for msg and records it.
func (s *URISink) Handoff(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", a11yerrors.ErrSubmissionFailed, err)
	}
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("%w: empty destination address", a11yerrors.ErrSubmissionFailed)
	}
	uri := BuildURI(msg)
	if len(uri) > MaxURILength {
		return fmt.Errorf("%w: mailto uri is %d characters, limit %d", a11yerrors.ErrSubmissionFailed, len(uri), MaxURILength)
	}
	s.mu.Lock()
	s.uri = uri
	s.mu.Unlock()
	return nil
}

// URI returns the last URI handed off, or "" if none.
func (s *URISink) URI() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uri
}
