package mailto

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	a11yerrors "a11ypack/internal/errors"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hello world", "hello%20world"},
		{"a&b=c", "a%26b%3Dc"},
		{"+34 600", "%2B34%20600"},
		{"Teléfono: 1", "Tel%C3%A9fono%3A%201"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Escape(tt.in))
		})
	}
}

func TestEncodeBody(t *testing.T) {
	body := EncodeBody([]string{"Name: Ana", "", "Email: ana@example.com"})
	assert.Equal(t, "Name%3A%20Ana%0D%0A%0D%0AEmail%3A%20ana%40example.com", body)
	assert.NotContains(t, body, "\n")
	assert.NotContains(t, body, "%250D")
}

func TestBuildURI(t *testing.T) {
	uri := BuildURI(Message{
		To:      Address,
		Subject: "New contact: Ana from ACME",
		Lines:   []string{"Full name: Ana", "Company: ACME"},
	})
	assert.Equal(t,
		"mailto:a11ycontact@a11ysolutions.com?subject=New%20contact%3A%20Ana%20from%20ACME&body=Full%20name%3A%20Ana%0D%0ACompany%3A%20ACME",
		uri)
}

func TestURISink_Handoff(t *testing.T) {
	sink := NewURISink()
	assert.Empty(t, sink.URI())

	msg := Message{To: Address, Subject: "Subject", Lines: []string{"line"}}
	require.NoError(t, sink.Handoff(context.Background(), msg))
	assert.Equal(t, BuildURI(msg), sink.URI())
}

func TestURISink_Failures(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		ctx  context.Context
		msg  Message
	}{
		{name: "empty address", ctx: context.Background(), msg: Message{Subject: "s"}},
		{name: "too long", ctx: context.Background(), msg: Message{To: Address, Lines: []string{strings.Repeat("x", MaxURILength)}}},
		{name: "cancelled", ctx: cancelled, msg: Message{To: Address}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := NewURISink()
			err := sink.Handoff(tt.ctx, tt.msg)
			assert.ErrorIs(t, err, a11yerrors.ErrSubmissionFailed)
			assert.Empty(t, sink.URI())
		})
	}
}
