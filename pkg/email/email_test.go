package email

//go:generate mockgen -source=email.go -destination=mocks/mocks.go -package=mocks Sender

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveNameFromEmail(t *testing.T) {
	first, last := DeriveNameFromEmail("jane.doe@acme.com")
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "Doe", last)

	first, last = DeriveNameFromEmail("@acme.com")
	assert.Equal(t, "Voter", first)
	assert.Empty(t, last)
	assert.Equal(t, "Voter", DisplayName("@acme.com"))
	assert.Equal(t, "V", DisplayName("v@x.com"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a@acme.com", Normalize("  A@Acme.COM "))
}

func TestLogSender(t *testing.T) {
	s := NewLogSender(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, s.Send(context.Background(), Message{To: "v@x.com", Subject: "Code"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Send(ctx, Message{To: "v@x.com"}), context.Canceled)
}

func TestBuildMIMEStripsHeaderInjection(t *testing.T) {
	raw := string(buildMIME("noreply@quorum.local", Message{
		To:       "v@x.com",
		Subject:  "Your code\r\nBcc: evil@x.com",
		HTMLBody: "<p>123456</p>",
	}, time.Unix(0, 0)))

	assert.NotContains(t, raw, "\r\nBcc:")
	assert.True(t, strings.HasSuffix(raw, "<p>123456</p>"))
}
