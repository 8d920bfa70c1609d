package mail

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"storeadmin/internal/config"
)

func TestNew_NopWithoutHost(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := New(config.SMTPConfig{}, zap.New(core))

	_, ok := s.(*NopSender)
	require.True(t, ok)

	require.NoError(t, s.Send(context.Background(), Message{To: "a@example.com", Subject: "hello"}))
	entries := logs.FilterMessage("email skipped").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "a@example.com", entries[0].ContextMap()["to"])
}

func TestNew_SMTPWithHost(t *testing.T) {
	s := New(config.SMTPConfig{Host: "smtp.example.com", Port: 587}, nil)
	_, ok := s.(*SMTPSender)
	assert.True(t, ok)
}

func TestSMTPSender_CancelledContext(t *testing.T) {
	s := New(config.SMTPConfig{Host: "smtp.invalid", Port: 587}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Send(ctx, Message{To: "a@example.com"}), context.Canceled)
}

func TestInvitationMessage(t *testing.T) {
	msg, err := InvitationMessage("https://shop.example.com/", Invitation{
		To:               "new@example.com",
		OrganizationName: "Acme <Shop>",
		InviterName:      "Rina",
		Role:             "admin",
		Token:            "abc123",
		ExpiresAt:        time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", msg.To)
	assert.Equal(t, "You're invited to join Acme <Shop>", msg.Subject)
	assert.Contains(t, msg.TextBody, "https://shop.example.com/invitations/accept?token=abc123")
	assert.Contains(t, msg.TextBody, "1 May 2026 09:30 UTC")
	assert.Contains(t, msg.HTMLBody, "Acme &lt;Shop&gt;")
	assert.NotContains(t, msg.HTMLBody, "<Shop>")
}
