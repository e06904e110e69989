package smtp

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nappsng/cms/pkg/cms"
)

func TestNewRequiresHostAndSender(t *testing.T) {
	_, err := New(Config{From: "noreply@example.org"})
	assert.Error(t, err)

	_, err = New(Config{Host: "smtp.example.org"})
	assert.Error(t, err)

	mailer, err := New(Config{Host: "smtp.example.org", From: "noreply@example.org"})
	require.NoError(t, err)
	assert.Equal(t, 587, mailer.config.Port)
}

func TestSendBuildsSingleTransaction(t *testing.T) {
	mailer, err := New(Config{Host: "smtp.example.org", From: "noreply@example.org"})
	require.NoError(t, err)

	var gotAddr, gotFrom string
	var gotTo []string
	var gotPayload []byte
	calls := 0
	mailer.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		calls++
		gotAddr, gotFrom, gotTo, gotPayload = addr, from, to, msg
		return nil
	}

	receipt, err := mailer.Send(context.Background(), cms.Message{
		To:      []string{"one@example.org", "two@example.org"},
		ReplyTo: "office@example.org",
		Subject: "Resumption",
		HTML:    "<p>Monday</p>",
		Text:    "Monday",
	})
	require.NoError(t, err)

	// The whole recipient list rides one transaction.
	assert.Equal(t, 1, calls)
	assert.Equal(t, "smtp.example.org:587", gotAddr)
	assert.Equal(t, "noreply@example.org", gotFrom)
	assert.Equal(t, []string{"one@example.org", "two@example.org"}, gotTo)
	assert.Equal(t, 2, receipt.Recipients)
	assert.True(t, strings.HasPrefix(receipt.MessageID, "<"))

	payload := string(gotPayload)
	assert.Contains(t, payload, "Reply-To: office@example.org")
	assert.Contains(t, payload, "To: one@example.org, two@example.org")
	// Both bodies present: multipart/alternative carrying each part, HTML last.
	assert.Contains(t, payload, "Content-Type: multipart/alternative; boundary=")
	assert.Contains(t, payload, "Content-Type: text/plain; charset=utf-8")
	assert.Contains(t, payload, "Content-Type: text/html; charset=utf-8")
	assert.Contains(t, payload, "<p>Monday</p>")
	assert.Less(t,
		strings.Index(payload, "Content-Type: text/plain; charset=utf-8"),
		strings.Index(payload, "Content-Type: text/html; charset=utf-8"))
}

func TestSendHTMLOnlyIsSinglePart(t *testing.T) {
	mailer, err := New(Config{Host: "smtp.example.org", From: "noreply@example.org"})
	require.NoError(t, err)

	var gotPayload []byte
	mailer.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotPayload = msg
		return nil
	}

	_, err = mailer.Send(context.Background(), cms.Message{
		To:      []string{"one@example.org"},
		Subject: "Rich",
		HTML:    "<p>only html</p>",
	})
	require.NoError(t, err)
	assert.Contains(t, string(gotPayload), "Content-Type: text/html; charset=utf-8")
	assert.NotContains(t, string(gotPayload), "multipart/alternative")
}

func TestSendTextFallback(t *testing.T) {
	mailer, err := New(Config{Host: "smtp.example.org", From: "noreply@example.org"})
	require.NoError(t, err)

	var gotPayload []byte
	mailer.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotPayload = msg
		return nil
	}

	_, err = mailer.Send(context.Background(), cms.Message{
		To:      []string{"one@example.org"},
		Subject: "Plain",
		Text:    "text only",
	})
	require.NoError(t, err)
	assert.Contains(t, string(gotPayload), "Content-Type: text/plain; charset=utf-8")
	assert.Contains(t, string(gotPayload), "text only")
}

func TestSendRelayFailure(t *testing.T) {
	mailer, err := New(Config{Host: "smtp.example.org", From: "noreply@example.org"})
	require.NoError(t, err)

	mailer.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		return errors.New("connection refused")
	}

	_, err = mailer.Send(context.Background(), cms.Message{
		To:      []string{"one@example.org", "two@example.org"},
		Subject: "s",
		Text:    "t",
	})
	var derr *cms.DeliveryError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, 2, derr.Recipients)
}

func TestSendHonorsCancelledContext(t *testing.T) {
	mailer, err := New(Config{Host: "smtp.example.org", From: "noreply@example.org"})
	require.NoError(t, err)

	called := false
	mailer.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		called = true
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = mailer.Send(ctx, cms.Message{To: []string{"a@b.org"}, Subject: "s", Text: "t"})
	var derr *cms.DeliveryError
	require.ErrorAs(t, err, &derr)
	assert.False(t, called)
}
