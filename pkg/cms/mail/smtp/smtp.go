// Package smtp delivers mail through a plain SMTP relay using net/smtp.
// Each Send call is one outbound request for the whole recipient list; a
// relay-side failure surfaces as a single *cms.DeliveryError.
package smtp

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nappsng/cms/pkg/cms"
)

// Config options for the SMTP mailer
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string // default sender, used when a message carries none
}

// Mailer is an SMTP implementation of the cms.Mailer interface.
type Mailer struct {
	config Config
	// send is swappable for tests; defaults to smtp.SendMail.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// New creates a new SMTP mailer
func New(config Config) (*Mailer, error) {
	if config.Host == "" {
		return nil, errors.New("smtp host is required")
	}
	if config.Port == 0 {
		config.Port = 587
	}
	if config.From == "" {
		return nil, errors.New("default sender address is required")
	}
	return &Mailer{config: config, send: smtp.SendMail}, nil
}

// Send delivers one message to the whole recipient list in a single SMTP
// transaction.
func (m *Mailer) Send(ctx context.Context, msg cms.Message) (*cms.DeliveryReceipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, &cms.DeliveryError{Op: "send", Recipients: len(msg.To), Err: err}
	}

	from := msg.From
	if from == "" {
		from = m.config.From
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.New(), m.config.Host)
	payload := buildPayload(messageID, from, msg)

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	var auth smtp.Auth
	if m.config.Username != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	}

	if err := m.send(addr, auth, from, msg.To, payload); err != nil {
		return nil, &cms.DeliveryError{Op: "send", Recipients: len(msg.To), Err: err}
	}

	return &cms.DeliveryReceipt{
		MessageID:  messageID,
		Recipients: len(msg.To),
		SentAt:     time.Now().UTC(),
	}, nil
}

// buildPayload assembles the RFC 5322 message. When both bodies are present
// they are sent as multipart/alternative with the HTML part last, so capable
// clients prefer it; otherwise whichever body exists is the single part.
func buildPayload(messageID, from string, msg cms.Message) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "Message-ID: %s\r\n", messageID)
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	if msg.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", msg.ReplyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")

	switch {
	case msg.HTML != "" && msg.Text != "":
		boundary := strings.ReplaceAll(uuid.NewString(), "-", "")
		fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary)
		fmt.Fprintf(&b, "--%s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n", boundary, msg.Text)
		fmt.Fprintf(&b, "--%s\r\nContent-Type: text/html; charset=utf-8\r\n\r\n%s\r\n", boundary, msg.HTML)
		fmt.Fprintf(&b, "--%s--\r\n", boundary)
	case msg.HTML != "":
		b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
		b.WriteString(msg.HTML)
		b.WriteString("\r\n")
	default:
		b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		b.WriteString(msg.Text)
		b.WriteString("\r\n")
	}

	return []byte(b.String())
}
