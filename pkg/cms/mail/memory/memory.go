package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nappsng/cms/pkg/cms"
)

// Mailer records outbound messages in memory instead of delivering them.
// Useful for tests and development servers without an SMTP relay.
type Mailer struct {
	mu       sync.RWMutex
	messages []cms.Message
	failWith error
}

// New creates a new in-memory mailer
func New() *Mailer {
	return &Mailer{}
}

// FailWith makes every subsequent Send fail with err; pass nil to reset.
func (m *Mailer) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

// Send records the message and returns a synthetic receipt.
func (m *Mailer) Send(ctx context.Context, msg cms.Message) (*cms.DeliveryReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return nil, &cms.DeliveryError{Op: "send", Recipients: len(msg.To), Err: m.failWith}
	}

	m.messages = append(m.messages, msg)

	return &cms.DeliveryReceipt{
		MessageID:  uuid.New().String(),
		Recipients: len(msg.To),
		SentAt:     time.Now().UTC(),
	}, nil
}

// Messages returns a copy of every recorded message; test helper.
func (m *Mailer) Messages() []cms.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]cms.Message, len(m.messages))
	copy(out, m.messages)
	return out
}
