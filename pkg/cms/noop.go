package cms

import (
	"context"

	"github.com/google/uuid"
)

// NoopEventSink is a no-operation implementation of EventSink
// Useful for production when you don't need event handling or for testing
type NoopEventSink struct{}

// NewNoopEventSink creates a new no-operation event sink
func NewNoopEventSink() EventSink {
	return &NoopEventSink{}
}

func (n *NoopEventSink) ContentBlockCreated(ctx context.Context, block *ContentBlock) error {
	return nil
}

func (n *NoopEventSink) ContentBlockUpdated(ctx context.Context, block *ContentBlock) error {
	return nil
}

func (n *NoopEventSink) ContentBlockDeleted(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (n *NoopEventSink) TeamMemberCreated(ctx context.Context, member *TeamMember) error {
	return nil
}

func (n *NoopEventSink) TeamMemberUpdated(ctx context.Context, member *TeamMember) error {
	return nil
}

func (n *NoopEventSink) TeamMemberDeleted(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (n *NoopEventSink) EnrollmentCreated(ctx context.Context, record *EnrollmentRecord) error {
	return nil
}

func (n *NoopEventSink) EnrollmentUpdated(ctx context.Context, record *EnrollmentRecord) error {
	return nil
}

func (n *NoopEventSink) EnrollmentDeleted(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (n *NoopEventSink) MediaUploaded(ctx context.Context, resource *StoredResource) error {
	return nil
}

func (n *NoopEventSink) MailDelivered(ctx context.Context, receipt *DeliveryReceipt) error {
	return nil
}
