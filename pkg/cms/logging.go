package cms

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// LoggingEventSink writes one structured log line per lifecycle event.
type LoggingEventSink struct {
	logger *slog.Logger
}

// NewLoggingEventSink creates an event sink backed by the given logger. A nil
// logger falls back to slog.Default().
func NewLoggingEventSink(logger *slog.Logger) EventSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingEventSink{logger: logger}
}

func (l *LoggingEventSink) ContentBlockCreated(ctx context.Context, block *ContentBlock) error {
	l.logger.InfoContext(ctx, "content block created", "id", block.ID, "key", block.Key, "kind", block.Kind)
	return nil
}

func (l *LoggingEventSink) ContentBlockUpdated(ctx context.Context, block *ContentBlock) error {
	l.logger.InfoContext(ctx, "content block updated", "id", block.ID, "key", block.Key)
	return nil
}

func (l *LoggingEventSink) ContentBlockDeleted(ctx context.Context, id uuid.UUID) error {
	l.logger.InfoContext(ctx, "content block deleted", "id", id)
	return nil
}

func (l *LoggingEventSink) TeamMemberCreated(ctx context.Context, member *TeamMember) error {
	l.logger.InfoContext(ctx, "team member created", "id", member.ID, "category", member.Category, "role", member.Role)
	return nil
}

func (l *LoggingEventSink) TeamMemberUpdated(ctx context.Context, member *TeamMember) error {
	l.logger.InfoContext(ctx, "team member updated", "id", member.ID)
	return nil
}

func (l *LoggingEventSink) TeamMemberDeleted(ctx context.Context, id uuid.UUID) error {
	l.logger.InfoContext(ctx, "team member deleted", "id", id)
	return nil
}

func (l *LoggingEventSink) EnrollmentCreated(ctx context.Context, record *EnrollmentRecord) error {
	l.logger.InfoContext(ctx, "enrollment record created",
		"id", record.ID, "school_id", record.SchoolID, "academic_year", record.AcademicYear,
		"total", record.TotalEnrollment())
	return nil
}

func (l *LoggingEventSink) EnrollmentUpdated(ctx context.Context, record *EnrollmentRecord) error {
	l.logger.InfoContext(ctx, "enrollment record updated", "id", record.ID, "total", record.TotalEnrollment())
	return nil
}

func (l *LoggingEventSink) EnrollmentDeleted(ctx context.Context, id uuid.UUID) error {
	l.logger.InfoContext(ctx, "enrollment record deleted", "id", id)
	return nil
}

func (l *LoggingEventSink) MediaUploaded(ctx context.Context, resource *StoredResource) error {
	l.logger.InfoContext(ctx, "media uploaded", "public_id", resource.PublicID, "bytes", resource.Bytes)
	return nil
}

func (l *LoggingEventSink) MailDelivered(ctx context.Context, receipt *DeliveryReceipt) error {
	l.logger.InfoContext(ctx, "mail delivered", "message_id", receipt.MessageID, "recipients", receipt.Recipients)
	return nil
}
