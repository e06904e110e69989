package cms

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// Repository defines the persistence boundary for all entity kinds. List
// methods return the matching page plus the total match count so callers can
// build paginated responses without a second round trip.
type Repository interface {
	// Content block operations
	CreateContentBlock(ctx context.Context, block *ContentBlock) error
	GetContentBlock(ctx context.Context, id uuid.UUID) (*ContentBlock, error)
	GetContentBlockByKey(ctx context.Context, key string) (*ContentBlock, error)
	UpdateContentBlock(ctx context.Context, block *ContentBlock) error
	DeleteContentBlock(ctx context.Context, id uuid.UUID) error
	ListContentBlocks(ctx context.Context, filter ContentBlockFilter, limit, offset int) ([]*ContentBlock, int, error)

	// Team member operations
	CreateTeamMember(ctx context.Context, member *TeamMember) error
	GetTeamMember(ctx context.Context, id uuid.UUID) (*TeamMember, error)
	UpdateTeamMember(ctx context.Context, member *TeamMember) error
	DeleteTeamMember(ctx context.Context, id uuid.UUID) error
	ListTeamMembers(ctx context.Context, filter TeamMemberFilter, limit, offset int) ([]*TeamMember, int, error)

	// Enrollment operations
	CreateEnrollment(ctx context.Context, record *EnrollmentRecord) error
	GetEnrollment(ctx context.Context, id uuid.UUID) (*EnrollmentRecord, error)
	GetEnrollmentBySchoolYear(ctx context.Context, schoolID uuid.UUID, academicYear string) (*EnrollmentRecord, error)
	UpdateEnrollment(ctx context.Context, record *EnrollmentRecord) error
	DeleteEnrollment(ctx context.Context, id uuid.UUID) error
	ListEnrollments(ctx context.Context, filter EnrollmentFilter, limit, offset int) ([]*EnrollmentRecord, int, error)
}

// ContentBlockFilter selects content blocks by equality on whitelisted fields.
// Nil fields match everything.
type ContentBlockFilter struct {
	Kind   *BlockKind
	Active *bool
}

// TeamMemberFilter selects team members by equality on whitelisted fields.
type TeamMemberFilter struct {
	Category *MemberCategory
	Role     *MemberRole
	Active   *bool
	Featured *bool
}

// EnrollmentFilter selects enrollment records by school and academic year.
type EnrollmentFilter struct {
	SchoolID     *uuid.UUID
	AcademicYear *string
}

// MediaStore defines the media host boundary. Implementations own transport,
// credentials, and URL construction; failures are reported as *UploadError.
type MediaStore interface {
	// Upload stores the payload and returns its stored-resource descriptor.
	Upload(ctx context.Context, reader io.Reader, opts UploadOptions) (*StoredResource, error)

	// Delete removes a previously uploaded resource by its public ID.
	Delete(ctx context.Context, publicID string) error
}

// UploadOptions configures a single media upload.
type UploadOptions struct {
	Folder   string // destination folder, defaults to "napps"
	PublicID string // stable identifier, generated when empty
	MimeType string
	Width    int
	Height   int
	Crop     string // defaults to "limit"
	Quality  string // defaults to "auto"
}

// Mailer defines the email delivery boundary. One Send call is one outbound
// request regardless of recipient count; failures are reported as
// *DeliveryError.
type Mailer interface {
	Send(ctx context.Context, msg Message) (*DeliveryReceipt, error)
}

// Message describes one outbound email.
type Message struct {
	To      []string
	From    string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// DeliveryReceipt acknowledges an accepted outbound message.
type DeliveryReceipt struct {
	MessageID  string
	Recipients int
	SentAt     time.Time
}

// EventSink defines the interface for event handling
type EventSink interface {
	ContentBlockCreated(ctx context.Context, block *ContentBlock) error
	ContentBlockUpdated(ctx context.Context, block *ContentBlock) error
	ContentBlockDeleted(ctx context.Context, id uuid.UUID) error

	TeamMemberCreated(ctx context.Context, member *TeamMember) error
	TeamMemberUpdated(ctx context.Context, member *TeamMember) error
	TeamMemberDeleted(ctx context.Context, id uuid.UUID) error

	EnrollmentCreated(ctx context.Context, record *EnrollmentRecord) error
	EnrollmentUpdated(ctx context.Context, record *EnrollmentRecord) error
	EnrollmentDeleted(ctx context.Context, id uuid.UUID) error

	MediaUploaded(ctx context.Context, resource *StoredResource) error
	MailDelivered(ctx context.Context, receipt *DeliveryReceipt) error
}
