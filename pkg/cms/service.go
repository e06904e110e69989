package cms

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// Service defines the main interface for the cms library
type Service interface {
	// Content block operations
	CreateContentBlock(ctx context.Context, req CreateContentBlockRequest) (*ContentBlock, error)
	GetContentBlock(ctx context.Context, id uuid.UUID) (*ContentBlock, error)
	GetContentBlockByKey(ctx context.Context, key string) (*ContentBlock, error)
	UpdateContentBlock(ctx context.Context, id uuid.UUID, req UpdateContentBlockRequest) (*ContentBlock, error)
	DeleteContentBlock(ctx context.Context, id uuid.UUID) error
	ListContentBlocks(ctx context.Context, req ListContentBlocksRequest) (*Page[*ContentBlock], error)

	// Team member operations
	CreateTeamMember(ctx context.Context, req CreateTeamMemberRequest) (*TeamMember, error)
	GetTeamMember(ctx context.Context, id uuid.UUID) (*TeamMember, error)
	UpdateTeamMember(ctx context.Context, id uuid.UUID, req UpdateTeamMemberRequest) (*TeamMember, error)
	DeleteTeamMember(ctx context.Context, id uuid.UUID) error
	ListTeamMembers(ctx context.Context, req ListTeamMembersRequest) (*Page[*TeamMember], error)

	// Enrollment operations
	CreateEnrollment(ctx context.Context, req CreateEnrollmentRequest) (*EnrollmentRecord, error)
	GetEnrollment(ctx context.Context, id uuid.UUID) (*EnrollmentRecord, error)
	GetEnrollmentBySchoolYear(ctx context.Context, schoolID uuid.UUID, academicYear string) (*EnrollmentRecord, error)
	UpdateEnrollment(ctx context.Context, id uuid.UUID, req UpdateEnrollmentRequest) (*EnrollmentRecord, error)
	DeleteEnrollment(ctx context.Context, id uuid.UUID) error
	ListEnrollments(ctx context.Context, req ListEnrollmentsRequest) (*Page[*EnrollmentRecord], error)

	// Media operations
	UploadMedia(ctx context.Context, reader io.Reader, opts UploadOptions) (*StoredResource, error)
	DeleteMedia(ctx context.Context, publicID string) error

	// Mail operations
	SendMail(ctx context.Context, msg Message) (*DeliveryReceipt, error)
	SendNewsletter(ctx context.Context, req NewsletterRequest) (*DeliveryReceipt, error)
	SendEventNotice(ctx context.Context, req EventNoticeRequest) (*DeliveryReceipt, error)
}
