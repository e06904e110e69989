package cms

import "github.com/google/uuid"

// Request DTOs. Update requests are explicit patch structures: a nil pointer
// field means "leave unchanged". Map and slice fields follow the same rule
// with nil; pass an empty (non-nil) map or slice to clear.

// CreateContentBlockRequest contains parameters for creating a content block.
type CreateContentBlockRequest struct {
	Key         string
	Kind        BlockKind
	Title       string
	Subtitle    string
	Description string
	Body        map[string]any
	Media       []StoredResource
	Active      *bool // defaults to true
	SortOrder   *int  // defaults to 0
	Metadata    map[string]any
}

// UpdateContentBlockRequest is the patch structure for content blocks.
type UpdateContentBlockRequest struct {
	Kind        *BlockKind
	Title       *string
	Subtitle    *string
	Description *string
	Body        map[string]any
	Media       []StoredResource
	Active      *bool
	SortOrder   *int
	Metadata    map[string]any
}

// ListContentBlocksRequest contains parameters for listing content blocks.
// Page and Limit fall back to 1 and 10; Limit is clamped to the service's
// maximum page size.
type ListContentBlocksRequest struct {
	Kind   *BlockKind
	Active *bool
	Page   int
	Limit  int
}

// CreateTeamMemberRequest contains parameters for creating a team member.
type CreateTeamMemberRequest struct {
	FirstName      string
	LastName       string
	Category       MemberCategory // defaults to staff
	Role           MemberRole     // defaults to member
	Email          string
	Phone          string
	Bio            string
	Photo          *StoredResource
	Achievements   []string
	Qualifications []string
	Active         *bool // defaults to true
	Featured       *bool // defaults to false
	SortOrder      *int  // defaults to 0
	Metadata       map[string]any
}

// UpdateTeamMemberRequest is the patch structure for team members.
type UpdateTeamMemberRequest struct {
	FirstName      *string
	LastName       *string
	Category       *MemberCategory
	Role           *MemberRole
	Email          *string
	Phone          *string
	Bio            *string
	Photo          *StoredResource
	Achievements   []string
	Qualifications []string
	Active         *bool
	Featured       *bool
	SortOrder      *int
	Metadata       map[string]any
}

// ListTeamMembersRequest contains parameters for listing team members.
type ListTeamMembersRequest struct {
	Category *MemberCategory
	Role     *MemberRole
	Active   *bool
	Featured *bool
	Page     int
	Limit    int
}

// CreateEnrollmentRequest contains parameters for creating an enrollment
// record. Unset counters default to zero.
type CreateEnrollmentRequest struct {
	SchoolID     uuid.UUID
	AcademicYear string
	Counts       EnrollmentCounts
	LegacyTotal  int
	Metadata     map[string]any
}

// UpdateEnrollmentRequest is the patch structure for enrollment records. The
// grade counters are patched as a whole via Counts.
type UpdateEnrollmentRequest struct {
	AcademicYear *string
	Counts       *EnrollmentCounts
	LegacyTotal  *int
	Metadata     map[string]any
}

// ListEnrollmentsRequest contains parameters for listing enrollment records.
type ListEnrollmentsRequest struct {
	SchoolID     *uuid.UUID
	AcademicYear *string
	Page         int
	Limit        int
}

// NewsletterRequest describes one newsletter broadcast. The recipient list is
// delivered as a single outbound request.
type NewsletterRequest struct {
	Title         string
	HTMLBody      string
	Recipients    []string
	FeaturedImage *StoredResource
}

// EventNoticeRequest describes one event notification broadcast.
type EventNoticeRequest struct {
	Name             string
	Date             string
	Location         string
	Description      string
	Recipients       []string
	RegistrationLink string
}
