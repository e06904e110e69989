package cms

import (
	"time"

	"github.com/google/uuid"
)

// BlockKind is the domain type for content block kinds.
type BlockKind string

// Content block kind constants (typed).
const (
	BlockKindText    BlockKind = "text"
	BlockKindImage   BlockKind = "image"
	BlockKindGallery BlockKind = "gallery"
	BlockKindPerson  BlockKind = "person"
	BlockKindSection BlockKind = "section"
)

// IsValid reports whether k is one of the known block kinds.
func (k BlockKind) IsValid() bool {
	switch k {
	case BlockKindText, BlockKindImage, BlockKindGallery, BlockKindPerson, BlockKindSection:
		return true
	}
	return false
}

// ParseBlockKind maps an incoming untyped string to a BlockKind.
func ParseBlockKind(s string) (BlockKind, error) {
	k := BlockKind(s)
	if !k.IsValid() {
		return "", &ValidationError{Field: "kind", Reason: "unknown content block kind: " + s}
	}
	return k, nil
}

// MemberCategory is the domain type for team member categories.
type MemberCategory string

// Team member category constants (typed).
const (
	CategoryExecutive  MemberCategory = "executive"
	CategoryManagement MemberCategory = "management"
	CategoryStaff      MemberCategory = "staff"
	CategoryAdvisory   MemberCategory = "advisory"
)

// MemberRole is the domain type for team member roles.
type MemberRole string

// Team member role constants (typed).
const (
	RolePresident     MemberRole = "president"
	RoleVicePresident MemberRole = "vice_president"
	RoleSecretary     MemberRole = "secretary"
	RoleTreasurer     MemberRole = "treasurer"
	RolePRO           MemberRole = "public_relations_officer"
	RoleDirector      MemberRole = "director"
	RoleManager       MemberRole = "manager"
	RoleCoordinator   MemberRole = "coordinator"
	RoleOfficer       MemberRole = "officer"
	RoleAssistant     MemberRole = "assistant"
	RoleMember        MemberRole = "member"
	RoleChairman      MemberRole = "chairman"
	RoleLegalAdviser  MemberRole = "legal_adviser"
)

// rolesByCategory defines which roles are valid within each category.
var rolesByCategory = map[MemberCategory][]MemberRole{
	CategoryExecutive:  {RolePresident, RoleVicePresident, RoleSecretary, RoleTreasurer, RolePRO},
	CategoryManagement: {RoleDirector, RoleManager, RoleCoordinator},
	CategoryStaff:      {RoleOfficer, RoleAssistant, RoleMember},
	CategoryAdvisory:   {RoleChairman, RoleLegalAdviser, RoleMember},
}

// IsValid reports whether c is one of the known categories.
func (c MemberCategory) IsValid() bool {
	_, ok := rolesByCategory[c]
	return ok
}

// Allows reports whether role r is valid within category c.
func (c MemberCategory) Allows(r MemberRole) bool {
	for _, role := range rolesByCategory[c] {
		if role == r {
			return true
		}
	}
	return false
}

// ParseMemberCategory maps an incoming untyped string to a MemberCategory.
func ParseMemberCategory(s string) (MemberCategory, error) {
	c := MemberCategory(s)
	if !c.IsValid() {
		return "", &ValidationError{Field: "category", Reason: "unknown team member category: " + s}
	}
	return c, nil
}

// ParseMemberRole maps an incoming untyped string to a MemberRole. Whether the
// role is allowed for a given category is checked separately via Allows.
func ParseMemberRole(s string) (MemberRole, error) {
	r := MemberRole(s)
	for _, roles := range rolesByCategory {
		for _, role := range roles {
			if role == r {
				return r, nil
			}
		}
	}
	return "", &ValidationError{Field: "role", Reason: "unknown team member role: " + s}
}

// StoredResource describes a resource held by the media host. It is produced
// by a MediaStore and embedded by reference into content blocks and team
// members; it is never persisted as its own collection.
type StoredResource struct {
	URL          string    `json:"url"`
	PublicID     string    `json:"public_id"`
	Format       string    `json:"format,omitempty"`
	ResourceType string    `json:"resource_type,omitempty"`
	Bytes        int64     `json:"bytes,omitempty"`
	Width        int       `json:"width,omitempty"`
	Height       int       `json:"height,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ContentBlock represents a single homepage content unit.
type ContentBlock struct {
	ID          uuid.UUID        `json:"id"`
	Key         string           `json:"key"`
	Kind        BlockKind        `json:"kind"`
	Title       string           `json:"title"`
	Subtitle    string           `json:"subtitle,omitempty"`
	Description string           `json:"description,omitempty"`
	Body        map[string]any   `json:"body,omitempty"`
	Media       []StoredResource `json:"media,omitempty"`
	Active      bool             `json:"active"`
	SortOrder   int              `json:"sort_order"`
	Metadata    map[string]any   `json:"metadata,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// TeamMember represents one person in the organization directory.
type TeamMember struct {
	ID             uuid.UUID       `json:"id"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Category       MemberCategory  `json:"category"`
	Role           MemberRole      `json:"role"`
	Email          string          `json:"email,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	Bio            string          `json:"bio,omitempty"`
	Photo          *StoredResource `json:"photo,omitempty"`
	Achievements   []string        `json:"achievements,omitempty"`
	Qualifications []string        `json:"qualifications,omitempty"`
	Active         bool            `json:"active"`
	Featured       bool            `json:"featured"`
	SortOrder      int             `json:"sort_order"`
	Metadata       map[string]any  `json:"metadata,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// EnrollmentRecord is one school's per-grade, per-gender headcount snapshot
// for one academic year. Exactly one record exists per (SchoolID,
// AcademicYear) pair; the store's uniqueness constraint enforces it.
type EnrollmentRecord struct {
	ID           uuid.UUID        `json:"id"`
	SchoolID     uuid.UUID        `json:"school_id"`
	AcademicYear string           `json:"academic_year"`
	Counts       EnrollmentCounts `json:"counts"`
	// LegacyTotal is the single scalar counter carried over from records
	// that predate per-grade counting. It is not part of TotalEnrollment.
	LegacyTotal int            `json:"legacy_total,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Page is one page of a filtered listing.
type Page[T any] struct {
	Items []T `json:"items"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}
