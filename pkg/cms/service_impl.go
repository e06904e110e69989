package cms

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultPage  = 1
	defaultLimit = 10

	// maxListLimit bounds response sizes for list queries. The upstream
	// contract leaves the upper bound open; 100 keeps a worst-case page
	// comfortably small while covering every current admin listing.
	maxListLimit = 100

	defaultMediaFolder  = "napps"
	defaultMediaCrop    = "limit"
	defaultMediaQuality = "auto"
)

// service implements the Service interface
type service struct {
	repository Repository
	media      MediaStore
	mailer     Mailer
	eventSink  EventSink
	maxLimit   int
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithMediaStore sets the media host adapter for the service
func WithMediaStore(store MediaStore) Option {
	return func(s *service) {
		s.media = store
	}
}

// WithMailer sets the email adapter for the service
func WithMailer(mailer Mailer) Option {
	return func(s *service) {
		s.mailer = mailer
	}
}

// WithEventSink sets the event sink for the service
func WithEventSink(sink EventSink) Option {
	return func(s *service) {
		s.eventSink = sink
	}
}

// WithListLimit overrides the maximum page size for list queries
func WithListLimit(max int) Option {
	return func(s *service) {
		if max > 0 {
			s.maxLimit = max
		}
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		maxLimit: maxListLimit,
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.eventSink == nil {
		s.eventSink = NewNoopEventSink()
	}

	return s, nil
}

// normalizePage applies page/limit defaults and clamps limit, returning the
// normalized pair plus the row offset.
func (s *service) normalizePage(page, limit int) (int, int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	return page, limit, (page - 1) * limit
}

// Content block operations

func (s *service) CreateContentBlock(ctx context.Context, req CreateContentBlockRequest) (*ContentBlock, error) {
	if strings.TrimSpace(req.Key) == "" {
		return nil, &ValidationError{Field: "key", Reason: "must not be empty"}
	}
	if !req.Kind.IsValid() {
		return nil, &ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown content block kind: %s", req.Kind)}
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
	}

	now := time.Now().UTC()
	block := &ContentBlock{
		ID:          uuid.New(),
		Key:         req.Key,
		Kind:        req.Kind,
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		Body:        req.Body,
		Media:       req.Media,
		Active:      true,
		SortOrder:   0,
		Metadata:    req.Metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Active != nil {
		block.Active = *req.Active
	}
	if req.SortOrder != nil {
		block.SortOrder = *req.SortOrder
	}

	if err := s.repository.CreateContentBlock(ctx, block); err != nil {
		return nil, err
	}

	// Events are advisory; never fail the operation for them.
	_ = s.eventSink.ContentBlockCreated(ctx, block)

	return block, nil
}

func (s *service) GetContentBlock(ctx context.Context, id uuid.UUID) (*ContentBlock, error) {
	return s.repository.GetContentBlock(ctx, id)
}

func (s *service) GetContentBlockByKey(ctx context.Context, key string) (*ContentBlock, error) {
	return s.repository.GetContentBlockByKey(ctx, key)
}

func (s *service) UpdateContentBlock(ctx context.Context, id uuid.UUID, req UpdateContentBlockRequest) (*ContentBlock, error) {
	block, err := s.repository.GetContentBlock(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Kind != nil {
		if !req.Kind.IsValid() {
			return nil, &ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown content block kind: %s", *req.Kind)}
		}
		block.Kind = *req.Kind
	}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
		}
		block.Title = *req.Title
	}
	if req.Subtitle != nil {
		block.Subtitle = *req.Subtitle
	}
	if req.Description != nil {
		block.Description = *req.Description
	}
	if req.Body != nil {
		block.Body = req.Body
	}
	if req.Media != nil {
		block.Media = req.Media
	}
	if req.Active != nil {
		block.Active = *req.Active
	}
	if req.SortOrder != nil {
		block.SortOrder = *req.SortOrder
	}
	if req.Metadata != nil {
		block.Metadata = req.Metadata
	}
	block.UpdatedAt = time.Now().UTC()

	if err := s.repository.UpdateContentBlock(ctx, block); err != nil {
		return nil, err
	}

	_ = s.eventSink.ContentBlockUpdated(ctx, block)

	return block, nil
}

func (s *service) DeleteContentBlock(ctx context.Context, id uuid.UUID) error {
	if err := s.repository.DeleteContentBlock(ctx, id); err != nil {
		return err
	}

	_ = s.eventSink.ContentBlockDeleted(ctx, id)

	return nil
}

func (s *service) ListContentBlocks(ctx context.Context, req ListContentBlocksRequest) (*Page[*ContentBlock], error) {
	page, limit, offset := s.normalizePage(req.Page, req.Limit)

	filter := ContentBlockFilter{Kind: req.Kind, Active: req.Active}
	items, total, err := s.repository.ListContentBlocks(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}

	return &Page[*ContentBlock]{Items: items, Page: page, Limit: limit, Total: total}, nil
}

// Team member operations

func (s *service) CreateTeamMember(ctx context.Context, req CreateTeamMemberRequest) (*TeamMember, error) {
	if strings.TrimSpace(req.FirstName) == "" {
		return nil, &ValidationError{Field: "first_name", Reason: "must not be empty"}
	}
	if strings.TrimSpace(req.LastName) == "" {
		return nil, &ValidationError{Field: "last_name", Reason: "must not be empty"}
	}

	category := req.Category
	if category == "" {
		category = CategoryStaff
	}
	role := req.Role
	if role == "" {
		role = RoleMember
	}
	if !category.IsValid() {
		return nil, &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown team member category: %s", category)}
	}
	if !category.Allows(role) {
		return nil, &ValidationError{Field: "role", Reason: fmt.Sprintf("role %q is not valid for category %q", role, category)}
	}

	now := time.Now().UTC()
	member := &TeamMember{
		ID:             uuid.New(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Category:       category,
		Role:           role,
		Email:          req.Email,
		Phone:          req.Phone,
		Bio:            req.Bio,
		Photo:          req.Photo,
		Achievements:   req.Achievements,
		Qualifications: req.Qualifications,
		Active:         true,
		Featured:       false,
		SortOrder:      0,
		Metadata:       req.Metadata,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if req.Active != nil {
		member.Active = *req.Active
	}
	if req.Featured != nil {
		member.Featured = *req.Featured
	}
	if req.SortOrder != nil {
		member.SortOrder = *req.SortOrder
	}

	if err := s.repository.CreateTeamMember(ctx, member); err != nil {
		return nil, err
	}

	_ = s.eventSink.TeamMemberCreated(ctx, member)

	return member, nil
}

func (s *service) GetTeamMember(ctx context.Context, id uuid.UUID) (*TeamMember, error) {
	return s.repository.GetTeamMember(ctx, id)
}

func (s *service) UpdateTeamMember(ctx context.Context, id uuid.UUID, req UpdateTeamMemberRequest) (*TeamMember, error) {
	member, err := s.repository.GetTeamMember(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		if strings.TrimSpace(*req.FirstName) == "" {
			return nil, &ValidationError{Field: "first_name", Reason: "must not be empty"}
		}
		member.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		if strings.TrimSpace(*req.LastName) == "" {
			return nil, &ValidationError{Field: "last_name", Reason: "must not be empty"}
		}
		member.LastName = *req.LastName
	}
	if req.Category != nil {
		member.Category = *req.Category
	}
	if req.Role != nil {
		member.Role = *req.Role
	}
	if !member.Category.IsValid() {
		return nil, &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown team member category: %s", member.Category)}
	}
	if !member.Category.Allows(member.Role) {
		return nil, &ValidationError{Field: "role", Reason: fmt.Sprintf("role %q is not valid for category %q", member.Role, member.Category)}
	}
	if req.Email != nil {
		member.Email = *req.Email
	}
	if req.Phone != nil {
		member.Phone = *req.Phone
	}
	if req.Bio != nil {
		member.Bio = *req.Bio
	}
	if req.Photo != nil {
		member.Photo = req.Photo
	}
	if req.Achievements != nil {
		member.Achievements = req.Achievements
	}
	if req.Qualifications != nil {
		member.Qualifications = req.Qualifications
	}
	if req.Active != nil {
		member.Active = *req.Active
	}
	if req.Featured != nil {
		member.Featured = *req.Featured
	}
	if req.SortOrder != nil {
		member.SortOrder = *req.SortOrder
	}
	if req.Metadata != nil {
		member.Metadata = req.Metadata
	}
	member.UpdatedAt = time.Now().UTC()

	if err := s.repository.UpdateTeamMember(ctx, member); err != nil {
		return nil, err
	}

	_ = s.eventSink.TeamMemberUpdated(ctx, member)

	return member, nil
}

func (s *service) DeleteTeamMember(ctx context.Context, id uuid.UUID) error {
	if err := s.repository.DeleteTeamMember(ctx, id); err != nil {
		return err
	}

	_ = s.eventSink.TeamMemberDeleted(ctx, id)

	return nil
}

func (s *service) ListTeamMembers(ctx context.Context, req ListTeamMembersRequest) (*Page[*TeamMember], error) {
	page, limit, offset := s.normalizePage(req.Page, req.Limit)

	filter := TeamMemberFilter{
		Category: req.Category,
		Role:     req.Role,
		Active:   req.Active,
		Featured: req.Featured,
	}
	items, total, err := s.repository.ListTeamMembers(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}

	return &Page[*TeamMember]{Items: items, Page: page, Limit: limit, Total: total}, nil
}

// Enrollment operations

func (s *service) CreateEnrollment(ctx context.Context, req CreateEnrollmentRequest) (*EnrollmentRecord, error) {
	if req.SchoolID == uuid.Nil {
		return nil, &ValidationError{Field: "school_id", Reason: "must not be empty"}
	}
	if strings.TrimSpace(req.AcademicYear) == "" {
		return nil, &ValidationError{Field: "academic_year", Reason: "must not be empty"}
	}
	if err := req.Counts.validate(); err != nil {
		return nil, err
	}
	if req.LegacyTotal < 0 {
		return nil, &ValidationError{Field: "legacy_total", Reason: "must not be negative"}
	}

	now := time.Now().UTC()
	record := &EnrollmentRecord{
		ID:           uuid.New(),
		SchoolID:     req.SchoolID,
		AcademicYear: req.AcademicYear,
		Counts:       req.Counts,
		LegacyTotal:  req.LegacyTotal,
		Metadata:     req.Metadata,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Uniqueness of (school, academic year) is left to the store's
	// constraint so concurrent creates can't both win.
	if err := s.repository.CreateEnrollment(ctx, record); err != nil {
		return nil, err
	}

	_ = s.eventSink.EnrollmentCreated(ctx, record)

	return record, nil
}

func (s *service) GetEnrollment(ctx context.Context, id uuid.UUID) (*EnrollmentRecord, error) {
	return s.repository.GetEnrollment(ctx, id)
}

func (s *service) GetEnrollmentBySchoolYear(ctx context.Context, schoolID uuid.UUID, academicYear string) (*EnrollmentRecord, error) {
	return s.repository.GetEnrollmentBySchoolYear(ctx, schoolID, academicYear)
}

func (s *service) UpdateEnrollment(ctx context.Context, id uuid.UUID, req UpdateEnrollmentRequest) (*EnrollmentRecord, error) {
	record, err := s.repository.GetEnrollment(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.AcademicYear != nil {
		if strings.TrimSpace(*req.AcademicYear) == "" {
			return nil, &ValidationError{Field: "academic_year", Reason: "must not be empty"}
		}
		record.AcademicYear = *req.AcademicYear
	}
	if req.Counts != nil {
		if err := req.Counts.validate(); err != nil {
			return nil, err
		}
		record.Counts = *req.Counts
	}
	if req.LegacyTotal != nil {
		if *req.LegacyTotal < 0 {
			return nil, &ValidationError{Field: "legacy_total", Reason: "must not be negative"}
		}
		record.LegacyTotal = *req.LegacyTotal
	}
	if req.Metadata != nil {
		record.Metadata = req.Metadata
	}
	record.UpdatedAt = time.Now().UTC()

	if err := s.repository.UpdateEnrollment(ctx, record); err != nil {
		return nil, err
	}

	_ = s.eventSink.EnrollmentUpdated(ctx, record)

	return record, nil
}

func (s *service) DeleteEnrollment(ctx context.Context, id uuid.UUID) error {
	if err := s.repository.DeleteEnrollment(ctx, id); err != nil {
		return err
	}

	_ = s.eventSink.EnrollmentDeleted(ctx, id)

	return nil
}

func (s *service) ListEnrollments(ctx context.Context, req ListEnrollmentsRequest) (*Page[*EnrollmentRecord], error) {
	page, limit, offset := s.normalizePage(req.Page, req.Limit)

	filter := EnrollmentFilter{SchoolID: req.SchoolID, AcademicYear: req.AcademicYear}
	items, total, err := s.repository.ListEnrollments(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}

	return &Page[*EnrollmentRecord]{Items: items, Page: page, Limit: limit, Total: total}, nil
}

// Media operations

func (s *service) UploadMedia(ctx context.Context, reader io.Reader, opts UploadOptions) (*StoredResource, error) {
	if s.media == nil {
		return nil, ErrMediaStoreNotConfigured
	}

	if opts.Folder == "" {
		opts.Folder = defaultMediaFolder
	}
	if opts.PublicID == "" {
		opts.PublicID = uuid.New().String()
	}
	if opts.Crop == "" {
		opts.Crop = defaultMediaCrop
	}
	if opts.Quality == "" {
		opts.Quality = defaultMediaQuality
	}

	resource, err := s.media.Upload(ctx, reader, opts)
	if err != nil {
		return nil, err
	}

	_ = s.eventSink.MediaUploaded(ctx, resource)

	return resource, nil
}

func (s *service) DeleteMedia(ctx context.Context, publicID string) error {
	if s.media == nil {
		return ErrMediaStoreNotConfigured
	}
	if strings.TrimSpace(publicID) == "" {
		return &ValidationError{Field: "public_id", Reason: "must not be empty"}
	}
	return s.media.Delete(ctx, publicID)
}

// Mail operations

func (s *service) SendMail(ctx context.Context, msg Message) (*DeliveryReceipt, error) {
	if s.mailer == nil {
		return nil, ErrMailerNotConfigured
	}
	if len(msg.To) == 0 {
		return nil, &ValidationError{Field: "to", Reason: "at least one recipient is required"}
	}
	if strings.TrimSpace(msg.Subject) == "" {
		return nil, &ValidationError{Field: "subject", Reason: "must not be empty"}
	}
	if msg.HTML == "" && msg.Text == "" {
		return nil, &ValidationError{Field: "body", Reason: "either html or text body is required"}
	}

	receipt, err := s.mailer.Send(ctx, msg)
	if err != nil {
		return nil, err
	}

	_ = s.eventSink.MailDelivered(ctx, receipt)

	return receipt, nil
}

func (s *service) SendNewsletter(ctx context.Context, req NewsletterRequest) (*DeliveryReceipt, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if len(req.Recipients) == 0 {
		return nil, &ValidationError{Field: "recipients", Reason: "at least one recipient is required"}
	}

	html, err := renderNewsletter(req)
	if err != nil {
		return nil, err
	}

	return s.SendMail(ctx, Message{
		To:      req.Recipients,
		Subject: req.Title,
		HTML:    html,
	})
}

func (s *service) SendEventNotice(ctx context.Context, req EventNoticeRequest) (*DeliveryReceipt, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if len(req.Recipients) == 0 {
		return nil, &ValidationError{Field: "recipients", Reason: "at least one recipient is required"}
	}

	html, err := renderEventNotice(req)
	if err != nil {
		return nil, err
	}

	return s.SendMail(ctx, Message{
		To:      req.Recipients,
		Subject: "Upcoming event: " + req.Name,
		HTML:    html,
	})
}
