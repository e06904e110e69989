package cms_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nappsng/cms/pkg/cms"
	mailmemory "github.com/nappsng/cms/pkg/cms/mail/memory"
	mediamemory "github.com/nappsng/cms/pkg/cms/media/memory"
	"github.com/nappsng/cms/pkg/cms/repo/memory"
)

func TestServiceCreation(t *testing.T) {
	tests := []struct {
		name        string
		options     []cms.Option
		expectError bool
	}{
		{
			name:        "no options should fail",
			options:     []cms.Option{},
			expectError: true,
		},
		{
			name: "with repository should succeed",
			options: []cms.Option{
				cms.WithRepository(memory.New()),
			},
			expectError: false,
		},
		{
			name: "with all adapters should succeed",
			options: []cms.Option{
				cms.WithRepository(memory.New()),
				cms.WithMediaStore(mediamemory.New()),
				cms.WithMailer(mailmemory.New()),
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := cms.New(tt.options...)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, svc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, svc)
			}
		})
	}
}

func setupTestService(t *testing.T) (cms.Service, *mailmemory.Mailer) {
	t.Helper()

	mailer := mailmemory.New()
	svc, err := cms.New(
		cms.WithRepository(memory.New()),
		cms.WithMediaStore(mediamemory.New()),
		cms.WithMailer(mailer),
		cms.WithEventSink(cms.NewNoopEventSink()),
	)
	require.NoError(t, err)
	require.NotNil(t, svc)

	return svc, mailer
}

func TestContentBlockLifecycle(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	created, err := svc.CreateContentBlock(ctx, cms.CreateContentBlockRequest{
		Key:   "hero",
		Kind:  cms.BlockKindSection,
		Title: "Welcome",
		Body:  map[string]any{"cta": "Join us"},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.True(t, created.Active)
	assert.Equal(t, 0, created.SortOrder)

	got, err := svc.GetContentBlock(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Key, got.Key)
	assert.Equal(t, created.Title, got.Title)

	byKey, err := svc.GetContentBlockByKey(ctx, "hero")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byKey.ID)

	newTitle := "Welcome Back"
	inactive := false
	updated, err := svc.UpdateContentBlock(ctx, created.ID, cms.UpdateContentBlockRequest{
		Title:  &newTitle,
		Active: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Welcome Back", updated.Title)
	assert.False(t, updated.Active)
	// Untouched fields survive the patch.
	assert.Equal(t, cms.BlockKindSection, updated.Kind)
	assert.Equal(t, map[string]any{"cta": "Join us"}, updated.Body)

	require.NoError(t, svc.DeleteContentBlock(ctx, created.ID))

	_, err = svc.GetContentBlock(ctx, created.ID)
	assert.ErrorIs(t, err, cms.ErrContentBlockNotFound)

	err = svc.DeleteContentBlock(ctx, created.ID)
	assert.ErrorIs(t, err, cms.ErrContentBlockNotFound)
}

func TestContentBlockValidation(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		req   cms.CreateContentBlockRequest
		field string
	}{
		{
			name:  "missing key",
			req:   cms.CreateContentBlockRequest{Kind: cms.BlockKindText, Title: "T"},
			field: "key",
		},
		{
			name:  "unknown kind",
			req:   cms.CreateContentBlockRequest{Key: "k", Kind: "banner", Title: "T"},
			field: "kind",
		},
		{
			name:  "missing title",
			req:   cms.CreateContentBlockRequest{Key: "k", Kind: cms.BlockKindText},
			field: "title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateContentBlock(ctx, tt.req)
			var verr *cms.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestContentBlockDuplicateKey(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	_, err := svc.CreateContentBlock(ctx, cms.CreateContentBlockRequest{
		Key: "about", Kind: cms.BlockKindText, Title: "About",
	})
	require.NoError(t, err)

	_, err = svc.CreateContentBlock(ctx, cms.CreateContentBlockRequest{
		Key: "about", Kind: cms.BlockKindText, Title: "About Again",
	})
	assert.ErrorIs(t, err, cms.ErrDuplicateKey)
	assert.True(t, cms.IsConflict(err))
}

func TestEmptyPatchIsNoOp(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	created, err := svc.CreateContentBlock(ctx, cms.CreateContentBlockRequest{
		Key:      "mission",
		Kind:     cms.BlockKindText,
		Title:    "Our Mission",
		Subtitle: "Since 2005",
		Metadata: map[string]any{"pinned": true},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateContentBlock(ctx, created.ID, cms.UpdateContentBlockRequest{})
	require.NoError(t, err)

	assert.Equal(t, created.Key, updated.Key)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Subtitle, updated.Subtitle)
	assert.Equal(t, created.Metadata, updated.Metadata)
	assert.Equal(t, created.Active, updated.Active)
}

func TestTeamMemberDefaultsAndRoleValidation(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	member, err := svc.CreateTeamMember(ctx, cms.CreateTeamMemberRequest{
		FirstName: "Amina",
		LastName:  "Bello",
	})
	require.NoError(t, err)
	assert.Equal(t, cms.CategoryStaff, member.Category)
	assert.Equal(t, cms.RoleMember, member.Role)
	assert.True(t, member.Active)
	assert.False(t, member.Featured)

	_, err = svc.CreateTeamMember(ctx, cms.CreateTeamMemberRequest{
		FirstName: "Chidi",
		LastName:  "Okeke",
		Category:  cms.CategoryExecutive,
		Role:      cms.RoleDirector,
	})
	var verr *cms.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "role", verr.Field)

	exec, err := svc.CreateTeamMember(ctx, cms.CreateTeamMemberRequest{
		FirstName: "Chidi",
		LastName:  "Okeke",
		Category:  cms.CategoryExecutive,
		Role:      cms.RolePresident,
	})
	require.NoError(t, err)
	assert.Equal(t, cms.RolePresident, exec.Role)
}

func TestTeamMemberUpdateKeepsRoleConsistent(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	member, err := svc.CreateTeamMember(ctx, cms.CreateTeamMemberRequest{
		FirstName: "Ngozi",
		LastName:  "Eze",
		Category:  cms.CategoryExecutive,
		Role:      cms.RoleSecretary,
	})
	require.NoError(t, err)

	// Moving to a category that does not allow the current role must fail.
	management := cms.CategoryManagement
	_, err = svc.UpdateTeamMember(ctx, member.ID, cms.UpdateTeamMemberRequest{
		Category: &management,
	})
	var verr *cms.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "role", verr.Field)

	// Moving category and role together succeeds.
	manager := cms.RoleManager
	updated, err := svc.UpdateTeamMember(ctx, member.ID, cms.UpdateTeamMemberRequest{
		Category: &management,
		Role:     &manager,
	})
	require.NoError(t, err)
	assert.Equal(t, cms.CategoryManagement, updated.Category)
	assert.Equal(t, cms.RoleManager, updated.Role)
}

func TestEnrollmentLifecycle(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()
	schoolID := uuid.New()

	created, err := svc.CreateEnrollment(ctx, cms.CreateEnrollmentRequest{
		SchoolID:     schoolID,
		AcademicYear: "2025/2026",
		Counts: cms.EnrollmentCounts{
			Primary1Boys:  20,
			Primary1Girls: 25,
			JSS1Boys:      15,
		},
		LegacyTotal: 300,
	})
	require.NoError(t, err)
	assert.Equal(t, 60, created.TotalEnrollment())

	got, err := svc.GetEnrollmentBySchoolYear(ctx, schoolID, "2025/2026")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	// Second record for the same school and year conflicts.
	_, err = svc.CreateEnrollment(ctx, cms.CreateEnrollmentRequest{
		SchoolID:     schoolID,
		AcademicYear: "2025/2026",
	})
	assert.ErrorIs(t, err, cms.ErrDuplicateEnrollment)

	// A different year for the same school is fine.
	_, err = svc.CreateEnrollment(ctx, cms.CreateEnrollmentRequest{
		SchoolID:     schoolID,
		AcademicYear: "2026/2027",
	})
	require.NoError(t, err)

	newCounts := cms.EnrollmentCounts{SSS3Boys: 8, SSS3Girls: 9}
	updated, err := svc.UpdateEnrollment(ctx, created.ID, cms.UpdateEnrollmentRequest{
		Counts: &newCounts,
	})
	require.NoError(t, err)
	assert.Equal(t, 17, updated.TotalEnrollment())
	assert.Equal(t, 300, updated.LegacyTotal)

	require.NoError(t, svc.DeleteEnrollment(ctx, created.ID))
	_, err = svc.GetEnrollment(ctx, created.ID)
	assert.ErrorIs(t, err, cms.ErrEnrollmentNotFound)
}

func TestEnrollmentValidation(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	_, err := svc.CreateEnrollment(ctx, cms.CreateEnrollmentRequest{
		AcademicYear: "2025/2026",
	})
	var verr *cms.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "school_id", verr.Field)

	_, err = svc.CreateEnrollment(ctx, cms.CreateEnrollmentRequest{
		SchoolID: uuid.New(),
	})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "academic_year", verr.Field)

	_, err = svc.CreateEnrollment(ctx, cms.CreateEnrollmentRequest{
		SchoolID:     uuid.New(),
		AcademicYear: "2025/2026",
		Counts:       cms.EnrollmentCounts{KG1Boys: -1},
	})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "counts", verr.Field)
}

func TestListContentBlocksPagination(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		order := i
		_, err := svc.CreateContentBlock(ctx, cms.CreateContentBlockRequest{
			Key:       fmt.Sprintf("block-%02d", i),
			Kind:      cms.BlockKindText,
			Title:     fmt.Sprintf("Block %02d", i),
			SortOrder: &order,
		})
		require.NoError(t, err)
	}

	page, err := svc.ListContentBlocks(ctx, cms.ListContentBlocksRequest{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, 25, page.Total)
	require.Len(t, page.Items, 10)
	assert.Equal(t, "block-10", page.Items[0].Key)
	assert.Equal(t, "block-19", page.Items[9].Key)

	// Defaults: page 1, limit 10.
	page, err = svc.ListContentBlocks(ctx, cms.ListContentBlocksRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)

	// Oversized limits are clamped.
	page, err = svc.ListContentBlocks(ctx, cms.ListContentBlocksRequest{Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, 100, page.Limit)
	assert.Len(t, page.Items, 25)
}

func TestListTeamMembersFiltering(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	seed := []struct {
		first    string
		category cms.MemberCategory
		role     cms.MemberRole
		featured bool
	}{
		{"Ada", cms.CategoryExecutive, cms.RolePresident, true},
		{"Bola", cms.CategoryExecutive, cms.RoleSecretary, false},
		{"Cyril", cms.CategoryStaff, cms.RoleOfficer, false},
		{"Dupe", cms.CategoryAdvisory, cms.RoleChairman, true},
	}
	for _, m := range seed {
		featured := m.featured
		_, err := svc.CreateTeamMember(ctx, cms.CreateTeamMemberRequest{
			FirstName: m.first,
			LastName:  "Test",
			Category:  m.category,
			Role:      m.role,
			Featured:  &featured,
		})
		require.NoError(t, err)
	}

	executive := cms.CategoryExecutive
	page, err := svc.ListTeamMembers(ctx, cms.ListTeamMembersRequest{Category: &executive})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)

	featured := true
	page, err = svc.ListTeamMembers(ctx, cms.ListTeamMembersRequest{Featured: &featured})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)

	page, err = svc.ListTeamMembers(ctx, cms.ListTeamMembersRequest{Category: &executive, Featured: &featured})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	assert.Equal(t, "Ada", page.Items[0].FirstName)
}

func TestUploadMediaAppliesDefaults(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	resource, err := svc.UploadMedia(ctx, strings.NewReader("png-bytes"), cms.UploadOptions{
		MimeType: "image/png",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resource.PublicID)
	assert.True(t, strings.HasPrefix(resource.PublicID, "napps/"), "public ID should be folder qualified: %s", resource.PublicID)
	assert.Equal(t, int64(len("png-bytes")), resource.Bytes)
	assert.NotEmpty(t, resource.URL)

	require.NoError(t, svc.DeleteMedia(ctx, resource.PublicID))

	err = svc.DeleteMedia(ctx, resource.PublicID)
	var uerr *cms.UploadError
	assert.ErrorAs(t, err, &uerr)
}

func TestSendMail(t *testing.T) {
	svc, mailer := setupTestService(t)
	ctx := context.Background()

	receipt, err := svc.SendMail(ctx, cms.Message{
		To:      []string{"parent@example.org", "teacher@example.org"},
		Subject: "Term resumption",
		Text:    "School resumes on Monday.",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.MessageID)
	assert.Equal(t, 2, receipt.Recipients)

	require.Len(t, mailer.Messages(), 1)
	assert.Equal(t, "Term resumption", mailer.Messages()[0].Subject)

	_, err = svc.SendMail(ctx, cms.Message{Subject: "No recipients", Text: "x"})
	var verr *cms.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "to", verr.Field)

	_, err = svc.SendMail(ctx, cms.Message{To: []string{"a@b.org"}, Subject: "Empty body"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "body", verr.Field)
}

func TestSendNewsletter(t *testing.T) {
	svc, mailer := setupTestService(t)
	ctx := context.Background()

	receipt, err := svc.SendNewsletter(ctx, cms.NewsletterRequest{
		Title:      "September Bulletin",
		HTMLBody:   "<p>New session updates.</p>",
		Recipients: []string{"one@example.org", "two@example.org", "three@example.org"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, receipt.Recipients)

	require.Len(t, mailer.Messages(), 1)
	sent := mailer.Messages()[0]
	assert.Equal(t, "September Bulletin", sent.Subject)
	assert.Contains(t, sent.HTML, "New session updates.")
	// One outbound request carries the whole recipient list.
	assert.Len(t, sent.To, 3)
}

func TestSendEventNotice(t *testing.T) {
	svc, mailer := setupTestService(t)
	ctx := context.Background()

	receipt, err := svc.SendEventNotice(ctx, cms.EventNoticeRequest{
		Name:             "Annual Conference",
		Date:             "2026-10-12",
		Location:         "Abuja",
		Description:      "Yearly gathering of member schools.",
		Recipients:       []string{"delegate@example.org"},
		RegistrationLink: "https://example.org/register",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, receipt.Recipients)

	require.Len(t, mailer.Messages(), 1)
	sent := mailer.Messages()[0]
	assert.Equal(t, "Upcoming event: Annual Conference", sent.Subject)
	assert.Contains(t, sent.HTML, "Abuja")
	assert.Contains(t, sent.HTML, "https://example.org/register")
}

func TestMailDeliveryFailureSurfacesAsDeliveryError(t *testing.T) {
	svc, mailer := setupTestService(t)
	ctx := context.Background()

	mailer.FailWith(fmt.Errorf("relay refused connection"))

	_, err := svc.SendNewsletter(ctx, cms.NewsletterRequest{
		Title:      "Won't go out",
		HTMLBody:   "<p>x</p>",
		Recipients: []string{"a@example.org", "b@example.org"},
	})
	var derr *cms.DeliveryError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, 2, derr.Recipients)
}

func TestAdaptersNotConfigured(t *testing.T) {
	svc, err := cms.New(cms.WithRepository(memory.New()))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.UploadMedia(ctx, strings.NewReader("x"), cms.UploadOptions{})
	assert.ErrorIs(t, err, cms.ErrMediaStoreNotConfigured)

	_, err = svc.SendMail(ctx, cms.Message{To: []string{"a@b.org"}, Subject: "s", Text: "t"})
	assert.ErrorIs(t, err, cms.ErrMailerNotConfigured)
}
