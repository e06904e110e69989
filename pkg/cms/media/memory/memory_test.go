package memory_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nappsng/cms/pkg/cms"
	"github.com/nappsng/cms/pkg/cms/media/memory"
)

func TestUploadClassifiesResourceTypeByMime(t *testing.T) {
	tests := []struct {
		name         string
		mimeType     string
		resourceType string
		format       string
	}{
		{"jpeg image", "image/jpeg", "image", "jpg"},
		{"png image", "image/png", "image", "png"},
		{"video", "video/mp4", "video", ""},
		{"pdf", "application/pdf", "raw", "pdf"},
		{"unknown", "application/octet-stream", "raw", ""},
	}

	store := memory.New()
	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resource, err := store.Upload(ctx, strings.NewReader("payload"), cms.UploadOptions{
				Folder:   "napps",
				PublicID: strings.ReplaceAll(tt.name, " ", "-"),
				MimeType: tt.mimeType,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.resourceType, resource.ResourceType)
			assert.Equal(t, tt.format, resource.Format)
		})
	}
}

func TestUploadQualifiesPublicIDWithFolder(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	resource, err := store.Upload(ctx, strings.NewReader("logo"), cms.UploadOptions{
		Folder:   "napps",
		PublicID: "school-logo",
		MimeType: "image/png",
	})
	require.NoError(t, err)
	assert.Equal(t, "napps/school-logo", resource.PublicID)
	assert.Equal(t, "memory://napps/school-logo", resource.URL)

	data, ok := store.Get("napps/school-logo")
	require.True(t, ok)
	assert.Equal(t, []byte("logo"), data)

	// An already-qualified ID is stored as given.
	resource, err = store.Upload(ctx, strings.NewReader("banner"), cms.UploadOptions{
		Folder:   "napps",
		PublicID: "gallery/banner",
		MimeType: "image/png",
	})
	require.NoError(t, err)
	assert.Equal(t, "gallery/banner", resource.PublicID)
}
