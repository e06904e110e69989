package memory

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/nappsng/cms/pkg/cms"
)

// Store is an in-memory implementation of the cms.MediaStore interface.
// Useful for tests and development servers without a media host.
type Store struct {
	mu      sync.RWMutex
	objects map[string][]byte
	options map[string]cms.UploadOptions
}

// New creates a new in-memory media store
func New() *Store {
	return &Store{
		objects: make(map[string][]byte),
		options: make(map[string]cms.UploadOptions),
	}
}

// Upload stores the payload in memory and returns its descriptor.
func (s *Store) Upload(ctx context.Context, reader io.Reader, opts cms.UploadOptions) (*cms.StoredResource, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, &cms.UploadError{Backend: "memory", Op: "upload", Err: err}
	}

	id := publicID(opts)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[id] = data
	s.options[id] = opts

	return &cms.StoredResource{
		URL:          "memory://" + id,
		PublicID:     id,
		Format:       formatFromMime(opts.MimeType),
		ResourceType: resourceTypeFromMime(opts.MimeType),
		Bytes:        int64(len(data)),
		Width:        opts.Width,
		Height:       opts.Height,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// Delete removes a stored payload by public ID.
func (s *Store) Delete(ctx context.Context, publicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.objects[publicID]; !exists {
		return &cms.UploadError{Backend: "memory", Op: "delete", Err: errors.New("resource not found")}
	}
	delete(s.objects, publicID)
	delete(s.options, publicID)
	return nil
}

// Get returns the raw stored payload; test helper.
func (s *Store) Get(publicID string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.objects[publicID]
	return data, ok
}

// Options returns the options recorded for an upload; test helper.
func (s *Store) Options(publicID string) (cms.UploadOptions, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	opts, ok := s.options[publicID]
	return opts, ok
}

// publicID folder-qualifies the identifier unless it already carries a path.
func publicID(opts cms.UploadOptions) string {
	if opts.Folder == "" || strings.Contains(opts.PublicID, "/") {
		return opts.PublicID
	}
	return opts.Folder + "/" + opts.PublicID
}

// resourceTypeFromMime mirrors the s3 store's classification so the two
// backends report the same descriptor for the same payload.
func resourceTypeFromMime(mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return "image"
	case strings.HasPrefix(mimeType, "video/"):
		return "video"
	}
	return "raw"
}

func formatFromMime(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	case "application/pdf":
		return "pdf"
	}
	return ""
}
