package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nappsng/cms/pkg/cms"
)

func mediaRouter(t *testing.T) chi.Router {
	svc, _ := setupService(t)
	router := chi.NewRouter()
	router.Mount("/", NewMediaHandler(svc).Routes())
	return router
}

func uploadFile(t *testing.T, router http.Handler, fields map[string]string, fileName, mimeType, content string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	header.Set("Content-Type", mimeType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestMediaHandler_Upload(t *testing.T) {
	router := mediaRouter(t)

	rec := uploadFile(t, router, map[string]string{"public_id": "school-logo"}, "logo.png", "image/png", "png-bytes")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resource cms.StoredResource
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resource))
	assert.Equal(t, "napps/school-logo", resource.PublicID)
	assert.Equal(t, int64(len("png-bytes")), resource.Bytes)
	assert.NotEmpty(t, resource.URL)
}

func TestMediaHandler_UploadDerivesPublicIDFromFilename(t *testing.T) {
	router := mediaRouter(t)

	rec := uploadFile(t, router, nil, "Sports Day 2026.JPG", "image/jpeg", "jpeg-bytes")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resource cms.StoredResource
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resource))
	assert.Equal(t, "napps/sports-day-2026", resource.PublicID)
}

func TestMediaHandler_UploadCustomFolder(t *testing.T) {
	router := mediaRouter(t)

	rec := uploadFile(t, router, map[string]string{
		"folder":    "gallery",
		"public_id": "sports-day",
		"width":     "800",
		"height":    "600",
	}, "photo.jpg", "image/jpeg", "jpeg-bytes")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resource cms.StoredResource
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resource))
	assert.Equal(t, "gallery/sports-day", resource.PublicID)
	assert.Equal(t, 800, resource.Width)
	assert.Equal(t, 600, resource.Height)
}

func TestMediaHandler_MissingFile(t *testing.T) {
	router := mediaRouter(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("folder", "gallery"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMediaHandler_Delete(t *testing.T) {
	router := mediaRouter(t)

	rec := uploadFile(t, router, map[string]string{"public_id": "temp-banner"}, "banner.png", "image/png", "bytes")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resource cms.StoredResource
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resource))
	require.True(t, strings.Contains(resource.PublicID, "/"))

	req := httptest.NewRequest(http.MethodDelete, "/"+resource.PublicID, nil)
	del := httptest.NewRecorder()
	router.ServeHTTP(del, req)
	assert.Equal(t, http.StatusNoContent, del.Code)

	// Second delete reports the media host failure.
	again := httptest.NewRecorder()
	router.ServeHTTP(again, httptest.NewRequest(http.MethodDelete, "/"+resource.PublicID, nil))
	assert.Equal(t, http.StatusBadGateway, again.Code)
}
