package handler

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aaryan-549/CivicPulse/internal/media"
)

type fakeUploader struct {
	result *media.UploadResult
	err    error
	folder string
}

func (f *fakeUploader) Upload(ctx context.Context, data []byte, folder string) (*media.UploadResult, error) {
	f.folder = folder
	return f.result, f.err
}

func newMediaTestRouter(u media.Uploader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{Media: u}

	r := gin.New()
	r.POST("/upload", h.UploadMedia)
	return r
}

func imageForm(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("image", "photo.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestUploadMedia(t *testing.T) {
	up := &fakeUploader{result: &media.UploadResult{
		URL:      "https://cdn.example/uploads/photo.jpg",
		PublicID: "uploads/photo",
	}}
	r := newMediaTestRouter(up)

	body, contentType := imageForm(t)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "uploads", up.folder)
	assert.Contains(t, w.Body.String(), "https://cdn.example/uploads/photo.jpg")
	assert.Contains(t, w.Body.String(), `"publicId":"uploads/photo"`)
}

func TestUploadMedia_NoImage(t *testing.T) {
	r := newMediaTestRouter(&fakeUploader{})

	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No image provided")
}

func TestUploadMedia_StoreFailure(t *testing.T) {
	r := newMediaTestRouter(&fakeUploader{err: errors.New("bucket unavailable")})

	body, contentType := imageForm(t)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to upload image")
}
