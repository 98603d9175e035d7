package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/nagaralert/internal/pkg/response"
	"github.com/xyz-asif/nagaralert/internal/pkg/storage"
)

type stubUploader struct {
	err   error
	calls int
}

func (s *stubUploader) UploadImage(_ context.Context, data []byte, filename string) (*storage.UploadResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &storage.UploadResult{URL: "https://cdn.test/" + filename, FileSize: int64(len(data))}, nil
}

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func form(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func newRouter(up storage.Uploader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/api"), r.Group("/api/v1"), up, func(c *gin.Context) { c.Next() })
	return r
}

func post(r *gin.Engine, path string, body *bytes.Buffer, ct string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", ct)
	r.ServeHTTP(w, req)
	return w
}

func TestUploadImage_Legacy(t *testing.T) {
	body, ct := form(t, "image", "pothole.png", pngBytes)

	w := post(newRouter(&stubUploader{}), "/api/upload-image", body, ct)

	require.Equal(t, http.StatusOK, w.Code)
	var got UploadImageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, UploadImageResponse{Success: true, URL: "https://cdn.test/pothole.png"}, got)
}

func TestUploadImage_MissingImage(t *testing.T) {
	body, ct := form(t, "file", "pothole.png", pngBytes)
	up := &stubUploader{}

	w := post(newRouter(up), "/api/upload-image", body, ct)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var got response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.False(t, got.Success)
	assert.Equal(t, "MISSING_IMAGE", got.Code)
	assert.Zero(t, up.calls)
}

func TestUploadImage_RejectsNonImage(t *testing.T) {
	body, ct := form(t, "image", "notes.txt", []byte("plain text"))

	w := post(newRouter(&stubUploader{}), "/api/upload-image", body, ct)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var got response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "INVALID_FILE", got.Code)
}

func TestUploadMedia_StorageFailure(t *testing.T) {
	body, ct := form(t, "image", "pothole.png", pngBytes)

	w := post(newRouter(&stubUploader{err: errors.New("bucket gone")}), "/api/v1/media/upload", body, ct)

	require.Equal(t, http.StatusBadGateway, w.Code)
	var got response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "UPLOAD_FAILED", got.Code)
}

func TestUploadMedia_Envelope(t *testing.T) {
	body, ct := form(t, "image", "pothole.png", pngBytes)

	w := post(newRouter(&stubUploader{}), "/api/v1/media/upload", body, ct)

	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Success bool                 `json:"success"`
		Data    storage.UploadResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, got.Success)
	assert.Equal(t, int64(len(pngBytes)), got.Data.FileSize)
}
