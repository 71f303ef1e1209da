package uploads

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"samad-backend/internal/logger"
)

func multipartUpload(t *testing.T, fieldName, fileName, contentType string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="` + fieldName + `"; filename="` + fileName + `"`}
	if contentType != "" {
		header["Content-Type"] = []string{contentType}
	}
	part, err := writer.CreatePart(header)
	assert.NoError(t, err)
	_, err = part.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	assert.NoError(t, req.ParseMultipartForm(32<<20))

	file, fh, err := req.FormFile(fieldName)
	assert.NoError(t, err)
	return file, fh
}

func newTestSaver(t *testing.T, maxBytes int64) *Saver {
	t.Helper()
	saver, err := NewSaver(t.TempDir(), maxBytes, logger.NewLogger())
	assert.NoError(t, err)
	return saver
}

func TestSaveAcceptedImage(t *testing.T) {
	saver := newTestSaver(t, 1024)

	file, fh := multipartUpload(t, "image", "cover.png", "image/png", []byte("png-bytes"))
	path, err := saver.Save(file, fh)

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "/uploads/"))
	assert.True(t, strings.HasSuffix(path, ".png"))
	// The stored name must be regenerated, not the client's.
	assert.NotContains(t, path, "cover")

	stored, err := os.ReadFile(filepath.Join(saver.Dir(), strings.TrimPrefix(path, "/uploads/")))
	assert.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), stored)
}

func TestSaveRejectsDisallowedExtension(t *testing.T) {
	saver := newTestSaver(t, 1024)

	file, fh := multipartUpload(t, "image", "payload.exe", "application/octet-stream", []byte("nope"))
	path, err := saver.Save(file, fh)

	assert.Error(t, err)
	assert.Empty(t, path)
}

func TestSaveRejectsMismatchedContentType(t *testing.T) {
	saver := newTestSaver(t, 1024)

	file, fh := multipartUpload(t, "image", "cover.png", "image/gif", []byte("gif-bytes"))
	_, err := saver.Save(file, fh)

	assert.Error(t, err)
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	saver := newTestSaver(t, 8)

	file, fh := multipartUpload(t, "image", "big.jpg", "image/jpeg", bytes.Repeat([]byte("a"), 64))
	_, err := saver.Save(file, fh)

	assert.ErrorContains(t, err, "too large")
}

func TestTwoUploadsGetDistinctNames(t *testing.T) {
	saver := newTestSaver(t, 1024)

	file1, fh1 := multipartUpload(t, "image", "same.jpg", "image/jpeg", []byte("one"))
	path1, err := saver.Save(file1, fh1)
	assert.NoError(t, err)

	file2, fh2 := multipartUpload(t, "image", "same.jpg", "image/jpeg", []byte("two"))
	path2, err := saver.Save(file2, fh2)
	assert.NoError(t, err)

	assert.NotEqual(t, path1, path2)
}
