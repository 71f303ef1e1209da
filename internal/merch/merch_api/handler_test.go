package merch_api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"samad-backend/internal/kafka"
	"samad-backend/internal/logger"
	"samad-backend/internal/merch"
	"samad-backend/internal/models"
	"samad-backend/internal/storage"
	"samad-backend/internal/uploads"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	log := logger.NewLogger()
	saver, err := uploads.NewSaver(t.TempDir(), 5<<20, log)
	require.NoError(t, err)

	service := merch.NewMerchService(storage.NewMemStorage(""), nil, nil, kafka.NoopPublisher{}, log)
	r := chi.NewRouter()
	r.Route("/api/merch", NewHandler(service, saver).Routes)
	return r
}

func productForm(t *testing.T, fields map[string]string, imageName string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if imageName != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="`+imageName+`"`)
		h.Set("Content-Type", "image/png")
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestCreateProductWithoutImageSerializesNull(t *testing.T) {
	router := newTestRouter(t)

	body, contentType := productForm(t, map[string]string{
		"name": "Tour Tee", "price": "15000",
	}, "")
	req := httptest.NewRequest(http.MethodPost, "/api/merch", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// No upload means imageUrl is null, never "".
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Equal(t, "null", string(raw["imageUrl"]))
}

func TestCreateProductWithImageStoresServedPath(t *testing.T) {
	router := newTestRouter(t)

	body, contentType := productForm(t, map[string]string{
		"name": "Tour Tee", "price": "15000", "stock": "10",
	}, "tee.png")
	req := httptest.NewRequest(http.MethodPost, "/api/merch", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var product models.MerchProduct
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))
	require.NotNil(t, product.ImageURL)
	assert.Contains(t, *product.ImageURL, "/uploads/")
	assert.Contains(t, *product.ImageURL, ".png")
	assert.Equal(t, 10, product.Stock)
}

func TestCreateProductRequiresNameAndPrice(t *testing.T) {
	router := newTestRouter(t)

	body, contentType := productForm(t, map[string]string{"price": "15000"}, "")
	req := httptest.NewRequest(http.MethodPost, "/api/merch", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
