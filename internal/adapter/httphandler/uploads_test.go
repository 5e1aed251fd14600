package httphandler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/maribelsv/showcase/internal/core/domain"
)

type MockImageSaver struct {
	mock.Mock
}

func (m *MockImageSaver) SaveImage(
	ctx context.Context, filename, contentType string, data io.Reader,
) (string, error) {
	args := m.Called(ctx, filename, contentType, data)
	return args.String(0), args.Error(1)
}

func newUploadsTestHandler(
	images *MockImageSaver, resolver *MockResolver,
) http.Handler {
	mux := http.NewServeMux()
	RegisterUploads(mux, images)
	return WithSession(resolver, AllowJSON(mux))
}

func multipartImage(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestPostImage(t *testing.T) {
	t.Parallel()

	user := domain.User{ID: "u1", Name: "Maribel"}

	t.Run("Saved", func(t *testing.T) {
		images := &MockImageSaver{}
		images.On("SaveImage",
			mock.Anything, "logo.png", mock.Anything, mock.Anything,
		).Return("https://storage.googleapis.com/b/productos/x.png", nil)

		h := newUploadsTestHandler(images, authResolver("tok", user))

		body, contentType := multipartImage(t, "imagen", "logo.png", []byte("png-bytes"))
		req := httptest.NewRequest("POST", "/v1/images", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer tok")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "productos/x.png")
	})

	t.Run("AnonymousRedirectsHome", func(t *testing.T) {
		images := &MockImageSaver{}
		h := newUploadsTestHandler(images, anonResolver())

		body, contentType := multipartImage(t, "imagen", "logo.png", []byte("png-bytes"))
		req := httptest.NewRequest("POST", "/v1/images", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		images.AssertNotCalled(t, "SaveImage",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MissingFileField", func(t *testing.T) {
		images := &MockImageSaver{}
		h := newUploadsTestHandler(images, authResolver("tok", user))

		body, contentType := multipartImage(t, "archivo", "logo.png", []byte("png-bytes"))
		req := httptest.NewRequest("POST", "/v1/images", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer tok")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("OversizedBodyRejected", func(t *testing.T) {
		images := &MockImageSaver{}
		h := newUploadsTestHandler(images, authResolver("tok", user))

		big := make([]byte, maxUploadBytes+1)
		body, contentType := multipartImage(t, "imagen", "big.png", big)
		req := httptest.NewRequest("POST", "/v1/images", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer tok")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		images.AssertNotCalled(t, "SaveImage",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
