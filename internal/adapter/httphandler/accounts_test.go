package httphandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/maribelsv/showcase/internal/core/domain"
)

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Register(
	ctx context.Context, name, email, password string,
) (domain.User, string, error) {
	args := m.Called(ctx, name, email, password)
	return args.Get(0).(domain.User), args.String(1), args.Error(2)
}

func (m *MockAccountService) Login(
	ctx context.Context, email, password string,
) (domain.User, string, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(domain.User), args.String(1), args.Error(2)
}

func (m *MockAccountService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func newAccountsTestHandler(
	svc *MockAccountService, resolver *MockResolver,
) http.Handler {
	mux := http.NewServeMux()
	RegisterAccounts(mux, svc, svc)
	return WithSession(resolver, AllowJSON(mux))
}

func TestPostAccount(t *testing.T) {
	t.Parallel()

	user := domain.User{ID: "u1", Name: "Maribel", Email: "maribel@correo.com"}

	t.Run("Created", func(t *testing.T) {
		svc := &MockAccountService{}
		svc.On("Register",
			mock.Anything, "Maribel", "maribel@correo.com", "secreto",
		).Return(user, "tok", nil)

		h := newAccountsTestHandler(svc, anonResolver())

		body := strings.NewReader(
			`{"nombre":"Maribel","email":"maribel@correo.com","password":"secreto"}`,
		)
		req := httptest.NewRequest("POST", "/v1/accounts", body)
		req.Header.Set("Content-Type", "application/json")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var got SessionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "autenticado", got.Estado)
		assert.Equal(t, "tok", got.Token)
		require.NotNil(t, got.Usuario)
		assert.Equal(t, "u1", got.Usuario.ID)
	})

	t.Run("InvalidForm", func(t *testing.T) {
		svc := &MockAccountService{}
		h := newAccountsTestHandler(svc, anonResolver())

		body := strings.NewReader(
			`{"nombre":"","email":"no-es-un-email","password":"corta"}`,
		)
		req := httptest.NewRequest("POST", "/v1/accounts", body)
		req.Header.Set("Content-Type", "application/json")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var got InvalidFormResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "El nombre es obligatorio", got.Errores["nombre"])
		assert.Equal(t, "El email no es válido", got.Errores["email"])
		assert.Equal(t,
			"El password debe tener al menos 6 caracteres", got.Errores["password"])
		svc.AssertNotCalled(t, "Register",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("EmailTaken", func(t *testing.T) {
		svc := &MockAccountService{}
		svc.On("Register",
			mock.Anything, "Maribel", "maribel@correo.com", "secreto",
		).Return(domain.User{}, "", domain.ErrEmailTaken)

		h := newAccountsTestHandler(svc, anonResolver())

		body := strings.NewReader(
			`{"nombre":"Maribel","email":"maribel@correo.com","password":"secreto"}`,
		)
		req := httptest.NewRequest("POST", "/v1/accounts", body)
		req.Header.Set("Content-Type", "application/json")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestPostSession(t *testing.T) {
	t.Parallel()

	user := domain.User{ID: "u1", Name: "Maribel", Email: "maribel@correo.com"}

	t.Run("Opened", func(t *testing.T) {
		svc := &MockAccountService{}
		svc.On("Login", mock.Anything, "maribel@correo.com", "secreto").
			Return(user, "tok", nil)

		h := newAccountsTestHandler(svc, anonResolver())

		body := strings.NewReader(
			`{"email":"maribel@correo.com","password":"secreto"}`,
		)
		req := httptest.NewRequest("POST", "/v1/sessions", body)
		req.Header.Set("Content-Type", "application/json")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got SessionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "autenticado", got.Estado)
		assert.Equal(t, "tok", got.Token)
	})

	t.Run("InvalidCredentials", func(t *testing.T) {
		svc := &MockAccountService{}
		svc.On("Login", mock.Anything, "maribel@correo.com", "incorrecto").
			Return(domain.User{}, "", domain.ErrInvalidCredentials)

		h := newAccountsTestHandler(svc, anonResolver())

		body := strings.NewReader(
			`{"email":"maribel@correo.com","password":"incorrecto"}`,
		)
		req := httptest.NewRequest("POST", "/v1/sessions", body)
		req.Header.Set("Content-Type", "application/json")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestDeleteSession(t *testing.T) {
	t.Parallel()

	user := domain.User{ID: "u1", Name: "Maribel"}

	t.Run("Closed", func(t *testing.T) {
		svc := &MockAccountService{}
		svc.On("Logout", mock.Anything, "tok").Return(nil).Once()

		h := newAccountsTestHandler(svc, authResolver("tok", user))

		req := httptest.NewRequest("DELETE", "/v1/sessions", nil)
		req.Header.Set("Authorization", "Bearer tok")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("NoTokenRedirectsHome", func(t *testing.T) {
		svc := &MockAccountService{}
		h := newAccountsTestHandler(svc, anonResolver())

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("DELETE", "/v1/sessions", nil))

		require.Equal(t, http.StatusSeeOther, rec.Code)
		svc.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
	})
}

func TestGetSession(t *testing.T) {
	t.Parallel()

	t.Run("Anonymous", func(t *testing.T) {
		h := newAccountsTestHandler(&MockAccountService{}, anonResolver())

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/v1/session", nil))

		require.Equal(t, http.StatusOK, rec.Code)

		var got SessionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "anonimo", got.Estado)
		assert.Nil(t, got.Usuario)
	})

	t.Run("Authenticated", func(t *testing.T) {
		user := domain.User{ID: "u1", Name: "Maribel", Email: "maribel@correo.com"}
		h := newAccountsTestHandler(&MockAccountService{}, authResolver("tok", user))

		req := httptest.NewRequest("GET", "/v1/session", nil)
		req.Header.Set("Authorization", "Bearer tok")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got SessionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "autenticado", got.Estado)
		require.NotNil(t, got.Usuario)
		assert.Equal(t, "maribel@correo.com", got.Usuario.Email)
	})
}
