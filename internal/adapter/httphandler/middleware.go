package httphandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/maribelsv/showcase/internal/adapter/storage"
	"github.com/maribelsv/showcase/internal/core/domain"
	"github.com/maribelsv/showcase/internal/core/port"
)

func AllowJSON(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		ct := r.Header.Get("Content-Type")
		if ct != "application/json" && !strings.HasPrefix(ct, "multipart/form-data") {
			http.Error(w, "invalid media type", http.StatusUnsupportedMediaType)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

type ctxKey int

const sessionKey ctxKey = iota

// WithSession resolves the bearer token into the session tri-state
// before any handler runs. A resolver failure keeps the state loading
// and answers 503, never assuming anonymous.
func WithSession(resolver port.SessionResolver, next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		const op = "WithSession"

		sn, err := resolver.Resolve(r.Context(), bearerToken(r))
		if err != nil {
			slog.Error("failed to resolve session", "op", op, "err", err)
			writeError(w, http.StatusServiceUnavailable, "session unavailable")
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, sn)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
	return http.HandlerFunc(hf)
}

func sessionFrom(ctx context.Context) domain.Session {
	sn, _ := ctx.Value(sessionKey).(domain.Session)
	return sn
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(h, "Bearer ")
	if !ok {
		return ""
	}
	return token
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	const op = "writeJSON"

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "op", op, "err", err)
	}
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{Error: message})
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// writeServiceErr maps service failures onto the wire: missing
// documents render 404, unauthenticated mutations redirect home and
// everything else passes the message through verbatim.
func writeServiceErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		redirectHome(w, r)
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "producto no encontrado")
	case errors.Is(err, domain.ErrNotCreator):
		writeError(w, http.StatusForbidden, domain.ErrNotCreator.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		writeError(w, http.StatusConflict, domain.ErrEmailTaken.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
