package httphandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/maribelsv/showcase/internal/core/domain"
	"github.com/maribelsv/showcase/internal/core/port"
	"github.com/maribelsv/showcase/pkg/form"
)

type AccountsHandler struct {
	registrar port.AccountRegistrar
	opener    port.SessionOpener
}

func RegisterAccounts(
	mux *http.ServeMux,
	registrar port.AccountRegistrar,
	opener port.SessionOpener,
) {
	h := AccountsHandler{registrar, opener}
	mux.HandleFunc("POST /v1/accounts", h.PostAccount)
	mux.HandleFunc("POST /v1/sessions", h.PostSession)
	mux.HandleFunc("DELETE /v1/sessions", h.DeleteSession)
	mux.HandleFunc("GET /v1/session", h.GetSession)
}

func (h AccountsHandler) PostAccount(w http.ResponseWriter, r *http.Request) {
	const op = "AccountsHandler.PostAccount"
	log := slog.With("op", op)

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	var (
		u     domain.User
		token string
	)
	f := form.New(form.Values{
		"nombre":   req.Nombre,
		"email":    req.Email,
		"password": req.Password,
	}, form.RegisterRules(), func(ctx context.Context, values form.Values) error {
		var err error
		u, token, err = h.registrar.Register(
			ctx, values["nombre"], values["email"], values["password"],
		)
		return err
	})

	if err := f.Submit(r.Context()); err != nil {
		if errors.Is(err, form.ErrInvalid) {
			writeJSON(w, http.StatusUnprocessableEntity,
				InvalidFormResponse{Errores: f.Errors()})
			return
		}
		writeServiceErr(w, r, err)
		log.Warn("failed to register account", "err", err)
		return
	}

	log.Info("account registered", "userID", u.ID)
	writeJSON(w, http.StatusCreated, SessionResponse{
		Estado:  "autenticado",
		Usuario: &Usuario{ID: u.ID, Nombre: u.Name, Email: u.Email},
		Token:   token,
	})
}

func (h AccountsHandler) PostSession(w http.ResponseWriter, r *http.Request) {
	const op = "AccountsHandler.PostSession"
	log := slog.With("op", op)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	var (
		u     domain.User
		token string
	)
	f := form.New(form.Values{
		"email":    req.Email,
		"password": req.Password,
	}, form.LoginRules(), func(ctx context.Context, values form.Values) error {
		var err error
		u, token, err = h.opener.Login(ctx, values["email"], values["password"])
		return err
	})

	if err := f.Submit(r.Context()); err != nil {
		if errors.Is(err, form.ErrInvalid) {
			writeJSON(w, http.StatusUnprocessableEntity,
				InvalidFormResponse{Errores: f.Errors()})
			return
		}
		writeServiceErr(w, r, err)
		log.Warn("failed to open session", "err", err)
		return
	}

	log.Info("session opened", "userID", u.ID)
	writeJSON(w, http.StatusOK, SessionResponse{
		Estado:  "autenticado",
		Usuario: &Usuario{ID: u.ID, Nombre: u.Name, Email: u.Email},
		Token:   token,
	})
}

func (h AccountsHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	const op = "AccountsHandler.DeleteSession"
	log := slog.With("op", op)

	token := bearerToken(r)
	if token == "" {
		redirectHome(w, r)
		return
	}

	if err := h.opener.Logout(r.Context(), token); err != nil {
		writeServiceErr(w, r, err)
		log.Error("failed to close session", "err", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h AccountsHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sn := sessionFrom(r.Context())

	resp := SessionResponse{Estado: "anonimo"}
	if sn.Authenticated() {
		resp.Estado = "autenticado"
		resp.Usuario = &Usuario{
			ID:     sn.User.ID,
			Nombre: sn.User.Name,
			Email:  sn.User.Email,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
