package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/maribelsv/showcase/internal/core/domain"
	"github.com/maribelsv/showcase/internal/core/port"
)

var _ port.AccountRegistrar = (*AccountService)(nil)
var _ port.SessionOpener = (*AccountService)(nil)
var _ port.SessionResolver = (*AccountService)(nil)
var _ port.SessionWatcher = (*AccountService)(nil)

type AccountService struct {
	users      port.UsersStorage
	sessions   port.SessionsStorage
	sessionTTL time.Duration

	mu       sync.Mutex
	watchers []func(domain.Session)
}

func NewAccountService(
	users port.UsersStorage, sessions port.SessionsStorage, sessionTTL time.Duration,
) *AccountService {
	return &AccountService{users: users, sessions: sessions, sessionTTL: sessionTTL}
}

func (s *AccountService) Register(
	ctx context.Context, name, email, password string,
) (domain.User, string, error) {
	const op = "AccountService.Register"

	if err := ctx.Err(); err != nil {
		return domain.User{}, "", fmt.Errorf("%s: %w", op, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("%s: %w", op, err)
	}

	u := domain.User{ID: uuid.NewString(), Name: name, Email: email}
	if err := s.users.CreateUser(ctx, u, hash); err != nil {
		return domain.User{}, "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.openSession(ctx, u)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("%s: %w", op, err)
	}
	return u, token, nil
}

func (s *AccountService) Login(
	ctx context.Context, email, password string,
) (domain.User, string, error) {
	const op = "AccountService.Login"

	if err := ctx.Err(); err != nil {
		return domain.User{}, "", fmt.Errorf("%s: %w", op, err)
	}

	u, hash, ok, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return domain.User{}, "", fmt.Errorf("%s: %w", op, domain.ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return domain.User{}, "", fmt.Errorf("%s: %w", op, domain.ErrInvalidCredentials)
	}

	token, err := s.openSession(ctx, u)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("%s: %w", op, err)
	}
	return u, token, nil
}

func (s *AccountService) Logout(ctx context.Context, token string) error {
	const op = "AccountService.Logout"

	if err := s.sessions.DeleteSession(ctx, token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.notify(domain.AnonymousSession())
	return nil
}

// Resolve turns a bearer token into the session tri-state. An unknown
// or expired token resolves to anonymous; only a storage failure
// leaves the state unresolved.
func (s *AccountService) Resolve(
	ctx context.Context, token string,
) (domain.Session, error) {
	const op = "AccountService.Resolve"

	if token == "" {
		return domain.AnonymousSession(), nil
	}

	u, ok, err := s.sessions.SessionUser(ctx, token)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return domain.AnonymousSession(), nil
	}
	return domain.AuthenticatedSession(u), nil
}

// Watch registers a callback invoked with the current session state
// after every login, register and logout.
func (s *AccountService) Watch(fn func(domain.Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers = append(s.watchers, fn)
}

func (s *AccountService) openSession(
	ctx context.Context, u domain.User,
) (string, error) {
	token, err := newSessionToken()
	if err != nil {
		return "", err
	}

	expires := time.Now().Add(s.sessionTTL)
	if err := s.sessions.CreateSession(ctx, token, u.ID, expires); err != nil {
		return "", err
	}

	s.notify(domain.AuthenticatedSession(u))
	return token, nil
}

func (s *AccountService) notify(sn domain.Session) {
	s.mu.Lock()
	watchers := append([]func(domain.Session){}, s.watchers...)
	s.mu.Unlock()

	for _, fn := range watchers {
		fn(sn)
	}
}

func newSessionToken() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}
