package domain

type User struct {
	ID    string
	Name  string
	Email string
}

type SessionState int

const (
	// SessionLoading is the zero value: the identity provider has not
	// resolved the session yet. Not the same as anonymous.
	SessionLoading SessionState = iota
	SessionAnonymous
	SessionAuthenticated
)

// A Session is the tri-state current-user context consumed by handlers
// to gate mutating actions.
type Session struct {
	State SessionState
	User  User
}

func AnonymousSession() Session {
	return Session{State: SessionAnonymous}
}

func AuthenticatedSession(u User) Session {
	return Session{State: SessionAuthenticated, User: u}
}

func (s Session) Resolved() bool {
	return s.State != SessionLoading
}

func (s Session) Authenticated() bool {
	return s.State == SessionAuthenticated
}

// CanDelete answers false while the session is still loading, so an
// unresolved session never passes an authorization check.
func (s Session) CanDelete(p Product) bool {
	return s.Authenticated() && p.IsCreator(s.User.ID)
}
