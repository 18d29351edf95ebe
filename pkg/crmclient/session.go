package crmclient

import (
	"context"
	"errors"
	"net/http"
	"sync"
)

// State is the client's view of the session.
type State int

const (
	// StateUnknown means the session has not been probed yet. Call Init.
	StateUnknown State = iota
	// StateAnonymous means there is no valid session cookie.
	StateAnonymous
	// StateAuthenticated means the server accepted the session cookie.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// ErrNotAuthenticated is returned by calls that require a live session.
var ErrNotAuthenticated = errors.New("crmclient: not authenticated")

// Session tracks the authentication state for one Client. All state
// transitions are driven by server responses, never assumed locally.
type Session struct {
	client *Client

	mu    sync.Mutex
	state State
	user  *User
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Authenticated reports whether the server has accepted the current
// session. Intended as the navigation guard predicate for front ends.
func (s *Session) Authenticated() bool {
	return s.State() == StateAuthenticated
}

// CurrentUser returns the profile from the last successful auth call, or
// nil when anonymous.
func (s *Session) CurrentUser() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Init resolves StateUnknown by probing the session endpoint. A 401 is a
// normal outcome and leaves the session anonymous.
func (s *Session) Init(ctx context.Context) error {
	user, err := s.fetchMe(ctx)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			s.set(StateAnonymous, nil)
			return nil
		}
		return err
	}
	s.set(StateAuthenticated, user)
	return nil
}

type registerPayload struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Register creates an account and starts a session for it.
func (s *Session) Register(ctx context.Context, firstName, lastName, email, password string) (*User, error) {
	var resp struct {
		User *User `json:"user"`
	}
	err := s.client.do(ctx, http.MethodPost, "/api/auth/register", registerPayload{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	s.set(StateAuthenticated, resp.User)
	return resp.User, nil
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates with credentials. On failure the session state is
// left untouched.
func (s *Session) Login(ctx context.Context, email, password string) (*User, error) {
	var resp struct {
		User *User `json:"user"`
	}
	err := s.client.do(ctx, http.MethodPost, "/api/auth/login", loginPayload{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	s.set(StateAuthenticated, resp.User)
	return resp.User, nil
}

// Logout clears the session server-side and locally.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.client.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
		return err
	}
	s.set(StateAnonymous, nil)
	return nil
}

// Me re-reads the authenticated profile. An expired or revoked session
// demotes the state to anonymous and returns ErrNotAuthenticated.
func (s *Session) Me(ctx context.Context) (*User, error) {
	user, err := s.fetchMe(ctx)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			s.set(StateAnonymous, nil)
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}
	s.set(StateAuthenticated, user)
	return user, nil
}

func (s *Session) fetchMe(ctx context.Context) (*User, error) {
	var resp struct {
		User *User `json:"user"`
	}
	if err := s.client.do(ctx, http.MethodGet, "/api/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (s *Session) set(state State, user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.user = user
}
