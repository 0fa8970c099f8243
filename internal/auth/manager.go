package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/userdesk/internal/domain"
)

const (
	// SessionName is the cookie session holding the logged-in user id.
	SessionName = "auth-session"
	userIDKey   = "user_id"
)

// Messages returned by LogIn.
const (
	MsgInvalidCredentials = "Invalid credentials"
	MsgPasswordNotSet     = "This account has no password yet. Use Forgot Password to set one."
	MsgLoginUnavailable   = "Unable to log in right now. Please try again."
)

// Manager issues per-request sessions backed by a gorilla session cookie.
type Manager struct {
	repo domain.UserRepository
}

// NewManager creates a Manager that checks credentials against repo.
func NewManager(repo domain.UserRepository) *Manager {
	return &Manager{repo: repo}
}

// RequestSession is the Session of one HTTP request.
type RequestSession struct {
	*Observable
	c    echo.Context
	repo domain.UserRepository
}

// Session returns the session of the current request.
func (m *Manager) Session(c echo.Context) *RequestSession {
	return &RequestSession{
		Observable: NewObservable(State{IsAuthenticated: UserID(c) != ""}),
		c:          c,
		repo:       m.repo,
	}
}

// LogIn checks the credentials and, on success, stores the user id in the
// session cookie and publishes the authenticated state.
func (s *RequestSession) LogIn(ctx context.Context, creds Credentials) LoginResponse {
	user, err := s.repo.CheckCredentials(ctx, strings.TrimSpace(creds.Username), creds.Password)
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		slog.Warn("Failed login attempt", "email", creds.Username)
		return LoginResponse{Error: MsgInvalidCredentials}
	case errors.Is(err, domain.ErrPasswordNotSet):
		return LoginResponse{Message: MsgPasswordNotSet}
	case err != nil:
		slog.Error("Login failed", "email", creds.Username, "error", err)
		return LoginResponse{Error: MsgLoginUnavailable}
	}

	if err := setUserID(s.c, user.Key()); err != nil {
		slog.Error("Failed to save auth session", "error", err)
		return LoginResponse{Error: MsgLoginUnavailable}
	}
	s.Set(State{IsAuthenticated: true})
	return LoginResponse{}
}

// LogOut clears the session cookie.
func (m *Manager) LogOut(c echo.Context) error {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return fmt.Errorf("load auth session: %w", err)
	}
	delete(sess.Values, userIDKey)
	sess.Options = logoutOptions(sess.Options)
	return sess.Save(c.Request(), c.Response())
}

// CurrentUser loads the user behind the session. It returns nil, nil when
// nobody is logged in.
func (m *Manager) CurrentUser(c echo.Context) (*domain.User, error) {
	id := UserID(c)
	if id == "" {
		return nil, nil
	}
	return m.repo.FindByID(c.Request().Context(), id)
}

// UserID returns the logged-in user id, or "".
func UserID(c echo.Context) string {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return ""
	}
	id, _ := sess.Values[userIDKey].(string)
	return id
}

func setUserID(c echo.Context, id string) error {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return err
	}
	sess.Values[userIDKey] = id
	return sess.Save(c.Request(), c.Response())
}

func logoutOptions(current *sessions.Options) *sessions.Options {
	opts := sessions.Options{Path: "/"}
	if current != nil {
		opts = *current
	}
	opts.MaxAge = -1
	return &opts
}

var _ Session = (*RequestSession)(nil)
