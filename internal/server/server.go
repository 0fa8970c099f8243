package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/userdesk/internal/auth"
	"github.com/nfrund/userdesk/internal/config"
	appmiddleware "github.com/nfrund/userdesk/internal/middleware"
	"github.com/nfrund/userdesk/internal/module"
	"github.com/nfrund/userdesk/internal/registry"
	"github.com/nfrund/userdesk/internal/rendering"
	"github.com/nfrund/userdesk/internal/users"
	"github.com/nfrund/userdesk/internal/validation"
	"github.com/nfrund/userdesk/internal/view"
	"github.com/nfrund/userdesk/web"
	"github.com/nfrund/userdesk/web/src/templates/layouts"
	"github.com/nfrund/userdesk/web/src/templates/pages"
)

// Dependencies holds everything the server needs. Echo is optional.
type Dependencies struct {
	Config   config.Provider
	Users    *users.Service
	Auth     *auth.Manager
	Renderer *rendering.UniversalRenderer
	Echo     *echo.Echo
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	E         *echo.Echo
	Cfg       config.Provider
	users     *users.Service
	auth      *auth.Manager
	validator *validation.Validator
	modules   []module.Module
}

// New creates a new Server with its middleware chain in place. Routes are
// added by RegisterRoutes and InitModules.
func New(deps Dependencies) (*Server, error) {
	if deps.Config == nil || deps.Users == nil || deps.Auth == nil {
		return nil, errors.New("server: config, users and auth are required")
	}
	if deps.Config.GetSessionSecret() == "" {
		return nil, errors.New("server: session secret is empty")
	}

	e := deps.Echo
	if e == nil {
		e = echo.New()
	}
	e.HideBanner = true
	v := validation.New()
	e.Validator = v

	renderer := deps.Renderer
	if renderer == nil {
		renderer = rendering.NewUniversalRenderer()
	}
	e.Renderer = renderer

	e.Use(middleware.RequestID())
	e.Use(appmiddleware.Logger)
	e.Use(middleware.Recover())

	store := sessions.NewCookieStore([]byte(deps.Config.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))

	static, err := fs.Sub(web.FS, "static")
	if err != nil {
		return nil, fmt.Errorf("server: static assets: %w", err)
	}
	e.StaticFS("/static", static)

	setupErrorHandling(e)

	return &Server{
		E:         e,
		Cfg:       deps.Config,
		users:     deps.Users,
		auth:      deps.Auth,
		validator: v,
	}, nil
}

// InitModules registers every module, then boots each one on a route group
// that requires a logged-in user.
func (s *Server) InitModules(ctx context.Context, modules []module.Module, reg *registry.Registry) error {
	for _, m := range modules {
		if err := m.Register(reg); err != nil {
			return fmt.Errorf("register module %s: %w", m.Name(), err)
		}
	}
	for _, m := range modules {
		group := s.E.Group(modulePrefix(m), appmiddleware.RequireAuth(s.auth))
		if err := m.Boot(ctx, group, reg); err != nil {
			return fmt.Errorf("boot module %s: %w", m.Name(), err)
		}
		slog.Info("Module booted", "module", m.Name())
	}
	s.modules = append(s.modules, modules...)
	return nil
}

// modulePrefix is the module's route prefix: its Prefix method if it has
// one, otherwise its name.
func modulePrefix(m module.Module) string {
	if p, ok := m.(interface{ Prefix() string }); ok {
		return p.Prefix()
	}
	return "/" + m.Name()
}

// setupErrorHandling installs an error handler that renders an error page.
// Errors that are not *echo.HTTPError are logged with a stack trace.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "Something went wrong."
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if msg, ok := he.Message.(string); ok {
				message = msg
			} else {
				message = http.StatusText(code)
			}
		} else {
			slog.Error("Internal Server Error (Unhandled)",
				"error", err.Error(),
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"stack_trace", string(debug.Stack()),
			)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}

		ctx := c.Request().Context()
		page := layouts.Public(http.StatusText(code), view.GetFlashData(c),
			view.AdaptTemplToGomponentCtx(ctx, pages.Error(code, message)))
		var buf bytes.Buffer
		if rerr := page.Render(&buf); rerr != nil {
			slog.Error("Failed to render error page", "error", rerr)
			_ = c.String(code, message)
			return
		}
		_ = c.HTMLBlob(code, buf.Bytes())
	}
}
