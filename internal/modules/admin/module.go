// Package admin is the user administration feature: the user list, the
// record detail page with its delete and send-email actions, and the edit
// form. All of its routes require a logged-in user.
package admin

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/userdesk/internal/module"
	"github.com/nfrund/userdesk/internal/pubsub"
	"github.com/nfrund/userdesk/internal/registry"
	"github.com/nfrund/userdesk/internal/routes"
	"github.com/nfrund/userdesk/internal/users"
)

// ServiceKey exposes the users service to other modules.
const ServiceKey = registry.Key[*users.Service]("admin.users")

// Dependencies holds what the module needs from the application.
type Dependencies struct {
	Service    *users.Service
	Subscriber pubsub.Subscriber
	Logger     *slog.Logger
}

// Module wires the admin routes and the audit log subscriber.
type Module struct {
	module.BaseModule
	deps    Dependencies
	handler *Handler
	cancel  context.CancelFunc
}

// New creates the module.
func New(deps Dependencies) *Module {
	return &Module{deps: deps}
}

func (m *Module) Name() string {
	return "admin"
}

// Prefix mounts the module under the user list route.
func (m *Module) Prefix() string {
	return routes.Users()
}

func (m *Module) Register(reg *registry.Registry) error {
	registry.Set(reg, ServiceKey, m.deps.Service)
	return nil
}

// Boot mounts the routes on group, which the server has already protected
// with the auth middleware, and starts the audit subscriber.
func (m *Module) Boot(ctx context.Context, group *echo.Group, reg *registry.Registry) error {
	m.handler = NewHandler(registry.MustGet(reg, ServiceKey))

	group.GET("", m.handler.List)
	group.GET("/:id", m.handler.Detail)
	group.GET("/:id/edit", m.handler.EditGet)
	group.POST("/:id/edit", m.handler.EditPost)
	group.POST("/:id/delete", m.handler.Delete)
	group.POST("/:id/email", m.handler.Email)

	if m.deps.Subscriber != nil {
		subCtx, cancel := context.WithCancel(ctx)
		m.cancel = cancel
		if err := users.NewAuditSubscriber(m.deps.Subscriber, m.deps.Logger).Start(subCtx); err != nil {
			cancel()
			return err
		}
	}
	return nil
}

// Shutdown stops the audit subscriber.
func (m *Module) Shutdown(ctx context.Context) error {
	if m.cancel != nil {
		m.cancel()
	}
	return nil
}
