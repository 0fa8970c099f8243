package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/userdesk/internal/handlers"
	"github.com/nfrund/userdesk/internal/middleware"
	"github.com/nfrund/userdesk/internal/routes"
)

// RegisterRoutes sets up the application routes that live outside modules.
func (s *Server) RegisterRoutes() {
	homeHandler := handlers.NewHomeHandler(s.auth)
	authHandler := handlers.NewAuthHandler(s.auth, s.users, s.validator)
	rateLimiter := middleware.RateLimiter()

	s.E.GET(routes.Home(), homeHandler.HomeGet)

	s.E.GET(routes.SignUp(), authHandler.SignUpGet)
	s.E.POST(routes.SignUp(), authHandler.SignUpPost, rateLimiter)

	s.E.GET(routes.Login(), authHandler.LoginGet)
	s.E.POST(routes.Login(), authHandler.LoginPost)
	s.E.GET(routes.Logout(), authHandler.Logout)

	s.E.GET(routes.ForgotPassword(), authHandler.ForgotPasswordGet)
	s.E.POST(routes.ForgotPassword(), authHandler.ForgotPasswordPost, rateLimiter)

	s.E.GET(routes.ResetPassword(""), authHandler.ResetPasswordGet)
	s.E.POST(routes.ResetPassword(""), authHandler.ResetPasswordPost)

	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
}
