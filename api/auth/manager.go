package auth

import (
	"paiges_bagels_server/api/middleware"
	"paiges_bagels_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AuthRoutesManager struct {
	logger      *gecho.Logger
	authService *services.AuthService
	mw          *middleware.Middleware
}

func NewAuthRoutesManager(logger *gecho.Logger, authService *services.AuthService, mw *middleware.Middleware) *AuthRoutesManager {
	return &AuthRoutesManager{
		logger:      logger,
		authService: authService,
		mw:          mw,
	}
}

func (ar *AuthRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", ar.HandleLogin)
		r.Post("/logout", ar.HandleLogout)

		r.Group(func(r chi.Router) {
			r.Use(ar.mw.AdminAuthMiddleware)
			r.Get("/me", ar.HandleMe)
		})
	})
}
