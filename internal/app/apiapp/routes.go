package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/wdhive/photo-gallery/internal/config"
	"github.com/wdhive/photo-gallery/internal/pkg/reqerr"
	authsvc "github.com/wdhive/photo-gallery/internal/services/auth"
	mediasvc "github.com/wdhive/photo-gallery/internal/services/media"
	modlogsvc "github.com/wdhive/photo-gallery/internal/services/modlog"
	userssvc "github.com/wdhive/photo-gallery/internal/services/users"
	"github.com/wdhive/photo-gallery/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService   *authsvc.Service
	MediaService  *mediasvc.Service
	ModLogService *modlogsvc.Service
	UserService   *userssvc.Service
	Classifier    *reqerr.Classifier
	Logger        *zap.Logger
	Config        config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(deps.AuthService)
	mediaHandler := handlers.NewMediaHandler(deps.MediaService, deps.Classifier)
	modLogHandler := handlers.NewModLogHandler(deps.ModLogService, deps.MediaService, deps.Classifier)
	userHandler := handlers.NewUserHandler(deps.UserService, deps.Classifier)

	authMW := AuthMiddleware(deps.AuthService, deps.Logger)
	optionalAuthMW := OptionalAuthMiddleware(deps.AuthService)
	moderatorMW := RequireModerator()

	r.Get("/healthz", healthHandler.Get)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/refresh", authHandler.Refresh)
		r.With(authMW).Post("/logout", authHandler.Logout)
		r.With(authMW).Post("/logout_all", authHandler.LogoutAll)
	})

	r.Route("/media", func(r chi.Router) {
		r.With(optionalAuthMW).Get("/", mediaHandler.List)
		r.With(authMW, moderatorMW).Get("/backup", mediaHandler.Backup)
		r.With(optionalAuthMW).Get("/{id}", mediaHandler.Get)
		r.With(optionalAuthMW).Get("/{id}/related", mediaHandler.Related)

		r.With(authMW).Get("/{id}/messages", modLogHandler.Messages)
		r.With(authMW).Post("/{id}/messages", modLogHandler.CreateMessage)
		r.With(authMW, moderatorMW).Post("/{id}/approve", modLogHandler.Approve)
		r.With(authMW, moderatorMW).Post("/{id}/reject", modLogHandler.Reject)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/{id}", userHandler.Profile)
	})

	r.Route("/me", func(r chi.Router) {
		r.Use(authMW)
		r.Get("/", userHandler.Me)
		r.Put("/avatar", userHandler.UpdateAvatar)
	})
}
