package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dvoronin/membergate/internal/api/http/handler"
	"github.com/dvoronin/membergate/internal/api/http/middleware"
	"github.com/dvoronin/membergate/internal/logger"
	"github.com/dvoronin/membergate/internal/model"
)

// Router wires handlers and middleware into the HTTP mux.
type Router struct {
	authService    handler.AuthService
	sessionService handler.SessionService
	sessions       middleware.SessionResolver
	contextManager model.ContextManager
	cookie         handler.CookieConfig
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService handler.AuthService,
	sessionService handler.SessionService,
	sessions middleware.SessionResolver,
	contextManager model.ContextManager,
	cookie handler.CookieConfig,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		sessionService: sessionService,
		sessions:       sessions,
		contextManager: contextManager,
		cookie:         cookie,
		logger:         logger,
	}
}

// Register builds the route tree. Every request passes through logging and
// session restoration; guarded routes add the Require* middleware on top.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.sessions, r.contextManager, r.cookie.Name, r.logger)

	authHandler := handler.NewAuth(r.authService, r.sessionService, r.contextManager, r.cookie, r.logger)

	mux := chi.NewRouter()
	mux.Use(logging.Handle)
	mux.Use(authenticate.Handle)

	mux.Route("/api", func(api chi.Router) {
		api.Post("/signup", authHandler.Signup)
		api.Post("/login", authHandler.Login)
		api.Post("/logout", authHandler.Logout)

		api.Group(func(authed chi.Router) {
			authed.Use(authenticate.RequireUser)
			authed.Get("/me", authHandler.Me)
		})

		api.Group(func(admin chi.Router) {
			admin.Use(authenticate.RequireAdmin)
			admin.Patch("/users/{id}/roles", authHandler.UpdateRoles)
		})
	})

	return mux
}
