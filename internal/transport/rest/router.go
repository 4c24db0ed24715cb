package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/gatherhub/community/internal/ability"
	"github.com/gatherhub/community/internal/auth"
	"github.com/gatherhub/community/internal/comment"
	"github.com/gatherhub/community/internal/group"
	"github.com/gatherhub/community/internal/membership"
	"github.com/gatherhub/community/internal/notification"
	"github.com/gatherhub/community/internal/post"
	"github.com/gatherhub/community/internal/transport/middleware"
	"github.com/gatherhub/community/internal/transport/swagger"
	"github.com/gatherhub/community/internal/user"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Health       *HealthHandler
	Auth         *auth.Handler
	User         *user.Handler
	Group        *group.Handler
	Membership   *membership.Handler
	Post         *post.Handler
	Comment      *comment.Handler
	Notification *notification.Handler
}

// NewRouter wires the full HTTP surface. Everything under /api/v1 except
// health, login, refresh and register requires a bearer token.
func NewRouter(h Handlers, logger *slog.Logger) chi.Router {
	authorizer := auth.NewAbilityAuthorizer(logger)

	r := chi.NewRouter()

	r.Use(middleware.CORS)
	r.Use(middleware.RequestID)
	r.Use(middleware.RecoveryMiddleware(logger))
	r.Use(middleware.LoggingMiddleware(logger))

	r.Get("/openapi.yml", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, "api/openapi.yml")
	})
	r.Mount("/swagger", swagger.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", h.Health.pingHandler)
		r.Get("/health", h.Health.healthCheckHandler)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Post("/register", h.User.Register)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.Auth.AuthMiddleware)

			r.Get("/users/me", h.User.GetCurrentUser)
			r.Get("/notifications", h.Notification.ListMine)
			r.Patch("/notifications/{id}/read", h.Notification.MarkRead)

			r.Group(func(r chi.Router) {
				r.Use(authorizer.RequireAdmin())
				r.Get("/users", h.User.ListUsers)
				r.Patch("/users/{id}/plan", h.User.ChangePlan)
			})

			r.Route("/groups", func(r chi.Router) {
				r.Get("/", h.Group.ListGroups)
				r.With(authorizer.RequireCan(ability.ActionCreate, ability.ResourceGroup)).
					Post("/", h.Group.CreateGroup)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Group.GetGroup)
					r.Put("/", h.Group.UpdateGroup)
					r.Post("/join", h.Membership.Join)
					r.Get("/requests", h.Membership.ListRequests)
					r.Patch("/requests/{userID}/accept", h.Membership.AcceptRequest)

					r.Route("/posts", func(r chi.Router) {
						r.Get("/", h.Post.ListGroupPosts)
						r.Post("/", h.Post.CreatePost)
					})
				})
			})

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", h.Post.ListRecent)
				r.Route("/{postID}", func(r chi.Router) {
					r.Get("/", h.Post.GetPost)
					r.Put("/", h.Post.UpdatePost)
					r.Delete("/", h.Post.DeletePost)
					r.Get("/comments", h.Comment.ListComments)
					r.Post("/comments", h.Comment.CreateComment)
				})
			})

			r.Delete("/comments/{commentID}", h.Comment.DeleteComment)
		})
	})

	return r
}
