package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	internal "github.com/gatherhub/community/internal"
	"github.com/gatherhub/community/internal/ability"
)

// AbilityAuthorizer gates routes on the derived permission set of the
// acting user. Handlers behind it can assume the class-level grant holds;
// record-scoped (owner) checks stay in the services where the record is
// loaded.
type AbilityAuthorizer struct {
	logger *slog.Logger
}

func NewAbilityAuthorizer(logger *slog.Logger) *AbilityAuthorizer {
	return &AbilityAuthorizer{logger: logger}
}

// RequireCan allows the request through when the acting user's permission
// set grants action on the resource class. Denials surface the plan
// notice so the client can display it.
func (a *AbilityAuthorizer) RequireCan(action ability.Action, resource ability.Resource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				a.logger.Warn("authorization check failed: user not found in context")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ps := ability.Evaluate(user.Subject())
			if !ps.Can(action, resource) {
				a.logger.WarnContext(r.Context(), "access denied: ability check failed",
					"user_id", user.ID,
					"plan", user.Plan,
					"action", action,
					"resource", resource)
				writeAppError(w, internal.ErrPlanNotAllowed)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin allows only users carrying the admin role.
func (a *AbilityAuthorizer) RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !user.IsAdmin {
				a.logger.WarnContext(r.Context(), "access denied: admin role required", "user_id", user.ID)
				writeAppError(w, internal.ErrNotAdmin)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeAppError(w http.ResponseWriter, appErr *internal.AppError) {
	status, body := appErr.ToHTTPResponse()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
