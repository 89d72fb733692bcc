package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/apto-jkhatri/it-asset-management-app/internal/utils"
)

// RequireSelfOrRoles passes when the {id} path parameter names the session
// user, or when the session role is in roles. Backs the password-reset route,
// where a user may change their own password and an admin anyone's.
func RequireSelfOrRoles(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid, _ := utils.GetString(r.Context(), CtxUserID)
			role, _ := utils.GetString(r.Context(), CtxRole)

			if _, ok := allowed[role]; ok {
				next.ServeHTTP(w, r)
				return
			}
			if uid != "" && chi.URLParam(r, "id") == uid {
				next.ServeHTTP(w, r)
				return
			}
			utils.Error(w, http.StatusForbidden, "forbidden")
		})
	}
}
