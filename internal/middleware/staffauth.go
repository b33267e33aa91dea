package middleware

import (
	"net/http"

	"souveno-backend/internal/auth"
	"souveno-backend/internal/transport"
)

// StaffAuth guards the staff list/update endpoints. When neither an admin key
// nor a JWT manager is configured the middleware is a pass-through, so a bare
// deployment keeps the open behavior of the original API.
func StaffAuth(adminKey string, manager *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminKey == "" && manager == nil {
				next.ServeHTTP(w, r)
				return
			}

			if adminKey != "" && r.Header.Get("X-Admin-Key") == adminKey {
				next.ServeHTTP(w, r)
				return
			}

			if manager != nil {
				cookie, err := r.Cookie(auth.AccessCookie)
				if err == nil && cookie.Value != "" {
					claims, err := manager.Parse(cookie.Value)
					if err == nil && claims.Role == auth.RoleStaff {
						next.ServeHTTP(w, r)
						return
					}
				}
			}

			transport.WriteError(w, http.StatusUnauthorized, "Unauthorized", nil)
		})
	}
}
