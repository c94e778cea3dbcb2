package middleware

import (
	"net/http"

	"go-hospital-booking/internal/domain/entity"
	"go-hospital-booking/pkg/response"
)

// RequireRole creates a middleware that checks if the user has any of the required roles.
// The identity is read from context (set by AuthMiddleware).
func RequireRole(message string, roles ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUserFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Access denied. No token provided.")
				return
			}

			if !entity.Authorize(user, roles...) {
				response.Forbidden(w, message)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole("Access denied. Admin privileges required.", entity.RoleAdmin)(next)
}

// RequireDoctor is a convenience middleware for doctor-only endpoints
func RequireDoctor(next http.Handler) http.Handler {
	return RequireRole("Access denied. Doctor privileges required.", entity.RoleDoctor)(next)
}

// RequirePatient is a convenience middleware for patient-only endpoints
func RequirePatient(next http.Handler) http.Handler {
	return RequireRole("Access denied. Patient privileges required.", entity.RolePatient)(next)
}
