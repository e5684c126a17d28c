package middlewares

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/constvars"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/exceptions"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/utils"
)

// Authenticate verifies the bearer token and stores the caller's uid and
// role on the request context.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := m.JWTManager.VerifyToken(token)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_UID_KEY, claims.UID)
		ctx = context.WithValue(ctx, constvars.CONTEXT_ROLE_KEY, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a route to callers holding the given role.
func (m *Middlewares) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			callerRole, _ := r.Context().Value(constvars.CONTEXT_ROLE_KEY).(string)
			if callerRole != role {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrNotResourceOwner(fmt.Errorf("role %s required", role)))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
