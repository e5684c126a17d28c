package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/config"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/services/shared/jwtmanager"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestAuthenticate(t *testing.T) {
	internalConfig := &config.InternalConfig{
		JWT: config.JWT{Secret: "test-secret"},
	}
	jwtManager := jwtmanager.NewJWTManager(internalConfig)
	middlewares := NewMiddlewares(zap.NewNop(), jwtManager, internalConfig)

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, ok := r.Context().Value(constvars.CONTEXT_UID_KEY).(string)
		assert.True(t, ok, "uid should be set in context")
		assert.Equal(t, "user-1", uid)

		role, ok := r.Context().Value(constvars.CONTEXT_ROLE_KEY).(string)
		assert.True(t, ok, "role should be set in context")
		assert.Equal(t, constvars.RolePatient, role)

		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := jwtManager.CreateToken("user-1", constvars.RolePatient, time.Minute)
		assert.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/v1/appointments", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)

		rr := httptest.NewRecorder()
		middlewares.Authenticate(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "valid token should pass through")
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/appointments", nil)

		rr := httptest.NewRecorder()
		middlewares.Authenticate(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "missing token should return 401")
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/appointments", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer not-a-jwt")

		rr := httptest.NewRecorder()
		middlewares.Authenticate(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "malformed token should return 401")
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := jwtManager.CreateToken("user-1", constvars.RolePatient, -time.Minute)
		assert.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/v1/appointments", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)

		rr := httptest.NewRecorder()
		middlewares.Authenticate(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "expired token should return 401")
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		otherManager := jwtmanager.NewJWTManager(&config.InternalConfig{
			JWT: config.JWT{Secret: "other-secret"},
		})
		token, err := otherManager.CreateToken("user-1", constvars.RolePatient, time.Minute)
		assert.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/v1/appointments", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)

		rr := httptest.NewRecorder()
		middlewares.Authenticate(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "foreign signature should return 401")
	})
}

func TestRequireRole(t *testing.T) {
	internalConfig := &config.InternalConfig{
		JWT: config.JWT{Secret: "test-secret"},
	}
	jwtManager := jwtmanager.NewJWTManager(internalConfig)
	middlewares := NewMiddlewares(zap.NewNop(), jwtManager, internalConfig)

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("matching role passes", func(t *testing.T) {
		token, err := jwtManager.CreateToken("user-1", constvars.RolePatient, time.Minute)
		assert.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/v1/appointments", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)

		rr := httptest.NewRecorder()
		middlewares.Authenticate(middlewares.RequireRole(constvars.RolePatient)(okHandler)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("wrong role is rejected", func(t *testing.T) {
		token, err := jwtManager.CreateToken("user-2", constvars.RoleDoctor, time.Minute)
		assert.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/v1/appointments", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)

		rr := httptest.NewRecorder()
		middlewares.Authenticate(middlewares.RequireRole(constvars.RolePatient)(okHandler)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code, "doctor should not create patient bookings")
	})
}
