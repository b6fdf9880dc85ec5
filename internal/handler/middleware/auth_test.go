//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ec-checkout/internal/handler/middleware"
	"ec-checkout/internal/pkg/cookie"
	"ec-checkout/internal/pkg/jwt"
	"ec-checkout/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(t *testing.T, jwtService *jwt.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authMiddleware := middleware.NewAuthMiddleware(usecase.NewTokenValidator(jwtService))

	router := gin.New()
	router.GET("/protected", authMiddleware.RequireAuth(), func(c *gin.Context) {
		userID, ok := middleware.GetUserID(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": userID.String()})
	})
	return router
}

func TestRequireAuth(t *testing.T) {
	jwtService := jwt.NewService("test-secret", time.Hour)
	router := setupAuthRouter(t, jwtService)

	userID := uuid.New()
	token, err := jwtService.GenerateToken(userID)
	require.NoError(t, err)

	t.Run("valid cookie passes and exposes user_id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: cookie.AccessTokenCookieName, Value: token})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID.String())
	})

	t.Run("bearer header works as fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("no credentials redirects to login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"))
	})

	t.Run("invalid token redirects to login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: cookie.AccessTokenCookieName, Value: "garbage"})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"))
	})

	t.Run("token signed with another secret redirects to login", func(t *testing.T) {
		other := jwt.NewService("other-secret", time.Hour)
		foreign, err := other.GenerateToken(userID)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: cookie.AccessTokenCookieName, Value: foreign})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusSeeOther, w.Code)
	})
}
