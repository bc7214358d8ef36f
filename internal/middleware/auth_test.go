package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/lshigami/Surveyor/config"
	"github.com/lshigami/Surveyor/internal/repository"
	"github.com/lshigami/Surveyor/internal/service"
	"github.com/lshigami/Surveyor/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthenticator(t *testing.T) (*Authenticator, service.UserService) {
	t.Helper()
	db := testutil.NewDB(t)
	users := service.NewUserService(repository.NewUserRepository(db))
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.JWTIssuer = "surveyor-test"
	return NewAuthenticator(cfg, users), users
}

func newRouter(a *Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	whoami := func(c *gin.Context) { c.String(http.StatusOK, UserID(c)) }
	r.GET("/private", a.RequireAuth(), whoami)
	r.GET("/public", a.OptionalAuth(), whoami)
	return r
}

func do(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	a, users := newAuthenticator(t)
	r := newRouter(a)

	w := do(r, "/private", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())

	token, err := a.SignToken("user-1", Claims{Email: "u1@example.com", GivenName: "Ada"}, time.Hour)
	require.NoError(t, err)
	w = do(r, "/private", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", w.Body.String())

	user, err := users.GetUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.FirstName)
}

func TestRequireAuthRejectsBadTokens(t *testing.T) {
	a, _ := newAuthenticator(t)
	r := newRouter(a)

	expired, err := a.SignToken("user-1", Claims{}, -time.Minute)
	require.NoError(t, err)

	other := &Authenticator{secret: []byte("other-secret"), issuer: a.issuer}
	forged, err := other.SignToken("user-1", Claims{}, time.Hour)
	require.NoError(t, err)

	wrongIssuer := &Authenticator{secret: a.secret, issuer: "someone-else"}
	foreign, err := wrongIssuer.SignToken("user-1", Claims{}, time.Hour)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"}}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":      expired,
		"forged":       forged,
		"wrong issuer": foreign,
		"alg none":     none,
		"garbage":      "not-a-jwt",
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, do(r, "/private", token).Code)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	a, _ := newAuthenticator(t)
	r := newRouter(a)

	w := do(r, "/public", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(r, "/public", "not-a-jwt")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	token, err := a.SignToken("user-2", Claims{}, time.Hour)
	require.NoError(t, err)
	w = do(r, "/public", token)
	assert.Equal(t, "user-2", w.Body.String())
}

func TestAuthRejectsEmailOwnedByAnotherUser(t *testing.T) {
	a, users := newAuthenticator(t)
	r := newRouter(a)

	first, err := a.SignToken("user-1", Claims{Email: "shared@example.com"}, time.Hour)
	require.NoError(t, err)
	second, err := a.SignToken("user-2", Claims{Email: "shared@example.com"}, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, do(r, "/private", first).Code)

	w := do(r, "/private", second)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already linked")
	assert.Equal(t, http.StatusConflict, do(r, "/public", second).Code)

	_, err = users.GetUser(context.Background(), "user-2")
	assert.Error(t, err)

	// The original owner keeps working.
	assert.Equal(t, http.StatusOK, do(r, "/private", first).Code)
}

func TestAuthReportsStoreFailureAsInternal(t *testing.T) {
	db := testutil.NewDB(t)
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	a := NewAuthenticator(cfg, service.NewUserService(repository.NewUserRepository(db)))
	r := newRouter(a)

	token, err := a.SignToken("user-1", Claims{Email: "u1@example.com"}, time.Hour)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	assert.Equal(t, http.StatusInternalServerError, do(r, "/private", token).Code)
	assert.Equal(t, http.StatusInternalServerError, do(r, "/public", token).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/private", "").Code)
}
