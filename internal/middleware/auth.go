package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/lshigami/Surveyor/config"
	"github.com/lshigami/Surveyor/internal/controller"
	"github.com/lshigami/Surveyor/internal/dto"
	"github.com/lshigami/Surveyor/internal/service"
	"github.com/rs/zerolog/log"
)

const userIDKey = "surveyor.userID"

// Claims are the identity assertions the service reads from a bearer token.
type Claims struct {
	Email      string `json:"email,omitempty"`
	GivenName  string `json:"given_name,omitempty"`
	FamilyName string `json:"family_name,omitempty"`
	Picture    string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 bearer tokens and keeps the user table in
// step with the asserted profile.
type Authenticator struct {
	secret []byte
	issuer string
	users  service.UserService
}

func NewAuthenticator(cfg *config.Config, users service.UserService) *Authenticator {
	return &Authenticator{
		secret: []byte(cfg.Auth.JWTSecret),
		issuer: cfg.Auth.JWTIssuer,
		users:  users,
	}
}

// SignToken issues a token for subject. Used by tooling and tests; production
// tokens come from the identity provider.
func (a *Authenticator) SignToken(subject string, claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.Subject = subject
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	if a.issuer != "" {
		claims.Issuer = a.issuer
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *Authenticator) parseToken(tok string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}
	t, err := jwt.ParseWithClaims(tok, &Claims{}, func(token *jwt.Token) (interface{}, error) { return a.secret, nil }, opts...)
	if err != nil {
		return nil, err
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid || c.Subject == "" {
		return nil, errors.New("invalid token")
	}
	return c, nil
}

// authenticate resolves the caller from the Authorization header. It reports
// false when no valid identity is present, and an error when the identity is
// valid but the user record could not be synced.
func (a *Authenticator) authenticate(c *gin.Context) (bool, error) {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return false, nil
	}
	claims, err := a.parseToken(strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")))
	if err != nil {
		log.Debug().Err(err).Msg("Rejected bearer token")
		return false, nil
	}

	_, err = a.users.UpsertFromIdentity(c.Request.Context(), service.Identity{
		Subject:         claims.Subject,
		Email:           claims.Email,
		FirstName:       claims.GivenName,
		LastName:        claims.FamilyName,
		ProfileImageURL: claims.Picture,
	})
	if err != nil {
		log.Error().Err(err).Str("userID", claims.Subject).Msg("Failed to sync user from token")
		return false, err
	}
	c.Set(userIDKey, claims.Subject)
	return true, nil
}

// RequireAuth aborts with 401 unless the request carries a valid identity.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := a.authenticate(c)
		if err != nil {
			controller.RespondError(c, err)
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
			return
		}
		c.Next()
	}
}

// OptionalAuth records the caller when a valid identity is present and lets
// anonymous requests through.
func (a *Authenticator) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := a.authenticate(c); err != nil {
			controller.RespondError(c, err)
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated caller, or "" for anonymous requests.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
