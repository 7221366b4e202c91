package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"thaitravel/internal/auth"
	"thaitravel/internal/model"
	"thaitravel/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	currentUserKey = "currentUser"

	msgNotAuthenticated   = "Not authenticated"
	msgInvalidCredentials = "Could not validate credentials"
	msgInactiveUser       = "Inactive user"
	msgRoleNotPermitted   = "Role not permitted"
)

// TokenParser resolves a bearer token to the user id it was issued for.
type TokenParser interface {
	Parse(token string) (uint, error)
}

// UserLoader fetches a user with roles preloaded; (nil, nil) means no such user.
type UserLoader interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
}

// Authenticate resolves the Authorization bearer token to a user and stores it
// in the gin context. Any failure aborts with 401.
func Authenticate(tokens TokenParser, users UserLoader, logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c, msgNotAuthenticated)
			return
		}

		userID, err := tokens.Parse(token)
		if err != nil {
			logger.WarnContext(ctx, "rejected bearer token",
				"event", "auth_token_invalid",
				"error", err,
				"request_id", RequestIDFromContext(ctx),
			)
			unauthorized(c, msgInvalidCredentials)
			return
		}

		user, err := users.GetByID(ctx, userID)
		if err != nil {
			logger.ErrorContext(ctx, "failed to load token subject",
				"event", "auth_user_lookup_failed",
				"user_id", userID,
				"error", err,
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Internal server error"))
			return
		}
		if user == nil {
			unauthorized(c, msgInvalidCredentials)
			return
		}

		SetCurrentUser(c, user)
		c.Next()
	}
}

// RequireActive rejects authenticated users whose status is not active.
func RequireActive() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			unauthorized(c, msgNotAuthenticated)
			return
		}
		if !auth.IsActive(user) {
			c.AbortWithStatusJSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, msgInactiveUser))
			return
		}
		c.Next()
	}
}

// RequireRole lets the request through when the current user holds at least
// one of allowedRoles.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			unauthorized(c, msgNotAuthenticated)
			return
		}
		if !auth.HasAnyRole(user.RoleNames(), allowedRoles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, msgRoleNotPermitted))
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user stored by Authenticate.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok && user != nil
}

func SetCurrentUser(c *gin.Context, user *model.User) {
	c.Set(currentUserKey, user)
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, msg))
}
