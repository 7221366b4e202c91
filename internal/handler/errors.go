package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"thaitravel/internal/domain"
	"thaitravel/internal/middleware"
	"thaitravel/internal/model"
	"thaitravel/pkg/response"

	"github.com/gin-gonic/gin"
)

const msgInternalError = "Internal server error"

// writeError maps *domain.AppError to its status; anything else is logged and
// reported as 500 without detail.
func writeError(c *gin.Context, logger *slog.Logger, err error) {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		if appErr.Code == http.StatusUnauthorized {
			c.Header("WWW-Authenticate", "Bearer")
		}
		c.JSON(appErr.Code, response.Error(appErr.Code, appErr.Message))
		return
	}

	ctx := c.Request.Context()
	logger.ErrorContext(ctx, "request failed",
		"event", "unhandled_error",
		"layer", "handler",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"request_id", middleware.RequestIDFromContext(ctx),
		"error", err,
	)
	c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, msgInternalError))
}

func writeBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
}

// pathID parses a positive integer path parameter, writing 400 on failure.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid "+name))
		return 0, false
	}
	return uint(id), true
}

// mustCurrentUser returns the authenticated user or writes 401 when the route
// was registered without Authenticate.
func mustCurrentUser(c *gin.Context) (*model.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Not authenticated"))
		return nil, false
	}
	return user, true
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
