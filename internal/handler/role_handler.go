package handler

import (
	"log/slog"
	"net/http"

	"thaitravel/internal/middleware"
	"thaitravel/internal/model"
	"thaitravel/internal/service"
	"thaitravel/pkg/response"

	"github.com/gin-gonic/gin"
)

type RoleHandler struct {
	roleService service.RoleService
	logger      *slog.Logger
}

func NewRoleHandler(roleService service.RoleService, logger *slog.Logger) *RoleHandler {
	return &RoleHandler{roleService: roleService, logger: loggerOrDefault(logger)}
}

func (h *RoleHandler) RegisterRoutes(router *gin.RouterGroup, authn gin.HandlerFunc) {
	roles := router.Group("/roles", authn, middleware.RequireActive(), middleware.RequireRole(model.RoleAdmin))
	{
		roles.GET("", h.ListRoles)
	}
}

// ListRoles godoc
// @Summary      List roles
// @Description  Roles that can be assigned through PUT /users/{id}/roles
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.RoleResponse}
// @Failure      403  {object}  response.Response
// @Router       /roles [get]
func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.roleService.ListRoles(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, roles))
}
