package handler

import (
	"log/slog"
	"net/http"

	"thaitravel/internal/middleware"
	"thaitravel/internal/model"
	"thaitravel/internal/service"
	"thaitravel/pkg/pagination"
	"thaitravel/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
	logger       *slog.Logger
}

func NewAuditHandler(auditService service.AuditService, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{auditService: auditService, logger: loggerOrDefault(logger)}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup, authn gin.HandlerFunc) {
	group := router.Group("/audit-logs", authn, middleware.RequireActive(), middleware.RequireRole(model.RoleAdmin))
	{
		group.GET("", h.GetAuditLogs)
	}
}

// GetAuditLogs retrieves paginated audit records, newest first
// @Summary      Get audit logs
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Param        action     query  string  false  "Only entries with this action"
// @Param        user_id    query  int     false  "Only entries by this actor"
// @Param        entity_id  query  string  false  "Only entries about this entity"
// @Success      200    {object}  response.Response{data=pagination.Page[service.AuditLogResponse]}
// @Failure      400    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Router       /audit-logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	var query service.AuditLogQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		writeBindError(c, err)
		return
	}
	p := pagination.Parse(c)

	logs, total, err := h.auditService.GetAuditLogs(c.Request.Context(), query, p.Page, p.Limit)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.NewPage(logs, p, total)))
}
