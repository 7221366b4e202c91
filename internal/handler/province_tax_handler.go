package handler

import (
	"log/slog"
	"net/http"

	"thaitravel/internal/service"
	"thaitravel/pkg/response"

	"github.com/gin-gonic/gin"
)

type ProvinceTaxHandler struct {
	provinceTaxService  service.ProvinceTaxService
	registrationService service.RegistrationService
	logger              *slog.Logger
}

func NewProvinceTaxHandler(provinceTaxService service.ProvinceTaxService, registrationService service.RegistrationService, logger *slog.Logger) *ProvinceTaxHandler {
	return &ProvinceTaxHandler{
		provinceTaxService:  provinceTaxService,
		registrationService: registrationService,
		logger:              loggerOrDefault(logger),
	}
}

func (h *ProvinceTaxHandler) RegisterRoutes(router *gin.RouterGroup, authn gin.HandlerFunc) {
	group := router.Group("/province_tax")
	{
		group.GET("/base", h.ListBase)
		group.GET("/base/:id", h.GetBase)
		group.POST("/base", authn, h.CreateBase)

		group.POST("/register", authn, h.Register)
		group.GET("/registered", authn, h.ListRegistered)
		group.PUT("/registered/:id", authn, h.UpdateRegistered)
		group.DELETE("/registered/:id", authn, h.DeleteRegistered)
	}
}

// CreateBase handles POST /province_tax/base
// @Summary      Create a base province tax rate
// @Description  At most one base rate exists per province. Province must be one of the 77 Thai provinces.
// @Tags         province_tax
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateBaseTaxRequest  true  "Base rate"
// @Success      201      {object}  response.Response{data=service.BaseTaxResponse}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /province_tax/base [post]
func (h *ProvinceTaxHandler) CreateBase(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	var req service.CreateBaseTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	res, err := h.provinceTaxService.CreateBase(c.Request.Context(), user.ID, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, res))
}

// ListBase handles GET /province_tax/base
// @Summary      List base province tax rates
// @Tags         province_tax
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.BaseTaxResponse}
// @Router       /province_tax/base [get]
func (h *ProvinceTaxHandler) ListBase(c *gin.Context) {
	rows, err := h.provinceTaxService.ListBase(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// GetBase handles GET /province_tax/base/{id}
// @Summary      Get a base province tax rate
// @Tags         province_tax
// @Produce      json
// @Param        id   path      int  true  "Base rate ID"
// @Success      200  {object}  response.Response{data=service.BaseTaxResponse}
// @Failure      404  {object}  response.Response
// @Router       /province_tax/base/{id} [get]
func (h *ProvinceTaxHandler) GetBase(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	res, err := h.provinceTaxService.GetBase(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// Register handles POST /province_tax/register
// @Summary      Register for a province
// @Description  Snapshots the current base rate of the main (and optional secondary) province.
// @Tags         province_tax
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RegisterProvinceTaxRequest  true  "Registration"
// @Success      201      {object}  response.Response{data=service.RegistrationResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /province_tax/register [post]
func (h *ProvinceTaxHandler) Register(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	var req service.RegisterProvinceTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	res, err := h.registrationService.Register(c.Request.Context(), user, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, res))
}

// ListRegistered handles GET /province_tax/registered
// @Summary      List my registrations
// @Tags         province_tax
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.RegistrationResponse}
// @Failure      401  {object}  response.Response
// @Router       /province_tax/registered [get]
func (h *ProvinceTaxHandler) ListRegistered(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	regs, err := h.registrationService.ListForUser(c.Request.Context(), user)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, regs))
}

// UpdateRegistered handles PUT /province_tax/registered/{id}
// @Summary      Update one of my registrations
// @Description  Re-resolves both provinces and refreshes the tax snapshots. Omitting secondary_province_id clears it.
// @Tags         province_tax
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                                 true  "Registration ID"
// @Param        payload  body      service.RegisterProvinceTaxRequest  true  "Registration"
// @Success      200      {object}  response.Response{data=service.RegistrationResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /province_tax/registered/{id} [put]
func (h *ProvinceTaxHandler) UpdateRegistered(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req service.RegisterProvinceTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	res, err := h.registrationService.Update(c.Request.Context(), id, user, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// DeleteRegistered handles DELETE /province_tax/registered/{id}
// @Summary      Delete one of my registrations
// @Tags         province_tax
// @Security     BearerAuth
// @Param        id   path  int  true  "Registration ID"
// @Success      204
// @Failure      404  {object}  response.Response
// @Router       /province_tax/registered/{id} [delete]
func (h *ProvinceTaxHandler) DeleteRegistered(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.registrationService.Delete(c.Request.Context(), id, user); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
