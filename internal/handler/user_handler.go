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

// TokenRequest is the OAuth2 password-grant form.
type TokenRequest struct {
	Username  string `form:"username" binding:"required"`
	Password  string `form:"password" binding:"required"`
	GrantType string `form:"grant_type"`
}

type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{userService: userService, logger: loggerOrDefault(logger)}
}

// RegisterRoutes binds the endpoints to the gin RouterGroup. authn resolves
// the bearer token to the current user.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, authn gin.HandlerFunc) {
	router.POST("/users/create", h.CreateUser)
	router.POST("/token", h.Token)
	router.GET("/users/me", authn, middleware.RequireActive(), h.GetMe)

	admin := router.Group("/users", authn, middleware.RequireActive(), middleware.RequireRole(model.RoleAdmin))
	{
		admin.GET("", h.ListUsers)
		admin.PUT("/:id/roles", h.UpdateRoles)
		admin.PUT("/:id/status", h.UpdateStatus)
	}
}

// CreateUser handles POST /users/create
// @Summary      Register a new user
// @Description  Creates an active user with the "user" role. The password is stored as a bcrypt hash.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateUserRequest  true  "Create User Payload"
// @Success      200      {object}  response.Response{data=service.UserResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /users/create [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, user))
}

// Token handles POST /token
// @Summary      Obtain an access token
// @Description  OAuth2 password grant. Returns a bearer token; repeated failures lock the username out for a while.
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username    formData  string  true   "Username"
// @Param        password    formData  string  true   "Password"
// @Param        grant_type  formData  string  false  "Must be password when present"
// @Success      200         {object}  service.TokenResponse
// @Failure      400         {object}  response.Response
// @Failure      401         {object}  response.Response
// @Failure      429         {object}  response.Response
// @Router       /token [post]
func (h *UserHandler) Token(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBind(&req); err != nil {
		writeBindError(c, err)
		return
	}
	if req.GrantType != "" && req.GrantType != "password" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Unsupported grant_type"))
		return
	}

	token, err := h.userService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, token)
}

// GetMe handles GET /users/me
// @Summary      Current user
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.UserResponse}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	res, err := h.userService.GetUserByID(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// ListUsers handles GET /users
// @Summary      List users
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20)"
// @Success      200    {object}  response.Response{data=pagination.Page[service.UserResponse]}
// @Failure      403    {object}  response.Response
// @Router       /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	p := pagination.Parse(c)

	users, total, err := h.userService.ListUsers(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.NewPage(users, p, total)))
}

// UpdateRoles handles PUT /users/{id}/roles
// @Summary      Replace a user's roles
// @Tags         users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                         true  "User ID"
// @Param        payload  body      service.UpdateRolesRequest  true  "Roles"
// @Success      200      {object}  response.Response{data=service.UserResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /users/{id}/roles [put]
func (h *UserHandler) UpdateRoles(c *gin.Context) {
	actor, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	res, err := h.userService.UpdateRoles(c.Request.Context(), actor.ID, id, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// UpdateStatus handles PUT /users/{id}/status
// @Summary      Activate or deactivate a user
// @Tags         users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                          true  "User ID"
// @Param        payload  body      service.UpdateStatusRequest  true  "Status"
// @Success      200      {object}  response.Response{data=service.UserResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /users/{id}/status [put]
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	actor, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	res, err := h.userService.UpdateStatus(c.Request.Context(), actor.ID, id, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}
