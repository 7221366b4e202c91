package service

//go:generate mockgen -source=user_service.go -destination=mocks/user_service_mock.go -package=mocks UserService

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"thaitravel/internal/auth"
	"thaitravel/internal/domain"
	"thaitravel/internal/metrics"
	"thaitravel/internal/model"
	"thaitravel/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

const (
	msgUsernameTaken     = "Username already registered."
	msgEmailTaken        = "Email already registered."
	msgAccountTaken      = "Username or email already registered."
	msgBadCredentials    = "Incorrect username or password"
	msgLockedOut         = "Too many failed login attempts. Try again later."
	msgUserNotFound      = "User not found."
	msgUnknownRole       = "Unknown role."
	msgInvalidUserStatus = "Status must be active or inactive."
)

type CreateUserRequest struct {
	Username  string `json:"username" binding:"required,max=255"`
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"max=255"`
	LastName  string `json:"last_name" binding:"max=255"`
	Province  string `json:"province" binding:"omitempty,province"`
	Password  string `json:"password" binding:"required,min=6"`
}

type UpdateRolesRequest struct {
	Roles []string `json:"roles" binding:"required,min=1"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

// TokenResponse is the OAuth2 password-grant response body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID        uint     `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Province  string   `json:"province"`
	Status    string   `json:"status"`
	Roles     []string `json:"roles"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

type UserService interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error)
	Login(ctx context.Context, username, password string) (*TokenResponse, error)
	GetUserByID(ctx context.Context, id uint) (*UserResponse, error)
	ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error)
	UpdateRoles(ctx context.Context, actorID, id uint, req UpdateRolesRequest) (*UserResponse, error)
	UpdateStatus(ctx context.Context, actorID, id uint, req UpdateStatusRequest) (*UserResponse, error)
}

type userService struct {
	users   repository.UserRepository
	roles   repository.RoleRepository
	tokens  *auth.TokenManager
	limiter auth.LoginLimiter
	audit   AuditService
	logger  *slog.Logger
	metrics *metrics.Metrics
	admins  map[string]struct{}
}

func NewUserService(
	users repository.UserRepository,
	roles repository.RoleRepository,
	tokens *auth.TokenManager,
	limiter auth.LoginLimiter,
	audit AuditService,
	opts ...Option,
) UserService {
	o := newOptions(opts)
	return &userService{
		users:   users,
		roles:   roles,
		tokens:  tokens,
		limiter: limiter,
		audit:   audit,
		logger:  o.logger,
		metrics: o.metrics,
		admins:  o.adminUsernames,
	}
}

func mapToResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Province:  user.Province,
		Status:    user.Status,
		Roles:     user.RoleNames(),
		CreatedAt: user.CreatedAt.Format(timeLayout),
		UpdatedAt: user.UpdatedAt.Format(timeLayout),
	}
}

func (s *userService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	existing, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, domain.NewConflictError(msgUsernameTaken)
	}

	existing, err = s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, domain.NewConflictError(msgEmailTaken)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	roleNames := []string{model.RoleUser}
	if _, ok := s.admins[req.Username]; ok {
		roleNames = append(roleNames, model.RoleAdmin)
	}
	roles, err := s.roles.FindByNames(ctx, roleNames)
	if err != nil {
		return nil, fmt.Errorf("load default roles: %w", err)
	}

	user := &model.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Province:  req.Province,
		Password:  string(hashedPassword),
		Status:    model.UserStatusActive,
		Roles:     roles,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost a race with a concurrent signup.
			return nil, domain.NewConflictError(msgAccountTaken)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user created",
		"event", "user_created",
		"module", "user",
		"layer", "service",
		"user_id", user.ID,
	)
	return mapToResponse(user), nil
}

func (s *userService) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	// Usernames are unique case-sensitively, so the limiter key must be the
	// exact string the lookup matches.
	key := username

	locked, err := s.limiter.Locked(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "login limiter unavailable",
			"event", "login_limiter_failed",
			"module", "user",
			"layer", "service",
			"error", err,
		)
	}
	if locked {
		s.metrics.IncLoginLockout()
		return nil, domain.NewTooManyRequestsError(msgLockedOut)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		s.metrics.IncLoginFailure()
		if err := s.limiter.RecordFailure(ctx, key); err != nil {
			s.logger.WarnContext(ctx, "failed to record login failure",
				"event", "login_limiter_failed",
				"module", "user",
				"layer", "service",
				"error", err,
			)
		}
		return nil, domain.NewUnauthorizedError(msgBadCredentials)
	}

	if err := s.limiter.Reset(ctx, key); err != nil {
		s.logger.WarnContext(ctx, "failed to reset login failures",
			"event", "login_limiter_failed",
			"module", "user",
			"layer", "service",
			"error", err,
		)
	}

	token, _, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
	}, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (*UserResponse, error) {
	user, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapToResponse(user), nil
}

func (s *userService) ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error) {
	users, total, err := s.users.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *mapToResponse(&users[i]))
	}
	return responses, total, nil
}

func (s *userService) UpdateRoles(ctx context.Context, actorID, id uint, req UpdateRolesRequest) (*UserResponse, error) {
	names := dedupe(req.Roles)
	if len(names) == 0 {
		return nil, domain.NewBadRequestError(msgUnknownRole)
	}

	user, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}

	roles, err := s.roles.FindByNames(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("load roles: %w", err)
	}
	if len(roles) != len(names) {
		return nil, domain.NewBadRequestError(msgUnknownRole)
	}

	if err := s.users.ReplaceRoles(ctx, user, roles); err != nil {
		return nil, fmt.Errorf("replace roles: %w", err)
	}
	user.Roles = roles

	s.audit.Record(ctx, actorID, model.ActionUpdateUserRoles, user.ID, user.Username, req)
	return mapToResponse(user), nil
}

func (s *userService) UpdateStatus(ctx context.Context, actorID, id uint, req UpdateStatusRequest) (*UserResponse, error) {
	if req.Status != model.UserStatusActive && req.Status != model.UserStatusInactive {
		return nil, domain.NewBadRequestError(msgInvalidUserStatus)
	}

	user, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Status = req.Status
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user status: %w", err)
	}

	s.audit.Record(ctx, actorID, model.ActionUpdateUserStatus, user.ID, user.Username, req)
	return mapToResponse(user), nil
}

func (s *userService) mustGet(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError(msgUserNotFound)
	}
	return user, nil
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
