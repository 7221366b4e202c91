package service

//go:generate mockgen -source=role_service.go -destination=mocks/role_service_mock.go -package=mocks RoleService

import (
	"context"
	"fmt"

	"thaitravel/internal/repository"
)

type RoleResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type RoleService interface {
	ListRoles(ctx context.Context) ([]RoleResponse, error)
}

type roleService struct {
	roles repository.RoleRepository
}

func NewRoleService(roles repository.RoleRepository) RoleService {
	return &roleService{roles: roles}
}

// ListRoles returns every assignable role, ordered by name.
func (s *roleService) ListRoles(ctx context.Context) ([]RoleResponse, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	res := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		res = append(res, RoleResponse{Name: r.Name, Description: r.Description})
	}
	return res, nil
}
