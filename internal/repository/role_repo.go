package repository

import (
	"context"

	"thaitravel/internal/model"

	"gorm.io/gorm"
)

type RoleRepository interface {
	List(ctx context.Context) ([]model.Role, error)
	FindByNames(ctx context.Context, names []string) ([]model.Role, error)
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) List(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	if err := GetDB(ctx, r.db).Order("name asc").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// FindByNames returns the roles whose names appear in names; unknown names are
// silently skipped, so callers compare lengths to detect them.
func (r *roleRepository) FindByNames(ctx context.Context, names []string) ([]model.Role, error) {
	var roles []model.Role
	if len(names) == 0 {
		return roles, nil
	}
	if err := GetDB(ctx, r.db).Where("name IN ?", names).Order("name asc").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}
