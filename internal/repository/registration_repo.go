package repository

import (
	"context"

	"thaitravel/internal/model"

	"gorm.io/gorm"
)

type RegistrationRepository interface {
	Create(ctx context.Context, reg *model.RegisteredProvinceTax) error
	Update(ctx context.Context, reg *model.RegisteredProvinceTax) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.RegisteredProvinceTax, error)
	// FindByUserAndMain looks up the (user, main province) pair, ignoring
	// excludeID when set.
	FindByUserAndMain(ctx context.Context, userID, mainProvinceID uint, excludeID *uint) (*model.RegisteredProvinceTax, error)
	ListByUser(ctx context.Context, userID uint) ([]model.RegisteredProvinceTax, error)
}

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) Create(ctx context.Context, reg *model.RegisteredProvinceTax) error {
	return translateError(GetDB(ctx, r.db).Create(reg).Error)
}

func (r *registrationRepository) Update(ctx context.Context, reg *model.RegisteredProvinceTax) error {
	// Save writes every column, so a cleared secondary province is persisted as NULL.
	return translateError(GetDB(ctx, r.db).Save(reg).Error)
}

func (r *registrationRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.RegisteredProvinceTax{}).Error
}

func (r *registrationRepository) FindByID(ctx context.Context, id uint) (*model.RegisteredProvinceTax, error) {
	var reg model.RegisteredProvinceTax
	if err := GetDB(ctx, r.db).First(&reg, "id = ?", id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &reg, nil
}

func (r *registrationRepository) FindByUserAndMain(ctx context.Context, userID, mainProvinceID uint, excludeID *uint) (*model.RegisteredProvinceTax, error) {
	query := GetDB(ctx, r.db).Where("user_id = ? AND main_province_id = ?", userID, mainProvinceID)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	var reg model.RegisteredProvinceTax
	if err := query.First(&reg).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &reg, nil
}

func (r *registrationRepository) ListByUser(ctx context.Context, userID uint) ([]model.RegisteredProvinceTax, error) {
	var regs []model.RegisteredProvinceTax
	if err := GetDB(ctx, r.db).Where("user_id = ?", userID).Order("id asc").Find(&regs).Error; err != nil {
		return nil, err
	}
	return regs, nil
}
