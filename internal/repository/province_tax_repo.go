package repository

import (
	"context"

	"thaitravel/internal/model"

	"gorm.io/gorm"
)

// ProvinceTaxRepository stores base tax rates. FindBy* return (nil, nil) when
// nothing matches.
type ProvinceTaxRepository interface {
	Create(ctx context.Context, base *model.BaseProvinceTax) error
	List(ctx context.Context) ([]model.BaseProvinceTax, error)
	FindByID(ctx context.Context, id uint) (*model.BaseProvinceTax, error)
	FindByProvince(ctx context.Context, province string) (*model.BaseProvinceTax, error)
}

type provinceTaxRepository struct {
	db *gorm.DB
}

func NewProvinceTaxRepository(db *gorm.DB) ProvinceTaxRepository {
	return &provinceTaxRepository{db: db}
}

func (r *provinceTaxRepository) Create(ctx context.Context, base *model.BaseProvinceTax) error {
	return translateError(GetDB(ctx, r.db).Create(base).Error)
}

func (r *provinceTaxRepository) List(ctx context.Context) ([]model.BaseProvinceTax, error) {
	var rows []model.BaseProvinceTax
	if err := GetDB(ctx, r.db).Order("id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *provinceTaxRepository) FindByID(ctx context.Context, id uint) (*model.BaseProvinceTax, error) {
	var base model.BaseProvinceTax
	if err := GetDB(ctx, r.db).First(&base, "id = ?", id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &base, nil
}

func (r *provinceTaxRepository) FindByProvince(ctx context.Context, province string) (*model.BaseProvinceTax, error) {
	var base model.BaseProvinceTax
	if err := GetDB(ctx, r.db).Where("province = ?", province).First(&base).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &base, nil
}
