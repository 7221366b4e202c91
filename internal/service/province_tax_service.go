package service

//go:generate mockgen -source=province_tax_service.go -destination=mocks/province_tax_service_mock.go -package=mocks ProvinceTaxService

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"thaitravel/internal/domain"
	"thaitravel/internal/metrics"
	"thaitravel/internal/model"
	"thaitravel/internal/repository"

	"github.com/shopspring/decimal"
)

// EventBaseTaxCreated is published after a base rate is stored.
const EventBaseTaxCreated = "province_tax.base_created"

const (
	msgProvinceExists  = "This province already exists."
	msgNegativeTax     = "Tax rate must not be negative."
	msgTaxScale        = "Tax rate must have at most 4 decimal places."
	msgTaxTooLarge     = "Tax rate must be less than 1000000."
	msgBaseTaxNotFound = "Province tax not found."
)

// Rates are stored as decimal(10,4).
const taxScale = 4

var maxTaxRate = decimal.New(1, 6)

type CreateBaseTaxRequest struct {
	Province string           `json:"province" binding:"required,province"`
	Tax      *decimal.Decimal `json:"tax" binding:"required"`
}

type BaseTaxResponse struct {
	ID        uint            `json:"id"`
	Province  string          `json:"province"`
	Tax       decimal.Decimal `json:"tax"`
	CreatedAt string          `json:"created_at"`
}

type ProvinceTaxService interface {
	CreateBase(ctx context.Context, actorID uint, req CreateBaseTaxRequest) (*BaseTaxResponse, error)
	ListBase(ctx context.Context) ([]BaseTaxResponse, error)
	GetBase(ctx context.Context, id uint) (*BaseTaxResponse, error)
}

type provinceTaxService struct {
	repo    repository.ProvinceTaxRepository
	audit   AuditService
	opts    options
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewProvinceTaxService(repo repository.ProvinceTaxRepository, audit AuditService, opts ...Option) ProvinceTaxService {
	o := newOptions(opts)
	return &provinceTaxService{
		repo:    repo,
		audit:   audit,
		opts:    o,
		logger:  o.logger,
		metrics: o.metrics,
	}
}

func toBaseTaxResponse(b *model.BaseProvinceTax) BaseTaxResponse {
	return BaseTaxResponse{
		ID:        b.ID,
		Province:  b.Province,
		Tax:       b.Tax,
		CreatedAt: b.CreatedAt.Format(timeLayout),
	}
}

func (s *provinceTaxService) CreateBase(ctx context.Context, actorID uint, req CreateBaseTaxRequest) (*BaseTaxResponse, error) {
	if req.Tax == nil {
		return nil, domain.NewBadRequestError("Tax rate is required.")
	}
	if req.Tax.IsNegative() {
		return nil, domain.NewBadRequestError(msgNegativeTax)
	}
	if !req.Tax.Equal(req.Tax.Round(taxScale)) {
		return nil, domain.NewBadRequestError(msgTaxScale)
	}
	if req.Tax.GreaterThanOrEqual(maxTaxRate) {
		return nil, domain.NewBadRequestError(msgTaxTooLarge)
	}

	existing, err := s.repo.FindByProvince(ctx, req.Province)
	if err != nil {
		return nil, fmt.Errorf("check province: %w", err)
	}
	if existing != nil {
		return nil, domain.NewConflictError(msgProvinceExists)
	}

	base := &model.BaseProvinceTax{Province: req.Province, Tax: req.Tax.Round(taxScale)}
	if err := s.repo.Create(ctx, base); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.NewConflictError(msgProvinceExists)
		}
		return nil, fmt.Errorf("create base province tax: %w", err)
	}

	res := toBaseTaxResponse(base)

	s.metrics.IncBaseTaxCreated()
	s.audit.Record(ctx, actorID, model.ActionCreateBaseTax, base.ID, base.Province, req)
	s.opts.publish(EventBaseTaxCreated, res)
	s.logger.InfoContext(ctx, "base province tax created",
		"event", "base_tax_created",
		"module", "province_tax",
		"layer", "service",
		"province", base.Province,
		"tax", base.Tax.String(),
	)

	return &res, nil
}

func (s *provinceTaxService) ListBase(ctx context.Context) ([]BaseTaxResponse, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list base province taxes: %w", err)
	}

	res := make([]BaseTaxResponse, 0, len(rows))
	for i := range rows {
		res = append(res, toBaseTaxResponse(&rows[i]))
	}
	return res, nil
}

func (s *provinceTaxService) GetBase(ctx context.Context, id uint) (*BaseTaxResponse, error) {
	base, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load base province tax: %w", err)
	}
	if base == nil {
		return nil, domain.NewNotFoundError(msgBaseTaxNotFound)
	}
	res := toBaseTaxResponse(base)
	return &res, nil
}
