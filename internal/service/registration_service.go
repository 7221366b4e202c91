package service

//go:generate mockgen -source=registration_service.go -destination=mocks/registration_service_mock.go -package=mocks RegistrationService

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

const (
	msgAlreadyRegistered    = "Already registered for this province."
	msgMainNotFound         = "Main province not found."
	msgSecondaryNotFound    = "Secondary province not found."
	msgRegistrationNotFound = "Registration not found."
	msgSecondaryEqualsMain  = "Secondary province must differ from the main province."
)

// RegisterProvinceTaxRequest is the body of both register and update.
// A missing, null or zero secondary_province_id means no secondary province.
type RegisterProvinceTaxRequest struct {
	Name                string `json:"name" binding:"required,max=255"`
	Email               string `json:"email" binding:"required,email"`
	MainProvinceID      uint   `json:"main_province_id" binding:"required"`
	SecondaryProvinceID *uint  `json:"secondary_province_id"`
}

type RegistrationResponse struct {
	ID                   uint             `json:"id"`
	UserID               uint             `json:"user_id"`
	Name                 string           `json:"name"`
	Email                string           `json:"email"`
	MainProvinceID       uint             `json:"main_province_id"`
	MainProvinceTax      decimal.Decimal  `json:"main_province_tax"`
	SecondaryProvinceID  *uint            `json:"secondary_province_id"`
	SecondaryProvinceTax *decimal.Decimal `json:"secondary_province_tax"`
	CreatedAt            string           `json:"created_at"`
	UpdatedAt            string           `json:"updated_at"`
}

// RegistrationService owns the per-user registration workflow. Every lookup
// by registration id treats a row owned by someone else as missing.
type RegistrationService interface {
	Register(ctx context.Context, user *model.User, req RegisterProvinceTaxRequest) (*RegistrationResponse, error)
	Update(ctx context.Context, id uint, user *model.User, req RegisterProvinceTaxRequest) (*RegistrationResponse, error)
	Delete(ctx context.Context, id uint, user *model.User) error
	ListForUser(ctx context.Context, user *model.User) ([]RegistrationResponse, error)
}

type registrationService struct {
	tx      repository.TransactionManager
	regs    repository.RegistrationRepository
	bases   repository.ProvinceTaxRepository
	audit   AuditService
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewRegistrationService(
	tx repository.TransactionManager,
	regs repository.RegistrationRepository,
	bases repository.ProvinceTaxRepository,
	audit AuditService,
	opts ...Option,
) RegistrationService {
	o := newOptions(opts)
	return &registrationService{
		tx:      tx,
		regs:    regs,
		bases:   bases,
		audit:   audit,
		logger:  o.logger,
		metrics: o.metrics,
	}
}

func toRegistrationResponse(r *model.RegisteredProvinceTax) RegistrationResponse {
	res := RegistrationResponse{
		ID:                  r.ID,
		UserID:              r.UserID,
		Name:                r.Name,
		Email:               r.Email,
		MainProvinceID:      r.MainProvinceID,
		MainProvinceTax:     r.MainProvinceTax,
		SecondaryProvinceID: r.SecondaryProvinceID,
		CreatedAt:           r.CreatedAt.Format(timeLayout),
		UpdatedAt:           r.UpdatedAt.Format(timeLayout),
	}
	if r.SecondaryProvinceTax.Valid {
		tax := r.SecondaryProvinceTax.Decimal
		res.SecondaryProvinceTax = &tax
	}
	return res
}

func secondaryID(req RegisterProvinceTaxRequest) *uint {
	if req.SecondaryProvinceID == nil || *req.SecondaryProvinceID == 0 {
		return nil
	}
	id := *req.SecondaryProvinceID
	return &id
}

// applySnapshot resolves both provinces and copies their current rates onto
// reg. Without a secondary province the secondary columns are cleared.
func (s *registrationService) applySnapshot(ctx context.Context, reg *model.RegisteredProvinceTax, req RegisterProvinceTaxRequest) error {
	main, err := s.bases.FindByID(ctx, req.MainProvinceID)
	if err != nil {
		return fmt.Errorf("load main province: %w", err)
	}
	if main == nil {
		return domain.NewNotFoundError(msgMainNotFound)
	}

	reg.Name = req.Name
	reg.Email = req.Email
	reg.MainProvinceID = main.ID
	reg.MainProvinceTax = main.Tax
	reg.SecondaryProvinceID = nil
	reg.SecondaryProvinceTax = decimal.NullDecimal{}

	sid := secondaryID(req)
	if sid == nil {
		return nil
	}
	if *sid == main.ID {
		return domain.NewBadRequestError(msgSecondaryEqualsMain)
	}

	secondary, err := s.bases.FindByID(ctx, *sid)
	if err != nil {
		return fmt.Errorf("load secondary province: %w", err)
	}
	if secondary == nil {
		return domain.NewNotFoundError(msgSecondaryNotFound)
	}
	reg.SecondaryProvinceID = &secondary.ID
	reg.SecondaryProvinceTax = decimal.NewNullDecimal(secondary.Tax)
	return nil
}

func (s *registrationService) Register(ctx context.Context, user *model.User, req RegisterProvinceTaxRequest) (*RegistrationResponse, error) {
	reg := &model.RegisteredProvinceTax{UserID: user.ID}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		existing, err := s.regs.FindByUserAndMain(txCtx, user.ID, req.MainProvinceID, nil)
		if err != nil {
			return fmt.Errorf("check existing registration: %w", err)
		}
		if existing != nil {
			return domain.NewConflictError(msgAlreadyRegistered)
		}

		if err := s.applySnapshot(txCtx, reg, req); err != nil {
			return err
		}

		if err := s.regs.Create(txCtx, reg); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return domain.NewConflictError(msgAlreadyRegistered)
			}
			return fmt.Errorf("create registration: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncRegistration("create")
	s.logger.InfoContext(ctx, "province tax registered",
		"event", "registration_created",
		"module", "province_tax",
		"layer", "service",
		"registration_id", reg.ID,
		"user_id", user.ID,
	)
	s.audit.Record(ctx, user.ID, model.ActionRegisterProvince, reg.ID, reg.Name, req)

	res := toRegistrationResponse(reg)
	return &res, nil
}

func (s *registrationService) Update(ctx context.Context, id uint, user *model.User, req RegisterProvinceTaxRequest) (*RegistrationResponse, error) {
	var reg *model.RegisteredProvinceTax

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		reg, err = s.findOwned(txCtx, id, user)
		if err != nil {
			return err
		}

		if req.MainProvinceID != reg.MainProvinceID {
			clash, err := s.regs.FindByUserAndMain(txCtx, user.ID, req.MainProvinceID, &reg.ID)
			if err != nil {
				return fmt.Errorf("check existing registration: %w", err)
			}
			if clash != nil {
				return domain.NewConflictError(msgAlreadyRegistered)
			}
		}

		if err := s.applySnapshot(txCtx, reg, req); err != nil {
			return err
		}

		if err := s.regs.Update(txCtx, reg); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return domain.NewConflictError(msgAlreadyRegistered)
			}
			return fmt.Errorf("update registration: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncRegistration("update")
	s.audit.Record(ctx, user.ID, model.ActionUpdateRegistration, reg.ID, reg.Name, req)

	res := toRegistrationResponse(reg)
	return &res, nil
}

func (s *registrationService) Delete(ctx context.Context, id uint, user *model.User) error {
	var name string

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		reg, err := s.findOwned(txCtx, id, user)
		if err != nil {
			return err
		}
		name = reg.Name
		if err := s.regs.Delete(txCtx, reg.ID); err != nil {
			return fmt.Errorf("delete registration: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.metrics.IncRegistration("delete")
	s.logger.InfoContext(ctx, "province tax registration deleted",
		"event", "registration_deleted",
		"module", "province_tax",
		"layer", "service",
		"registration_id", id,
		"user_id", user.ID,
	)
	s.audit.Record(ctx, user.ID, model.ActionDeleteRegistration, id, name, nil)
	return nil
}

func (s *registrationService) ListForUser(ctx context.Context, user *model.User) ([]RegistrationResponse, error) {
	regs, err := s.regs.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	res := make([]RegistrationResponse, 0, len(regs))
	for i := range regs {
		res = append(res, toRegistrationResponse(&regs[i]))
	}
	return res, nil
}

func (s *registrationService) findOwned(ctx context.Context, id uint, user *model.User) (*model.RegisteredProvinceTax, error) {
	reg, err := s.regs.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load registration: %w", err)
	}
	if reg == nil || reg.UserID != user.ID {
		return nil, domain.NewNotFoundError(msgRegistrationNotFound)
	}
	return reg, nil
}
