package service

//go:generate mockgen -source=audit_service.go -destination=mocks/audit_service_mock.go -package=mocks AuditService

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"thaitravel/internal/model"
	"thaitravel/internal/repository"
)

type AuditLogResponse struct {
	ID         string `json:"id"`
	UserID     *uint  `json:"user_id"`
	Username   string `json:"username"`
	Action     string `json:"action"`
	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity_name"`
	Details    string `json:"details"`
	CreatedAt  string `json:"created_at"`
}

// AuditLogQuery filters GetAuditLogs; empty fields are ignored.
type AuditLogQuery struct {
	Action   string `form:"action"`
	UserID   uint   `form:"user_id"`
	EntityID string `form:"entity_id"`
}

type AuditService interface {
	// Record stores an audit entry. Failures are logged, never returned.
	Record(ctx context.Context, actorID uint, action string, entityID uint, entityName string, details any)
	GetAuditLogs(ctx context.Context, query AuditLogQuery, page, limit int) ([]AuditLogResponse, int64, error)
}

type auditService struct {
	repo   repository.AuditRepository
	logger *slog.Logger
}

func NewAuditService(repo repository.AuditRepository, opts ...Option) AuditService {
	o := newOptions(opts)
	return &auditService{repo: repo, logger: o.logger}
}

func (s *auditService) Record(ctx context.Context, actorID uint, action string, entityID uint, entityName string, details any) {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	entry := &model.AuditLog{
		Action:     action,
		EntityID:   strconv.FormatUint(uint64(entityID), 10),
		EntityName: entityName,
		Details:    string(detailsJSON),
	}
	if actorID != 0 {
		entry.UserID = &actorID
	}

	if err := s.repo.Log(ctx, entry); err != nil {
		s.logger.WarnContext(ctx, "failed to write audit log",
			"event", "audit_log_failed",
			"module", "audit",
			"layer", "service",
			"action", action,
			"error", err,
		)
	}
}

func (s *auditService) GetAuditLogs(ctx context.Context, query AuditLogQuery, page, limit int) ([]AuditLogResponse, int64, error) {
	filter := repository.AuditFilter{Action: query.Action, UserID: query.UserID, EntityID: query.EntityID}
	logs, total, err := s.repo.List(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		username := "System"
		if l.User != nil {
			username = l.User.Username
		}
		res = append(res, AuditLogResponse{
			ID:         l.ID.String(),
			UserID:     l.UserID,
			Username:   username,
			Action:     l.Action,
			EntityID:   l.EntityID,
			EntityName: l.EntityName,
			Details:    l.Details,
			CreatedAt:  l.CreatedAt.Format(timeLayout),
		})
	}
	return res, total, nil
}
