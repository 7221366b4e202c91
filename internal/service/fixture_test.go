package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"thaitravel/internal/auth"
	"thaitravel/internal/metrics"
	"thaitravel/internal/model"
	"thaitravel/internal/repository"
	"thaitravel/internal/testutil"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordedEvent struct {
	name    string
	payload interface{}
}

type recordingPublisher struct {
	events []recordedEvent
}

func (p *recordingPublisher) Publish(event string, payload interface{}) {
	p.events = append(p.events, recordedEvent{name: event, payload: payload})
}

type fixture struct {
	db            *gorm.DB
	tokens        *auth.TokenManager
	limiter       *auth.MemoryLimiter
	metrics       *metrics.Metrics
	events        *recordingPublisher
	audit         AuditService
	users         UserService
	provinceTaxes ProvinceTaxService
	registrations RegistrationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)

	f := &fixture{
		db:      db,
		tokens:  auth.NewTokenManager([]byte("test-secret"), 30*time.Minute),
		limiter: auth.NewMemoryLimiter(3, time.Minute),
		metrics: metrics.New(prometheus.NewRegistry()),
		events:  &recordingPublisher{},
	}
	opts := []Option{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(f.metrics),
		WithEventPublisher(f.events),
		WithAdminUsernames([]string{"root"}),
	}

	userRepo := repository.NewUserRepository(db)
	baseRepo := repository.NewProvinceTaxRepository(db)

	f.audit = NewAuditService(repository.NewAuditRepository(db), opts...)
	f.users = NewUserService(userRepo, repository.NewRoleRepository(db), f.tokens, f.limiter, f.audit, opts...)
	f.provinceTaxes = NewProvinceTaxService(baseRepo, f.audit, opts...)
	f.registrations = NewRegistrationService(
		repository.NewTransactionManager(db),
		repository.NewRegistrationRepository(db),
		baseRepo,
		f.audit,
		opts...,
	)
	return f
}

// createUser signs a user up and returns the stored model with roles loaded.
func (f *fixture) createUser(t *testing.T, username string) *model.User {
	t.Helper()
	res, err := f.users.CreateUser(context.Background(), CreateUserRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	user, err := repository.NewUserRepository(f.db).GetByID(context.Background(), res.ID)
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

func (f *fixture) createBase(t *testing.T, province, rate string) *BaseTaxResponse {
	t.Helper()
	tax := decimal.RequireFromString(rate)
	res, err := f.provinceTaxes.CreateBase(context.Background(), 0, CreateBaseTaxRequest{Province: province, Tax: &tax})
	require.NoError(t, err)
	return res
}

func uintPtr(v uint) *uint { return &v }
