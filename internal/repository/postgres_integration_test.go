//go:build integration

package repository_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"thaitravel/internal/database"
	"thaitravel/internal/model"
	"thaitravel/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

type PostgresRepositorySuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
}

func TestPostgresRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresRepositorySuite))
}

func (s *PostgresRepositorySuite) SetupSuite() {
	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("thaitravel"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.db, err = database.NewConnection(dsn, nil)
	s.Require().NoError(err)
}

func (s *PostgresRepositorySuite) TearDownSuite() {
	_ = database.Close(s.db)
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *PostgresRepositorySuite) SetupTest() {
	s.Require().NoError(s.db.Exec("TRUNCATE registered_province_tax, province_tax, user_roles, users, audit_logs RESTART IDENTITY CASCADE").Error)
}

// TestConcurrentDuplicateProvince verifies the unique index, not the service
// pre-check, decides a concurrent duplicate insert.
func (s *PostgresRepositorySuite) TestConcurrentDuplicateProvince() {
	repo := repository.NewProvinceTaxRepository(s.db)
	const goroutines = 20

	var wg sync.WaitGroup
	var successes, conflicts atomic.Int32
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Create(context.Background(), &model.BaseProvinceTax{Province: "Chiang Mai", Tax: decimal.RequireFromString("7.5")})
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, repository.ErrDuplicate):
				conflicts.Add(1)
			default:
				s.T().Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successes.Load())
	s.Equal(int32(goroutines-1), conflicts.Load())
}

func (s *PostgresRepositorySuite) TestDecimalSnapshotRoundTrip() {
	ctx := context.Background()
	user := &model.User{Username: "alice", Email: "alice@example.com", Password: "hash", Status: model.UserStatusActive}
	s.Require().NoError(repository.NewUserRepository(s.db).Create(ctx, user))

	base := &model.BaseProvinceTax{Province: "Phuket", Tax: decimal.RequireFromString("7.25")}
	s.Require().NoError(repository.NewProvinceTaxRepository(s.db).Create(ctx, base))

	regs := repository.NewRegistrationRepository(s.db)
	reg := &model.RegisteredProvinceTax{UserID: user.ID, Name: "Co", Email: "co@example.com", MainProvinceID: base.ID, MainProvinceTax: base.Tax}
	s.Require().NoError(regs.Create(ctx, reg))
	s.ErrorIs(regs.Create(ctx, &model.RegisteredProvinceTax{UserID: user.ID, Name: "Co", Email: "co@example.com", MainProvinceID: base.ID, MainProvinceTax: base.Tax}), repository.ErrDuplicate)

	stored, err := regs.FindByID(ctx, reg.ID)
	s.Require().NoError(err)
	s.True(stored.MainProvinceTax.Equal(decimal.RequireFromString("7.25")))
	s.False(stored.SecondaryProvinceTax.Valid)
}
