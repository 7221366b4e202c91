package database

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"thaitravel/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), GormConfig(nil))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestPrepare_MigratesAndSeedsIdempotently(t *testing.T) {
	db := openSQLite(t)

	require.NoError(t, prepare(db, time.Second))
	require.NoError(t, prepare(db, time.Second))

	var roles []model.Role
	require.NoError(t, db.Order("name asc").Find(&roles).Error)
	require.Len(t, roles, len(model.DefaultRoles))
	assert.Equal(t, model.RoleAdmin, roles[0].Name)
}

func TestPrepare_SeedFailureClosesPool(t *testing.T) {
	db := openSQLite(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, db.Exec(
		"CREATE TRIGGER reject_roles BEFORE INSERT ON roles BEGIN SELECT RAISE(ABORT, 'roles are read-only'); END",
	).Error)

	err := prepare(db, time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed role")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Error(t, sqlDB.PingContext(context.Background()), "pool must be closed")
}

func TestClose_NilIsNoop(t *testing.T) {
	assert.NoError(t, Close(nil))
}
