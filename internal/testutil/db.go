// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"thaitravel/internal/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewTestDB returns a migrated, role-seeded in-memory sqlite database private
// to t. The pool is pinned to one connection so the in-memory database lives
// as long as the test and transactions never wait on a second connection.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)

	db, err := gorm.Open(sqlite.Open(dsn), database.GormConfig(nil))
	require.NoError(t, err, "open sqlite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedRoles(context.Background(), db))
	return db
}
