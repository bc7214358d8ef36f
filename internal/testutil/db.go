// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/lshigami/Surveyor/database"
	"github.com/lshigami/Surveyor/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB returns a migrated, isolated in-memory SQLite database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent), TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// CreateUser inserts a user row so surveys can reference it.
func CreateUser(t *testing.T, db *gorm.DB, id string) *model.User {
	t.Helper()
	user := &model.User{ID: id, FirstName: id}
	require.NoError(t, db.Create(user).Error)
	return user
}
