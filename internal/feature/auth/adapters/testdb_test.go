package adapters

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"signalist_backend/internal/feature/auth/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database with the auth tables.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection would otherwise get its own empty database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&entity.User{}, &SessionModel{}), "failed to migrate tables")
	return db
}
