// Package testutil provides shared helpers for the storefront test
// suites: a sqlmock-backed GORM database, an HTTP harness that understands
// the API response envelope, and event bus doubles.
package testutil

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockDB bundles a GORM connection with the sqlmock driver behind it.
type MockDB struct {
	DB    *gorm.DB
	Mock  sqlmock.Sqlmock
	sqlDB *sql.DB
}

// NewMockDB opens a GORM connection backed by sqlmock. The caller owns
// Close.
func NewMockDB(t *testing.T) *MockDB {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create sqlmock")

	dialector := postgres.New(postgres.Config{
		Conn:       sqlDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err, "Failed to open GORM connection")

	return &MockDB{
		DB:    gormDB,
		Mock:  mock,
		sqlDB: sqlDB,
	}
}

// Close closes the underlying connection.
func (m *MockDB) Close() error {
	return m.sqlDB.Close()
}

// ExpectationsWereMet fails the test when sqlmock expectations are left
// unsatisfied.
func (m *MockDB) ExpectationsWereMet(t *testing.T) {
	t.Helper()
	require.NoError(t, m.Mock.ExpectationsWereMet(), "Unmet database expectations")
}

// NewTestUUID derives a stable UUID from seed so fixtures stay
// reproducible across runs.
func NewTestUUID(seed string) uuid.UUID {
	namespace := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	return uuid.NewSHA1(namespace, []byte(seed))
}

// TestUserID is the canonical shopper ID used across suites.
func TestUserID() uuid.UUID {
	return NewTestUUID("test-user")
}
