package database

import (
	"testing"

	"github.com/11Jagan/Expense-Tracker/internal/config"
	"github.com/11Jagan/Expense-Tracker/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testModels is ordered child first so foreign keys never block a delete
var testModels = []interface{}{
	&models.Budget{},
	&models.Income{},
	&models.Expense{},
	&models.BlacklistedToken{},
	&models.RefreshToken{},
	&models.User{},
}

// SetupTestDB opens a migrated in-memory sqlite database that is closed when
// the test finishes
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// each new connection to :memory: would see an empty database
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	db := &DB{
		DB:     gdb,
		config: &config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"},
	}
	if err := db.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// CreateTestUser inserts a user with a placeholder password hash
func CreateTestUser(t *testing.T, db *DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		PasswordHash: "hashed_password",
		FirstName:    "Test",
		LastName:     "User",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user %s: %v", email, err)
	}
	return user
}

// CleanupTestDB hard deletes every row, soft deleted users included
func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	wipe := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped()
	for _, model := range testModels {
		if err := wipe.Delete(model).Error; err != nil {
			t.Errorf("failed to clean up %T: %v", model, err)
		}
	}
}
