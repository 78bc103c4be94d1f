package repo

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-helpdesk-backend/internal/domain"
)

// newTestDB opens a unique in-memory SQLite database with the full
// helpdesk schema migrated. Shared by all repo tests in this package.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// seedUser inserts a user with the given role and returns it.
func seedUser(t *testing.T, db *gorm.DB, name, role string) domain.User {
	t.Helper()
	u := domain.User{Name: name, Email: name + "@helpdesk.test", Role: role}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user %q: %v", name, err)
	}
	return u
}

func TestOpenSQLite_CreatesFileAndMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "helpdesk.db")

	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite error: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate error: %v", err)
	}

	// Schema usable end to end: write through a m2m association.
	u := seedUser(t, db, "opener", domain.RoleCustomer)
	tk := domain.Ticket{
		Title:       "Schema check",
		Description: "d",
		Priority:    domain.PriorityNormal,
		Status:      domain.StatusOpen,
		UserID:      u.ID,
		Categories:  []domain.Category{{CategoryName: "General"}},
	}
	if err := db.Create(&tk).Error; err != nil {
		t.Fatalf("create ticket: %v", err)
	}

	got, err := GetTicket(context.Background(), db, tk.ID)
	if err != nil || got.Title != "Schema check" {
		t.Fatalf("round trip failed: %v %+v", err, got)
	}
}

func TestOpenSQLite_MissingParentDir(t *testing.T) {
	if _, err := OpenSQLite(filepath.Join(t.TempDir(), "nope", "x.db")); err == nil {
		t.Fatalf("expected error for missing parent directory")
	}
}
