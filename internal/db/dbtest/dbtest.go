// Package dbtest opens migrated in-memory SQLite databases for tests.
package dbtest

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/salon-booking/internal/db"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// Open returns a fresh schema. A single connection keeps the in-memory
// database alive and shared across the pool.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

type Fixture struct {
	Branch   models.Branch
	Service  models.Service
	Staff    []models.Staff
	Customer models.User
	Admin    models.User
}

// Seed inserts one branch with two stylists, a 60 minute service priced
// 100000 VND and two users.
func Seed(t *testing.T, gdb *gorm.DB) Fixture {
	t.Helper()

	f := Fixture{
		Branch:  models.Branch{Name: "District 1", Address: "12 Le Loi", Active: true},
		Service: models.Service{Name: "Haircut & Styling", DurationMin: 60, Price: 100000, Active: true},
	}
	mustCreate(t, gdb, &f.Branch)
	mustCreate(t, gdb, &f.Service)

	f.Staff = []models.Staff{
		{BranchID: f.Branch.ID, Name: "Lan", Active: true},
		{BranchID: f.Branch.ID, Name: "Minh", Active: true},
	}
	for i := range f.Staff {
		mustCreate(t, gdb, &f.Staff[i])
	}

	f.Customer = models.User{Name: "Hoa", Email: "hoa@example.com", PasswordHash: "x", Role: models.RoleCustomer}
	f.Admin = models.User{Name: "Admin", Email: "admin@example.com", PasswordHash: "x", Role: models.RoleAdmin}
	mustCreate(t, gdb, &f.Customer)
	mustCreate(t, gdb, &f.Admin)

	return f
}

func mustCreate(t *testing.T, gdb *gorm.DB, v any) {
	t.Helper()
	if err := gdb.Create(v).Error; err != nil {
		t.Fatalf("seed %T: %v", v, err)
	}
}
