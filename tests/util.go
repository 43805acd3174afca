package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/arisha-glich/class-gecko-backend/core/user"
	"github.com/arisha-glich/class-gecko-backend/storage/database"
	"github.com/arisha-glich/class-gecko-backend/storage/database/gormrepos"
)

// PrepareDB opens a private in-memory database holding every table of the application.
// It is closed when the test ends.
func PrepareDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), database.Config("silent"))
	if err != nil {
		t.Fatalf("PrepareDB() failed to open: %v", err)
	}
	if err = db.AutoMigrate(database.Models()...); err != nil {
		t.Fatalf("PrepareDB() failed to migrate: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func SQLx(t *testing.T, db *gorm.DB) *sqlx.DB {
	t.Helper()
	xdb, err := database.SQLx(db)
	if err != nil {
		t.Fatalf("SQLx() failed: %v", err)
	}
	return xdb
}

func CreateUser(t *testing.T, db *gorm.DB, name, email, role string, pwd ...string) user.User {
	t.Helper()
	usr := user.User{
		ID:            uuid.New().String(),
		Email:         email,
		EmailVerified: true,
		Role:          role,
	}
	usr.Name.SetValid(name)
	if len(pwd) > 0 {
		if err := usr.SetPassword(pwd[0]); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := gormrepos.NewUserRepository(db).CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

// CreateSession returns the token of a session of usr, valid for an hour.
func CreateSession(t *testing.T, db *gorm.DB, usr user.User) string {
	t.Helper()
	sess := user.Session{
		Token:     uuid.New().String(),
		UserID:    usr.ID,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	if _, err := gormrepos.NewUserRepository(db).CreateSession(context.Background(), sess); err != nil {
		t.Fatalf("CreateSession() failed: %v", err)
	}
	return sess.Token
}
