package repository

import (
	"context"
	"database/sql"
	"regexp"
	"restaurant-directory/core/database"
	"restaurant-directory/modules/auth/entity"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var userRowColumns = []string{"id", "name", "email", "password", "role", "is_active", "created_at", "updated_at"}

func newMockRepository(t *testing.T) (*AuthRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	d := database.New(sqlx.NewDb(db, "sqlmock"))
	return NewAuthRepository(&d), mock
}

func TestGetUserByEmailLowercases(t *testing.T) {
	repo, mock := newMockRepository(t)
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("admin@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(id.String(), "Admin User", "admin@example.com", "hash", "admin", true, now, now))

	user, err := repo.GetUserByEmail(context.Background(), "  Admin@Example.com ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user == nil || user.ID != id || user.Role != "admin" || !user.IsActive {
		t.Fatalf("unexpected user %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGetUserByIDNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs(id.String()).
		WillReturnError(sql.ErrNoRows)

	user, err := repo.GetUserByID(context.Background(), id)
	if err != nil || user != nil {
		t.Fatalf("GetUserByID() = %+v, %v; want nil, nil", user, err)
	}
}

func TestCreateUser(t *testing.T) {
	repo, mock := newMockRepository(t)
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (name, email, password, role, is_active)")).
		WithArgs("Ana", "ana@example.com", "hash", "user", true).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(id.String(), "Ana", "ana@example.com", "hash", "user", true, now, now))

	created, err := repo.CreateUser(context.Background(), &entity.User{
		Name:     "Ana",
		Email:    "Ana@Example.com",
		Password: "hash",
		Role:     "user",
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != id || created.Email != "ana@example.com" {
		t.Fatalf("unexpected user %+v", created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
