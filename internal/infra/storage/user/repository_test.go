package user

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/pkg/dbmetrics"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestRepository_GetByUsername(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE LOWER(username) = LOWER($1)")).
		WithArgs("Admin").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(1, "admin", "Administrator", "", "admin", "$2a$hash", now, now))

	u, err := repo.GetByUsername(context.Background(), "Admin")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)
	assert.Equal(t, "$2a$hash", u.PasswordHash)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRepository_Update_KeepsPasswordWhenEmpty(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET username = $1, name = $2, phone = $3, role = $4, updated_at = NOW() WHERE id = $5 RETURNING created_at, updated_at")).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	_, err := repo.Update(context.Background(), &domain.User{ID: 2, Username: "andi", Name: "Andi", Role: domain.RoleMechanic})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_RoleFilter(t *testing.T) {
	repo, mock := newMock(t)
	role := domain.RoleMechanic

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE role = $1 ORDER BY name ASC, id ASC")).
		WithArgs(role).
		WillReturnRows(sqlmock.NewRows(userColumns))

	users, err := repo.List(context.Background(), domain.UsersFilter{Role: &role})
	require.NoError(t, err)
	assert.Empty(t, users)
}
