package tests

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/Altair788/AdHub/internal/server/models"
	"github.com/Altair788/AdHub/internal/server/repository"
	serr "github.com/Altair788/AdHub/internal/shared/errors"
	"github.com/Altair788/AdHub/internal/shared/utils"
)

var accountCols = []string{
	"id", "email", "password_hash", "role", "is_active", "recovery_token_hash",
	"tg_id", "tg_nick", "first_name", "last_name", "phone", "country", "image", "created_at",
}

func accountRows(id int64, email string, active bool, tokenHash any) *sqlmock.Rows {
	return sqlmock.NewRows(accountCols).AddRow(
		id, email, "hash", "user", active, tokenHash,
		nil, "", "", "", nil, "", nil, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	)
}

func newUsersRepo(t *testing.T) (*repository.UsersRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return repository.NewUsersRepository(db), mock
}

// Успех
func TestUsersRepository_Create_OK(t *testing.T) {
	repo, mock := newUsersRepo(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("test@mail.com", "hash", "user", false, "tokenhash",
			nil, "", "", "", nil, "").
		WillReturnRows(accountRows(1, "test@mail.com", false, "tokenhash"))

	got, err := repo.Create(context.Background(), models.NewAccount{
		Email:             "test@mail.com",
		PasswordHash:      "hash",
		Role:              models.RoleUser,
		RecoveryTokenHash: utils.StrPtr("tokenhash"),
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), got.ID)
	require.False(t, got.IsActive)
	require.Equal(t, models.RoleUser, got.Role)
	require.Equal(t, "tokenhash", *got.RecoveryTokenHash)
	require.Nil(t, got.Phone)
	require.Nil(t, got.TgID)
}

// Такой пользователь уже есть
func TestUsersRepository_Create_AlreadyExists(t *testing.T) {
	repo, mock := newUsersRepo(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), models.NewAccount{Email: "test@mail.com", PasswordHash: "hash", Role: models.RoleUser})
	require.ErrorIs(t, err, serr.ErrAlreadyExists)
}

// Ошибка сервера
func TestUsersRepository_Create_InternalError(t *testing.T) {
	repo, mock := newUsersRepo(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(sql.ErrConnDone)

	_, err := repo.Create(context.Background(), models.NewAccount{Email: "test@mail.com", PasswordHash: "hash", Role: models.RoleUser})
	require.ErrorIs(t, err, serr.ErrInternal)
	require.ErrorIs(t, err, sql.ErrConnDone)
}

func TestUsersRepository_GetByEmail(t *testing.T) {
	repo, mock := newUsersRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email=\$1`).
		WithArgs("test@mail.com").
		WillReturnRows(accountRows(3, "test@mail.com", true, nil))

	got, err := repo.GetByEmail(context.Background(), "test@mail.com")
	require.NoError(t, err)
	require.Equal(t, int64(3), got.ID)
	require.Nil(t, got.RecoveryTokenHash)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email=\$1`).
		WithArgs("nobody@mail.com").
		WillReturnError(sql.ErrNoRows)

	_, err = repo.GetByEmail(context.Background(), "nobody@mail.com")
	require.ErrorIs(t, err, serr.ErrNotFound)
}

func TestUsersRepository_GetByRecoveryHash_NotFound(t *testing.T) {
	repo, mock := newUsersRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE recovery_token_hash=\$1`).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByRecoveryHash(context.Background(), "nope")
	require.ErrorIs(t, err, serr.ErrNotFound)
}

func TestUsersRepository_Activate(t *testing.T) {
	repo, mock := newUsersRepo(t)

	mock.ExpectQuery(`UPDATE users\s+SET is_active = TRUE`).
		WithArgs("tokenhash").
		WillReturnRows(accountRows(1, "test@mail.com", true, nil))

	got, err := repo.Activate(context.Background(), "tokenhash")
	require.NoError(t, err)
	require.True(t, got.IsActive)
	require.Nil(t, got.RecoveryTokenHash)

	// токен уже погашен
	mock.ExpectQuery(`UPDATE users\s+SET is_active = TRUE`).
		WithArgs("tokenhash").
		WillReturnError(sql.ErrNoRows)

	_, err = repo.Activate(context.Background(), "tokenhash")
	require.ErrorIs(t, err, serr.ErrNotFound)
}

func TestUsersRepository_SetRecoveryHash(t *testing.T) {
	repo, mock := newUsersRepo(t)

	mock.ExpectExec(`UPDATE users SET recovery_token_hash=\$2 WHERE id=\$1`).
		WithArgs(int64(5), "newhash").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SetRecoveryHash(context.Background(), 5, "newhash"))

	mock.ExpectExec(`UPDATE users SET recovery_token_hash`).
		WithArgs(int64(6), "newhash").
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, repo.SetRecoveryHash(context.Background(), 6, "newhash"), serr.ErrNotFound)
}

func TestUsersRepository_ResetPassword(t *testing.T) {
	repo, mock := newUsersRepo(t)

	mock.ExpectExec(`UPDATE users\s+SET password_hash = \$3`).
		WithArgs(int64(5), "tokenhash", "newpass").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.ResetPassword(context.Background(), 5, "tokenhash", "newpass"))

	// токен не совпал или уже использован
	mock.ExpectExec(`UPDATE users\s+SET password_hash = \$3`).
		WithArgs(int64(5), "tokenhash", "newpass").
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, repo.ResetPassword(context.Background(), 5, "tokenhash", "newpass"), serr.ErrNotFound)
}

func TestUsersRepository_List_EscapesFilter(t *testing.T) {
	repo, mock := newUsersRepo(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM users`).
		WithArgs(`%50\%\_off%`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT (.+) FROM users\s+WHERE (.+) ORDER BY created_at DESC, id DESC`).
		WithArgs(`%50\%\_off%`, 4, 0).
		WillReturnRows(accountRows(9, "50%_off@mail.com", true, nil))

	page, err := repo.List(context.Background(), models.AccountFilter{Email: "50%_off"}, models.PageRequest{Page: 1, Size: 4})
	require.NoError(t, err)
	require.Equal(t, 1, page.Count)
	require.Len(t, page.Items, 1)
}

func TestUsersRepository_Update(t *testing.T) {
	repo, mock := newUsersRepo(t)

	mock.ExpectQuery(`UPDATE users SET`).
		WithArgs(int64(1), nil, "nick", nil, nil, "", nil, nil, nil).
		WillReturnRows(accountRows(1, "test@mail.com", true, nil))

	_, err := repo.Update(context.Background(), 1, models.AccountPatch{
		TgNick: utils.StrPtr("nick"),
		Phone:  utils.StrPtr(""),
	})
	require.NoError(t, err)
}

func TestUsersRepository_Update_DuplicatePhone(t *testing.T) {
	repo, mock := newUsersRepo(t)

	mock.ExpectQuery(`UPDATE users SET`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_phone_key"})

	_, err := repo.Update(context.Background(), 1, models.AccountPatch{Phone: utils.StrPtr("+100")})
	require.ErrorIs(t, err, serr.ErrAlreadyExists)
}

func TestUsersRepository_Delete(t *testing.T) {
	repo, mock := newUsersRepo(t)

	mock.ExpectExec(`DELETE FROM users WHERE id=\$1`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), 1))

	mock.ExpectExec(`DELETE FROM users WHERE id=\$1`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, repo.Delete(context.Background(), 1), serr.ErrNotFound)
}

func TestUsersRepository_UpsertAdmin(t *testing.T) {
	repo, mock := newUsersRepo(t)

	rows := sqlmock.NewRows(accountCols).AddRow(
		int64(1), "admin@adhub.local", "hash", "admin", true, nil,
		nil, "", "", "", nil, "", nil, time.Now(),
	)
	mock.ExpectQuery(`INSERT INTO users (.+) ON CONFLICT \(email\) DO UPDATE`).
		WithArgs("admin@adhub.local", "hash").
		WillReturnRows(rows)

	a, err := repo.UpsertAdmin(context.Background(), "admin@adhub.local", "hash")
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, a.Role)
	require.True(t, a.IsActive)
}

func TestHealthRepository_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()
	require.NoError(t, repository.NewHealthRepository(db).Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("db down"))
	require.ErrorIs(t, repository.NewHealthRepository(db).Ping(context.Background()), serr.ErrInternal)
}
