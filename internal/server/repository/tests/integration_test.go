//go:build integration

package tests

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Altair788/AdHub/internal/server/config"
	"github.com/Altair788/AdHub/internal/server/models"
	"github.com/Altair788/AdHub/internal/server/repository"
	serr "github.com/Altair788/AdHub/internal/shared/errors"
	"github.com/Altair788/AdHub/internal/shared/utils"
)

// startPostgres поднимает postgres в контейнере и накатывает миграции.
func startPostgres(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	pg, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("adhub"),
		postgres.WithUsername("adhub"),
		postgres.WithPassword("adhub"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pg.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := config.Open(ctx, config.DBConfig{DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, config.Migrate(db, "file://../../../../migrations/postgres"))
	return db
}

func TestIntegration_AccountLifecycle(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()
	users := repository.NewUsersRepository(db)

	acc, err := users.Create(ctx, models.NewAccount{
		Email:             "alice@example.com",
		PasswordHash:      "hash",
		Role:              models.RoleUser,
		RecoveryTokenHash: utils.StrPtr("a3f1c2d4e5b6a7980a1b2c3d4e5f60718293a4b5c6d7e8f90a1b2c3d4e5f6071"),
	})
	require.NoError(t, err)
	require.False(t, acc.IsActive)

	_, err = users.Create(ctx, models.NewAccount{Email: "alice@example.com", PasswordHash: "x", Role: models.RoleUser})
	require.ErrorIs(t, err, serr.ErrAlreadyExists)

	activated, err := users.Activate(ctx, "a3f1c2d4e5b6a7980a1b2c3d4e5f60718293a4b5c6d7e8f90a1b2c3d4e5f6071")
	require.NoError(t, err)
	require.True(t, activated.IsActive)
	require.Nil(t, activated.RecoveryTokenHash)

	// Повторная активация тем же токеном невозможна
	_, err = users.Activate(ctx, "a3f1c2d4e5b6a7980a1b2c3d4e5f60718293a4b5c6d7e8f90a1b2c3d4e5f6071")
	require.ErrorIs(t, err, serr.ErrNotFound)

	admin, err := users.UpsertAdmin(ctx, "root@example.com", "hash")
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, admin.Role)
	require.True(t, admin.IsActive)
}

func TestIntegration_AdsPagingAndCascade(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()
	users := repository.NewUsersRepository(db)
	ads := repository.NewAdsRepository(db)
	reviews := repository.NewReviewsRepository(db)

	author, err := users.Create(ctx, models.NewAccount{Email: "bob@example.com", PasswordHash: "hash", Role: models.RoleUser, IsActive: true})
	require.NoError(t, err)

	titles := []string{"Велосипед", "Ноутбук Lenovo", "ноутбук HP", "Стол", "Стул", "100% хлопок"}
	var last models.Ad
	for _, title := range titles {
		last, err = ads.Create(ctx, models.Ad{Title: title, Price: 100, AuthorID: author.ID})
		require.NoError(t, err)
	}

	page, err := ads.List(ctx, models.AdFilter{}, models.PageRequest{Page: 1, Size: 4})
	require.NoError(t, err)
	require.Equal(t, len(titles), page.Count)
	require.Len(t, page.Items, 4)
	require.Equal(t, last.ID, page.Items[0].ID)

	page, err = ads.List(ctx, models.AdFilter{Title: "НОУТБУК"}, models.PageRequest{Page: 1, Size: 4})
	require.NoError(t, err)
	require.Equal(t, 2, page.Count)

	page, err = ads.List(ctx, models.AdFilter{Title: "%"}, models.PageRequest{Page: 1, Size: 4})
	require.NoError(t, err)
	require.Equal(t, 1, page.Count)

	rv, err := reviews.Create(ctx, models.Review{Text: "ok", Rating: 4, AdID: last.ID, AuthorID: author.ID})
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, author.ID))

	_, err = reviews.GetByID(ctx, rv.ID)
	require.ErrorIs(t, err, serr.ErrNotFound)
	_, err = ads.GetByID(ctx, last.ID)
	require.ErrorIs(t, err, serr.ErrNotFound)
}

func TestIntegration_SessionsPrune(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()
	users := repository.NewUsersRepository(db)
	sessions := repository.NewSessionsRepository(db)

	acc, err := users.Create(ctx, models.NewAccount{Email: "carol@example.com", PasswordHash: "hash", Role: models.RoleUser, IsActive: true})
	require.NoError(t, err)

	hashes := []string{"h1", "h2", "h3"}
	for _, h := range hashes {
		_, err := sessions.Create(ctx, acc.ID, h, time.Now().Add(time.Hour))
		require.NoError(t, err)
	}

	require.NoError(t, sessions.PruneForUser(ctx, acc.ID, 1))

	var active int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT count(*) FROM sessions WHERE user_id=$1 AND revoked_at IS NULL`, acc.ID).Scan(&active))
	require.Equal(t, 1, active)
}
