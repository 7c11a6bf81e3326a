package tests

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Altair788/AdHub/internal/server/cache"
	"github.com/Altair788/AdHub/internal/server/config"
	"github.com/Altair788/AdHub/internal/server/models"
	"github.com/Altair788/AdHub/internal/shared/utils"
)

func setupTestCache(t *testing.T) (*cache.Redis, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	c, err := cache.NewRedis(context.Background(), config.CacheConfig{Addr: mr.Addr(), TTL: time.Minute})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestRedis_SetAndGetAd(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	ad := models.Ad{
		ID:        7,
		Title:     "Велосипед",
		Price:     15000,
		Image:     utils.StrPtr("ads/7.png"),
		AuthorID:  3,
		CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, c.SetAd(ctx, ad))
	require.True(t, mr.Exists("adhub:ad:7"))
	assert.Equal(t, time.Minute, mr.TTL("adhub:ad:7"))

	got, found, err := c.GetAd(ctx, 7)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, ad, got)
}

func TestRedis_GetAd_Miss(t *testing.T) {
	c, _ := setupTestCache(t)

	_, found, err := c.GetAd(context.Background(), 404)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedis_GetAd_Expired(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetAd(ctx, models.Ad{ID: 1, Title: "x"}))
	mr.FastForward(2 * time.Minute)

	_, found, err := c.GetAd(ctx, 1)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedis_GetAd_Corrupted(t *testing.T) {
	c, mr := setupTestCache(t)
	require.NoError(t, mr.Set("adhub:ad:1", "{not json"))

	_, _, err := c.GetAd(context.Background(), 1)
	require.Error(t, err)
}

func TestRedis_InvalidateAd(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetAd(ctx, models.Ad{ID: 1, Title: "x"}))
	require.NoError(t, c.InvalidateAd(ctx, 1))

	_, found, err := c.GetAd(ctx, 1)
	require.NoError(t, err)
	assert.False(t, found)

	// повторная инвалидация и инвалидация отсутствующего ключа: не ошибка
	require.NoError(t, c.InvalidateAd(ctx, 1))
	require.NoError(t, c.InvalidateAd(ctx, 404))

	mr.FastForward(time.Minute)
	assert.False(t, mr.Exists("adhub:ad:1"))
}

// Чтение, начатое до изменения, не возвращает в кэш старую версию.
func TestRedis_SetAdAfterInvalidate_Ignored(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	stale := models.Ad{ID: 1, Title: "old", AuthorID: 3}
	require.NoError(t, c.InvalidateAd(ctx, 1))
	require.NoError(t, c.SetAd(ctx, stale))

	_, found, err := c.GetAd(ctx, 1)
	require.NoError(t, err)
	assert.False(t, found)

	// после истечения tombstone кэш снова заполняется
	mr.FastForward(time.Minute)
	fresh := models.Ad{ID: 1, Title: "new", AuthorID: 3}
	require.NoError(t, c.SetAd(ctx, fresh))

	got, found, err := c.GetAd(ctx, 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, fresh, got)
}

func TestRedis_InvalidateAuthor(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetAd(ctx, models.Ad{ID: 1, Title: "a", AuthorID: 3}))
	require.NoError(t, c.SetAd(ctx, models.Ad{ID: 2, Title: "b", AuthorID: 3}))
	require.NoError(t, c.SetAd(ctx, models.Ad{ID: 5, Title: "c", AuthorID: 4}))
	require.True(t, mr.Exists("adhub:author:3"))

	require.NoError(t, c.InvalidateAuthor(ctx, 3))
	assert.False(t, mr.Exists("adhub:author:3"))

	for _, id := range []int64{1, 2} {
		_, found, err := c.GetAd(ctx, id)
		require.NoError(t, err)
		assert.False(t, found, id)
	}

	_, found, err := c.GetAd(ctx, 5)
	require.NoError(t, err)
	assert.True(t, found)

	// у автора без закэшированных объявлений сбрасывать нечего
	require.NoError(t, c.InvalidateAuthor(ctx, 99))
}

func TestNewRedis_Unavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = cache.NewRedis(context.Background(), config.CacheConfig{Addr: addr, DialTimeout: time.Second})
	require.Error(t, err)
}

func TestNoop(t *testing.T) {
	var c cache.Noop
	ctx := context.Background()

	require.NoError(t, c.SetAd(ctx, models.Ad{ID: 1}))
	_, found, err := c.GetAd(ctx, 1)
	require.NoError(t, err)
	assert.False(t, found)
	require.NoError(t, c.InvalidateAd(ctx, 1))
	require.NoError(t, c.InvalidateAuthor(ctx, 1))
}
