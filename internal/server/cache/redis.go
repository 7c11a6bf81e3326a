// Package cache кэширует карточки объявлений в Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Altair788/AdHub/internal/server/config"
	"github.com/Altair788/AdHub/internal/server/models"
)

const (
	adKeyPrefix     = "adhub:ad:"
	authorKeyPrefix = "adhub:author:"

	// tombstone занимает ключ после инвалидации: SetAd не перезаписывает его,
	// поэтому чтение, начатое до изменения, не вернёт в кэш старую версию.
	tombstone    = "-"
	tombstoneTTL = 10 * time.Second
)

// Redis хранит объявления в виде JSON под ключом adhub:ad:<id>.
// Множество adhub:author:<id> помнит закэшированные объявления автора.
type Redis struct {
	db  *redis.Client
	ttl time.Duration
}

// NewRedis подключается к Redis и проверяет соединение.
func NewRedis(ctx context.Context, cfg config.CacheConfig) (*Redis, error) {
	const op = "cache.NewRedis"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Redis{db: db, ttl: cfg.TTL}, nil
}

func adKey(id int64) string {
	return adKeyPrefix + strconv.FormatInt(id, 10)
}

func authorKey(id int64) string {
	return authorKeyPrefix + strconv.FormatInt(id, 10)
}

// GetAd возвращает объявление из кэша; found=false, если ключа нет.
func (c *Redis) GetAd(ctx context.Context, id int64) (models.Ad, bool, error) {
	const op = "cache.GetAd"
	val, err := c.db.Get(ctx, adKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Ad{}, false, nil
	}
	if err != nil {
		return models.Ad{}, false, fmt.Errorf("%s: %w", op, err)
	}
	if string(val) == tombstone {
		return models.Ad{}, false, nil
	}

	var ad models.Ad
	if err := json.Unmarshal(val, &ad); err != nil {
		return models.Ad{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return ad, true, nil
}

// SetAd кладёт объявление, только если ключ свободен: ни записи, ни tombstone.
func (c *Redis) SetAd(ctx context.Context, ad models.Ad) error {
	const op = "cache.SetAd"
	data, err := json.Marshal(ad)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = c.db.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, adKey(ad.ID), data, c.ttl)
		pipe.SAdd(ctx, authorKey(ad.AuthorID), ad.ID)
		if c.ttl > 0 {
			pipe.Expire(ctx, authorKey(ad.AuthorID), c.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// InvalidateAd заменяет запись объявления на tombstone.
func (c *Redis) InvalidateAd(ctx context.Context, id int64) error {
	if err := c.db.Set(ctx, adKey(id), tombstone, tombstoneTTL).Err(); err != nil {
		return fmt.Errorf("cache.InvalidateAd: %w", err)
	}
	return nil
}

// InvalidateAuthor сбрасывает все закэшированные объявления автора.
// Нужен, когда объявления удаляются каскадом вместе с аккаунтом.
func (c *Redis) InvalidateAuthor(ctx context.Context, authorID int64) error {
	const op = "cache.InvalidateAuthor"
	ids, err := c.db.SMembers(ctx, authorKey(authorID)).Result()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = c.db.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range ids {
			pipe.Set(ctx, adKeyPrefix+id, tombstone, tombstoneTTL)
		}
		pipe.Del(ctx, authorKey(authorID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Redis) Ping(ctx context.Context) error {
	return c.db.Ping(ctx).Err()
}

func (c *Redis) Close() error {
	return c.db.Close()
}

// Noop: кэш-заглушка для cache.enabled=false, всегда промах.
type Noop struct{}

func (Noop) GetAd(context.Context, int64) (models.Ad, bool, error) { return models.Ad{}, false, nil }
func (Noop) SetAd(context.Context, models.Ad) error                 { return nil }
func (Noop) InvalidateAd(context.Context, int64) error              { return nil }
func (Noop) InvalidateAuthor(context.Context, int64) error          { return nil }
