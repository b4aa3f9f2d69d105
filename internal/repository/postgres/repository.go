package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/avdonin/event_safety_system/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Repository - долговременный бэкенд поверх PostgreSQL с горячим кэшем
// алертов в Redis. Реализует те же контракты, что и хранилище в памяти:
// уникальность идентификаторов и движение статусов только вперед
// обеспечиваются сервисным слоем одинаково для обоих бэкендов.
type Repository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

// NewRepository создает репозиторий поверх пула соединений
func NewRepository(db *pgxpool.Pool, redisClient *redis.Client) *Repository {
	return &Repository{
		db:          db,
		redisClient: redisClient,
	}
}

const alertCacheTTL = 5 * time.Minute

func alertCacheKey(id string) string {
	return fmt.Sprintf("alert:%s", id)
}

// getAlertFromCache пытается получить алерт из Redis
func (r *Repository) getAlertFromCache(ctx context.Context, id string) (*models.Alert, error) {
	val, err := r.redisClient.Get(ctx, alertCacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get alert from cache: %w", err)
	}

	alert := &models.Alert{}
	if err := json.Unmarshal(val, alert); err != nil {
		return nil, fmt.Errorf("failed to unmarshal alert from cache: %w", err)
	}
	return alert, nil
}

// setAlertCache сохраняет алерт в Redis
func (r *Repository) setAlertCache(ctx context.Context, alert *models.Alert) error {
	val, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, alertCacheKey(alert.ID), val, alertCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set alert in cache: %w", err)
	}
	return nil
}

// invalidateAlertCache удаляет алерт из Redis кэша
func (r *Repository) invalidateAlertCache(ctx context.Context, id string) error {
	if err := r.redisClient.Del(ctx, alertCacheKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate alert cache: %w", err)
	}
	return nil
}
