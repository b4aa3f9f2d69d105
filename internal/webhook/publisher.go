package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avdonin/event_safety_system/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	alertEventsQueueKey = "alert_events"
)

// Виды событий границы представления
const (
	EventAlertCreated  = "alert.created"
	EventAlertAssigned = "alert.assigned"
	EventAlertResolved = "alert.resolved"
)

// Event - событие для слоя представления: появление нового алерта,
// успешное назначение или завершение
type Event struct {
	Kind        string        `json:"kind"`
	AlertID     string        `json:"alert_id"`
	ResponderID string        `json:"responder_id,omitempty"`
	OccurredAt  time.Time     `json:"occurred_at"`
	Alert       *models.Alert `json:"alert,omitempty"`
}

// Publisher - интерфейс для публикации событий представления
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// RedisPublisher - реализация Publisher, использующая очередь в Redis
type RedisPublisher struct {
	redisClient *redis.Client
}

// NewRedisPublisher создает новый RedisPublisher
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// Publish публикует событие в очередь Redis
func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal alert event: %w", err)
	}

	// Используем LPUSH для добавления события в левую часть списка (очереди)
	if err := p.redisClient.LPush(ctx, alertEventsQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish alert event to Redis: %w", err)
	}
	return nil
}
