package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/avdonin/event_safety_system/internal/models"
	"github.com/avdonin/event_safety_system/internal/oracle"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const sentimentCacheKey = "sentiment:latest"

// SentimentSnapshot - результат одного успешного обновления сводки настроения
type SentimentSnapshot struct {
	Summary    string    `json:"summary"`
	ComputedAt time.Time `json:"computed_at"`
}

// Sentiment определяет контракт агрегатора настроения мероприятия
type Sentiment interface {
	Refresh(ctx context.Context) (*SentimentSnapshot, error)
	Current(ctx context.Context) (*SentimentSnapshot, error)
	AlertSetChanged()
}

type sentiment struct {
	alerts AlertRepository
	oracle oracle.Classifier
	cache  *redis.Client
	logger *logrus.Logger

	mu sync.Mutex
	// Счетчики поколений: обновление применяется, только если оно было
	// запущено позже уже примененного. Завершившиеся с опозданием
	// устаревшие результаты отбрасываются.
	nextGen    uint64
	appliedGen uint64
	snapshot   *SentimentSnapshot
}

// NewSentiment создает агрегатор настроения. Кэш redis опционален (nil допустим).
func NewSentiment(alerts AlertRepository, classifier oracle.Classifier, cache *redis.Client, logger *logrus.Logger) Sentiment {
	return &sentiment{
		alerts: alerts,
		oracle: classifier,
		cache:  cache,
		logger: logger,
	}
}

// Refresh пересчитывает сводку по текущему набору активных алертов.
// Пустой набор - валидный случай: оракулу передается пустой список,
// чтобы всегда можно было получить свежую "спокойную" сводку.
func (s *sentiment) Refresh(ctx context.Context) (*SentimentSnapshot, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "sentiment",
		"method":  "Refresh",
	})

	s.mu.Lock()
	s.nextGen++
	gen := s.nextGen
	s.mu.Unlock()

	alerts, err := s.alerts.ListAlerts(ctx, false)
	if err != nil {
		log.WithError(err).Error("Failed to list active alerts")
		return nil, fmt.Errorf("service: could not list alerts for sentiment: %w", err)
	}

	digests := make([]oracle.AlertDigest, 0, len(alerts))
	for _, alert := range alerts {
		digests = append(digests, oracle.AlertDigest{
			ID:        alert.ID,
			Title:     alert.Title,
			Summary:   alert.Summary,
			Type:      string(alert.Type),
			Severity:  string(alert.Severity),
			Status:    string(alert.Status),
			Timestamp: alert.Timestamp.Format(time.RFC3339),
			Source:    string(alert.Source),
		})
	}

	summary, err := s.oracle.SummarizeSentiment(ctx, digests)
	if err != nil {
		log.WithError(err).Error("Oracle sentiment summarization failed")
		return nil, fmt.Errorf("service: sentiment refresh failed: %w", err)
	}

	snapshot := &SentimentSnapshot{
		Summary:    summary,
		ComputedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	if gen <= s.appliedGen {
		// Пока этот вызов ждал оракула, применилось более позднее обновление
		applied := s.snapshot
		s.mu.Unlock()
		log.Debug("Discarded stale sentiment refresh")
		return applied, nil
	}
	s.appliedGen = gen
	s.snapshot = snapshot
	s.mu.Unlock()

	s.cacheSnapshot(ctx, snapshot)
	log.WithField("alert_count", len(digests)).Info("Sentiment summary refreshed")
	return snapshot, nil
}

// Current возвращает последнюю примененную сводку
func (s *sentiment) Current(ctx context.Context) (*SentimentSnapshot, error) {
	s.mu.Lock()
	snapshot := s.snapshot
	s.mu.Unlock()

	if snapshot != nil {
		return snapshot, nil
	}

	// После рестарта пробуем поднять последнюю сводку из кэша
	if cached := s.cachedSnapshot(ctx); cached != nil {
		return cached, nil
	}

	return nil, fmt.Errorf("service: no sentiment summary computed yet: %w", models.ErrNotFound)
}

// AlertSetChanged запускает фоновое обновление сводки при изменении набора алертов
func (s *sentiment) AlertSetChanged() {
	go func() {
		if _, err := s.Refresh(context.Background()); err != nil {
			s.logger.WithError(err).Warn("Background sentiment refresh failed")
		}
	}()
}

func (s *sentiment) cacheSnapshot(ctx context.Context, snapshot *SentimentSnapshot) {
	if s.cache == nil {
		return
	}
	val, err := json.Marshal(snapshot)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to marshal sentiment snapshot for cache")
		return
	}
	if err := s.cache.Set(ctx, sentimentCacheKey, val, 0).Err(); err != nil {
		s.logger.WithError(err).Warn("Failed to cache sentiment snapshot")
	}
}

func (s *sentiment) cachedSnapshot(ctx context.Context) *SentimentSnapshot {
	if s.cache == nil {
		return nil
	}
	val, err := s.cache.Get(ctx, sentimentCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.WithError(err).Warn("Failed to read sentiment snapshot from cache")
		}
		return nil
	}
	snapshot := &SentimentSnapshot{}
	if err := json.Unmarshal(val, snapshot); err != nil {
		s.logger.WithError(err).Warn("Failed to unmarshal cached sentiment snapshot")
		return nil
	}
	return snapshot
}
