package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/avdonin/event_safety_system/internal/models"
	"github.com/avdonin/event_safety_system/internal/webhook"
	"github.com/sirupsen/logrus"
)

// AlertRepository определяет контракт хранилища алертов
type AlertRepository interface {
	CreateAlert(ctx context.Context, alert *models.Alert) error
	GetAlert(ctx context.Context, id string) (*models.Alert, error)
	UpdateAlert(ctx context.Context, alert *models.Alert) error
	ListAlerts(ctx context.Context, includeResolved bool) ([]*models.Alert, error)
}

// AlertSetListener уведомляется при каждом изменении набора активных алертов
type AlertSetListener interface {
	AlertSetChanged()
}

// CreateAlertParams - параметры материализации нового алерта
type CreateAlertParams struct {
	Title    string
	Summary  string
	Type     models.AlertType
	Severity models.Severity
	Priority *int
	Location models.GeoPoint
	Zone     string
	Source   models.AlertSource
}

// AlertListFilter - фильтр выборки активных алертов
type AlertListFilter struct {
	// Severities ограничивает выборку перечисленными уровнями (пусто - без ограничений)
	Severities []models.Severity
	// IncludeResolved добавляет в выборку завершенные алерты (для исторических представлений)
	IncludeResolved bool
}

// AlertRegistry определяет контракт реестра алертов - единственного
// владельца канонической коллекции алертов
type AlertRegistry interface {
	CreateAlert(ctx context.Context, params CreateAlertParams) (*models.Alert, error)
	Transition(ctx context.Context, alertID string, target models.AlertStatus) (*models.Alert, error)
	ListActive(ctx context.Context, filter AlertListFilter) ([]*models.Alert, error)
	GetAlert(ctx context.Context, alertID string) (*models.Alert, error)
}

type alertRegistry struct {
	repo      AlertRepository
	logger    *logrus.Logger
	publisher webhook.Publisher
	listener  AlertSetListener

	// mu - общая блокировка состояния алертов и назначений, разделяемая с
	// координатором: переход статуса и назначение на один и тот же алерт
	// никогда не перемежаются
	mu *sync.Mutex
}

// NewAlertRegistry создает реестр алертов. mu - общая блокировка мутаций
// жизненного цикла, та же, что передается координатору назначений
func NewAlertRegistry(repo AlertRepository, logger *logrus.Logger, publisher webhook.Publisher, listener AlertSetListener, mu *sync.Mutex) AlertRegistry {
	return &alertRegistry{
		repo:      repo,
		logger:    logger,
		publisher: publisher,
		listener:  listener,
		mu:        mu,
	}
}

// CreateAlert материализует алерт в статусе NEW
func (r *alertRegistry) CreateAlert(ctx context.Context, params CreateAlertParams) (*models.Alert, error) {
	log := r.logger.WithFields(logrus.Fields{
		"service":  "registry",
		"method":   "CreateAlert",
		"source":   params.Source,
		"severity": params.Severity,
	})

	if err := validateCreateAlertParams(params); err != nil {
		log.WithError(err).Warn("Rejected invalid alert params")
		return nil, err
	}

	alert := &models.Alert{
		ID:        models.NewAlertID(),
		Title:     params.Title,
		Summary:   params.Summary,
		Type:      params.Type,
		Severity:  params.Severity,
		Priority:  params.Priority,
		Status:    models.AlertStatusNew,
		Location:  params.Location,
		Zone:      params.Zone,
		Source:    params.Source,
		Timestamp: time.Now().UTC(),
	}

	if err := r.repo.CreateAlert(ctx, alert); err != nil {
		log.WithError(err).Error("Failed to create alert in repository")
		return nil, fmt.Errorf("service: could not create alert: %w", err)
	}

	log.WithField("alert_id", alert.ID).Info("Alert created")
	r.publishEvent(ctx, webhook.Event{
		Kind:       webhook.EventAlertCreated,
		AlertID:    alert.ID,
		OccurredAt: alert.Timestamp,
		Alert:      alert,
	})
	r.notifyAlertSetChanged()
	return alert, nil
}

// Transition применяет переход статуса, разрешая только движение вперед по цепочке
func (r *alertRegistry) Transition(ctx context.Context, alertID string, target models.AlertStatus) (*models.Alert, error) {
	log := r.logger.WithFields(logrus.Fields{
		"service":  "registry",
		"method":   "Transition",
		"alert_id": alertID,
		"target":   target,
	})

	if !target.Valid() {
		return nil, fmt.Errorf("service: unknown alert status %q: %w", target, models.ErrValidation)
	}

	// Чтение-проверка-запись целиком под общей блокировкой, иначе
	// параллельное назначение может быть затерто устаревшим снимком
	r.mu.Lock()
	defer r.mu.Unlock()

	alert, err := r.repo.GetAlert(ctx, alertID)
	if err != nil {
		log.WithError(err).Warn("Alert not found for transition")
		return nil, fmt.Errorf("service: alert %s: %w", alertID, err)
	}

	if !models.CanTransition(alert.Status, target) {
		log.WithField("current", alert.Status).Warn("Rejected backward or repeated transition")
		return nil, fmt.Errorf("service: transition %s -> %s for alert %s: %w", alert.Status, target, alertID, models.ErrInvalidTransition)
	}

	alert.Status = target
	if err := r.repo.UpdateAlert(ctx, alert); err != nil {
		log.WithError(err).Error("Failed to update alert in repository")
		return nil, fmt.Errorf("service: could not update alert: %w", err)
	}

	log.Info("Alert transitioned")
	r.notifyAlertSetChanged()
	return alert, nil
}

// ListActive возвращает алерты без завершенных (по умолчанию), отсортированные
// по сквозному правилу ранжирования
func (r *alertRegistry) ListActive(ctx context.Context, filter AlertListFilter) ([]*models.Alert, error) {
	log := r.logger.WithFields(logrus.Fields{
		"service": "registry",
		"method":  "ListActive",
	})

	alerts, err := r.repo.ListAlerts(ctx, filter.IncludeResolved)
	if err != nil {
		log.WithError(err).Error("Failed to list alerts from repository")
		return nil, fmt.Errorf("service: could not list alerts: %w", err)
	}

	if len(filter.Severities) > 0 {
		allowed := make(map[models.Severity]bool, len(filter.Severities))
		for _, s := range filter.Severities {
			allowed[s] = true
		}
		filtered := make([]*models.Alert, 0, len(alerts))
		for _, alert := range alerts {
			if allowed[alert.Severity] {
				filtered = append(filtered, alert)
			}
		}
		alerts = filtered
	}

	models.SortByRank(alerts)
	return alerts, nil
}

// GetAlert возвращает алерт по идентификатору
func (r *alertRegistry) GetAlert(ctx context.Context, alertID string) (*models.Alert, error) {
	alert, err := r.repo.GetAlert(ctx, alertID)
	if err != nil {
		return nil, fmt.Errorf("service: alert %s: %w", alertID, err)
	}
	return alert, nil
}

func (r *alertRegistry) publishEvent(ctx context.Context, event webhook.Event) {
	if r.publisher == nil {
		return
	}
	// Хуки представления не должны ломать основную операцию
	if err := r.publisher.Publish(ctx, event); err != nil {
		r.logger.WithError(err).Warn("Failed to publish alert event")
	}
}

func (r *alertRegistry) notifyAlertSetChanged() {
	if r.listener != nil {
		r.listener.AlertSetChanged()
	}
}

func validateCreateAlertParams(params CreateAlertParams) error {
	if params.Title == "" {
		return fmt.Errorf("service: alert title is required: %w", models.ErrValidation)
	}
	if !params.Type.Valid() {
		return fmt.Errorf("service: unknown alert type %q: %w", params.Type, models.ErrValidation)
	}
	if !params.Severity.Valid() {
		return fmt.Errorf("service: unknown severity %q: %w", params.Severity, models.ErrValidation)
	}
	if !params.Source.Valid() {
		return fmt.Errorf("service: unknown alert source %q: %w", params.Source, models.ErrValidation)
	}
	if !params.Location.Valid() {
		return fmt.Errorf("service: coordinates out of range: %w", models.ErrValidation)
	}
	if params.Priority != nil && (*params.Priority < models.MinAlertPriority || *params.Priority > models.MaxAlertPriority) {
		return fmt.Errorf("service: priority %d out of range: %w", *params.Priority, models.ErrValidation)
	}
	return nil
}
