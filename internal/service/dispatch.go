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

// ResponderRepository определяет контракт ростера респондеров
type ResponderRepository interface {
	CreateResponder(ctx context.Context, responder *models.Responder) error
	GetResponder(ctx context.Context, id string) (*models.Responder, error)
	ListResponders(ctx context.Context, status models.ResponderStatus) ([]*models.Responder, error)
}

// DispatchRepository применяет парные мутации алерт+респондер атомарно:
// обе записи сохраняются вместе либо не сохраняется ни одна
type DispatchRepository interface {
	ApplyAssignment(ctx context.Context, alert *models.Alert, responder *models.Responder) error
	ApplyResolution(ctx context.Context, alert *models.Alert, responder *models.Responder) error
}

// Dispatch определяет контракт координатора назначений.
// Координатор не владеет собственным состоянием - он транзакционно
// оперирует реестром алертов и ростером респондеров.
type Dispatch interface {
	Assign(ctx context.Context, alertID, responderID string) error
	Resolve(ctx context.Context, alertID string) error
	AvailableResponders(ctx context.Context) ([]*models.Responder, error)
	ListResponders(ctx context.Context) ([]*models.Responder, error)
}

type dispatch struct {
	alerts     AlertRepository
	responders ResponderRepository
	tx         DispatchRepository
	logger     *logrus.Logger
	publisher  webhook.Publisher
	listener   AlertSetListener

	// Единая блокировка мутаций жизненного цикла, общая с реестром алертов:
	// при ожидаемом масштабе этого достаточно, чтобы двусторонняя
	// согласованность алерт<->респондер никогда не нарушалась наблюдаемо
	mu *sync.Mutex
}

// NewDispatch создает координатор назначений. mu - та же блокировка,
// что передается реестру алертов
func NewDispatch(alerts AlertRepository, responders ResponderRepository, tx DispatchRepository, logger *logrus.Logger, publisher webhook.Publisher, listener AlertSetListener, mu *sync.Mutex) Dispatch {
	return &dispatch{
		alerts:     alerts,
		responders: responders,
		tx:         tx,
		logger:     logger,
		publisher:  publisher,
		listener:   listener,
		mu:         mu,
	}
}

// Assign направляет респондера на алерт. Предусловия: алерт в статусе NEW или
// ACKNOWLEDGED, респондер в статусе Available. Обе записи меняются атомарно.
func (d *dispatch) Assign(ctx context.Context, alertID, responderID string) error {
	log := d.logger.WithFields(logrus.Fields{
		"service":      "dispatch",
		"method":       "Assign",
		"alert_id":     alertID,
		"responder_id": responderID,
	})

	d.mu.Lock()
	defer d.mu.Unlock()

	alert, err := d.alerts.GetAlert(ctx, alertID)
	if err != nil {
		log.WithError(err).Warn("Alert not found for assignment")
		return fmt.Errorf("service: alert %s: %w", alertID, err)
	}

	if alert.Status != models.AlertStatusNew && alert.Status != models.AlertStatusAcknowledged {
		log.WithField("status", alert.Status).Warn("Assignment rejected: alert not assignable")
		return fmt.Errorf("service: %w", &models.AssignmentRejectedError{
			Reason: fmt.Sprintf("alert %s has status %s", alertID, alert.Status),
		})
	}

	responder, err := d.responders.GetResponder(ctx, responderID)
	if err != nil {
		log.WithError(err).Warn("Responder not found for assignment")
		return fmt.Errorf("service: responder %s: %w", responderID, err)
	}

	if responder.Status != models.ResponderStatusAvailable {
		log.WithField("status", responder.Status).Warn("Assignment rejected: responder unavailable")
		return fmt.Errorf("service: %w", &models.AssignmentRejectedError{
			Reason: fmt.Sprintf("responder %s has status %s", responderID, responder.Status),
		})
	}

	alert.Status = models.AlertStatusDispatched
	alert.AssignedResponder = responder.ID
	responder.Status = models.ResponderStatusDispatched
	responder.AssignedAlertID = alert.ID

	if err := d.tx.ApplyAssignment(ctx, alert, responder); err != nil {
		log.WithError(err).Error("Failed to apply assignment")
		return fmt.Errorf("service: could not apply assignment: %w", err)
	}

	log.Info("Responder dispatched")
	d.publishEvent(ctx, webhook.Event{
		Kind:        webhook.EventAlertAssigned,
		AlertID:     alert.ID,
		ResponderID: responder.ID,
		OccurredAt:  time.Now().UTC(),
		Alert:       alert,
	})
	d.notifyAlertSetChanged()
	return nil
}

// Resolve завершает алерт. Назначенный респондер (если был) возвращается
// в статус Available, его привязка к алерту снимается.
func (d *dispatch) Resolve(ctx context.Context, alertID string) error {
	log := d.logger.WithFields(logrus.Fields{
		"service":  "dispatch",
		"method":   "Resolve",
		"alert_id": alertID,
	})

	d.mu.Lock()
	defer d.mu.Unlock()

	alert, err := d.alerts.GetAlert(ctx, alertID)
	if err != nil {
		log.WithError(err).Warn("Alert not found for resolution")
		return fmt.Errorf("service: alert %s: %w", alertID, err)
	}

	if !models.CanTransition(alert.Status, models.AlertStatusResolved) {
		log.WithField("status", alert.Status).Warn("Rejected resolution of terminal alert")
		return fmt.Errorf("service: transition %s -> %s for alert %s: %w", alert.Status, models.AlertStatusResolved, alertID, models.ErrInvalidTransition)
	}

	var responder *models.Responder
	if alert.AssignedResponder != "" {
		responder, err = d.responders.GetResponder(ctx, alert.AssignedResponder)
		if err != nil {
			log.WithError(err).Error("Assigned responder missing from roster")
			return fmt.Errorf("service: responder %s: %w", alert.AssignedResponder, err)
		}
		responder.Status = models.ResponderStatusAvailable
		responder.AssignedAlertID = ""
	}

	alert.Status = models.AlertStatusResolved

	if err := d.tx.ApplyResolution(ctx, alert, responder); err != nil {
		log.WithError(err).Error("Failed to apply resolution")
		return fmt.Errorf("service: could not apply resolution: %w", err)
	}

	log.Info("Alert resolved")
	d.publishEvent(ctx, webhook.Event{
		Kind:       webhook.EventAlertResolved,
		AlertID:    alert.ID,
		OccurredAt: time.Now().UTC(),
		Alert:      alert,
	})
	d.notifyAlertSetChanged()
	return nil
}

// AvailableResponders возвращает кандидатов на назначение: всех респондеров
// в статусе Available, без какого-либо предписанного порядка - выбор за оператором
func (d *dispatch) AvailableResponders(ctx context.Context) ([]*models.Responder, error) {
	responders, err := d.responders.ListResponders(ctx, models.ResponderStatusAvailable)
	if err != nil {
		return nil, fmt.Errorf("service: could not list available responders: %w", err)
	}
	return responders, nil
}

// ListResponders возвращает весь ростер
func (d *dispatch) ListResponders(ctx context.Context) ([]*models.Responder, error) {
	responders, err := d.responders.ListResponders(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("service: could not list responders: %w", err)
	}
	return responders, nil
}

func (d *dispatch) publishEvent(ctx context.Context, event webhook.Event) {
	if d.publisher == nil {
		return
	}
	if err := d.publisher.Publish(ctx, event); err != nil {
		d.logger.WithError(err).Warn("Failed to publish dispatch event")
	}
}

func (d *dispatch) notifyAlertSetChanged() {
	if d.listener != nil {
		d.listener.AlertSetChanged()
	}
}
