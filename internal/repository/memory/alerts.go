package memory

import (
	"context"
	"fmt"

	"github.com/avdonin/event_safety_system/internal/models"
)

// CreateAlert сохраняет новый алерт, идентификаторы не переиспользуются
func (s *Store) CreateAlert(_ context.Context, alert *models.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.alerts[alert.ID]; exists {
		return fmt.Errorf("alert with id %s already exists", alert.ID)
	}
	s.alerts[alert.ID] = cloneAlert(alert)
	return nil
}

// GetAlert возвращает копию алерта по идентификатору
func (s *Store) GetAlert(_ context.Context, id string) (*models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alert, exists := s.alerts[id]
	if !exists {
		return nil, fmt.Errorf("alert with id %s: %w", id, models.ErrNotFound)
	}
	return cloneAlert(alert), nil
}

// UpdateAlert перезаписывает существующий алерт
func (s *Store) UpdateAlert(_ context.Context, alert *models.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.alerts[alert.ID]; !exists {
		return fmt.Errorf("alert with id %s: %w", alert.ID, models.ErrNotFound)
	}
	s.alerts[alert.ID] = cloneAlert(alert)
	return nil
}

// ListAlerts возвращает копии алертов, по умолчанию без завершенных
func (s *Store) ListAlerts(_ context.Context, includeResolved bool) ([]*models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alerts := make([]*models.Alert, 0, len(s.alerts))
	for _, alert := range s.alerts {
		if !includeResolved && alert.Status == models.AlertStatusResolved {
			continue
		}
		alerts = append(alerts, cloneAlert(alert))
	}
	return alerts, nil
}
