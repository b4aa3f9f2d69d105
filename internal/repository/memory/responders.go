package memory

import (
	"context"
	"fmt"

	"github.com/avdonin/event_safety_system/internal/models"
)

// CreateResponder добавляет респондера в ростер (провижининг внешний)
func (s *Store) CreateResponder(_ context.Context, responder *models.Responder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.responders[responder.ID]; exists {
		return fmt.Errorf("responder with id %s already exists", responder.ID)
	}
	s.responders[responder.ID] = cloneResponder(responder)
	return nil
}

// GetResponder возвращает копию респондера по идентификатору
func (s *Store) GetResponder(_ context.Context, id string) (*models.Responder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	responder, exists := s.responders[id]
	if !exists {
		return nil, fmt.Errorf("responder with id %s: %w", id, models.ErrNotFound)
	}
	return cloneResponder(responder), nil
}

// ListResponders возвращает копии респондеров, опционально отфильтрованные по статусу
func (s *Store) ListResponders(_ context.Context, status models.ResponderStatus) ([]*models.Responder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	responders := make([]*models.Responder, 0, len(s.responders))
	for _, responder := range s.responders {
		if status != "" && responder.Status != status {
			continue
		}
		responders = append(responders, cloneResponder(responder))
	}
	return responders, nil
}

// ApplyAssignment атомарно сохраняет пару алерт+респондер под одной блокировкой:
// наблюдатель никогда не увидит алерт DISPATCHED рядом с респондером Available
func (s *Store) ApplyAssignment(_ context.Context, alert *models.Alert, responder *models.Responder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.alerts[alert.ID]; !exists {
		return fmt.Errorf("alert with id %s: %w", alert.ID, models.ErrNotFound)
	}
	if _, exists := s.responders[responder.ID]; !exists {
		return fmt.Errorf("responder with id %s: %w", responder.ID, models.ErrNotFound)
	}
	s.alerts[alert.ID] = cloneAlert(alert)
	s.responders[responder.ID] = cloneResponder(responder)
	return nil
}

// ApplyResolution атомарно сохраняет завершение алерта и освобождение
// респондера (responder может быть nil, если назначения не было)
func (s *Store) ApplyResolution(_ context.Context, alert *models.Alert, responder *models.Responder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.alerts[alert.ID]; !exists {
		return fmt.Errorf("alert with id %s: %w", alert.ID, models.ErrNotFound)
	}
	if responder != nil {
		if _, exists := s.responders[responder.ID]; !exists {
			return fmt.Errorf("responder with id %s: %w", responder.ID, models.ErrNotFound)
		}
		s.responders[responder.ID] = cloneResponder(responder)
	}
	s.alerts[alert.ID] = cloneAlert(alert)
	return nil
}
