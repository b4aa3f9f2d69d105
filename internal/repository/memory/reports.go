package memory

import (
	"context"
	"fmt"

	"github.com/avdonin/event_safety_system/internal/models"
)

// CreateReport сохраняет новое сообщение
func (s *Store) CreateReport(_ context.Context, report *models.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.reports[report.ID]; exists {
		return fmt.Errorf("report with id %s already exists", report.ID)
	}
	s.reports[report.ID] = cloneReport(report)
	return nil
}

// GetReport возвращает копию сообщения по идентификатору
func (s *Store) GetReport(_ context.Context, id string) (*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report, exists := s.reports[id]
	if !exists {
		return nil, fmt.Errorf("report with id %s: %w", id, models.ErrNotFound)
	}
	return cloneReport(report), nil
}

// UpdateReport перезаписывает существующее сообщение
func (s *Store) UpdateReport(_ context.Context, report *models.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.reports[report.ID]; !exists {
		return fmt.Errorf("report with id %s: %w", report.ID, models.ErrNotFound)
	}
	s.reports[report.ID] = cloneReport(report)
	return nil
}

// ListReports возвращает копии всех сообщений
func (s *Store) ListReports(_ context.Context) ([]*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reports := make([]*models.Report, 0, len(s.reports))
	for _, report := range s.reports {
		reports = append(reports, cloneReport(report))
	}
	return reports, nil
}
