package service

import (
	"context"
	"fmt"

	"github.com/avdonin/event_safety_system/internal/models"
	"github.com/sirupsen/logrus"
)

// StatsSnapshot - счетчики для панели оператора
type StatsSnapshot struct {
	ActiveAlertsBySeverity map[models.Severity]int        `json:"active_alerts_by_severity"`
	RespondersByStatus     map[models.ResponderStatus]int `json:"responders_by_status"`
	ReportsReceived        int                            `json:"reports_received"`
	ReportsProcessed       int                            `json:"reports_processed"`
}

// Stats определяет контракт статистики панели
type Stats interface {
	Snapshot(ctx context.Context) (*StatsSnapshot, error)
}

type stats struct {
	alerts     AlertRepository
	reports    ReportRepository
	responders ResponderRepository
	logger     *logrus.Logger
}

// NewStats создает сервис статистики
func NewStats(alerts AlertRepository, reports ReportRepository, responders ResponderRepository, logger *logrus.Logger) Stats {
	return &stats{
		alerts:     alerts,
		reports:    reports,
		responders: responders,
		logger:     logger,
	}
}

// Snapshot собирает счетчики по текущему состоянию реестров
func (s *stats) Snapshot(ctx context.Context) (*StatsSnapshot, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "stats",
		"method":  "Snapshot",
	})

	alerts, err := s.alerts.ListAlerts(ctx, false)
	if err != nil {
		log.WithError(err).Error("Failed to list alerts for stats")
		return nil, fmt.Errorf("service: could not collect alert stats: %w", err)
	}

	responders, err := s.responders.ListResponders(ctx, "")
	if err != nil {
		log.WithError(err).Error("Failed to list responders for stats")
		return nil, fmt.Errorf("service: could not collect responder stats: %w", err)
	}

	reports, err := s.reports.ListReports(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list reports for stats")
		return nil, fmt.Errorf("service: could not collect report stats: %w", err)
	}

	snapshot := &StatsSnapshot{
		ActiveAlertsBySeverity: make(map[models.Severity]int),
		RespondersByStatus:     make(map[models.ResponderStatus]int),
	}
	for _, alert := range alerts {
		snapshot.ActiveAlertsBySeverity[alert.Severity]++
	}
	for _, responder := range responders {
		snapshot.RespondersByStatus[responder.Status]++
	}
	for _, report := range reports {
		switch report.Status {
		case models.ReportStatusReceived:
			snapshot.ReportsReceived++
		case models.ReportStatusProcessed:
			snapshot.ReportsProcessed++
		}
	}

	return snapshot, nil
}
