package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avdonin/event_safety_system/internal/models"
	"github.com/avdonin/event_safety_system/internal/oracle"
	"github.com/sirupsen/logrus"
)

// ReportRepository определяет контракт хранилища сообщений посетителей
type ReportRepository interface {
	CreateReport(ctx context.Context, report *models.Report) error
	GetReport(ctx context.Context, id string) (*models.Report, error)
	UpdateReport(ctx context.Context, report *models.Report) error
	ListReports(ctx context.Context) ([]*models.Report, error)
}

// ReportInput - входные данные нового сообщения
type ReportInput struct {
	AttendeeID  string
	Type        models.ReportType
	Location    models.GeoPoint
	Description string
	PhotoURL    string
}

// SubmitResult - итог обработки сообщения: Alert равен nil, когда оракул
// решил, что алерт не требуется
type SubmitResult struct {
	Report *models.Report
	Alert  *models.Alert
}

// ReportIntake определяет контракт приема сообщений посетителей
type ReportIntake interface {
	SubmitReport(ctx context.Context, input ReportInput) (*SubmitResult, error)
	ReprocessReport(ctx context.Context, reportID string) (*SubmitResult, error)
	GetReport(ctx context.Context, reportID string) (*models.Report, error)
}

type reportIntake struct {
	reports  ReportRepository
	registry AlertRegistry
	oracle   oracle.Classifier
	eventID  string
	logger   *logrus.Logger
}

// NewReportIntake создает сервис приема сообщений
func NewReportIntake(reports ReportRepository, registry AlertRegistry, classifier oracle.Classifier, eventID string, logger *logrus.Logger) ReportIntake {
	return &reportIntake{
		reports:  reports,
		registry: registry,
		oracle:   classifier,
		eventID:  eventID,
		logger:   logger,
	}
}

// SubmitReport принимает сообщение, сохраняет его и синхронно запрашивает
// вердикт оракула. При ошибке оракула сообщение остается в статусе Received
// и может быть повторно обработано через ReprocessReport без дубликата.
func (s *reportIntake) SubmitReport(ctx context.Context, input ReportInput) (*SubmitResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "intake",
		"method":      "SubmitReport",
		"attendee_id": input.AttendeeID,
		"type":        input.Type,
	})

	if err := validateReportInput(input); err != nil {
		log.WithError(err).Warn("Rejected invalid report input")
		return nil, err
	}

	report := &models.Report{
		ID:          models.NewReportID(),
		AttendeeID:  input.AttendeeID,
		Type:        input.Type,
		Location:    input.Location,
		Description: input.Description,
		PhotoURL:    input.PhotoURL,
		Timestamp:   time.Now().UTC(),
		Status:      models.ReportStatusReceived,
	}

	if err := s.reports.CreateReport(ctx, report); err != nil {
		log.WithError(err).Error("Failed to create report in repository")
		return nil, fmt.Errorf("service: could not create report: %w", err)
	}
	log.WithField("report_id", report.ID).Info("Report received")

	return s.classify(ctx, report, log)
}

// ReprocessReport повторяет обращение к оракулу для сообщения, оставшегося
// в статусе Received после сбоя. Идемпотентность обеспечивается ключом report id.
func (s *reportIntake) ReprocessReport(ctx context.Context, reportID string) (*SubmitResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "intake",
		"method":    "ReprocessReport",
		"report_id": reportID,
	})

	report, err := s.reports.GetReport(ctx, reportID)
	if err != nil {
		log.WithError(err).Warn("Report not found for reprocessing")
		return nil, fmt.Errorf("service: report %s: %w", reportID, err)
	}

	if report.Status == models.ReportStatusProcessed {
		log.Warn("Report already processed, refusing to reprocess")
		return nil, fmt.Errorf("service: report %s already processed: %w", reportID, models.ErrInvalidTransition)
	}

	return s.classify(ctx, report, log)
}

// GetReport возвращает сообщение по идентификатору
func (s *reportIntake) GetReport(ctx context.Context, reportID string) (*models.Report, error) {
	report, err := s.reports.GetReport(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("service: report %s: %w", reportID, err)
	}
	return report, nil
}

// classify запрашивает вердикт оракула и материализует алерт при необходимости.
// Вызов оракула не держит никаких блокировок: классификация одного сообщения
// не сериализуется за классификацией другого.
func (s *reportIntake) classify(ctx context.Context, report *models.Report, log *logrus.Entry) (*SubmitResult, error) {
	proposal, ok, err := s.oracle.Classify(ctx, classifyRequestFromReport(report, s.eventID))
	if err != nil {
		log.WithError(err).Error("Oracle classification failed, report stays Received")
		return nil, fmt.Errorf("service: classification of report %s failed: %w", report.ID, err)
	}

	if !ok {
		// Оракул решил, что алерт не нужен
		if err := s.markProcessed(ctx, report); err != nil {
			log.WithError(err).Error("Failed to mark report processed")
			return nil, err
		}
		log.Info("Report processed, no alert warranted")
		return &SubmitResult{Report: report}, nil
	}

	// Координатам оракула не доверяем: авторитетной остается точка из сообщения
	alert, err := s.registry.CreateAlert(ctx, CreateAlertParams{
		Title:    proposal.Title,
		Summary:  proposal.Summary,
		Type:     proposal.Type,
		Severity: proposal.Severity,
		Priority: proposal.Priority,
		Location: report.Location,
		Source:   models.SourceAttendeeReport,
	})
	if err != nil {
		log.WithError(err).Error("Failed to materialize alert from oracle proposal")
		return nil, err
	}

	if err := s.markProcessed(ctx, report); err != nil {
		log.WithError(err).Error("Failed to mark report processed")
		return nil, err
	}

	log.WithField("alert_id", alert.ID).Info("Report processed, alert created")
	return &SubmitResult{Report: report, Alert: alert}, nil
}

func (s *reportIntake) markProcessed(ctx context.Context, report *models.Report) error {
	report.Status = models.ReportStatusProcessed
	if err := s.reports.UpdateReport(ctx, report); err != nil {
		return fmt.Errorf("service: could not update report %s: %w", report.ID, err)
	}
	return nil
}

func validateReportInput(input ReportInput) error {
	if input.AttendeeID == "" {
		return fmt.Errorf("service: attendee id is required: %w", models.ErrValidation)
	}
	if !input.Type.Valid() {
		return fmt.Errorf("service: unknown report type %q: %w", input.Type, models.ErrValidation)
	}
	if !input.Location.Valid() {
		return fmt.Errorf("service: coordinates out of range: %w", models.ErrValidation)
	}
	if len(input.Description) > models.MaxReportDescriptionLen {
		return fmt.Errorf("service: description exceeds %d characters: %w", models.MaxReportDescriptionLen, models.ErrValidation)
	}
	return nil
}

func classifyRequestFromReport(report *models.Report, eventID string) oracle.ClassifyRequest {
	req := oracle.ClassifyRequest{
		AttendeeID: report.AttendeeID,
		Type:       string(report.Type),
		Location:   report.Location,
		Timestamp:  report.Timestamp.Format(time.RFC3339),
		EventID:    eventID,
		ReportID:   report.ID,
	}
	if report.Description != "" {
		req.Description = &report.Description
	}
	if report.PhotoURL != "" {
		req.PhotoURL = &report.PhotoURL
	}
	return req
}
