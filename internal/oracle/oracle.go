package oracle

import (
	"context"

	"github.com/avdonin/event_safety_system/internal/models"
)

// ClassifyRequest - нормализованный запрос классификации сообщения (см. контракт оракула)
type ClassifyRequest struct {
	AttendeeID  string          `json:"attendeeId"`
	Type        string          `json:"type"`
	Location    models.GeoPoint `json:"location"`
	Description *string         `json:"description"`
	PhotoURL    *string         `json:"photoUrl"`
	Timestamp   string          `json:"timestamp"`
	EventID     string          `json:"eventId"`
	ReportID    string          `json:"reportId"`
}

// AlertProposal - структурированное предложение алерта от оракула.
// Location оракул обязан вернуть из исходного сообщения, но ядро ему не
// доверяет и перезаписывает координаты перед материализацией алерта.
type AlertProposal struct {
	Title    string           `json:"alertTitle"`
	Summary  string           `json:"alertSummary"`
	Type     models.AlertType `json:"alertType"`
	Severity models.Severity  `json:"alertSeverity"`
	Priority *int             `json:"priority,omitempty"`
	Location models.GeoPoint  `json:"alertLocation"`
	Source   string           `json:"source"`
}

// AlertDigest - срез алерта для запроса сводки настроения
type AlertDigest struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Type      string `json:"type"`
	Severity  string `json:"severity"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
}

// Classifier определяет контракт внешнего оракула классификации.
// Classify возвращает (nil, false, nil), когда алерт не требуется:
// вариант "алерта нет" выражен явно, а не нулевым указателем.
type Classifier interface {
	Classify(ctx context.Context, req ClassifyRequest) (*AlertProposal, bool, error)
	SummarizeSentiment(ctx context.Context, alerts []AlertDigest) (string, error)
}
