package v1

import (
	"time"
)

// LocationDTO - координаты в теле запроса/ответа
// @Description Географическая точка
type LocationDTO struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

// SubmitReportRequest DTO для подачи сообщения посетителем
// @Description DTO для подачи сообщения посетителем
type SubmitReportRequest struct {
	AttendeeID  string      `json:"attendee_id" validate:"required"`
	Type        string      `json:"type" validate:"required,oneof=Medical LostPerson SafetyConcern"`
	Location    LocationDTO `json:"location" validate:"required"`
	Description string      `json:"description,omitempty" validate:"omitempty,max=500"`
	PhotoURL    string      `json:"photo_url,omitempty" validate:"omitempty,url"`
}

// InjectAlertRequest DTO для прямой инъекции алерта от прогнозного или
// визуального источника (без сообщения-основания)
// @Description DTO для прямой инъекции алерта
type InjectAlertRequest struct {
	Title    string      `json:"title" validate:"required,min=2,max=255"`
	Summary  string      `json:"summary" validate:"required"`
	Type     string      `json:"type" validate:"required,oneof=PREDICTIVE MEDICAL FIRE PANIC LOST_PERSON SAFETY_CONCERN OTHER"`
	Severity string      `json:"severity" validate:"required,oneof=CRITICAL WARNING INFO"`
	Priority *int        `json:"priority,omitempty" validate:"omitempty,min=1,max=100"`
	Location LocationDTO `json:"location" validate:"required"`
	Zone     string      `json:"zone,omitempty"`
	Source   string      `json:"source" validate:"required,oneof=FORECAST VISION_DETECTION"`
}

// AssignRequest DTO для назначения респондера на алерт
// @Description DTO для назначения респондера
type AssignRequest struct {
	ResponderID string `json:"responder_id" validate:"required"`
}

// ReportResponse DTO для ответа с информацией о сообщении
// @Description DTO для ответа с информацией о сообщении
type ReportResponse struct {
	ID          string      `json:"id"`
	AttendeeID  string      `json:"attendee_id"`
	Type        string      `json:"type"`
	Location    LocationDTO `json:"location"`
	Description string      `json:"description,omitempty"`
	PhotoURL    string      `json:"photo_url,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
	Status      string      `json:"status"`
}

// AlertResponse DTO для ответа с информацией об алерте
// @Description DTO для ответа с информацией об алерте
type AlertResponse struct {
	ID                string      `json:"id"`
	Title             string      `json:"title"`
	Summary           string      `json:"summary"`
	Type              string      `json:"type"`
	Severity          string      `json:"severity"`
	Priority          *int        `json:"priority,omitempty"`
	Status            string      `json:"status"`
	Location          LocationDTO `json:"location"`
	Zone              string      `json:"zone,omitempty"`
	Source            string      `json:"source"`
	Timestamp         time.Time   `json:"timestamp"`
	AssignedResponder string      `json:"assigned_responder,omitempty"`
}

// SubmitReportResponse DTO для итога обработки сообщения: alert равен null,
// когда оракул решил, что алерт не требуется
// @Description DTO для итога обработки сообщения
type SubmitReportResponse struct {
	Report *ReportResponse `json:"report"`
	Alert  *AlertResponse  `json:"alert"`
}

// ResponderResponse DTO для ответа с информацией о респондере
// @Description DTO для ответа с информацией о респондере
type ResponderResponse struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Status          string      `json:"status"`
	Location        LocationDTO `json:"location"`
	AssignedAlertID string      `json:"assigned_alert_id,omitempty"`
}

// SentimentResponse DTO для сводки настроения мероприятия
// @Description DTO для сводки настроения мероприятия
type SentimentResponse struct {
	Summary    string    `json:"summary"`
	ComputedAt time.Time `json:"computed_at"`
}

// StatsResponse DTO для ответа со статистикой панели
// @Description DTO для ответа со статистикой панели
type StatsResponse struct {
	ActiveAlertsBySeverity map[string]int `json:"active_alerts_by_severity"`
	RespondersByStatus     map[string]int `json:"responders_by_status"`
	ReportsReceived        int            `json:"reports_received"`
	ReportsProcessed       int            `json:"reports_processed"`
}
