package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportType - тип сообщения от посетителя
type ReportType string

const (
	ReportTypeMedical       ReportType = "Medical"
	ReportTypeLostPerson    ReportType = "LostPerson"
	ReportTypeSafetyConcern ReportType = "SafetyConcern"
)

// Valid проверяет, что тип сообщения известен
func (t ReportType) Valid() bool {
	switch t {
	case ReportTypeMedical, ReportTypeLostPerson, ReportTypeSafetyConcern:
		return true
	}
	return false
}

// ReportStatus - статус жизненного цикла сообщения
type ReportStatus string

const (
	ReportStatusReceived  ReportStatus = "Received"
	ReportStatusProcessed ReportStatus = "Processed"
)

// MaxReportDescriptionLen - лимит длины описания в сообщении
const MaxReportDescriptionLen = 500

// Report представляет одно сообщение посетителя мероприятия
type Report struct {
	ID          string       `json:"id"`
	AttendeeID  string       `json:"attendee_id"`
	Type        ReportType   `json:"type"`
	Location    GeoPoint     `json:"location"`
	Description string       `json:"description,omitempty"`
	PhotoURL    string       `json:"photo_url,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
	Status      ReportStatus `json:"status"`
}

// NewReportID генерирует уникальный идентификатор сообщения.
// Пространство имен отделено от идентификаторов алертов префиксом.
func NewReportID() string {
	return "report-" + uuid.NewString()
}
