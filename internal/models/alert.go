package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// AlertType - тип алерта, присвоенный оракулом или источником
type AlertType string

const (
	AlertTypePredictive    AlertType = "PREDICTIVE"
	AlertTypeMedical       AlertType = "MEDICAL"
	AlertTypeFire          AlertType = "FIRE"
	AlertTypePanic         AlertType = "PANIC"
	AlertTypeLostPerson    AlertType = "LOST_PERSON"
	AlertTypeSafetyConcern AlertType = "SAFETY_CONCERN"
	AlertTypeOther         AlertType = "OTHER"
)

// Valid проверяет, что тип алерта известен
func (t AlertType) Valid() bool {
	switch t {
	case AlertTypePredictive, AlertTypeMedical, AlertTypeFire, AlertTypePanic,
		AlertTypeLostPerson, AlertTypeSafetyConcern, AlertTypeOther:
		return true
	}
	return false
}

// Severity - грубая трехуровневая шкала срочности
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityWarning  Severity = "WARNING"
	SeverityInfo     Severity = "INFO"
)

// severityRank задает порядок сортировки: CRITICAL раньше WARNING раньше INFO
var severityRank = map[Severity]int{
	SeverityCritical: 0,
	SeverityWarning:  1,
	SeverityInfo:     2,
}

// Valid проверяет, что уровень серьезности известен
func (s Severity) Valid() bool {
	_, ok := severityRank[s]
	return ok
}

// AlertStatus - статус жизненного цикла алерта
type AlertStatus string

const (
	AlertStatusNew          AlertStatus = "NEW"
	AlertStatusAcknowledged AlertStatus = "ACKNOWLEDGED"
	AlertStatusDispatched   AlertStatus = "DISPATCHED"
	AlertStatusResolved     AlertStatus = "RESOLVED"
)

// statusRank задает позицию статуса в цепочке NEW -> ACKNOWLEDGED -> DISPATCHED -> RESOLVED
var statusRank = map[AlertStatus]int{
	AlertStatusNew:          0,
	AlertStatusAcknowledged: 1,
	AlertStatusDispatched:   2,
	AlertStatusResolved:     3,
}

// Valid проверяет, что статус алерта известен
func (s AlertStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransition проверяет переход статуса: разрешено только строгое движение
// вперед по цепочке, RESOLVED - терминальный статус
func CanTransition(from, to AlertStatus) bool {
	fromRank, okFrom := statusRank[from]
	toRank, okTo := statusRank[to]
	return okFrom && okTo && toRank > fromRank
}

// AlertSource - источник появления алерта
type AlertSource string

const (
	SourceForecast        AlertSource = "FORECAST"
	SourceVisionDetection AlertSource = "VISION_DETECTION"
	SourceAttendeeReport  AlertSource = "ATTENDEE_REPORT"
)

// Valid проверяет, что источник алерта известен
func (s AlertSource) Valid() bool {
	switch s {
	case SourceForecast, SourceVisionDetection, SourceAttendeeReport:
		return true
	}
	return false
}

// Priority ограничена диапазоном 1..100 (присутствует не всегда)
const (
	MinAlertPriority = 1
	MaxAlertPriority = 100
)

// Alert представляет актуальное событие безопасности
type Alert struct {
	ID                string      `json:"id"`
	Title             string      `json:"title"`
	Summary           string      `json:"summary"`
	Type              AlertType   `json:"type"`
	Severity          Severity    `json:"severity"`
	Priority          *int        `json:"priority,omitempty"`
	Status            AlertStatus `json:"status"`
	Location          GeoPoint    `json:"location"`
	Zone              string      `json:"zone,omitempty"`
	Source            AlertSource `json:"source"`
	Timestamp         time.Time   `json:"timestamp"`
	AssignedResponder string      `json:"assigned_responder,omitempty"`
}

// NewAlertID генерирует уникальный идентификатор алерта
func NewAlertID() string {
	return "alert-" + uuid.NewString()
}

// RankLess сравнивает два алерта по сквозному правилу ранжирования:
// сначала серьезность (CRITICAL < WARNING < INFO), затем приоритет по
// убыванию (только когда он есть у обоих), затем время создания по убыванию.
func RankLess(a, b *Alert) bool {
	if severityRank[a.Severity] != severityRank[b.Severity] {
		return severityRank[a.Severity] < severityRank[b.Severity]
	}
	if a.Priority != nil && b.Priority != nil && *a.Priority != *b.Priority {
		return *a.Priority > *b.Priority
	}
	return a.Timestamp.After(b.Timestamp)
}

// SortByRank сортирует алерты по правилу ранжирования на месте
func SortByRank(alerts []*Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		return RankLess(alerts[i], alerts[j])
	})
}
