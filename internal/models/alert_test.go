package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int {
	return &v
}

func TestSortByRank_SeverityBeforePriority(t *testing.T) {
	// Подготовка: критические алерты всегда выше предупреждений,
	// каким бы высоким ни был приоритет предупреждения
	now := time.Now()
	a := &Alert{ID: "a", Severity: SeverityCritical, Priority: intPtr(90), Timestamp: now}
	b := &Alert{ID: "b", Severity: SeverityCritical, Priority: intPtr(10), Timestamp: now}
	c := &Alert{ID: "c", Severity: SeverityWarning, Priority: intPtr(99), Timestamp: now}

	alerts := []*Alert{c, b, a}
	SortByRank(alerts)

	assert.Equal(t, []string{"a", "b", "c"}, []string{alerts[0].ID, alerts[1].ID, alerts[2].ID})
}

func TestSortByRank_MissingPriorityFallsBackToTimestamp(t *testing.T) {
	// Приоритет сравнивается, только когда он есть у обоих алертов.
	// Иначе решает время создания: свежие раньше.
	older := &Alert{ID: "older", Severity: SeverityWarning, Priority: intPtr(50), Timestamp: time.Now().Add(-time.Hour)}
	newer := &Alert{ID: "newer", Severity: SeverityWarning, Timestamp: time.Now()}

	alerts := []*Alert{older, newer}
	SortByRank(alerts)

	assert.Equal(t, "newer", alerts[0].ID)
	assert.Equal(t, "older", alerts[1].ID)
}

func TestSortByRank_InfoLast(t *testing.T) {
	now := time.Now()
	info := &Alert{ID: "info", Severity: SeverityInfo, Timestamp: now}
	warning := &Alert{ID: "warning", Severity: SeverityWarning, Timestamp: now}
	critical := &Alert{ID: "critical", Severity: SeverityCritical, Timestamp: now}

	alerts := []*Alert{info, warning, critical}
	SortByRank(alerts)

	assert.Equal(t, "critical", alerts[0].ID)
	assert.Equal(t, "warning", alerts[1].ID)
	assert.Equal(t, "info", alerts[2].ID)
}

func TestCanTransition_ForwardOnly(t *testing.T) {
	// Разрешено только строгое движение вперед по цепочке
	assert.True(t, CanTransition(AlertStatusNew, AlertStatusAcknowledged))
	assert.True(t, CanTransition(AlertStatusNew, AlertStatusDispatched))
	assert.True(t, CanTransition(AlertStatusNew, AlertStatusResolved))
	assert.True(t, CanTransition(AlertStatusAcknowledged, AlertStatusDispatched))
	assert.True(t, CanTransition(AlertStatusDispatched, AlertStatusResolved))

	// Назад и на месте - запрещено
	assert.False(t, CanTransition(AlertStatusAcknowledged, AlertStatusNew))
	assert.False(t, CanTransition(AlertStatusDispatched, AlertStatusAcknowledged))
	assert.False(t, CanTransition(AlertStatusNew, AlertStatusNew))

	// RESOLVED - терминальный статус
	assert.False(t, CanTransition(AlertStatusResolved, AlertStatusNew))
	assert.False(t, CanTransition(AlertStatusResolved, AlertStatusResolved))
}

func TestCanTransition_UnknownStatus(t *testing.T) {
	assert.False(t, CanTransition(AlertStatusNew, "ESCALATED"))
	assert.False(t, CanTransition("UNKNOWN", AlertStatusResolved))
}

func TestGeoPoint_Valid(t *testing.T) {
	assert.True(t, GeoPoint{Lat: 34.05, Lng: -118.24}.Valid())
	assert.True(t, GeoPoint{Lat: -90, Lng: 180}.Valid())
	assert.False(t, GeoPoint{Lat: 91, Lng: 0}.Valid())
	assert.False(t, GeoPoint{Lat: 0, Lng: -181}.Valid())
}
