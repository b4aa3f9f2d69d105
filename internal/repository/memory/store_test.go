package memory

import (
	"context"
	"testing"

	"github.com/avdonin/event_safety_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AlertCRUD(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	alert := &models.Alert{
		ID:       "alert-1",
		Title:    "Fire at food court",
		Severity: models.SeverityCritical,
		Status:   models.AlertStatusNew,
	}
	require.NoError(t, store.CreateAlert(ctx, alert))

	// Дубликат идентификатора отклоняется
	err := store.CreateAlert(ctx, alert)
	require.Error(t, err)

	got, err := store.GetAlert(ctx, "alert-1")
	require.NoError(t, err)
	assert.Equal(t, alert.Title, got.Title)

	got.Status = models.AlertStatusAcknowledged
	require.NoError(t, store.UpdateAlert(ctx, got))

	updated, err := store.GetAlert(ctx, "alert-1")
	require.NoError(t, err)
	assert.Equal(t, models.AlertStatusAcknowledged, updated.Status)

	_, err = store.GetAlert(ctx, "alert-missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestStore_ReadersGetCopies(t *testing.T) {
	// Мутация полученной копии не должна менять состояние хранилища
	store := NewStore()
	ctx := context.Background()
	priority := 50

	require.NoError(t, store.CreateAlert(ctx, &models.Alert{
		ID: "alert-1", Title: "original", Priority: &priority, Status: models.AlertStatusNew,
	}))

	got, err := store.GetAlert(ctx, "alert-1")
	require.NoError(t, err)
	got.Title = "mutated"
	*got.Priority = 99

	fresh, err := store.GetAlert(ctx, "alert-1")
	require.NoError(t, err)
	assert.Equal(t, "original", fresh.Title)
	assert.Equal(t, 50, *fresh.Priority)
}

func TestStore_ListAlertsHidesResolved(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.CreateAlert(ctx, &models.Alert{ID: "alert-1", Status: models.AlertStatusNew}))
	require.NoError(t, store.CreateAlert(ctx, &models.Alert{ID: "alert-2", Status: models.AlertStatusResolved}))

	active, err := store.ListAlerts(ctx, false)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := store.ListAlerts(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestStore_ApplyAssignmentPersistsPair(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.CreateAlert(ctx, &models.Alert{ID: "alert-1", Status: models.AlertStatusNew}))
	require.NoError(t, store.CreateResponder(ctx, &models.Responder{ID: "resp-1", Status: models.ResponderStatusAvailable}))

	alert := &models.Alert{ID: "alert-1", Status: models.AlertStatusDispatched, AssignedResponder: "resp-1"}
	responder := &models.Responder{ID: "resp-1", Status: models.ResponderStatusDispatched, AssignedAlertID: "alert-1"}
	require.NoError(t, store.ApplyAssignment(ctx, alert, responder))

	gotAlert, err := store.GetAlert(ctx, "alert-1")
	require.NoError(t, err)
	gotResponder, err := store.GetResponder(ctx, "resp-1")
	require.NoError(t, err)
	assert.Equal(t, "resp-1", gotAlert.AssignedResponder)
	assert.Equal(t, "alert-1", gotResponder.AssignedAlertID)
}

func TestStore_ApplyAssignmentMissingResponder(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.CreateAlert(ctx, &models.Alert{ID: "alert-1", Status: models.AlertStatusNew}))

	alert := &models.Alert{ID: "alert-1", Status: models.AlertStatusDispatched, AssignedResponder: "resp-ghost"}
	responder := &models.Responder{ID: "resp-ghost", Status: models.ResponderStatusDispatched}
	err := store.ApplyAssignment(ctx, alert, responder)
	require.Error(t, err)

	// Алерт не изменился: пара сохраняется целиком либо никак
	unchanged, err := store.GetAlert(ctx, "alert-1")
	require.NoError(t, err)
	assert.Equal(t, models.AlertStatusNew, unchanged.Status)
}

func TestStore_ApplyResolutionWithoutResponder(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.CreateAlert(ctx, &models.Alert{ID: "alert-1", Status: models.AlertStatusNew}))

	alert := &models.Alert{ID: "alert-1", Status: models.AlertStatusResolved}
	require.NoError(t, store.ApplyResolution(ctx, alert, nil))

	got, err := store.GetAlert(ctx, "alert-1")
	require.NoError(t, err)
	assert.Equal(t, models.AlertStatusResolved, got.Status)
}

func TestStore_ResponderFilter(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.CreateResponder(ctx, &models.Responder{ID: "resp-1", Status: models.ResponderStatusAvailable}))
	require.NoError(t, store.CreateResponder(ctx, &models.Responder{ID: "resp-2", Status: models.ResponderStatusOnBreak}))

	available, err := store.ListResponders(ctx, models.ResponderStatusAvailable)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "resp-1", available[0].ID)

	all, err := store.ListResponders(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestStore_ReportCRUD(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	report := &models.Report{ID: "report-1", AttendeeID: "attendee-1", Status: models.ReportStatusReceived}
	require.NoError(t, store.CreateReport(ctx, report))

	report.Status = models.ReportStatusProcessed
	require.NoError(t, store.UpdateReport(ctx, report))

	got, err := store.GetReport(ctx, "report-1")
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusProcessed, got.Status)

	reports, err := store.ListReports(ctx)
	require.NoError(t, err)
	assert.Len(t, reports, 1)
}
