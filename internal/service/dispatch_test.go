package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/avdonin/event_safety_system/internal/models"
	"github.com/avdonin/event_safety_system/internal/repository/memory"
	"github.com/avdonin/event_safety_system/internal/webhook"
	webhook_mocks "github.com/avdonin/event_safety_system/internal/webhook/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestDispatch — вспомогательная функция для создания координатора
// со свежим хранилищем и мокированным издателем событий
func newTestDispatch(t *testing.T) (Dispatch, *memory.Store, *webhook_mocks.MockPublisher) {
	ctrl := gomock.NewController(t)
	publisherMock := webhook_mocks.NewMockPublisher(ctrl)

	store := memory.NewStore()
	dispatch := NewDispatch(store, store, store, testLogger(), publisherMock, nil, &sync.Mutex{})
	return dispatch, store, publisherMock
}

func seedAlert(t *testing.T, store *memory.Store, status models.AlertStatus) *models.Alert {
	t.Helper()
	alert := &models.Alert{
		ID:       models.NewAlertID(),
		Title:    "Crowd crush risk at gate 3",
		Summary:  "Density above safe threshold",
		Type:     models.AlertTypePredictive,
		Severity: models.SeverityCritical,
		Status:   status,
		Location: models.GeoPoint{Lat: 34.0522, Lng: -118.2437},
		Source:   models.SourceForecast,
	}
	require.NoError(t, store.CreateAlert(context.Background(), alert))
	return alert
}

func seedResponder(t *testing.T, store *memory.Store, status models.ResponderStatus) *models.Responder {
	t.Helper()
	responder := &models.Responder{
		ID:     "resp-1",
		Name:   "Alice Johnson",
		Status: status,
	}
	require.NoError(t, store.CreateResponder(context.Background(), responder))
	return responder
}

func TestAssign_Success(t *testing.T) {
	// Подготовка
	dispatch, store, publisherMock := newTestDispatch(t)
	ctx := context.Background()
	alert := seedAlert(t, store, models.AlertStatusNew)
	responder := seedResponder(t, store, models.ResponderStatusAvailable)

	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		Do(func(_ context.Context, event webhook.Event) {
			assert.Equal(t, webhook.EventAlertAssigned, event.Kind)
			assert.Equal(t, alert.ID, event.AlertID)
			assert.Equal(t, responder.ID, event.ResponderID)
		}).Return(nil).Times(1)

	// Действие
	err := dispatch.Assign(ctx, alert.ID, responder.ID)

	// Проверки: двусторонняя согласованность алерт<->респондер
	require.NoError(t, err)

	updatedAlert, err := store.GetAlert(ctx, alert.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AlertStatusDispatched, updatedAlert.Status)
	assert.Equal(t, responder.ID, updatedAlert.AssignedResponder)

	updatedResponder, err := store.GetResponder(ctx, responder.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ResponderStatusDispatched, updatedResponder.Status)
	assert.Equal(t, alert.ID, updatedResponder.AssignedAlertID)
}

func TestAssign_FromAcknowledged(t *testing.T) {
	dispatch, store, publisherMock := newTestDispatch(t)
	ctx := context.Background()
	alert := seedAlert(t, store, models.AlertStatusAcknowledged)
	responder := seedResponder(t, store, models.ResponderStatusAvailable)

	publisherMock.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(1)

	require.NoError(t, dispatch.Assign(ctx, alert.ID, responder.ID))

	updatedAlert, err := store.GetAlert(ctx, alert.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AlertStatusDispatched, updatedAlert.Status)
}

func TestAssign_ResponderOnBreak(t *testing.T) {
	// Подготовка
	dispatch, store, publisherMock := newTestDispatch(t)
	ctx := context.Background()
	alert := seedAlert(t, store, models.AlertStatusNew)
	responder := seedResponder(t, store, models.ResponderStatusOnBreak)

	// Событие не публикуется при отказе
	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	err := dispatch.Assign(ctx, alert.ID, responder.ID)

	// Проверки: отказ с причиной, обе записи не изменились
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrAssignmentRejected)
	assert.ErrorContains(t, err, responder.ID)

	unchangedAlert, err := store.GetAlert(ctx, alert.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AlertStatusNew, unchangedAlert.Status)
	assert.Empty(t, unchangedAlert.AssignedResponder)
}

func TestAssign_AlertAlreadyDispatched(t *testing.T) {
	dispatch, store, publisherMock := newTestDispatch(t)
	ctx := context.Background()
	alert := seedAlert(t, store, models.AlertStatusDispatched)
	responder := seedResponder(t, store, models.ResponderStatusAvailable)

	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	err := dispatch.Assign(ctx, alert.ID, responder.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrAssignmentRejected)

	// Респондер остался свободен
	unchanged, err := store.GetResponder(ctx, responder.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ResponderStatusAvailable, unchanged.Status)
}

func TestAssign_AlertNotFound(t *testing.T) {
	dispatch, store, publisherMock := newTestDispatch(t)
	seedResponder(t, store, models.ResponderStatusAvailable)
	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	err := dispatch.Assign(context.Background(), "alert-missing", "resp-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestResolve_ReleasesAssignedResponder(t *testing.T) {
	// Подготовка: назначенный респондер
	dispatch, store, publisherMock := newTestDispatch(t)
	ctx := context.Background()
	alert := seedAlert(t, store, models.AlertStatusNew)
	responder := seedResponder(t, store, models.ResponderStatusAvailable)

	publisherMock.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(2)
	require.NoError(t, dispatch.Assign(ctx, alert.ID, responder.ID))

	// Действие
	err := dispatch.Resolve(ctx, alert.ID)

	// Проверки: алерт завершен, респондер снова свободен, но история
	// назначения на алерте сохранена
	require.NoError(t, err)

	resolvedAlert, err := store.GetAlert(ctx, alert.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AlertStatusResolved, resolvedAlert.Status)
	assert.Equal(t, responder.ID, resolvedAlert.AssignedResponder)

	releasedResponder, err := store.GetResponder(ctx, responder.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ResponderStatusAvailable, releasedResponder.Status)
	assert.Empty(t, releasedResponder.AssignedAlertID)
}

func TestResolve_UnassignedAlert(t *testing.T) {
	dispatch, store, publisherMock := newTestDispatch(t)
	ctx := context.Background()
	alert := seedAlert(t, store, models.AlertStatusNew)

	publisherMock.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(1)

	require.NoError(t, dispatch.Resolve(ctx, alert.ID))

	resolved, err := store.GetAlert(ctx, alert.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AlertStatusResolved, resolved.Status)
}

func TestResolve_AlreadyResolved(t *testing.T) {
	dispatch, store, publisherMock := newTestDispatch(t)
	ctx := context.Background()
	alert := seedAlert(t, store, models.AlertStatusResolved)

	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	err := dispatch.Resolve(ctx, alert.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

// pausingAlertRepo останавливает первое чтение алерта до сигнала release,
// моделируя конкурентное чтение-проверку-запись
type pausingAlertRepo struct {
	*memory.Store
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (p *pausingAlertRepo) GetAlert(ctx context.Context, id string) (*models.Alert, error) {
	p.once.Do(func() {
		close(p.entered)
		<-p.release
	})
	return p.Store.GetAlert(ctx, id)
}

func TestTransition_SerializedWithAssign(t *testing.T) {
	// Подготовка: реестр и координатор делят одну блокировку; переход
	// застревает внутри чтения, назначение стартует в этом окне
	ctrl := gomock.NewController(t)
	publisherMock := webhook_mocks.NewMockPublisher(ctrl)
	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	store := memory.NewStore()
	repo := &pausingAlertRepo{
		Store:   store,
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	mu := &sync.Mutex{}
	registry := NewAlertRegistry(repo, testLogger(), publisherMock, nil, mu)
	dispatch := NewDispatch(store, store, store, testLogger(), publisherMock, nil, mu)

	ctx := context.Background()
	alert := seedAlert(t, store, models.AlertStatusNew)
	responder := seedResponder(t, store, models.ResponderStatusAvailable)

	transitionDone := make(chan error, 1)
	go func() {
		_, err := registry.Transition(ctx, alert.ID, models.AlertStatusAcknowledged)
		transitionDone <- err
	}()
	<-repo.entered

	assignDone := make(chan error, 1)
	go func() {
		assignDone <- dispatch.Assign(ctx, alert.ID, responder.ID)
	}()

	// Действие: назначение обязано ждать завершения перехода
	select {
	case err := <-assignDone:
		t.Fatalf("assign completed while transition was in flight: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(repo.release)
	require.NoError(t, <-transitionDone)
	require.NoError(t, <-assignDone)

	// Проверки: назначение не затерто устаревшим снимком перехода,
	// пара алерт<->респондер согласована
	finalAlert, err := store.GetAlert(ctx, alert.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AlertStatusDispatched, finalAlert.Status)
	assert.Equal(t, responder.ID, finalAlert.AssignedResponder)

	finalResponder, err := store.GetResponder(ctx, responder.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ResponderStatusDispatched, finalResponder.Status)
	assert.Equal(t, alert.ID, finalResponder.AssignedAlertID)
}

func TestAvailableResponders_FiltersRoster(t *testing.T) {
	dispatch, store, _ := newTestDispatch(t)
	ctx := context.Background()

	require.NoError(t, store.CreateResponder(ctx, &models.Responder{ID: "resp-1", Name: "Alice Johnson", Status: models.ResponderStatusAvailable}))
	require.NoError(t, store.CreateResponder(ctx, &models.Responder{ID: "resp-2", Name: "Bob Williams", Status: models.ResponderStatusDispatched}))
	require.NoError(t, store.CreateResponder(ctx, &models.Responder{ID: "resp-3", Name: "Charlie Brown", Status: models.ResponderStatusOnBreak}))

	available, err := dispatch.AvailableResponders(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "resp-1", available[0].ID)

	all, err := dispatch.ListResponders(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
