package service

import (
	"context"
	"sync"
	"testing"

	"github.com/avdonin/event_safety_system/internal/models"
	"github.com/avdonin/event_safety_system/internal/oracle"
	oracle_mocks "github.com/avdonin/event_safety_system/internal/oracle/mocks"
	"github.com/avdonin/event_safety_system/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestSentiment(t *testing.T) (Sentiment, *memory.Store, *oracle_mocks.MockClassifier) {
	ctrl := gomock.NewController(t)
	classifierMock := oracle_mocks.NewMockClassifier(ctrl)

	store := memory.NewStore()
	sentiment := NewSentiment(store, classifierMock, nil, testLogger())
	return sentiment, store, classifierMock
}

func TestRefresh_EmptyAlertSet(t *testing.T) {
	// Подготовка: пустой набор алертов - валидный случай, оракул получает
	// пустой список и возвращает "спокойную" сводку
	sentiment, _, classifierMock := newTestSentiment(t)
	ctx := context.Background()

	classifierMock.EXPECT().
		SummarizeSentiment(ctx, gomock.Len(0)).
		Return("The event is calm, no active incidents.", nil).
		Times(1)

	// Действие
	snapshot, err := sentiment.Refresh(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, "The event is calm, no active incidents.", snapshot.Summary)
	assert.False(t, snapshot.ComputedAt.IsZero())
}

func TestRefresh_PassesActiveAlertsOnly(t *testing.T) {
	sentiment, store, classifierMock := newTestSentiment(t)
	ctx := context.Background()

	require.NoError(t, store.CreateAlert(ctx, &models.Alert{
		ID: "alert-1", Title: "Fire near stage", Severity: models.SeverityCritical, Status: models.AlertStatusNew,
	}))
	require.NoError(t, store.CreateAlert(ctx, &models.Alert{
		ID: "alert-2", Title: "Old incident", Severity: models.SeverityWarning, Status: models.AlertStatusResolved,
	}))

	classifierMock.EXPECT().
		SummarizeSentiment(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, digests []oracle.AlertDigest) (string, error) {
			// Завершенные алерты в сводку не попадают
			require.Len(t, digests, 1)
			assert.Equal(t, "alert-1", digests[0].ID)
			return "Tense mood near the stage.", nil
		}).Times(1)

	snapshot, err := sentiment.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Tense mood near the stage.", snapshot.Summary)
}

func TestRefresh_OracleFailure(t *testing.T) {
	sentiment, _, classifierMock := newTestSentiment(t)
	ctx := context.Background()

	classifierMock.EXPECT().
		SummarizeSentiment(ctx, gomock.Any()).
		Return("", models.ErrOracleFailure).
		Times(1)

	_, err := sentiment.Refresh(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrOracleFailure)

	// Сводки так и нет
	_, err = sentiment.Current(ctx)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRefresh_StaleResultDiscarded(t *testing.T) {
	// Подготовка: первое обновление зависает в оракуле, второе успевает
	// примениться раньше. Опоздавший результат должен быть отброшен.
	sentiment, _, classifierMock := newTestSentiment(t)
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})

	gomock.InOrder(
		classifierMock.EXPECT().
			SummarizeSentiment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ []oracle.AlertDigest) (string, error) {
				close(started)
				<-release
				return "stale summary", nil
			}),
		classifierMock.EXPECT().
			SummarizeSentiment(gomock.Any(), gomock.Any()).
			Return("fresh summary", nil),
	)

	var wg sync.WaitGroup
	var staleResult *SentimentSnapshot
	var staleErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		staleResult, staleErr = sentiment.Refresh(ctx)
	}()
	<-started

	// Действие: второе обновление завершается, пока первое висит
	fresh, err := sentiment.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fresh summary", fresh.Summary)

	close(release)
	wg.Wait()

	// Проверки: опоздавший вызов получил уже примененную сводку,
	// а не перезаписал ее устаревшей
	require.NoError(t, staleErr)
	assert.Equal(t, "fresh summary", staleResult.Summary)

	current, err := sentiment.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fresh summary", current.Summary)
}

func TestCurrent_NoSummaryYet(t *testing.T) {
	sentiment, _, _ := newTestSentiment(t)

	_, err := sentiment.Current(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCurrent_ReturnsLastApplied(t *testing.T) {
	sentiment, _, classifierMock := newTestSentiment(t)
	ctx := context.Background()

	classifierMock.EXPECT().
		SummarizeSentiment(ctx, gomock.Any()).
		Return("All quiet.", nil).
		Times(1)

	refreshed, err := sentiment.Refresh(ctx)
	require.NoError(t, err)

	current, err := sentiment.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, refreshed, current)
}
