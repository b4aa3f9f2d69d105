package service

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/avdonin/event_safety_system/internal/models"
	"github.com/avdonin/event_safety_system/internal/oracle"
	oracle_mocks "github.com/avdonin/event_safety_system/internal/oracle/mocks"
	"github.com/avdonin/event_safety_system/internal/repository/memory"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

// newTestIntake — вспомогательная функция для создания сервиса приема
// со свежим хранилищем и мокированным оракулом
func newTestIntake(t *testing.T) (ReportIntake, *memory.Store, *oracle_mocks.MockClassifier) {
	ctrl := gomock.NewController(t)
	classifierMock := oracle_mocks.NewMockClassifier(ctrl)

	store := memory.NewStore()
	logger := testLogger()

	registry := NewAlertRegistry(store, logger, nil, nil, &sync.Mutex{})
	intake := NewReportIntake(store, registry, classifierMock, "summer-fest-2025", logger)
	return intake, store, classifierMock
}

func validInput() ReportInput {
	return ReportInput{
		AttendeeID:  "attendee-1",
		Type:        models.ReportTypeMedical,
		Location:    models.GeoPoint{Lat: 34.0522, Lng: -118.2437},
		Description: "Человеку плохо возле главной сцены",
	}
}

func TestSubmitReport_AlertCreated(t *testing.T) {
	// Подготовка
	intake, store, classifierMock := newTestIntake(t)
	ctx := context.Background()
	priority := 85

	// Ожидания: оракул предлагает алерт с собственными координатами,
	// которым ядро не доверяет
	classifierMock.EXPECT().
		Classify(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, req oracle.ClassifyRequest) (*oracle.AlertProposal, bool, error) {
			assert.Equal(t, "attendee-1", req.AttendeeID)
			assert.Equal(t, "summer-fest-2025", req.EventID)
			assert.NotEmpty(t, req.ReportID)
			return &oracle.AlertProposal{
				Title:    "Medical emergency near main stage",
				Summary:  "Attendee reported a medical emergency",
				Type:     models.AlertTypeMedical,
				Severity: models.SeverityCritical,
				Priority: &priority,
				Location: models.GeoPoint{Lat: 0, Lng: 0}, // галлюцинация оракула
			}, true, nil
		}).Times(1)

	// Действие
	result, err := intake.SubmitReport(ctx, validInput())

	// Проверки
	require.NoError(t, err)
	require.NotNil(t, result.Alert)
	assert.Equal(t, models.ReportStatusProcessed, result.Report.Status)
	assert.Equal(t, models.AlertStatusNew, result.Alert.Status)
	assert.Equal(t, models.SourceAttendeeReport, result.Alert.Source)
	// Авторитетны координаты сообщения, а не предложения оракула
	assert.Equal(t, result.Report.Location, result.Alert.Location)

	// Алерт и сообщение сохранены
	stored, err := store.GetAlert(ctx, result.Alert.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Alert.ID, stored.ID)
}

func TestSubmitReport_NoAlertWarranted(t *testing.T) {
	// Подготовка
	intake, store, classifierMock := newTestIntake(t)
	ctx := context.Background()

	// Ожидания: оракул решает, что алерт не нужен
	classifierMock.EXPECT().
		Classify(ctx, gomock.Any()).
		Return(nil, false, nil).
		Times(1)

	// Действие
	result, err := intake.SubmitReport(ctx, validInput())

	// Проверки: сообщение обработано, алертов не появилось
	require.NoError(t, err)
	assert.Nil(t, result.Alert)
	assert.Equal(t, models.ReportStatusProcessed, result.Report.Status)

	alerts, err := store.ListAlerts(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestSubmitReport_OracleFailureKeepsReportReceived(t *testing.T) {
	// Подготовка
	intake, store, classifierMock := newTestIntake(t)
	ctx := context.Background()

	classifierMock.EXPECT().
		Classify(ctx, gomock.Any()).
		Return(nil, false, fmt.Errorf("call llm: %w", models.ErrOracleFailure)).
		Times(1)

	// Действие
	result, err := intake.SubmitReport(ctx, validInput())

	// Проверки: ошибка прозрачна, сообщение осталось в Received
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrOracleFailure)
	assert.Nil(t, result)

	reports, err := store.ListReports(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, models.ReportStatusReceived, reports[0].Status)
}

func TestSubmitReport_ValidationError(t *testing.T) {
	intake, _, classifierMock := newTestIntake(t)
	ctx := context.Background()

	// Оракул не должен вызываться для невалидного входа
	classifierMock.EXPECT().Classify(gomock.Any(), gomock.Any()).Times(0)

	input := validInput()
	input.Type = "Explosion"

	result, err := intake.SubmitReport(ctx, input)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Nil(t, result)
}

func TestReprocessReport_SucceedsAfterFailure(t *testing.T) {
	// Подготовка: первая классификация падает, повторная проходит
	intake, store, classifierMock := newTestIntake(t)
	ctx := context.Background()

	gomock.InOrder(
		classifierMock.EXPECT().
			Classify(ctx, gomock.Any()).
			Return(nil, false, fmt.Errorf("call llm: %w", models.ErrOracleFailure)),
		classifierMock.EXPECT().
			Classify(ctx, gomock.Any()).
			Return(&oracle.AlertProposal{
				Title:    "Lost child",
				Summary:  "Child reported lost near food court",
				Type:     models.AlertTypeLostPerson,
				Severity: models.SeverityWarning,
			}, true, nil),
	)

	_, err := intake.SubmitReport(ctx, validInput())
	require.Error(t, err)

	reports, err := store.ListReports(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	// Действие
	result, err := intake.ReprocessReport(ctx, reports[0].ID)

	// Проверки: повтор использует то же сообщение, дубликата не появилось
	require.NoError(t, err)
	require.NotNil(t, result.Alert)
	assert.Equal(t, reports[0].ID, result.Report.ID)
	assert.Equal(t, models.ReportStatusProcessed, result.Report.Status)

	reports, err = store.ListReports(ctx)
	require.NoError(t, err)
	assert.Len(t, reports, 1)
}

func TestReprocessReport_AlreadyProcessed(t *testing.T) {
	// Подготовка
	intake, _, classifierMock := newTestIntake(t)
	ctx := context.Background()

	classifierMock.EXPECT().
		Classify(ctx, gomock.Any()).
		Return(nil, false, nil).
		Times(1)

	result, err := intake.SubmitReport(ctx, validInput())
	require.NoError(t, err)

	// Действие: повторная обработка уже обработанного сообщения
	_, err = intake.ReprocessReport(ctx, result.Report.ID)

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestReprocessReport_NotFound(t *testing.T) {
	intake, _, _ := newTestIntake(t)

	_, err := intake.ReprocessReport(context.Background(), "report-missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
