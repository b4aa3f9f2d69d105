package oracle

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avdonin/event_safety_system/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	return NewClient("test-key", "gpt-4o-mini", server.URL, 0, logger), server
}

// chatReply собирает ответ chat-completions с заданным содержимым
func chatReply(content string) []byte {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}},
		},
	}
	body, _ := json.Marshal(resp)
	return body
}

func sampleRequest() ClassifyRequest {
	return ClassifyRequest{
		AttendeeID: "attendee-1",
		Type:       "Medical",
		Location:   models.GeoPoint{Lat: 34.0522, Lng: -118.2437},
		Timestamp:  "2025-07-04T21:00:00Z",
		EventID:    "summer-fest-2025",
		ReportID:   "report-1",
	}
}

func TestClassify_AlertProposed(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Write(chatReply(`{"alertTitle": "Medical emergency", "alertSummary": "Collapse reported", "alertType": "MEDICAL", "alertSeverity": "CRITICAL", "priority": 90, "alertLocation": {"lat": 34.0522, "lng": -118.2437}, "source": "ATTENDEE_REPORT"}`))
	})

	proposal, ok, err := client.Classify(context.Background(), sampleRequest())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Medical emergency", proposal.Title)
	assert.Equal(t, models.AlertTypeMedical, proposal.Type)
	assert.Equal(t, models.SeverityCritical, proposal.Severity)
	require.NotNil(t, proposal.Priority)
	assert.Equal(t, 90, *proposal.Priority)
}

func TestClassify_NullVerdict(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write(chatReply("null"))
	})

	proposal, ok, err := client.Classify(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, proposal)
}

func TestClassify_StripsCodeFences(t *testing.T) {
	// Модели иногда оборачивают JSON в markdown-блок
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write(chatReply("```json\n{\"alertTitle\": \"Fire\", \"alertSummary\": \"s\", \"alertType\": \"FIRE\", \"alertSeverity\": \"CRITICAL\", \"alertLocation\": {\"lat\": 0, \"lng\": 0}, \"source\": \"ATTENDEE_REPORT\"}\n```"))
	})

	proposal, ok, err := client.Classify(context.Background(), sampleRequest())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.AlertTypeFire, proposal.Type)
	assert.Nil(t, proposal.Priority)
}

func TestClassify_APIError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, _, err := client.Classify(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrOracleFailure)
}

func TestClassify_MalformedVerdict(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write(chatReply("I think this needs an alert"))
	})

	_, _, err := client.Classify(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrOracleFailure)
}

func TestClassify_EmptyChoices(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	})

	_, _, err := client.Classify(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrOracleFailure)
}

func TestSummarizeSentiment_Success(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write(chatReply(`{"summary": "The event is calm."}`))
	})

	summary, err := client.SummarizeSentiment(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "The event is calm.", summary)
}

func TestSummarizeSentiment_APIError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.SummarizeSentiment(context.Background(), []AlertDigest{{ID: "alert-1"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrOracleFailure)
}

func TestStripJSONFences(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, stripJSONFences("```json\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": 1}`, stripJSONFences("```\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": 1}`, stripJSONFences(`{"a": 1}`))
	assert.Equal(t, "null", stripJSONFences("  null  "))
}
