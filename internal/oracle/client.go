package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avdonin/event_safety_system/internal/models"
	"github.com/sirupsen/logrus"
)

// Message - сообщение чата в формате chat-completions
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest - тело запроса к chat-completions API
type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// ChatResponse - тело ответа chat-completions API
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type sentimentResult struct {
	Summary string `json:"summary"`
}

// Client - клиент оракула поверх OpenAI-совместимого chat-completions API
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  *logrus.Logger
}

// NewClient создает новый клиент оракула
func NewClient(apiKey, model, baseURL string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

const classifyPromptTemplate = `You are an AI assistant designed to analyze attendee reports from a live event and determine if they warrant creating an alert for the event commanders.

Here is the report data as JSON:
%s

Based on the report, determine:
1. Whether an alert should be created.
2. If so, create a title and summary for the alert.
3. Determine the alert type (PREDICTIVE, MEDICAL, FIRE, PANIC, LOST_PERSON, SAFETY_CONCERN or OTHER) and severity (CRITICAL, WARNING, INFO).
4. Optionally assign a priority from 1 to 100 (higher is more urgent) for tie-breaking within a severity.
5. Ensure the location is the same as the report.

If the report does not warrant an alert, output exactly: null
Otherwise output a single JSON object:
{"alertTitle": "...", "alertSummary": "...", "alertType": "...", "alertSeverity": "...", "priority": 50, "alertLocation": {"lat": 0, "lng": 0}, "source": "ATTENDEE_REPORT"}

Ensure the output is valid JSON with no extra text.`

// Classify отправляет сообщение оракулу и разбирает вердикт.
// Возвращает (nil, false, nil), когда оракул решил, что алерт не нужен.
func (c *Client) Classify(ctx context.Context, req ClassifyRequest) (*AlertProposal, bool, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, false, fmt.Errorf("oracle: failed to marshal classify request: %w", err)
	}

	content, err := c.complete(ctx, fmt.Sprintf(classifyPromptTemplate, string(payload)))
	if err != nil {
		return nil, false, err
	}

	content = stripJSONFences(content)
	if content == "" || content == "null" {
		return nil, false, nil
	}

	proposal := &AlertProposal{}
	if err := json.Unmarshal([]byte(content), proposal); err != nil {
		return nil, false, fmt.Errorf("oracle: failed to parse classify verdict: %w: %w", err, models.ErrOracleFailure)
	}
	return proposal, true, nil
}

const sentimentPromptTemplate = `You are an AI assistant that summarizes the sentiment of an event based on active alerts.

Given the following alerts as JSON, generate a brief summary of the overall event sentiment. Focus on the general mood, the types of incidents occurring, and any areas that need attention. Do not list individual alerts, but synthesize the information into a cohesive overview. If the list is empty, report a calm, all-clear situation.

Active Alerts:
%s

Output a single JSON object: {"summary": "..."}
Ensure the output is valid JSON with no extra text.`

// SummarizeSentiment запрашивает у оракула сводку настроения по активным алертам.
// Пустой список алертов - валидный запрос, оракул вернет спокойную сводку.
func (c *Client) SummarizeSentiment(ctx context.Context, alerts []AlertDigest) (string, error) {
	if alerts == nil {
		alerts = []AlertDigest{}
	}
	payload, err := json.Marshal(alerts)
	if err != nil {
		return "", fmt.Errorf("oracle: failed to marshal sentiment request: %w", err)
	}

	content, err := c.complete(ctx, fmt.Sprintf(sentimentPromptTemplate, string(payload)))
	if err != nil {
		return "", err
	}

	result := sentimentResult{}
	if err := json.Unmarshal([]byte(stripJSONFences(content)), &result); err != nil {
		return "", fmt.Errorf("oracle: failed to parse sentiment response: %w: %w", err, models.ErrOracleFailure)
	}
	return result.Summary, nil
}

// complete выполняет один запрос chat-completions и возвращает текст первого ответа
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := ChatRequest{
		Model: c.model,
		Messages: []Message{
			{
				Role:    "user",
				Content: prompt,
			},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("oracle: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("oracle: failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		// Таймаут трактуется так же, как любая другая ошибка оракула
		return "", fmt.Errorf("oracle: failed to send request: %w: %w", err, models.ErrOracleFailure)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("oracle: failed to read response body: %w: %w", err, models.ErrOracleFailure)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WithField("status", resp.StatusCode).Warn("Oracle API returned non-OK status")
		return "", fmt.Errorf("oracle: API error (status %d): %s: %w", resp.StatusCode, string(body), models.ErrOracleFailure)
	}

	chatResp := ChatResponse{}
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("oracle: failed to parse response: %w: %w", err, models.ErrOracleFailure)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("oracle: no choices in response: %w", models.ErrOracleFailure)
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

// stripJSONFences убирает обрамление ```json ... ```, которое модели иногда добавляют
func stripJSONFences(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
