package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/avdonin/event_safety_system/internal/config"
	"github.com/avdonin/event_safety_system/internal/models"
	"github.com/avdonin/event_safety_system/internal/service"
)

type Handler struct {
	intake    service.ReportIntake
	registry  service.AlertRegistry
	dispatch  service.Dispatch
	sentiment service.Sentiment
	stats     service.Stats
	logger    *logrus.Logger
	validate  *validator.Validate
	cfg       *config.Config
}

func NewHandler(intake service.ReportIntake, registry service.AlertRegistry, dispatch service.Dispatch, sentiment service.Sentiment, stats service.Stats, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		intake:    intake,
		registry:  registry,
		dispatch:  dispatch,
		sentiment: sentiment,
		stats:     stats,
		logger:    logger,
		validate:  validator.New(),
		cfg:       cfg,
	}
}

// respondError переводит доменную таксономию ошибок в HTTP-статусы
func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		log.WithError(err).Warn("Request rejected by validation")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		log.WithError(err).Warn("Referenced entity not found")
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrAssignmentRejected):
		rejection := &models.AssignmentRejectedError{}
		msg := err.Error()
		if errors.As(err, &rejection) {
			msg = rejection.Error()
		}
		log.WithError(err).Warn("Assignment rejected")
		c.JSON(http.StatusConflict, gin.H{"error": msg})
	case errors.Is(err, models.ErrInvalidTransition):
		log.WithError(err).Warn("Invalid status transition")
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrOracleFailure):
		log.WithError(err).Error("Oracle call failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "classification oracle unavailable, retry later"})
	default:
		log.WithError(err).Error("Unhandled service error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// @Summary Submit an attendee report
// @Description Submit a new attendee report. The report is classified by the oracle; an alert is returned when warranted. Requires API key.
// @Tags Reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param report body SubmitReportRequest true "Report submission request"
// @Success 201 {object} SubmitReportResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} map[string]string "Oracle failure, report kept for retry"
// @Router /reports [post]
func (h *Handler) submitReport(c *gin.Context) {
	var input SubmitReportRequest
	log := h.logger.WithField("method", "submitReport")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.intake.SubmitReport(c.Request.Context(), ReportInputFromDTO(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, SubmitResultToResponse(result))
}

// @Summary Reprocess a received report
// @Description Re-invoke the classification oracle for a report left in Received state after an oracle failure. Idempotent by report id. Requires API key.
// @Tags Reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Report ID"
// @Success 200 {object} SubmitReportResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 409 {object} map[string]string "Report already processed"
// @Failure 502 {object} map[string]string "Oracle failure, report kept for retry"
// @Router /reports/{id}/reprocess [post]
func (h *Handler) reprocessReport(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "reprocessReport").WithField("id", id)

	result, err := h.intake.ReprocessReport(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, SubmitResultToResponse(result))
}

// @Summary Get report by ID
// @Description Get a single attendee report by its ID. Requires API key.
// @Tags Reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Report ID"
// @Success 200 {object} ReportResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Report not found"
// @Router /reports/{id} [get]
func (h *Handler) getReport(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "getReport").WithField("id", id)

	report, err := h.intake.GetReport(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToReportResponse(report))
}

// @Summary List active alerts
// @Description List active alerts ranked by severity, priority and recency. Supports severity filtering and the restricted consumer view. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param severity query string false "Comma-separated severities (CRITICAL,WARNING,INFO)"
// @Param view query string false "Set to 'consumer' for the restricted view (CRITICAL and WARNING only)"
// @Param include_resolved query bool false "Include resolved alerts" default(false)
// @Success 200 {array} AlertResponse
// @Failure 400 {object} map[string]string "Unknown severity value"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts [get]
func (h *Handler) listAlerts(c *gin.Context) {
	log := h.logger.WithField("method", "listAlerts")

	filter := service.AlertListFilter{
		IncludeResolved: c.Query("include_resolved") == "true",
	}

	if severities := c.Query("severity"); severities != "" {
		for _, s := range strings.Split(severities, ",") {
			severity := models.Severity(strings.TrimSpace(s))
			if !severity.Valid() {
				log.WithField("severity", s).Warn("Rejected unknown severity in filter")
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown severity %q", strings.TrimSpace(s))})
				return
			}
			filter.Severities = append(filter.Severities, severity)
		}
	}

	// Ограниченное представление для посетителей: только CRITICAL и WARNING,
	// завершенные не показываются
	if c.Query("view") == "consumer" {
		filter.Severities = []models.Severity{models.SeverityCritical, models.SeverityWarning}
		filter.IncludeResolved = false
	}

	alerts, err := h.registry.ListActive(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToAlertResponses(alerts))
}

// @Summary Inject an alert from a detection source
// @Description Create an alert directly from a forecast or vision-detection source, with no backing report. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param alert body InjectAlertRequest true "Alert injection request"
// @Success 201 {object} AlertResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /alerts [post]
func (h *Handler) injectAlert(c *gin.Context) {
	var input InjectAlertRequest
	log := h.logger.WithField("method", "injectAlert")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	alert, err := h.registry.CreateAlert(c.Request.Context(), CreateAlertParamsFromDTO(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToAlertResponse(alert))
}

// @Summary Get alert by ID
// @Description Get a single alert by its ID. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Alert ID"
// @Success 200 {object} AlertResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Alert not found"
// @Router /alerts/{id} [get]
func (h *Handler) getAlert(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "getAlert").WithField("id", id)

	alert, err := h.registry.GetAlert(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToAlertResponse(alert))
}

// @Summary Acknowledge an alert
// @Description Transition a NEW alert to ACKNOWLEDGED. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Alert ID"
// @Success 200 {object} AlertResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Alert not found"
// @Failure 409 {object} map[string]string "Invalid status transition"
// @Router /alerts/{id}/acknowledge [post]
func (h *Handler) acknowledgeAlert(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "acknowledgeAlert").WithField("id", id)

	alert, err := h.registry.Transition(c.Request.Context(), id, models.AlertStatusAcknowledged)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToAlertResponse(alert))
}

// @Summary Assign a responder to an alert
// @Description Dispatch an available responder to a NEW or ACKNOWLEDGED alert. Both records are updated atomically. Requires API key.
// @Tags Dispatch
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Alert ID"
// @Param assignment body AssignRequest true "Assignment request"
// @Success 200 "OK"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Alert or responder not found"
// @Failure 409 {object} map[string]string "Assignment preconditions unmet"
// @Router /alerts/{id}/assign [post]
func (h *Handler) assignAlert(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "assignAlert").WithField("id", id)

	var input AssignRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.dispatch.Assign(c.Request.Context(), id, input.ResponderID); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusOK)
}

// @Summary Resolve an alert
// @Description Resolve an alert; the assigned responder, if any, returns to Available. Requires API key.
// @Tags Dispatch
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Alert ID"
// @Success 200 "OK"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Alert not found"
// @Failure 409 {object} map[string]string "Alert already resolved"
// @Router /alerts/{id}/resolve [post]
func (h *Handler) resolveAlert(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "resolveAlert").WithField("id", id)

	if err := h.dispatch.Resolve(c.Request.Context(), id); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusOK)
}

// @Summary List responders
// @Description List the responder roster, optionally filtered to available dispatch candidates. Requires API key.
// @Tags Dispatch
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "Filter by status (Available)"
// @Success 200 {array} ResponderResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /responders [get]
func (h *Handler) listResponders(c *gin.Context) {
	log := h.logger.WithField("method", "listResponders")

	var (
		responders []*models.Responder
		err        error
	)
	if c.Query("status") == string(models.ResponderStatusAvailable) {
		responders, err = h.dispatch.AvailableResponders(c.Request.Context())
	} else {
		responders, err = h.dispatch.ListResponders(c.Request.Context())
	}
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToResponderResponses(responders))
}

// @Summary Get the current sentiment summary
// @Description Get the most recently computed event sentiment summary. Requires API key.
// @Tags Sentiment
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} SentimentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No summary computed yet"
// @Router /sentiment [get]
func (h *Handler) getSentiment(c *gin.Context) {
	log := h.logger.WithField("method", "getSentiment")

	snapshot, err := h.sentiment.Current(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, SnapshotToSentimentResponse(snapshot))
}

// @Summary Refresh the sentiment summary
// @Description Recompute the event sentiment summary from the current active alert set. An empty set yields a calm summary. Requires API key.
// @Tags Sentiment
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} SentimentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} map[string]string "Oracle failure"
// @Router /sentiment/refresh [post]
func (h *Handler) refreshSentiment(c *gin.Context) {
	log := h.logger.WithField("method", "refreshSentiment")

	snapshot, err := h.sentiment.Refresh(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, SnapshotToSentimentResponse(snapshot))
}

// @Summary Get dashboard statistics
// @Description Get active alert, responder and report counters. Requires API key.
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} StatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.logger.WithField("method", "getStats")

	snapshot, err := h.stats.Snapshot(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, SnapshotToStatsResponse(snapshot))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
