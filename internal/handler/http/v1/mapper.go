package v1

import (
	"github.com/avdonin/event_safety_system/internal/models"
	"github.com/avdonin/event_safety_system/internal/service"
)

// ReportInputFromDTO преобразует DTO подачи сообщения во входные данные сервиса
func ReportInputFromDTO(dto SubmitReportRequest) service.ReportInput {
	return service.ReportInput{
		AttendeeID:  dto.AttendeeID,
		Type:        models.ReportType(dto.Type),
		Location:    models.GeoPoint{Lat: dto.Location.Lat, Lng: dto.Location.Lng},
		Description: dto.Description,
		PhotoURL:    dto.PhotoURL,
	}
}

// CreateAlertParamsFromDTO преобразует DTO инъекции алерта в параметры реестра
func CreateAlertParamsFromDTO(dto InjectAlertRequest) service.CreateAlertParams {
	return service.CreateAlertParams{
		Title:    dto.Title,
		Summary:  dto.Summary,
		Type:     models.AlertType(dto.Type),
		Severity: models.Severity(dto.Severity),
		Priority: dto.Priority,
		Location: models.GeoPoint{Lat: dto.Location.Lat, Lng: dto.Location.Lng},
		Zone:     dto.Zone,
		Source:   models.AlertSource(dto.Source),
	}
}

// ModelToReportResponse преобразует доменную модель сообщения в DTO для ответа
func ModelToReportResponse(model *models.Report) *ReportResponse {
	return &ReportResponse{
		ID:          model.ID,
		AttendeeID:  model.AttendeeID,
		Type:        string(model.Type),
		Location:    LocationDTO{Lat: model.Location.Lat, Lng: model.Location.Lng},
		Description: model.Description,
		PhotoURL:    model.PhotoURL,
		Timestamp:   model.Timestamp,
		Status:      string(model.Status),
	}
}

// ModelToAlertResponse преобразует доменную модель алерта в DTO для ответа
func ModelToAlertResponse(model *models.Alert) *AlertResponse {
	return &AlertResponse{
		ID:                model.ID,
		Title:             model.Title,
		Summary:           model.Summary,
		Type:              string(model.Type),
		Severity:          string(model.Severity),
		Priority:          model.Priority,
		Status:            string(model.Status),
		Location:          LocationDTO{Lat: model.Location.Lat, Lng: model.Location.Lng},
		Zone:              model.Zone,
		Source:            string(model.Source),
		Timestamp:         model.Timestamp,
		AssignedResponder: model.AssignedResponder,
	}
}

// ModelsToAlertResponses преобразует слайс моделей в слайс DTO
func ModelsToAlertResponses(alerts []*models.Alert) []*AlertResponse {
	responses := make([]*AlertResponse, len(alerts))
	for i, alert := range alerts {
		responses[i] = ModelToAlertResponse(alert)
	}
	return responses
}

// ModelToResponderResponse преобразует доменную модель респондера в DTO для ответа
func ModelToResponderResponse(model *models.Responder) *ResponderResponse {
	return &ResponderResponse{
		ID:              model.ID,
		Name:            model.Name,
		Status:          string(model.Status),
		Location:        LocationDTO{Lat: model.Location.Lat, Lng: model.Location.Lng},
		AssignedAlertID: model.AssignedAlertID,
	}
}

// ModelsToResponderResponses преобразует слайс моделей в слайс DTO
func ModelsToResponderResponses(responders []*models.Responder) []*ResponderResponse {
	responses := make([]*ResponderResponse, len(responders))
	for i, responder := range responders {
		responses[i] = ModelToResponderResponse(responder)
	}
	return responses
}

// SubmitResultToResponse преобразует итог обработки сообщения в DTO для ответа
func SubmitResultToResponse(result *service.SubmitResult) *SubmitReportResponse {
	resp := &SubmitReportResponse{
		Report: ModelToReportResponse(result.Report),
	}
	if result.Alert != nil {
		resp.Alert = ModelToAlertResponse(result.Alert)
	}
	return resp
}

// SnapshotToSentimentResponse преобразует снимок сводки в DTO для ответа
func SnapshotToSentimentResponse(snapshot *service.SentimentSnapshot) *SentimentResponse {
	return &SentimentResponse{
		Summary:    snapshot.Summary,
		ComputedAt: snapshot.ComputedAt,
	}
}

// SnapshotToStatsResponse преобразует снимок статистики в DTO для ответа
func SnapshotToStatsResponse(snapshot *service.StatsSnapshot) *StatsResponse {
	resp := &StatsResponse{
		ActiveAlertsBySeverity: make(map[string]int, len(snapshot.ActiveAlertsBySeverity)),
		RespondersByStatus:     make(map[string]int, len(snapshot.RespondersByStatus)),
		ReportsReceived:        snapshot.ReportsReceived,
		ReportsProcessed:       snapshot.ReportsProcessed,
	}
	for severity, count := range snapshot.ActiveAlertsBySeverity {
		resp.ActiveAlertsBySeverity[string(severity)] = count
	}
	for status, count := range snapshot.RespondersByStatus {
		resp.RespondersByStatus[string(status)] = count
	}
	return resp
}
