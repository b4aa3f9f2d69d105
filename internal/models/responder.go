package models

// ResponderStatus - статус полевого респондера
type ResponderStatus string

const (
	ResponderStatusAvailable  ResponderStatus = "Available"
	ResponderStatusDispatched ResponderStatus = "Dispatched"
	ResponderStatusOnBreak    ResponderStatus = "OnBreak"
)

// Valid проверяет, что статус респондера известен
func (s ResponderStatus) Valid() bool {
	switch s {
	case ResponderStatusAvailable, ResponderStatusDispatched, ResponderStatusOnBreak:
		return true
	}
	return false
}

// Responder представляет полевую единицу, которую можно направить на алерт.
// Инвариант: AssignedAlertID заполнен тогда и только тогда, когда статус Dispatched.
type Responder struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Status          ResponderStatus `json:"status"`
	Location        GeoPoint        `json:"location"`
	AssignedAlertID string          `json:"assigned_alert_id,omitempty"`
}
