package memory

import (
	"sync"

	"github.com/avdonin/event_safety_system/internal/models"
)

// Store - транзиентное хранилище состояния в памяти. Вся коллекция живет в
// явном объекте, который внедряется в сервисы (а не в глобальных переменных),
// поэтому каждый тест может получить свежий экземпляр.
type Store struct {
	mu         sync.RWMutex
	alerts     map[string]*models.Alert
	reports    map[string]*models.Report
	responders map[string]*models.Responder
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		alerts:     make(map[string]*models.Alert),
		reports:    make(map[string]*models.Report),
		responders: make(map[string]*models.Responder),
	}
}

// Читатели всегда получают копии: снимок состояния не может измениться
// под ними между взятием и использованием

func cloneAlert(alert *models.Alert) *models.Alert {
	clone := *alert
	if alert.Priority != nil {
		p := *alert.Priority
		clone.Priority = &p
	}
	return &clone
}

func cloneReport(report *models.Report) *models.Report {
	clone := *report
	return &clone
}

func cloneResponder(responder *models.Responder) *models.Responder {
	clone := *responder
	return &clone
}
