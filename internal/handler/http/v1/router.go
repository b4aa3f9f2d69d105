package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Прием и повторная обработка сообщений посетителей
	reports := api.Group("/reports")
	{
		reports.POST("", h.submitReport)
		reports.GET("/:id", h.getReport)
		reports.POST("/:id/reprocess", h.reprocessReport)
	}

	// Реестр алертов и координация выезда
	alerts := api.Group("/alerts")
	{
		alerts.GET("", h.listAlerts)
		alerts.POST("", h.injectAlert)
		alerts.GET("/:id", h.getAlert)
		alerts.POST("/:id/acknowledge", h.acknowledgeAlert)
		alerts.POST("/:id/assign", h.assignAlert)
		alerts.POST("/:id/resolve", h.resolveAlert)
	}

	api.GET("/responders", h.listResponders)

	// Сводка настроения мероприятия
	sentiment := api.Group("/sentiment")
	{
		sentiment.GET("", h.getSentiment)
		sentiment.POST("/refresh", h.refreshSentiment)
	}

	api.GET("/stats", h.getStats)
}

// RegisterSystemRoutes регистрирует маршруты, доступные без API-ключа
func (h *Handler) RegisterSystemRoutes(api *gin.RouterGroup) {
	api.GET("/system/health", h.healthCheck)
}
