package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/avdonin/event_safety_system/internal/config"
	"github.com/sirupsen/logrus"
)

// APIKeyAuthMiddleware защищает операторские маршруты (прием репортов,
// жизненный цикл алертов, назначения). Ключ берется из X-API-Key либо
// из Authorization: Bearer
func APIKeyAuthMiddleware(cfg *config.Config, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				apiKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if apiKey == "" {
			log.WithField("path", c.FullPath()).Warn("Operator request without API key")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "operator API key required"})
			return
		}

		isValid := false
		for _, key := range cfg.APIKeys {
			if key == apiKey {
				isValid = true
				break
			}
		}

		if !isValid {
			// Сам ключ в лог не пишем
			log.WithField("path", c.FullPath()).Warn("Operator request with unknown API key")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid operator API key"})
			return
		}

		c.Next()
	}
}
