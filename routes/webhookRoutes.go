package routes

import (
	"github.com/Kariqs/kartdaily-api/controllers"
	"github.com/gin-gonic/gin"
)

// WebhookRoutes is public; requests are gated by their signature header.
func WebhookRoutes(server *gin.Engine, webhook *controllers.WebhookController) {
	server.POST("/verification", webhook.Verify)
}
