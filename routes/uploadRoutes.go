package routes

import (
	"github.com/Kariqs/kartdaily-api/controllers"
	"github.com/Kariqs/kartdaily-api/middlewares"
	"github.com/gin-gonic/gin"
)

func UploadRoutes(server *gin.Engine, uploads *controllers.UploadController, auth gin.HandlerFunc) {
	server.POST("/api/upload", auth, middlewares.RequireAdmin(), uploads.UploadImage)
}
