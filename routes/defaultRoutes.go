package routes

import (
	"github.com/Kariqs/kartdaily-api/controllers"
	"github.com/Kariqs/kartdaily-api/middlewares"
	"github.com/gin-gonic/gin"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/", controllers.GetHome)
	server.NoRoute(middlewares.NotFound())
}
