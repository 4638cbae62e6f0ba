package routes

import (
	"github.com/Kariqs/kartdaily-api/controllers"
	"github.com/Kariqs/kartdaily-api/middlewares"
	"github.com/gin-gonic/gin"
)

func UserRoutes(server *gin.Engine, users *controllers.UserController, auth gin.HandlerFunc) {
	admin := middlewares.RequireAdmin()

	group := server.Group("/api/users")
	{
		group.POST("", users.Register)
		group.POST("/login", users.Login)
		group.GET("/profile", auth, users.GetProfile)
		group.PUT("/profile", auth, users.UpdateProfile)
		group.GET("", auth, admin, users.GetUsers)
		group.GET("/:id", auth, admin, users.GetUser)
		group.PUT("/:id", auth, admin, users.UpdateUser)
		group.DELETE("/:id", auth, admin, users.DeleteUser)
	}
}
