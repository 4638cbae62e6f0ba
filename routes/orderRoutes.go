package routes

import (
	"github.com/Kariqs/kartdaily-api/controllers"
	"github.com/Kariqs/kartdaily-api/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine, orders *controllers.OrderController, auth gin.HandlerFunc) {
	admin := middlewares.RequireAdmin()

	group := server.Group("/api/orders", auth)
	{
		group.POST("", orders.CreateOrder)
		group.GET("/me", orders.GetMyOrders)
		group.POST("/razorpay", orders.CreatePaymentIntent)
		group.GET("/:id", orders.GetOrder)
		group.PUT("/:id/pay", orders.UpdateOrderToPaid)
		group.GET("", admin, orders.GetOrders)
		group.PUT("/:id/deliver", admin, orders.UpdateOrderToDelivered)
	}
}
