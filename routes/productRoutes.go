package routes

import (
	"github.com/Kariqs/kartdaily-api/controllers"
	"github.com/Kariqs/kartdaily-api/middlewares"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(server *gin.Engine, products *controllers.ProductController, auth gin.HandlerFunc) {
	admin := middlewares.RequireAdmin()

	group := server.Group("/api/products")
	{
		group.GET("", products.GetProducts)
		group.GET("/top", products.GetTopProducts)
		group.GET("/:id", products.GetProduct)
		group.POST("", auth, admin, products.CreateProduct)
		group.PUT("/:id", auth, admin, products.UpdateProduct)
		group.DELETE("/:id", auth, admin, products.DeleteProduct)
		group.POST("/:id/reviews", auth, products.CreateReview)
	}
}
