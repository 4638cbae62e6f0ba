package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the kartDaily API. It is up and running.

USERS
- POST "/api/users" - Register
- POST "/api/users/login" - Log in
- GET|PUT "/api/users/profile" - Own profile
- GET "/api/users", GET|PUT|DELETE "/api/users/:id" - Admin user management

PRODUCTS
- GET "/api/products?keyword=&pageNumber=" - Browse products
- GET "/api/products/top" - Top rated products
- GET "/api/products/:id" - Product details
- POST "/api/products/:id/reviews" - Review a product

ORDERS
- POST "/api/orders" - Place an order
- GET "/api/orders/me" - Own orders
- GET "/api/orders/:id" - Order details
- POST "/api/orders/razorpay" - Start a payment
- PUT "/api/orders/:id/pay" - Confirm payment`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
