package controllers

import (
	"net/http"

	"github.com/Kariqs/kartdaily-api/models"
	"github.com/Kariqs/kartdaily-api/services"
	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orders *services.OrderWorkflow
}

func NewOrderController(orders *services.OrderWorkflow) *OrderController {
	return &OrderController{orders: orders}
}

func (c *OrderController) CreateOrder(ctx *gin.Context) {
	user, ok := requireUser(ctx)
	if !ok {
		return
	}

	var input models.OrderInput
	if !bindJSON(ctx, &input) {
		return
	}

	order, err := c.orders.PlaceOrder(ctx.Request.Context(), user, input)
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, order)
}

func (c *OrderController) GetMyOrders(ctx *gin.Context) {
	user, ok := requireUser(ctx)
	if !ok {
		return
	}

	orders, err := c.orders.MyOrders(ctx.Request.Context(), user.ID)
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, orders)
}

// GetOrder returns any order by id to any authenticated caller.
func (c *OrderController) GetOrder(ctx *gin.Context) {
	order, err := c.orders.GetOrder(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, order)
}

func (c *OrderController) GetOrders(ctx *gin.Context) {
	orders, err := c.orders.AllOrders(ctx.Request.Context())
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, orders)
}

// CreatePaymentIntent handles POST /api/orders/razorpay
func (c *OrderController) CreatePaymentIntent(ctx *gin.Context) {
	var req models.PaymentIntentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	intent, err := c.orders.CreatePaymentIntent(ctx.Request.Context(), req)
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, intent)
}

func (c *OrderController) UpdateOrderToPaid(ctx *gin.Context) {
	var result models.PaymentResult
	if !bindJSON(ctx, &result) {
		return
	}

	order, err := c.orders.ConfirmPayment(ctx.Request.Context(), ctx.Param("id"), result)
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, order)
}

func (c *OrderController) UpdateOrderToDelivered(ctx *gin.Context) {
	order, err := c.orders.MarkDelivered(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, order)
}
