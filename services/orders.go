// Package services holds the storefront's business rules. Handlers stay thin
// and call into these types; persistence and the payment gateway are injected.
package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Kariqs/kartdaily-api/apperrors"
	"github.com/Kariqs/kartdaily-api/models"
	"github.com/Kariqs/kartdaily-api/store"
)

const msgOrderNotFound = "Order not found"

type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, amountRequested float64, currency, receipt string) (*models.PaymentIntent, error)
}

// Notifier sends emails without blocking the caller.
type Notifier interface {
	NotifyRegistered(user models.User)
	NotifyOrderPlaced(user models.User, order models.Order)
}

// OrderWorkflow moves orders through Created, AwaitingPayment, Paid and
// Delivered. Transitions are never reversed. Delivery has no payment
// precondition, and neither transition guards against concurrent writers.
type OrderWorkflow struct {
	orders   store.OrderStore
	gateway  PaymentGateway
	notifier Notifier
	now      func() time.Time
}

func NewOrderWorkflow(orders store.OrderStore, gateway PaymentGateway, notifier Notifier) *OrderWorkflow {
	return &OrderWorkflow{
		orders:   orders,
		gateway:  gateway,
		notifier: notifier,
		now:      time.Now,
	}
}

func validateOrderInput(input models.OrderInput) error {
	if len(input.OrderItems) == 0 {
		return apperrors.Validation("No order items")
	}
	for _, price := range []float64{input.ItemsPrice, input.TaxPrice, input.ShippingPrice, input.TotalPrice} {
		if price < 0 {
			return apperrors.Validation("Prices must not be negative")
		}
	}
	return nil
}

// PlaceOrder stores a new order for user. The price breakdown is taken from
// the client as is. The confirmation email is sent in the background and its
// failure does not affect the result.
func (w *OrderWorkflow) PlaceOrder(ctx context.Context, user *models.User, input models.OrderInput) (*models.Order, error) {
	if err := validateOrderInput(input); err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:          user.ID,
		OrderItems:      input.OrderItems,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		ItemsPrice:      input.ItemsPrice,
		TaxPrice:        input.TaxPrice,
		ShippingPrice:   input.ShippingPrice,
		TotalPrice:      input.TotalPrice,
	}
	if err := w.orders.Create(ctx, order); err != nil {
		return nil, apperrors.Internal("Failed to create order", err)
	}

	w.notifier.NotifyOrderPlaced(*user, *order)
	return order, nil
}

func (w *OrderWorkflow) MyOrders(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := w.orders.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch orders", err)
	}
	return orders, nil
}

func (w *OrderWorkflow) AllOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := w.orders.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch orders", err)
	}
	return orders, nil
}

func (w *OrderWorkflow) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	order, err := w.orders.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFound(msgOrderNotFound)
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch order", err)
	}
	return order, nil
}

// CreatePaymentIntent opens a gateway order whose receipt is req.OrderID. When
// that id names a stored, unpaid order, the gateway order id is recorded on it.
// A missing order does not fail the request; the gateway is the source of truth.
func (w *OrderWorkflow) CreatePaymentIntent(ctx context.Context, req models.PaymentIntentRequest) (*models.PaymentIntent, error) {
	if req.Amount <= 0 {
		return nil, apperrors.Validation("Amount must be greater than zero")
	}
	if req.Currency == "" {
		return nil, apperrors.Validation("Currency is required")
	}

	intent, err := w.gateway.CreatePaymentIntent(ctx, req.Amount, req.Currency, req.OrderID)
	if err != nil {
		return nil, err
	}

	if req.OrderID != "" {
		w.recordIntent(ctx, req.OrderID, intent.ID)
	}
	return intent, nil
}

func (w *OrderWorkflow) recordIntent(ctx context.Context, orderID, intentID string) {
	order, err := w.orders.FindByID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("Payment intent %s created, but order %s could not be loaded: %v", intentID, orderID, err)
		}
		return
	}
	if order.IsPaid {
		return
	}

	order.PaymentIntentID = intentID
	if err := w.orders.Update(ctx, order); err != nil {
		log.Printf("Payment intent %s created, but not saved on order %s: %v", intentID, orderID, err)
	}
}

// ConfirmPayment marks the order paid and stores result verbatim. The result
// is not verified here; webhook callbacks are checked separately.
func (w *OrderWorkflow) ConfirmPayment(ctx context.Context, id string, result models.PaymentResult) (*models.Order, error) {
	order, err := w.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	paidAt := w.now()
	order.IsPaid = true
	order.PaidAt = &paidAt
	order.PaymentResult = &result

	if err := w.orders.Update(ctx, order); err != nil {
		return nil, w.updateError(err)
	}
	return order, nil
}

// MarkDelivered is permitted whether or not the order has been paid.
func (w *OrderWorkflow) MarkDelivered(ctx context.Context, id string) (*models.Order, error) {
	order, err := w.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	deliveredAt := w.now()
	order.IsDelivered = true
	order.DeliveredAt = &deliveredAt

	if err := w.orders.Update(ctx, order); err != nil {
		return nil, w.updateError(err)
	}
	return order, nil
}

func (w *OrderWorkflow) updateError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NotFound(msgOrderNotFound)
	}
	return apperrors.Internal("Failed to update order", err)
}
