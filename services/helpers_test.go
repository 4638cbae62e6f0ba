package services

import (
	"context"
	"sync"
	"time"

	"github.com/Kariqs/kartdaily-api/models"
	"github.com/Kariqs/kartdaily-api/payment"
)

type fakeGateway struct {
	calls    []models.PaymentIntentRequest
	err      error
	intentID string
}

func (g *fakeGateway) CreatePaymentIntent(_ context.Context, amount float64, currency, receipt string) (*models.PaymentIntent, error) {
	g.calls = append(g.calls, models.PaymentIntentRequest{Amount: amount, Currency: currency, OrderID: receipt})
	if g.err != nil {
		return nil, g.err
	}
	id := g.intentID
	if id == "" {
		id = "order_test123"
	}
	return &models.PaymentIntent{
		ID:        id,
		Receipt:   receipt,
		CreatedAt: 1700000000,
		Amount:    payment.MinorUnits(amount),
		Currency:  currency,
	}, nil
}

type fakeNotifier struct {
	mu         sync.Mutex
	registered []models.User
	placed     []models.Order
}

func (n *fakeNotifier) NotifyRegistered(user models.User) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.registered = append(n.registered, user)
}

func (n *fakeNotifier) NotifyOrderPlaced(_ models.User, order models.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.placed = append(n.placed, order)
}

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func sampleOrderInput() models.OrderInput {
	return models.OrderInput{
		OrderItems: []models.OrderItem{
			{ProductID: "p1", Name: "Airpods", Price: 89.99, Quantity: 2, Image: "/images/airpods.jpg"},
		},
		ShippingAddress: models.ShippingAddress{Address: "1 Main St", City: "Pune", PostalCode: "411001", Country: "India"},
		PaymentMethod:   "Razorpay",
		ItemsPrice:      179.98,
		TaxPrice:        27,
		ShippingPrice:   0,
		TotalPrice:      206.98,
	}
}
