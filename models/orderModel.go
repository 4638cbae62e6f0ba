package models

import "time"

type OrderStatus string

const (
	OrderCreated         OrderStatus = "Created"
	OrderAwaitingPayment OrderStatus = "AwaitingPayment"
	OrderPaid            OrderStatus = "Paid"
	OrderDelivered       OrderStatus = "Delivered"
)

type OrderItem struct {
	ProductID string  `json:"product" bson:"product"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"qty" bson:"qty"`
	Image     string  `json:"image" bson:"image"`
}

type ShippingAddress struct {
	Address    string `json:"address" bson:"address"`
	City       string `json:"city" bson:"city"`
	PostalCode string `json:"postalCode" bson:"postalCode"`
	Country    string `json:"country" bson:"country"`
}

// PaymentResult is what the checkout widget hands back after a successful charge.
type PaymentResult struct {
	PaymentID string `json:"razorpay_payment_id" bson:"razorpay_payment_id"`
	OrderID   string `json:"razorpay_order_id" bson:"razorpay_order_id"`
	Signature string `json:"razorpay_signature" bson:"razorpay_signature"`
}

// OrderOwner is the projection of a user attached to order reads.
type OrderOwner struct {
	ID    string `json:"_id" bson:"_id"`
	Name  string `json:"name" bson:"name"`
	Email string `json:"email,omitempty" bson:"email,omitempty"`
}

type Order struct {
	ID              string          `json:"_id" bson:"_id"`
	UserID          string          `json:"user" bson:"user"`
	Owner           *OrderOwner     `json:"owner,omitempty" bson:"owner,omitempty"`
	OrderItems      []OrderItem     `json:"orderItems" bson:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress" bson:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod" bson:"paymentMethod"`
	ItemsPrice      float64         `json:"itemsPrice" bson:"itemsPrice"`
	TaxPrice        float64         `json:"taxPrice" bson:"taxPrice"`
	ShippingPrice   float64         `json:"shippingPrice" bson:"shippingPrice"`
	TotalPrice      float64         `json:"totalPrice" bson:"totalPrice"`
	PaymentIntentID string          `json:"paymentIntentId,omitempty" bson:"paymentIntentId,omitempty"`
	IsPaid          bool            `json:"isPaid" bson:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	PaymentResult   *PaymentResult  `json:"paymentResult,omitempty" bson:"paymentResult,omitempty"`
	IsDelivered     bool            `json:"isDelivered" bson:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty" bson:"deliveredAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// Status derives the workflow state from the stored flags. Delivery does not
// require payment, so a delivered order reports Delivered whether or not it was paid.
func (o *Order) Status() OrderStatus {
	switch {
	case o.IsDelivered:
		return OrderDelivered
	case o.IsPaid:
		return OrderPaid
	case o.PaymentIntentID != "":
		return OrderAwaitingPayment
	default:
		return OrderCreated
	}
}

// OrderInput is the body of POST /api/orders. Prices are trusted as sent.
type OrderInput struct {
	OrderItems      []OrderItem     `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	ItemsPrice      float64         `json:"itemsPrice"`
	TaxPrice        float64         `json:"taxPrice"`
	ShippingPrice   float64         `json:"shippingPrice"`
	TotalPrice      float64         `json:"totalPrice"`
}
