package models

// PaymentIntentRequest is the body of POST /api/orders/razorpay.
type PaymentIntentRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	OrderID  string  `json:"orderId"`
}

// PaymentIntent mirrors the gateway order; it is never stored locally.
type PaymentIntent struct {
	ID        string `json:"id"`
	Receipt   string `json:"receipt"`
	CreatedAt int64  `json:"created_at"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}
