// Package payment talks to the Razorpay orders API and verifies its callbacks.
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Kariqs/kartdaily-api/apperrors"
	"github.com/Kariqs/kartdaily-api/models"
	"github.com/go-resty/resty/v2"
)

const DefaultBaseURL = "https://api.razorpay.com"

// Config is built once at startup and handed to NewRazorpay.
type Config struct {
	KeyID     string
	KeySecret string
	BaseURL   string
	Timeout   time.Duration
}

type orderRequest struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	PaymentCapture int    `json:"payment_capture"`
}

type orderResponse struct {
	ID        string `json:"id"`
	Receipt   string `json:"receipt"`
	CreatedAt int64  `json:"created_at"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}

type Razorpay struct {
	client *resty.Client
}

func NewRazorpay(cfg Config) *Razorpay {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetBasicAuth(cfg.KeyID, cfg.KeySecret).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return &Razorpay{client: client}
}

// CreatePaymentIntent opens a gateway order for amountRequested major units,
// converted with MinorUnits. Rejections come back as a gateway error holding
// the provider's status code and body; nothing is retried.
func (r *Razorpay) CreatePaymentIntent(ctx context.Context, amountRequested float64, currency, receipt string) (*models.PaymentIntent, error) {
	body := orderRequest{
		Amount:         MinorUnits(amountRequested),
		Currency:       currency,
		Receipt:        receipt,
		PaymentCapture: 1,
	}

	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/v1/orders")
	if err != nil {
		return nil, apperrors.Gateway(0, nil, fmt.Errorf("razorpay request failed: %w", err))
	}

	if resp.IsError() {
		return nil, apperrors.Gateway(resp.StatusCode(), resp.Body(),
			fmt.Errorf("razorpay order request failed with status %d", resp.StatusCode()))
	}

	var order orderResponse
	if err := json.Unmarshal(resp.Body(), &order); err != nil {
		return nil, apperrors.Gateway(0, nil, fmt.Errorf("failed to parse razorpay response: %w", err))
	}

	return &models.PaymentIntent{
		ID:        order.ID,
		Receipt:   order.Receipt,
		CreatedAt: order.CreatedAt,
		Amount:    order.Amount,
		Currency:  order.Currency,
	}, nil
}
