package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Kariqs/kartdaily-api/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway echoes the requested order back the way the orders API does.
func fakeGateway(t *testing.T, captured *orderRequest) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)

		key, secret, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "rzp_test_key", key)
		assert.Equal(t, "rzp_test_secret", secret)

		var req orderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if captured != nil {
			*captured = req
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":         "order_EKwxwAgItmmXdp",
			"entity":     "order",
			"amount":     req.Amount,
			"currency":   req.Currency,
			"receipt":    req.Receipt,
			"status":     "created",
			"created_at": 1582628071,
		})
	}))
}

func newTestClient(url string) *Razorpay {
	return NewRazorpay(Config{KeyID: "rzp_test_key", KeySecret: "rzp_test_secret", BaseURL: url, Timeout: 5 * time.Second})
}

func TestCreatePaymentIntent_CapsAmount(t *testing.T) {
	var captured orderRequest
	server := fakeGateway(t, &captured)
	defer server.Close()

	intent, err := newTestClient(server.URL).CreatePaymentIntent(context.Background(), 50000, "INR", "order123")
	require.NoError(t, err)

	assert.Equal(t, int64(4000000), captured.Amount)
	assert.Equal(t, 1, captured.PaymentCapture)
	assert.Equal(t, int64(4000000), intent.Amount)
	assert.Equal(t, "order123", intent.Receipt)
	assert.Equal(t, "INR", intent.Currency)
	assert.Equal(t, "order_EKwxwAgItmmXdp", intent.ID)
	assert.Equal(t, int64(1582628071), intent.CreatedAt)
}

func TestCreatePaymentIntent_SmallAmount(t *testing.T) {
	server := fakeGateway(t, nil)
	defer server.Close()

	intent, err := newTestClient(server.URL).CreatePaymentIntent(context.Background(), 100, "INR", "order124")
	require.NoError(t, err)
	assert.Equal(t, int64(10000), intent.Amount)
}

func TestCreatePaymentIntent_GatewayErrorPassthrough(t *testing.T) {
	errorBody := `{"error":{"code":"BAD_REQUEST_ERROR","description":"The amount must be atleast INR 1.00","metadata":{}}}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(errorBody))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).CreatePaymentIntent(context.Background(), 0, "INR", "order125")
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindGateway, appErr.Kind)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.JSONEq(t, errorBody, string(appErr.Body))
}

func TestCreatePaymentIntent_TransportError(t *testing.T) {
	server := fakeGateway(t, nil)
	url := server.URL
	server.Close()

	_, err := newTestClient(url).CreatePaymentIntent(context.Background(), 10, "INR", "order126")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindGateway))
	assert.Equal(t, http.StatusBadGateway, apperrors.StatusOf(err))
}
