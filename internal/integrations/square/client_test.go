package square

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarmamodia/RemediX/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log := logrus.New()
	return NewClient(config.SquareConfig{
		BaseURL:     server.URL,
		AccessToken: "test-token",
		Currency:    "USD",
		Timeout:     2 * time.Second,
	}, log)
}

func TestCreatePaymentCaptured(t *testing.T) {
	var got createPaymentRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/payments", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"payment": map[string]string{"id": "pay_123", "status": "COMPLETED"},
		})
	})

	charge, err := client.CreatePayment(context.Background(), "src_1", 5000, "idem-1")
	require.NoError(t, err)
	assert.Equal(t, "pay_123", charge.ID)
	assert.Equal(t, int64(5000), charge.Amount)
	assert.Equal(t, "idem-1", got.IdempotencyKey)
	assert.Equal(t, int64(5000), got.AmountMoney.Amount)
	assert.Equal(t, "USD", got.AmountMoney.Currency)
}

func TestCreatePaymentDeclinedStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"payment": map[string]string{"id": "pay_456", "status": "FAILED"},
		})
	})

	_, err := client.CreatePayment(context.Background(), "src_1", 5000, "idem-2")
	assert.ErrorIs(t, err, ErrChargeDeclined)
}

func TestCreatePaymentRejectedRequest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":[{"code":"CARD_DECLINED"}]}`, http.StatusPaymentRequired)
	})

	_, err := client.CreatePayment(context.Background(), "src_1", 5000, "idem-3")
	assert.ErrorIs(t, err, ErrChargeDeclined)
}

func TestCreatePaymentServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.CreatePayment(context.Background(), "src_1", 5000, "idem-4")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCreatePaymentTimeoutIsUnconfirmed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})
	client.httpClient.Timeout = 50 * time.Millisecond

	_, err := client.CreatePayment(context.Background(), "src_1", 5000, "idem-5")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRefundPayment(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/refunds", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"refund": map[string]string{"id": "ref_1", "status": "PENDING"},
		})
	})

	err := client.RefundPayment(context.Background(), "pay_123", 5000, "idem-6")
	assert.NoError(t, err)
}
