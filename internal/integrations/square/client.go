package square

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/sagarmamodia/RemediX/config"
)

// Charge is the provider-side record of a captured payment.
type Charge struct {
	ID     string
	Amount int64
}

// Client is a thin JSON client for the Square Payments API. The http.Client
// timeout bounds every call; the provider retries safely against the same
// idempotency key, this client never retries on its own.
type Client struct {
	baseURL     string
	accessToken string
	currency    string
	httpClient  *http.Client
	log         *logrus.Logger
}

func NewClient(cfg config.SquareConfig, log *logrus.Logger) *Client {
	return &Client{
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		currency:    cfg.Currency,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
	}
}

type amountMoney struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type createPaymentRequest struct {
	SourceID       string      `json:"source_id"`
	IdempotencyKey string      `json:"idempotency_key"`
	AmountMoney    amountMoney `json:"amount_money"`
}

type paymentResult struct {
	Payment struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"payment"`
}

type createRefundRequest struct {
	PaymentID      string      `json:"payment_id"`
	IdempotencyKey string      `json:"idempotency_key"`
	AmountMoney    amountMoney `json:"amount_money"`
}

type refundResult struct {
	Refund struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"refund"`
}

// CreatePayment charges the given source for amount (in cents). The caller
// supplies a fresh idempotency key per logical attempt.
func (c *Client) CreatePayment(ctx context.Context, sourceID string, amount int64, idempotencyKey string) (*Charge, error) {
	body := createPaymentRequest{
		SourceID:       sourceID,
		IdempotencyKey: idempotencyKey,
		AmountMoney:    amountMoney{Amount: amount, Currency: c.currency},
	}

	var result paymentResult
	if err := c.post(ctx, "/v2/payments", body, &result); err != nil {
		return nil, err
	}

	if result.Payment.ID == "" || !isCaptured(result.Payment.Status) {
		c.log.Warnf("Square declined charge: status=%s", result.Payment.Status)
		return nil, ErrChargeDeclined
	}

	return &Charge{ID: result.Payment.ID, Amount: amount}, nil
}

// RefundPayment reverses a captured charge. Used as the compensating action
// when persistence fails after a successful charge.
func (c *Client) RefundPayment(ctx context.Context, paymentID string, amount int64, idempotencyKey string) error {
	body := createRefundRequest{
		PaymentID:      paymentID,
		IdempotencyKey: idempotencyKey,
		AmountMoney:    amountMoney{Amount: amount, Currency: c.currency},
	}

	var result refundResult
	if err := c.post(ctx, "/v2/refunds", body, &result); err != nil {
		return err
	}

	if result.Refund.ID == "" {
		return fmt.Errorf("%w: refund not accepted", ErrUnavailable)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Continue below
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		raw, _ := io.ReadAll(resp.Body)
		c.log.Warnf("Square rejected request: status=%d body=%s", resp.StatusCode, string(raw))
		return ErrChargeDeclined
	default:
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status %d: %s", ErrUnavailable, resp.StatusCode, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrUnavailable, err)
	}
	return nil
}

func isCaptured(status string) bool {
	return status == "COMPLETED" || status == "APPROVED"
}
