// Package provider talks to the payment provider's transaction query API.
// It holds no state beyond its credentials; every call is a single
// request/response.
package provider

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// CodeSuccess is the query-level status code for a successful lookup.
	CodeSuccess = "00"
	// PaymentApproved is the payment-level status of a settled transaction.
	PaymentApproved = "APPROVED"

	transactionListPath = "/api/payment-gateway/v1/payments/transaction-list-2"
	reqTimeLayout       = "20060102150405"
	maxResponseBytes    = 1 << 20
)

// ErrUnavailable marks failures where the provider could not be reached or
// answered with something we cannot interpret.
var ErrUnavailable = errors.New("provider unavailable")

type Transaction struct {
	TranID        string          `json:"transaction_id"`
	PaymentStatus string          `json:"payment_status"`
	Amount        decimal.Decimal `json:"original_amount"`
	Currency      string          `json:"original_currency"`
	PaymentType   string          `json:"payment_type,omitempty"`
	Date          string          `json:"transaction_date,omitempty"`
}

type Status struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CheckResult struct {
	Status Status        `json:"status"`
	Data   []Transaction `json:"data"`
}

// OK reports whether the query itself succeeded. It says nothing about the
// payments returned.
func (r *CheckResult) OK() bool {
	return r.Status.Code == CodeSuccess
}

// Approved returns the first approved entry, if any.
func (r *CheckResult) Approved() (*Transaction, bool) {
	for i := range r.Data {
		if r.Data[i].PaymentStatus == PaymentApproved {
			return &r.Data[i], true
		}
	}

	return nil, false
}

type Client struct {
	baseURL    string
	merchantID string
	apiKey     []byte
	client     *http.Client
	now        func() time.Time
}

func NewClient(baseURL, merchantID, apiKey string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		merchantID: merchantID,
		apiKey:     []byte(apiKey),
		client:     &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

type checkRequest struct {
	ReqTime    string `json:"req_time"`
	MerchantID string `json:"merchant_id"`
	TranID     string `json:"tran_id"`
	Hash       string `json:"hash"`
}

// CheckTransaction lists every provider transaction matching tranID.
func (c *Client) CheckTransaction(ctx context.Context, tranID string) (*CheckResult, error) {
	reqTime := c.now().UTC().Format(reqTimeLayout)

	body, err := json.Marshal(checkRequest{
		ReqTime:    reqTime,
		MerchantID: c.merchantID,
		TranID:     tranID,
		Hash:       c.sign(reqTime, c.merchantID, tranID),
	})
	if err != nil {
		return nil, fmt.Errorf("encoding check request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+transactionListPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: executing request: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: unexpected status code %d", ErrUnavailable, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", ErrUnavailable, err)
	}

	var result CheckResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %w", ErrUnavailable, err)
	}

	if result.Status.Code == "" {
		return nil, fmt.Errorf("%w: response has no status code (http %d)", ErrUnavailable, resp.StatusCode)
	}

	return &result, nil
}

func (c *Client) sign(parts ...string) string {
	mac := hmac.New(sha512.New, c.apiKey)
	for _, p := range parts {
		mac.Write([]byte(p))
	}

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
