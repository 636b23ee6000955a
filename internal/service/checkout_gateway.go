package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tec_learning_backend/internal/config"
	"tec_learning_backend/internal/util"
)

type CheckoutSessionRequest struct {
	Amount     float64           `json:"amount"`
	Currency   string            `json:"currency"`
	SuccessURL string            `json:"success_url"`
	CancelURL  string            `json:"cancel_url"`
	WebhookURL string            `json:"webhook_url,omitempty"`
	Metadata   map[string]string `json:"metadata"`
}

type CheckoutSession struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// CheckoutGateway 第三方收银台
type CheckoutGateway interface {
	CreateSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSession, error)
}

// HTTPCheckoutGateway 以 JSON 调用收银台的 /checkout/sessions 接口
type HTTPCheckoutGateway struct {
	config config.CheckoutConfig
	client *http.Client
}

func NewHTTPCheckoutGateway(cfg config.CheckoutConfig) *HTTPCheckoutGateway {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPCheckoutGateway{
		config: cfg,
		client: &http.Client{Timeout: timeout},
	}
}

func (g *HTTPCheckoutGateway) CreateSession(ctx context.Context, reqBody CheckoutSessionRequest) (*CheckoutSession, error) {
	if g.config.APIKey == "" || g.config.BaseURL == "" {
		return nil, util.ErrPaymentNotConfigured
	}
	if reqBody.Currency == "" {
		reqBody.Currency = g.config.Currency
	}
	if reqBody.WebhookURL == "" {
		reqBody.WebhookURL = g.config.WebhookURL
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	endpoint := strings.TrimRight(g.config.BaseURL, "/") + "/checkout/sessions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.config.APIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("checkout API error (status %d): %s", resp.StatusCode, string(body))
	}

	var session CheckoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, err
	}
	if session.SessionID == "" || session.URL == "" {
		return nil, fmt.Errorf("checkout API returned an incomplete session")
	}
	return &session, nil
}
