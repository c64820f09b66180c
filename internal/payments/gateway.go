package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"deskhive/internal/shared/config"

	"github.com/shopspring/decimal"
)

// CheckoutRequest asks the gateway to open a hosted checkout session
type CheckoutRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Reference   string          `json:"reference"`
	Method      string          `json:"method"`
	RedirectURL string          `json:"redirect_url"`
	WebhookURL  string          `json:"webhook_url"`
}

// CheckoutSession is the gateway's handle for a created checkout
type CheckoutSession struct {
	Reference   string `json:"reference"`
	CheckoutURL string `json:"checkout_url"`
}

// Gateway interface for the payment provider (to avoid coupling tests to HTTP)
type Gateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
}

type httpGateway struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewGateway creates an HTTP gateway client from config
func NewGateway(cfg config.GatewayConfig) Gateway {
	return &httpGateway{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (g *httpGateway) CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal checkout request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/checkouts", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build checkout request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("gateway returned %d", resp.StatusCode)
	}

	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("decode checkout session: %w", err)
	}
	return &session, nil
}
