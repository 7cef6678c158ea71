package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/rogerio-castellano/sourcing-desk/internal/models"
)

const (
	DefaultTimeout = 5 * time.Second

	dashboardPath = "/api/dashboard"
	maxBodyBytes  = 4 << 20
)

type Config struct {
	BaseURL string
	Timeout time.Duration
	// RatePerSecond caps outgoing requests. Zero means unlimited.
	RatePerSecond float64
	Burst         int
}

// Client talks to the dashboard service over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("base url is required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", cfg.BaseURL, err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}

	return &Client{
		baseURL: base,
		client:  &http.Client{Timeout: timeout},
		limiter: limiter,
	}, nil
}

type confirmRequest struct {
	OfferID string `json:"offerId"`
}

type errorBody struct {
	Message string `json:"message"`
}

// FetchSnapshot loads the dashboard. A 2xx answer whose products or inbox are
// missing or not arrays yields empty lists rather than an error.
func (c *Client) FetchSnapshot(ctx context.Context) (models.DashboardSnapshot, error) {
	const op = "fetch dashboard"

	body, err := c.do(ctx, op, http.MethodGet, dashboardPath, nil)
	if err != nil {
		return models.DashboardSnapshot{}, err
	}
	return DecodeSnapshot(body), nil
}

// ConfirmOffer records offerID as the product's chosen supplier.
func (c *Client) ConfirmOffer(ctx context.Context, productID, offerID string) error {
	const op = "confirm offer"

	payload, err := json.Marshal(confirmRequest{OfferID: offerID})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	path := "/api/inventory/" + url.PathEscape(productID) + "/confirm"
	_, err = c.do(ctx, op, http.MethodPost, path, payload)
	return err
}

// PublishSnapshot replaces the service's dashboard with snap.
func (c *Client) PublishSnapshot(ctx context.Context, snap models.DashboardSnapshot) error {
	const op = "publish dashboard"

	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal dashboard: %w", err)
	}
	_, err = c.do(ctx, op, http.MethodPut, dashboardPath, payload)
	return err
}

func (c *Client) do(ctx context.Context, op, method, path string, payload []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &NetworkError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(body, &eb)
		return nil, &NetworkError{Op: op, StatusCode: resp.StatusCode, Message: strings.TrimSpace(eb.Message)}
	}
	return body, nil
}

// DecodeSnapshot reads a dashboard document leniently: each list is decoded on
// its own and anything that is not a well formed array becomes empty.
func DecodeSnapshot(data []byte) models.DashboardSnapshot {
	snap := models.DashboardSnapshot{
		Products: []models.Product{},
		Inbox:    []models.InboxThread{},
	}

	var doc struct {
		Products json.RawMessage `json:"products"`
		Inbox    json.RawMessage `json:"inbox"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("dashboard response is not a JSON object: %v", err)
		return snap
	}

	var products []models.Product
	if isArray(doc.Products) {
		if err := json.Unmarshal(doc.Products, &products); err != nil {
			log.Printf("ignoring malformed products: %v", err)
		} else if products != nil {
			snap.Products = products
		}
	}

	var inbox []models.InboxThread
	if isArray(doc.Inbox) {
		if err := json.Unmarshal(doc.Inbox, &inbox); err != nil {
			log.Printf("ignoring malformed inbox: %v", err)
		} else if inbox != nil {
			snap.Inbox = inbox
		}
	}
	return snap
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
