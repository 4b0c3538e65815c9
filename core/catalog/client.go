package catalog

import (
	"context"
	"net/http"
	"time"

	"GenrePulse/config"
	"GenrePulse/logger"

	"github.com/go-resty/resty/v2"
)

const (
	defaultMarket        = "US"
	defaultTrackLimit    = 50
	defaultPlaylistLimit = 20
)

// TokenSource hands out bearer tokens and forgets them on request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Invalidate()
}

// Client 目录API客户端
type Client struct {
	baseURL       string
	http          *resty.Client
	tokens        TokenSource
	defaultMarket string
}

// NewClient creates a catalog client that authenticates through tokens.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL:       baseURL,
		http:          resty.New().SetTimeout(10 * time.Second),
		tokens:        tokens,
		defaultMarket: defaultMarket,
	}
}

// NewClientFromConfig wires a TokenManager and Client from application config.
func NewClientFromConfig(cfg *config.Config) *Client {
	if !cfg.HasCredentials() {
		logger.Warn("catalog credentials missing, requests will fail until CATALOG_CLIENT_ID and CATALOG_CLIENT_SECRET are set")
	}
	tokens := NewTokenManager(cfg.CatalogAuthURL, cfg.CatalogClientID, cfg.CatalogClientSecret,
		resty.New().SetTimeout(cfg.CatalogTimeout))
	c := NewClient(cfg.CatalogBaseURL, tokens)
	c.SetTimeout(cfg.CatalogTimeout)
	if cfg.DefaultMarket != "" {
		c.defaultMarket = cfg.DefaultMarket
	}
	return c
}

// SetTimeout 设置请求超时时间
func (c *Client) SetTimeout(timeout time.Duration) {
	c.http.SetTimeout(timeout)
}

func (c *Client) market(m string) string {
	if m == "" {
		return c.defaultMarket
	}
	return m
}

// Request issues an authenticated GET against endpoint and returns the raw body.
// A 401 invalidates the cached token and the request is retried exactly once.
func (c *Client) Request(ctx context.Context, endpoint string, params map[string]string) ([]byte, error) {
	body, status, err := c.do(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	if status == http.StatusUnauthorized {
		logger.Warn("[Catalog] token rejected, refreshing and retrying once", logger.String("endpoint", endpoint))
		c.tokens.Invalidate()
		body, status, err = c.do(ctx, endpoint, params)
		if err != nil {
			return nil, err
		}
	}

	if status < 200 || status >= 300 {
		logger.Error("[Catalog] request failed",
			logger.String("endpoint", endpoint),
			logger.Int("status", status))
		return nil, &APIError{Status: status, Body: string(body)}
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, endpoint string, params map[string]string) ([]byte, int, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, 0, err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Accept", "application/json").
		SetQueryParams(params).
		Get(c.baseURL + endpoint)
	if err != nil {
		return nil, 0, &NetworkError{Endpoint: endpoint, Err: err}
	}
	return resp.Body(), resp.StatusCode(), nil
}
