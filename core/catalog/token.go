package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"GenrePulse/logger"

	"github.com/go-resty/resty/v2"
)

// tokenSafetyMargin makes cached tokens expire this long before the catalog says they do.
const tokenSafetyMargin = 5 * time.Minute

// credential is the single cache entry. nil means absent.
type credential struct {
	token     string
	expiresAt time.Time
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // seconds
}

// TokenManager obtains client-credentials bearer tokens and caches them until shortly before expiry.
type TokenManager struct {
	mu           sync.Mutex
	http         *resty.Client
	authURL      string
	clientID     string
	clientSecret string
	now          func() time.Time
	cached       *credential
}

// NewTokenManager creates a token manager. httpClient may be nil.
func NewTokenManager(authURL, clientID, clientSecret string, httpClient *resty.Client) *TokenManager {
	if httpClient == nil {
		httpClient = resty.New().SetTimeout(10 * time.Second)
	}
	return &TokenManager{
		http:         httpClient,
		authURL:      authURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		now:          time.Now,
	}
}

// SetClock replaces the time source.
func (m *TokenManager) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Token returns a valid bearer token, exchanging credentials when the cache is empty or stale.
func (m *TokenManager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c := m.cached; c != nil && m.now().Before(c.expiresAt) {
		return c.token, nil
	}
	m.cached = nil

	cred, err := m.exchange(ctx)
	if err != nil {
		logger.Error("[TokenManager] credential exchange failed", logger.ErrorField(err))
		return "", err
	}
	m.cached = cred
	logger.Debug("[TokenManager] obtained new token", logger.Any("expiresAt", cred.expiresAt))
	return cred.token, nil
}

// Invalidate drops the cached token so the next Token call performs a fresh exchange.
func (m *TokenManager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cached = nil
}

func (m *TokenManager) exchange(ctx context.Context) (*credential, error) {
	if m.clientID == "" || m.clientSecret == "" {
		return nil, &AuthError{Reason: "catalog credentials are missing, set CATALOG_CLIENT_ID and CATALOG_CLIENT_SECRET"}
	}

	resp, err := m.http.R().
		SetContext(ctx).
		SetBasicAuth(m.clientID, m.clientSecret).
		SetFormData(map[string]string{"grant_type": "client_credentials"}).
		Post(m.authURL)
	if err != nil {
		return nil, &AuthError{Reason: "token request failed", Err: &NetworkError{Endpoint: m.authURL, Err: err}}
	}
	if !resp.IsSuccess() {
		return nil, &AuthError{
			Reason: fmt.Sprintf("token endpoint returned %d", resp.StatusCode()),
			Err:    &APIError{Status: resp.StatusCode(), Body: resp.String()},
		}
	}

	var body tokenResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, &AuthError{Reason: "malformed token response", Err: &DecodeError{Endpoint: m.authURL, Err: err}}
	}
	if body.AccessToken == "" {
		return nil, &AuthError{Reason: "no access token received"}
	}

	lifetime := time.Duration(body.ExpiresIn) * time.Second
	return &credential{
		token:     body.AccessToken,
		expiresAt: m.now().Add(lifetime - tokenSafetyMargin),
	}, nil
}
