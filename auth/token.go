package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/enzo-prism/analytics/config"
)

const analyticsReadonlyScope = "https://www.googleapis.com/auth/analytics.readonly"

var (
	ErrMissingCredentials = errors.New("google service account credentials are not configured")
)

// Provider exchanges a service-account key for short-lived bearer tokens
// via the JWT bearer grant. Tokens are not cached; each call performs a
// fresh exchange.
type Provider struct {
	email      string
	privateKey string
	tokenURL   string
	httpClient *http.Client
}

// NewProvider creates a credential provider from the Google configuration.
func NewProvider(cfg config.GoogleConfig) *Provider {
	return &Provider{
		email:      cfg.ServiceAccountEmail,
		privateKey: cfg.PrivateKey,
		tokenURL:   cfg.TokenURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// AccessToken obtains a bearer token for the Analytics read-only scope.
// There is no retry; a failed exchange is fatal for the calling request.
func (p *Provider) AccessToken(ctx context.Context) (string, error) {
	if p.email == "" || p.privateKey == "" {
		return "", ErrMissingCredentials
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(normalizePrivateKey(p.privateKey)))
	if err != nil {
		return "", fmt.Errorf("parsing service account key: %w", err)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   p.email,
		"scope": analyticsReadonlyScope,
		"aud":   p.tokenURL,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}

	assertion, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("signing token assertion: %w", err)
	}

	form := url.Values{
		"grant_type": {"urn:ietf:params:oauth:grant-type:jwt-bearer"},
		"assertion":  {assertion},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error().
			Int("status", resp.StatusCode).
			Str("body", string(body)).
			Msg("Token exchange refused")
		return "", fmt.Errorf("token exchange failed: %d %s: %s", resp.StatusCode, resp.Status, string(body))
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decoding token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", errors.New("token response contained no access token")
	}

	return payload.AccessToken, nil
}

// Configured reports whether both required secrets are present.
func (p *Provider) Configured() bool {
	return p.email != "" && p.privateKey != ""
}

// normalizePrivateKey converts literal \n escape sequences, as they appear
// in env vars and .env files, into real newlines.
func normalizePrivateKey(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}
