package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/evzhukov/lifevault/internal/common"
	"github.com/evzhukov/lifevault/internal/logging"
	"github.com/evzhukov/lifevault/internal/models"
	"github.com/sethvargo/go-retry"
	"github.com/sony/gobreaker"
)

// TokenSource supplies the current access token for outbound requests.
// An empty token means the request goes out unauthenticated.
type TokenSource func(ctx context.Context) (string, error)

// HTTPClient implements Client over JSON-POST endpoints. Transient failures
// are retried with exponential backoff; consecutive failures trip a circuit
// breaker so a dead backend fails fast instead of stalling every caller.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	token   TokenSource
	breaker *gobreaker.CircuitBreaker
	log     logging.Logger
}

// NewHTTPClient builds a client for the backend at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration, token TokenSource, log logging.Logger) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		token:   token,
		log:     log,
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "lifevault-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn(context.Background(), "remote breaker state changed",
				"breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return c
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.post(ctx, "/api/ping", struct{}{}, nil)
}

func (c *HTTPClient) CreateVault(ctx context.Context, name string) (*VaultInfo, error) {
	in := struct {
		Name string `json:"name"`
	}{Name: name}
	out := &VaultInfo{}
	if err := c.post(ctx, "/api/vaults", in, out); err != nil {
		return nil, fmt.Errorf("create vault: %w", err)
	}
	return out, nil
}

func (c *HTTPClient) CreateEntity(ctx context.Context, vaultID string, kind models.Kind, body json.RawMessage) (*EntityInfo, error) {
	in := struct {
		VaultID string          `json:"vaultId"`
		Kind    models.Kind     `json:"kind"`
		Body    json.RawMessage `json:"body"`
	}{VaultID: vaultID, Kind: kind, Body: body}
	out := &EntityInfo{}
	if err := c.post(ctx, "/api/entities", in, out); err != nil {
		return nil, fmt.Errorf("create entity: %w", err)
	}
	return out, nil
}

func (c *HTTPClient) UpsertRecord(ctx context.Context, profileID string, rec models.LifeVaultRecord) (*UpsertResult, error) {
	in := struct {
		ProfileID string                 `json:"profileId"`
		Record    models.LifeVaultRecord `json:"record"`
	}{ProfileID: profileID, Record: rec}
	out := &UpsertResult{}
	if err := c.post(ctx, "/api/records/upsert", in, out); err != nil {
		return nil, fmt.Errorf("upsert record: %w", err)
	}
	return out, nil
}

func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

// post sends one JSON request with retry and breaker protection. out may be
// nil when the response body does not matter.
func (c *HTTPClient) post(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	backoff := retry.WithMaxRetries(3, retry.NewExponential(250*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		_, err := c.breaker.Execute(func() (any, error) {
			return nil, c.doOnce(ctx, path, payload, out)
		})
		if err == nil {
			return nil
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %w", common.ErrorUnavailable, err)
		}
		if errors.Is(err, common.ErrorUnavailable) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *HTTPClient) doOnce(ctx context.Context, path string, payload []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := c.token(ctx)
	if err != nil {
		return fmt.Errorf("reading token: %w", err)
	}
	if token != "" {
		req.Header.Set(common.AccessTokenHeaderName, token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrorUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return common.ErrorUnauthorized
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %s", common.ErrorUnavailable, resp.Status)
	case resp.StatusCode >= 400:
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request failed: %s: %s", resp.Status, string(b))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
