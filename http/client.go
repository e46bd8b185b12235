package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mark3labs/solix"
	"github.com/mark3labs/solix/retry"
)

// Client calls a remote solix server. Transport failures and gateway errors
// (502, 503, 504) are retried according to the client's retry policy; every
// other failure is returned as is.
type Client struct {
	baseURL    string
	httpClient *http.Client
	policy     retry.Policy
}

// ClientOption configures a Client.
type ClientOption func(*Client) error

// NewClient creates a client for the server at baseURL (e.g., "http://localhost:8080").
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		policy:     retry.DefaultPolicy,
	}

	for _, opt := range opts {
		if err := opt(client); err != nil {
			return nil, err
		}
	}

	return client, nil
}

// WithHTTPClient sets a custom underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) error {
		if httpClient == nil {
			return errors.New("http client cannot be nil")
		}
		c.httpClient = httpClient
		return nil
	}
}

// WithRetryPolicy replaces the default retry policy.
func WithRetryPolicy(policy retry.Policy) ClientOption {
	return func(c *Client) error {
		c.policy = policy
		return nil
	}
}

// APIError is a failure reported by the server.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Message is the envelope's error text, or the raw body when the
	// response was not an envelope.
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("solix: %d: %s", e.StatusCode, e.Message)
}

// Temporary reports whether the status is a gateway failure worth retrying.
func (e *APIError) Temporary() bool {
	switch e.StatusCode {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func call[Resp any](ctx context.Context, c *Client, method, path string, req any) (Resp, error) {
	var payload []byte
	if req != nil {
		var err error
		payload, err = json.Marshal(req)
		if err != nil {
			var zero Resp
			return zero, fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	return retry.Do(ctx, c.policy, func(ctx context.Context, _ int) (Resp, error) {
		var zero Resp
		httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return zero, retry.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		if payload != nil {
			httpReq.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return zero, fmt.Errorf("request failed: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return zero, fmt.Errorf("failed to read response: %w", err)
		}

		var env solix.Envelope[Resp]
		if err := json.Unmarshal(body, &env); err != nil || (!env.Success && env.Error == "") {
			apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
			if apiErr.Temporary() {
				return zero, apiErr
			}
			return zero, retry.Permanent(apiErr)
		}
		if !env.Success {
			apiErr := &APIError{StatusCode: resp.StatusCode, Message: env.Error}
			if apiErr.Temporary() {
				return zero, apiErr
			}
			return zero, retry.Permanent(apiErr)
		}
		return env.Data, nil
	})
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) error {
	_, err := retry.Do(ctx, c.policy, func(ctx context.Context, _ int) (struct{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
		if err != nil {
			return struct{}{}, retry.Permanent(err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return struct{}{}, fmt.Errorf("request failed: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()
		var health solix.HealthResponse
		if resp.StatusCode != http.StatusOK {
			apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
			if apiErr.Temporary() {
				return struct{}{}, apiErr
			}
			return struct{}{}, retry.Permanent(apiErr)
		}
		if err := json.NewDecoder(resp.Body).Decode(&health); err != nil || health.Status != "ok" {
			return struct{}{}, retry.Permanent(&APIError{StatusCode: resp.StatusCode, Message: "unhealthy"})
		}
		return struct{}{}, nil
	})
	return err
}

// GenerateKeypair calls POST /keypair.
func (c *Client) GenerateKeypair(ctx context.Context) (solix.KeypairResponse, error) {
	return call[solix.KeypairResponse](ctx, c, http.MethodPost, "/keypair", nil)
}

// GenerateMnemonicKeypair calls POST /keypair/mnemonic.
func (c *Client) GenerateMnemonicKeypair(ctx context.Context) (solix.MnemonicKeypairResponse, error) {
	return call[solix.MnemonicKeypairResponse](ctx, c, http.MethodPost, "/keypair/mnemonic", nil)
}

// RecoverKeypair calls POST /keypair/recover.
func (c *Client) RecoverKeypair(ctx context.Context, req solix.RecoverKeypairRequest) (solix.KeypairResponse, error) {
	return call[solix.KeypairResponse](ctx, c, http.MethodPost, "/keypair/recover", req)
}

// SignMessage calls POST /message/sign.
func (c *Client) SignMessage(ctx context.Context, req solix.SignMessageRequest) (solix.SignMessageResponse, error) {
	return call[solix.SignMessageResponse](ctx, c, http.MethodPost, "/message/sign", req)
}

// VerifyMessage calls POST /message/verify.
func (c *Client) VerifyMessage(ctx context.Context, req solix.VerifyMessageRequest) (solix.VerifyMessageResponse, error) {
	return call[solix.VerifyMessageResponse](ctx, c, http.MethodPost, "/message/verify", req)
}

// SendSol calls POST /send/sol.
func (c *Client) SendSol(ctx context.Context, req solix.SendSolRequest) (solix.InstructionResponse, error) {
	return call[solix.InstructionResponse](ctx, c, http.MethodPost, "/send/sol", req)
}

// SendToken calls POST /send/token.
func (c *Client) SendToken(ctx context.Context, req solix.SendTokenRequest) (solix.InstructionResponse, error) {
	return call[solix.InstructionResponse](ctx, c, http.MethodPost, "/send/token", req)
}

// CreateToken calls POST /token/create.
func (c *Client) CreateToken(ctx context.Context, req solix.CreateTokenRequest) (solix.InstructionResponse, error) {
	return call[solix.InstructionResponse](ctx, c, http.MethodPost, "/token/create", req)
}

// MintToken calls POST /token/mint.
func (c *Client) MintToken(ctx context.Context, req solix.MintTokenRequest) (solix.InstructionResponse, error) {
	return call[solix.InstructionResponse](ctx, c, http.MethodPost, "/token/mint", req)
}

// AssociatedAccount calls POST /token/associated-account.
func (c *Client) AssociatedAccount(ctx context.Context, req solix.AssociatedAccountRequest) (solix.AssociatedAccountResponse, error) {
	return call[solix.AssociatedAccountResponse](ctx, c, http.MethodPost, "/token/associated-account", req)
}
