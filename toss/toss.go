// Package toss implements a client for the Toss Payments REST API, covering
// the payment confirmation endpoints and the BrandPay authorization and
// payment method endpoints used by the premium store.
package toss

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultAPIURL is the production endpoint of the Toss Payments API.
const DefaultAPIURL = "https://api.tosspayments.com"

// Config holds the credentials and endpoint of the gateway. BrandPay calls
// are authorized with their own secret key, separate from the one used for
// plain payment confirmations.
type Config struct {
	APIURL            string
	SecretKey         string
	BrandPaySecretKey string
}

// Client wraps the Toss Payments HTTP API.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a new Toss client with the given configuration.
func NewClient(config *Config) *Client {
	if config.APIURL == "" {
		config.APIURL = DefaultAPIURL
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// basicAuth encodes a gateway secret key for the Authorization header. Toss
// uses the secret key as the username with an empty password.
func basicAuth(secretKey string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(secretKey+":"))
}

// request performs a JSON request against the gateway. If bearer is not
// empty it is used as a Bearer token, otherwise the request is authorized
// with the given secret key. Gateway-reported failures are returned as an
// *APIError carrying the HTTP status and the gateway error code and message.
func (c *Client) request(ctx context.Context, method, path string, body any, secretKey, bearer string) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.config.APIURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	} else {
		req.Header.Set("Authorization", basicAuth(secretKey))
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		// the gateway reports errors as {"code": "...", "message": "..."}
		if err := json.Unmarshal(data, apiErr); err != nil {
			apiErr.Message = string(data)
		}
		return nil, apiErr
	}
	return data, nil
}
