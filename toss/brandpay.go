package toss

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	brandPayTokenPath   = "/v1/brandpay/authorizations/access-token"
	brandPayMethodsPath = "/v1/brandpay/payments/methods"
)

// ExchangeAuthCode exchanges a BrandPay authorization code for an access
// and refresh token pair bound to the given customer key.
func (c *Client) ExchangeAuthCode(ctx context.Context, code, customerKey string) (*Tokens, error) {
	body := map[string]string{
		"grantType":   "AuthorizationCode",
		"code":        code,
		"customerKey": customerKey,
	}
	data, err := c.request(ctx, http.MethodPost, brandPayTokenPath, body, c.config.BrandPaySecretKey, "")
	if err != nil {
		return nil, err
	}
	tokens := &Tokens{}
	if err := json.Unmarshal(data, tokens); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	return tokens, nil
}

// RefreshTokens exchanges a refresh token for a new token pair. It is
// called at most once per payment methods fetch, when the gateway signals
// an expired access token.
func (c *Client) RefreshTokens(ctx context.Context, refreshToken, customerKey string) (*Tokens, error) {
	body := map[string]string{
		"grantType":    "RefreshToken",
		"refreshToken": refreshToken,
		"customerKey":  customerKey,
	}
	data, err := c.request(ctx, http.MethodPost, brandPayTokenPath, body, c.config.BrandPaySecretKey, "")
	if err != nil {
		return nil, err
	}
	tokens := &Tokens{}
	if err := json.Unmarshal(data, tokens); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	return tokens, nil
}

// PaymentMethods fetches the stored payment methods of the user owning the
// given access token.
func (c *Client) PaymentMethods(ctx context.Context, accessToken string) (*Methods, error) {
	data, err := c.request(ctx, http.MethodGet, brandPayMethodsPath, nil, "", accessToken)
	if err != nil {
		return nil, err
	}
	methods := &Methods{}
	if err := json.Unmarshal(data, methods); err != nil {
		return nil, fmt.Errorf("failed to decode methods response: %w", err)
	}
	return methods, nil
}
