package toss

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Confirm confirms a BrandPay charge for the given payment key. The
// returned payload is the gateway's raw confirmation object, stored on the
// order as-is.
func (c *Client) Confirm(ctx context.Context, paymentKey, orderID string, amount int64) (map[string]any, error) {
	body := map[string]any{
		"orderId": orderID,
		"amount":  amount,
	}
	path := fmt.Sprintf("/v1/payments/%s", paymentKey)
	data, err := c.request(ctx, http.MethodPost, path, body, c.config.SecretKey, "")
	if err != nil {
		return nil, err
	}
	payment := map[string]any{}
	if err := json.Unmarshal(data, &payment); err != nil {
		return nil, fmt.Errorf("failed to decode confirmation response: %w", err)
	}
	return payment, nil
}

// ConfirmVoucher confirms a gift certificate (voucher) charge through the
// general confirmation endpoint, used by the gift purchase path.
func (c *Client) ConfirmVoucher(ctx context.Context, paymentKey, orderID string, amount int64) (map[string]any, error) {
	body := map[string]any{
		"paymentKey": paymentKey,
		"orderId":    orderID,
		"amount":     amount,
	}
	data, err := c.request(ctx, http.MethodPost, "/v1/payments/confirm", body, c.config.SecretKey, "")
	if err != nil {
		return nil, err
	}
	payment := map[string]any{}
	if err := json.Unmarshal(data, &payment); err != nil {
		return nil, fmt.Errorf("failed to decode confirmation response: %w", err)
	}
	return payment, nil
}
