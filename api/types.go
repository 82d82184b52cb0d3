package api

import (
	"time"

	"github.com/guildbot/premium-backend/db"
	"github.com/guildbot/premium-backend/premium"
)

// OrderRequest is the body to create a new order. GuildID carries the
// order target: the guild (or user) the entitlement will apply to.
type OrderRequest struct {
	ItemID  string `json:"itemId"`
	GuildID string `json:"guildId"`
}

// OrderCreatedResponse is the response to a successful order creation.
type OrderCreatedResponse struct {
	PaymentID string `json:"paymentId"`
}

// ConfirmRequest is the body to confirm a payment, direct or gift.
type ConfirmRequest struct {
	OrderID    string `json:"orderId"`
	Amount     int64  `json:"amount"`
	PaymentKey string `json:"paymentKey"`
	Phone      string `json:"phone"`
}

// OrderInfo is the checkout view of an order: resolved target metadata
// plus the fields the payment widget needs.
type OrderInfo struct {
	Metadata *premium.Metadata `json:"metadata"`
	Name     string            `json:"name"`
	ID       string            `json:"id"`
	Amount   int64             `json:"amount"`
}

// OrderMetadata is the full view of an order: resolved target metadata,
// the entitlement expiry and every stored order field. NextPayDate is nil
// when the target has no entitlement yet.
type OrderMetadata struct {
	Metadata    *premium.Metadata `json:"metadata"`
	NextPayDate *time.Time        `json:"nextPayDate,omitempty"`
	*db.Order
}
