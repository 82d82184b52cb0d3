package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/guildbot/premium-backend/db"
	"github.com/guildbot/premium-backend/errors"
	"github.com/guildbot/premium-backend/log"
)

// createOrderHandler creates a new open order for a catalog item. The
// order snapshots the item's current price, name and type, so a later
// catalog change does not affect pending purchases.
func (a *API) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		errors.ErrUnauthorized.Write(w)
		return
	}
	req := &OrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		errors.ErrMalformedBody.Write(w)
		return
	}
	if req.ItemID == "" || req.GuildID == "" {
		errors.ErrMissingParameter.Withf("itemId and guildId are required").Write(w)
		return
	}
	// check that the item exists in the catalog
	item, err := a.db.Item(req.ItemID)
	if err != nil {
		if err == db.ErrNotFound {
			errors.ErrItemNotFound.Write(w)
			return
		}
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	// persist the open order with a fresh identifier
	order := &db.Order{
		OrderID: uuid.NewString(),
		UserID:  user.ID,
		Target:  req.GuildID,
		Item:    item.ItemID,
		Name:    item.Name,
		Amount:  item.Amount,
		Process: db.OrderOpen,
		Type:    item.Type,
	}
	if err := a.db.SetOrder(order); err != nil {
		errors.ErrOrderCreationFailed.WithErr(err).Write(w)
		return
	}
	log.Infow("order created", "order", order.OrderID, "user", user.ID, "item", item.ItemID)
	httpWriteJSON(w, &OrderCreatedResponse{PaymentID: order.OrderID})
}

// orderInfoHandler returns the checkout view of an order: the resolved
// target metadata plus name, identifier and amount. Only the order's owner
// can see it, and a completed order cannot be checked out again.
func (a *API) orderInfoHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		errors.ErrUnauthorized.Write(w)
		return
	}
	orderID := chi.URLParam(r, "orderId")
	if orderID == "" {
		errors.ErrMalformedURLParam.Withf("orderId is required").Write(w)
		return
	}
	order, err := a.db.Order(orderID)
	if err != nil && err != db.ErrNotFound {
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	// a foreign order is reported as missing, not as forbidden
	if err == db.ErrNotFound || order.UserID != user.ID {
		errors.ErrOrderNotFound.Write(w)
		return
	}
	if order.Process == db.OrderSuccess {
		errors.ErrOrderCompleted.Write(w)
		return
	}
	metadata, apiErr := a.orderMetadata(r.Context(), order, false)
	if apiErr != nil {
		apiErr.Write(w)
		return
	}
	httpWriteJSON(w, &OrderInfo{
		Metadata: metadata.Metadata,
		Name:     order.Name,
		ID:       order.OrderID,
		Amount:   order.Amount,
	})
}

// orderSuccessHandler returns the full view of an order after payment:
// resolved target metadata, entitlement expiry and all stored order
// fields. Only the order's owner can see it.
func (a *API) orderSuccessHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		errors.ErrUnauthorized.Write(w)
		return
	}
	orderID := chi.URLParam(r, "orderId")
	if orderID == "" {
		errors.ErrMalformedURLParam.Withf("orderId is required").Write(w)
		return
	}
	order, err := a.db.Order(orderID)
	if err != nil && err != db.ErrNotFound {
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	if err == db.ErrNotFound || order.UserID != user.ID {
		errors.ErrOrderNotFound.Write(w)
		return
	}
	metadata, apiErr := a.orderMetadata(r.Context(), order, true)
	if apiErr != nil {
		apiErr.Write(w)
		return
	}
	httpWriteJSON(w, metadata)
}
