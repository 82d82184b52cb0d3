package api

import (
	"encoding/json"
	"net/http"

	"github.com/guildbot/premium-backend/db"
	"github.com/guildbot/premium-backend/errors"
	"github.com/guildbot/premium-backend/internal"
	"github.com/guildbot/premium-backend/log"
	"github.com/guildbot/premium-backend/toss"
)

// confirmPaymentHandler confirms a direct BrandPay charge with the gateway
// and, on success, marks the order successful and grants the premium
// entitlement. The raw gateway payload is returned to the client.
func (a *API) confirmPaymentHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		errors.ErrUnauthorized.Write(w)
		return
	}
	req := &ConfirmRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		errors.ErrMalformedBody.Write(w)
		return
	}
	if req.OrderID == "" || req.PaymentKey == "" {
		errors.ErrMissingParameter.Withf("orderId and paymentKey are required").Write(w)
		return
	}
	payment, err := a.toss.Confirm(r.Context(), req.PaymentKey, req.OrderID, req.Amount)
	if err != nil {
		writeGatewayError(w, err)
		return
	}
	order, err := a.db.Order(req.OrderID)
	if err != nil {
		if err == db.ErrNotFound {
			errors.ErrOrderNotFound.Write(w)
			return
		}
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	if apiErr := a.finalizeOrder(user, order, req.Phone, payment); apiErr != nil {
		apiErr.Write(w)
		return
	}
	httpWriteJSON(w, payment)
}

// giftPaymentHandler confirms a gift certificate payment. Unlike the
// direct path it pre-checks that the order exists and was not already paid
// before touching the gateway, and it answers with the merged order
// metadata instead of the raw gateway payload.
func (a *API) giftPaymentHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		errors.ErrUnauthorized.Write(w)
		return
	}
	req := &ConfirmRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		errors.ErrMalformedBody.Write(w)
		return
	}
	if req.OrderID == "" || req.PaymentKey == "" {
		errors.ErrMissingParameter.Withf("orderId and paymentKey are required").Write(w)
		return
	}
	order, err := a.db.Order(req.OrderID)
	if err != nil {
		if err == db.ErrNotFound {
			errors.ErrOrderNotFound.Write(w)
			return
		}
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	if order.Process == db.OrderSuccess {
		errors.ErrOrderAlreadyPaid.Write(w)
		return
	}
	payment, err := a.toss.ConfirmVoucher(r.Context(), req.PaymentKey, req.OrderID, req.Amount)
	if err != nil {
		writeGatewayError(w, err)
		return
	}
	if apiErr := a.finalizeOrder(user, order, req.Phone, payment); apiErr != nil {
		apiErr.Write(w)
		return
	}
	metadata, apiErr := a.orderMetadata(r.Context(), order, true)
	if apiErr != nil {
		apiErr.Write(w)
		return
	}
	httpWriteJSON(w, metadata)
}

// finalizeOrder persists the confirmation outcome: the phone captured by
// the payment widget, the order state transition and the entitlement
// grant. The grant is idempotent per order, so a retried confirmation
// (including one that found the order already successful) converges to the
// same state.
func (a *API) finalizeOrder(user *db.User, order *db.Order, phone string, payment map[string]any) *errors.Error {
	if phone != "" {
		sanitized, err := internal.SanitizeAndVerifyPhoneNumber(phone)
		if err != nil {
			log.Warnw("keeping phone number as received", "error", err)
			sanitized = phone
		}
		if err := a.db.SetUserPhone(user.ID, sanitized); err != nil {
			apiErr := errors.ErrGenericInternalServerError.WithErr(err)
			return &apiErr
		}
	}
	if err := a.db.SetOrderSuccess(order.OrderID, payment); err != nil && err != db.ErrAlreadySuccess {
		apiErr := errors.ErrGenericInternalServerError.WithErr(err)
		return &apiErr
	}
	order.Process = db.OrderSuccess
	order.Payment = payment
	if err := a.premium.Grant(order); err != nil {
		// the order stays successful; the grant can be retried because it
		// is keyed by the order identifier
		log.Errorw("entitlement grant failed", "order", order.OrderID, "error", err)
		apiErr := errors.ErrGenericInternalServerError.WithErr(err)
		return &apiErr
	}
	return nil
}

// writeGatewayError translates a gateway failure into the API error
// carrying the gateway's own status and message, or the generic payment
// error when the gateway did not report one.
func writeGatewayError(w http.ResponseWriter, err error) {
	if apiErr, ok := toss.AsAPIError(err); ok {
		errors.ErrPaymentFailed.WithStatus(apiErr.Status).WithMessage(apiErr.Message).Write(w)
		return
	}
	errors.ErrPaymentFailed.WithErr(err).Write(w)
}

// paymentsAuthHandler exchanges a BrandPay authorization code for gateway
// tokens and stores them on the user. The customer key must match the
// authenticated user, and the gateway outcome is checked before anything
// is persisted.
func (a *API) paymentsAuthHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		errors.ErrUnauthorized.Write(w)
		return
	}
	code := r.URL.Query().Get("code")
	customerKey := r.URL.Query().Get("customerKey")
	if code == "" || customerKey == "" {
		errors.ErrMissingParameter.Withf("code and customerKey are required").Write(w)
		return
	}
	if user.ID != customerKey {
		errors.ErrCustomerKeyNoAuth.Write(w)
		return
	}
	tokens, err := a.toss.ExchangeAuthCode(r.Context(), code, customerKey)
	if err != nil {
		if apiErr, ok := toss.AsAPIError(err); ok {
			errors.ErrGatewayAuth.WithMessage(apiErr.Message).Write(w)
			return
		}
		errors.ErrGatewayAuth.WithErr(err).Write(w)
		return
	}
	if err := a.db.SetUserGatewayTokens(user.ID, tokens.AccessToken, tokens.RefreshToken, tokens.TokenType); err != nil {
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	httpWriteJSON(w, tokens)
}

// paymentsMethodsHandler lists the payment methods stored in BrandPay for
// the authenticated user, flattened into one ordered sequence. On an
// expired access token it performs exactly one refresh-and-retry; any
// other gateway failure is unauthorized.
func (a *API) paymentsMethodsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		errors.ErrUnauthorized.Write(w)
		return
	}
	if user.TossAccessToken == "" {
		errors.ErrGatewayAuth.Withf("user has no gateway tokens").Write(w)
		return
	}
	methods, err := a.toss.PaymentMethods(r.Context(), user.TossAccessToken)
	if toss.IsInvalidAccessToken(err) {
		tokens, refreshErr := a.toss.RefreshTokens(r.Context(), user.TossRefreshToken, user.ID)
		if refreshErr != nil {
			errors.ErrGatewayAuth.Withf("token refresh failed").Write(w)
			return
		}
		if err := a.db.SetUserGatewayTokens(user.ID, tokens.AccessToken, tokens.RefreshToken, tokens.TokenType); err != nil {
			errors.ErrGenericInternalServerError.WithErr(err).Write(w)
			return
		}
		methods, err = a.toss.PaymentMethods(r.Context(), tokens.AccessToken)
	}
	if err != nil {
		if apiErr, ok := toss.AsAPIError(err); ok {
			errors.ErrGatewayAuth.WithMessage(apiErr.Message).Write(w)
			return
		}
		errors.ErrGatewayAuth.WithErr(err).Write(w)
		return
	}
	httpWriteJSON(w, methods.Flatten())
}
