package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/guildbot/premium-backend/bot"
	"github.com/guildbot/premium-backend/db"
	"github.com/guildbot/premium-backend/errors"
	"github.com/guildbot/premium-backend/log"
)

// httpWriteJSON helper function allows to write a JSON response.
func httpWriteJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		log.Warnw("failed to write on response", "error", err)
	}
}

// notCachedError maps a bot cache miss to the NotFound error of the
// order's target type.
func notCachedError(t db.TargetType) errors.Error {
	if t == db.TargetUser {
		return errors.ErrUserNotFound
	}
	return errors.ErrGuildNotFound
}

// orderMetadata resolves the target display metadata of the given order
// and, if withExpiry is set, merges in the entitlement expiry. The second
// return value is the API error to write, or nil on success.
func (a *API) orderMetadata(ctx context.Context, order *db.Order, withExpiry bool) (*OrderMetadata, *errors.Error) {
	resolver, err := a.premium.Resolver(order.Type)
	if err != nil {
		apiErr := errors.ErrGenericInternalServerError.WithErr(err)
		return nil, &apiErr
	}
	metadata, err := resolver.Metadata(ctx, order.Target)
	if err != nil {
		if err == bot.ErrNotCached {
			apiErr := notCachedError(order.Type)
			return nil, &apiErr
		}
		apiErr := errors.ErrGenericInternalServerError.WithErr(err)
		return nil, &apiErr
	}
	result := &OrderMetadata{
		Metadata: metadata,
		Order:    order,
	}
	if withExpiry {
		nextPayDate, err := resolver.NextPayDate(order.Target)
		if err != nil && err != db.ErrNotFound {
			apiErr := errors.ErrGenericInternalServerError.WithErr(err)
			return nil, &apiErr
		}
		if err == nil {
			result.NextPayDate = &nextPayDate
		}
	}
	return result, nil
}
