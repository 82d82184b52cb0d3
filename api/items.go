package api

import (
	"net/http"

	"github.com/guildbot/premium-backend/errors"
)

// itemsHandler returns the catalog of purchasable premium items.
func (a *API) itemsHandler(w http.ResponseWriter, _ *http.Request) {
	items, err := a.db.Items()
	if err != nil {
		errors.ErrGenericInternalServerError.Withf("could not get items: %v", err).Write(w)
		return
	}
	httpWriteJSON(w, items)
}
