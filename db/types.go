package db

import (
	"time"
)

// User holds the Discord user document. The gateway token fields are
// written by the auth bridge and read back when fetching payment methods.
type User struct {
	ID               string `json:"id" bson:"_id"`
	Phone            string `json:"phone" bson:"phone"`
	TossAccessToken  string `json:"-" bson:"tossAccessToken"`
	TossRefreshToken string `json:"-" bson:"tossRefreshToken"`
	TossTokenType    string `json:"-" bson:"tossTokenType"`
}

// Order is a single purchase attempt. It snapshots the catalog item name,
// price and type at creation time and transitions open -> success at most
// once. Payment keeps the raw gateway confirmation payload.
type Order struct {
	OrderID   string         `json:"id" bson:"_id"`
	UserID    string         `json:"userId" bson:"userId"`
	Target    string         `json:"target" bson:"target"`
	Item      string         `json:"item" bson:"item"`
	Name      string         `json:"name" bson:"name"`
	Amount    int64          `json:"amount" bson:"amount"`
	Process   OrderProcess   `json:"process" bson:"process"`
	Type      TargetType     `json:"type" bson:"type"`
	Payment   map[string]any `json:"payment,omitempty" bson:"payment,omitempty"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
}

// Item is a catalog entry. PeriodDays is the amount of premium time a
// successful order of this item grants.
type Item struct {
	ItemID     string     `json:"itemId" bson:"_id"`
	Name       string     `json:"itemName" bson:"name"`
	Amount     int64      `json:"amount" bson:"amount"`
	Type       TargetType `json:"type" bson:"type"`
	PeriodDays int        `json:"periodDays" bson:"periodDays"`
}

// PremiumGuild is the premium entitlement of a guild. LastOrderID keeps the
// identifier of the last order that extended the entitlement, which makes
// the grant step idempotent per order.
type PremiumGuild struct {
	GuildID     string    `json:"guildId" bson:"_id"`
	NextPayDate time.Time `json:"nextPayDate" bson:"nextPayDate"`
	ActivatedBy string    `json:"activatedBy" bson:"activatedBy"`
	LastOrderID string    `json:"-" bson:"lastOrderId"`
}

// PremiumUser is the premium entitlement of a user.
type PremiumUser struct {
	UserID      string    `json:"userId" bson:"_id"`
	NextPayDate time.Time `json:"nextPayDate" bson:"nextPayDate"`
	LastOrderID string    `json:"-" bson:"lastOrderId"`
}
