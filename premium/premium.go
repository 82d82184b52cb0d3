// Package premium grants and resolves the premium entitlements sold through
// the payments API. A successful order extends the entitlement of its
// target guild or user by the catalog item's period.
package premium

import (
	"fmt"
	"time"

	"github.com/guildbot/premium-backend/bot"
	"github.com/guildbot/premium-backend/db"
	"github.com/guildbot/premium-backend/log"
)

// Service implements the entitlement granter and the target resolvers on
// top of the document store and the bot cache.
type Service struct {
	db    *db.MongoStorage
	cache bot.Cache
}

// New creates a premium Service.
func New(database *db.MongoStorage, cache bot.Cache) *Service {
	return &Service{
		db:    database,
		cache: cache,
	}
}

// Grant activates or extends the premium entitlement paid by the given
// order. The grant is keyed by the order identifier: calling it again with
// the same order is a no-op, so the confirmation path can be retried after
// a crash without extending the entitlement twice. Stacking on an active
// entitlement extends from the current expiry; a lapsed one restarts from
// now.
func (s *Service) Grant(order *db.Order) error {
	item, err := s.db.Item(order.Item)
	if err != nil {
		return fmt.Errorf("cannot load item %q: %w", order.Item, err)
	}
	period := time.Duration(item.PeriodDays) * 24 * time.Hour
	now := time.Now()
	switch order.Type {
	case db.TargetGuild:
		current, err := s.db.PremiumGuild(order.Target)
		if err != nil && err != db.ErrNotFound {
			return err
		}
		if current != nil && current.LastOrderID == order.OrderID {
			log.Debugw("entitlement already granted", "order", order.OrderID, "guild", order.Target)
			return nil
		}
		base := now
		if current != nil && current.NextPayDate.After(now) {
			base = current.NextPayDate
		}
		if err := s.db.SetPremiumGuild(&db.PremiumGuild{
			GuildID:     order.Target,
			NextPayDate: base.Add(period),
			ActivatedBy: order.UserID,
			LastOrderID: order.OrderID,
		}); err != nil {
			return err
		}
		log.Infow("guild premium granted", "guild", order.Target, "order", order.OrderID, "until", base.Add(period))
	case db.TargetUser:
		current, err := s.db.PremiumUser(order.Target)
		if err != nil && err != db.ErrNotFound {
			return err
		}
		if current != nil && current.LastOrderID == order.OrderID {
			log.Debugw("entitlement already granted", "order", order.OrderID, "user", order.Target)
			return nil
		}
		base := now
		if current != nil && current.NextPayDate.After(now) {
			base = current.NextPayDate
		}
		if err := s.db.SetPremiumUser(&db.PremiumUser{
			UserID:      order.Target,
			NextPayDate: base.Add(period),
			LastOrderID: order.OrderID,
		}); err != nil {
			return err
		}
		log.Infow("user premium granted", "user", order.Target, "order", order.OrderID, "until", base.Add(period))
	default:
		return fmt.Errorf("unknown target type %q", order.Type)
	}
	return nil
}
