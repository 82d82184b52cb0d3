package premium

import (
	"context"
	"fmt"
	"time"

	"github.com/guildbot/premium-backend/db"
)

// Metadata is the resolved display metadata of an order target.
type Metadata struct {
	Type          db.TargetType `json:"type"`
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Icon          string        `json:"icon,omitempty"`
	Avatar        string        `json:"avatar,omitempty"`
	Discriminator string        `json:"discriminator,omitempty"`
}

// Resolver looks up display metadata and entitlement expiry for one target
// type. The guild and user variants hide the type branching that would
// otherwise repeat in every handler touching an order.
type Resolver interface {
	// Metadata returns the target's display metadata from the bot cache.
	// It returns bot.ErrNotCached if the bot does not know the target.
	Metadata(ctx context.Context, id string) (*Metadata, error)
	// NextPayDate returns the expiry of the target's entitlement. It
	// returns db.ErrNotFound if the target was never premium.
	NextPayDate(id string) (time.Time, error)
}

// Resolver returns the resolver variant for the given target type.
func (s *Service) Resolver(t db.TargetType) (Resolver, error) {
	switch t {
	case db.TargetGuild:
		return &guildResolver{s}, nil
	case db.TargetUser:
		return &userResolver{s}, nil
	default:
		return nil, fmt.Errorf("unknown target type %q", t)
	}
}

type guildResolver struct {
	s *Service
}

func (r *guildResolver) Metadata(ctx context.Context, id string) (*Metadata, error) {
	guild, err := r.s.cache.Guild(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Metadata{
		Type: db.TargetGuild,
		ID:   guild.ID,
		Name: guild.Name,
		Icon: guild.Icon,
	}, nil
}

func (r *guildResolver) NextPayDate(id string) (time.Time, error) {
	entitlement, err := r.s.db.PremiumGuild(id)
	if err != nil {
		return time.Time{}, err
	}
	return entitlement.NextPayDate, nil
}

type userResolver struct {
	s *Service
}

func (r *userResolver) Metadata(ctx context.Context, id string) (*Metadata, error) {
	user, err := r.s.cache.User(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Metadata{
		Type:          db.TargetUser,
		ID:            user.ID,
		Name:          user.Username,
		Avatar:        user.Avatar,
		Discriminator: user.Discriminator,
	}, nil
}

func (r *userResolver) NextPayDate(id string) (time.Time, error) {
	entitlement, err := r.s.db.PremiumUser(id)
	if err != nil {
		return time.Time{}, err
	}
	return entitlement.NextPayDate, nil
}
