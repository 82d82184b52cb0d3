package db

// TargetType discriminates what an order's entitlement applies to. It is
// fixed when the order is created and selects the resolver variant used by
// every downstream lookup.
type TargetType string

// OrderProcess is the lifecycle state of an order.
type OrderProcess string

const (
	// target types
	TargetGuild TargetType = "guild"
	TargetUser  TargetType = "user"
	// order process states
	OrderOpen    OrderProcess = "open"
	OrderSuccess OrderProcess = "success"
)

// validTargetTypes is a map that contains the valid order target types
var validTargetTypes = map[TargetType]bool{
	TargetGuild: true,
	TargetUser:  true,
}

// IsValidTargetType function checks if the order target type is valid
func IsValidTargetType(t string) bool {
	_, valid := validTargetTypes[TargetType(t)]
	return valid
}
