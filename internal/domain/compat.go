package domain

// Engine displacement thresholds for the restrictive engine rules.
// Bikes between the two satisfy neither small nor big.
const (
	SmallEngineMaxCC = 500
	BigEngineMinCC   = 700
)

// IsTripCompatible reports whether user owns a bike that satisfies rule.
// Open trips accept everyone; small needs a bike of at most 500cc and big
// needs one of at least 700cc.
func IsTripCompatible(rule EngineRule, user User) bool {
	bikes := user.Profile.Motorcycles
	switch rule {
	case EngineRuleOpen:
		return true
	case EngineRuleSmall:
		for _, b := range bikes {
			if b.EngineCC <= SmallEngineMaxCC {
				return true
			}
		}
		return false
	case EngineRuleBig:
		for _, b := range bikes {
			if b.EngineCC >= BigEngineMinCC {
				return true
			}
		}
		return false
	}
	return true
}

// EngineRuleLabel returns the human-readable label for rule.
// Unrecognized rules are echoed back unchanged.
func EngineRuleLabel(rule EngineRule) string {
	switch rule {
	case EngineRuleOpen:
		return "Open to all"
	case EngineRuleSmall:
		return "Small bikes only"
	case EngineRuleBig:
		return "Big bikes only"
	default:
		return string(rule)
	}
}

// CanSeeTrip is the general visibility policy: public trips are visible to
// everyone, private trips only to their owner. Group membership plays no
// part here; see CanSeeTripAsMember. An empty me means nobody is signed in.
func CanSeeTrip(trip Trip, me UserID) bool {
	if trip.Visibility == VisibilityPublic {
		return true
	}
	return me != "" && trip.OwnerID == me
}

// CanSeeTripAsMember is the richer policy used when viewing one trip:
// it also admits members of the trip's linked group. group is the resolved
// GroupID reference and may be nil when the trip has no group or the
// reference dangles.
func CanSeeTripAsMember(trip Trip, me UserID, group *Group) bool {
	if CanSeeTrip(trip, me) {
		return true
	}
	return me != "" && group != nil && group.ID == trip.GroupID && group.IsMember(me)
}

// CanViewGroup reports whether me may open a group's detail view:
// the group is public, or me is a member or the owner.
func CanViewGroup(group Group, me UserID) bool {
	return group.Visibility == VisibilityPublic || group.IsMember(me) || group.OwnerID == me
}
