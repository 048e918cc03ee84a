package domain

import (
	"fmt"
	"time"
)

// UrgencyTier classifies a trip by time left until departure.
type UrgencyTier string

// List of urgency tiers
const (
	TierCritical UrgencyTier = "critical"
	TierUrgent   UrgencyTier = "urgent"
	TierUpcoming UrgencyTier = "upcoming"
	TierDeparted UrgencyTier = "departed"
)

// Priority ranks, lower is more urgent.
const (
	PriorityCritical = iota
	PriorityUrgent
	PriorityUpcoming
	PriorityDeparted
)

const (
	criticalBelowHours = 3
	urgentBelowHours   = 12
)

// Urgency is the classifier result for one departure.
type Urgency struct {
	Tier     UrgencyTier
	Label    string
	Priority int
}

// Active reports whether the trip can still be matched.
func (u Urgency) Active() bool { return u.Tier != TierDeparted }

// Classify maps a departure time to an urgency tier relative to now.
// It is pure: now is always supplied by the caller.
func Classify(departure, now time.Time) Urgency {
	if departure.Before(now) {
		return Urgency{Tier: TierDeparted, Label: "Departed", Priority: PriorityDeparted}
	}
	hours := int(departure.Sub(now) / time.Hour)
	label := departureLabel(hours)
	switch {
	case hours < criticalBelowHours:
		return Urgency{Tier: TierCritical, Label: label, Priority: PriorityCritical}
	case hours < urgentBelowHours:
		return Urgency{Tier: TierUrgent, Label: label, Priority: PriorityUrgent}
	default:
		return Urgency{Tier: TierUpcoming, Label: label, Priority: PriorityUpcoming}
	}
}

func departureLabel(hours int) string {
	if hours < 24 {
		return "Leaving in " + plural(hours, "hour")
	}
	days, rest := hours/24, hours%24
	if rest == 0 {
		return "Leaving in " + plural(days, "day")
	}
	return fmt.Sprintf("Leaving in %s, %s", plural(days, "day"), plural(rest, "hour"))
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
