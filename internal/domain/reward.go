package domain

import "time"

// DurationReward converts a rental duration into reward points: one point per
// full interval ridden. Fractional minutes count toward the duration; only the
// final quotient is floored. A duration that comes out negative (clock skew)
// clamps to zero rather than debiting the rider.
func DurationReward(d time.Duration, interval time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d.Minutes() / interval.Minutes())
}
