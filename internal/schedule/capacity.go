package schedule

import (
	"time"

	"github.com/fbranqinho/sportify-studio-sub001/internal/model"
)

// PlayerCapacity returns the total number of players a match of the
// given sport can hold across both sides.  Unknown sport codes yield
// zero, which disables the open-for-players branch of the resolver.
func PlayerCapacity(sport string) int {
	switch sport {
	case model.SportFut5, model.SportFutsal:
		return 10
	case model.SportFut7:
		return 14
	case model.SportFut11:
		return 22
	}
	return 0
}

// GameDuration returns the regulation playing time for the given sport.
// The schedule grid uses it to render slot end times; the resolver
// itself classifies whole hours and does not depend on it.
func GameDuration(sport string) time.Duration {
	switch sport {
	case model.SportFut11:
		return 90 * time.Minute
	case model.SportFut7:
		return 50 * time.Minute
	case model.SportFut5, model.SportFutsal:
		return 40 * time.Minute
	}
	return 90 * time.Minute
}
