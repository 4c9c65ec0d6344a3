package schedule

import (
	"time"

	"github.com/fbranqinho/sportify-studio-sub001/internal/model"
)

// GridSlot is one row of a pitch's daily schedule: the resolved slot
// plus the labels the UI renders.  EndsAt is the slot start plus the
// sport's regulation game duration, not the end of the booked hour.
type GridSlot struct {
	Hour      int       `json:"hour"`
	Label     string    `json:"label"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	SlotInfo
}

// BuildDayGrid resolves every open hour of the pitch for one day as
// seen by actor.  The same snapshot is reused across all hours, so
// recomputing the grid on every data refresh stays cheap.  A pitch with
// a malformed opening range yields an empty grid.
func BuildDayGrid(now, day time.Time, pitch model.Pitch, actor Actor,
	reservations []model.Reservation, matches []model.Match, promotions []model.Promotion) []GridSlot {

	from, to := pitch.OpenFrom, pitch.OpenTo
	if from < 0 || to > 24 || from >= to {
		return nil
	}
	duration := GameDuration(pitch.Sport)
	grid := make([]GridSlot, 0, to-from)
	for hour := from; hour < to; hour++ {
		start := slotStart(day, hour)
		grid = append(grid, GridSlot{
			Hour:     hour,
			Label:    HourLabel(hour),
			StartsAt: start,
			EndsAt:   start.Add(duration),
			SlotInfo: Resolve(now, day, hour, pitch, actor, reservations, matches, promotions),
		})
	}
	return grid
}
