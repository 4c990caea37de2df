package cycle

import (
	"github.com/rs/zerolog"
)

// Transition describes one turn change
type Transition struct {
	Previous Snapshot
	Current  Snapshot
}

// NightFell reports whether time of day switched from day to night
func (t Transition) NightFell() bool {
	return t.Previous.TimeOfDay == Day && t.Current.TimeOfDay == Night
}

// DayBroke reports whether time of day switched from night to day
func (t Transition) DayBroke() bool {
	return t.Previous.TimeOfDay == Night && t.Current.TimeOfDay == Day
}

// SeasonChanged reports whether the season differs from the previous turn
func (t Transition) SeasonChanged() bool {
	return t.Previous.Season != t.Current.Season
}

// EntersDeployment is the dusk signal
func (t Transition) EntersDeployment() bool {
	return t.Current.Dusk
}

// EntersMerchant is the start-of-day signal
func (t Transition) EntersMerchant() bool {
	return t.Current.NewDay
}

// Clock owns the turn counter. End-turn requests are queued and collapsed so
// that one dispatch advances the counter by exactly one.
type Clock struct {
	calendar Calendar
	turn     int
	pending  int
	current  Snapshot
	logger   zerolog.Logger
}

// NewClock creates a clock at turn zero
func NewClock(calendar Calendar, logger zerolog.Logger) *Clock {
	c := &Clock{
		calendar: calendar,
		logger:   logger.With().Str("component", "clock").Logger(),
	}
	c.current = calendar.Derive(0)
	return c
}

// Calendar returns the clock's calendar
func (c *Clock) Calendar() Calendar { return c.calendar }

// Turn returns the current turn counter
func (c *Clock) Turn() int { return c.turn }

// Snapshot returns the derived state for the current turn
func (c *Clock) Snapshot() Snapshot { return c.current }

// RequestEndTurn queues an end-turn signal for the next dispatch
func (c *Clock) RequestEndTurn() {
	c.pending++
}

// Pending reports whether an end-turn signal is waiting
func (c *Clock) Pending() bool { return c.pending > 0 }

// Dispatch consumes every queued end-turn signal and advances the counter by
// one. The second result is false if nothing was queued.
func (c *Clock) Dispatch() (Transition, bool) {
	if c.pending == 0 {
		return Transition{}, false
	}
	if c.pending > 1 {
		c.logger.Debug().
			Int("collapsed", c.pending-1).
			Msg("Collapsing duplicate end-turn signals")
	}
	c.pending = 0
	return c.advance(), true
}

func (c *Clock) advance() Transition {
	prev := c.current
	c.turn++
	c.current = c.calendar.Derive(c.turn)

	tr := Transition{Previous: prev, Current: c.current}
	c.logger.Debug().
		Int("turn", c.turn).
		Int("day", c.current.Day).
		Stringer("season", c.current.Season).
		Stringer("time_of_day", c.current.TimeOfDay).
		Msg("Turn advanced")
	return tr
}

// Reset puts the counter back to zero and drops queued signals
func (c *Clock) Reset() {
	c.turn = 0
	c.pending = 0
	c.current = c.calendar.Derive(0)
}
