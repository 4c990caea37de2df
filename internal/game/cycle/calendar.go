package cycle

import "fmt"

// Calendar turns a turn counter into day, season and time of day.
// Derivation is a pure function of the turn number.
type Calendar struct {
	TurnsPerDay   int
	DaysPerSeason int
}

// DefaultCalendar matches the built-in season day cycles (ten turns a day)
func DefaultCalendar() Calendar {
	return Calendar{TurnsPerDay: 10, DaysPerSeason: 3}
}

// Validate rejects calendars that would divide by zero or leave a season
// without a night
func (c Calendar) Validate() error {
	if c.TurnsPerDay <= 0 {
		return fmt.Errorf("turns per day must be positive, got %d", c.TurnsPerDay)
	}
	if c.DaysPerSeason <= 0 {
		return fmt.Errorf("days per season must be positive, got %d", c.DaysPerSeason)
	}
	for s := Season(0); s < SeasonCount; s++ {
		if dc := s.DayCycle(); c.TurnsPerDay <= dc.DayTurns {
			return fmt.Errorf("%d turns per day leave %s without a night (%d day turns)", c.TurnsPerDay, s, dc.DayTurns)
		}
	}
	return nil
}

// DaysPerCycle is the number of days before the seasons repeat
func (c Calendar) DaysPerCycle() int {
	return c.DaysPerSeason * SeasonCount
}

// Snapshot is everything derived from one turn value
type Snapshot struct {
	Turn      int
	Day       int
	TurnOfDay int
	Season    Season
	DayCycle  DayCycle
	TimeOfDay TimeOfDay
	// Dusk is set on the exact turn the day flips to night
	Dusk bool
	// NewDay is set on the first turn of every day except the very first
	NewDay bool
}

// Derive computes the snapshot for a turn
func (c Calendar) Derive(turn int) Snapshot {
	day := turn / c.TurnsPerDay
	season := Season((day % c.DaysPerCycle()) / c.DaysPerSeason)
	dc := season.DayCycle()
	turnOfDay := turn % c.TurnsPerDay

	s := Snapshot{
		Turn:      turn,
		Day:       day,
		TurnOfDay: turnOfDay,
		Season:    season,
		DayCycle:  dc,
		TimeOfDay: Day,
		Dusk:      turnOfDay == dc.DayTurns,
		NewDay:    turn != 0 && turnOfDay == 0,
	}
	if turnOfDay >= dc.DayTurns {
		s.TimeOfDay = Night
	}
	return s
}

// IsDayBoundary reports whether turn starts a new day
func (c Calendar) IsDayBoundary(turn int) bool {
	return turn != 0 && turn%c.TurnsPerDay == 0
}
