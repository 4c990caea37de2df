package cycle

import "fmt"

// Season is one third of the yearly cycle
type Season int

const (
	Summer Season = iota
	Autumn
	Winter
)

// SeasonCount is the number of seasons in a cycle
const SeasonCount = 3

func (s Season) String() string {
	switch s {
	case Summer:
		return "Summer"
	case Autumn:
		return "Autumn"
	case Winter:
		return "Winter"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// DayCycle splits a day's turns into daylight and night
type DayCycle struct {
	DayTurns   int
	NightTurns int
}

// Turns is the length of a full day
func (dc DayCycle) Turns() int {
	return dc.DayTurns + dc.NightTurns
}

var dayCycles = [SeasonCount]DayCycle{
	Summer: {DayTurns: 6, NightTurns: 4},
	Autumn: {DayTurns: 5, NightTurns: 5},
	Winter: {DayTurns: 4, NightTurns: 6},
}

// DayCycle returns the fixed day/night split of the season
func (s Season) DayCycle() DayCycle {
	if s < Summer || s > Winter {
		return dayCycles[Summer]
	}
	return dayCycles[s]
}

// TimeOfDay is derived every turn from the season's day cycle
type TimeOfDay int

const (
	Day TimeOfDay = iota
	Night
)

func (t TimeOfDay) String() string {
	if t == Night {
		return "Night"
	}
	return "Day"
}
