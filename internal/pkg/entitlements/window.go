package entitlements

import "time"

// UsageWindow is the half-open calendar month [Start, End) that bill limits
// are counted against.
type UsageWindow struct {
	Start time.Time
	End   time.Time
}

// MonthWindow returns the calendar month containing ref, in loc. A nil loc
// means UTC.
func MonthWindow(ref time.Time, loc *time.Location) UsageWindow {
	if loc == nil {
		loc = time.UTC
	}
	local := ref.In(loc)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	return UsageWindow{Start: start, End: start.AddDate(0, 1, 0)}
}

func (w UsageWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// LoadLocation resolves an IANA zone name, falling back to fallback (or UTC)
// when the name is empty or unknown.
func LoadLocation(name string, fallback *time.Location) *time.Location {
	if fallback == nil {
		fallback = time.UTC
	}
	if name == "" {
		return fallback
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fallback
	}
	return loc
}
