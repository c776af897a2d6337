// Package period implements calendar-aware recurrence windows. A window is
// half-open: it contains its start instant and excludes its end. Consecutive
// windows of a budget tile its lifetime with no gaps and no overlaps.
package period

import "time"

// Unit is a recurrence unit for window arithmetic.
type Unit string

const (
	Weekly  Unit = "weekly"
	Monthly Unit = "monthly"
	Yearly  Unit = "yearly"
)

// Valid reports whether the unit is one of the known recurrence units.
func (u Unit) Valid() bool {
	switch u {
	case Weekly, Monthly, Yearly:
		return true
	}
	return false
}

// Window is a half-open time interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window. The start is
// inclusive, the end exclusive, so an instant on the boundary between two
// consecutive windows belongs to exactly one of them.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Advance moves t forward by one unit using calendar arithmetic, so monthly
// windows track month lengths and yearly windows track leap years rather
// than using a fixed number of hours.
func Advance(t time.Time, unit Unit) time.Time {
	switch unit {
	case Weekly:
		return t.AddDate(0, 0, 7)
	case Monthly:
		return t.AddDate(0, 1, 0)
	case Yearly:
		return t.AddDate(1, 0, 0)
	}
	return t
}

// Windows generates the windows of the recurrence anchored at anchor that
// overlap [rangeStart, rangeEnd), in chronological order. Window boundaries
// are aligned to the anchor, not to the queried range: the first window may
// begin before rangeStart and the last may extend past rangeEnd. Returns nil
// when the unit is unknown or the range is empty.
func Windows(anchor time.Time, unit Unit, rangeStart, rangeEnd time.Time) []Window {
	if !unit.Valid() || !rangeStart.Before(rangeEnd) {
		return nil
	}

	// Walk forward from the anchor until the current window reaches
	// rangeStart. The anchor is at or before any queried range in practice,
	// so this loop is short.
	cursor := anchor
	for {
		next := Advance(cursor, unit)
		if !next.After(cursor) {
			return nil
		}
		if next.After(rangeStart) {
			break
		}
		cursor = next
	}

	var windows []Window
	for cursor.Before(rangeEnd) {
		next := Advance(cursor, unit)
		windows = append(windows, Window{Start: cursor, End: next})
		cursor = next
	}
	return windows
}
