package period_test

import (
	"testing"
	"time"

	"fintrack/internal/period"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestUnitValid(t *testing.T) {
	for _, u := range []period.Unit{period.Weekly, period.Monthly, period.Yearly} {
		if !u.Valid() {
			t.Errorf("unit %q should be valid", u)
		}
	}
	for _, u := range []period.Unit{"", "daily", "quarterly", "MONTHLY"} {
		if period.Unit(u).Valid() {
			t.Errorf("unit %q should be invalid", u)
		}
	}
}

func TestWindowContains(t *testing.T) {
	w := period.Window{Start: date(2024, time.January, 1), End: date(2024, time.February, 1)}

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"start is inclusive", date(2024, time.January, 1), true},
		{"middle", date(2024, time.January, 15), true},
		{"instant before end", date(2024, time.February, 1).Add(-time.Nanosecond), true},
		{"end is exclusive", date(2024, time.February, 1), false},
		{"before start", date(2023, time.December, 31), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Contains(tt.t); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		unit period.Unit
		want time.Time
	}{
		{"weekly", date(2024, time.January, 1), period.Weekly, date(2024, time.January, 8)},
		{"weekly across month boundary", date(2024, time.January, 29), period.Weekly, date(2024, time.February, 5)},
		{"monthly", date(2024, time.January, 1), period.Monthly, date(2024, time.February, 1)},
		{"monthly from Jan 31 normalizes", date(2024, time.January, 31), period.Monthly, date(2024, time.March, 2)},
		{"monthly across year boundary", date(2023, time.December, 15), period.Monthly, date(2024, time.January, 15)},
		{"yearly", date(2024, time.March, 1), period.Yearly, date(2025, time.March, 1)},
		{"yearly from leap day normalizes", date(2024, time.February, 29), period.Yearly, date(2025, time.March, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := period.Advance(tt.t, tt.unit); !got.Equal(tt.want) {
				t.Errorf("Advance(%v, %s) = %v, want %v", tt.t, tt.unit, got, tt.want)
			}
		})
	}
}

func TestWindowsMonthly(t *testing.T) {
	anchor := date(2024, time.January, 1)
	windows := period.Windows(anchor, period.Monthly, date(2024, time.January, 1), date(2024, time.April, 1))

	if len(windows) != 3 {
		t.Fatalf("expected 3 windows, got %d", len(windows))
	}

	wantStarts := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.February, 1),
		date(2024, time.March, 1),
	}
	for i, w := range windows {
		if !w.Start.Equal(wantStarts[i]) {
			t.Errorf("window %d start = %v, want %v", i, w.Start, wantStarts[i])
		}
	}
	if !windows[2].End.Equal(date(2024, time.April, 1)) {
		t.Errorf("last window end = %v, want %v", windows[2].End, date(2024, time.April, 1))
	}
}

func TestWindowsWeekly(t *testing.T) {
	anchor := date(2024, time.January, 1) // a Monday
	windows := period.Windows(anchor, period.Weekly, anchor, date(2024, time.January, 29))

	if len(windows) != 4 {
		t.Fatalf("expected 4 windows, got %d", len(windows))
	}
	for i, w := range windows {
		wantStart := anchor.AddDate(0, 0, 7*i)
		if !w.Start.Equal(wantStart) {
			t.Errorf("window %d start = %v, want %v", i, w.Start, wantStart)
		}
		if !w.End.Equal(wantStart.AddDate(0, 0, 7)) {
			t.Errorf("window %d end = %v, want %v", i, w.End, wantStart.AddDate(0, 0, 7))
		}
	}
}

func TestWindowsAlignedToAnchorNotRange(t *testing.T) {
	// Range starts mid-window: the first window must still begin at an
	// anchor-aligned boundary before the range start.
	anchor := date(2024, time.January, 1)
	windows := period.Windows(anchor, period.Monthly, date(2024, time.February, 15), date(2024, time.April, 1))

	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(windows))
	}
	if !windows[0].Start.Equal(date(2024, time.February, 1)) {
		t.Errorf("first window start = %v, want 2024-02-01", windows[0].Start)
	}
	if !windows[1].End.Equal(date(2024, time.April, 1)) {
		t.Errorf("last window end = %v, want 2024-04-01", windows[1].End)
	}
}

func TestWindowsContiguous(t *testing.T) {
	anchor := date(2024, time.January, 31)
	windows := period.Windows(anchor, period.Monthly, anchor, date(2024, time.August, 1))

	if len(windows) < 2 {
		t.Fatalf("expected multiple windows, got %d", len(windows))
	}
	for i := 1; i < len(windows); i++ {
		if !windows[i].Start.Equal(windows[i-1].End) {
			t.Errorf("gap between window %d end %v and window %d start %v", i-1, windows[i-1].End, i, windows[i].Start)
		}
	}
	for _, w := range windows {
		if !w.Start.Before(w.End) {
			t.Errorf("window %v..%v is not forward", w.Start, w.End)
		}
	}
}

func TestWindowsEveryInstantCoveredOnce(t *testing.T) {
	anchor := date(2024, time.January, 1)
	windows := period.Windows(anchor, period.Weekly, anchor, date(2024, time.March, 1))

	// Sample instants including exact boundaries: each must fall in exactly
	// one window.
	samples := []time.Time{
		anchor,
		date(2024, time.January, 8),
		date(2024, time.January, 8).Add(-time.Second),
		date(2024, time.February, 14),
	}
	for _, p := range samples {
		matches := 0
		for _, w := range windows {
			if w.Contains(p) {
				matches++
			}
		}
		if matches != 1 {
			t.Errorf("instant %v contained in %d windows, want exactly 1", p, matches)
		}
	}
}

func TestWindowsEdgeCases(t *testing.T) {
	anchor := date(2024, time.January, 1)

	t.Run("empty range", func(t *testing.T) {
		if got := period.Windows(anchor, period.Monthly, date(2024, time.March, 1), date(2024, time.February, 1)); got != nil {
			t.Errorf("expected nil for inverted range, got %d windows", len(got))
		}
	})

	t.Run("zero-length range", func(t *testing.T) {
		at := date(2024, time.February, 1)
		if got := period.Windows(anchor, period.Monthly, at, at); got != nil {
			t.Errorf("expected nil for zero-length range, got %d windows", len(got))
		}
	})

	t.Run("invalid unit", func(t *testing.T) {
		if got := period.Windows(anchor, "daily", anchor, date(2024, time.March, 1)); got != nil {
			t.Errorf("expected nil for invalid unit, got %d windows", len(got))
		}
	})

	t.Run("anchor after range", func(t *testing.T) {
		got := period.Windows(date(2025, time.January, 1), period.Monthly, date(2024, time.January, 1), date(2024, time.March, 1))
		if got != nil {
			t.Errorf("expected nil when anchor is past the range, got %d windows", len(got))
		}
	})

	t.Run("single partial window", func(t *testing.T) {
		got := period.Windows(anchor, period.Monthly, date(2024, time.January, 10), date(2024, time.January, 20))
		if len(got) != 1 {
			t.Fatalf("expected 1 window, got %d", len(got))
		}
		if !got[0].Start.Equal(anchor) || !got[0].End.Equal(date(2024, time.February, 1)) {
			t.Errorf("window = %v..%v, want 2024-01-01..2024-02-01", got[0].Start, got[0].End)
		}
	})
}

func TestWindowsYearly(t *testing.T) {
	anchor := date(2022, time.June, 15)
	windows := period.Windows(anchor, period.Yearly, date(2023, time.January, 1), date(2025, time.January, 1))

	if len(windows) != 3 {
		t.Fatalf("expected 3 windows, got %d", len(windows))
	}
	if !windows[0].Start.Equal(date(2022, time.June, 15)) {
		t.Errorf("first window start = %v, want 2022-06-15", windows[0].Start)
	}
	if !windows[2].Start.Equal(date(2024, time.June, 15)) {
		t.Errorf("last window start = %v, want 2024-06-15", windows[2].Start)
	}
}
