package work

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func entriesOn(dates ...time.Time) []Entry {
	entries := make([]Entry, 0, len(dates))
	for _, d := range dates {
		entries = append(entries, Entry{WorkDate: d})
	}
	return entries
}

func TestFilterUnboundedReturnsAll(t *testing.T) {
	entries := entriesOn(day(2025, 3, 1), day(2025, 3, 15), day(2025, 4, 2))
	got := Filter(entries, DateRange{})
	if len(got) != len(entries) {
		t.Fatalf("expected all %d entries, got %d", len(entries), len(got))
	}
}

func TestFilterInclusiveAtBothEnds(t *testing.T) {
	from := day(2025, 3, 10)
	to := day(2025, 3, 12)
	entries := entriesOn(
		day(2025, 3, 9),
		day(2025, 3, 10),
		// mid-day timestamp on the upper bound must still match
		time.Date(2025, 3, 12, 14, 30, 0, 0, time.UTC),
		day(2025, 3, 13),
	)

	got := Filter(entries, DateRange{From: &from, To: &to})
	if len(got) != 2 {
		t.Fatalf("expected 2 entries inside [10,12], got %d", len(got))
	}
	if !got[0].WorkDate.Equal(day(2025, 3, 10)) {
		t.Fatalf("lower bound must be inclusive, got %v", got[0].WorkDate)
	}
}

func TestFilterOneSided(t *testing.T) {
	from := day(2025, 3, 10)
	to := day(2025, 3, 10)
	entries := entriesOn(day(2025, 3, 9), day(2025, 3, 10), day(2025, 3, 11))

	if got := Filter(entries, DateRange{From: &from}); len(got) != 2 {
		t.Fatalf("expected 2 entries on/after the 10th, got %d", len(got))
	}
	if got := Filter(entries, DateRange{To: &to}); len(got) != 2 {
		t.Fatalf("expected 2 entries on/before the 10th, got %d", len(got))
	}
}

func TestThisWeekStartsSunday(t *testing.T) {
	// 2025-03-12 is a Wednesday.
	r := ThisWeek(day(2025, 3, 12))
	if r.From == nil || r.To == nil {
		t.Fatal("expected both bounds")
	}
	if r.From.Weekday() != time.Sunday {
		t.Fatalf("week must start on Sunday, got %v", r.From.Weekday())
	}
	if !r.From.Equal(day(2025, 3, 9)) || !r.To.Equal(day(2025, 3, 15)) {
		t.Fatalf("expected [Mar 9, Mar 15], got [%v, %v]", r.From, r.To)
	}
}

func TestThisMonthCoversWholeMonth(t *testing.T) {
	r := ThisMonth(day(2024, 2, 14))
	if !r.From.Equal(day(2024, 2, 1)) || !r.To.Equal(day(2024, 2, 29)) {
		t.Fatalf("expected leap February bounds, got [%v, %v]", r.From, r.To)
	}
}

func TestThisYearCoversWholeYear(t *testing.T) {
	r := ThisYear(day(2025, 6, 30))
	if !r.From.Equal(day(2025, 1, 1)) || !r.To.Equal(day(2025, 12, 31)) {
		t.Fatalf("expected full-year bounds, got [%v, %v]", r.From, r.To)
	}

	if !r.Contains(day(2025, 12, 31)) {
		t.Fatal("Dec 31 must be inside the year range")
	}
	if r.Contains(day(2026, 1, 1)) {
		t.Fatal("Jan 1 of the next year must be outside")
	}
}
