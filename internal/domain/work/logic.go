package work

import "time"

// DateRange is an inclusive filter over work dates. A nil bound leaves
// that side open; both nil means unfiltered.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// Contains reports whether the entry date falls inside the range,
// normalized to day boundaries so both ends are inclusive.
func (r DateRange) Contains(date time.Time) bool {
	day := startOfDay(date)
	if r.From != nil && day.Before(startOfDay(*r.From)) {
		return false
	}
	if r.To != nil && day.After(endOfDay(*r.To)) {
		return false
	}
	return true
}

// Filter keeps the entries whose work date the range contains.
func Filter(entries []Entry, r DateRange) []Entry {
	if r.From == nil && r.To == nil {
		return entries
	}
	var out []Entry
	for _, entry := range entries {
		if r.Contains(entry.WorkDate) {
			out = append(out, entry)
		}
	}
	return out
}

// ThisWeek returns the Sunday-through-Saturday range containing now.
func ThisWeek(now time.Time) DateRange {
	from := startOfDay(now).AddDate(0, 0, -int(now.Weekday()))
	to := from.AddDate(0, 0, 6)
	return DateRange{From: &from, To: &to}
}

// ThisMonth returns the first-through-last-day range of now's month.
func ThisMonth(now time.Time) DateRange {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, -1)
	return DateRange{From: &from, To: &to}
}

// ThisYear returns the Jan 1 through Dec 31 range of now's year.
func ThisYear(now time.Time) DateRange {
	from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	to := time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location())
	return DateRange{From: &from, To: &to}
}
