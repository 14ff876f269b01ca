package ena

import "time"

const DateLayout = "2006-01-02"

// windowDays bounds each portal query; wide unbounded date ranges are prone
// to rejection or timeouts upstream.
const windowDays = 14

// Window is a closed calendar-date interval, inclusive on both ends.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) String() string {
	return w.Start.Format(DateLayout) + ".." + w.End.Format(DateLayout)
}

// splitWindows covers [start, end] with consecutive closed sub-windows of at
// most windowDays days each. Both bounds are normalized to UTC midnight; an
// end before start yields no windows.
func splitWindows(start, end time.Time) []Window {
	start = midnightUTC(start)
	end = midnightUTC(end)

	var out []Window
	for s := start; !s.After(end); {
		e := s.AddDate(0, 0, windowDays-1)
		if e.After(end) {
			e = end
		}
		out = append(out, Window{Start: s, End: e})
		s = e.AddDate(0, 0, 1)
	}
	return out
}

func midnightUTC(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
