package domain

import "time"

// QuarterDateFormat is the wire format for quarter start dates.
const QuarterDateFormat = "2006-01-02"

// QuarterStart returns midnight UTC on the first day of the calendar quarter
// containing t (Jan 1, Apr 1, Jul 1 or Oct 1). The same function produces the
// idempotency key on write and the filter value on read, so both sides agree
// exactly.
func QuarterStart(t time.Time) time.Time {
	t = t.UTC()
	month := (int(t.Month())-1)/3*3 + 1
	return time.Date(t.Year(), time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

// ParseQuarter parses a YYYY-MM-DD quarter value as midnight UTC.
func ParseQuarter(s string) (time.Time, error) {
	return time.ParseInLocation(QuarterDateFormat, s, time.UTC)
}
