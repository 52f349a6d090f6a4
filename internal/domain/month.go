package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrBadReferenceMonth is returned when a submitted reference month does not
// parse as DD-MM-YYYY.
var ErrBadReferenceMonth = errors.New("reference month must be in DD-MM-YYYY format")

const referenceMonthLayout = "02-01-2006"

// Month is the calendar month a ledger record is attributed to. The day
// component of the wire format is accepted but carries no meaning.
type Month struct {
	Year  int
	Month time.Month
}

// ParseReferenceMonth parses the DD-MM-YYYY wire format used by the API.
func ParseReferenceMonth(s string) (Month, error) {
	t, err := time.Parse(referenceMonthLayout, s)
	if err != nil {
		return Month{}, ErrBadReferenceMonth
	}
	return MonthOf(t), nil
}

// MonthOf truncates t to its calendar month.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Date returns the first day of the month, UTC. Used for persistence.
func (m Month) Date() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Before reports whether m is an earlier calendar month than other,
// comparing year and month together so December of one year is older
// than January of the next.
func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// CheckOpenPeriod is the mutation guard: a record may be created or deleted
// only while its reference month has not lapsed behind the current wall-clock
// month. The decision is a pure function of its inputs and is re-evaluated on
// every call.
func CheckOpenPeriod(ref Month, now time.Time) error {
	if ref.Before(MonthOf(now)) {
		return ErrPastPeriod
	}
	return nil
}
