package domain_test

import (
	"testing"
	"time"

	"github.com/LeonardoCto/myeconomyback/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReferenceMonth(t *testing.T) {
	m, err := domain.ParseReferenceMonth("15-05-2024")
	require.NoError(t, err)
	assert.Equal(t, domain.Month{Year: 2024, Month: time.May}, m)
}

func TestParseReferenceMonth_DayIsIgnored(t *testing.T) {
	first, err := domain.ParseReferenceMonth("01-06-2024")
	require.NoError(t, err)
	mid, err := domain.ParseReferenceMonth("17-06-2024")
	require.NoError(t, err)
	assert.Equal(t, first, mid)
}

func TestParseReferenceMonth_BadInput(t *testing.T) {
	for _, s := range []string{"", "2024-06-01", "32-01-2024", "01-13-2024", "june 2024"} {
		_, err := domain.ParseReferenceMonth(s)
		assert.ErrorIs(t, err, domain.ErrBadReferenceMonth, "input %q", s)
	}
}

func TestMonthBefore(t *testing.T) {
	may := domain.Month{Year: 2024, Month: time.May}
	june := domain.Month{Year: 2024, Month: time.June}

	assert.True(t, may.Before(june))
	assert.False(t, june.Before(may))
	assert.False(t, june.Before(june))
}

func TestMonthBefore_YearRollover(t *testing.T) {
	// December's digit (12) is larger than January's (1); the comparison
	// must still order it before January of the following year.
	dec := domain.Month{Year: 2023, Month: time.December}
	jan := domain.Month{Year: 2024, Month: time.January}

	assert.True(t, dec.Before(jan))
	assert.False(t, jan.Before(dec))
}

func TestCheckOpenPeriod(t *testing.T) {
	now := time.Date(2024, time.June, 20, 12, 0, 0, 0, time.UTC)

	assert.ErrorIs(t,
		domain.CheckOpenPeriod(domain.Month{Year: 2024, Month: time.May}, now),
		domain.ErrPastPeriod)
	assert.NoError(t,
		domain.CheckOpenPeriod(domain.Month{Year: 2024, Month: time.June}, now))
	assert.NoError(t,
		domain.CheckOpenPeriod(domain.Month{Year: 2024, Month: time.July}, now))
}

func TestCheckOpenPeriod_PreviousDecemberIsClosed(t *testing.T) {
	january := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)

	err := domain.CheckOpenPeriod(domain.Month{Year: 2023, Month: time.December}, january)
	assert.ErrorIs(t, err, domain.ErrPastPeriod)
}

func TestMonthDate(t *testing.T) {
	m := domain.Month{Year: 2024, Month: time.June}
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), m.Date())
	assert.Equal(t, m, domain.MonthOf(m.Date()))
}
