package timeseries

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PeriodSeparator is the separator used when formatting period tokens
// (SCB style, e.g. "2024M05").
const PeriodSeparator = "M"

// PeriodDate converts a period token such as "2024M05" into the ISO date of
// the first day of that month ("2024-05-01"). A token without a month
// segment gets month "01".
func PeriodDate(token string) string {
	year, month := splitPeriod(token)
	return year + "-" + month + "-01"
}

func splitPeriod(token string) (string, string) {
	token = strings.TrimSpace(token)
	if len(token) <= 4 {
		return token, "01"
	}
	year := token[:4]
	rest := token[4:]
	// skip the separator, whatever it is
	i := 0
	for i < len(rest) && (rest[i] < '0' || rest[i] > '9') {
		i++
	}
	month := rest[i:]
	switch len(month) {
	case 0:
		month = "01"
	case 1:
		month = "0" + month
	}
	return year, month
}

// ParsePeriod parses a period token into the first instant of its month (UTC).
func ParsePeriod(token string) (time.Time, error) {
	year, month := splitPeriod(token)
	y, err := strconv.Atoi(year)
	if err != nil || len(year) != 4 {
		return time.Time{}, fmt.Errorf("invalid period %q: bad year", token)
	}
	mo, err := strconv.Atoi(month)
	if err != nil || mo < 1 || mo > 12 {
		return time.Time{}, fmt.Errorf("invalid period %q: bad month", token)
	}
	return time.Date(y, time.Month(mo), 1, 0, 0, 0, 0, time.UTC), nil
}

// FormatPeriod formats t as a period token, e.g. "2024M05".
func FormatPeriod(t time.Time) string {
	return fmt.Sprintf("%04d%s%02d", t.Year(), PeriodSeparator, int(t.Month()))
}

// AddMonths moves t by n calendar months, pinned to day 1.
func AddMonths(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
}

// MonthsBetween returns the period tokens in (after, through].
func MonthsBetween(after, through time.Time) []string {
	var out []string
	for cur := AddMonths(after, 1); !cur.After(through); cur = AddMonths(cur, 1) {
		out = append(out, FormatPeriod(cur))
	}
	return out
}
