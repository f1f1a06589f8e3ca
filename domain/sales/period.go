package sales

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var quarterPattern = regexp.MustCompile(`^Q([1-4])$`)

// Period pins a (year, season) pair for a baseline aggregation pass.
type Period struct {
	Year   int
	Season string
}

// ParseYear parses the season_year filter value; ok is false for the All
// sentinel or non-numeric input.
func ParseYear(seasonYear string) (int, bool) {
	if seasonYear == All || seasonYear == "" {
		return 0, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(seasonYear))
	if err != nil {
		return 0, false
	}
	return year, true
}

// PriorQuarter resolves the quarter-over-quarter baseline period. Q1 rolls
// back to the prior year's Q4. Returns ok=false when the filter does not pin
// a single quarter; callers must surface that as a no-baseline state instead
// of guessing a quarter.
func PriorQuarter(f Filters) (Period, bool) {
	if f.Season == All {
		return Period{}, false
	}
	m := quarterPattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(f.Season)))
	if m == nil {
		return Period{}, false
	}
	year, ok := ParseYear(f.SeasonYear)
	if !ok {
		return Period{}, false
	}
	quarter, _ := strconv.Atoi(m[1])
	if quarter == 1 {
		return Period{Year: year - 1, Season: "Q4"}, true
	}
	return Period{Year: year, Season: fmt.Sprintf("Q%d", quarter-1)}, true
}
