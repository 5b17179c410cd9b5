package goalimport

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Period is the structured form of a free-text period label. Quarter is
// nil for annual or year-only labels.
type Period struct {
	Quarter *int
	Year    int
}

var (
	qYearPattern       = regexp.MustCompile(`^Q([1-4])\s+(\d{4})$`)
	yearQPattern       = regexp.MustCompile(`^(\d{4})\s+Q([1-4])$`)
	quarterWordPattern = regexp.MustCompile(`^Quarter\s+([1-4])\s+(?:FY)?(\d{2}|\d{4})$`)
	compactQPattern    = regexp.MustCompile(`^([1-4])Q(\d{2}|\d{4})$`)
	fyQPattern         = regexp.MustCompile(`^FY(\d{2}|\d{4})\s+Q([1-4])$`)
	annualPattern      = regexp.MustCompile(`^(?:Annual|FY)\s+(\d{4})$`)
	bareYearPattern    = regexp.MustCompile(`^(\d{4})$`)
	monthYearPattern   = regexp.MustCompile(`^([A-Za-z]+)\s+(\d{4})$`)

	looseYearPattern    = regexp.MustCompile(`\b(\d{4})\b`)
	looseQuarterPattern = regexp.MustCompile(`(?i)(?:q(?:uarter)?\s*([1-4])|([1-4])\s*q)`)
)

var monthsByName = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// periodParser resolves period labels, preferring the archive's own
// TimePeriods collection (ground truth) over textual parsing.
type periodParser struct {
	byLabel              map[string]SourcePeriod
	fiscalYearStartMonth int
	now                  func() time.Time
}

func newPeriodParser(periods []SourcePeriod, fiscalYearStartMonth int) *periodParser {
	if fiscalYearStartMonth < 1 || fiscalYearStartMonth > 12 {
		fiscalYearStartMonth = 1
	}
	byLabel := make(map[string]SourcePeriod, len(periods))
	for _, p := range periods {
		if p.Label != "" {
			byLabel[p.Label] = p
		}
	}
	return &periodParser{
		byLabel:              byLabel,
		fiscalYearStartMonth: fiscalYearStartMonth,
		now:                  time.Now,
	}
}

// Parse is total: it never fails, but returns a non-empty warning when
// the label could not be interpreted and the current-year default was
// used instead.
func (p *periodParser) Parse(label string) (Period, string) {
	label = strings.TrimSpace(label)

	if src, ok := p.byLabel[label]; ok {
		if period, ok := p.fromStartDate(src.StartDate); ok {
			return period, ""
		}
	}

	if m := qYearPattern.FindStringSubmatch(label); m != nil {
		return quarterPeriod(m[1], m[2]), ""
	}
	if m := yearQPattern.FindStringSubmatch(label); m != nil {
		return quarterPeriod(m[2], m[1]), ""
	}
	if m := quarterWordPattern.FindStringSubmatch(label); m != nil {
		return quarterPeriod(m[1], m[2]), ""
	}
	if m := compactQPattern.FindStringSubmatch(label); m != nil {
		return quarterPeriod(m[1], m[2]), ""
	}
	if m := fyQPattern.FindStringSubmatch(label); m != nil {
		return quarterPeriod(m[2], m[1]), ""
	}
	if m := annualPattern.FindStringSubmatch(label); m != nil {
		return Period{Year: parseYear(m[1])}, ""
	}
	if m := bareYearPattern.FindStringSubmatch(label); m != nil {
		return Period{Year: parseYear(m[1])}, ""
	}
	if m := monthYearPattern.FindStringSubmatch(label); m != nil {
		if month, ok := monthsByName[strings.ToLower(m[1])]; ok {
			q := quarterOfMonth(int(month))
			return Period{Quarter: &q, Year: parseYear(m[2])}, ""
		}
	}

	// Permissive last resort: any 4-digit year plus any digit adjacent
	// to a quarter marker anywhere in the label.
	if m := looseYearPattern.FindStringSubmatch(label); m != nil {
		period := Period{Year: parseYear(m[1])}
		if qm := looseQuarterPattern.FindStringSubmatch(label); qm != nil {
			digit := qm[1]
			if digit == "" {
				digit = qm[2]
			}
			q, _ := strconv.Atoi(digit)
			period.Quarter = &q
		}
		return period, ""
	}

	return Period{Year: p.now().Year()},
		fmt.Sprintf("unrecognized period label %q, defaulting to current year", label)
}

// fromStartDate derives quarter and year from a period's start date.
// The quarter is taken relative to the configured fiscal year start.
func (p *periodParser) fromStartDate(startDate string) (Period, bool) {
	t, ok := parseDate(startDate)
	if !ok {
		return Period{}, false
	}
	q := quarterOfMonth((int(t.Month())-p.fiscalYearStartMonth+12)%12 + 1)
	return Period{Quarter: &q, Year: t.Year()}, true
}

func quarterPeriod(quarterDigit, year string) Period {
	q, _ := strconv.Atoi(quarterDigit)
	return Period{Quarter: &q, Year: parseYear(year)}
}

// parseYear normalizes two-digit years by adding 2000.
func parseYear(s string) int {
	y, _ := strconv.Atoi(s)
	if y < 100 {
		y += 2000
	}
	return y
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02", "01/02/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
