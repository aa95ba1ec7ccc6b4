package matchsrv

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/talentsift/screening/screening/candidate"
)

var (
	yearsPattern    = regexp.MustCompile(`(?i)(\d+)\+?\s*(?:years?|yrs?)`)
	calendarPattern = regexp.MustCompile(`(\d{4})`)
)

// Default score when the requirement mentions no parseable year count.
// Unparseable requirements are treated leniently rather than as failures.
const unparseableExperienceScore = 80.0

// MatchExperience scores a candidate's accumulated years of experience
// against a free-text requirement like "5+ years". currentYear stands
// in for open-ended entries whose end date is "Present".
//
// Entries are summed independently; overlapping positions overcount.
func MatchExperience(required string, entries []candidate.ExperienceEntry, currentYear int) float64 {
	if required == "" {
		return 100.0
	}

	m := yearsPattern.FindStringSubmatch(required)
	if m == nil {
		return unparseableExperienceScore
	}
	requiredYears, _ := strconv.Atoi(m[1])

	totalYears := 0
	for _, exp := range entries {
		totalYears += entryYears(exp, currentYear)
	}

	return experienceBand(totalYears, requiredYears)
}

// entryYears derives the year count of one experience entry: from its
// duration field when parseable, otherwise from its start/end years.
func entryYears(exp candidate.ExperienceEntry, currentYear int) int {
	if m := yearsPattern.FindStringSubmatch(exp.Duration); m != nil {
		years, _ := strconv.Atoi(m[1])
		return years
	}

	start := calendarPattern.FindStringSubmatch(exp.StartDate)
	if start == nil {
		return 0
	}
	startYear, _ := strconv.Atoi(start[1])

	endYear := currentYear
	if !strings.Contains(strings.ToLower(exp.EndDate), "present") {
		if end := calendarPattern.FindStringSubmatch(exp.EndDate); end != nil {
			endYear, _ = strconv.Atoi(end[1])
		}
	}

	return endYear - startYear
}

// experienceBand maps the candidate-to-required ratio onto discrete
// score tiers. Banding keeps scores stable under small parsing noise.
func experienceBand(totalYears, requiredYears int) float64 {
	total := float64(totalYears)
	required := float64(requiredYears)

	switch {
	case total >= required:
		return 100.0
	case total >= required*0.8:
		return 90.0
	case total >= required*0.6:
		return 70.0
	case total >= required*0.4:
		return 50.0
	default:
		return 30.0
	}
}
