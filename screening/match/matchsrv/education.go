package matchsrv

import (
	"strings"

	"github.com/talentsift/screening/screening/candidate"
)

// Ordinal education hierarchy. "phd" and "doctorate" share the top level.
var educationLevels = []struct {
	label string
	level int
}{
	{"high school", 1},
	{"associate", 2},
	{"bachelor", 3},
	{"master", 4},
	{"phd", 5},
	{"doctorate", 5},
}

// Requirements that name no recognizable level default to bachelor.
const defaultEducationLevel = 3

// MatchEducation scores a candidate's best degree level against the
// highest level named across the required education strings. Levels
// are detected by case-insensitive substring ("Bachelor of Science"
// contains "bachelor").
func MatchEducation(required []string, entries []candidate.EducationEntry) float64 {
	if len(required) == 0 {
		return 100.0
	}

	requiredLevel := 0
	for _, edu := range required {
		if lvl := detectLevel(edu); lvl > requiredLevel {
			requiredLevel = lvl
		}
	}
	if requiredLevel == 0 {
		requiredLevel = defaultEducationLevel
	}

	candidateLevel := 0
	for _, entry := range entries {
		if lvl := detectLevel(entry.Degree); lvl > candidateLevel {
			candidateLevel = lvl
		}
	}

	switch {
	case candidateLevel >= requiredLevel:
		return 100.0
	case candidateLevel == requiredLevel-1:
		return 80.0
	case candidateLevel == requiredLevel-2:
		return 60.0
	default:
		return 40.0
	}
}

// detectLevel returns the highest hierarchy level whose label occurs
// in the text, or 0 when none does.
func detectLevel(text string) int {
	lower := strings.ToLower(text)
	level := 0
	for _, entry := range educationLevels {
		if strings.Contains(lower, entry.label) && entry.level > level {
			level = entry.level
		}
	}
	return level
}
