package matchsrv

import (
	"github.com/talentsift/screening/internal/textnorm"
)

// MatchSkills scores a candidate's skill list against a job's skill
// list using symmetric token-set containment: a job skill is matched
// when its normalized tokens are a subset of some candidate skill's
// tokens, or vice versa. "Python" matches "Python programming", and
// "cloud infrastructure management" matches "cloud infrastructure".
//
// Returns the percentage of job skills matched and the matched skills
// in job-skill order. An empty job list is a full match, not a penalty.
func MatchSkills(jobSkills, candidateSkills []string) (float64, []string) {
	if len(jobSkills) == 0 {
		return 100.0, []string{}
	}

	candidateSets := make([]map[string]struct{}, len(candidateSkills))
	for i, skill := range candidateSkills {
		candidateSets[i] = textnorm.TokenSet(skill)
	}

	matched := make([]string, 0, len(jobSkills))
	seen := make(map[string]struct{}, len(jobSkills))
	matchedCount := 0

	for _, jobSkill := range jobSkills {
		jobSet := textnorm.TokenSet(jobSkill)

		// first containment match wins; stop scanning for this skill
		for _, candidateSet := range candidateSets {
			if textnorm.IsSubset(jobSet, candidateSet) || textnorm.IsSubset(candidateSet, jobSet) {
				matchedCount++
				if _, dup := seen[jobSkill]; !dup {
					seen[jobSkill] = struct{}{}
					matched = append(matched, jobSkill)
				}
				break
			}
		}
	}

	score := float64(matchedCount) / float64(len(jobSkills)) * 100.0
	return score, matched
}

// MissingSkills returns the job skills absent from matched, preserving
// job-skill order and dropping duplicates.
func MissingSkills(jobSkills, matched []string) []string {
	matchedSet := make(map[string]struct{}, len(matched))
	for _, skill := range matched {
		matchedSet[skill] = struct{}{}
	}

	missing := make([]string, 0, len(jobSkills))
	seen := make(map[string]struct{}, len(jobSkills))
	for _, skill := range jobSkills {
		if _, ok := matchedSet[skill]; ok {
			continue
		}
		if _, dup := seen[skill]; dup {
			continue
		}
		seen[skill] = struct{}{}
		missing = append(missing, skill)
	}
	return missing
}
