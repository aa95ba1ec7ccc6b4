package matchsrv

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/talentsift/screening/pkg/kernel"
	"github.com/talentsift/screening/pkg/logx"
	"github.com/talentsift/screening/screening/candidate"
	"github.com/talentsift/screening/screening/job"
	"github.com/talentsift/screening/screening/match"
)

// Sub-score weights. Skill fit dominates suitability, experience is
// secondary, education is a weak signal.
const (
	skillWeight      = 0.5
	experienceWeight = 0.3
	educationWeight  = 0.2
)

// Upper bound on one advisory round trip. Expiry is treated like any
// other advisor failure.
const defaultAdvisorTimeout = 20 * time.Second

var numberPattern = regexp.MustCompile(`(\d+\.?\d*)`)

// WeightedAverage is the deterministic overall score
func WeightedAverage(skill, experience, education float64) float64 {
	return skill*skillWeight + experience*experienceWeight + education*educationWeight
}

// Combiner produces the overall score from the three sub-scores,
// optionally consulting an advisory scorer. The advisor is best-effort
// refinement only: any failure falls back to the weighted average and
// is never surfaced to the caller.
type Combiner struct {
	advisor match.AdvisoryScorer
	timeout time.Duration
}

// NewCombiner creates a combiner. A nil advisor disables the advisory
// path entirely.
func NewCombiner(advisor match.AdvisoryScorer) *Combiner {
	return &Combiner{
		advisor: advisor,
		timeout: defaultAdvisorTimeout,
	}
}

// Combine returns the overall match score in [0, 100]
func (c *Combiner) Combine(
	ctx context.Context,
	desc *job.Description,
	profile *candidate.Profile,
	skillScore, experienceScore, educationScore float64,
) float64 {
	weighted := WeightedAverage(skillScore, experienceScore, educationScore)

	if c.advisor == nil {
		return weighted
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := buildAdvisorPrompt(desc, profile, skillScore, experienceScore, educationScore)
	reply, err := c.advisor.Advise(ctx, prompt)
	if err != nil {
		logx.Debugf("Advisory scorer unavailable, using weighted average: %v", err)
		return weighted
	}

	m := numberPattern.FindStringSubmatch(reply)
	if m == nil {
		logx.Debugf("Advisory reply contained no numeric score: %q", reply)
		return weighted
	}

	score, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return weighted
	}

	return kernel.Score(score).Clamp().Float()
}

// buildAdvisorPrompt summarizes job, candidate and the preliminary
// scores into a single evaluation request expecting a bare number back.
func buildAdvisorPrompt(
	desc *job.Description,
	profile *candidate.Profile,
	skillScore, experienceScore, educationScore float64,
) string {
	var b strings.Builder

	b.WriteString("You are an expert HR professional evaluating a candidate for a job position.\n")
	b.WriteString("Analyze the match between the candidate and job description, and provide a final match score (0-100).\n\n")

	b.WriteString("Job Description:\n")
	fmt.Fprintf(&b, "- Title: %s\n", desc.Title)
	fmt.Fprintf(&b, "- Company: %s\n", desc.Company)
	fmt.Fprintf(&b, "- Required Skills: %s\n", strings.Join(desc.Requirements.RequiredSkills, ", "))
	fmt.Fprintf(&b, "- Preferred Skills: %s\n", strings.Join(desc.Requirements.PreferredSkills, ", "))
	fmt.Fprintf(&b, "- Required Experience: %s\n", desc.Requirements.Experience)
	fmt.Fprintf(&b, "- Required Education: %s\n\n", strings.Join(desc.Requirements.Education, ", "))

	b.WriteString("Candidate Profile:\n")
	fmt.Fprintf(&b, "- Name: %s\n", profile.Name)
	fmt.Fprintf(&b, "- Skills: %s\n", strings.Join(profile.Skills, ", "))
	fmt.Fprintf(&b, "- Experience: %d positions, with titles including %s\n",
		len(profile.Experience), strings.Join(profile.ExperienceTitles(), ", "))

	degrees := make([]string, 0, len(profile.Education))
	for _, edu := range profile.Education {
		degrees = append(degrees, fmt.Sprintf("%s in %s from %s", edu.Degree, edu.FieldOfStudy, edu.Institution))
	}
	fmt.Fprintf(&b, "- Education: %s\n\n", strings.Join(degrees, ", "))

	b.WriteString("Preliminary Scores:\n")
	fmt.Fprintf(&b, "- Skill Match: %.1f%%\n", skillScore)
	fmt.Fprintf(&b, "- Experience Match: %.1f%%\n", experienceScore)
	fmt.Fprintf(&b, "- Education Match: %.1f%%\n\n", educationScore)

	b.WriteString("Based on your expert analysis, provide a single overall match score as a percentage (0-100).\n")
	b.WriteString("Just return the number without any explanation or additional text.\n")

	return b.String()
}
