package match

import (
	"time"

	"github.com/talentsift/screening/pkg/kernel"
)

// Detail keys present in Result.Details for every match
const (
	DetailMatchedSkills        = "matched_skills"
	DetailMissingSkills        = "missing_skills"
	DetailSkillPercentage      = "skill_match_percentage"
	DetailExperiencePercentage = "experience_match_percentage"
	DetailEducationPercentage  = "education_match_percentage"
)

// Result is the outcome of matching one candidate against one job.
// Immutable once created; re-matching the same pair overwrites by
// (job_id, candidate_id) identity in storage.
type Result struct {
	JobID       kernel.JobID       `db:"job_id" json:"job_id"`
	CandidateID kernel.CandidateID `db:"candidate_id" json:"candidate_id"`

	OverallScore    kernel.Score `db:"overall_match_score" json:"overall_match_score"`
	SkillScore      kernel.Score `db:"skill_match_score" json:"skill_match_score"`
	ExperienceScore kernel.Score `db:"experience_match_score" json:"experience_match_score"`
	EducationScore  kernel.Score `db:"education_match_score" json:"education_match_score"`

	Details map[string]any `db:"match_details" json:"match_details"`

	IsShortlisted bool      `db:"is_shortlisted" json:"is_shortlisted"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// MatchedSkills returns the matched-skill list from Details
func (r *Result) MatchedSkills() []string {
	if v, ok := r.Details[DetailMatchedSkills].([]string); ok {
		return v
	}
	return nil
}

// MissingSkills returns the missing-skill list from Details
func (r *Result) MissingSkills() []string {
	if v, ok := r.Details[DetailMissingSkills].([]string); ok {
		return v
	}
	return nil
}

// ScoresValid reports whether every score lies in [0, 100]
func (r *Result) ScoresValid() bool {
	return r.OverallScore.IsValid() &&
		r.SkillScore.IsValid() &&
		r.ExperienceScore.IsValid() &&
		r.EducationScore.IsValid()
}

// ShortlistStats summarizes one shortlisting run
type ShortlistStats struct {
	TotalCandidates     int     `json:"total_candidates"`
	ShortlistedCount    int     `json:"shortlisted_count"`
	RejectedCount       int     `json:"rejected_count"`
	ShortlistPercentage float64 `json:"shortlist_percentage"`
	AvgShortlistedScore float64 `json:"avg_shortlisted_score"`
	AvgRejectedScore    float64 `json:"avg_rejected_score"`
}

// ShortlistResult partitions a scored population into shortlisted and
// rejected candidates. Derived entirely from the input batch; stateless.
type ShortlistResult struct {
	JobID                 kernel.JobID         `json:"job_id"`
	ShortlistedCandidates []kernel.CandidateID `json:"shortlisted_candidates"`
	RejectedCandidates    []kernel.CandidateID `json:"rejected_candidates"`
	ShortlistThreshold    float64              `json:"shortlist_threshold"`
	ShortlistStats        ShortlistStats       `json:"shortlist_stats"`
}
