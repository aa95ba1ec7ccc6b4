package match

import (
	"github.com/talentsift/screening/pkg/kernel"
)

// MatchRequest - DTO for matching candidates against a job.
// Empty CandidateIDs means "match the whole candidate population".
type MatchRequest struct {
	JobID        kernel.JobID         `json:"job_id" validate:"required"`
	CandidateIDs []kernel.CandidateID `json:"candidate_ids,omitempty"`
}

// MatchResponse - DTO returned after a matching run
type MatchResponse struct {
	JobTitle          kernel.JobTitle `json:"job_title"`
	Company           kernel.Company  `json:"company"`
	CandidatesMatched int             `json:"candidates_matched"`
	Matches           []*Result       `json:"matches"`
}

// ShortlistRequest - DTO for shortlisting a job's matched candidates
type ShortlistRequest struct {
	JobID     kernel.JobID `json:"job_id" validate:"required"`
	Threshold *float64     `json:"threshold,omitempty"`
}

// ShortlistResponse - DTO returned after a shortlisting run
type ShortlistResponse struct {
	JobTitle  kernel.JobTitle  `json:"job_title"`
	Company   kernel.Company   `json:"company"`
	Shortlist *ShortlistResult `json:"shortlist"`
}
