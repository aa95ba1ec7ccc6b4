package match

import (
	"context"

	"github.com/talentsift/screening/pkg/kernel"
)

type Repository interface {
	// Upsert stores a match result, overwriting any previous result for
	// the same (job, candidate) pair
	Upsert(ctx context.Context, result *Result) error

	// GetByJobAndCandidate retrieves one match result
	GetByJobAndCandidate(ctx context.Context, jobID kernel.JobID, candidateID kernel.CandidateID) (*Result, error)

	// ListByJob retrieves all match results for a job, best score first
	ListByJob(ctx context.Context, jobID kernel.JobID) ([]*Result, error)

	// SetShortlisted flags the given candidates as shortlisted for the job
	// and clears the flag on everyone else
	SetShortlisted(ctx context.Context, jobID kernel.JobID, candidateIDs []kernel.CandidateID) error

	// DeleteByJob removes all match results for a job
	DeleteByJob(ctx context.Context, jobID kernel.JobID) error
}

// AdvisoryScorer is a best-effort external evaluator. It receives a
// textual prompt summarizing job, candidate and preliminary scores and
// returns a free-text reply expected to contain a numeric score.
// Implementations must honor ctx cancellation; callers treat every
// failure as advice-unavailable and fall back to the weighted score.
type AdvisoryScorer interface {
	Advise(ctx context.Context, prompt string) (string, error)
}
