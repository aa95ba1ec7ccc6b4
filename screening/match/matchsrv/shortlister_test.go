package matchsrv

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talentsift/screening/pkg/kernel"
	"github.com/talentsift/screening/screening/match"
)

func scoredResult(jobID, candidateID string, score float64) match.Result {
	return match.Result{
		JobID:        kernel.JobID(jobID),
		CandidateID:  kernel.CandidateID(candidateID),
		OverallScore: kernel.Score(score),
	}
}

func TestShortlist(t *testing.T) {
	results := []match.Result{
		scoredResult("job-1", "cand-a", 85.5),
		scoredResult("job-1", "cand-b", 65.2),
		scoredResult("job-1", "cand-c", 92.7),
		scoredResult("job-1", "cand-d", 72.0),
	}

	out := Shortlist(results, DefaultShortlistThreshold)

	assert.Equal(t, kernel.JobID("job-1"), out.JobID)
	assert.Equal(t, []kernel.CandidateID{"cand-a", "cand-c", "cand-d"}, out.ShortlistedCandidates)
	assert.Equal(t, []kernel.CandidateID{"cand-b"}, out.RejectedCandidates)
	assert.Equal(t, 70.0, out.ShortlistThreshold)

	stats := out.ShortlistStats
	assert.Equal(t, 4, stats.TotalCandidates)
	assert.Equal(t, 3, stats.ShortlistedCount)
	assert.Equal(t, 1, stats.RejectedCount)
	assert.InDelta(t, 75.0, stats.ShortlistPercentage, 0.001)
	assert.InDelta(t, (85.5+92.7+72.0)/3, stats.AvgShortlistedScore, 0.001)
	assert.InDelta(t, 65.2, stats.AvgRejectedScore, 0.001)
}

func TestShortlistThresholdIsInclusive(t *testing.T) {
	out := Shortlist([]match.Result{scoredResult("job-1", "cand-a", 70.0)}, 70.0)
	assert.Equal(t, []kernel.CandidateID{"cand-a"}, out.ShortlistedCandidates)
	assert.Empty(t, out.RejectedCandidates)
}

func TestShortlistCustomThreshold(t *testing.T) {
	results := []match.Result{
		scoredResult("job-1", "cand-a", 85.5),
		scoredResult("job-1", "cand-b", 65.2),
	}
	out := Shortlist(results, 90.0)
	assert.Empty(t, out.ShortlistedCandidates)
	assert.Len(t, out.RejectedCandidates, 2)
	assert.InDelta(t, 0.0, out.ShortlistStats.ShortlistPercentage, 0.001)
	assert.InDelta(t, 0.0, out.ShortlistStats.AvgShortlistedScore, 0.001)
}

func TestShortlistEmptyBatch(t *testing.T) {
	out := Shortlist(nil, DefaultShortlistThreshold)
	assert.Equal(t, kernel.JobID("unknown"), out.JobID)
	assert.Empty(t, out.ShortlistedCandidates)
	assert.Empty(t, out.RejectedCandidates)
	assert.Equal(t, match.ShortlistStats{}, out.ShortlistStats)
}
