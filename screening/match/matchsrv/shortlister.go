package matchsrv

import (
	"github.com/talentsift/screening/pkg/kernel"
	"github.com/talentsift/screening/screening/match"
)

// DefaultShortlistThreshold is the overall score at or above which a
// candidate is shortlisted when the caller gives no threshold.
const DefaultShortlistThreshold = 70.0

// Shortlist partitions match results for one job by overall score.
// The threshold is inclusive. Results are assumed to belong to the
// same job; an empty batch yields a result with job id "unknown" and
// zeroed stats.
func Shortlist(results []match.Result, threshold float64) match.ShortlistResult {
	out := match.ShortlistResult{
		JobID:                 kernel.JobID("unknown"),
		ShortlistedCandidates: []kernel.CandidateID{},
		RejectedCandidates:    []kernel.CandidateID{},
		ShortlistThreshold:    threshold,
	}
	if len(results) == 0 {
		return out
	}

	out.JobID = results[0].JobID

	var shortlistedSum, rejectedSum float64
	for _, r := range results {
		if r.OverallScore.Float() >= threshold {
			out.ShortlistedCandidates = append(out.ShortlistedCandidates, r.CandidateID)
			shortlistedSum += r.OverallScore.Float()
		} else {
			out.RejectedCandidates = append(out.RejectedCandidates, r.CandidateID)
			rejectedSum += r.OverallScore.Float()
		}
	}

	stats := match.ShortlistStats{
		TotalCandidates:  len(results),
		ShortlistedCount: len(out.ShortlistedCandidates),
		RejectedCount:    len(out.RejectedCandidates),
	}
	stats.ShortlistPercentage = float64(stats.ShortlistedCount) / float64(stats.TotalCandidates) * 100
	if stats.ShortlistedCount > 0 {
		stats.AvgShortlistedScore = shortlistedSum / float64(stats.ShortlistedCount)
	}
	if stats.RejectedCount > 0 {
		stats.AvgRejectedScore = rejectedSum / float64(stats.RejectedCount)
	}
	out.ShortlistStats = stats

	return out
}
