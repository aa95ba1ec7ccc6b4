package matchsrv

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/talentsift/screening/pkg/kernel"
	"github.com/talentsift/screening/pkg/logx"
	"github.com/talentsift/screening/screening/candidate"
	"github.com/talentsift/screening/screening/job"
	"github.com/talentsift/screening/screening/match"
)

// Number of candidates scored concurrently during a batch run. Each
// one may cost an advisory round trip, so this also caps in-flight
// advisor calls.
const matchConcurrency = 8

type Service struct {
	matchRepo     match.Repository
	jobRepo       job.Repository
	candidateRepo candidate.Repository
	combiner      *Combiner
	now           func() time.Time
}

func NewService(
	matchRepo match.Repository,
	jobRepo job.Repository,
	candidateRepo candidate.Repository,
	combiner *Combiner,
) *Service {
	return &Service{
		matchRepo:     matchRepo,
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		combiner:      combiner,
		now:           time.Now,
	}
}

// MatchCandidate scores a single candidate against a single job and
// persists the result, overwriting any previous result for the pair.
func (s *Service) MatchCandidate(ctx context.Context, jobID kernel.JobID, candidateID kernel.CandidateID) (*match.Result, error) {
	desc, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	profile, err := s.candidateRepo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	result := s.score(ctx, desc, profile)
	if err := s.matchRepo.Upsert(ctx, result); err != nil {
		return nil, match.ErrMatchStoreFailed().WithDetail("cause", err.Error())
	}
	return result, nil
}

// MatchJob scores a set of candidates against a job. An empty id list
// means the whole candidate population. Results are persisted and
// returned best score first.
func (s *Service) MatchJob(ctx context.Context, req match.MatchRequest) (*match.MatchResponse, error) {
	desc, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, err
	}

	var profiles []*candidate.Profile
	if len(req.CandidateIDs) > 0 {
		profiles, err = s.candidateRepo.GetByIDs(ctx, req.CandidateIDs)
	} else {
		profiles, err = s.candidateRepo.ListAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, match.ErrNoCandidates().WithDetail("job_id", req.JobID.String())
	}

	logx.Infof("Matching %d candidates against job %s", len(profiles), req.JobID)

	results := make([]*match.Result, len(profiles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(matchConcurrency)
	for i, profile := range profiles {
		g.Go(func() error {
			result := s.score(gctx, desc, profile)
			if err := s.matchRepo.Upsert(gctx, result); err != nil {
				return match.ErrMatchStoreFailed().
					WithDetail("candidate_id", profile.ID.String()).
					WithDetail("cause", err.Error())
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortByScoreDesc(results)

	return &match.MatchResponse{
		JobTitle:          desc.Title,
		Company:           desc.Company,
		CandidatesMatched: len(results),
		Matches:           results,
	}, nil
}

// ShortlistJob partitions a job's stored match results by threshold
// and persists the shortlist flags.
func (s *Service) ShortlistJob(ctx context.Context, req match.ShortlistRequest) (*match.ShortlistResponse, error) {
	desc, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, err
	}

	stored, err := s.matchRepo.ListByJob(ctx, req.JobID)
	if err != nil {
		return nil, err
	}
	if len(stored) == 0 {
		return nil, match.ErrNoCandidates().WithDetail("job_id", req.JobID.String())
	}

	threshold := DefaultShortlistThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	results := make([]match.Result, len(stored))
	for i, r := range stored {
		results[i] = *r
	}
	shortlist := Shortlist(results, threshold)

	if err := s.matchRepo.SetShortlisted(ctx, req.JobID, shortlist.ShortlistedCandidates); err != nil {
		return nil, match.ErrMatchStoreFailed().WithDetail("cause", err.Error())
	}

	logx.Infof("Shortlisted %d of %d candidates for job %s (threshold %.1f)",
		shortlist.ShortlistStats.ShortlistedCount, shortlist.ShortlistStats.TotalCandidates,
		req.JobID, threshold)

	return &match.ShortlistResponse{
		JobTitle:  desc.Title,
		Company:   desc.Company,
		Shortlist: &shortlist,
	}, nil
}

// ListMatches returns the stored match results for a job, best first
func (s *Service) ListMatches(ctx context.Context, jobID kernel.JobID) ([]*match.Result, error) {
	if _, err := s.jobRepo.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	return s.matchRepo.ListByJob(ctx, jobID)
}

// score runs the full scoring pipeline for one job/candidate pair
func (s *Service) score(ctx context.Context, desc *job.Description, profile *candidate.Profile) *match.Result {
	currentYear := s.now().Year()

	jobSkills := desc.Requirements.AllSkills()
	skillScore, matched := MatchSkills(jobSkills, profile.Skills)
	experienceScore := MatchExperience(desc.Requirements.Experience, profile.Experience, currentYear)
	educationScore := MatchEducation(desc.Requirements.Education, profile.Education)

	overall := s.combiner.Combine(ctx, desc, profile, skillScore, experienceScore, educationScore)

	return &match.Result{
		JobID:           desc.ID,
		CandidateID:     profile.ID,
		OverallScore:    kernel.Score(overall),
		SkillScore:      kernel.Score(skillScore),
		ExperienceScore: kernel.Score(experienceScore),
		EducationScore:  kernel.Score(educationScore),
		Details: map[string]any{
			match.DetailMatchedSkills:        matched,
			match.DetailMissingSkills:        MissingSkills(jobSkills, matched),
			match.DetailSkillPercentage:      skillScore,
			match.DetailExperiencePercentage: experienceScore,
			match.DetailEducationPercentage:  educationScore,
		},
		IsShortlisted: false,
		CreatedAt:     s.now().UTC(),
	}
}

func sortByScoreDesc(results []*match.Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].OverallScore > results[j].OverallScore
	})
}
