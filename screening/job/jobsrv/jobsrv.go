package jobsrv

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/talentsift/screening/pkg/errx"
	"github.com/talentsift/screening/pkg/kernel"
	"github.com/talentsift/screening/pkg/logx"
	"github.com/talentsift/screening/screening/job"
)

// JobService provides business operations for job descriptions
type JobService struct {
	jobRepo job.Repository
	parser  job.Parser
}

// NewJobService creates a new instance of the job service
func NewJobService(jobRepo job.Repository, parser job.Parser) *JobService {
	return &JobService{
		jobRepo: jobRepo,
		parser:  parser,
	}
}

// ParseAndCreate extracts a structured description from raw posting
// text and stores it
func (s *JobService) ParseAndCreate(ctx context.Context, req job.ParseJobRequest) (*job.ParseJobResponse, error) {
	text := strings.TrimSpace(req.JobDescriptionText)
	if text == "" {
		return nil, job.ErrInvalidJobData().WithDetail("field", "job_description_text")
	}

	desc, err := s.parser.ParseJobDescription(ctx, text)
	if err != nil {
		return nil, err
	}

	if desc.ID.IsEmpty() {
		desc.ID = kernel.NewJobID(uuid.NewString())
	}
	now := time.Now()
	desc.CreatedAt = now
	desc.UpdatedAt = now

	if err := s.jobRepo.Create(ctx, desc); err != nil {
		return nil, err
	}

	logx.Infof("Parsed and stored job description %s (%s)", desc.ID, desc.Title)

	return &job.ParseJobResponse{
		JobID:   desc.ID,
		Title:   desc.Title,
		Company: desc.Company,
		Success: true,
	}, nil
}

// CreateJob stores a job description built from structured input
func (s *JobService) CreateJob(ctx context.Context, req job.CreateJobRequest) (*job.Description, error) {
	if req.Title == "" {
		return nil, job.ErrInvalidJobData().WithDetail("field", "title")
	}

	now := time.Now()
	desc := &job.Description{
		ID:               kernel.NewJobID(uuid.NewString()),
		Title:            req.Title,
		Company:          req.Company,
		Location:         req.Location,
		JobType:          req.JobType,
		Summary:          req.Summary,
		Responsibilities: req.Responsibilities,
		Requirements:     req.Requirements,
		SalaryRange:      req.SalaryRange,
		PostingDate:      req.PostingDate,
		Department:       req.Department,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.jobRepo.Create(ctx, desc); err != nil {
		return nil, err
	}

	return desc, nil
}

// GetJobByID retrieves a job description by ID
func (s *JobService) GetJobByID(ctx context.Context, jobID kernel.JobID) (*job.DescriptionResponse, error) {
	desc, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	resp := s.toResponse(desc)
	return &resp, nil
}

// ListJobs retrieves job descriptions with pagination
func (s *JobService) ListJobs(ctx context.Context, pagination kernel.PaginationOptions) (*job.PaginatedJobsResponse, error) {
	jobs, err := s.jobRepo.List(ctx, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list jobs", errx.TypeInternal)
	}

	responses := make([]job.DescriptionResponse, 0, len(jobs.Items))
	for _, d := range jobs.Items {
		responses = append(responses, s.toResponse(&d))
	}

	return &kernel.Paginated[job.DescriptionResponse]{
		Items: responses,
		Page:  jobs.Page,
		Empty: jobs.Empty,
	}, nil
}

// UpdateJob applies the provided fields to an existing description
func (s *JobService) UpdateJob(ctx context.Context, jobID kernel.JobID, req job.UpdateJobRequest) (*job.Description, error) {
	desc, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	updated := false

	if req.Title != nil && *req.Title != desc.Title {
		desc.Title = *req.Title
		updated = true
	}
	if req.Company != nil && *req.Company != desc.Company {
		desc.Company = *req.Company
		updated = true
	}
	if req.Location != nil && *req.Location != desc.Location {
		desc.Location = *req.Location
		updated = true
	}
	if req.JobType != nil && *req.JobType != desc.JobType {
		desc.JobType = *req.JobType
		updated = true
	}
	if req.Summary != nil && *req.Summary != desc.Summary {
		desc.Summary = *req.Summary
		updated = true
	}
	if req.Responsibilities != nil {
		desc.Responsibilities = *req.Responsibilities
		updated = true
	}
	if req.Requirements != nil {
		desc.Requirements = *req.Requirements
		updated = true
	}
	if req.SalaryRange != nil && *req.SalaryRange != desc.SalaryRange {
		desc.SalaryRange = *req.SalaryRange
		updated = true
	}
	if req.Department != nil && *req.Department != desc.Department {
		desc.Department = *req.Department
		updated = true
	}

	if updated {
		desc.UpdatedAt = time.Now()
		if err := s.jobRepo.Update(ctx, jobID, desc); err != nil {
			return nil, errx.Wrap(err, "failed to update job", errx.TypeInternal)
		}
	}

	return desc, nil
}

// DeleteJob removes a job description
func (s *JobService) DeleteJob(ctx context.Context, jobID kernel.JobID) error {
	exists, err := s.jobRepo.Exists(ctx, jobID)
	if err != nil {
		return errx.Wrap(err, "failed to check job existence", errx.TypeInternal)
	}
	if !exists {
		return job.ErrJobNotFound().WithDetail("job_id", jobID.String())
	}

	return s.jobRepo.Delete(ctx, jobID)
}

// ============================================================================
// Helper Methods
// ============================================================================

func (s *JobService) toResponse(d *job.Description) job.DescriptionResponse {
	return job.DescriptionResponse{
		ID:               d.ID,
		Title:            d.Title,
		Company:          d.Company,
		Location:         d.Location,
		JobType:          d.JobType,
		Summary:          d.Summary,
		Responsibilities: d.Responsibilities,
		Requirements:     d.Requirements,
		SalaryRange:      d.SalaryRange,
		PostingDate:      d.PostingDate,
		Department:       d.Department,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}
