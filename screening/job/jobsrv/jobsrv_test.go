package jobsrv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentsift/screening/pkg/kernel"
	"github.com/talentsift/screening/screening/job"
)

type fakeJobRepo struct {
	jobs map[kernel.JobID]*job.Description
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[kernel.JobID]*job.Description)}
}

func (f *fakeJobRepo) Create(ctx context.Context, desc *job.Description) error {
	if _, ok := f.jobs[desc.ID]; ok {
		return job.ErrJobAlreadyExists().WithDetail("job_id", desc.ID.String())
	}
	f.jobs[desc.ID] = desc
	return nil
}
func (f *fakeJobRepo) Update(ctx context.Context, id kernel.JobID, desc *job.Description) error {
	if _, ok := f.jobs[id]; !ok {
		return job.ErrJobNotFound().WithDetail("job_id", id.String())
	}
	f.jobs[id] = desc
	return nil
}
func (f *fakeJobRepo) GetByID(ctx context.Context, id kernel.JobID) (*job.Description, error) {
	if d, ok := f.jobs[id]; ok {
		copied := *d
		return &copied, nil
	}
	return nil, job.ErrJobNotFound().WithDetail("job_id", id.String())
}
func (f *fakeJobRepo) Delete(ctx context.Context, id kernel.JobID) error {
	delete(f.jobs, id)
	return nil
}
func (f *fakeJobRepo) List(ctx context.Context, p kernel.PaginationOptions) (*kernel.Paginated[job.Description], error) {
	items := make([]job.Description, 0, len(f.jobs))
	for _, d := range f.jobs {
		items = append(items, *d)
	}
	return kernel.NewPaginated(items, p.Normalize(), int64(len(items))), nil
}
func (f *fakeJobRepo) Exists(ctx context.Context, id kernel.JobID) (bool, error) {
	_, ok := f.jobs[id]
	return ok, nil
}

type fakeParser struct {
	desc *job.Description
	err  error
}

func (f *fakeParser) ParseJobDescription(ctx context.Context, text string) (*job.Description, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.desc, nil
}

func TestParseAndCreate(t *testing.T) {
	repo := newFakeJobRepo()
	parser := &fakeParser{desc: &job.Description{
		Title:   "Software Engineer",
		Company: "TechCorp",
		Requirements: job.Requirement{
			RequiredSkills: []string{"Python", "AWS"},
			Experience:     "5+ years",
		},
	}}
	svc := NewJobService(repo, parser)

	resp, err := svc.ParseAndCreate(context.Background(), job.ParseJobRequest{
		JobDescriptionText: "We are hiring a Software Engineer...",
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, kernel.JobTitle("Software Engineer"), resp.Title)
	assert.False(t, resp.JobID.IsEmpty())

	stored, err := repo.GetByID(context.Background(), resp.JobID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Python", "AWS"}, stored.Requirements.RequiredSkills)
}

func TestParseAndCreateRejectsEmptyText(t *testing.T) {
	svc := NewJobService(newFakeJobRepo(), &fakeParser{})

	_, err := svc.ParseAndCreate(context.Background(), job.ParseJobRequest{JobDescriptionText: "   "})
	require.Error(t, err)
}

func TestCreateJobRequiresTitle(t *testing.T) {
	svc := NewJobService(newFakeJobRepo(), &fakeParser{})

	_, err := svc.CreateJob(context.Background(), job.CreateJobRequest{Company: "TechCorp"})
	require.Error(t, err)
}

func TestUpdateJobAppliesPartialFields(t *testing.T) {
	repo := newFakeJobRepo()
	svc := NewJobService(repo, &fakeParser{})

	created, err := svc.CreateJob(context.Background(), job.CreateJobRequest{
		Title:    "Software Engineer",
		Company:  "TechCorp",
		Location: "Remote",
	})
	require.NoError(t, err)

	newTitle := kernel.JobTitle("Senior Software Engineer")
	updated, err := svc.UpdateJob(context.Background(), created.ID, job.UpdateJobRequest{
		Title: &newTitle,
	})
	require.NoError(t, err)

	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, kernel.Company("TechCorp"), updated.Company)
	assert.Equal(t, "Remote", updated.Location)
}

func TestDeleteJobUnknownID(t *testing.T) {
	svc := NewJobService(newFakeJobRepo(), &fakeParser{})

	err := svc.DeleteJob(context.Background(), kernel.JobID("missing"))
	require.Error(t, err)
}
