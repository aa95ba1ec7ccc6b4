package candidatesrv

import (
	"context"
	"errors"
	"io"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentsift/screening/pkg/kernel"
	"github.com/talentsift/screening/screening/candidate"
)

// ============================================================================
// In-memory fakes
// ============================================================================

type fakeCandidateRepo struct {
	profiles   map[kernel.CandidateID]*candidate.Profile
	embeddings map[kernel.CandidateID]kernel.ProfileEmbedding
	createErr  error
	hits       []candidate.SearchHit
}

func newFakeCandidateRepo() *fakeCandidateRepo {
	return &fakeCandidateRepo{
		profiles:   make(map[kernel.CandidateID]*candidate.Profile),
		embeddings: make(map[kernel.CandidateID]kernel.ProfileEmbedding),
	}
}

func (f *fakeCandidateRepo) Create(ctx context.Context, p *candidate.Profile) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.profiles[p.ID] = p
	return nil
}
func (f *fakeCandidateRepo) Update(ctx context.Context, id kernel.CandidateID, p *candidate.Profile) error {
	f.profiles[id] = p
	return nil
}
func (f *fakeCandidateRepo) GetByID(ctx context.Context, id kernel.CandidateID) (*candidate.Profile, error) {
	if p, ok := f.profiles[id]; ok {
		return p, nil
	}
	return nil, candidate.ErrCandidateNotFound().WithDetail("candidate_id", id.String())
}
func (f *fakeCandidateRepo) GetByIDs(ctx context.Context, ids []kernel.CandidateID) ([]*candidate.Profile, error) {
	var out []*candidate.Profile
	for _, id := range ids {
		if p, ok := f.profiles[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}
func (f *fakeCandidateRepo) GetByEmail(ctx context.Context, email kernel.Email) (*candidate.Profile, error) {
	for _, p := range f.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, candidate.ErrCandidateNotFound().WithDetail("email", email.String())
}
func (f *fakeCandidateRepo) List(ctx context.Context, p kernel.PaginationOptions) (*kernel.Paginated[candidate.Profile], error) {
	items := make([]candidate.Profile, 0, len(f.profiles))
	for _, prof := range f.profiles {
		items = append(items, *prof)
	}
	return kernel.NewPaginated(items, p.Normalize(), int64(len(items))), nil
}
func (f *fakeCandidateRepo) ListAll(ctx context.Context) ([]*candidate.Profile, error) {
	var out []*candidate.Profile
	for _, p := range f.profiles {
		out = append(out, p)
	}
	return out, nil
}
func (f *fakeCandidateRepo) Delete(ctx context.Context, id kernel.CandidateID) error {
	delete(f.profiles, id)
	return nil
}
func (f *fakeCandidateRepo) UpdateEmbedding(ctx context.Context, id kernel.CandidateID, e kernel.ProfileEmbedding) error {
	f.embeddings[id] = e
	return nil
}
func (f *fakeCandidateRepo) SemanticSearch(ctx context.Context, e kernel.ProfileEmbedding, limit int) ([]candidate.SearchHit, error) {
	if limit < len(f.hits) {
		return f.hits[:limit], nil
	}
	return f.hits, nil
}

type fakeIntakeRepo struct {
	jobs map[kernel.IntakeJobID]*candidate.IntakeJob
}

func newFakeIntakeRepo() *fakeIntakeRepo {
	return &fakeIntakeRepo{jobs: make(map[kernel.IntakeJobID]*candidate.IntakeJob)}
}

func (f *fakeIntakeRepo) Create(ctx context.Context, job *candidate.IntakeJob) error {
	copied := *job
	f.jobs[job.ID] = &copied
	return nil
}
func (f *fakeIntakeRepo) Update(ctx context.Context, job *candidate.IntakeJob) error {
	copied := *job
	f.jobs[job.ID] = &copied
	return nil
}
func (f *fakeIntakeRepo) GetByID(ctx context.Context, id kernel.IntakeJobID) (*candidate.IntakeJob, error) {
	if j, ok := f.jobs[id]; ok {
		return j, nil
	}
	return nil, candidate.ErrIntakeJobNotFound().WithDetail("job_id", id.String())
}
func (f *fakeIntakeRepo) MarkAsProcessing(ctx context.Context, id kernel.IntakeJobID) error {
	j, ok := f.jobs[id]
	if !ok {
		return candidate.ErrIntakeJobNotFound()
	}
	j.Status = candidate.IntakeStatusProcessing
	return nil
}
func (f *fakeIntakeRepo) MarkAsCompleted(ctx context.Context, id kernel.IntakeJobID, candidateID kernel.CandidateID) error {
	j, ok := f.jobs[id]
	if !ok {
		return candidate.ErrIntakeJobNotFound()
	}
	j.Status = candidate.IntakeStatusCompleted
	j.CandidateID = &candidateID
	j.ProgressPercentage = 100
	return nil
}
func (f *fakeIntakeRepo) MarkAsFailed(ctx context.Context, id kernel.IntakeJobID, errorMsg string, details map[string]any) error {
	j, ok := f.jobs[id]
	if !ok {
		return candidate.ErrIntakeJobNotFound()
	}
	j.Status = candidate.IntakeStatusFailed
	j.ErrorMessage = errorMsg
	j.ErrorDetails = details
	j.AttemptCount++
	return nil
}
func (f *fakeIntakeRepo) UpdateProgress(ctx context.Context, id kernel.IntakeJobID, step candidate.IntakeStep, percentage int) error {
	j, ok := f.jobs[id]
	if !ok {
		return candidate.ErrIntakeJobNotFound()
	}
	j.CurrentStep = &step
	j.ProgressPercentage = percentage
	return nil
}

type fakeParser struct {
	profile *candidate.Profile
	err     error
	gotText string
}

func (f *fakeParser) ParseResume(ctx context.Context, text string) (*candidate.Profile, error) {
	f.gotText = text
	if f.err != nil {
		return nil, f.err
	}
	copied := *f.profile
	return &copied, nil
}

type fakeEmbedder struct {
	err error
}

func (f *fakeEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

type fakeFileSystem struct {
	files    map[string][]byte
	writeErr error
}

func newFakeFileSystem() *fakeFileSystem {
	return &fakeFileSystem{files: make(map[string][]byte)}
}

func (f *fakeFileSystem) ReadFile(ctx context.Context, filePath string) ([]byte, error) {
	if data, ok := f.files[filePath]; ok {
		return data, nil
	}
	return nil, errors.New("file not found: " + filePath)
}
func (f *fakeFileSystem) ReadFileStream(ctx context.Context, filePath string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeFileSystem) WriteFile(ctx context.Context, filePath string, data []byte) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.files[filePath] = data
	return nil
}
func (f *fakeFileSystem) WriteFileStream(ctx context.Context, filePath string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return f.WriteFile(ctx, filePath, data)
}
func (f *fakeFileSystem) DeleteFile(ctx context.Context, filePath string) error {
	delete(f.files, filePath)
	return nil
}
func (f *fakeFileSystem) Exists(ctx context.Context, filePath string) (bool, error) {
	_, ok := f.files[filePath]
	return ok, nil
}
func (f *fakeFileSystem) Join(parts ...string) string {
	return path.Join(parts...)
}

type fakeQueue struct {
	enqueued        []kernel.IntakeJobID
	delayed         []kernel.IntakeJobID
	enqueueErr      error
	enqueueDelayErr error
}

func (f *fakeQueue) Enqueue(ctx context.Context, id kernel.IntakeJobID, payload any) error {
	if f.enqueueErr != nil {
		return f.enqueueErr
	}
	f.enqueued = append(f.enqueued, id)
	return nil
}
func (f *fakeQueue) Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error) {
	return nil, nil
}
func (f *fakeQueue) EnqueueDelayed(ctx context.Context, id kernel.IntakeJobID, payload any, delay time.Duration) error {
	if f.enqueueDelayErr != nil {
		return f.enqueueDelayErr
	}
	f.delayed = append(f.delayed, id)
	return nil
}
func (f *fakeQueue) MoveDelayedToReady(ctx context.Context) (int, error) { return 0, nil }
func (f *fakeQueue) Size(ctx context.Context) (int64, error)            { return 0, nil }

// ============================================================================
// Fixtures
// ============================================================================

func parsedProfile() *candidate.Profile {
	return &candidate.Profile{
		ID:     kernel.CandidateID("cand-1"),
		Name:   "John Doe",
		Email:  "john.doe@email.com",
		Skills: []string{"Python", "AWS", "Docker"},
	}
}

func newServiceWith(repo *fakeCandidateRepo, intake *fakeIntakeRepo, parser *fakeParser, embedder *fakeEmbedder, files *fakeFileSystem, queue *fakeQueue) *Service {
	return NewService(repo, intake, parser, embedder, files, queue)
}

// ============================================================================
// Tests
// ============================================================================

func TestCreateCandidate(t *testing.T) {
	repo := newFakeCandidateRepo()
	svc := newServiceWith(repo, newFakeIntakeRepo(), &fakeParser{}, &fakeEmbedder{}, newFakeFileSystem(), &fakeQueue{})

	profile, err := svc.CreateCandidate(context.Background(), candidate.CreateCandidateRequest{
		Name:   "Jane Doe",
		Email:  "jane@example.com",
		Skills: []string{"Go", "Kubernetes"},
	})
	require.NoError(t, err)

	assert.False(t, profile.ID.IsEmpty())
	assert.Contains(t, repo.profiles, profile.ID)
	assert.Contains(t, repo.embeddings, profile.ID)
}

func TestCreateCandidateRejectsBadEmail(t *testing.T) {
	svc := newServiceWith(newFakeCandidateRepo(), newFakeIntakeRepo(), &fakeParser{}, &fakeEmbedder{}, newFakeFileSystem(), &fakeQueue{})

	_, err := svc.CreateCandidate(context.Background(), candidate.CreateCandidateRequest{
		Name:  "Jane Doe",
		Email: "not-an-email",
	})
	require.Error(t, err)
}

func TestCreateCandidateDuplicateEmail(t *testing.T) {
	repo := newFakeCandidateRepo()
	svc := newServiceWith(repo, newFakeIntakeRepo(), &fakeParser{}, &fakeEmbedder{}, newFakeFileSystem(), &fakeQueue{})

	_, err := svc.CreateCandidate(context.Background(), candidate.CreateCandidateRequest{
		Name:  "Jane Doe",
		Email: "jane@example.com",
	})
	require.NoError(t, err)

	_, err = svc.CreateCandidate(context.Background(), candidate.CreateCandidateRequest{
		Name:  "Jane Again",
		Email: "jane@example.com",
	})
	require.Error(t, err)
}

func TestUploadResumeQueuesJob(t *testing.T) {
	files := newFakeFileSystem()
	intake := newFakeIntakeRepo()
	queue := &fakeQueue{}
	svc := newServiceWith(newFakeCandidateRepo(), intake, &fakeParser{}, &fakeEmbedder{}, files, queue)

	resp, err := svc.UploadResume(context.Background(), "resume.txt", []byte("John Doe\nPython, AWS"))
	require.NoError(t, err)

	assert.Equal(t, candidate.IntakeStatusPending, resp.Status)
	assert.Equal(t, []kernel.IntakeJobID{resp.JobID}, queue.enqueued)

	job, err := intake.GetByID(context.Background(), resp.JobID)
	require.NoError(t, err)
	assert.Equal(t, "txt", job.FileType)
	assert.Contains(t, files.files, job.FilePath)
}

func TestUploadResumeRejectsUnknownFormat(t *testing.T) {
	svc := newServiceWith(newFakeCandidateRepo(), newFakeIntakeRepo(), &fakeParser{}, &fakeEmbedder{}, newFakeFileSystem(), &fakeQueue{})

	_, err := svc.UploadResume(context.Background(), "resume.docx", []byte("binary stuff"))
	require.Error(t, err)

	_, err = svc.UploadResume(context.Background(), "resume.pdf", []byte("plain text, not a PDF"))
	require.Error(t, err)
}

func TestProcessIntakeJobHappyPath(t *testing.T) {
	repo := newFakeCandidateRepo()
	intake := newFakeIntakeRepo()
	parser := &fakeParser{profile: parsedProfile()}
	files := newFakeFileSystem()
	svc := newServiceWith(repo, intake, parser, &fakeEmbedder{}, files, &fakeQueue{})

	resp, err := svc.UploadResume(context.Background(), "resume.txt", []byte("John Doe, Python developer"))
	require.NoError(t, err)

	job, err := intake.GetByID(context.Background(), resp.JobID)
	require.NoError(t, err)

	require.NoError(t, svc.ProcessIntakeJob(context.Background(), job))

	assert.Equal(t, "John Doe, Python developer", parser.gotText)

	stored := intake.jobs[resp.JobID]
	assert.Equal(t, candidate.IntakeStatusCompleted, stored.Status)
	require.NotNil(t, stored.CandidateID)
	assert.Contains(t, repo.profiles, *stored.CandidateID)
	assert.Contains(t, repo.embeddings, *stored.CandidateID)
}

func TestProcessIntakeJobRetriesOnFailure(t *testing.T) {
	intake := newFakeIntakeRepo()
	parser := &fakeParser{err: errors.New("model unavailable")}
	files := newFakeFileSystem()
	queue := &fakeQueue{}
	svc := newServiceWith(newFakeCandidateRepo(), intake, parser, &fakeEmbedder{}, files, queue)

	resp, err := svc.UploadResume(context.Background(), "resume.txt", []byte("some text"))
	require.NoError(t, err)

	job, err := intake.GetByID(context.Background(), resp.JobID)
	require.NoError(t, err)

	require.Error(t, svc.ProcessIntakeJob(context.Background(), job))

	// First failure schedules a retry instead of failing permanently.
	assert.Equal(t, []kernel.IntakeJobID{resp.JobID}, queue.delayed)
	stored := intake.jobs[resp.JobID]
	assert.Equal(t, candidate.IntakeStatusPending, stored.Status)
	assert.Equal(t, 1, stored.AttemptCount)
	assert.NotNil(t, stored.NextRetryAt)
}

func TestProcessIntakeJobPermanentFailure(t *testing.T) {
	intake := newFakeIntakeRepo()
	parser := &fakeParser{err: errors.New("model unavailable")}
	files := newFakeFileSystem()
	svc := newServiceWith(newFakeCandidateRepo(), intake, parser, &fakeEmbedder{}, files, &fakeQueue{})

	resp, err := svc.UploadResume(context.Background(), "resume.txt", []byte("some text"))
	require.NoError(t, err)

	job, err := intake.GetByID(context.Background(), resp.JobID)
	require.NoError(t, err)
	job.AttemptCount = job.MaxAttempts - 1

	require.Error(t, svc.ProcessIntakeJob(context.Background(), job))

	stored := intake.jobs[resp.JobID]
	assert.Equal(t, candidate.IntakeStatusFailed, stored.Status)

	status, err := svc.GetIntakeStatus(context.Background(), resp.JobID)
	require.NoError(t, err)
	assert.Equal(t, candidate.IntakeStatusFailed, status.Status)
	require.NotNil(t, status.Error)
}

func TestSearchCandidates(t *testing.T) {
	repo := newFakeCandidateRepo()
	repo.hits = []candidate.SearchHit{
		{Profile: parsedProfile(), Similarity: 0.92},
	}
	svc := newServiceWith(repo, newFakeIntakeRepo(), &fakeParser{}, &fakeEmbedder{}, newFakeFileSystem(), &fakeQueue{})

	hits, err := svc.SearchCandidates(context.Background(), candidate.SearchCandidatesRequest{
		Query: "python engineer with cloud experience",
	})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.InDelta(t, 0.92, hits[0].Similarity, 1e-9)

	_, err = svc.SearchCandidates(context.Background(), candidate.SearchCandidatesRequest{Query: "  "})
	require.Error(t, err)
}
