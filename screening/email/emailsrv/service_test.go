package emailsrv

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentsift/screening/pkg/kernel"
	"github.com/talentsift/screening/screening/candidate"
	"github.com/talentsift/screening/screening/email"
	"github.com/talentsift/screening/screening/job"
	"github.com/talentsift/screening/screening/match"
)

// ============================================================================
// In-memory fakes
// ============================================================================

type fakeEmailRepo struct {
	records []*email.Record
}

func (f *fakeEmailRepo) Create(ctx context.Context, record *email.Record) error {
	f.records = append(f.records, record)
	return nil
}
func (f *fakeEmailRepo) ListByJob(ctx context.Context, jobID kernel.JobID) ([]*email.Record, error) {
	var out []*email.Record
	for _, r := range f.records {
		if r.JobID == jobID {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *fakeEmailRepo) ListByCandidate(ctx context.Context, candidateID kernel.CandidateID) ([]*email.Record, error) {
	var out []*email.Record
	for _, r := range f.records {
		if r.CandidateID == candidateID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeJobRepo struct {
	jobs map[kernel.JobID]*job.Description
}

func (f *fakeJobRepo) Create(ctx context.Context, desc *job.Description) error { return nil }
func (f *fakeJobRepo) Update(ctx context.Context, id kernel.JobID, desc *job.Description) error {
	return nil
}
func (f *fakeJobRepo) GetByID(ctx context.Context, id kernel.JobID) (*job.Description, error) {
	if d, ok := f.jobs[id]; ok {
		return d, nil
	}
	return nil, job.ErrJobNotFound().WithDetail("job_id", id.String())
}
func (f *fakeJobRepo) Delete(ctx context.Context, id kernel.JobID) error { return nil }
func (f *fakeJobRepo) List(ctx context.Context, p kernel.PaginationOptions) (*kernel.Paginated[job.Description], error) {
	return nil, nil
}
func (f *fakeJobRepo) Exists(ctx context.Context, id kernel.JobID) (bool, error) {
	_, ok := f.jobs[id]
	return ok, nil
}

type fakeCandidateRepo struct {
	profiles []*candidate.Profile
}

func (f *fakeCandidateRepo) Create(ctx context.Context, p *candidate.Profile) error { return nil }
func (f *fakeCandidateRepo) Update(ctx context.Context, id kernel.CandidateID, p *candidate.Profile) error {
	return nil
}
func (f *fakeCandidateRepo) GetByID(ctx context.Context, id kernel.CandidateID) (*candidate.Profile, error) {
	for _, p := range f.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, candidate.ErrCandidateNotFound().WithDetail("candidate_id", id.String())
}
func (f *fakeCandidateRepo) GetByIDs(ctx context.Context, ids []kernel.CandidateID) ([]*candidate.Profile, error) {
	var out []*candidate.Profile
	for _, id := range ids {
		if p, err := f.GetByID(ctx, id); err == nil {
			out = append(out, p)
		}
	}
	return out, nil
}
func (f *fakeCandidateRepo) GetByEmail(ctx context.Context, addr kernel.Email) (*candidate.Profile, error) {
	return nil, nil
}
func (f *fakeCandidateRepo) List(ctx context.Context, p kernel.PaginationOptions) (*kernel.Paginated[candidate.Profile], error) {
	return nil, nil
}
func (f *fakeCandidateRepo) ListAll(ctx context.Context) ([]*candidate.Profile, error) {
	return f.profiles, nil
}
func (f *fakeCandidateRepo) Delete(ctx context.Context, id kernel.CandidateID) error { return nil }
func (f *fakeCandidateRepo) UpdateEmbedding(ctx context.Context, id kernel.CandidateID, e kernel.ProfileEmbedding) error {
	return nil
}
func (f *fakeCandidateRepo) SemanticSearch(ctx context.Context, e kernel.ProfileEmbedding, limit int) ([]candidate.SearchHit, error) {
	return nil, nil
}

type fakeMatchRepo struct {
	results []*match.Result
}

func (f *fakeMatchRepo) Upsert(ctx context.Context, result *match.Result) error { return nil }
func (f *fakeMatchRepo) GetByJobAndCandidate(ctx context.Context, jobID kernel.JobID, candidateID kernel.CandidateID) (*match.Result, error) {
	return nil, match.ErrMatchNotFound()
}
func (f *fakeMatchRepo) ListByJob(ctx context.Context, jobID kernel.JobID) ([]*match.Result, error) {
	return f.results, nil
}
func (f *fakeMatchRepo) SetShortlisted(ctx context.Context, jobID kernel.JobID, candidateIDs []kernel.CandidateID) error {
	return nil
}
func (f *fakeMatchRepo) DeleteByJob(ctx context.Context, jobID kernel.JobID) error { return nil }

type fakeSender struct {
	sent    []string
	failFor map[kernel.Email]error
}

func (f *fakeSender) Send(ctx context.Context, to kernel.Email, subject, body string) error {
	if err, ok := f.failFor[to]; ok {
		return err
	}
	f.sent = append(f.sent, to.String())
	return nil
}

// ============================================================================
// Fixtures
// ============================================================================

const testJobID = kernel.JobID("job-1")

func testJob() *job.Description {
	return &job.Description{
		ID:      testJobID,
		Title:   "Software Engineer",
		Company: "TechCorp",
	}
}

func testProfile(id, name, addr string) *candidate.Profile {
	return &candidate.Profile{
		ID:    kernel.CandidateID(id),
		Name:  name,
		Email: kernel.Email(addr),
	}
}

func newTestService(jobs *fakeJobRepo, candidates *fakeCandidateRepo, matches *fakeMatchRepo, sender *fakeSender) (*Service, *fakeEmailRepo) {
	emails := &fakeEmailRepo{}
	svc := NewService(emails, jobs, candidates, matches, sender)
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }
	return svc, emails
}

// ============================================================================
// Tests
// ============================================================================

func TestSendInterviewInvitation(t *testing.T) {
	sender := &fakeSender{}
	svc, emails := newTestService(
		&fakeJobRepo{jobs: map[kernel.JobID]*job.Description{testJobID: testJob()}},
		&fakeCandidateRepo{},
		&fakeMatchRepo{},
		sender,
	)

	record, err := svc.SendInterviewInvitation(context.Background(), testJob(), testProfile("cand-1", "Alice", "alice@example.com"), 3)
	require.NoError(t, err)

	assert.True(t, record.Success)
	assert.Equal(t, "Interview Invitation for Software Engineer at TechCorp", record.Subject)
	assert.Equal(t, email.KindInterviewInvitation, record.Kind)
	require.NotNil(t, record.SentAt)
	assert.Equal(t, []string{"alice@example.com"}, sender.sent)
	assert.Len(t, emails.records, 1)
}

func TestSendInvalidRecipientRecordedNotRaised(t *testing.T) {
	sender := &fakeSender{}
	svc, emails := newTestService(&fakeJobRepo{}, &fakeCandidateRepo{}, &fakeMatchRepo{}, sender)

	record, err := svc.SendRejection(context.Background(), testJob(), testProfile("cand-1", "Bob", "not-an-address"))
	require.NoError(t, err)

	assert.False(t, record.Success)
	assert.Contains(t, record.Message, "invalid email address")
	assert.Nil(t, record.SentAt)
	assert.Empty(t, sender.sent)
	assert.Len(t, emails.records, 1)
}

func TestScheduleExplicitCandidates(t *testing.T) {
	profiles := []*candidate.Profile{
		testProfile("cand-1", "Alice", "alice@example.com"),
		testProfile("cand-2", "Bob", "bob@example.com"),
	}
	sender := &fakeSender{
		failFor: map[kernel.Email]error{"bob@example.com": errors.New("mailbox unavailable")},
	}
	svc, _ := newTestService(
		&fakeJobRepo{jobs: map[kernel.JobID]*job.Description{testJobID: testJob()}},
		&fakeCandidateRepo{profiles: profiles},
		&fakeMatchRepo{},
		sender,
	)

	resp, err := svc.Schedule(context.Background(), email.ScheduleRequest{
		JobID:        testJobID,
		Kind:         email.KindInterviewInvitation,
		CandidateIDs: []kernel.CandidateID{"cand-1", "cand-2"},
		NumSlots:     3,
	})
	require.NoError(t, err)

	assert.Equal(t, kernel.JobTitle("Software Engineer"), resp.JobTitle)
	assert.Equal(t, 1, resp.EmailsSent)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Results, 2)
	assert.True(t, resp.Results[0].Success)
	assert.Contains(t, resp.Results[1].Message, "mailbox unavailable")
}

func TestScheduleDerivesRecipientsFromShortlist(t *testing.T) {
	profiles := []*candidate.Profile{
		testProfile("cand-1", "Alice", "alice@example.com"),
		testProfile("cand-2", "Bob", "bob@example.com"),
		testProfile("cand-3", "Carol", "carol@example.com"),
	}
	matches := &fakeMatchRepo{results: []*match.Result{
		{JobID: testJobID, CandidateID: "cand-1", IsShortlisted: true},
		{JobID: testJobID, CandidateID: "cand-2", IsShortlisted: false},
		{JobID: testJobID, CandidateID: "cand-3", IsShortlisted: true},
	}}
	sender := &fakeSender{}
	svc, _ := newTestService(
		&fakeJobRepo{jobs: map[kernel.JobID]*job.Description{testJobID: testJob()}},
		&fakeCandidateRepo{profiles: profiles},
		matches,
		sender,
	)

	resp, err := svc.Schedule(context.Background(), email.ScheduleRequest{
		JobID: testJobID,
		Kind:  email.KindInterviewInvitation,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.EmailsSent)
	assert.ElementsMatch(t, []string{"alice@example.com", "carol@example.com"}, sender.sent)

	// Rejections go to everyone who was not shortlisted.
	sender.sent = nil
	resp, err = svc.Schedule(context.Background(), email.ScheduleRequest{
		JobID: testJobID,
		Kind:  email.KindRejection,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.EmailsSent)
	assert.Equal(t, []string{"bob@example.com"}, sender.sent)
}

func TestScheduleNoRecipients(t *testing.T) {
	svc, _ := newTestService(
		&fakeJobRepo{jobs: map[kernel.JobID]*job.Description{testJobID: testJob()}},
		&fakeCandidateRepo{},
		&fakeMatchRepo{},
		&fakeSender{},
	)

	_, err := svc.Schedule(context.Background(), email.ScheduleRequest{
		JobID: testJobID,
		Kind:  email.KindRejection,
	})
	require.Error(t, err)
}

func TestScheduleUnknownKind(t *testing.T) {
	svc, _ := newTestService(&fakeJobRepo{}, &fakeCandidateRepo{}, &fakeMatchRepo{}, &fakeSender{})

	_, err := svc.Schedule(context.Background(), email.ScheduleRequest{
		JobID: testJobID,
		Kind:  email.Kind("newsletter"),
	})
	require.Error(t, err)
}

func TestSetTemplate(t *testing.T) {
	sender := &fakeSender{}
	svc, _ := newTestService(&fakeJobRepo{}, &fakeCandidateRepo{}, &fakeMatchRepo{}, sender)

	require.NoError(t, svc.SetTemplate(email.KindRejection, "Re: {job_title}", "Sorry, {candidate_name}."))
	record, err := svc.SendRejection(context.Background(), testJob(), testProfile("cand-1", "Alice", "alice@example.com"))
	require.NoError(t, err)

	assert.Equal(t, "Re: Software Engineer", record.Subject)

	err = svc.SetTemplate(email.Kind("newsletter"), "x", "y")
	require.Error(t, err)
}
