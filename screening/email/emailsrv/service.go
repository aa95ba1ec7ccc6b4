package emailsrv

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/talentsift/screening/pkg/kernel"
	"github.com/talentsift/screening/pkg/logx"
	"github.com/talentsift/screening/screening/candidate"
	"github.com/talentsift/screening/screening/email"
	"github.com/talentsift/screening/screening/job"
	"github.com/talentsift/screening/screening/match"
)

type Service struct {
	emailRepo     email.Repository
	jobRepo       job.Repository
	candidateRepo candidate.Repository
	matchRepo     match.Repository
	sender        email.Sender
	now           func() time.Time

	mu        sync.RWMutex
	templates map[email.Kind]email.Template
}

func NewService(
	emailRepo email.Repository,
	jobRepo job.Repository,
	candidateRepo candidate.Repository,
	matchRepo match.Repository,
	sender email.Sender,
) *Service {
	return &Service{
		emailRepo:     emailRepo,
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		matchRepo:     matchRepo,
		sender:        sender,
		now:           time.Now,
		templates:     defaultTemplates(),
	}
}

// SetTemplate overrides a template for subsequent sends
func (s *Service) SetTemplate(kind email.Kind, subject, body string) error {
	if !kind.IsValid() {
		return email.ErrUnknownTemplate().WithDetail("template_type", string(kind))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[kind] = email.Template{Subject: subject, Body: body}
	return nil
}

func (s *Service) template(kind email.Kind) (email.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tpl, ok := s.templates[kind]
	if !ok {
		return email.Template{}, email.ErrUnknownTemplate().WithDetail("template_type", string(kind))
	}
	return tpl, nil
}

// SendInterviewInvitation emails interview slots to one candidate and
// logs the attempt
func (s *Service) SendInterviewInvitation(ctx context.Context, desc *job.Description, profile *candidate.Profile, numSlots int) (*email.Record, error) {
	slots := GenerateInterviewSlots(s.now(), numSlots, defaultStartDaysOut)

	return s.send(ctx, desc, profile, email.KindInterviewInvitation, map[string]string{
		"candidate_name":  profile.Name,
		"job_title":       string(desc.Title),
		"company":         string(desc.Company),
		"interview_slots": email.FormatSlots(slots),
	})
}

// SendRejection emails a rejection notice to one candidate and logs
// the attempt
func (s *Service) SendRejection(ctx context.Context, desc *job.Description, profile *candidate.Profile) (*email.Record, error) {
	return s.send(ctx, desc, profile, email.KindRejection, map[string]string{
		"candidate_name": profile.Name,
		"job_title":      string(desc.Title),
		"company":        string(desc.Company),
	})
}

// Schedule runs a bulk email pass for a job. With no explicit
// candidate list, invitations target shortlisted candidates and
// rejections target the rest. Per-candidate failures are logged in the
// results rather than aborting the run.
func (s *Service) Schedule(ctx context.Context, req email.ScheduleRequest) (*email.ScheduleResponse, error) {
	if !req.Kind.IsValid() {
		return nil, email.ErrUnknownTemplate().WithDetail("template_type", string(req.Kind))
	}

	desc, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, err
	}

	candidateIDs := req.CandidateIDs
	if len(candidateIDs) == 0 {
		candidateIDs, err = s.recipientsFromShortlist(ctx, req.JobID, req.Kind)
		if err != nil {
			return nil, err
		}
	}
	if len(candidateIDs) == 0 {
		return nil, email.ErrNoRecipients().WithDetail("job_id", req.JobID.String())
	}

	profiles, err := s.candidateRepo.GetByIDs(ctx, candidateIDs)
	if err != nil {
		return nil, err
	}

	logx.Infof("Sending %s emails to %d candidates for job %s", req.Kind, len(profiles), req.JobID)

	results := make([]*email.Record, 0, len(profiles))
	sent, failed := 0, 0
	for _, profile := range profiles {
		var record *email.Record
		var sendErr error

		switch req.Kind {
		case email.KindInterviewInvitation:
			record, sendErr = s.SendInterviewInvitation(ctx, desc, profile, req.NumSlots)
		case email.KindRejection:
			record, sendErr = s.SendRejection(ctx, desc, profile)
		}
		if sendErr != nil {
			return nil, sendErr
		}

		if record.Success {
			sent++
		} else {
			failed++
		}
		results = append(results, record)
	}

	return &email.ScheduleResponse{
		JobTitle:   desc.Title,
		Company:    desc.Company,
		EmailsSent: sent,
		Failed:     failed,
		Results:    results,
	}, nil
}

// ListByJob returns the email log for a job
func (s *Service) ListByJob(ctx context.Context, jobID kernel.JobID) ([]*email.Record, error) {
	return s.emailRepo.ListByJob(ctx, jobID)
}

// recipientsFromShortlist derives the target candidates from stored
// match results
func (s *Service) recipientsFromShortlist(ctx context.Context, jobID kernel.JobID, kind email.Kind) ([]kernel.CandidateID, error) {
	matches, err := s.matchRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	wantShortlisted := kind == email.KindInterviewInvitation
	ids := make([]kernel.CandidateID, 0, len(matches))
	for _, m := range matches {
		if m.IsShortlisted == wantShortlisted {
			ids = append(ids, m.CandidateID)
		}
	}
	return ids, nil
}

// send renders the template, attempts delivery, and records the
// outcome. Delivery failure is recorded, not returned.
func (s *Service) send(ctx context.Context, desc *job.Description, profile *candidate.Profile, kind email.Kind, replacements map[string]string) (*email.Record, error) {
	tpl, err := s.template(kind)
	if err != nil {
		return nil, err
	}
	rendered := tpl.Render(replacements)

	record := &email.Record{
		ID:          kernel.NewEmailID(uuid.NewString()),
		JobID:       desc.ID,
		CandidateID: profile.ID,
		Recipient:   profile.Email,
		Kind:        kind,
		Subject:     rendered.Subject,
		CreatedAt:   s.now().UTC(),
	}

	if !profile.Email.IsValid() {
		record.Message = "invalid email address: " + profile.Email.String()
	} else if sendErr := s.sender.Send(ctx, profile.Email, rendered.Subject, rendered.Body); sendErr != nil {
		record.Message = sendErr.Error()
		logx.Warnf("Failed to send %s email to %s: %v", kind, profile.Email, sendErr)
	} else {
		sentAt := s.now().UTC()
		record.Success = true
		record.Message = "Email sent successfully"
		record.SentAt = &sentAt
	}

	if err := s.emailRepo.Create(ctx, record); err != nil {
		logx.Errorf("Failed to log email record %s: %v", record.ID, err)
	}

	return record, nil
}
