package email

import (
	"context"

	"github.com/talentsift/screening/pkg/kernel"
)

type Repository interface {
	// Create logs an email delivery attempt
	Create(ctx context.Context, record *Record) error

	// ListByJob retrieves the email log for a job, newest first
	ListByJob(ctx context.Context, jobID kernel.JobID) ([]*Record, error)

	// ListByCandidate retrieves the email log for a candidate, newest first
	ListByCandidate(ctx context.Context, candidateID kernel.CandidateID) ([]*Record, error)
}

// Sender delivers a rendered email to one recipient
type Sender interface {
	Send(ctx context.Context, to kernel.Email, subject, body string) error
}
