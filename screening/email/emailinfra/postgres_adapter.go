package emailinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/talentsift/screening/pkg/kernel"
	"github.com/talentsift/screening/screening/email"
)

// PostgresEmailRepository implements email.Repository using PostgreSQL
type PostgresEmailRepository struct {
	db *sqlx.DB
}

func NewPostgresEmailRepository(db *sqlx.DB) email.Repository {
	return &PostgresEmailRepository{db: db}
}

type emailModel struct {
	ID          string     `db:"id"`
	JobID       string     `db:"job_id"`
	CandidateID string     `db:"candidate_id"`
	Recipient   string     `db:"recipient"`
	Kind        string     `db:"kind"`
	Subject     string     `db:"subject"`
	Success     bool       `db:"success"`
	Message     string     `db:"message"`
	SentAt      *time.Time `db:"sent_at"`
	CreatedAt   time.Time  `db:"created_at"`
}

func (m *emailModel) toEntity() *email.Record {
	return &email.Record{
		ID:          kernel.EmailID(m.ID),
		JobID:       kernel.JobID(m.JobID),
		CandidateID: kernel.CandidateID(m.CandidateID),
		Recipient:   kernel.Email(m.Recipient),
		Kind:        email.Kind(m.Kind),
		Subject:     m.Subject,
		Success:     m.Success,
		Message:     m.Message,
		SentAt:      m.SentAt,
		CreatedAt:   m.CreatedAt,
	}
}

const emailColumns = `
	id, job_id, candidate_id, recipient, kind, subject,
	success, message, sent_at, created_at`

func (r *PostgresEmailRepository) Create(ctx context.Context, record *email.Record) error {
	query := `
		INSERT INTO email_log (` + emailColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ID.String(),
		record.JobID.String(),
		record.CandidateID.String(),
		record.Recipient.String(),
		string(record.Kind),
		record.Subject,
		record.Success,
		record.Message,
		record.SentAt,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create email record: %w", err)
	}

	return nil
}

func (r *PostgresEmailRepository) ListByJob(ctx context.Context, jobID kernel.JobID) ([]*email.Record, error) {
	query := `SELECT ` + emailColumns + ` FROM email_log WHERE job_id = $1 ORDER BY created_at DESC`

	var models []emailModel
	if err := r.db.SelectContext(ctx, &models, query, jobID.String()); err != nil {
		return nil, fmt.Errorf("failed to list email records: %w", err)
	}

	return toEntities(models), nil
}

func (r *PostgresEmailRepository) ListByCandidate(ctx context.Context, candidateID kernel.CandidateID) ([]*email.Record, error) {
	query := `SELECT ` + emailColumns + ` FROM email_log WHERE candidate_id = $1 ORDER BY created_at DESC`

	var models []emailModel
	if err := r.db.SelectContext(ctx, &models, query, candidateID.String()); err != nil {
		return nil, fmt.Errorf("failed to list email records: %w", err)
	}

	return toEntities(models), nil
}

func toEntities(models []emailModel) []*email.Record {
	records := make([]*email.Record, 0, len(models))
	for _, model := range models {
		records = append(records, model.toEntity())
	}
	return records
}
