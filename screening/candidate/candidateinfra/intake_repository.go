package candidateinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/talentsift/screening/pkg/kernel"
	"github.com/talentsift/screening/pkg/logx"
	"github.com/talentsift/screening/screening/candidate"
)

// PostgresIntakeRepository implements candidate.IntakeRepository
type PostgresIntakeRepository struct {
	db *sqlx.DB
}

func NewPostgresIntakeRepository(db *sqlx.DB) candidate.IntakeRepository {
	return &PostgresIntakeRepository{db: db}
}

// intakeModel is the database model with proper JSON handling
type intakeModel struct {
	ID          string  `db:"id"`
	CandidateID *string `db:"candidate_id"`

	Status   string `db:"status"`
	FilePath string `db:"file_path"`
	FileName string `db:"file_name"`
	FileType string `db:"file_type"`

	AttemptCount int `db:"attempt_count"`
	MaxAttempts  int `db:"max_attempts"`

	ErrorMessage string         `db:"error_message"`
	ErrorDetails sql.NullString `db:"error_details"`

	CurrentStep        *string `db:"current_step"`
	ProgressPercentage int     `db:"progress_percentage"`

	CreatedAt   time.Time  `db:"created_at"`
	StartedAt   *time.Time `db:"started_at"`
	CompletedAt *time.Time `db:"completed_at"`
	FailedAt    *time.Time `db:"failed_at"`
	NextRetryAt *time.Time `db:"next_retry_at"`
}

const intakeColumns = `
	id, candidate_id, status, file_path, file_name, file_type,
	attempt_count, max_attempts, error_message, error_details,
	current_step, progress_percentage,
	created_at, started_at, completed_at, failed_at, next_retry_at`

func (r *PostgresIntakeRepository) Create(ctx context.Context, job *candidate.IntakeJob) error {
	query := `
		INSERT INTO resume_intake_jobs (` + intakeColumns + `)
		VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10,
			$11, $12,
			$13, $14, $15, $16, $17
		)
	`

	model, err := toIntakeModel(job)
	if err != nil {
		return fmt.Errorf("convert to intake model: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query,
		model.ID, model.CandidateID, model.Status,
		model.FilePath, model.FileName, model.FileType,
		model.AttemptCount, model.MaxAttempts, model.ErrorMessage, model.ErrorDetails,
		model.CurrentStep, model.ProgressPercentage,
		model.CreatedAt, model.StartedAt, model.CompletedAt, model.FailedAt, model.NextRetryAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("intake job already exists: %w", err)
		}
		return fmt.Errorf("create intake job: %w", err)
	}

	logx.Infof("Created intake job: %s", job.ID)
	return nil
}

func (r *PostgresIntakeRepository) Update(ctx context.Context, job *candidate.IntakeJob) error {
	query := `
		UPDATE resume_intake_jobs SET
			candidate_id = $2,
			status = $3,
			attempt_count = $4,
			error_message = $5,
			error_details = $6,
			current_step = $7,
			progress_percentage = $8,
			started_at = $9,
			completed_at = $10,
			failed_at = $11,
			next_retry_at = $12
		WHERE id = $1
	`

	model, err := toIntakeModel(job)
	if err != nil {
		return fmt.Errorf("convert to intake model: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query,
		model.ID,
		model.CandidateID,
		model.Status,
		model.AttemptCount,
		model.ErrorMessage,
		model.ErrorDetails,
		model.CurrentStep,
		model.ProgressPercentage,
		model.StartedAt,
		model.CompletedAt,
		model.FailedAt,
		model.NextRetryAt,
	)
	if err != nil {
		return fmt.Errorf("update intake job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return candidate.ErrIntakeJobNotFound().WithDetail("job_id", job.ID.String())
	}

	return nil
}

func (r *PostgresIntakeRepository) GetByID(ctx context.Context, id kernel.IntakeJobID) (*candidate.IntakeJob, error) {
	query := `SELECT ` + intakeColumns + ` FROM resume_intake_jobs WHERE id = $1`

	var model intakeModel
	err := r.db.GetContext(ctx, &model, query, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, candidate.ErrIntakeJobNotFound().WithDetail("job_id", id.String())
		}
		return nil, fmt.Errorf("get intake job: %w", err)
	}

	return toIntakeJob(&model)
}

func (r *PostgresIntakeRepository) MarkAsProcessing(ctx context.Context, id kernel.IntakeJobID) error {
	query := `
		UPDATE resume_intake_jobs
		SET status = $2, started_at = $3
		WHERE id = $1 AND status IN ($4, $5)
	`

	result, err := r.db.ExecContext(ctx, query,
		id.String(),
		string(candidate.IntakeStatusProcessing),
		time.Now(),
		string(candidate.IntakeStatusPending),
		string(candidate.IntakeStatusFailed),
	)
	if err != nil {
		return fmt.Errorf("mark as processing: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return candidate.ErrIntakeJobNotFound().WithDetail("job_id", id.String())
	}

	return nil
}

func (r *PostgresIntakeRepository) MarkAsCompleted(ctx context.Context, id kernel.IntakeJobID, candidateID kernel.CandidateID) error {
	query := `
		UPDATE resume_intake_jobs
		SET
			status = $2,
			candidate_id = $3,
			completed_at = $4,
			progress_percentage = 100,
			error_message = '',
			error_details = NULL,
			next_retry_at = NULL
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		id.String(),
		string(candidate.IntakeStatusCompleted),
		candidateID.String(),
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("mark as completed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return candidate.ErrIntakeJobNotFound().WithDetail("job_id", id.String())
	}

	logx.Infof("Marked intake job as completed: %s, candidate: %s", id, candidateID)
	return nil
}

func (r *PostgresIntakeRepository) MarkAsFailed(ctx context.Context, id kernel.IntakeJobID, errorMsg string, details map[string]any) error {
	var detailsJSON sql.NullString
	if len(details) > 0 {
		jsonBytes, err := json.Marshal(details)
		if err != nil {
			logx.Warnf("Failed to marshal error details: %v", err)
		} else {
			detailsJSON = sql.NullString{String: string(jsonBytes), Valid: true}
		}
	}

	query := `
		UPDATE resume_intake_jobs
		SET
			status = $2,
			failed_at = $3,
			error_message = $4,
			error_details = $5,
			attempt_count = attempt_count + 1
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		id.String(),
		string(candidate.IntakeStatusFailed),
		time.Now(),
		errorMsg,
		detailsJSON,
	)
	if err != nil {
		return fmt.Errorf("mark as failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return candidate.ErrIntakeJobNotFound().WithDetail("job_id", id.String())
	}

	logx.Warnf("Marked intake job as failed: %s, error: %s", id, errorMsg)
	return nil
}

func (r *PostgresIntakeRepository) UpdateProgress(ctx context.Context, id kernel.IntakeJobID, step candidate.IntakeStep, percentage int) error {
	query := `
		UPDATE resume_intake_jobs
		SET current_step = $2, progress_percentage = $3
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id.String(), string(step), percentage)
	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return candidate.ErrIntakeJobNotFound().WithDetail("job_id", id.String())
	}

	return nil
}

// ============================================================================
// Helper Methods
// ============================================================================

func toIntakeModel(job *candidate.IntakeJob) (*intakeModel, error) {
	var errorDetails sql.NullString
	if len(job.ErrorDetails) > 0 {
		jsonBytes, err := json.Marshal(job.ErrorDetails)
		if err != nil {
			return nil, fmt.Errorf("marshal error details: %w", err)
		}
		errorDetails = sql.NullString{String: string(jsonBytes), Valid: true}
	}

	var currentStep *string
	if job.CurrentStep != nil {
		stepStr := string(*job.CurrentStep)
		currentStep = &stepStr
	}

	var candidateID *string
	if job.CandidateID != nil {
		idStr := job.CandidateID.String()
		candidateID = &idStr
	}

	return &intakeModel{
		ID:                 job.ID.String(),
		CandidateID:        candidateID,
		Status:             string(job.Status),
		FilePath:           job.FilePath,
		FileName:           job.FileName,
		FileType:           job.FileType,
		AttemptCount:       job.AttemptCount,
		MaxAttempts:        job.MaxAttempts,
		ErrorMessage:       job.ErrorMessage,
		ErrorDetails:       errorDetails,
		CurrentStep:        currentStep,
		ProgressPercentage: job.ProgressPercentage,
		CreatedAt:          job.CreatedAt,
		StartedAt:          job.StartedAt,
		CompletedAt:        job.CompletedAt,
		FailedAt:           job.FailedAt,
		NextRetryAt:        job.NextRetryAt,
	}, nil
}

func toIntakeJob(model *intakeModel) (*candidate.IntakeJob, error) {
	var errorDetails map[string]any
	if model.ErrorDetails.Valid && model.ErrorDetails.String != "" {
		if err := json.Unmarshal([]byte(model.ErrorDetails.String), &errorDetails); err != nil {
			logx.Warnf("Failed to unmarshal error details for intake job %s: %v", model.ID, err)
			errorDetails = nil
		}
	}

	var currentStep *candidate.IntakeStep
	if model.CurrentStep != nil {
		step := candidate.IntakeStep(*model.CurrentStep)
		currentStep = &step
	}

	var candidateID *kernel.CandidateID
	if model.CandidateID != nil {
		id := kernel.CandidateID(*model.CandidateID)
		candidateID = &id
	}

	return &candidate.IntakeJob{
		ID:                 kernel.IntakeJobID(model.ID),
		CandidateID:        candidateID,
		Status:             candidate.IntakeStatus(model.Status),
		FilePath:           model.FilePath,
		FileName:           model.FileName,
		FileType:           model.FileType,
		AttemptCount:       model.AttemptCount,
		MaxAttempts:        model.MaxAttempts,
		ErrorMessage:       model.ErrorMessage,
		ErrorDetails:       errorDetails,
		CurrentStep:        currentStep,
		ProgressPercentage: model.ProgressPercentage,
		CreatedAt:          model.CreatedAt,
		StartedAt:          model.StartedAt,
		CompletedAt:        model.CompletedAt,
		FailedAt:           model.FailedAt,
		NextRetryAt:        model.NextRetryAt,
	}, nil
}
