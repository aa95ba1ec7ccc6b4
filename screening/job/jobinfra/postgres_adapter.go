package jobinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/talentsift/screening/pkg/kernel"
	"github.com/talentsift/screening/screening/job"
)

// PostgresJobRepository implements job.Repository using PostgreSQL
type PostgresJobRepository struct {
	db *sqlx.DB
}

func NewPostgresJobRepository(db *sqlx.DB) job.Repository {
	return &PostgresJobRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type jobModel struct {
	ID               string          `db:"id"`
	Title            string          `db:"title"`
	Company          string          `db:"company"`
	Location         string          `db:"location"`
	JobType          string          `db:"job_type"`
	Summary          string          `db:"summary"`
	Responsibilities json.RawMessage `db:"responsibilities"`
	Requirements     json.RawMessage `db:"requirements"`
	SalaryRange      string          `db:"salary_range"`
	PostingDate      string          `db:"posting_date"`
	Department       string          `db:"department"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

func (m *jobModel) toEntity() (*job.Description, error) {
	var responsibilities []string
	if len(m.Responsibilities) > 0 {
		if err := json.Unmarshal(m.Responsibilities, &responsibilities); err != nil {
			return nil, fmt.Errorf("failed to unmarshal responsibilities: %w", err)
		}
	}

	var requirements job.Requirement
	if len(m.Requirements) > 0 {
		if err := json.Unmarshal(m.Requirements, &requirements); err != nil {
			return nil, fmt.Errorf("failed to unmarshal requirements: %w", err)
		}
	}

	return &job.Description{
		ID:               kernel.JobID(m.ID),
		Title:            kernel.JobTitle(m.Title),
		Company:          kernel.Company(m.Company),
		Location:         m.Location,
		JobType:          m.JobType,
		Summary:          m.Summary,
		Responsibilities: responsibilities,
		Requirements:     requirements,
		SalaryRange:      m.SalaryRange,
		PostingDate:      m.PostingDate,
		Department:       m.Department,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}, nil
}

func fromEntity(d *job.Description) (*jobModel, error) {
	responsibilities, err := json.Marshal(d.Responsibilities)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal responsibilities: %w", err)
	}

	requirements, err := json.Marshal(d.Requirements)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal requirements: %w", err)
	}

	return &jobModel{
		ID:               string(d.ID),
		Title:            string(d.Title),
		Company:          string(d.Company),
		Location:         d.Location,
		JobType:          d.JobType,
		Summary:          d.Summary,
		Responsibilities: responsibilities,
		Requirements:     requirements,
		SalaryRange:      d.SalaryRange,
		PostingDate:      d.PostingDate,
		Department:       d.Department,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

func (r *PostgresJobRepository) Create(ctx context.Context, desc *job.Description) error {
	model, err := fromEntity(desc)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO job_descriptions (
			id, title, company, location, job_type, summary,
			responsibilities, requirements, salary_range, posting_date,
			department, created_at, updated_at
		) VALUES (
			:id, :title, :company, :location, :job_type, :summary,
			:responsibilities, :requirements, :salary_range, :posting_date,
			:department, :created_at, :updated_at
		)
	`

	_, err = r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return job.ErrJobAlreadyExists().WithDetail("job_id", desc.ID.String())
		}
		return fmt.Errorf("failed to create job description: %w", err)
	}

	return nil
}

func (r *PostgresJobRepository) Update(ctx context.Context, id kernel.JobID, desc *job.Description) error {
	desc.ID = id
	model, err := fromEntity(desc)
	if err != nil {
		return err
	}

	query := `
		UPDATE job_descriptions SET
			title = :title,
			company = :company,
			location = :location,
			job_type = :job_type,
			summary = :summary,
			responsibilities = :responsibilities,
			requirements = :requirements,
			salary_range = :salary_range,
			posting_date = :posting_date,
			department = :department,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update job description: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return job.ErrJobNotFound().WithDetail("job_id", id.String())
	}

	return nil
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Description, error) {
	query := `
		SELECT
			id, title, company, location, job_type, summary,
			responsibilities, requirements, salary_range, posting_date,
			department, created_at, updated_at
		FROM job_descriptions
		WHERE id = $1
	`

	var model jobModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, job.ErrJobNotFound().WithDetail("job_id", id.String())
		}
		return nil, fmt.Errorf("failed to get job description: %w", err)
	}

	return model.toEntity()
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id kernel.JobID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM job_descriptions WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete job description: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return job.ErrJobNotFound().WithDetail("job_id", id.String())
	}

	return nil
}

func (r *PostgresJobRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Description], error) {
	pagination = pagination.Normalize()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM job_descriptions`); err != nil {
		return nil, fmt.Errorf("failed to count job descriptions: %w", err)
	}

	query := `
		SELECT
			id, title, company, location, job_type, summary,
			responsibilities, requirements, salary_range, posting_date,
			department, created_at, updated_at
		FROM job_descriptions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	var models []jobModel
	if err := r.db.SelectContext(ctx, &models, query, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, fmt.Errorf("failed to list job descriptions: %w", err)
	}

	entities := make([]job.Description, 0, len(models))
	for _, model := range models {
		entity, err := model.toEntity()
		if err != nil {
			return nil, err
		}
		entities = append(entities, *entity)
	}

	return kernel.NewPaginated(entities, pagination, total), nil
}

func (r *PostgresJobRepository) Exists(ctx context.Context, id kernel.JobID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM job_descriptions WHERE id = $1)`, string(id))
	if err != nil {
		return false, fmt.Errorf("failed to check job existence: %w", err)
	}
	return exists, nil
}
