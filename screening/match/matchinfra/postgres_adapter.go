package matchinfra

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
	"github.com/talentsift/screening/screening/match"
)

// PostgresMatchRepository implements match.Repository using PostgreSQL.
// Results are keyed by (job_id, candidate_id); re-matching overwrites.
type PostgresMatchRepository struct {
	db *sqlx.DB
}

func NewPostgresMatchRepository(db *sqlx.DB) match.Repository {
	return &PostgresMatchRepository{db: db}
}

// ============================================================================
// Database Model
// ============================================================================

type matchModel struct {
	JobID       string `db:"job_id"`
	CandidateID string `db:"candidate_id"`

	OverallScore    float64 `db:"overall_match_score"`
	SkillScore      float64 `db:"skill_match_score"`
	ExperienceScore float64 `db:"experience_match_score"`
	EducationScore  float64 `db:"education_match_score"`

	Details json.RawMessage `db:"match_details"`

	IsShortlisted bool      `db:"is_shortlisted"`
	CreatedAt     time.Time `db:"created_at"`
}

func (m *matchModel) toEntity() (*match.Result, error) {
	var details map[string]any
	if len(m.Details) > 0 {
		if err := json.Unmarshal(m.Details, &details); err != nil {
			return nil, fmt.Errorf("failed to unmarshal match details: %w", err)
		}
	}

	return &match.Result{
		JobID:           kernel.JobID(m.JobID),
		CandidateID:     kernel.CandidateID(m.CandidateID),
		OverallScore:    kernel.Score(m.OverallScore),
		SkillScore:      kernel.Score(m.SkillScore),
		ExperienceScore: kernel.Score(m.ExperienceScore),
		EducationScore:  kernel.Score(m.EducationScore),
		Details:         details,
		IsShortlisted:   m.IsShortlisted,
		CreatedAt:       m.CreatedAt,
	}, nil
}

func fromEntity(r *match.Result) (*matchModel, error) {
	details, err := json.Marshal(r.Details)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal match details: %w", err)
	}

	return &matchModel{
		JobID:           r.JobID.String(),
		CandidateID:     r.CandidateID.String(),
		OverallScore:    r.OverallScore.Float(),
		SkillScore:      r.SkillScore.Float(),
		ExperienceScore: r.ExperienceScore.Float(),
		EducationScore:  r.EducationScore.Float(),
		Details:         details,
		IsShortlisted:   r.IsShortlisted,
		CreatedAt:       r.CreatedAt,
	}, nil
}

const matchColumns = `
	job_id, candidate_id,
	overall_match_score, skill_match_score, experience_match_score, education_match_score,
	match_details, is_shortlisted, created_at`

// ============================================================================
// Repository Implementation
// ============================================================================

func (r *PostgresMatchRepository) Upsert(ctx context.Context, result *match.Result) error {
	model, err := fromEntity(result)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO match_results (` + matchColumns + `)
		VALUES (
			:job_id, :candidate_id,
			:overall_match_score, :skill_match_score, :experience_match_score, :education_match_score,
			:match_details, :is_shortlisted, :created_at
		)
		ON CONFLICT (job_id, candidate_id) DO UPDATE SET
			overall_match_score = EXCLUDED.overall_match_score,
			skill_match_score = EXCLUDED.skill_match_score,
			experience_match_score = EXCLUDED.experience_match_score,
			education_match_score = EXCLUDED.education_match_score,
			match_details = EXCLUDED.match_details,
			is_shortlisted = EXCLUDED.is_shortlisted,
			created_at = EXCLUDED.created_at
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to upsert match result: %w", err)
	}

	return nil
}

func (r *PostgresMatchRepository) GetByJobAndCandidate(ctx context.Context, jobID kernel.JobID, candidateID kernel.CandidateID) (*match.Result, error) {
	query := `SELECT ` + matchColumns + ` FROM match_results WHERE job_id = $1 AND candidate_id = $2`

	var model matchModel
	err := r.db.GetContext(ctx, &model, query, jobID.String(), candidateID.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, match.ErrMatchNotFound().
				WithDetail("job_id", jobID.String()).
				WithDetail("candidate_id", candidateID.String())
		}
		return nil, fmt.Errorf("failed to get match result: %w", err)
	}

	return model.toEntity()
}

func (r *PostgresMatchRepository) ListByJob(ctx context.Context, jobID kernel.JobID) ([]*match.Result, error) {
	query := `SELECT ` + matchColumns + ` FROM match_results WHERE job_id = $1 ORDER BY overall_match_score DESC`

	var models []matchModel
	if err := r.db.SelectContext(ctx, &models, query, jobID.String()); err != nil {
		return nil, fmt.Errorf("failed to list match results: %w", err)
	}

	results := make([]*match.Result, 0, len(models))
	for _, model := range models {
		result, err := model.toEntity()
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, nil
}

func (r *PostgresMatchRepository) SetShortlisted(ctx context.Context, jobID kernel.JobID, candidateIDs []kernel.CandidateID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE match_results SET is_shortlisted = FALSE WHERE job_id = $1`,
		jobID.String(),
	); err != nil {
		return fmt.Errorf("failed to clear shortlist flags: %w", err)
	}

	if len(candidateIDs) > 0 {
		idStrings := make([]string, len(candidateIDs))
		for i, id := range candidateIDs {
			idStrings[i] = id.String()
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE match_results SET is_shortlisted = TRUE WHERE job_id = $1 AND candidate_id = ANY($2)`,
			jobID.String(), pq.Array(idStrings),
		); err != nil {
			return fmt.Errorf("failed to set shortlist flags: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit shortlist update: %w", err)
	}

	logx.Infof("Updated shortlist flags for job %s (%d shortlisted)", jobID, len(candidateIDs))
	return nil
}

func (r *PostgresMatchRepository) DeleteByJob(ctx context.Context, jobID kernel.JobID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM match_results WHERE job_id = $1`, jobID.String()); err != nil {
		return fmt.Errorf("failed to delete match results: %w", err)
	}
	return nil
}
