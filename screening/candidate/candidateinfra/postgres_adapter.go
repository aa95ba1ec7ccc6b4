package candidateinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"github.com/talentsift/screening/pkg/kernel"
	"github.com/talentsift/screening/screening/candidate"
)

// PostgresCandidateRepository implements candidate.Repository using
// PostgreSQL with pgvector for semantic search
type PostgresCandidateRepository struct {
	db *sqlx.DB
}

func NewPostgresCandidateRepository(db *sqlx.DB) candidate.Repository {
	return &PostgresCandidateRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type candidateModel struct {
	ID             string          `db:"id"`
	Name           string          `db:"name"`
	Email          string          `db:"email"`
	Phone          string          `db:"phone"`
	Location       string          `db:"location"`
	LinkedIn       string          `db:"linkedin"`
	Summary        string          `db:"summary"`
	Skills         pq.StringArray  `db:"skills"`
	Experience     json.RawMessage `db:"experience"`
	Education      json.RawMessage `db:"education"`
	Certifications pq.StringArray  `db:"certifications"`
	Languages      pq.StringArray  `db:"languages"`
	ResumeURL      string          `db:"resume_url"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

func (m *candidateModel) toEntity() (*candidate.Profile, error) {
	var experience []candidate.ExperienceEntry
	if len(m.Experience) > 0 {
		if err := json.Unmarshal(m.Experience, &experience); err != nil {
			return nil, fmt.Errorf("failed to unmarshal experience: %w", err)
		}
	}

	var education []candidate.EducationEntry
	if len(m.Education) > 0 {
		if err := json.Unmarshal(m.Education, &education); err != nil {
			return nil, fmt.Errorf("failed to unmarshal education: %w", err)
		}
	}

	return &candidate.Profile{
		ID:             kernel.CandidateID(m.ID),
		Name:           m.Name,
		Email:          kernel.Email(m.Email),
		Phone:          kernel.Phone(m.Phone),
		Location:       m.Location,
		LinkedIn:       m.LinkedIn,
		Summary:        m.Summary,
		Skills:         m.Skills,
		Experience:     experience,
		Education:      education,
		Certifications: m.Certifications,
		Languages:      m.Languages,
		ResumeURL:      kernel.BucketURL(m.ResumeURL),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}, nil
}

func fromEntity(p *candidate.Profile) (*candidateModel, error) {
	experience, err := json.Marshal(p.Experience)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal experience: %w", err)
	}

	education, err := json.Marshal(p.Education)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal education: %w", err)
	}

	return &candidateModel{
		ID:             string(p.ID),
		Name:           p.Name,
		Email:          string(p.Email),
		Phone:          string(p.Phone),
		Location:       p.Location,
		LinkedIn:       p.LinkedIn,
		Summary:        p.Summary,
		Skills:         pq.StringArray(p.Skills),
		Experience:     experience,
		Education:      education,
		Certifications: pq.StringArray(p.Certifications),
		Languages:      pq.StringArray(p.Languages),
		ResumeURL:      string(p.ResumeURL),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}, nil
}

const candidateColumns = `
	id, name, email, phone, location, linkedin, summary,
	skills, experience, education, certifications, languages,
	resume_url, created_at, updated_at`

// ============================================================================
// Repository Implementation
// ============================================================================

func (r *PostgresCandidateRepository) Create(ctx context.Context, profile *candidate.Profile) error {
	model, err := fromEntity(profile)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO candidates (
			id, name, email, phone, location, linkedin, summary,
			skills, experience, education, certifications, languages,
			resume_url, created_at, updated_at
		) VALUES (
			:id, :name, :email, :phone, :location, :linkedin, :summary,
			:skills, :experience, :education, :certifications, :languages,
			:resume_url, :created_at, :updated_at
		)
	`

	_, err = r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return candidate.ErrCandidateExists().WithDetail("email", profile.Email.String())
		}
		return fmt.Errorf("failed to create candidate: %w", err)
	}

	return nil
}

func (r *PostgresCandidateRepository) Update(ctx context.Context, id kernel.CandidateID, profile *candidate.Profile) error {
	profile.ID = id
	model, err := fromEntity(profile)
	if err != nil {
		return err
	}

	query := `
		UPDATE candidates SET
			name = :name,
			email = :email,
			phone = :phone,
			location = :location,
			linkedin = :linkedin,
			summary = :summary,
			skills = :skills,
			experience = :experience,
			education = :education,
			certifications = :certifications,
			languages = :languages,
			resume_url = :resume_url,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update candidate: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return candidate.ErrCandidateNotFound().WithDetail("candidate_id", id.String())
	}

	return nil
}

func (r *PostgresCandidateRepository) GetByID(ctx context.Context, id kernel.CandidateID) (*candidate.Profile, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`

	var model candidateModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, candidate.ErrCandidateNotFound().WithDetail("candidate_id", id.String())
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	return model.toEntity()
}

func (r *PostgresCandidateRepository) GetByIDs(ctx context.Context, ids []kernel.CandidateID) ([]*candidate.Profile, error) {
	if len(ids) == 0 {
		return []*candidate.Profile{}, nil
	}

	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = string(id)
	}

	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = ANY($1) ORDER BY created_at DESC`

	var models []candidateModel
	if err := r.db.SelectContext(ctx, &models, query, pq.Array(idStrings)); err != nil {
		return nil, fmt.Errorf("failed to get candidates by ids: %w", err)
	}

	return r.toEntities(models)
}

func (r *PostgresCandidateRepository) GetByEmail(ctx context.Context, email kernel.Email) (*candidate.Profile, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE email = $1`

	var model candidateModel
	err := r.db.GetContext(ctx, &model, query, email.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, candidate.ErrCandidateNotFound().WithDetail("email", email.String())
		}
		return nil, fmt.Errorf("failed to get candidate by email: %w", err)
	}

	return model.toEntity()
}

func (r *PostgresCandidateRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[candidate.Profile], error) {
	pagination = pagination.Normalize()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM candidates`); err != nil {
		return nil, fmt.Errorf("failed to count candidates: %w", err)
	}

	query := `SELECT ` + candidateColumns + ` FROM candidates ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	var models []candidateModel
	if err := r.db.SelectContext(ctx, &models, query, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	profiles, err := r.toEntities(models)
	if err != nil {
		return nil, err
	}

	items := make([]candidate.Profile, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, *p)
	}

	return kernel.NewPaginated(items, pagination, total), nil
}

func (r *PostgresCandidateRepository) ListAll(ctx context.Context) ([]*candidate.Profile, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates ORDER BY created_at DESC`

	var models []candidateModel
	if err := r.db.SelectContext(ctx, &models, query); err != nil {
		return nil, fmt.Errorf("failed to list all candidates: %w", err)
	}

	return r.toEntities(models)
}

func (r *PostgresCandidateRepository) Delete(ctx context.Context, id kernel.CandidateID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM candidates WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return candidate.ErrCandidateNotFound().WithDetail("candidate_id", id.String())
	}

	return nil
}

// ============================================================================
// Embeddings and semantic search (pgvector)
// ============================================================================

func (r *PostgresCandidateRepository) UpdateEmbedding(ctx context.Context, id kernel.CandidateID, embedding kernel.ProfileEmbedding) error {
	query := `
		INSERT INTO candidate_embeddings (candidate_id, profile_embedding, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (candidate_id) DO UPDATE SET
			profile_embedding = EXCLUDED.profile_embedding,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query, string(id), pgvector.NewVector(embedding), time.Now())
	if err != nil {
		return fmt.Errorf("failed to update candidate embedding: %w", err)
	}

	return nil
}

func (r *PostgresCandidateRepository) SemanticSearch(ctx context.Context, embedding kernel.ProfileEmbedding, limit int) ([]candidate.SearchHit, error) {
	if limit <= 0 {
		limit = 10
	}

	// Cosine distance, converted to similarity in [0, 1]
	query := `
		SELECT
			c.id, c.name, c.email, c.phone, c.location, c.linkedin, c.summary,
			c.skills, c.experience, c.education, c.certifications, c.languages,
			c.resume_url, c.created_at, c.updated_at,
			1 - (e.profile_embedding <=> $1) AS similarity
		FROM candidates c
		INNER JOIN candidate_embeddings e ON c.id = e.candidate_id
		ORDER BY e.profile_embedding <=> $1
		LIMIT $2
	`

	type searchModel struct {
		candidateModel
		Similarity float64 `db:"similarity"`
	}

	var models []searchModel
	if err := r.db.SelectContext(ctx, &models, query, pgvector.NewVector(embedding), limit); err != nil {
		return nil, fmt.Errorf("failed to run semantic search: %w", err)
	}

	hits := make([]candidate.SearchHit, 0, len(models))
	for _, model := range models {
		profile, err := model.toEntity()
		if err != nil {
			return nil, err
		}
		hits = append(hits, candidate.SearchHit{
			Profile:    profile,
			Similarity: model.Similarity,
		})
	}

	return hits, nil
}

func (r *PostgresCandidateRepository) toEntities(models []candidateModel) ([]*candidate.Profile, error) {
	profiles := make([]*candidate.Profile, 0, len(models))
	for _, model := range models {
		profile, err := model.toEntity()
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}
