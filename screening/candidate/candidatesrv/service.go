package candidatesrv

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/talentsift/screening/internal/ai/embeddings"
	"github.com/talentsift/screening/pkg/errx"
	"github.com/talentsift/screening/pkg/fsx"
	"github.com/talentsift/screening/pkg/kernel"
	"github.com/talentsift/screening/pkg/logx"
	"github.com/talentsift/screening/screening/candidate"
)

const defaultSearchLimit = 10

type Service struct {
	repo       candidate.Repository
	intakeRepo candidate.IntakeRepository
	parser     candidate.Parser
	embedder   candidate.Embedder
	files      fsx.FileSystem
	queue      candidate.IntakeQueue
}

// NewService creates a new candidate service
func NewService(
	repo candidate.Repository,
	intakeRepo candidate.IntakeRepository,
	parser candidate.Parser,
	embedder candidate.Embedder,
	files fsx.FileSystem,
	queue candidate.IntakeQueue,
) *Service {
	return &Service{
		repo:       repo,
		intakeRepo: intakeRepo,
		parser:     parser,
		embedder:   embedder,
		files:      files,
		queue:      queue,
	}
}

// ============================================================================
// CRUD Operations
// ============================================================================

// CreateCandidate stores a profile built from structured input
func (s *Service) CreateCandidate(ctx context.Context, req candidate.CreateCandidateRequest) (*candidate.Profile, error) {
	if req.Name == "" {
		return nil, candidate.ErrInvalidProfile().WithDetail("field", "name")
	}
	if !req.Email.IsValid() {
		return nil, candidate.ErrInvalidProfile().
			WithDetail("field", "email").
			WithDetail("value", req.Email.String())
	}

	if existing, err := s.repo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, candidate.ErrCandidateExists().WithDetail("email", req.Email.String())
	}

	now := time.Now()
	profile := &candidate.Profile{
		ID:             kernel.NewCandidateID(uuid.NewString()),
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Location:       req.Location,
		LinkedIn:       req.LinkedIn,
		Summary:        req.Summary,
		Skills:         req.Skills,
		Experience:     req.Experience,
		Education:      req.Education,
		Certifications: req.Certifications,
		Languages:      req.Languages,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, err
	}

	// A failed embedding leaves the profile retrievable by ID but
	// invisible to semantic search
	if err := s.updateProfileEmbedding(ctx, profile); err != nil {
		logx.Warnf("Failed to embed candidate %s: %v", profile.ID, err)
	}

	return profile, nil
}

// GetCandidate retrieves a profile by ID
func (s *Service) GetCandidate(ctx context.Context, id kernel.CandidateID) (*candidate.ProfileResponse, error) {
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toResponse(profile)
	return &resp, nil
}

// ListCandidates retrieves profiles with pagination
func (s *Service) ListCandidates(ctx context.Context, pagination kernel.PaginationOptions) (*candidate.PaginatedCandidatesResponse, error) {
	profiles, err := s.repo.List(ctx, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list candidates", errx.TypeInternal)
	}

	responses := make([]candidate.ProfileResponse, 0, len(profiles.Items))
	for _, p := range profiles.Items {
		responses = append(responses, toResponse(&p))
	}

	return &kernel.Paginated[candidate.ProfileResponse]{
		Items: responses,
		Page:  profiles.Page,
		Empty: profiles.Empty,
	}, nil
}

// DeleteCandidate removes a profile and its stored resume file
func (s *Service) DeleteCandidate(ctx context.Context, id kernel.CandidateID) error {
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if profile.ResumeURL != "" {
		if err := s.files.DeleteFile(ctx, string(profile.ResumeURL)); err != nil {
			logx.Warnf("Failed to delete resume file %s: %v", profile.ResumeURL, err)
		}
	}

	return s.repo.Delete(ctx, id)
}

// ============================================================================
// Semantic Search
// ============================================================================

// SearchCandidates embeds the query text and returns the closest
// profiles by embedding similarity
func (s *Service) SearchCandidates(ctx context.Context, req candidate.SearchCandidatesRequest) ([]candidate.SearchHit, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, candidate.ErrSearchFailed().WithDetail("field", "query")
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	embedding, err := s.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, candidate.ErrEmbeddingFailed().WithDetails(map[string]any{
			"error": err.Error(),
		})
	}

	hits, err := s.repo.SemanticSearch(ctx, embedding, limit)
	if err != nil {
		return nil, candidate.ErrSearchFailed().WithDetails(map[string]any{
			"error": err.Error(),
		})
	}

	return hits, nil
}

// ============================================================================
// Helper Methods
// ============================================================================

func (s *Service) updateProfileEmbedding(ctx context.Context, profile *candidate.Profile) error {
	embedding, err := s.embedder.GenerateEmbedding(ctx, embeddings.FormatProfile(profile))
	if err != nil {
		return err
	}
	return s.repo.UpdateEmbedding(ctx, profile.ID, embedding)
}

func toResponse(p *candidate.Profile) candidate.ProfileResponse {
	return candidate.ProfileResponse{
		ID:             p.ID,
		Name:           p.Name,
		Email:          p.Email,
		Phone:          p.Phone,
		Location:       p.Location,
		LinkedIn:       p.LinkedIn,
		Summary:        p.Summary,
		Skills:         p.Skills,
		Experience:     p.Experience,
		Education:      p.Education,
		Certifications: p.Certifications,
		Languages:      p.Languages,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
