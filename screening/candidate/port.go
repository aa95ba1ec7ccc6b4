package candidate

import (
	"context"
	"time"

	"github.com/talentsift/screening/pkg/kernel"
)

type Repository interface {
	// Create stores a new candidate profile
	Create(ctx context.Context, profile *Profile) error

	// Update updates an existing profile
	Update(ctx context.Context, id kernel.CandidateID, profile *Profile) error

	// GetByID retrieves a profile by ID
	GetByID(ctx context.Context, id kernel.CandidateID) (*Profile, error)

	// GetByIDs retrieves multiple profiles, skipping unknown IDs
	GetByIDs(ctx context.Context, ids []kernel.CandidateID) ([]*Profile, error)

	// GetByEmail retrieves a profile by email address
	GetByEmail(ctx context.Context, email kernel.Email) (*Profile, error)

	// List retrieves profiles with pagination, newest first
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[Profile], error)

	// ListAll retrieves every profile (used for whole-population matching)
	ListAll(ctx context.Context) ([]*Profile, error)

	// Delete removes a profile
	Delete(ctx context.Context, id kernel.CandidateID) error

	// UpdateEmbedding stores the profile embedding vector
	UpdateEmbedding(ctx context.Context, id kernel.CandidateID, embedding kernel.ProfileEmbedding) error

	// SemanticSearch returns profiles ordered by embedding similarity
	SemanticSearch(ctx context.Context, embedding kernel.ProfileEmbedding, limit int) ([]SearchHit, error)
}

// SearchHit pairs a profile with its similarity to the query embedding
type SearchHit struct {
	Profile    *Profile `json:"profile"`
	Similarity float64  `json:"similarity"`
}

type IntakeRepository interface {
	Create(ctx context.Context, job *IntakeJob) error
	Update(ctx context.Context, job *IntakeJob) error
	GetByID(ctx context.Context, id kernel.IntakeJobID) (*IntakeJob, error)

	// MarkAsProcessing flips the job to processing and stamps started_at
	MarkAsProcessing(ctx context.Context, id kernel.IntakeJobID) error

	// MarkAsCompleted records the produced candidate and completion time
	MarkAsCompleted(ctx context.Context, id kernel.IntakeJobID, candidateID kernel.CandidateID) error

	// MarkAsFailed records the failure reason
	MarkAsFailed(ctx context.Context, id kernel.IntakeJobID, errorMsg string, details map[string]any) error

	// UpdateProgress records the current step and percentage
	UpdateProgress(ctx context.Context, id kernel.IntakeJobID, step IntakeStep, percentage int) error
}

// IntakeQueue defines the queue operations for intake jobs
type IntakeQueue interface {
	// Enqueue adds a job to the ready queue
	Enqueue(ctx context.Context, id kernel.IntakeJobID, payload any) error

	// Dequeue pops a job, blocking up to timeout; (nil, nil) on timeout
	Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error)

	// EnqueueDelayed schedules a job for later processing (retries)
	EnqueueDelayed(ctx context.Context, id kernel.IntakeJobID, payload any, delay time.Duration) error

	// MoveDelayedToReady promotes due delayed jobs to the ready queue
	MoveDelayedToReady(ctx context.Context) (int, error)

	// Size returns the number of ready jobs
	Size(ctx context.Context) (int64, error)
}

// Parser extracts a structured Profile from raw resume text
type Parser interface {
	ParseResume(ctx context.Context, resumeText string) (*Profile, error)
}

// Embedder turns profile text into an embedding vector
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}
