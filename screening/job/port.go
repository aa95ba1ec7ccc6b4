package job

import (
	"context"

	"github.com/talentsift/screening/pkg/kernel"
)

type Repository interface {
	// Create stores a new job description
	Create(ctx context.Context, desc *Description) error

	// Update updates an existing job description
	Update(ctx context.Context, id kernel.JobID, desc *Description) error

	// GetByID retrieves a job description by ID
	GetByID(ctx context.Context, id kernel.JobID) (*Description, error)

	// Delete removes a job description
	Delete(ctx context.Context, id kernel.JobID) error

	// List retrieves job descriptions with pagination, newest first
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[Description], error)

	// Exists checks if a job description exists
	Exists(ctx context.Context, id kernel.JobID) (bool, error)
}

// Parser extracts a structured Description from free job-posting text
type Parser interface {
	ParseJobDescription(ctx context.Context, text string) (*Description, error)
}
