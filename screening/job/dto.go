package job

import (
	"time"

	"github.com/talentsift/screening/pkg/kernel"
)

// ParseJobRequest - DTO for parsing a job description from raw text
type ParseJobRequest struct {
	JobDescriptionText string `json:"job_description_text" validate:"required"`
}

// ParseJobResponse - DTO returned after a parse request
type ParseJobResponse struct {
	JobID   kernel.JobID    `json:"job_id"`
	Title   kernel.JobTitle `json:"title"`
	Company kernel.Company  `json:"company"`
	Success bool            `json:"success"`
}

// CreateJobRequest - DTO for creating a job description directly
type CreateJobRequest struct {
	Title            kernel.JobTitle `json:"title" validate:"required"`
	Company          kernel.Company  `json:"company"`
	Location         string          `json:"location"`
	JobType          string          `json:"job_type"`
	Summary          string          `json:"description"`
	Responsibilities []string        `json:"responsibilities"`
	Requirements     Requirement     `json:"requirements"`
	SalaryRange      string          `json:"salary_range"`
	PostingDate      string          `json:"posting_date"`
	Department       string          `json:"department"`
}

// UpdateJobRequest - DTO for updating an existing job description
type UpdateJobRequest struct {
	Title            *kernel.JobTitle `json:"title,omitempty"`
	Company          *kernel.Company  `json:"company,omitempty"`
	Location         *string          `json:"location,omitempty"`
	JobType          *string          `json:"job_type,omitempty"`
	Summary          *string          `json:"description,omitempty"`
	Responsibilities *[]string        `json:"responsibilities,omitempty"`
	Requirements     *Requirement     `json:"requirements,omitempty"`
	SalaryRange      *string          `json:"salary_range,omitempty"`
	Department       *string          `json:"department,omitempty"`
}

// Response type alias for paginated job descriptions
type PaginatedJobsResponse = kernel.Paginated[DescriptionResponse]

// DescriptionResponse - DTO for returning job description data
type DescriptionResponse struct {
	ID               kernel.JobID    `json:"job_id"`
	Title            kernel.JobTitle `json:"title"`
	Company          kernel.Company  `json:"company"`
	Location         string          `json:"location"`
	JobType          string          `json:"job_type"`
	Summary          string          `json:"description"`
	Responsibilities []string        `json:"responsibilities"`
	Requirements     Requirement     `json:"requirements"`
	SalaryRange      string          `json:"salary_range"`
	PostingDate      string          `json:"posting_date"`
	Department       string          `json:"department"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
