package candidate

import (
	"time"

	"github.com/talentsift/screening/pkg/kernel"
)

// UploadResumeRequest - DTO for queueing an uploaded resume for intake
type UploadResumeRequest struct {
	FilePath string `json:"file_path" validate:"required"`
	FileName string `json:"file_name" validate:"required"`
	FileType string `json:"file_type" validate:"required"` // pdf, txt
}

// ParseResumeResponse - DTO returned after a synchronous parse
type ParseResumeResponse struct {
	CandidateID kernel.CandidateID `json:"candidate_id"`
	Name        string             `json:"name"`
	Email       kernel.Email       `json:"email"`
	Skills      []string           `json:"skills"`
	Success     bool               `json:"success"`
}

// CreateCandidateRequest - DTO for creating a profile directly
type CreateCandidateRequest struct {
	Name           string            `json:"name" validate:"required"`
	Email          kernel.Email      `json:"email" validate:"required"`
	Phone          kernel.Phone      `json:"phone"`
	Location       string            `json:"location"`
	LinkedIn       string            `json:"linkedin"`
	Summary        string            `json:"summary"`
	Skills         []string          `json:"skills"`
	Experience     []ExperienceEntry `json:"experience"`
	Education      []EducationEntry  `json:"education"`
	Certifications []string          `json:"certifications"`
	Languages      []string          `json:"languages"`
}

// SearchCandidatesRequest - DTO for semantic candidate search
type SearchCandidatesRequest struct {
	Query string `json:"query" validate:"required"`
	Limit int    `json:"limit"`
}

// Response type alias for paginated profiles
type PaginatedCandidatesResponse = kernel.Paginated[ProfileResponse]

// ProfileResponse - DTO for returning candidate data
type ProfileResponse struct {
	ID             kernel.CandidateID `json:"candidate_id"`
	Name           string             `json:"name"`
	Email          kernel.Email       `json:"email"`
	Phone          kernel.Phone       `json:"phone"`
	Location       string             `json:"location"`
	LinkedIn       string             `json:"linkedin"`
	Summary        string             `json:"summary"`
	Skills         []string           `json:"skills"`
	Experience     []ExperienceEntry  `json:"experience"`
	Education      []EducationEntry   `json:"education"`
	Certifications []string           `json:"certifications"`
	Languages      []string           `json:"languages"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}
