package candidate

import (
	"time"

	"github.com/talentsift/screening/pkg/kernel"
)

type IntakeStatus string

const (
	IntakeStatusPending    IntakeStatus = "pending"
	IntakeStatusProcessing IntakeStatus = "processing"
	IntakeStatusCompleted  IntakeStatus = "completed"
	IntakeStatusFailed     IntakeStatus = "failed"
)

type IntakeStep string

const (
	StepUploading  IntakeStep = "uploading"
	StepExtracting IntakeStep = "extracting"
	StepParsing    IntakeStep = "parsing"
	StepEmbedding  IntakeStep = "embedding"
	StepSaving     IntakeStep = "saving"
)

// IntakeJob tracks the asynchronous processing of one uploaded resume
// from stored file to saved candidate profile.
type IntakeJob struct {
	ID          kernel.IntakeJobID  `db:"id" json:"id"`
	CandidateID *kernel.CandidateID `db:"candidate_id" json:"candidate_id,omitempty"`

	Status   IntakeStatus `db:"status" json:"status"`
	FilePath string       `db:"file_path" json:"file_path"`
	FileName string       `db:"file_name" json:"file_name"`
	FileType string       `db:"file_type" json:"file_type"`

	AttemptCount int `db:"attempt_count" json:"attempt_count"`
	MaxAttempts  int `db:"max_attempts" json:"max_attempts"`

	ErrorMessage string         `db:"error_message" json:"error_message,omitempty"`
	ErrorDetails map[string]any `db:"error_details" json:"error_details,omitempty"`

	CurrentStep        *IntakeStep `db:"current_step" json:"current_step,omitempty"`
	ProgressPercentage int         `db:"progress_percentage" json:"progress_percentage"`

	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	StartedAt   *time.Time `db:"started_at" json:"started_at,omitempty"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	FailedAt    *time.Time `db:"failed_at" json:"failed_at,omitempty"`
	NextRetryAt *time.Time `db:"next_retry_at" json:"next_retry_at,omitempty"`
}

// CanRetry reports whether the job has attempts left
func (j *IntakeJob) CanRetry() bool {
	return j.AttemptCount < j.MaxAttempts
}

// IsTerminal reports whether the job has reached a final state
func (j *IntakeJob) IsTerminal() bool {
	return j.Status == IntakeStatusCompleted ||
		(j.Status == IntakeStatusFailed && !j.CanRetry())
}

// IntakeStatusResponse - Response for intake status queries
type IntakeStatusResponse struct {
	JobID       kernel.IntakeJobID  `json:"job_id"`
	Status      IntakeStatus        `json:"status"`
	Message     string              `json:"message"`
	Progress    int                 `json:"progress"`
	CurrentStep *IntakeStep         `json:"current_step,omitempty"`
	CandidateID *kernel.CandidateID `json:"candidate_id,omitempty"`
	Error       *IntakeError        `json:"error,omitempty"`

	AttemptCount int        `json:"attempt_count,omitempty"`
	NextRetryAt  *time.Time `json:"next_retry_at,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// IntakeError - Error details for failed intake jobs
type IntakeError struct {
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
