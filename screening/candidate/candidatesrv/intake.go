package candidatesrv

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/talentsift/screening/internal/ai/embeddings"
	"github.com/talentsift/screening/internal/pdf"
	"github.com/talentsift/screening/pkg/fsx"
	"github.com/talentsift/screening/pkg/kernel"
	"github.com/talentsift/screening/pkg/logx"
	"github.com/talentsift/screening/screening/candidate"
)

const (
	resumeStoragePrefix = "resumes"
	maxIntakeAttempts   = 3
)

// UploadResume stores the uploaded file and queues it for background
// processing. The returned status carries the intake job ID the caller
// polls for progress.
func (s *Service) UploadResume(ctx context.Context, fileName string, data []byte) (*candidate.IntakeStatusResponse, error) {
	if len(data) == 0 {
		return nil, candidate.ErrInvalidFileFormat().WithDetail("file_name", fileName)
	}

	fileType, err := detectFileType(fileName, data)
	if err != nil {
		return nil, err
	}

	jobID := kernel.NewIntakeJobID(uuid.NewString())
	filePath := fsx.Join(resumeStoragePrefix, jobID.String(), fileName)

	if err := s.files.WriteFile(ctx, filePath, data); err != nil {
		return nil, candidate.ErrFileReadFailed().
			WithDetail("file_path", filePath).
			WithDetails(map[string]any{
				"error": err.Error(),
			})
	}

	job := &candidate.IntakeJob{
		ID:           jobID,
		Status:       candidate.IntakeStatusPending,
		FilePath:     filePath,
		FileName:     fileName,
		FileType:     fileType,
		AttemptCount: 0,
		MaxAttempts:  maxIntakeAttempts,
		CreatedAt:    time.Now(),
	}

	if err := s.intakeRepo.Create(ctx, job); err != nil {
		return nil, candidate.ErrIntakeCreateFailed().
			WithDetail("file_name", fileName).
			WithDetails(map[string]any{
				"error": err.Error(),
			})
	}

	if err := s.queue.Enqueue(ctx, jobID, job); err != nil {
		_ = s.intakeRepo.MarkAsFailed(ctx, jobID, "failed to enqueue", map[string]any{
			"error": err.Error(),
		})

		return nil, candidate.ErrQueueEnqueueFailed().
			WithDetail("job_id", jobID.String()).
			WithDetails(map[string]any{
				"error": err.Error(),
			})
	}

	logx.Infof("Resume queued for processing: JobID=%s, File=%s", jobID, fileName)

	return &candidate.IntakeStatusResponse{
		JobID:     jobID,
		Status:    candidate.IntakeStatusPending,
		Message:   "Resume queued for processing",
		Progress:  0,
		CreatedAt: job.CreatedAt,
	}, nil
}

// ProcessIntakeJob runs the full intake pipeline for one queued job:
// extract text, parse the profile, persist it, embed it.
func (s *Service) ProcessIntakeJob(ctx context.Context, job *candidate.IntakeJob) error {
	logx.Infof("Processing intake job: JobID=%s, Attempt=%d/%d", job.ID, job.AttemptCount+1, job.MaxAttempts)

	if err := s.intakeRepo.MarkAsProcessing(ctx, job.ID); err != nil {
		return candidate.ErrIntakeUpdateFailed().
			WithDetail("job_id", job.ID.String()).
			WithDetails(map[string]any{
				"error": err.Error(),
			})
	}

	_ = s.intakeRepo.UpdateProgress(ctx, job.ID, candidate.StepExtracting, 20)

	fileData, err := s.files.ReadFile(ctx, job.FilePath)
	if err != nil {
		return s.handleIntakeError(ctx, job, "file_read_failed", err)
	}

	text, err := extractResumeText(job.FileType, fileData)
	if err != nil {
		return s.handleIntakeError(ctx, job, "text_extraction_failed", err)
	}

	_ = s.intakeRepo.UpdateProgress(ctx, job.ID, candidate.StepParsing, 40)

	profile, err := s.parser.ParseResume(ctx, text)
	if err != nil {
		return s.handleIntakeError(ctx, job, "parsing_failed", err)
	}
	profile.ResumeURL = kernel.BucketURL(job.FilePath)

	_ = s.intakeRepo.UpdateProgress(ctx, job.ID, candidate.StepEmbedding, 60)

	embedding, err := s.embedder.GenerateEmbedding(ctx, embeddings.FormatProfile(profile))
	if err != nil {
		return s.handleIntakeError(ctx, job, "embedding_failed", err)
	}

	_ = s.intakeRepo.UpdateProgress(ctx, job.ID, candidate.StepSaving, 80)

	if err := s.repo.Create(ctx, profile); err != nil {
		return s.handleIntakeError(ctx, job, "save_failed", err)
	}

	if err := s.repo.UpdateEmbedding(ctx, profile.ID, embedding); err != nil {
		// The profile exists; a missing embedding only degrades search
		logx.Warnf("Failed to store embedding for candidate %s: %v", profile.ID, err)
	}

	if err := s.intakeRepo.MarkAsCompleted(ctx, job.ID, profile.ID); err != nil {
		logx.Errorf("Failed to mark intake job %s as completed: %v", job.ID, err)
	}

	logx.Infof("Intake job completed: JobID=%s, CandidateID=%s", job.ID, profile.ID)
	return nil
}

// handleIntakeError applies the retry policy: exponential backoff while
// attempts remain, permanent failure after that
func (s *Service) handleIntakeError(ctx context.Context, job *candidate.IntakeJob, errorType string, err error) error {
	job.AttemptCount++

	errorDetails := map[string]any{
		"error":        err.Error(),
		"error_type":   errorType,
		"attempt":      job.AttemptCount,
		"max_attempts": job.MaxAttempts,
		"file_path":    job.FilePath,
		"file_name":    job.FileName,
	}

	if job.AttemptCount < job.MaxAttempts {
		// 2^attempt minutes between retries
		retryDelay := time.Duration(1<<uint(job.AttemptCount)) * time.Minute
		nextRetry := time.Now().Add(retryDelay)
		job.NextRetryAt = &nextRetry

		logx.Warnf("Intake job failed, will retry: JobID=%s, Attempt=%d/%d, NextRetry=%v, Error=%s",
			job.ID, job.AttemptCount, job.MaxAttempts, nextRetry, errorType)

		if queueErr := s.queue.EnqueueDelayed(ctx, job.ID, job, retryDelay); queueErr != nil {
			logx.Errorf("Failed to enqueue intake retry: %v", queueErr)

			_ = s.intakeRepo.MarkAsFailed(ctx, job.ID,
				fmt.Sprintf("%s (retry enqueue failed)", errorType),
				errorDetails)

			return candidate.ErrIntakeFailed().
				WithDetail("job_id", job.ID.String()).
				WithDetail("error_type", errorType).
				WithDetails(errorDetails)
		}

		job.ErrorMessage = fmt.Sprintf("%s (will retry)", errorType)
		job.ErrorDetails = errorDetails
		job.Status = candidate.IntakeStatusPending

		if updateErr := s.intakeRepo.Update(ctx, job); updateErr != nil {
			logx.Errorf("Failed to update intake job for retry: %v", updateErr)
		}

		return candidate.ErrIntakeFailed().
			WithDetail("job_id", job.ID.String()).
			WithDetail("error_type", errorType).
			WithDetail("will_retry", true).
			WithDetails(errorDetails)
	}

	logx.Errorf("Intake job permanently failed: JobID=%s, Error=%s, Attempts=%d/%d",
		job.ID, errorType, job.AttemptCount, job.MaxAttempts)

	_ = s.intakeRepo.MarkAsFailed(ctx, job.ID, errorType, errorDetails)

	return candidate.ErrIntakeMaxRetries().
		WithDetail("job_id", job.ID.String()).
		WithDetail("error_type", errorType).
		WithDetail("final_attempt", job.AttemptCount).
		WithDetails(errorDetails)
}

// GetIntakeStatus retrieves the current state of an intake job
func (s *Service) GetIntakeStatus(ctx context.Context, jobID kernel.IntakeJobID) (*candidate.IntakeStatusResponse, error) {
	job, err := s.intakeRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, candidate.ErrIntakeJobNotFound().WithDetail("job_id", jobID.String())
	}

	resp := &candidate.IntakeStatusResponse{
		JobID:        job.ID,
		Status:       job.Status,
		Progress:     job.ProgressPercentage,
		CurrentStep:  job.CurrentStep,
		CandidateID:  job.CandidateID,
		AttemptCount: job.AttemptCount,
		NextRetryAt:  job.NextRetryAt,
		CreatedAt:    job.CreatedAt,
		CompletedAt:  job.CompletedAt,
	}

	switch job.Status {
	case candidate.IntakeStatusPending:
		resp.Message = "Resume queued for processing"
	case candidate.IntakeStatusProcessing:
		resp.Message = "Resume is being processed"
	case candidate.IntakeStatusCompleted:
		resp.Message = "Resume processed successfully"
	case candidate.IntakeStatusFailed:
		if job.CanRetry() {
			resp.Message = "Processing failed, retry scheduled"
		} else {
			resp.Message = "Processing failed"
		}
		resp.Error = &candidate.IntakeError{
			Message: job.ErrorMessage,
			Details: job.ErrorDetails,
		}
	}

	return resp, nil
}

// ============================================================================
// Helper Functions
// ============================================================================

func detectFileType(fileName string, data []byte) (string, error) {
	if pdf.IsPDF(data) {
		return "pdf", nil
	}

	name := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(name, ".pdf"):
		// Extension says PDF but the magic bytes disagree
		return "", candidate.ErrInvalidFileFormat().
			WithDetail("file_name", fileName).
			WithDetail("reason", "file does not look like a PDF")
	case strings.HasSuffix(name, ".txt"), strings.HasSuffix(name, ".md"):
		return "txt", nil
	default:
		return "", candidate.ErrInvalidFileFormat().
			WithDetail("file_name", fileName).
			WithDetail("supported_formats", []string{"pdf", "txt"})
	}
}

func extractResumeText(fileType string, data []byte) (string, error) {
	switch fileType {
	case "pdf":
		return pdf.ExtractText(data)
	case "txt":
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported file type: %s", fileType)
	}
}
