package candidate

import (
	"net/http"

	"github.com/talentsift/screening/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("CANDIDATE")

// Error codes - Candidate Operations
var (
	CodeCandidateNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Candidate not found")
	CodeCandidateExists   = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Candidate already exists")
	CodeInvalidProfile    = ErrRegistry.Register("INVALID_PROFILE", errx.TypeValidation, http.StatusBadRequest, "Invalid candidate profile")
	CodeResumeParseFailed = ErrRegistry.Register("PARSE_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to parse resume")
	CodeInvalidFileFormat = ErrRegistry.Register("INVALID_FILE_FORMAT", errx.TypeValidation, http.StatusBadRequest, "Invalid file format")
	CodeFileReadFailed    = ErrRegistry.Register("FILE_READ_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to read file")
	CodeSearchFailed      = ErrRegistry.Register("SEARCH_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Search operation failed")
	CodeEmbeddingFailed   = ErrRegistry.Register("EMBEDDING_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to generate embeddings")
)

// Error codes - Intake/Queue Operations
var (
	CodeIntakeJobNotFound  = ErrRegistry.Register("INTAKE_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Intake job not found")
	CodeIntakeFailed       = ErrRegistry.Register("INTAKE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Resume intake failed")
	CodeIntakeMaxRetries   = ErrRegistry.Register("INTAKE_MAX_RETRIES", errx.TypeInternal, http.StatusInternalServerError, "Intake exceeded maximum retry attempts")
	CodeQueueEnqueueFailed = ErrRegistry.Register("QUEUE_ENQUEUE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to enqueue intake job")
	CodeIntakeCreateFailed = ErrRegistry.Register("INTAKE_CREATE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to create intake job record")
	CodeIntakeUpdateFailed = ErrRegistry.Register("INTAKE_UPDATE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to update intake job")
)

// Helper functions
func ErrCandidateNotFound() *errx.Error {
	return ErrRegistry.New(CodeCandidateNotFound)
}

func ErrCandidateExists() *errx.Error {
	return ErrRegistry.New(CodeCandidateExists)
}

func ErrInvalidProfile() *errx.Error {
	return ErrRegistry.New(CodeInvalidProfile)
}

func ErrResumeParseFailed() *errx.Error {
	return ErrRegistry.New(CodeResumeParseFailed)
}

func ErrInvalidFileFormat() *errx.Error {
	return ErrRegistry.New(CodeInvalidFileFormat)
}

func ErrFileReadFailed() *errx.Error {
	return ErrRegistry.New(CodeFileReadFailed)
}

func ErrSearchFailed() *errx.Error {
	return ErrRegistry.New(CodeSearchFailed)
}

func ErrEmbeddingFailed() *errx.Error {
	return ErrRegistry.New(CodeEmbeddingFailed)
}

func ErrIntakeJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeIntakeJobNotFound)
}

func ErrIntakeFailed() *errx.Error {
	return ErrRegistry.New(CodeIntakeFailed)
}

func ErrIntakeMaxRetries() *errx.Error {
	return ErrRegistry.New(CodeIntakeMaxRetries)
}

func ErrQueueEnqueueFailed() *errx.Error {
	return ErrRegistry.New(CodeQueueEnqueueFailed)
}

func ErrIntakeCreateFailed() *errx.Error {
	return ErrRegistry.New(CodeIntakeCreateFailed)
}

func ErrIntakeUpdateFailed() *errx.Error {
	return ErrRegistry.New(CodeIntakeUpdateFailed)
}
