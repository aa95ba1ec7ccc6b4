package job

import (
	"net/http"

	"github.com/talentsift/screening/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("JOB")

// Error codes
var (
	CodeJobNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job not found")
	CodeJobAlreadyExists = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Job already exists")
	CodeInvalidJobData   = ErrRegistry.Register("INVALID_DATA", errx.TypeValidation, http.StatusBadRequest, "Invalid job data")
	CodeJobParseFailed   = ErrRegistry.Register("PARSE_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to parse job description")
)

// Helper functions
func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrJobAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeJobAlreadyExists)
}

func ErrInvalidJobData() *errx.Error {
	return ErrRegistry.New(CodeInvalidJobData)
}

func ErrJobParseFailed() *errx.Error {
	return ErrRegistry.New(CodeJobParseFailed)
}
