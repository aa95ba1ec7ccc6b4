package match

import (
	"net/http"

	"github.com/talentsift/screening/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("MATCH")

// Error codes. The scoring core itself never fails for well-typed
// input; these cover the surrounding persistence and lookup paths.
var (
	CodeMatchNotFound    = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Match result not found")
	CodeNoCandidates     = ErrRegistry.Register("NO_CANDIDATES", errx.TypeBusiness, http.StatusUnprocessableEntity, "No candidates available to match")
	CodeMatchStoreFailed = ErrRegistry.Register("STORE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to store match result")
)

// Helper functions
func ErrMatchNotFound() *errx.Error {
	return ErrRegistry.New(CodeMatchNotFound)
}

func ErrNoCandidates() *errx.Error {
	return ErrRegistry.New(CodeNoCandidates)
}

func ErrMatchStoreFailed() *errx.Error {
	return ErrRegistry.New(CodeMatchStoreFailed)
}
