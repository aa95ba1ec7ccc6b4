package matchapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/talentsift/screening/pkg/kernel"
	"github.com/talentsift/screening/screening/match"
	"github.com/talentsift/screening/screening/match/matchsrv"
)

// Handlers provides HTTP handlers for matching operations
type Handlers struct {
	service *matchsrv.Service
}

// NewHandlers creates a new match handlers instance
func NewHandlers(service *matchsrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// MatchJob scores candidates against a job and stores the results
// POST /api/matches
func (h *Handlers) MatchJob(c *fiber.Ctx) error {
	var req match.MatchRequest
	if err := c.BodyParser(&req); err != nil {
		return match.ErrNoCandidates().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.MatchJob(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// MatchCandidate scores a single candidate against a job
// POST /api/matches/jobs/:jobId/candidates/:candidateId
func (h *Handlers) MatchCandidate(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("jobId"))
	candidateID := kernel.CandidateID(c.Params("candidateId"))
	if jobID.IsEmpty() || candidateID.IsEmpty() {
		return match.ErrMatchNotFound().WithDetail("id", "missing or empty")
	}

	result, err := h.service.MatchCandidate(c.Context(), jobID, candidateID)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// ShortlistJob splits a job's stored matches at a score threshold
// POST /api/matches/shortlist
func (h *Handlers) ShortlistJob(c *fiber.Ctx) error {
	var req match.ShortlistRequest
	if err := c.BodyParser(&req); err != nil {
		return match.ErrMatchNotFound().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.ShortlistJob(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// ListMatches retrieves a job's stored match results, best first
// GET /api/matches/jobs/:jobId
func (h *Handlers) ListMatches(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("jobId"))
	if jobID.IsEmpty() {
		return match.ErrMatchNotFound().WithDetail("job_id", "missing or empty")
	}

	results, err := h.service.ListMatches(c.Context(), jobID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"job_id":  jobID,
		"matches": results,
	})
}

// RegisterRoutes registers all matching routes
func RegisterRoutes(router fiber.Router, handlers *Handlers) {
	api := router.Group("/matches")

	api.Post("/", handlers.MatchJob)
	api.Post("/shortlist", handlers.ShortlistJob)
	api.Get("/jobs/:jobId", handlers.ListMatches)
	api.Post("/jobs/:jobId/candidates/:candidateId", handlers.MatchCandidate)
}
