package candidateapi

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/talentsift/screening/pkg/kernel"
	"github.com/talentsift/screening/screening/candidate"
	"github.com/talentsift/screening/screening/candidate/candidatesrv"
)

// Handlers provides HTTP handlers for candidate operations
type Handlers struct {
	service *candidatesrv.Service
}

// NewHandlers creates a new candidate handlers instance
func NewHandlers(service *candidatesrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// UploadResume accepts a resume file and queues it for processing
// POST /api/candidates/upload
func (h *Handlers) UploadResume(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return candidate.ErrInvalidFileFormat().WithDetail("field", "file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return candidate.ErrFileReadFailed().WithDetail("file_name", fileHeader.Filename)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return candidate.ErrFileReadFailed().WithDetail("file_name", fileHeader.Filename)
	}

	resp, err := h.service.UploadResume(c.Context(), fileHeader.Filename, data)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusAccepted).JSON(resp)
}

// GetIntakeStatus reports the progress of a queued resume
// GET /api/candidates/intake/:jobId
func (h *Handlers) GetIntakeStatus(c *fiber.Ctx) error {
	jobID := kernel.IntakeJobID(c.Params("jobId"))
	if jobID.IsEmpty() {
		return candidate.ErrIntakeJobNotFound().WithDetail("job_id", "missing or empty")
	}

	resp, err := h.service.GetIntakeStatus(c.Context(), jobID)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// CreateCandidate creates a profile from structured input
// POST /api/candidates
func (h *Handlers) CreateCandidate(c *fiber.Ctx) error {
	var req candidate.CreateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrInvalidProfile().WithDetail("parse_error", err.Error())
	}

	profile, err := h.service.CreateCandidate(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(profile)
}

// GetCandidate retrieves a profile by ID
// GET /api/candidates/:id
func (h *Handlers) GetCandidate(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("id"))
	if candidateID.IsEmpty() {
		return candidate.ErrCandidateNotFound().WithDetail("id", "missing or empty")
	}

	resp, err := h.service.GetCandidate(c.Context(), candidateID)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// ListCandidates retrieves profiles with pagination
// GET /api/candidates
func (h *Handlers) ListCandidates(c *fiber.Ctx) error {
	pagination := kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}.Normalize()

	candidates, err := h.service.ListCandidates(c.Context(), pagination)
	if err != nil {
		return err
	}

	return c.JSON(candidates)
}

// DeleteCandidate removes a profile
// DELETE /api/candidates/:id
func (h *Handlers) DeleteCandidate(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("id"))
	if candidateID.IsEmpty() {
		return candidate.ErrCandidateNotFound().WithDetail("id", "missing or empty")
	}

	if err := h.service.DeleteCandidate(c.Context(), candidateID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// SearchCandidates runs a semantic search over candidate profiles
// POST /api/candidates/search
func (h *Handlers) SearchCandidates(c *fiber.Ctx) error {
	var req candidate.SearchCandidatesRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrSearchFailed().WithDetail("parse_error", err.Error())
	}

	hits, err := h.service.SearchCandidates(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"query":   req.Query,
		"results": hits,
	})
}

// RegisterRoutes registers all candidate routes
func RegisterRoutes(router fiber.Router, handlers *Handlers) {
	api := router.Group("/candidates")

	api.Post("/upload", handlers.UploadResume)
	api.Get("/intake/:jobId", handlers.GetIntakeStatus)
	api.Post("/search", handlers.SearchCandidates)
	api.Post("/", handlers.CreateCandidate)
	api.Get("/", handlers.ListCandidates)
	api.Get("/:id", handlers.GetCandidate)
	api.Delete("/:id", handlers.DeleteCandidate)
}
