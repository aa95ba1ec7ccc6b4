package jobapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/talentsift/screening/pkg/kernel"
	"github.com/talentsift/screening/screening/job"
	"github.com/talentsift/screening/screening/job/jobsrv"
)

// Handlers provides HTTP handlers for job operations
type Handlers struct {
	service *jobsrv.JobService
}

// NewHandlers creates a new job handlers instance
func NewHandlers(service *jobsrv.JobService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// ParseJob parses a raw job posting into a structured description
// POST /api/jobs/parse
func (h *Handlers) ParseJob(c *fiber.Ctx) error {
	var req job.ParseJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidJobData().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.ParseAndCreate(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// CreateJob creates a job description from structured input
// POST /api/jobs
func (h *Handlers) CreateJob(c *fiber.Ctx) error {
	var req job.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidJobData().WithDetail("parse_error", err.Error())
	}

	desc, err := h.service.CreateJob(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(desc)
}

// GetJobByID retrieves a job by ID
// GET /api/jobs/:id
func (h *Handlers) GetJobByID(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	resp, err := h.service.GetJobByID(c.Context(), jobID)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// ListJobs retrieves jobs with pagination
// GET /api/jobs
func (h *Handlers) ListJobs(c *fiber.Ctx) error {
	pagination := parsePaginationOptions(c)

	jobs, err := h.service.ListJobs(c.Context(), pagination)
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// UpdateJob updates an existing job
// PUT /api/jobs/:id
func (h *Handlers) UpdateJob(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	var req job.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidJobData().WithDetail("parse_error", err.Error())
	}

	desc, err := h.service.UpdateJob(c.Context(), jobID, req)
	if err != nil {
		return err
	}

	return c.JSON(desc)
}

// DeleteJob removes a job
// DELETE /api/jobs/:id
func (h *Handlers) DeleteJob(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	if err := h.service.DeleteJob(c.Context(), jobID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// parsePaginationOptions extracts pagination options from query parameters
func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	return kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}.Normalize()
}

// RegisterRoutes registers all job routes
func RegisterRoutes(router fiber.Router, handlers *Handlers) {
	api := router.Group("/jobs")

	api.Post("/parse", handlers.ParseJob)
	api.Post("/", handlers.CreateJob)
	api.Get("/", handlers.ListJobs)
	api.Get("/:id", handlers.GetJobByID)
	api.Put("/:id", handlers.UpdateJob)
	api.Delete("/:id", handlers.DeleteJob)
}
