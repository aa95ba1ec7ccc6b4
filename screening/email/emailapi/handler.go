package emailapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/talentsift/screening/pkg/kernel"
	"github.com/talentsift/screening/screening/email"
	"github.com/talentsift/screening/screening/email/emailsrv"
)

// Handlers provides HTTP handlers for email operations
type Handlers struct {
	service *emailsrv.Service
}

// NewHandlers creates a new email handlers instance
func NewHandlers(service *emailsrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Schedule sends invitation or rejection emails for a job
// POST /api/emails/schedule
func (h *Handlers) Schedule(c *fiber.Ctx) error {
	var req email.ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return email.ErrUnknownTemplate().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.Schedule(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// ListByJob retrieves the email log for a job
// GET /api/emails/jobs/:jobId
func (h *Handlers) ListByJob(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("jobId"))
	if jobID.IsEmpty() {
		return email.ErrNoRecipients().WithDetail("job_id", "missing or empty")
	}

	records, err := h.service.ListByJob(c.Context(), jobID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"job_id": jobID,
		"emails": records,
	})
}

// SetTemplate overrides a default email template
// PUT /api/emails/templates
func (h *Handlers) SetTemplate(c *fiber.Ctx) error {
	var req email.SetTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return email.ErrUnknownTemplate().WithDetail("parse_error", err.Error())
	}

	if err := h.service.SetTemplate(req.Kind, req.Subject, req.Body); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"template_type": req.Kind,
		"updated":       true,
	})
}

// RegisterRoutes registers all email routes
func RegisterRoutes(router fiber.Router, handlers *Handlers) {
	api := router.Group("/emails")

	api.Post("/schedule", handlers.Schedule)
	api.Get("/jobs/:jobId", handlers.ListByJob)
	api.Put("/templates", handlers.SetTemplate)
}
