package email

import (
	"github.com/talentsift/screening/pkg/kernel"
)

// ScheduleRequest - DTO for a bulk email run against a job's matches.
// Empty CandidateIDs means "derive recipients from shortlist state":
// invitations go to shortlisted candidates, rejections to the rest.
type ScheduleRequest struct {
	JobID        kernel.JobID         `json:"job_id" validate:"required"`
	Kind         Kind                 `json:"email_type" validate:"required"`
	CandidateIDs []kernel.CandidateID `json:"candidate_ids,omitempty"`
	NumSlots     int                  `json:"num_slots,omitempty"`
}

// ScheduleResponse - DTO returned after a bulk email run
type ScheduleResponse struct {
	JobTitle   kernel.JobTitle `json:"job_title"`
	Company    kernel.Company  `json:"company"`
	EmailsSent int             `json:"emails_sent"`
	Failed     int             `json:"failed"`
	Results    []*Record       `json:"results"`
}

// SetTemplateRequest - DTO for overriding a template
type SetTemplateRequest struct {
	Kind    Kind   `json:"template_type" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body" validate:"required"`
}
