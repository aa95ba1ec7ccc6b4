package email

import (
	"fmt"
	"strings"
	"time"

	"github.com/talentsift/screening/pkg/kernel"
)

// Kind selects which template an email is rendered from
type Kind string

const (
	KindInterviewInvitation Kind = "interview_invitation"
	KindRejection           Kind = "rejection"
)

// IsValid reports whether the kind names a known template
func (k Kind) IsValid() bool {
	return k == KindInterviewInvitation || k == KindRejection
}

// InterviewSlot is one proposed interview time
type InterviewSlot struct {
	Date      string `json:"date"`       // YYYY-MM-DD
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
}

func (s InterviewSlot) String() string {
	return fmt.Sprintf("%s from %s to %s", s.Date, s.StartTime, s.EndTime)
}

// FormatSlots renders slots as the bullet list substituted into the
// {interview_slots} placeholder
func FormatSlots(slots []InterviewSlot) string {
	lines := make([]string, 0, len(slots))
	for _, slot := range slots {
		lines = append(lines, "- "+slot.String())
	}
	return strings.Join(lines, "\n")
}

// Template is an email template with {placeholder} substitution.
// Recognized placeholders: {candidate_name}, {job_title}, {company},
// {interview_slots}.
type Template struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Render substitutes placeholders in subject and body
func (t Template) Render(replacements map[string]string) Template {
	subject := t.Subject
	body := t.Body
	for key, value := range replacements {
		placeholder := "{" + key + "}"
		subject = strings.ReplaceAll(subject, placeholder, value)
		body = strings.ReplaceAll(body, placeholder, value)
	}
	return Template{Subject: subject, Body: body}
}

// Record logs one email delivery attempt
type Record struct {
	ID          kernel.EmailID     `db:"id" json:"id"`
	JobID       kernel.JobID       `db:"job_id" json:"job_id"`
	CandidateID kernel.CandidateID `db:"candidate_id" json:"candidate_id"`
	Recipient   kernel.Email       `db:"recipient" json:"email_to"`
	Kind        Kind               `db:"kind" json:"kind"`
	Subject     string             `db:"subject" json:"subject"`
	Success     bool               `db:"success" json:"success"`
	Message     string             `db:"message" json:"message,omitempty"`
	SentAt      *time.Time         `db:"sent_at" json:"sent_at,omitempty"`
	CreatedAt   time.Time          `db:"created_at" json:"created_at"`
}
