package email_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talentsift/screening/screening/email"
)

func TestTemplateRender(t *testing.T) {
	tpl := email.Template{
		Subject: "Interview Invitation for {job_title} at {company}",
		Body:    "Dear {candidate_name},\n\nSlots:\n{interview_slots}\n",
	}

	rendered := tpl.Render(map[string]string{
		"candidate_name":  "Jane Doe",
		"job_title":       "Backend Engineer",
		"company":         "Acme",
		"interview_slots": "- 2026-03-05 from 10:00 to 11:00",
	})

	assert.Equal(t, "Interview Invitation for Backend Engineer at Acme", rendered.Subject)
	assert.Contains(t, rendered.Body, "Dear Jane Doe,")
	assert.Contains(t, rendered.Body, "- 2026-03-05 from 10:00 to 11:00")
	assert.NotContains(t, rendered.Body, "{")
}

func TestTemplateRenderLeavesUnknownPlaceholders(t *testing.T) {
	tpl := email.Template{Subject: "{job_title}", Body: "{something_else}"}

	rendered := tpl.Render(map[string]string{"job_title": "QA Lead"})

	assert.Equal(t, "QA Lead", rendered.Subject)
	assert.Equal(t, "{something_else}", rendered.Body)
}

func TestFormatSlots(t *testing.T) {
	slots := []email.InterviewSlot{
		{Date: "2026-03-05", StartTime: "10:00", EndTime: "11:00"},
		{Date: "2026-03-05", StartTime: "14:00", EndTime: "15:00"},
	}

	assert.Equal(t,
		"- 2026-03-05 from 10:00 to 11:00\n- 2026-03-05 from 14:00 to 15:00",
		email.FormatSlots(slots))
}

func TestKindIsValid(t *testing.T) {
	assert.True(t, email.KindInterviewInvitation.IsValid())
	assert.True(t, email.KindRejection.IsValid())
	assert.False(t, email.Kind("newsletter").IsValid())
}
