package emailsrv

import (
	"github.com/talentsift/screening/screening/email"
)

// Default templates. Placeholders are substituted at send time.
func defaultTemplates() map[email.Kind]email.Template {
	return map[email.Kind]email.Template{
		email.KindInterviewInvitation: {
			Subject: "Interview Invitation for {job_title} at {company}",
			Body: `Dear {candidate_name},

We're pleased to inform you that your application for the {job_title} position at {company} has been shortlisted.

We'd like to invite you for an interview. Please select one of the following time slots:

{interview_slots}

To confirm your interview, please reply to this email with your preferred slot.

Best regards,
HR Team
{company}
`,
		},
		email.KindRejection: {
			Subject: "Update on your application for {job_title} at {company}",
			Body: `Dear {candidate_name},

Thank you for your interest in the {job_title} position at {company} and for taking the time to apply.

After careful consideration, we've decided to move forward with other candidates whose qualifications better match our current needs.

We appreciate your interest in our company and wish you success in your job search.

Best regards,
HR Team
{company}
`,
		},
	}
}
