package candidate

import (
	"time"

	"github.com/talentsift/screening/pkg/kernel"
)

// ExperienceEntry is one work-experience item from a resume.
// Dates are free-form strings as extracted; EndDate may be "Present".
type ExperienceEntry struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// EducationEntry is one education item from a resume
type EducationEntry struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	FieldOfStudy   string `json:"field_of_study"`
	GraduationDate string `json:"graduation_date"`
}

// Profile is a parsed candidate resume. Read-only input to matching.
type Profile struct {
	ID             kernel.CandidateID `db:"id" json:"candidate_id"`
	Name           string             `db:"name" json:"name"`
	Email          kernel.Email       `db:"email" json:"email"`
	Phone          kernel.Phone       `db:"phone" json:"phone"`
	Location       string             `db:"location" json:"location"`
	LinkedIn       string             `db:"linkedin" json:"linkedin"`
	Summary        string             `db:"summary" json:"summary"`
	Skills         []string           `db:"skills" json:"skills"`
	Experience     []ExperienceEntry  `db:"experience" json:"experience"`
	Education      []EducationEntry   `db:"education" json:"education"`
	Certifications []string           `db:"certifications" json:"certifications"`
	Languages      []string           `db:"languages" json:"languages"`
	ResumeURL      kernel.BucketURL   `db:"resume_url" json:"resume_url,omitempty"`
	CreatedAt      time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// HasSkill checks for an exact (case-sensitive) skill entry
func (p *Profile) HasSkill(name string) bool {
	for _, s := range p.Skills {
		if s == name {
			return true
		}
	}
	return false
}

// HasExperience checks if the profile lists any work experience
func (p *Profile) HasExperience() bool {
	return len(p.Experience) > 0
}

// HasEducation checks if the profile lists any education
func (p *Profile) HasEducation() bool {
	return len(p.Education) > 0
}

// IsComplete checks if the profile has the minimum fields for matching
func (p *Profile) IsComplete() bool {
	return !p.ID.IsEmpty() && p.Name != "" && p.Email != ""
}

// ExperienceTitles returns the job titles across all experience entries
func (p *Profile) ExperienceTitles() []string {
	titles := make([]string, 0, len(p.Experience))
	for _, exp := range p.Experience {
		titles = append(titles, exp.Title)
	}
	return titles
}
