package job

import (
	"time"

	"github.com/talentsift/screening/pkg/kernel"
)

// Requirement holds the requirement set of a job posting.
// Immutable once parsed; owned by the description it belongs to.
type Requirement struct {
	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
	Experience      string   `json:"experience"` // free text, e.g. "5+ years"
	Education       []string `json:"education"`  // free-text degree descriptions
}

// AllSkills returns required and preferred skills as one list,
// required first, in their original order.
func (r Requirement) AllSkills() []string {
	skills := make([]string, 0, len(r.RequiredSkills)+len(r.PreferredSkills))
	skills = append(skills, r.RequiredSkills...)
	skills = append(skills, r.PreferredSkills...)
	return skills
}

// IsEmpty reports whether the requirement set carries no constraints
func (r Requirement) IsEmpty() bool {
	return len(r.RequiredSkills) == 0 &&
		len(r.PreferredSkills) == 0 &&
		r.Experience == "" &&
		len(r.Education) == 0
}

type Description struct {
	ID               kernel.JobID    `db:"id" json:"job_id"`
	Title            kernel.JobTitle `db:"title" json:"title"`
	Company          kernel.Company  `db:"company" json:"company"`
	Location         string          `db:"location" json:"location"`
	JobType          string          `db:"job_type" json:"job_type"` // Full-time, Part-time, Contract, ...
	Summary          string          `db:"description" json:"description"`
	Responsibilities []string        `db:"responsibilities" json:"responsibilities"`
	Requirements     Requirement     `db:"requirements" json:"requirements"`
	SalaryRange      string          `db:"salary_range" json:"salary_range"`
	PostingDate      string          `db:"posting_date" json:"posting_date"`
	Department       string          `db:"department" json:"department"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// HasRequirements checks if the job carries any requirement at all
func (d *Description) HasRequirements() bool {
	return !d.Requirements.IsEmpty()
}

// SkillCount returns the number of required plus preferred skills
func (d *Description) SkillCount() int {
	return len(d.Requirements.RequiredSkills) + len(d.Requirements.PreferredSkills)
}

// IsComplete checks if the description has the minimum fields for matching
func (d *Description) IsComplete() bool {
	return !d.ID.IsEmpty() && d.Title != ""
}
