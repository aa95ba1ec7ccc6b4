package matchsrv

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talentsift/screening/screening/candidate"
	"github.com/talentsift/screening/screening/job"
)

type stubAdvisor struct {
	reply string
	err   error
}

func (s *stubAdvisor) Advise(ctx context.Context, prompt string) (string, error) {
	return s.reply, s.err
}

func testDescription() *job.Description {
	return &job.Description{
		Title:   "Backend Engineer",
		Company: "Acme",
		Requirements: job.Requirement{
			RequiredSkills: []string{"Go", "PostgreSQL"},
			Experience:     "3+ years",
			Education:      []string{"Bachelor's degree"},
		},
	}
}

func testProfile() *candidate.Profile {
	return &candidate.Profile{
		Name:   "Jane Roe",
		Skills: []string{"Go", "PostgreSQL", "Redis"},
		Experience: []candidate.ExperienceEntry{
			{Company: "Acme", Title: "Engineer", Duration: "4 years"},
		},
		Education: []candidate.EducationEntry{
			{Institution: "State University", Degree: "Bachelor of Science", FieldOfStudy: "CS"},
		},
	}
}

func TestWeightedAverage(t *testing.T) {
	assert.InDelta(t, 83.333, WeightedAverage(66.666667, 100, 100), 0.01)
	assert.InDelta(t, 100.0, WeightedAverage(100, 100, 100), 0.001)
	assert.InDelta(t, 0.0, WeightedAverage(0, 0, 0), 0.001)
	assert.InDelta(t, 50.0, WeightedAverage(50, 50, 50), 0.001)
}

func TestCombinerNilAdvisor(t *testing.T) {
	c := NewCombiner(nil)
	got := c.Combine(context.Background(), testDescription(), testProfile(), 80, 60, 40)
	assert.InDelta(t, 80*0.5+60*0.3+40*0.2, got, 0.001)
}

func TestCombinerUsesAdvisorScore(t *testing.T) {
	c := NewCombiner(&stubAdvisor{reply: "87.5"})
	got := c.Combine(context.Background(), testDescription(), testProfile(), 50, 50, 50)
	assert.InDelta(t, 87.5, got, 0.001)
}

func TestCombinerExtractsFirstNumber(t *testing.T) {
	c := NewCombiner(&stubAdvisor{reply: "I would rate this candidate 92 out of 100."})
	got := c.Combine(context.Background(), testDescription(), testProfile(), 50, 50, 50)
	assert.InDelta(t, 92.0, got, 0.001)
}

func TestCombinerClampsAdvisorScore(t *testing.T) {
	c := NewCombiner(&stubAdvisor{reply: "150"})
	got := c.Combine(context.Background(), testDescription(), testProfile(), 50, 50, 50)
	assert.InDelta(t, 100.0, got, 0.001)
}

func TestCombinerFallsBackOnAdvisorError(t *testing.T) {
	c := NewCombiner(&stubAdvisor{err: errors.New("upstream unavailable")})
	got := c.Combine(context.Background(), testDescription(), testProfile(), 70, 80, 90)
	assert.InDelta(t, 70*0.5+80*0.3+90*0.2, got, 0.001)
}

func TestCombinerFallsBackOnNonNumericReply(t *testing.T) {
	c := NewCombiner(&stubAdvisor{reply: "unable to evaluate"})
	got := c.Combine(context.Background(), testDescription(), testProfile(), 70, 80, 90)
	assert.InDelta(t, 70*0.5+80*0.3+90*0.2, got, 0.001)
}

func TestBuildAdvisorPrompt(t *testing.T) {
	prompt := buildAdvisorPrompt(testDescription(), testProfile(), 66.7, 100, 100)
	assert.Contains(t, prompt, "Backend Engineer")
	assert.Contains(t, prompt, "Acme")
	assert.Contains(t, prompt, "Jane Roe")
	assert.Contains(t, prompt, "Go, PostgreSQL")
	assert.Contains(t, prompt, "Skill Match: 66.7%")
	assert.Contains(t, prompt, "Just return the number")
}
