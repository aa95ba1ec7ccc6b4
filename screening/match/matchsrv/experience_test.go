package matchsrv

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talentsift/screening/screening/candidate"
)

func durationEntry(d string) candidate.ExperienceEntry {
	return candidate.ExperienceEntry{Duration: d}
}

func TestMatchExperience(t *testing.T) {
	const year = 2026

	tests := []struct {
		name     string
		required string
		entries  []candidate.ExperienceEntry
		want     float64
	}{
		{
			name:     "no requirement is full match",
			required: "",
			entries:  nil,
			want:     100.0,
		},
		{
			name:     "unparseable requirement scores leniently",
			required: "extensive background preferred",
			entries:  []candidate.ExperienceEntry{durationEntry("2 years")},
			want:     80.0,
		},
		{
			name:     "meets requirement exactly",
			required: "5+ years",
			entries:  []candidate.ExperienceEntry{durationEntry("5 years")},
			want:     100.0,
		},
		{
			name:     "exceeds requirement",
			required: "3 years",
			entries:  []candidate.ExperienceEntry{durationEntry("2 years"), durationEntry("4 years")},
			want:     100.0,
		},
		{
			name:     "exactly eighty percent of requirement",
			required: "5 years",
			entries:  []candidate.ExperienceEntry{durationEntry("4 years")},
			want:     90.0,
		},
		{
			name:     "sixty percent band",
			required: "5 years",
			entries:  []candidate.ExperienceEntry{durationEntry("3 years")},
			want:     70.0,
		},
		{
			name:     "forty percent band",
			required: "5 years",
			entries:  []candidate.ExperienceEntry{durationEntry("2 years")},
			want:     50.0,
		},
		{
			name:     "below forty percent",
			required: "10 yrs",
			entries:  []candidate.ExperienceEntry{durationEntry("1 year")},
			want:     30.0,
		},
		{
			name:     "no experience at all",
			required: "5 years",
			entries:  nil,
			want:     30.0,
		},
		{
			name:     "years from start and end dates",
			required: "4 years",
			entries: []candidate.ExperienceEntry{
				{StartDate: "June 2018", EndDate: "March 2022"},
			},
			want: 100.0,
		},
		{
			name:     "present end date uses current year",
			required: "6 years",
			entries: []candidate.ExperienceEntry{
				{StartDate: "2020", EndDate: "Present"},
			},
			want: 100.0,
		},
		{
			name:     "missing end date uses current year",
			required: "6 years",
			entries: []candidate.ExperienceEntry{
				{StartDate: "2020"},
			},
			want: 100.0,
		},
		{
			name:     "entry without parseable start contributes nothing",
			required: "5 years",
			entries: []candidate.ExperienceEntry{
				{StartDate: "a while ago", EndDate: "recently"},
			},
			want: 30.0,
		},
		{
			name:     "duration takes precedence over dates",
			required: "3 years",
			entries: []candidate.ExperienceEntry{
				{Duration: "3 years", StartDate: "2025", EndDate: "2026"},
			},
			want: 100.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchExperience(tt.required, tt.entries, year)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}
