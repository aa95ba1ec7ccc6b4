package matchsrv

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talentsift/screening/screening/candidate"
)

func degree(d string) candidate.EducationEntry {
	return candidate.EducationEntry{Degree: d}
}

func TestMatchEducation(t *testing.T) {
	tests := []struct {
		name     string
		required []string
		entries  []candidate.EducationEntry
		want     float64
	}{
		{
			name:     "no requirement is full match",
			required: nil,
			entries:  nil,
			want:     100.0,
		},
		{
			name:     "meets requirement",
			required: []string{"Bachelor's degree in Computer Science"},
			entries:  []candidate.EducationEntry{degree("Bachelor of Science")},
			want:     100.0,
		},
		{
			name:     "exceeds requirement",
			required: []string{"Bachelor's degree"},
			entries:  []candidate.EducationEntry{degree("Master of Engineering")},
			want:     100.0,
		},
		{
			name:     "one level below",
			required: []string{"Master's degree"},
			entries:  []candidate.EducationEntry{degree("Bachelor of Arts")},
			want:     80.0,
		},
		{
			name:     "two levels below",
			required: []string{"Master's degree"},
			entries:  []candidate.EducationEntry{degree("Associate degree")},
			want:     60.0,
		},
		{
			name:     "far below",
			required: []string{"PhD in Physics"},
			entries:  []candidate.EducationEntry{degree("Associate degree")},
			want:     40.0,
		},
		{
			name:     "doctorate and phd are equivalent",
			required: []string{"Doctorate required"},
			entries:  []candidate.EducationEntry{degree("PhD in Mathematics")},
			want:     100.0,
		},
		{
			name:     "unrecognized requirement defaults to bachelor",
			required: []string{"Relevant degree"},
			entries:  []candidate.EducationEntry{degree("Bachelor of Science")},
			want:     100.0,
		},
		{
			name:     "highest required level wins",
			required: []string{"Bachelor's degree", "Master's preferred"},
			entries:  []candidate.EducationEntry{degree("Bachelor of Science")},
			want:     80.0,
		},
		{
			name:     "best candidate degree wins",
			required: []string{"Master's degree"},
			entries: []candidate.EducationEntry{
				degree("High School Diploma"),
				degree("Master of Science"),
			},
			want: 100.0,
		},
		{
			name:     "no education listed",
			required: []string{"Bachelor's degree"},
			entries:  nil,
			want:     40.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEducation(tt.required, tt.entries)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}
