package kernel

import (
	"regexp"
	"strings"
)

type JobTitle string

type Company string

type BucketURL string

// Email is a candidate or contact email address
type Email string

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// IsValid reports whether the address has a plausible mailbox format
func (e Email) IsValid() bool {
	return emailPattern.MatchString(string(e))
}

func (e Email) String() string { return string(e) }

type Phone string

func (p Phone) String() string { return string(p) }

// Score is a percentage score in [0, 100]
type Score float64

// Clamp bounds the score to [0, 100]
func (s Score) Clamp() Score {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// IsValid reports whether the score already lies in [0, 100]
func (s Score) IsValid() bool {
	return s >= 0 && s <= 100
}

func (s Score) Float() float64 { return float64(s) }

// ProfileEmbedding is an embedding vector over a candidate profile
type ProfileEmbedding []float32

// NormalizeWhitespace collapses runs of whitespace to single spaces
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
