package generator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Eligibility is the result of checking a brief against the length bounds.
type Eligibility struct {
	Eligible      bool `json:"eligible"`
	Length        int  `json:"length"`
	TrimmedLength int  `json:"trimmed_length"`
	// Remaining is how many more characters are needed to reach MinChars.
	Remaining int `json:"remaining"`
	Min       int `json:"min"`
	Max       int `json:"max"`
}

// ValidateBrief reports whether brief may be submitted.
// The trimmed brief must reach MinChars and the raw brief must not exceed MaxChars.
func ValidateBrief(brief string) Eligibility {
	length := utf8.RuneCountInString(brief)
	trimmed := utf8.RuneCountInString(strings.TrimSpace(brief))

	e := Eligibility{
		Eligible:      trimmed >= MinChars && length <= MaxChars,
		Length:        length,
		TrimmedLength: trimmed,
		Min:           MinChars,
		Max:           MaxChars,
	}
	if trimmed < MinChars {
		e.Remaining = MinChars - trimmed
	}
	return e
}

func (e Eligibility) err() *ValidationError {
	if e.Eligible {
		return nil
	}
	reason := fmt.Sprintf("brief must be at most %d characters (got %d)", e.Max, e.Length)
	if e.TrimmedLength < e.Min {
		reason = fmt.Sprintf("brief must be at least %d characters (got %d)", e.Min, e.TrimmedLength)
	}
	return &ValidationError{Reason: reason, Length: e.Length, TrimmedLength: e.TrimmedLength}
}
