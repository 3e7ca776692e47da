package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateBrief(t *testing.T) {
	cases := []struct {
		name     string
		brief    string
		eligible bool
	}{
		{"empty", "", false},
		{"short", "short", false},
		{"19 chars", strings.Repeat("x", 19), false},
		{"exactly min", strings.Repeat("x", MinChars), true},
		{"25 x", strings.Repeat("x", 25), true},
		{"padding does not count", "   " + strings.Repeat("x", 19) + "\n\t ", false},
		{"padding counts toward max", "  " + strings.Repeat("x", MaxChars-2), true},
		{"exactly max", strings.Repeat("x", MaxChars), true},
		{"over max", strings.Repeat("x", MaxChars+1), false},
		{"over max only by whitespace", strings.Repeat("x", 100) + strings.Repeat(" ", MaxChars), false},
		{"multibyte runes", strings.Repeat("é", MinChars), true},
		{"emoji under max in runes", strings.Repeat("🚀", MaxChars), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.eligible, ValidateBrief(tc.brief).Eligible)
		})
	}
}

func TestValidateBriefCounts(t *testing.T) {
	e := ValidateBrief("  hello world  ")
	assert.False(t, e.Eligible)
	assert.Equal(t, 15, e.Length)
	assert.Equal(t, 11, e.TrimmedLength)
	assert.Equal(t, MinChars-11, e.Remaining)
	assert.Equal(t, MinChars, e.Min)
	assert.Equal(t, MaxChars, e.Max)

	e = ValidateBrief(strings.Repeat("x", 30))
	assert.True(t, e.Eligible)
	assert.Zero(t, e.Remaining)
}

func TestEligibilityErr(t *testing.T) {
	assert.Nil(t, ValidateBrief(strings.Repeat("x", 25)).err())

	short := ValidateBrief("short").err()
	if assert.NotNil(t, short) {
		assert.Contains(t, short.Reason, "at least 20")
		assert.Equal(t, 5, short.TrimmedLength)
	}

	long := ValidateBrief(strings.Repeat("x", MaxChars+5)).err()
	if assert.NotNil(t, long) {
		assert.Contains(t, long.Reason, "at most 2000")
		assert.Equal(t, MaxChars+5, long.Length)
	}
}
