package main

import "strings"

// Keyword signals nudging the per-source base bias. Both adjustments can
// apply to the same text; the net effect is their sum.
const (
	sensationalBump = 10
	neutralBump     = -6
)

var (
	sensationalKeywords = []string{"outrage", "shocking", "controvers", "скандал", "шок", "крах"}
	neutralKeywords     = []string{"analysis", "report", "официаль", "доклад", "statement", "заявлен"}
)

// scoreBias adjusts a source's base bias by keyword signals found in
// text and clamps the result to [0, 100].
func scoreBias(text string, baseBias int) int {
	lower := strings.ToLower(text)
	score := baseBias
	if containsAny(lower, sensationalKeywords) {
		score += sensationalBump
	}
	if containsAny(lower, neutralKeywords) {
		score += neutralBump
	}
	return clamp(score, 0, 100)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
