package main

import "strings"

const maxTags = 4

// tagRule maps one topical tag to its trigger substrings. Keywords cover
// English plus Russian stems, matched case-insensitively.
type tagRule struct {
	Tag      string
	Keywords []string
}

// tagRules is scanned in declaration order and the result is capped at
// maxTags, so the ordering here is part of the output contract.
var tagRules = []tagRule{
	{"politics", []string{"election", "president", "government", "парламент", "выбор", "президент", "правительство"}},
	{"economy", []string{"economy", "inflation", "market", "bank", "эконом", "инфля", "рынок", "банк"}},
	{"conflict", []string{"war", "strike", "attack", "conflict", "войн", "удар", "атак", "конфликт"}},
	{"tech", []string{"tech", "ai", "software", "кибер", "техн", "ии"}},
	{"climate", []string{"climate", "weather", "storm", "климат", "погод", "шторм"}},
	{"health", []string{"health", "hospital", "disease", "здоров", "болезн"}},
}

// extractTags returns up to maxTags topical tags for the given text.
func extractTags(text string) []string {
	lower := strings.ToLower(text)
	tags := make([]string, 0, maxTags)
	for _, rule := range tagRules {
		if containsAny(lower, rule.Keywords) {
			tags = append(tags, rule.Tag)
			if len(tags) == maxTags {
				break
			}
		}
	}
	return tags
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
