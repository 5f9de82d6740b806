package heuristic

import "strings"

// Lexicons drive every heuristic in this package. The entries are substring
// stems on purpose ("variab" matches variable/variability). The counts feed
// fixed thresholds, so changing a term changes user-visible labels.

var SkepticalKeywords = []string{
	"however", "limitation", "caveat", "unclear", "unknown", "insufficient",
	"conflict", "contradict", "bias", "confound", "risk", "fail", "challenge",
	"uncertain", "variab", "hetero", "inconsist",
}

var PositiveKeywords = []string{
	"consistent", "robust", "replicated", "significant", "strong", "clear",
	"demonstrated", "established", "confirmed", "validated",
}

// CountKeywords counts how many of the keywords appear in text at least once.
// Case-insensitive substring containment; repetitions of the same keyword
// still contribute 1.
func CountKeywords(text string, keywords []string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			count++
		}
	}
	return count
}

// splitSentences breaks text on sentence terminators and keeps clauses long
// enough to be meaningful (more than 15 characters, pre-trim).
func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(strings.TrimSpace(p)) > 15 {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

func containsAny(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// ExtractBullets returns up to maxBullets trimmed sentences that carry at
// least one skeptical keyword.
func ExtractBullets(text string, maxBullets int) []string {
	bullets := []string{}
	for _, s := range splitSentences(text) {
		if containsAny(s, SkepticalKeywords) {
			bullets = append(bullets, strings.TrimSpace(s))
			if len(bullets) >= maxBullets {
				break
			}
		}
	}
	return bullets
}

// ExtractPositiveClaims returns up to max trimmed sentences that carry a
// positive keyword and no skeptical keyword.
func ExtractPositiveClaims(text string, max int) []string {
	claims := []string{}
	for _, s := range splitSentences(text) {
		if containsAny(s, PositiveKeywords) && !containsAny(s, SkepticalKeywords) {
			claims = append(claims, strings.TrimSpace(s))
			if len(claims) >= max {
				break
			}
		}
	}
	return claims
}

// ExtractNegativeClaims returns up to max trimmed sentences that carry a
// skeptical keyword.
func ExtractNegativeClaims(text string, max int) []string {
	claims := []string{}
	for _, s := range splitSentences(text) {
		if containsAny(s, SkepticalKeywords) {
			claims = append(claims, strings.TrimSpace(s))
			if len(claims) >= max {
				break
			}
		}
	}
	return claims
}
