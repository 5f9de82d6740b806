package heuristic

import (
	"testing"
)

func TestCountKeywords(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		keywords []string
		want     int
	}{
		{
			name:     "empty text",
			text:     "",
			keywords: SkepticalKeywords,
			want:     0,
		},
		{
			name:     "repeated keyword counts once",
			text:     "confound confound confounding",
			keywords: SkepticalKeywords,
			want:     1,
		},
		{
			name:     "case insensitive",
			text:     "HOWEVER the Bias was UNCLEAR",
			keywords: SkepticalKeywords,
			want:     3,
		},
		{
			name:     "stem matches inflections",
			text:     "high variability and heterogeneous cohorts",
			keywords: SkepticalKeywords,
			want:     2,
		},
		{
			name:     "positive keywords",
			text:     "robust and replicated results, statistically significant",
			keywords: PositiveKeywords,
			want:     3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CountKeywords(tt.text, tt.keywords)
			if got != tt.want {
				t.Errorf("CountKeywords() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExtractPositiveClaims(t *testing.T) {
	text := "The effect was robust across cohorts. However the sample was small. " +
		"Replication was demonstrated in two labs. Short."

	claims := ExtractPositiveClaims(text, 3)
	if len(claims) != 2 {
		t.Fatalf("expected 2 claims, got %d: %v", len(claims), claims)
	}
	if claims[0] != "The effect was robust across cohorts" {
		t.Errorf("unexpected first claim: %q", claims[0])
	}
}

func TestExtractPositiveClaimsSkipsMixedSentences(t *testing.T) {
	// A sentence with both a positive and a skeptical keyword is not a claim.
	text := "The result was significant however confounded badly."

	claims := ExtractPositiveClaims(text, 3)
	if len(claims) != 0 {
		t.Errorf("expected no claims, got %v", claims)
	}
}

func TestExtractNegativeClaimsCap(t *testing.T) {
	text := "However the first issue appeared. However the second issue appeared. " +
		"However the third issue appeared. However the fourth issue appeared."

	claims := ExtractNegativeClaims(text, 3)
	if len(claims) != 3 {
		t.Errorf("expected the cap of 3, got %d", len(claims))
	}
}

func TestExtractBulletsShortSentencesDropped(t *testing.T) {
	// Sentences of 15 characters or fewer never become bullets.
	text := "Bias here. The confounding variables were not controlled at all."

	bullets := ExtractBullets(text, 5)
	if len(bullets) != 1 {
		t.Fatalf("expected 1 bullet, got %d: %v", len(bullets), bullets)
	}
}
