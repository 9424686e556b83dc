package classifier

import (
	"strings"
	"unicode"

	"github.com/pbaille/timebox/internal/domain"
)

// Checked in order; the first category with a matching word wins.
var keywordRules = []struct {
	category domain.Category
	words    []string
}{
	{domain.CategorySleep, []string{"sleep", "nap", "bed", "bedtime", "rest"}},
	{domain.CategoryHealth, []string{"gym", "run", "running", "exercise", "workout", "yoga", "doctor", "dentist", "swim", "walk", "physio"}},
	{domain.CategoryWork, []string{"work", "meeting", "standup", "call", "email", "study", "review", "deploy", "report", "interview", "sync"}},
}

// ByKeywords classifies title by whole-word matches, defaulting to personal
func ByKeywords(title string) domain.Category {
	words := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		seen[w] = true
	}
	for _, rule := range keywordRules {
		for _, w := range rule.words {
			if seen[w] {
				return rule.category
			}
		}
	}
	return domain.CategoryPersonal
}
