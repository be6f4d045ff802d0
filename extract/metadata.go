package extract

import (
	"regexp"
	"strings"
)

var (
	// Tried in order; the first pattern that matches is removed from the text.
	assigneePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)@(\w+)`),
		regexp.MustCompile(`(?i)assigned to:?\s*(\w+)`),
		regexp.MustCompile(`(?i)\((\w+)\)$`),
	}

	// Tried in order; due dates stay in the text.
	dueDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:by|due|deadline)[\s:]+(\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?)`),
		regexp.MustCompile(`(?i)(?:by|due|deadline)[\s:]+(\w+\s+\d{1,2}(?:,?\s+\d{4})?)`),
	}
)

// extractAssignee returns the first assignee found and the text with that
// one mention cut out.
func extractAssignee(text string) (assignee, rest string) {
	for _, re := range assigneePatterns {
		loc := re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		assignee = text[loc[2]:loc[3]]
		rest = strings.TrimSpace(text[:loc[0]] + text[loc[1]:])
		return assignee, rest
	}
	return "", text
}

func extractDueDate(text string) string {
	for _, re := range dueDatePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}
