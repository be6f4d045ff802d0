package extract

import "strings"

const contextSeparator = " | "

// surroundingContext joins the non-blank neighbours of lines[i].
func surroundingContext(lines []string, i int) string {
	var parts []string
	if i > 0 {
		if prev := strings.TrimSpace(lines[i-1]); prev != "" {
			parts = append(parts, prev)
		}
	}
	if i < len(lines)-1 {
		if next := strings.TrimSpace(lines[i+1]); next != "" {
			parts = append(parts, next)
		}
	}
	return strings.Join(parts, contextSeparator)
}
