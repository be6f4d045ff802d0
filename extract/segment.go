package extract

import (
	"regexp"
	"strings"
)

// Separators pack several items onto one physical line.
var itemSeparators = []string{"|||", ";;"}

var bulletPattern = regexp.MustCompile(`^\s*[-*•]\s*`)

// lineBreaks folds the ASCII and Unicode line boundaries into "\n".
// "\r\n" comes first so it is replaced as one break.
var lineBreaks = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"\v", "\n",
	"\f", "\n",
	"\x1c", "\n",
	"\x1d", "\n",
	"\x1e", "\n",
	"\u0085", "\n",
	"\u2028", "\n",
	"\u2029", "\n",
)

// segment splits raw text into logical lines. Blank lines are kept so that
// neighbours can be looked up by index.
func segment(text string) []string {
	for _, sep := range itemSeparators {
		text = strings.ReplaceAll(text, sep, "\n")
	}
	text = lineBreaks.Replace(text)

	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// line is one non-blank logical line on its way through the pipeline.
type line struct {
	index      int
	stripped   string // trimmed original
	cleaned    string // bullet removed, original case
	normalized string // lower-cased cleaned text, for keyword checks only
}

func normalizeLine(index int, raw string) (line, bool) {
	stripped := strings.TrimSpace(raw)
	if stripped == "" {
		return line{}, false
	}

	cleaned := bulletPattern.ReplaceAllString(stripped, "")
	return line{
		index:      index,
		stripped:   stripped,
		cleaned:    cleaned,
		normalized: strings.ToLower(cleaned),
	}, true
}

// replaceText swaps the working text and keeps the comparison form in step.
func (l *line) replaceText(text string) {
	l.cleaned = text
	l.normalized = strings.ToLower(text)
}

// finalText cuts off separator residue and trims.
func finalText(text string) string {
	text = strings.TrimSpace(text)
	for _, sep := range itemSeparators {
		if i := strings.Index(text, sep); i >= 0 {
			text = strings.TrimSpace(text[:i])
		}
	}
	return text
}
