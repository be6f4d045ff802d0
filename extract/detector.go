package extract

import (
	"regexp"
	"strings"
)

// detection is the accumulator threaded through the detector chain.
type detection struct {
	IsAction bool
	Priority Priority
	Category Category
}

func newDetection() detection {
	return detection{Priority: PriorityMedium, Category: CategoryGeneral}
}

// raise lifts the priority to p but never lowers it.
func (d detection) raise(p Priority) detection {
	if p.rank() > d.Priority.rank() {
		d.Priority = p
	}
	return d
}

// detector inspects a line and returns the updated accumulator. Detectors
// may rewrite the line's working text.
type detector func(l *line, d detection) detection

// keywordClass maps a set of trigger words to the priority they imply.
type keywordClass struct {
	Priority Priority
	Pattern  *regexp.Regexp
}

var (
	checkboxPattern = regexp.MustCompile(`^\s*[-*]?\s*\[[ xX]\]\s*(.+)$`)

	// Checked in order, first match wins.
	keywordClasses = []keywordClass{
		{PriorityHigh, regexp.MustCompile(`\b(?:urgent|asap|critical|important)`)},
		{PriorityMedium, regexp.MustCompile(`\b(?:todo|action|task|must|should|need to|have to)`)},
		{PriorityLow, regexp.MustCompile(`\b(?:maybe|consider|could|might want to|nice to have)`)},
	}

	// Only the first word is compared, so "follow up" never matches.
	imperativeVerbs = []string{
		"implement", "create", "fix", "update", "add", "remove", "delete",
		"refactor", "test", "deploy", "review", "merge", "document", "write",
		"install", "configure", "setup", "check", "verify", "validate",
		"optimize", "improve", "enhance", "investigate", "research", "analyze",
		"prepare", "schedule", "contact", "send", "respond", "follow up",
		"build", "compile", "run", "execute", "process", "handle", "resolve",
	}

	decisionWords = []string{"should", "need", "must", "can we", "could we", "would we"}

	// Order matters: later detectors see what earlier ones decided.
	detectors = []detector{
		detectCheckbox,
		detectExclamation,
		detectKeywords,
		detectImperative,
		detectDecisionQuestion,
	}
)

// detect runs the full chain over l.
func detect(l *line) detection {
	d := newDetection()
	for _, fn := range detectors {
		d = fn(l, d)
	}
	return d
}

func detectCheckbox(l *line, d detection) detection {
	m := checkboxPattern.FindStringSubmatch(l.stripped)
	if m == nil {
		return d
	}
	l.replaceText(m[1])
	d.IsAction = true
	d.Category = CategoryTask
	return d
}

func detectExclamation(l *line, d detection) detection {
	if !strings.HasSuffix(l.stripped, "!") {
		return d
	}
	d.IsAction = true
	d = d.raise(PriorityHigh)
	if d.Category == CategoryGeneral {
		d.Category = CategoryReminder
	}
	return d
}

// detectKeywords assigns the keyword class priority outright, so a low
// keyword can pull an emphasised line back down.
func detectKeywords(l *line, d detection) detection {
	for _, class := range keywordClasses {
		if !class.Pattern.MatchString(l.normalized) {
			continue
		}
		d.IsAction = true
		d.Priority = class.Priority
		switch {
		case strings.Contains(l.normalized, "todo"), strings.Contains(l.normalized, "task"):
			d.Category = CategoryTask
		case strings.Contains(l.normalized, "action"):
			d.Category = CategoryDecision
		}
		return d
	}
	return d
}

func detectImperative(l *line, d detection) detection {
	if d.IsAction {
		return d
	}
	if startsWithImperative(l.normalized) {
		d.IsAction = true
		d.Category = CategoryTask
	}
	return d
}

func startsWithImperative(normalized string) bool {
	words := strings.Fields(normalized)
	if len(words) == 0 {
		return false
	}
	for _, verb := range imperativeVerbs {
		if words[0] == verb {
			return true
		}
	}
	return false
}

func detectDecisionQuestion(l *line, d detection) detection {
	if !strings.Contains(l.cleaned, "?") {
		return d
	}
	for _, word := range decisionWords {
		if strings.Contains(l.normalized, word) {
			d.IsAction = true
			d.Category = CategoryDecision
			return d
		}
	}
	return d
}
