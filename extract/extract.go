// Package extract pulls action items out of free-form notes.
//
// Extraction is rule based. Each logical line goes through a fixed chain:
//
//   - segmentation on line breaks and the "|||" / ";;" item separators
//   - bullet stripping and lower-casing for keyword checks
//   - detectors (checkbox, exclamation, priority keywords, imperative verb,
//     decision question) that decide whether the line is actionable and
//     assign its priority and category
//   - assignee and due-date extraction
//   - context capture from the neighbouring lines
//
// The pattern tables are package-level values compiled once, so Extract and
// ExtractDetailed are safe to call from any number of goroutines.
package extract

// Extract returns only the text of each action item, in line order.
func Extract(text string) []string {
	items := ExtractDetailed(text)
	if len(items) == 0 {
		return nil
	}

	texts := make([]string, 0, len(items))
	for _, item := range items {
		texts = append(texts, item.Text)
	}
	return texts
}

// ExtractDetailed returns every action item found in text, in the order of
// the lines they came from.
func ExtractDetailed(text string) []ActionItem {
	lines := segment(text)

	var items []ActionItem
	for i, raw := range lines {
		l, ok := normalizeLine(i, raw)
		if !ok {
			continue
		}

		d := detect(&l)
		if !d.IsAction {
			continue
		}

		item, ok := buildItem(lines, l, d)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items
}

func buildItem(lines []string, l line, d detection) (ActionItem, bool) {
	assignee, text := extractAssignee(l.cleaned)
	dueDate := extractDueDate(text)

	text = finalText(text)
	if text == "" {
		return ActionItem{}, false
	}

	return ActionItem{
		Text:     text,
		Priority: d.Priority,
		Category: d.Category,
		Assignee: assignee,
		DueDate:  dueDate,
		Context:  surroundingContext(lines, l.index),
	}, true
}
