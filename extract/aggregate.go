package extract

import (
	"sort"
	"strings"
)

// Categorize buckets items by priority and, independently, by category.
// Items with an unknown priority land in the low bucket and items with an
// unknown category in general.
func Categorize(items []ActionItem) Categorized {
	out := Categorized{
		HighPriority:   []ActionItem{},
		MediumPriority: []ActionItem{},
		LowPriority:    []ActionItem{},
		ByCategory:     make(map[Category][]ActionItem, len(Categories)),
	}
	for _, c := range Categories {
		out.ByCategory[c] = []ActionItem{}
	}

	for _, item := range items {
		switch item.Priority {
		case PriorityHigh:
			out.HighPriority = append(out.HighPriority, item)
		case PriorityMedium:
			out.MediumPriority = append(out.MediumPriority, item)
		default:
			out.LowPriority = append(out.LowPriority, item)
		}

		category := item.Category
		if !category.IsValid() {
			category = CategoryGeneral
		}
		out.ByCategory[category] = append(out.ByCategory[category], item)
	}

	return out
}

// FilterByAssignee keeps items whose assignee equals who, ignoring case.
// Unassigned items never match.
func FilterByAssignee(items []ActionItem, who string) []ActionItem {
	var out []ActionItem
	for _, item := range items {
		if item.Assignee != "" && strings.EqualFold(item.Assignee, who) {
			out = append(out, item)
		}
	}
	return out
}

// HighPriorityOnly keeps the high priority items.
func HighPriorityOnly(items []ActionItem) []ActionItem {
	var out []ActionItem
	for _, item := range items {
		if item.Priority == PriorityHigh {
			out = append(out, item)
		}
	}
	return out
}

// Summarize counts items per priority and category and lists the distinct
// assignees in first-seen order.
func Summarize(items []ActionItem) Summary {
	s := Summary{
		Total: len(items),
		ByPriority: map[Priority]int{
			PriorityHigh:   0,
			PriorityMedium: 0,
			PriorityLow:    0,
		},
		ByCategory: make(map[Category]int, len(Categories)),
	}
	for _, c := range Categories {
		s.ByCategory[c] = 0
	}

	seen := make(map[string]bool)
	for _, item := range items {
		s.ByPriority[item.Priority]++
		s.ByCategory[item.Category]++
		if item.DueDate != "" {
			s.WithDue++
		}
		if item.Assignee == "" {
			continue
		}
		key := strings.ToLower(item.Assignee)
		if !seen[key] {
			seen[key] = true
			s.Assignees = append(s.Assignees, item.Assignee)
		}
	}

	return s
}

// SortByPriority returns a copy of items ordered high to low, keeping line
// order within a priority.
func SortByPriority(items []ActionItem) []ActionItem {
	out := make([]ActionItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.rank() > out[j].Priority.rank()
	})
	return out
}
