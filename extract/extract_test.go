package extract

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_Basic(t *testing.T) {
	text := `This is a note
    - TODO: write tests
    - ACTION: review PR
    - Ship it!
    Just some prose here`

	items := Extract(text)
	assert.Equal(t, []string{"TODO: write tests", "ACTION: review PR", "Ship it!"}, items)
}

func TestExtract_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\n\t\n"} {
		assert.Empty(t, Extract(in))
		assert.Empty(t, ExtractDetailed(in))
	}
}

func TestExtract_SeparatorSplitting(t *testing.T) {
	assert.Equal(t, []string{"TODO: a", "TODO: b"}, Extract("TODO: a|||TODO: b"))
	assert.Equal(t, []string{"TODO: a", "Fix b"}, Extract("TODO: a;;Fix b"))
}

func TestExtractDetailed_Checkbox(t *testing.T) {
	text := `
    - [ ] Implement new feature
    - [x] Write documentation
    * [X] Test deployment
    [ ] Plain box`

	items := ExtractDetailed(text)
	require.Len(t, items, 4)
	assert.Equal(t, "Implement new feature", items[0].Text)
	assert.Equal(t, "Write documentation", items[1].Text)
	assert.Equal(t, "Test deployment", items[2].Text)
	assert.Equal(t, "Plain box", items[3].Text)
	for _, item := range items {
		assert.Equal(t, CategoryTask, item.Category)
		assert.Equal(t, PriorityMedium, item.Priority)
	}
}

func TestExtractDetailed_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want ActionItem
	}{
		{
			name: "urgent exclamation stays a reminder",
			in:   "URGENT: ship now!",
			want: ActionItem{Text: "URGENT: ship now!", Priority: PriorityHigh, Category: CategoryReminder},
		},
		{
			name: "todo keyword makes a task",
			in:   "TODO: Update documentation",
			want: ActionItem{Text: "TODO: Update documentation", Priority: PriorityMedium, Category: CategoryTask},
		},
		{
			name: "action keyword makes a decision",
			in:   "ACTION: review PR",
			want: ActionItem{Text: "ACTION: review PR", Priority: PriorityMedium, Category: CategoryDecision},
		},
		{
			name: "high keyword without category hint",
			in:   "URGENT: Fix production bug",
			want: ActionItem{Text: "URGENT: Fix production bug", Priority: PriorityHigh, Category: CategoryGeneral},
		},
		{
			name: "low keyword",
			in:   "Maybe consider refactoring later",
			want: ActionItem{Text: "Maybe consider refactoring later", Priority: PriorityLow, Category: CategoryGeneral},
		},
		{
			name: "low keyword demotes an exclamation",
			in:   "Maybe ship it!",
			want: ActionItem{Text: "Maybe ship it!", Priority: PriorityLow, Category: CategoryReminder},
		},
		{
			name: "imperative verb",
			in:   "Implement the login feature",
			want: ActionItem{Text: "Implement the login feature", Priority: PriorityMedium, Category: CategoryTask},
		},
		{
			name: "unicode bullet",
			in:   "• Send the invoice",
			want: ActionItem{Text: "Send the invoice", Priority: PriorityMedium, Category: CategoryTask},
		},
		{
			name: "decision question with keyword",
			in:   "Should we migrate to PostgreSQL?",
			want: ActionItem{Text: "Should we migrate to PostgreSQL?", Priority: PriorityMedium, Category: CategoryDecision},
		},
		{
			name: "decision question overrides task",
			in:   "- [ ] Can we deploy this week?",
			want: ActionItem{Text: "Can we deploy this week?", Priority: PriorityMedium, Category: CategoryDecision},
		},
		{
			name: "checkbox keeps task over exclamation",
			in:   "- [ ] Call the bank!",
			want: ActionItem{Text: "Call the bank!", Priority: PriorityHigh, Category: CategoryTask},
		},
		{
			name: "assignee mention is stripped",
			in:   "Fix bug @alice",
			want: ActionItem{Text: "Fix bug", Priority: PriorityMedium, Category: CategoryTask, Assignee: "alice"},
		},
		{
			name: "assigned to phrase",
			in:   "Fix bug assigned to: bob",
			want: ActionItem{Text: "Fix bug", Priority: PriorityMedium, Category: CategoryTask, Assignee: "bob"},
		},
		{
			name: "trailing parenthesized assignee",
			in:   "Update docs (charlie)",
			want: ActionItem{Text: "Update docs", Priority: PriorityMedium, Category: CategoryTask, Assignee: "charlie"},
		},
		{
			name: "numeric due date is kept in text",
			in:   "TODO: Report due: 12/31/2024",
			want: ActionItem{Text: "TODO: Report due: 12/31/2024", Priority: PriorityMedium, Category: CategoryTask, DueDate: "12/31/2024"},
		},
		{
			name: "month name due date",
			in:   "Fix bug due: January 15",
			want: ActionItem{Text: "Fix bug due: January 15", Priority: PriorityMedium, Category: CategoryTask, DueDate: "January 15"},
		},
		{
			name: "deadline with dashes",
			in:   "Update system deadline 01-20-2024",
			want: ActionItem{Text: "Update system deadline 01-20-2024", Priority: PriorityMedium, Category: CategoryTask, DueDate: "01-20-2024"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := ExtractDetailed(tt.in)
			require.Len(t, items, 1)
			assert.Equal(t, tt.want, items[0])
		})
	}
}

func TestExtractDetailed_NoFalsePositives(t *testing.T) {
	text := `This is just a regular note.
It contains some information.
What is the current status?
The weather was lovely`

	assert.Empty(t, ExtractDetailed(text))
}

func TestExtract_VerticalTabSplitsItems(t *testing.T) {
	assert.Equal(t, []string{"TODO x", "TODO y"}, Extract("TODO x\vTODO y"))
}

func TestExtractDetailed_OnlyFirstWordIsImperative(t *testing.T) {
	assert.Empty(t, ExtractDetailed("follow up with Bob on budget"))
	assert.Empty(t, ExtractDetailed("Follow up with the vendor"))
	assert.Len(t, ExtractDetailed("Schedule a follow up with Bob"), 1)
}

func TestExtractDetailed_EmptyAfterAssigneeIsDropped(t *testing.T) {
	assert.Empty(t, ExtractDetailed("- [ ] @alice"))
}

func TestExtractDetailed_Context(t *testing.T) {
	text := `Database Migration
Update schema to version 2.0
This affects user authentication`

	items := ExtractDetailed(text)
	require.Len(t, items, 1)
	assert.Equal(t, "Database Migration | This affects user authentication", items[0].Context)
}

func TestExtractDetailed_ContextBoundaries(t *testing.T) {
	items := ExtractDetailed("Implement A\n\nImplement B\nImplement C")
	require.Len(t, items, 3)

	assert.Empty(t, items[0].Context, "blank following line gives no context")
	assert.Equal(t, "Implement C", items[1].Context)
	assert.Equal(t, "Implement B", items[2].Context, "last line has no following context")
}

func TestExtractDetailed_ComplexNote(t *testing.T) {
	text := `
    Meeting Notes - Sprint Planning

    URGENT: Fix login bug before release @alice due: 02/05/2026

    - [ ] Implement user profile page
    - [ ] Write API documentation
    - [x] Setup CI/CD pipeline

    Review the new design proposal
    Should we add dark mode? @bob

    Deploy to staging environment!
    `

	items := ExtractDetailed(text)
	require.Len(t, items, 7)

	urgent := items[0]
	assert.Equal(t, "URGENT: Fix login bug before release  due: 02/05/2026", urgent.Text)
	assert.Equal(t, PriorityHigh, urgent.Priority)
	assert.Equal(t, "alice", urgent.Assignee)
	assert.Equal(t, "02/05/2026", urgent.DueDate)
	assert.Empty(t, urgent.Context)

	assert.Len(t, HighPriorityOnly(items), 2)

	decision := items[5]
	assert.Equal(t, "Should we add dark mode?", decision.Text)
	assert.Equal(t, CategoryDecision, decision.Category)
	assert.Equal(t, "bob", decision.Assignee)
	assert.Equal(t, "Review the new design proposal", decision.Context)

	last := items[6]
	assert.Equal(t, "Deploy to staging environment!", last.Text)
	assert.Equal(t, CategoryReminder, last.Category)
}

func TestExtractDetailed_ReextractionAddsNoMetadata(t *testing.T) {
	text := `TODO: Review code @alice
Fix bug assigned to: bob by 3/4
Update docs (charlie)
Schedule retro deadline March 3`

	first := ExtractDetailed(text)
	require.Len(t, first, 4)

	texts := make([]string, 0, len(first))
	dueDates := map[string]bool{}
	for _, item := range first {
		texts = append(texts, item.Text)
		if item.DueDate != "" {
			dueDates[item.DueDate] = true
		}
	}

	second := ExtractDetailed(strings.Join(texts, "\n"))
	require.Len(t, second, 4)
	for _, item := range second {
		assert.Empty(t, item.Assignee)
		if item.DueDate != "" {
			assert.True(t, dueDates[item.DueDate], "unexpected due date %q", item.DueDate)
		}
	}
}

func TestExtractDetailed_AdversarialInput(t *testing.T) {
	inputs := []string{
		";;;;||||||;;",
		"|||;;|||",
		"???",
		"-",
		"[x]",
		"\x00\x01\x02",
		strings.Repeat("@", 500),
		strings.Repeat("- [ ] ", 100),
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			for _, item := range ExtractDetailed(in) {
				assert.NotEmpty(t, strings.TrimSpace(item.Text))
			}
		})
	}
}

func TestExtractDetailed_Deterministic(t *testing.T) {
	text := `URGENT: Fix login bug @alice by 02/05/2026
- [ ] Implement user profile page
Should we add dark mode?
Maybe consider performance work`

	want := ExtractDetailed(text)

	var wg sync.WaitGroup
	results := make([][]ActionItem, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = ExtractDetailed(text)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
