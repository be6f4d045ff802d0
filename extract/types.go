package extract

// Priority ranks how soon an action item needs attention.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// rank orders priorities so detectors can raise without lowering.
func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// IsValid reports whether p is one of the known priorities.
func (p Priority) IsValid() bool {
	return p.rank() > 0
}

// Category describes what kind of action a line asks for.
type Category string

const (
	CategoryTask     Category = "task"
	CategoryReminder Category = "reminder"
	CategoryDecision Category = "decision"
	CategoryGeneral  Category = "general"
)

// Categories lists every category in a stable order.
var Categories = []Category{CategoryTask, CategoryReminder, CategoryDecision, CategoryGeneral}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ActionItem is a single actionable statement pulled out of a note.
// Assignee, DueDate and Context are empty when nothing was found.
type ActionItem struct {
	Text     string   `json:"text"`
	Priority Priority `json:"priority"`
	Category Category `json:"category"`
	Assignee string   `json:"assignee,omitempty"`
	DueDate  string   `json:"due_date,omitempty"`
	Context  string   `json:"context,omitempty"`
}

// Categorized partitions items twice: once by priority, once by category.
type Categorized struct {
	HighPriority   []ActionItem              `json:"high_priority"`
	MediumPriority []ActionItem              `json:"medium_priority"`
	LowPriority    []ActionItem              `json:"low_priority"`
	ByCategory     map[Category][]ActionItem `json:"by_category"`
}

// Summary counts items per priority and per category.
type Summary struct {
	Total      int              `json:"total"`
	ByPriority map[Priority]int `json:"by_priority"`
	ByCategory map[Category]int `json:"by_category"`
	Assignees  []string         `json:"assignees,omitempty"`
	WithDue    int              `json:"with_due_date"`
}
