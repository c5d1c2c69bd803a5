package focus

import "time"

// Task is the single task a user is focused on.
type Task struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	SetAt       time.Time `json:"set_at"`
}

// Same reports whether t and other denote the same task. Ids are compared
// when both sides carry one; otherwise the descriptions must be equal.
func (t Task) Same(other Task) bool {
	if t.ID != "" && other.ID != "" {
		return t.ID == other.ID
	}
	return t.Description == other.Description
}

// Suggestion is a validated first step for ForTask.
type Suggestion struct {
	ForTask   Task      `json:"for_task"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
