package models

// Task is one coding exercise assigned to a player. Completed is monotonic:
// it moves false to true and never reverts.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	Completed   bool   `json:"completed"`
	CodeSnippet string `json:"codeSnippet,omitempty"`
}

// Clone returns an independent copy so player task lists never alias the
// shared catalog templates.
func (t *Task) Clone() *Task {
	c := *t
	return &c
}
