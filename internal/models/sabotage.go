package models

import "time"

// SabotageMeltdown is the only sabotage kind with server-side state. The
// cosmetic abilities (freeze, bug, swap) are broadcast-only.
const SabotageMeltdown = "meltdown"

// SabotageTask tracks one player's mandatory remediation assignment.
type SabotageTask struct {
	TaskID    string `json:"taskId"`
	Completed bool   `json:"completed"`
}

// Sabotage is the active meltdown overlay. It exists only while the
// emergency is running and is destroyed on resolution or timeout.
type Sabotage struct {
	IsActive bool                     `json:"isActive"`
	Kind     string                   `json:"kind"`
	Deadline time.Time                `json:"deadline"`
	Tasks    map[string]*SabotageTask `json:"tasks"` // player id -> assignment
}

// Clone returns a deep copy of the sabotage record.
func (s *Sabotage) Clone() *Sabotage {
	if s == nil {
		return nil
	}
	c := *s
	c.Tasks = make(map[string]*SabotageTask, len(s.Tasks))
	for id, t := range s.Tasks {
		tc := *t
		c.Tasks[id] = &tc
	}
	return &c
}
