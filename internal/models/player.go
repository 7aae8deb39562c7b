package models

// Role is assigned fresh at every round start and cleared on reset.
type Role string

const (
	RoleDeveloper Role = "developer"
	RoleHacker    Role = "hacker"
)

// Player represents a lobby member
type Player struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	IsHost   bool    `json:"isHost"`
	IsReady  bool    `json:"isReady"`
	IsAlive  bool    `json:"isAlive"`
	Color    string  `json:"color"`
	Role     Role    `json:"role,omitempty"`
	Tasks    []*Task `json:"tasks"`
}

// FindTask returns the player's copy of the task, or nil.
func (p *Player) FindTask(taskID string) *Task {
	for _, t := range p.Tasks {
		if t.ID == taskID {
			return t
		}
	}
	return nil
}

// Clone returns a deep copy of the player including their task list.
func (p *Player) Clone() *Player {
	c := *p
	if p.Tasks != nil {
		c.Tasks = make([]*Task, len(p.Tasks))
		for i, t := range p.Tasks {
			c.Tasks[i] = t.Clone()
		}
	}
	return &c
}
