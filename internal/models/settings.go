package models

// Settings are host-configurable lobby options. Mutable only while the
// lobby is waiting.
type Settings struct {
	MaxPlayers     int `json:"maxPlayers"`
	HackerCount    int `json:"hackerCount"`
	TaskCount      int `json:"taskCount"`
	DiscussionTime int `json:"discussionTime"` // seconds, display only
	TimeLimit      int `json:"timeLimit"`      // round countdown, seconds
}

// DefaultSettings returns the settings a fresh lobby starts with.
func DefaultSettings() Settings {
	return Settings{
		MaxPlayers:     10,
		HackerCount:    1,
		TaskCount:      5,
		DiscussionTime: 60,
		TimeLimit:      60,
	}
}

// SettingsPatch carries a partial settings update; nil fields are left
// unchanged.
type SettingsPatch struct {
	MaxPlayers     *int `json:"maxPlayers,omitempty"`
	HackerCount    *int `json:"hackerCount,omitempty"`
	TaskCount      *int `json:"taskCount,omitempty"`
	DiscussionTime *int `json:"discussionTime,omitempty"`
	TimeLimit      *int `json:"timeLimit,omitempty"`
}

// Apply merges the patch into s.
func (p SettingsPatch) Apply(s *Settings) {
	if p.MaxPlayers != nil {
		s.MaxPlayers = *p.MaxPlayers
	}
	if p.HackerCount != nil {
		s.HackerCount = *p.HackerCount
	}
	if p.TaskCount != nil {
		s.TaskCount = *p.TaskCount
	}
	if p.DiscussionTime != nil {
		s.DiscussionTime = *p.DiscussionTime
	}
	if p.TimeLimit != nil {
		s.TimeLimit = *p.TimeLimit
	}
}
