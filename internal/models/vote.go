package models

// VoteSkip is the sentinel target for abstaining. A skip plurality ejects
// no one.
const VoteSkip = "skip"

// Vote is one meeting ballot. At most one per voter per meeting.
type Vote struct {
	VoterID  string `json:"voterId"`
	TargetID string `json:"targetId"`
}
