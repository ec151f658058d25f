package plan

import "time"

const (
	StatusPlanning  = "planning"
	StatusStarted   = "started"
	StatusCancelled = "cancelled"
)

// Planned is a hike being organized. Participants is a set that always
// contains the creator; started and cancelled are both terminal.
type Planned struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Date            string    `json:"date"`
	StartTime       string    `json:"start_time,omitempty"`
	Location        string    `json:"location"`
	Distance        string    `json:"distance,omitempty"`
	Difficulty      string    `json:"difficulty,omitempty"`
	Description     string    `json:"description,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	Status          string    `json:"status"`
	Participants    []string  `json:"participants"`
	CreatedBy       string    `json:"created_by"`
	MaxParticipants int       `json:"max_participants"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (p Planned) hasParticipant(userID string) bool {
	for _, id := range p.Participants {
		if id == userID {
			return true
		}
	}
	return false
}
