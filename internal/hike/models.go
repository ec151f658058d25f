package hike

import "time"

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

const (
	DifficultyEasy     = "Easy"
	DifficultyModerate = "Moderate"
	DifficultyHard     = "Hard"
	DifficultyExtreme  = "Extreme"
)

// Record is a logged hike. Distance, elevation and duration are free text
// from legacy clients and are parsed defensively by the stats aggregator.
type Record struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"owner_id"`
	Title         string    `json:"title"`
	Location      string    `json:"location"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time,omitempty"`
	EndTime       string    `json:"end_time,omitempty"`
	Duration      string    `json:"duration,omitempty"`
	Distance      string    `json:"distance,omitempty"`
	Elevation     string    `json:"elevation,omitempty"`
	Difficulty    string    `json:"difficulty,omitempty"`
	Status        string    `json:"status"`
	Pinned        bool      `json:"pinned"`
	Shared        bool      `json:"shared"`
	PlannedHikeID string    `json:"planned_hike_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func validDifficulty(d string) bool {
	switch d {
	case "", DifficultyEasy, DifficultyModerate, DifficultyHard, DifficultyExtreme:
		return true
	}
	return false
}
