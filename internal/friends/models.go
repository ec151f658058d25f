package friends

import "time"

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

// Relationship is the viewer's side of a friend connection.
const (
	RelSelf            = "self"
	RelNone            = "none"
	RelRequestSent     = "request_sent"
	RelRequestReceived = "request_received"
	RelFriends         = "friends"
)

// Request is the single source of truth for a friendship. The two friends
// arrays on the profiles are a derived cache repaired on reads.
type Request struct {
	ID          string     `json:"id"`
	From        string     `json:"from"`
	To          string     `json:"to"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

// Overview groups what a user sees on their friends page.
type Overview struct {
	Friends  []string  `json:"friends"`
	Incoming []Request `json:"incoming_requests"`
	Outgoing []Request `json:"outgoing_requests"`
}
