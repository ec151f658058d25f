package achievements

import "backend-trailbook/internal/stats"

// Rule awards a named badge once its predicate holds over the aggregate.
// The rule set is injected into the evaluator so it is testable in isolation.
type Rule struct {
	Name        string
	Description string
	Earned      func(stats.Summary) bool
}

// DefaultRules is the fixed ordered badge table. Peak Collector, Early Bird
// and Endurance Master reference signals no aggregator computes yet; they
// stay permanently false until those signals exist.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:        "First Steps",
			Description: "Complete your first hike",
			Earned:      func(s stats.Summary) bool { return s.TotalHikes >= 1 },
		},
		{
			Name:        "Distance Walker",
			Description: "Cover 100 total distance",
			Earned:      func(s stats.Summary) bool { return s.TotalDistance >= 100 },
		},
		{
			Name:        "Peak Collector",
			Description: "Summit 10 peaks",
			Earned:      func(stats.Summary) bool { return false },
		},
		{
			Name:        "Early Bird",
			Description: "Start a hike before sunrise",
			Earned:      func(stats.Summary) bool { return false },
		},
		{
			Name:        "Endurance Master",
			Description: "Finish a hike longer than 8 hours",
			Earned:      func(stats.Summary) bool { return false },
		},
		{
			Name:        "Trail Explorer",
			Description: "Hike 25 different trails",
			Earned:      func(s stats.Summary) bool { return s.UniqueTrails >= 25 },
		},
	}
}
