package achievements

import (
	"time"

	"backend-trailbook/internal/profile"
	"backend-trailbook/internal/stats"
)

// Evaluator compares an aggregate against its rule table and returns the
// badges not yet on the profile. Evaluation order is rule-table order and a
// badge name is awarded at most once, so re-running it is harmless.
type Evaluator struct {
	rules []Rule
}

func NewEvaluator(rules []Rule) *Evaluator {
	return &Evaluator{rules: rules}
}

func (e *Evaluator) Evaluate(existing []profile.Badge, summary stats.Summary, now time.Time) []profile.Badge {
	owned := map[string]struct{}{}
	for _, b := range existing {
		owned[b.Name] = struct{}{}
	}

	var earned []profile.Badge
	for _, rule := range e.rules {
		if _, ok := owned[rule.Name]; ok {
			continue
		}
		if rule.Earned(summary) {
			earned = append(earned, profile.Badge{
				Name:        rule.Name,
				Description: rule.Description,
				EarnedDate:  now,
			})
		}
	}
	return earned
}
