package achievements

import (
	"testing"
	"time"

	"backend-trailbook/internal/profile"
	"backend-trailbook/internal/stats"
)

func TestEvaluateAwardsInRuleOrder(t *testing.T) {
	eval := NewEvaluator(DefaultRules())
	summary := stats.Summary{TotalHikes: 5, TotalDistance: 150}

	earned := eval.Evaluate(nil, summary, time.Now())
	if len(earned) != 2 {
		t.Fatalf("expected 2 badges, got %d", len(earned))
	}
	if earned[0].Name != "First Steps" || earned[1].Name != "Distance Walker" {
		t.Fatalf("unexpected order: %v, %v", earned[0].Name, earned[1].Name)
	}
	if earned[0].EarnedDate.IsZero() {
		t.Fatalf("expected earned date")
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	eval := NewEvaluator(DefaultRules())
	summary := stats.Summary{TotalHikes: 1}

	first := eval.Evaluate(nil, summary, time.Now())
	if len(first) != 1 {
		t.Fatalf("expected 1 badge, got %d", len(first))
	}

	second := eval.Evaluate(first, summary, time.Now())
	if len(second) != 0 {
		t.Fatalf("expected no new badges on rerun, got %d", len(second))
	}
}

func TestEvaluateNeverRemoves(t *testing.T) {
	eval := NewEvaluator(DefaultRules())

	kept := []profile.Badge{{Name: "Distance Walker"}}
	earned := eval.Evaluate(kept, stats.Summary{}, time.Now())
	if len(earned) != 0 {
		t.Fatalf("zero aggregate must not earn badges, got %d", len(earned))
	}
}

func TestPlaceholderRulesStayFalse(t *testing.T) {
	eval := NewEvaluator(DefaultRules())
	summary := stats.Summary{TotalHikes: 1000, TotalDistance: 10000, UniqueTrails: 1000, StatesExplored: 50}

	earned := eval.Evaluate(nil, summary, time.Now())
	for _, b := range earned {
		switch b.Name {
		case "Peak Collector", "Early Bird", "Endurance Master":
			t.Fatalf("placeholder rule %q should never fire", b.Name)
		}
	}
}

func TestTrailExplorerThreshold(t *testing.T) {
	eval := NewEvaluator(DefaultRules())

	earned := eval.Evaluate(nil, stats.Summary{UniqueTrails: 25}, time.Now())
	found := false
	for _, b := range earned {
		if b.Name == "Trail Explorer" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Trail Explorer at 25 unique trails")
	}
}

func TestInjectedRules(t *testing.T) {
	called := false
	eval := NewEvaluator([]Rule{{
		Name:        "Custom",
		Description: "test rule",
		Earned: func(s stats.Summary) bool {
			called = true
			return s.TotalHikes > 0
		},
	}})

	earned := eval.Evaluate(nil, stats.Summary{TotalHikes: 1}, time.Now())
	if !called || len(earned) != 1 || earned[0].Name != "Custom" {
		t.Fatalf("injected rule not evaluated: %+v", earned)
	}
}
