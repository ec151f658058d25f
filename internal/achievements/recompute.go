package achievements

import (
	"context"
	"time"

	"backend-trailbook/internal/events"
	"backend-trailbook/internal/profile"
	"backend-trailbook/internal/stats"
	"backend-trailbook/internal/store"
)

// Recomputer rebuilds a user's aggregate from the full hike set and merges
// newly earned badges onto the profile. It is invoked after every hike
// mutation, always wholesale: free-text parsing is not stable under partial
// updates, so the aggregate is never patched in place.
type Recomputer struct {
	store    store.RecordStore
	profiles *profile.Service
	eval     *Evaluator
	hub      *events.Hub
}

func NewRecomputer(recordStore store.RecordStore, profiles *profile.Service, eval *Evaluator, hub *events.Hub) *Recomputer {
	return &Recomputer{store: recordStore, profiles: profiles, eval: eval, hub: hub}
}

func (r *Recomputer) Recompute(ctx context.Context, userID string) error {
	docs, err := r.store.Scan(ctx, store.Hikes, userID)
	if err != nil {
		return err
	}

	hikes := make([]stats.Hike, 0, len(docs))
	for _, doc := range docs {
		var h stats.Hike
		if err := store.Decode(doc, &h); err != nil {
			continue
		}
		hikes = append(hikes, h)
	}

	summary := stats.Aggregate(hikes, time.Now())

	p, err := r.profiles.Load(ctx, userID)
	if err != nil {
		return err
	}
	earned := r.eval.Evaluate(p.Badges, summary, time.Now())

	p.Stats = summary
	p.Badges = append(p.Badges, earned...)
	if err := r.profiles.Save(ctx, p); err != nil {
		return err
	}

	if r.hub != nil {
		for _, badge := range earned {
			r.hub.Publish(userID, events.Event{Type: events.TypeBadgeEarned, Payload: badge})
		}
	}
	return nil
}
