package invite

import (
	"context"
	"fmt"
	"time"

	"backend-trailbook/internal/domain"
	"backend-trailbook/internal/events"
	"backend-trailbook/internal/plan"
	"backend-trailbook/internal/store"

	"github.com/google/uuid"
)

// Service drives hike invitations. Accepting one materializes a planned hike
// owned by the recipient before the invitation flips to accepted: if the
// second write is lost the invitation stays pending and re-accepting just
// creates a duplicate plan, which beats losing the invitation with no plan.
type Service struct {
	store store.RecordStore
	plans *plan.Service
	hub   *events.Hub
}

func NewService(recordStore store.RecordStore, plans *plan.Service, hub *events.Hub) *Service {
	return &Service{store: recordStore, plans: plans, hub: hub}
}

func (s *Service) Send(ctx context.Context, fromID, toID, hikeID string, details Details) (Invitation, error) {
	if fromID == "" || toID == "" || hikeID == "" || details.Title == "" {
		return Invitation{}, fmt.Errorf("%w: from, to, hike id and hike details required", domain.ErrValidation)
	}
	if fromID == toID {
		return Invitation{}, domain.ErrSelfRequest
	}

	inv := Invitation{
		ID:          uuid.NewString(),
		FromUserID:  fromID,
		ToUserID:    toID,
		HikeID:      hikeID,
		HikeDetails: details,
		Status:      StatusPending,
		CreatedAt:   time.Now(),
	}
	doc, err := store.Encode(inv)
	if err != nil {
		return Invitation{}, err
	}
	if _, err := s.store.Put(ctx, store.Invitations, store.SharedScope, inv.ID, doc); err != nil {
		return Invitation{}, err
	}

	if s.hub != nil {
		s.hub.Publish(toID, events.Event{Type: events.TypeInviteReceived, Payload: inv})
	}
	return inv, nil
}

// Accept creates the recipient's planned hike and then marks the invitation
// accepted.
func (s *Service) Accept(ctx context.Context, invitationID, responderID string) (Invitation, plan.Planned, error) {
	inv, err := s.pendingFor(ctx, invitationID, responderID, roleRecipient)
	if err != nil {
		return Invitation{}, plan.Planned{}, err
	}

	created, err := s.plans.Create(ctx, plan.Planned{
		Title:       inv.HikeDetails.Title,
		Date:        inv.HikeDetails.Date,
		StartTime:   inv.HikeDetails.StartTime,
		Location:    inv.HikeDetails.Location,
		Distance:    inv.HikeDetails.Distance,
		Difficulty:  inv.HikeDetails.Difficulty,
		Description: inv.HikeDetails.Description,
		CreatedBy:   responderID,
	})
	if err != nil {
		return Invitation{}, plan.Planned{}, err
	}

	inv, err = s.finalize(ctx, inv, StatusAccepted)
	if err != nil {
		return Invitation{}, plan.Planned{}, err
	}

	if s.hub != nil {
		s.hub.Publish(inv.FromUserID, events.Event{Type: events.TypeInviteDecided, Payload: inv})
	}
	return inv, created, nil
}

func (s *Service) Reject(ctx context.Context, invitationID, responderID string) (Invitation, error) {
	inv, err := s.pendingFor(ctx, invitationID, responderID, roleRecipient)
	if err != nil {
		return Invitation{}, err
	}
	inv, err = s.finalize(ctx, inv, StatusRejected)
	if err != nil {
		return Invitation{}, err
	}
	if s.hub != nil {
		s.hub.Publish(inv.FromUserID, events.Event{Type: events.TypeInviteDecided, Payload: inv})
	}
	return inv, nil
}

// Cancel withdraws a pending invitation; only the sender may do it.
func (s *Service) Cancel(ctx context.Context, invitationID, requesterID string) (Invitation, error) {
	inv, err := s.pendingFor(ctx, invitationID, requesterID, roleSender)
	if err != nil {
		return Invitation{}, err
	}
	return s.finalize(ctx, inv, StatusCancelled)
}

// ListForUser returns invitations the user sent or received.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]Invitation, error) {
	received, err := s.scan(ctx, store.Filter{Field: "to_user_id", Value: userID})
	if err != nil {
		return nil, err
	}
	sent, err := s.scan(ctx, store.Filter{Field: "from_user_id", Value: userID})
	if err != nil {
		return nil, err
	}
	return append(received, sent...), nil
}

type role int

const (
	roleRecipient role = iota
	roleSender
)

func (s *Service) pendingFor(ctx context.Context, invitationID, actorID string, expected role) (Invitation, error) {
	doc, err := s.store.Get(ctx, store.Invitations, store.SharedScope, invitationID)
	if err != nil {
		return Invitation{}, err
	}
	var inv Invitation
	if err := store.Decode(doc, &inv); err != nil {
		return Invitation{}, err
	}

	if inv.Status != StatusPending {
		return Invitation{}, fmt.Errorf("%w: invitation already %s", domain.ErrInvalidState, inv.Status)
	}
	switch expected {
	case roleRecipient:
		if actorID != inv.ToUserID {
			return Invitation{}, fmt.Errorf("%w: only the recipient may respond", domain.ErrUnauthorized)
		}
	case roleSender:
		if actorID != inv.FromUserID {
			return Invitation{}, fmt.Errorf("%w: only the sender may cancel", domain.ErrUnauthorized)
		}
	}
	return inv, nil
}

func (s *Service) finalize(ctx context.Context, inv Invitation, status string) (Invitation, error) {
	now := time.Now()
	err := s.store.Update(ctx, store.Invitations, store.SharedScope, inv.ID, store.Document{
		"status":       status,
		"responded_at": now,
	})
	if err != nil {
		return Invitation{}, err
	}
	inv.Status = status
	inv.RespondedAt = &now
	return inv, nil
}

func (s *Service) scan(ctx context.Context, filters ...store.Filter) ([]Invitation, error) {
	docs, err := s.store.Scan(ctx, store.Invitations, store.SharedScope, filters...)
	if err != nil {
		return nil, err
	}
	invs := make([]Invitation, 0, len(docs))
	for _, doc := range docs {
		var inv Invitation
		if err := store.Decode(doc, &inv); err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	return invs, nil
}
