package friends

import (
	"context"
	"fmt"
	"time"

	"backend-trailbook/internal/domain"
	"backend-trailbook/internal/events"
	"backend-trailbook/internal/profile"
	"backend-trailbook/internal/store"

	"github.com/google/uuid"
)

// Service drives the friend-request state machine. A request lives in the
// shared scope and is referenced by both users; the friends arrays on the two
// profiles are independent writes with no atomicity between them, so reads
// reconcile against the request record instead of trusting the arrays.
type Service struct {
	store    store.RecordStore
	profiles *profile.Service
	hub      *events.Hub
}

func NewService(recordStore store.RecordStore, profiles *profile.Service, hub *events.Hub) *Service {
	return &Service{store: recordStore, profiles: profiles, hub: hub}
}

// Status reports the relationship from the viewer's perspective. A stale
// friends array is repaired here: an accepted request wins over missing array
// entries (self-healing read).
func (s *Service) Status(ctx context.Context, viewerID, targetID string) (string, error) {
	if viewerID == targetID {
		return RelSelf, nil
	}

	viewer, err := s.profiles.Load(ctx, viewerID)
	if err != nil {
		return "", err
	}
	if viewer.HasFriend(targetID) {
		// Repair the other side if its array write was lost.
		if err := s.profiles.AddFriend(ctx, targetID, viewerID); err != nil {
			return "", err
		}
		return RelFriends, nil
	}

	if pending, err := s.requestBetween(ctx, viewerID, targetID, StatusPending); err != nil {
		return "", err
	} else if pending != nil {
		if pending.From == viewerID {
			return RelRequestSent, nil
		}
		return RelRequestReceived, nil
	}

	accepted, err := s.requestBetween(ctx, viewerID, targetID, StatusAccepted)
	if err != nil {
		return "", err
	}
	if accepted != nil {
		if err := s.repairFriendship(ctx, accepted.From, accepted.To); err != nil {
			return "", err
		}
		return RelFriends, nil
	}
	return RelNone, nil
}

// SendRequest creates a pending request from fromID to toID. One pending
// request per unordered pair, in either direction.
func (s *Service) SendRequest(ctx context.Context, fromID, toID string) (Request, error) {
	if fromID == "" || toID == "" {
		return Request{}, fmt.Errorf("%w: from and to required", domain.ErrValidation)
	}
	if fromID == toID {
		return Request{}, domain.ErrSelfRequest
	}

	from, err := s.profiles.Load(ctx, fromID)
	if err != nil {
		return Request{}, err
	}
	to, err := s.profiles.Load(ctx, toID)
	if err != nil {
		return Request{}, err
	}
	if from.HasFriend(toID) || to.HasFriend(fromID) {
		return Request{}, domain.ErrAlreadyFriends
	}

	pending, err := s.requestBetween(ctx, fromID, toID, StatusPending)
	if err != nil {
		return Request{}, err
	}
	if pending != nil {
		return Request{}, domain.ErrDuplicateRequest
	}

	req := Request{
		ID:        uuid.NewString(),
		From:      fromID,
		To:        toID,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}
	doc, err := store.Encode(req)
	if err != nil {
		return Request{}, err
	}
	if _, err := s.store.Put(ctx, store.FriendRequests, store.SharedScope, req.ID, doc); err != nil {
		return Request{}, err
	}

	if s.hub != nil {
		s.hub.Publish(toID, events.Event{Type: events.TypeFriendRequested, Payload: req})
	}
	return req, nil
}

// Respond accepts or declines a pending request. Only the recipient may
// respond. Accepting writes both friends arrays first and flips the request
// last, so a crash in between leaves state that Status can repair.
func (s *Service) Respond(ctx context.Context, requestID, responderID, action string) (Request, error) {
	if action != "accept" && action != "decline" {
		return Request{}, fmt.Errorf("%w: action must be accept or decline", domain.ErrValidation)
	}

	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return Request{}, err
	}
	if req.Status != StatusPending {
		return Request{}, fmt.Errorf("%w: request already %s", domain.ErrInvalidState, req.Status)
	}
	if req.To != responderID {
		return Request{}, fmt.Errorf("%w: only the recipient may respond", domain.ErrUnauthorized)
	}

	if action == "accept" {
		if err := s.repairFriendship(ctx, req.From, req.To); err != nil {
			return Request{}, err
		}
		req.Status = StatusAccepted
	} else {
		req.Status = StatusDeclined
	}

	now := time.Now()
	req.RespondedAt = &now
	err = s.store.Update(ctx, store.FriendRequests, store.SharedScope, req.ID, store.Document{
		"status":       req.Status,
		"responded_at": now,
	})
	if err != nil {
		return Request{}, err
	}

	if s.hub != nil && req.Status == StatusAccepted {
		s.hub.Publish(req.From, events.Event{Type: events.TypeFriendAccepted, Payload: req})
	}
	return req, nil
}

// Overview lists current friends and the user's pending requests.
func (s *Service) Overview(ctx context.Context, userID string) (Overview, error) {
	p, err := s.profiles.Load(ctx, userID)
	if err != nil {
		return Overview{}, err
	}
	incoming, err := s.scanRequests(ctx, store.Filter{Field: "to", Value: userID}, store.Filter{Field: "status", Value: StatusPending})
	if err != nil {
		return Overview{}, err
	}
	outgoing, err := s.scanRequests(ctx, store.Filter{Field: "from", Value: userID}, store.Filter{Field: "status", Value: StatusPending})
	if err != nil {
		return Overview{}, err
	}
	return Overview{Friends: p.Friends, Incoming: incoming, Outgoing: outgoing}, nil
}

func (s *Service) getRequest(ctx context.Context, requestID string) (Request, error) {
	doc, err := s.store.Get(ctx, store.FriendRequests, store.SharedScope, requestID)
	if err != nil {
		return Request{}, err
	}
	var req Request
	if err := store.Decode(doc, &req); err != nil {
		return Request{}, err
	}
	return req, nil
}

// requestBetween finds a request with the given status between the unordered
// pair, checking both directions.
func (s *Service) requestBetween(ctx context.Context, a, b, status string) (*Request, error) {
	for _, pair := range [][2]string{{a, b}, {b, a}} {
		reqs, err := s.scanRequests(ctx,
			store.Filter{Field: "from", Value: pair[0]},
			store.Filter{Field: "to", Value: pair[1]},
			store.Filter{Field: "status", Value: status},
		)
		if err != nil {
			return nil, err
		}
		if len(reqs) > 0 {
			return &reqs[0], nil
		}
	}
	return nil, nil
}

func (s *Service) scanRequests(ctx context.Context, filters ...store.Filter) ([]Request, error) {
	docs, err := s.store.Scan(ctx, store.FriendRequests, store.SharedScope, filters...)
	if err != nil {
		return nil, err
	}
	reqs := make([]Request, 0, len(docs))
	for _, doc := range docs {
		var req Request
		if err := store.Decode(doc, &req); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// repairFriendship makes both friends arrays contain each other. Two
// independent writes; each is idempotent so retries and interleavings are safe.
func (s *Service) repairFriendship(ctx context.Context, a, b string) error {
	if err := s.profiles.AddFriend(ctx, a, b); err != nil {
		return err
	}
	return s.profiles.AddFriend(ctx, b, a)
}
