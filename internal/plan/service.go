package plan

import (
	"context"
	"fmt"
	"time"

	"backend-trailbook/internal/domain"
	"backend-trailbook/internal/hike"
	"backend-trailbook/internal/store"

	"github.com/google/uuid"
)

const defaultMaxParticipants = 10

// Service drives a planned hike from organization through join/leave to its
// one-way conversion into an active hike record, or to cancellation. Plans
// live in their creator's scope; lifecycle calls carry the owner id.
type Service struct {
	store store.RecordStore
	hikes *hike.Service
}

func NewService(recordStore store.RecordStore, hikes *hike.Service) *Service {
	return &Service{store: recordStore, hikes: hikes}
}

func (s *Service) Create(ctx context.Context, input Planned) (Planned, error) {
	if input.CreatedBy == "" || input.Title == "" || input.Date == "" || input.Location == "" {
		return Planned{}, fmt.Errorf("%w: title, date, location and created_by required", domain.ErrValidation)
	}

	input.ID = uuid.NewString()
	input.Status = StatusPlanning
	if input.MaxParticipants <= 0 {
		input.MaxParticipants = defaultMaxParticipants
	}
	if !input.hasParticipant(input.CreatedBy) {
		input.Participants = append([]string{input.CreatedBy}, input.Participants...)
	}
	input.CreatedAt = time.Now()
	input.UpdatedAt = input.CreatedAt

	doc, err := store.Encode(input)
	if err != nil {
		return Planned{}, err
	}
	if _, err := s.store.Put(ctx, store.PlannedHikes, input.CreatedBy, input.ID, doc); err != nil {
		return Planned{}, err
	}
	return input, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id string) (Planned, error) {
	doc, err := s.store.Get(ctx, store.PlannedHikes, ownerID, id)
	if err != nil {
		return Planned{}, err
	}
	var p Planned
	if err := store.Decode(doc, &p); err != nil {
		return Planned{}, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, ownerID string) ([]Planned, error) {
	docs, err := s.store.Scan(ctx, store.PlannedHikes, ownerID)
	if err != nil {
		return nil, err
	}
	plans := make([]Planned, 0, len(docs))
	for _, doc := range docs {
		var p Planned
		if err := store.Decode(doc, &p); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, nil
}

// Join adds a participant while the plan is still open and under its cap.
func (s *Service) Join(ctx context.Context, ownerID, id, participantID string) (Planned, error) {
	p, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return Planned{}, err
	}
	if p.Status != StatusPlanning && p.Status != StatusStarted {
		return Planned{}, fmt.Errorf("%w: plan is %s", domain.ErrInvalidState, p.Status)
	}
	if p.hasParticipant(participantID) {
		return Planned{}, domain.ErrAlreadyJoined
	}
	if len(p.Participants) >= p.MaxParticipants {
		return Planned{}, fmt.Errorf("%w: participant limit %d reached", domain.ErrFull, p.MaxParticipants)
	}

	p.Participants = append(p.Participants, participantID)
	if err := s.saveParticipants(ctx, ownerID, p); err != nil {
		return Planned{}, err
	}
	return p, nil
}

// Leave removes a participant. The creator cannot leave their own plan.
func (s *Service) Leave(ctx context.Context, ownerID, id, participantID string) (Planned, error) {
	p, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return Planned{}, err
	}
	if participantID == p.CreatedBy {
		return Planned{}, domain.ErrOwnerCannotLeave
	}
	if p.Status != StatusPlanning && p.Status != StatusStarted {
		return Planned{}, fmt.Errorf("%w: plan is %s", domain.ErrInvalidState, p.Status)
	}
	if !p.hasParticipant(participantID) {
		return Planned{}, fmt.Errorf("%w: not a participant", domain.ErrNotFound)
	}

	kept := p.Participants[:0]
	for _, pid := range p.Participants {
		if pid != participantID {
			kept = append(kept, pid)
		}
	}
	p.Participants = kept
	if err := s.saveParticipants(ctx, ownerID, p); err != nil {
		return Planned{}, err
	}
	return p, nil
}

// Start converts a planning-status plan into a new active hike record owned
// by the creator. One-way: a started plan never goes back.
func (s *Service) Start(ctx context.Context, ownerID, id, requesterID string) (hike.Record, error) {
	p, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return hike.Record{}, err
	}
	if requesterID != p.CreatedBy {
		return hike.Record{}, fmt.Errorf("%w: only the creator may start the hike", domain.ErrUnauthorized)
	}
	if p.Status != StatusPlanning {
		return hike.Record{}, fmt.Errorf("%w: plan is %s", domain.ErrInvalidState, p.Status)
	}

	rec, err := s.hikes.Create(ctx, p.CreatedBy, hike.Record{
		Title:         p.Title,
		Location:      p.Location,
		Date:          p.Date,
		StartTime:     p.StartTime,
		Distance:      p.Distance,
		Difficulty:    p.Difficulty,
		Status:        hike.StatusActive,
		PlannedHikeID: p.ID,
	})
	if err != nil {
		return hike.Record{}, err
	}

	err = s.store.Update(ctx, store.PlannedHikes, ownerID, id, store.Document{
		"status":     StatusStarted,
		"updated_at": time.Now(),
	})
	if err != nil {
		return hike.Record{}, err
	}
	return rec, nil
}

// Cancel is a terminal soft delete; the record stays for history.
func (s *Service) Cancel(ctx context.Context, ownerID, id, requesterID string) error {
	p, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if requesterID != p.CreatedBy {
		return fmt.Errorf("%w: only the creator may cancel", domain.ErrUnauthorized)
	}
	if p.Status == StatusCancelled {
		return fmt.Errorf("%w: plan already cancelled", domain.ErrInvalidState)
	}

	return s.store.Update(ctx, store.PlannedHikes, ownerID, id, store.Document{
		"status":     StatusCancelled,
		"updated_at": time.Now(),
	})
}

func (s *Service) saveParticipants(ctx context.Context, ownerID string, p Planned) error {
	return s.store.Update(ctx, store.PlannedHikes, ownerID, p.ID, store.Document{
		"participants": p.Participants,
		"updated_at":   time.Now(),
	})
}
