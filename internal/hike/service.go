package hike

import (
	"context"
	"fmt"
	"time"

	"backend-trailbook/internal/achievements"
	"backend-trailbook/internal/domain"
	"backend-trailbook/internal/store"

	"github.com/google/uuid"
)

type Service struct {
	store  store.RecordStore
	badges *achievements.Worker
}

func NewService(recordStore store.RecordStore, badges *achievements.Worker) *Service {
	return &Service{store: recordStore, badges: badges}
}

func (s *Service) Create(ctx context.Context, ownerID string, input Record) (Record, error) {
	if ownerID == "" || input.Title == "" || input.Location == "" || input.Date == "" {
		return Record{}, fmt.Errorf("%w: title, location and date required", domain.ErrValidation)
	}
	if !validDifficulty(input.Difficulty) {
		return Record{}, fmt.Errorf("%w: unknown difficulty %q", domain.ErrValidation, input.Difficulty)
	}

	input.ID = uuid.NewString()
	input.OwnerID = ownerID
	if input.Status == "" {
		input.Status = StatusActive
	}
	if input.Status != StatusActive && input.Status != StatusCompleted {
		return Record{}, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, input.Status)
	}
	input.CreatedAt = time.Now()
	input.UpdatedAt = input.CreatedAt

	doc, err := store.Encode(input)
	if err != nil {
		return Record{}, err
	}
	if _, err := s.store.Put(ctx, store.Hikes, ownerID, input.ID, doc); err != nil {
		return Record{}, err
	}
	s.recompute(ownerID)
	return input, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id string) (Record, error) {
	doc, err := s.store.Get(ctx, store.Hikes, ownerID, id)
	if err != nil {
		return Record{}, err
	}
	var rec Record
	if err := store.Decode(doc, &rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *Service) List(ctx context.Context, ownerID string, filters ...store.Filter) ([]Record, error) {
	docs, err := s.store.Scan(ctx, store.Hikes, ownerID, filters...)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(docs))
	for _, doc := range docs {
		var rec Record
		if err := store.Decode(doc, &rec); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Update patches mutable fields. Status only ever moves active -> completed;
// any attempt to move it backward is a conflict.
func (s *Service) Update(ctx context.Context, ownerID, id string, patch Record) (Record, error) {
	rec, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return Record{}, err
	}

	if patch.Status != "" && patch.Status != rec.Status {
		if rec.Status == StatusCompleted {
			return Record{}, fmt.Errorf("%w: completed hike cannot go back to active", domain.ErrInvalidState)
		}
		if patch.Status != StatusCompleted {
			return Record{}, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, patch.Status)
		}
		rec.Status = StatusCompleted
	}
	if patch.Title != "" {
		rec.Title = patch.Title
	}
	if patch.Location != "" {
		rec.Location = patch.Location
	}
	if patch.Date != "" {
		rec.Date = patch.Date
	}
	if patch.StartTime != "" {
		rec.StartTime = patch.StartTime
	}
	if patch.EndTime != "" {
		rec.EndTime = patch.EndTime
	}
	if patch.Duration != "" {
		rec.Duration = patch.Duration
	}
	if patch.Distance != "" {
		rec.Distance = patch.Distance
	}
	if patch.Elevation != "" {
		rec.Elevation = patch.Elevation
	}
	if patch.Difficulty != "" {
		if !validDifficulty(patch.Difficulty) {
			return Record{}, fmt.Errorf("%w: unknown difficulty %q", domain.ErrValidation, patch.Difficulty)
		}
		rec.Difficulty = patch.Difficulty
	}
	rec.Pinned = rec.Pinned || patch.Pinned
	rec.Shared = rec.Shared || patch.Shared
	rec.UpdatedAt = time.Now()

	doc, err := store.Encode(rec)
	if err != nil {
		return Record{}, err
	}
	if _, err := s.store.Put(ctx, store.Hikes, ownerID, rec.ID, doc); err != nil {
		return Record{}, err
	}
	s.recompute(ownerID)
	return rec, nil
}

// Complete marks an active hike completed.
func (s *Service) Complete(ctx context.Context, ownerID, id string) (Record, error) {
	rec, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return Record{}, err
	}
	if rec.Status == StatusCompleted {
		return Record{}, fmt.Errorf("%w: hike already completed", domain.ErrInvalidState)
	}

	now := time.Now()
	err = s.store.Update(ctx, store.Hikes, ownerID, id, store.Document{
		"status":     StatusCompleted,
		"updated_at": now,
	})
	if err != nil {
		return Record{}, err
	}
	rec.Status = StatusCompleted
	rec.UpdatedAt = now
	s.recompute(ownerID)
	return rec, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.store.Delete(ctx, store.Hikes, ownerID, id); err != nil {
		return err
	}
	s.recompute(ownerID)
	return nil
}

func (s *Service) recompute(ownerID string) {
	if s.badges != nil {
		s.badges.Enqueue(ownerID)
	}
}
