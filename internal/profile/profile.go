package profile

import (
	"context"
	"errors"
	"time"

	"backend-trailbook/internal/domain"
	"backend-trailbook/internal/stats"
	"backend-trailbook/internal/store"
)

// Profile is the user document. The badge list is append-only and the stats
// block is a derived cache: both are overwritten wholesale, never patched.
type Badge struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	EarnedDate  time.Time `json:"earned_date"`
}

type Profile struct {
	ID           string        `json:"id"`
	Email        string        `json:"email,omitempty"`
	Username     string        `json:"username,omitempty"`
	PasswordHash string        `json:"password_hash,omitempty"`
	Friends      []string      `json:"friends"`
	Badges       []Badge       `json:"badges"`
	Stats        stats.Summary `json:"stats"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (p Profile) HasFriend(userID string) bool {
	for _, id := range p.Friends {
		if id == userID {
			return true
		}
	}
	return false
}

func (p Profile) HasBadge(name string) bool {
	for _, b := range p.Badges {
		if b.Name == name {
			return true
		}
	}
	return false
}

type Service struct {
	store store.RecordStore
}

func NewService(recordStore store.RecordStore) *Service {
	return &Service{store: recordStore}
}

// Get returns the stored profile or domain.ErrNotFound.
func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	doc, err := s.store.Get(ctx, store.Profiles, store.SharedScope, userID)
	if err != nil {
		return Profile{}, err
	}
	var p Profile
	if err := store.Decode(doc, &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Load returns the stored profile, or a zero-valued one carrying only the id
// when none exists. Badge evaluation and friend reads tolerate missing
// profiles this way.
func (s *Service) Load(ctx context.Context, userID string) (Profile, error) {
	p, err := s.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return Profile{ID: userID}, nil
	}
	if err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *Service) Save(ctx context.Context, p Profile) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = time.Now()
	doc, err := store.Encode(p)
	if err != nil {
		return err
	}
	_, err = s.store.Put(ctx, store.Profiles, store.SharedScope, p.ID, doc)
	return err
}

// AddFriend appends friendID to the profile's friends array if absent.
// Missing profiles are provisioned on the spot.
func (s *Service) AddFriend(ctx context.Context, userID, friendID string) error {
	p, err := s.Load(ctx, userID)
	if err != nil {
		return err
	}
	if p.HasFriend(friendID) {
		return nil
	}
	p.Friends = append(p.Friends, friendID)
	return s.Save(ctx, p)
}

// FindByEmail scans the user directory for a profile with the given email.
func (s *Service) FindByEmail(ctx context.Context, email string) (Profile, error) {
	docs, err := s.store.Scan(ctx, store.Profiles, store.SharedScope, store.Filter{Field: "email", Value: email})
	if err != nil {
		return Profile{}, err
	}
	if len(docs) == 0 {
		return Profile{}, domain.ErrNotFound
	}
	var p Profile
	if err := store.Decode(docs[0], &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}
