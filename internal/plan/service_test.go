package plan

import (
	"context"
	"errors"
	"testing"

	"backend-trailbook/internal/domain"
	"backend-trailbook/internal/hike"
	"backend-trailbook/internal/store"
)

func newTestService() (*Service, *hike.Service) {
	m := store.NewMemory()
	hikes := hike.NewService(m, nil)
	return NewService(m, hikes), hikes
}

func testPlan(createdBy string) Planned {
	return Planned{
		Title:           "Half Dome via Mist Trail",
		Date:            "2026-10-03",
		StartTime:       "06:00",
		Location:        "Yosemite National Park, California",
		Distance:        "14.2 miles",
		Difficulty:      "Extreme",
		CreatedBy:       createdBy,
		MaxParticipants: 3,
	}
}

func TestCreatePlan(t *testing.T) {
	svc, _ := newTestService()
	p, err := svc.Create(context.Background(), testPlan("alice"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" || p.Status != StatusPlanning {
		t.Fatalf("unexpected plan: %+v", p)
	}
	if len(p.Participants) != 1 || p.Participants[0] != "alice" {
		t.Fatalf("creator not a participant: %v", p.Participants)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService()
	input := testPlan("alice")
	input.Title = ""
	if _, err := svc.Create(context.Background(), input); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateDefaultsMaxParticipants(t *testing.T) {
	svc, _ := newTestService()
	input := testPlan("alice")
	input.MaxParticipants = 0
	p, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.MaxParticipants != defaultMaxParticipants {
		t.Fatalf("expected default cap, got %d", p.MaxParticipants)
	}
}

func TestJoinAndCap(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, _ := svc.Create(ctx, testPlan("alice"))

	if _, err := svc.Join(ctx, "alice", p.ID, "bob"); err != nil {
		t.Fatalf("join bob: %v", err)
	}
	if _, err := svc.Join(ctx, "alice", p.ID, "carol"); err != nil {
		t.Fatalf("join carol: %v", err)
	}

	// Cap is 3 and the creator counts.
	if _, err := svc.Join(ctx, "alice", p.ID, "dave"); !errors.Is(err, domain.ErrFull) {
		t.Fatalf("expected full, got %v", err)
	}
}

func TestJoinTwice(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, _ := svc.Create(ctx, testPlan("alice"))
	if _, err := svc.Join(ctx, "alice", p.ID, "bob"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := svc.Join(ctx, "alice", p.ID, "bob"); !errors.Is(err, domain.ErrAlreadyJoined) {
		t.Fatalf("expected already joined, got %v", err)
	}
}

func TestLeave(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, _ := svc.Create(ctx, testPlan("alice"))
	if _, err := svc.Join(ctx, "alice", p.ID, "bob"); err != nil {
		t.Fatalf("join: %v", err)
	}

	left, err := svc.Leave(ctx, "alice", p.ID, "bob")
	if err != nil {
		t.Fatalf("leave: %v", err)
	}
	if len(left.Participants) != 1 {
		t.Fatalf("unexpected participants: %v", left.Participants)
	}

	// Leaving frees a slot under the cap.
	if _, err := svc.Join(ctx, "alice", p.ID, "bob"); err != nil {
		t.Fatalf("rejoin: %v", err)
	}
}

func TestLeaveCreator(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, _ := svc.Create(ctx, testPlan("alice"))
	if _, err := svc.Leave(ctx, "alice", p.ID, "alice"); !errors.Is(err, domain.ErrOwnerCannotLeave) {
		t.Fatalf("expected owner cannot leave, got %v", err)
	}
}

func TestLeaveNonParticipant(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, _ := svc.Create(ctx, testPlan("alice"))
	if _, err := svc.Leave(ctx, "alice", p.ID, "bob"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStartConvertsToActiveHike(t *testing.T) {
	svc, hikes := newTestService()
	ctx := context.Background()

	p, _ := svc.Create(ctx, testPlan("alice"))
	rec, err := svc.Start(ctx, "alice", p.ID, "alice")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if rec.Status != hike.StatusActive || rec.PlannedHikeID != p.ID {
		t.Fatalf("unexpected hike: %+v", rec)
	}
	if rec.Title != p.Title || rec.Location != p.Location {
		t.Fatalf("hike did not carry plan fields: %+v", rec)
	}

	started, _ := svc.Get(ctx, "alice", p.ID)
	if started.Status != StatusStarted {
		t.Fatalf("unexpected plan status: %s", started.Status)
	}

	// One-way: a started plan cannot be started again.
	if _, err := svc.Start(ctx, "alice", p.ID, "alice"); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}

	// Exactly one hike record came out of it.
	list, err := hikes.List(ctx, "alice")
	if err != nil {
		t.Fatalf("list hikes: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one hike, got %d", len(list))
	}
}

func TestStartCreatorOnly(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, _ := svc.Create(ctx, testPlan("alice"))
	if _, err := svc.Join(ctx, "alice", p.ID, "bob"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := svc.Start(ctx, "alice", p.ID, "bob"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestCancel(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, _ := svc.Create(ctx, testPlan("alice"))
	if err := svc.Cancel(ctx, "alice", p.ID, "alice"); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// Soft delete: the record survives with cancelled status.
	got, err := svc.Get(ctx, "alice", p.ID)
	if err != nil {
		t.Fatalf("get after cancel: %v", err)
	}
	if got.Status != StatusCancelled {
		t.Fatalf("unexpected status: %s", got.Status)
	}

	if err := svc.Cancel(ctx, "alice", p.ID, "alice"); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected invalid state on double cancel, got %v", err)
	}
	if _, err := svc.Join(ctx, "alice", p.ID, "bob"); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected invalid state joining cancelled plan, got %v", err)
	}
}

func TestCancelCreatorOnly(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, _ := svc.Create(ctx, testPlan("alice"))
	if err := svc.Cancel(ctx, "alice", p.ID, "bob"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestStartCancelledPlan(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, _ := svc.Create(ctx, testPlan("alice"))
	if err := svc.Cancel(ctx, "alice", p.ID, "alice"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := svc.Start(ctx, "alice", p.ID, "alice"); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
}
