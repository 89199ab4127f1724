package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/aus-site/aus-server/internal/model"
)

func testFounder() *model.Founder {
	return &model.Founder{
		Name:   "Ada Lovelace",
		Title:  "Founder & CEO",
		Bio:    "Pioneer of computing.",
		Image:  "https://example.com/ada.jpg",
		Badges: []string{"visionary", "engineer"},
	}
}

func TestUpsertAndGetFounder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	f := testFounder()
	if err := s.UpsertFounder(ctx, f); err != nil {
		t.Fatalf("upsert founder: %v", err)
	}
	if f.ID == 0 {
		t.Fatal("expected founder ID to be set")
	}
	if f.CreatedAt.IsZero() || f.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}

	got, err := s.GetFounder(ctx)
	if err != nil {
		t.Fatalf("get founder: %v", err)
	}
	if got.Name != "Ada Lovelace" || got.Title != "Founder & CEO" {
		t.Errorf("unexpected founder: %+v", got)
	}
	if !reflect.DeepEqual(got.Badges, []string{"visionary", "engineer"}) {
		t.Errorf("unexpected badges: %v", got.Badges)
	}

	byID, err := s.GetFounderByID(ctx, f.ID)
	if err != nil {
		t.Fatalf("get founder by id: %v", err)
	}
	if byID.Name != got.Name {
		t.Errorf("expected same record by id, got %+v", byID)
	}
}

func TestUpsertFounderReplacesSingleRow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := testFounder()
	if err := s.UpsertFounder(ctx, first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second := &model.Founder{
		Name:   "Grace Hopper",
		Title:  "Founder",
		Bio:    "Invented the compiler.",
		Image:  "https://example.com/grace.jpg",
		Badges: []string{"admiral"},
	}
	if err := s.UpsertFounder(ctx, second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("expected the same row to be replaced, got ids %d and %d", first.ID, second.ID)
	}
	if second.CreatedAt.Unix() != first.CreatedAt.Unix() {
		t.Errorf("expected created_at to survive the replace, got %v and %v",
			first.CreatedAt, second.CreatedAt)
	}

	got, err := s.GetFounder(ctx)
	if err != nil {
		t.Fatalf("get founder: %v", err)
	}
	if got.Name != "Grace Hopper" {
		t.Errorf("expected replaced content, got %+v", got)
	}

	// Deleting the one row must leave the table empty, proving the second
	// upsert did not accumulate another record.
	if err := s.DeleteFounder(ctx, got.ID); err != nil {
		t.Fatalf("delete founder: %v", err)
	}
	if _, err := s.GetFounder(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestGetFounderEmpty(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.GetFounder(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetFounderByID(context.Background(), 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateFounder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	f := testFounder()
	if err := s.UpsertFounder(ctx, f); err != nil {
		t.Fatalf("upsert founder: %v", err)
	}

	f.Title = "Founder & CTO"
	f.Badges = []string{"rewired"}
	if err := s.UpdateFounder(ctx, f); err != nil {
		t.Fatalf("update founder: %v", err)
	}

	got, err := s.GetFounder(ctx)
	if err != nil {
		t.Fatalf("get founder: %v", err)
	}
	if got.Title != "Founder & CTO" {
		t.Errorf("expected updated title, got %q", got.Title)
	}
	if !reflect.DeepEqual(got.Badges, []string{"rewired"}) {
		t.Errorf("expected updated badges, got %v", got.Badges)
	}
	if got.UpdatedAt.Before(got.CreatedAt) {
		t.Error("expected updated_at to be at or after created_at")
	}
}

func TestUpdateFounderNotFound(t *testing.T) {
	s := newTestStore(t)

	ghost := testFounder()
	ghost.ID = 999
	if err := s.UpdateFounder(context.Background(), ghost); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteFounder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	f := testFounder()
	if err := s.UpsertFounder(ctx, f); err != nil {
		t.Fatalf("upsert founder: %v", err)
	}

	if err := s.DeleteFounder(ctx, f.ID); err != nil {
		t.Fatalf("delete founder: %v", err)
	}
	if err := s.DeleteFounder(ctx, f.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on repeated delete, got %v", err)
	}
}

func TestFounderNilBadgesStoredAsEmptyList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	f := testFounder()
	f.Badges = nil
	if err := s.UpsertFounder(ctx, f); err != nil {
		t.Fatalf("upsert founder: %v", err)
	}

	got, err := s.GetFounder(ctx)
	if err != nil {
		t.Fatalf("get founder: %v", err)
	}
	if got.Badges == nil || len(got.Badges) != 0 {
		t.Errorf("expected empty badge list, got %v", got.Badges)
	}
}
