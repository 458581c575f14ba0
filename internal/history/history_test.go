package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/yildizm/ReviewRadar/internal/review"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewEntry(t *testing.T) {
	reviews := []review.Review{
		{Label: true, Rating: "5/5"},
		{Label: false, Rating: "2/5"},
		{Label: false, Rating: "4/5"},
	}

	e := NewEntry("automatic", "https://shop.example.com/p/1", review.ThresholdLenient, reviews)

	if e.Site != "example.com" || e.Threshold != "lenient" {
		t.Errorf("Unexpected entry %+v", e)
	}
	if e.Reviews != 3 || e.Fake != 2 {
		t.Errorf("Unexpected counts %d/%d", e.Reviews, e.Fake)
	}
	if e.MeanRating == nil || *e.MeanRating != 3.7 {
		t.Errorf("Unexpected mean %v", e.MeanRating)
	}

	empty := NewEntry("automatic", "https://shop.example.com", review.ThresholdStrict, nil)
	if empty.MeanRating != nil {
		t.Errorf("Expected no mean for empty result, got %v", *empty.MeanRating)
	}
}

func TestStore_RecordAndList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mean := 4.5
	entries := []Entry{
		{At: base, Mode: "automatic", Source: "https://a.test", Site: "a.test", Threshold: "strict", Reviews: 10, Fake: 3, MeanRating: &mean},
		{At: base.Add(time.Minute), Mode: "manual", Source: "Great!", Threshold: "average", Reviews: 1, Fake: 0},
		{At: base.Add(2 * time.Minute), Mode: "manual", Source: "Meh", Threshold: "average", Reviews: 1, Fake: 1},
	}
	for _, e := range entries {
		if _, err := store.Record(ctx, e); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	got, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(got))
	}
	if got[0].Source != "Meh" || got[1].Source != "Great!" {
		t.Errorf("Expected newest first, got %q, %q", got[0].Source, got[1].Source)
	}
	if got[1].MeanRating != nil {
		t.Errorf("Expected NULL mean preserved")
	}

	all, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	oldest := all[len(all)-1]
	if !oldest.At.Equal(base) || oldest.MeanRating == nil || *oldest.MeanRating != 4.5 || oldest.Site != "a.test" {
		t.Errorf("Round trip lost data: %+v", oldest)
	}
}

func TestStore_Clear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := store.Record(ctx, Entry{Mode: "manual", Source: "x", Threshold: "average"}); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	n, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Expected 3 removed, got %d", n)
	}

	got, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected empty history, got %d", len(got))
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := first.Record(context.Background(), Entry{Mode: "manual", Source: "kept", Threshold: "average"}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer func() { _ = second.Close() }()

	got, err := second.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].Source != "kept" {
		t.Errorf("Entries lost across reopen: %+v", got)
	}
}
