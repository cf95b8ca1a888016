package history_test

import (
	"context"
	"testing"

	"ytbridge/internal/history"
	"ytbridge/internal/testsupport"
)

func TestAddAndRecent(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	first, err := store.Add(ctx, history.Record{
		Kind:        history.KindVideo,
		URL:         "https://www.youtube.com/watch?v=abc",
		Destination: "/downloads",
		Outcome:     history.OutcomeSuccess,
		Message:     "Download complete: 1 file(s)",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if first.ID == 0 || first.CreatedAt.IsZero() {
		t.Fatalf("record not fully populated: %+v", first)
	}

	if _, err := store.Add(ctx, history.Record{
		Kind:    history.KindAudio,
		URL:     "https://www.youtube.com/watch?v=def",
		Outcome: history.OutcomeFailure,
		Message: "download failed",
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	records, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Kind != history.KindAudio {
		t.Fatalf("expected newest record first, got %+v", records[0])
	}
	if records[1].ID != first.ID {
		t.Fatalf("expected the first insert last, got %+v", records[1])
	}
}

func TestRecentHonorsLimit(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := store.Add(ctx, history.Record{
			Kind:    history.KindSubtitles,
			URL:     "https://example.com/v",
			Outcome: history.OutcomeSuccess,
		}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	records, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
}

func TestStatsAndClear(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	outcomes := []history.Outcome{
		history.OutcomeSuccess, history.OutcomeSuccess, history.OutcomeFailure,
	}
	for _, outcome := range outcomes {
		if _, err := store.Add(ctx, history.Record{
			Kind:    history.KindVideo,
			URL:     "https://example.com/v",
			Outcome: outcome,
		}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats[history.OutcomeSuccess] != 2 || stats[history.OutcomeFailure] != 1 {
		t.Fatalf("unexpected stats: %v", stats)
	}

	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if removed != 3 {
		t.Fatalf("expected 3 removed, got %d", removed)
	}
	records, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty history, got %d records", len(records))
	}
}

func TestGetByIDMissing(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	record, err := store.GetByID(context.Background(), 9999)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil for missing id, got %+v", record)
	}
}
