package repository

import (
	"context"
	"reflect"
	"testing"

	"PrivateCheck/storage/settings"
)

func TestDefaultsOnEmptyStore(t *testing.T) {
	r := NewSettingsRepository(settings.NewMemoryStore())
	ctx := context.Background()

	streak, err := r.StreakDays(ctx)
	if err != nil || streak != 0 {
		t.Errorf("StreakDays = %d (%v), want 0", streak, err)
	}

	lastDate, err := r.LastCheckInDate(ctx)
	if err != nil || lastDate != "" {
		t.Errorf("LastCheckInDate = %q (%v), want empty", lastDate, err)
	}

	history, err := r.History(ctx)
	if err != nil || len(history) != 0 {
		t.Errorf("History = %v (%v), want empty", history, err)
	}
}

func TestApplyCheckInWritesEverything(t *testing.T) {
	r := NewSettingsRepository(settings.NewMemoryStore())
	ctx := context.Background()

	if err := r.ApplyCheckIn(ctx, 3, "2026-03-10", "2026-03-10|09:30"); err != nil {
		t.Fatalf("ApplyCheckIn: %v", err)
	}

	state, err := r.State(ctx)
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if state.StreakDays != 3 || state.LastCheckInDate != "2026-03-10" {
		t.Errorf("state = %+v", state)
	}
	if !reflect.DeepEqual(state.History, []string{"2026-03-10|09:30"}) {
		t.Errorf("history = %v", state.History)
	}
}

func TestHistorySorted(t *testing.T) {
	r := NewSettingsRepository(settings.NewMemoryStore())
	ctx := context.Background()

	for _, e := range []string{"2026-03-12|08:00", "2026-03-10|09:30", "2026-03-11|22:15"} {
		if err := r.AppendHistory(ctx, e); err != nil {
			t.Fatalf("AppendHistory: %v", err)
		}
	}

	history, err := r.History(ctx)
	if err != nil {
		t.Fatalf("History: %v", err)
	}

	want := []string{"2026-03-10|09:30", "2026-03-11|22:15", "2026-03-12|08:00"}
	if !reflect.DeepEqual(history, want) {
		t.Errorf("History = %v, want %v", history, want)
	}
}

func TestContactConfigDefaultHost(t *testing.T) {
	r := NewSettingsRepository(settings.NewMemoryStore())
	ctx := context.Background()

	cfg, err := r.ContactConfig(ctx)
	if err != nil {
		t.Fatalf("ContactConfig: %v", err)
	}
	if cfg.SMTPHost == "" {
		t.Error("SMTPHost should fall back to the configured default")
	}
}

func TestObserveLastCheckInDate(t *testing.T) {
	store := settings.NewMemoryStore()
	r := NewSettingsRepository(store)
	ctx := context.Background()

	ch, cancel := r.ObserveLastCheckInDate(ctx)
	defer cancel()

	if err := r.ApplyCheckIn(ctx, 1, "2026-03-10", "2026-03-10|09:30"); err != nil {
		t.Fatalf("ApplyCheckIn: %v", err)
	}

	got := <-ch
	if got != "2026-03-10" {
		t.Errorf("observed date = %q, want 2026-03-10", got)
	}
}
