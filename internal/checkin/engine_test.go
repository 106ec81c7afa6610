package checkin

import (
	"context"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"PrivateCheck/internal/repository"
	"PrivateCheck/internal/widget"
	"PrivateCheck/pkg/logger"
	"PrivateCheck/storage/settings"
)

func TestMain(m *testing.M) {
	logger.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func newTestEngine() (*Engine, *repository.SettingsRepository) {
	repo := repository.NewSettingsRepository(settings.NewMemoryStore())
	return NewEngine(repo, widget.NoopRefresher{}), repo
}

func at(date string, hour, min int) time.Time {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), hour, min, 0, 0, time.Local)
}

func TestPerformCheckInFirstEver(t *testing.T) {
	engine, repo := newTestEngine()
	ctx := context.Background()

	result, err := engine.PerformCheckIn(ctx, at("2026-03-10", 9, 30))
	if err != nil {
		t.Fatalf("PerformCheckIn: %v", err)
	}

	if result.StreakDays != 1 {
		t.Errorf("first check-in streak = %d, want 1", result.StreakDays)
	}
	if result.SameDay {
		t.Error("first check-in should not be same-day")
	}

	state, err := repo.State(ctx)
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if state.LastCheckInDate != "2026-03-10" {
		t.Errorf("last date = %q, want 2026-03-10", state.LastCheckInDate)
	}
	if len(state.History) != 1 || state.History[0] != "2026-03-10|09:30" {
		t.Errorf("history = %v, want single 2026-03-10|09:30 entry", state.History)
	}
}

func TestPerformCheckInConsecutiveDays(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	dates := []string{"2026-03-10", "2026-03-11", "2026-03-12"}
	var last int
	for _, d := range dates {
		result, err := engine.PerformCheckIn(ctx, at(d, 8, 0))
		if err != nil {
			t.Fatalf("PerformCheckIn(%s): %v", d, err)
		}
		last = result.StreakDays
	}

	if last != 3 {
		t.Errorf("streak after 3 consecutive days = %d, want 3", last)
	}
}

func TestPerformCheckInGapResetsToOne(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	for _, d := range []string{"2026-03-10", "2026-03-11", "2026-03-12"} {
		if _, err := engine.PerformCheckIn(ctx, at(d, 8, 0)); err != nil {
			t.Fatalf("PerformCheckIn(%s): %v", d, err)
		}
	}

	// 跳过 13、14 号
	result, err := engine.PerformCheckIn(ctx, at("2026-03-15", 8, 0))
	if err != nil {
		t.Fatalf("PerformCheckIn after gap: %v", err)
	}

	if result.StreakDays != 1 {
		t.Errorf("streak after gap = %d, want exactly 1", result.StreakDays)
	}
}

func TestPerformCheckInSameDay(t *testing.T) {
	engine, repo := newTestEngine()
	ctx := context.Background()

	if _, err := engine.PerformCheckIn(ctx, at("2026-03-10", 8, 0)); err != nil {
		t.Fatalf("first PerformCheckIn: %v", err)
	}
	result, err := engine.PerformCheckIn(ctx, at("2026-03-10", 21, 15))
	if err != nil {
		t.Fatalf("second PerformCheckIn: %v", err)
	}

	if !result.SameDay {
		t.Error("second check-in on same day should report SameDay")
	}
	if result.StreakDays != 1 {
		t.Errorf("same-day streak = %d, want unchanged 1", result.StreakDays)
	}

	state, err := repo.State(ctx)
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if len(state.History) != 2 {
		t.Errorf("history length = %d, want 2 (same-day entries accumulate)", len(state.History))
	}
}

func TestPerformCheckInMonthBoundary(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	if _, err := engine.PerformCheckIn(ctx, at("2026-03-31", 8, 0)); err != nil {
		t.Fatalf("PerformCheckIn: %v", err)
	}
	result, err := engine.PerformCheckIn(ctx, at("2026-04-01", 8, 0))
	if err != nil {
		t.Fatalf("PerformCheckIn across month: %v", err)
	}

	if result.StreakDays != 2 {
		t.Errorf("streak across month boundary = %d, want 2", result.StreakDays)
	}
}

func TestIsCheckedInToday(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	checked, err := engine.IsCheckedInToday(ctx, at("2026-03-10", 9, 0))
	if err != nil {
		t.Fatalf("IsCheckedInToday: %v", err)
	}
	if checked {
		t.Error("fresh state should not be checked in")
	}

	if _, err := engine.PerformCheckIn(ctx, at("2026-03-10", 9, 0)); err != nil {
		t.Fatalf("PerformCheckIn: %v", err)
	}

	checked, err = engine.IsCheckedInToday(ctx, at("2026-03-10", 23, 59))
	if err != nil {
		t.Fatalf("IsCheckedInToday: %v", err)
	}
	if !checked {
		t.Error("same calendar day should be checked in")
	}

	checked, err = engine.IsCheckedInToday(ctx, at("2026-03-11", 0, 1))
	if err != nil {
		t.Fatalf("IsCheckedInToday: %v", err)
	}
	if checked {
		t.Error("next calendar day should not be checked in")
	}
}

func TestNextStreak(t *testing.T) {
	tests := []struct {
		name     string
		lastDate string
		streak   int
		today    string
		want     int
	}{
		{"first ever", "", 0, "2026-03-10", 1},
		{"consecutive", "2026-03-09", 4, "2026-03-10", 5},
		{"one day gap", "2026-03-08", 4, "2026-03-10", 1},
		{"long gap", "2026-01-01", 99, "2026-03-10", 1},
		{"year boundary", "2025-12-31", 7, "2026-01-01", 8},
		{"garbage date", "not-a-date", 4, "2026-03-10", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextStreak(tt.lastDate, tt.streak, tt.today); got != tt.want {
				t.Errorf("nextStreak(%q, %d, %q) = %d, want %d", tt.lastDate, tt.streak, tt.today, got, tt.want)
			}
		})
	}
}
