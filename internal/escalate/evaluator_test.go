package escalate

import (
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"PrivateCheck/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func dayAt(date string) time.Time {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 10, 0, 0, 0, time.Local)
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name           string
		today          string
		lastDate       string
		streak         int
		wantSend       bool
		wantMissedDays int
	}{
		{"never checked in", "2026-03-10", "", 0, false, 0},
		{"checked in today", "2026-03-10", "2026-03-10", 5, false, 0},
		{"one day since", "2026-03-10", "2026-03-09", 5, false, 0},
		{"two days since", "2026-03-10", "2026-03-08", 5, false, 0},
		{"threshold reached", "2026-03-10", "2026-03-07", 5, true, 2},
		{"four days since", "2026-03-10", "2026-03-06", 5, true, 3},
		{"week since", "2026-03-10", "2026-03-03", 12, true, 6},
		{"across month boundary", "2026-04-02", "2026-03-30", 3, true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(dayAt(tt.today), tt.lastDate, tt.streak)

			if got.Send != tt.wantSend {
				t.Fatalf("Send = %v, want %v", got.Send, tt.wantSend)
			}
			if !tt.wantSend {
				return
			}
			if got.MissedDays != tt.wantMissedDays {
				t.Errorf("MissedDays = %d, want %d", got.MissedDays, tt.wantMissedDays)
			}
			if got.StreakAtBreak != tt.streak {
				t.Errorf("StreakAtBreak = %d, want %d", got.StreakAtBreak, tt.streak)
			}
			if got.LastCheckInDate != tt.lastDate {
				t.Errorf("LastCheckInDate = %q, want %q", got.LastCheckInDate, tt.lastDate)
			}
		})
	}
}

func TestEvaluateUnparseableDate(t *testing.T) {
	got := Evaluate(dayAt("2026-03-10"), "garbage", 5)
	if got.Send {
		t.Error("unparseable last date should not trigger escalation")
	}
}
