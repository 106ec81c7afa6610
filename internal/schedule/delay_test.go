package schedule

import (
	"testing"
	"time"
)

func TestNextReminderDelay(t *testing.T) {
	day := func(hour, min int) time.Time {
		return time.Date(2026, 3, 10, hour, min, 0, 0, time.Local)
	}

	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{"one hour before target", day(20, 0), time.Hour},
		{"one hour after target", day(22, 0), 23 * time.Hour},
		{"exactly at target fires immediately", day(21, 0), 0},
		{"one second after target", day(21, 0).Add(time.Second), 24*time.Hour - time.Second},
		{"just before target", day(20, 59), time.Minute},
		{"midnight", day(0, 0), 21 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextReminderDelay(tt.now, 21, 0); got != tt.want {
				t.Errorf("NextReminderDelay(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestNextReminderDelayCustomTime(t *testing.T) {
	now := time.Date(2026, 3, 10, 7, 30, 0, 0, time.Local)

	if got := NextReminderDelay(now, 8, 15); got != 45*time.Minute {
		t.Errorf("NextReminderDelay to 08:15 = %v, want 45m", got)
	}
}
