package model

import (
	"reflect"
	"testing"
)

func TestRecipients(t *testing.T) {
	tests := []struct {
		name   string
		emails [3]string
		want   []string
	}{
		{"all empty", [3]string{"", "", ""}, []string{}},
		{"order preserved", [3]string{"a@x.com", "b@x.com", "c@x.com"}, []string{"a@x.com", "b@x.com", "c@x.com"}},
		{"blanks skipped", [3]string{"", "b@x.com", ""}, []string{"b@x.com"}},
		{"whitespace trimmed", [3]string{" a@x.com ", "", ""}, []string{"a@x.com"}},
		{"duplicates removed", [3]string{"a@x.com", "a@x.com", "b@x.com"}, []string{"a@x.com", "b@x.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ContactConfig{ContactEmails: tt.emails}.Recipients()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Recipients() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComplete(t *testing.T) {
	tests := []struct {
		name string
		cfg  ContactConfig
		want bool
	}{
		{"empty", ContactConfig{}, false},
		{"sender only", ContactConfig{SenderEmail: "me@x.com"}, false},
		{"contact only", ContactConfig{ContactEmails: [3]string{"a@x.com"}}, false},
		{"both", ContactConfig{SenderEmail: "me@x.com", ContactEmails: [3]string{"a@x.com"}}, true},
		{"blank sender", ContactConfig{SenderEmail: "   ", ContactEmails: [3]string{"a@x.com"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Complete(); got != tt.want {
				t.Errorf("Complete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckedInOn(t *testing.T) {
	s := CheckInState{StreakDays: 3, LastCheckInDate: "2026-03-10"}

	if !s.CheckedInOn("2026-03-10") {
		t.Error("CheckedInOn should match last date")
	}
	if s.CheckedInOn("2026-03-11") {
		t.Error("CheckedInOn should not match a different date")
	}
	if (CheckInState{}).CheckedInOn("") {
		t.Error("empty state should never report checked in")
	}
}

func TestHistoryEntry(t *testing.T) {
	if got := HistoryEntry("2026-03-10", "09:30"); got != "2026-03-10|09:30" {
		t.Errorf("HistoryEntry = %q", got)
	}
}
