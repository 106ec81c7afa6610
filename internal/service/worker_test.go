package service

import (
	"context"
	"testing"
	"time"

	"PrivateCheck/internal/escalate"
	"PrivateCheck/internal/model"
	"PrivateCheck/pkg/email"
	"PrivateCheck/pkg/notify"
	"PrivateCheck/storage/secret"
	"PrivateCheck/storage/settings"
)

func newTestWorker(t *testing.T) (*WorkerService, *settings.MemoryStore, *secret.MemoryStore) {
	t.Helper()

	store, vault := setupStores(t)
	w := &WorkerService{
		dispatcher: escalate.NewDispatcher(settingsRepo(), vault),
	}
	return w, store, vault
}

func TestHandleReminderDueSuppressedWhenCheckedIn(t *testing.T) {
	w, store, _ := newTestWorker(t)
	ctx := context.Background()

	mock := notify.NewMockPresenter()
	notify.SetPresenter(mock)

	today := time.Now().Format(model.DateLayout)
	if err := store.Set(ctx, settings.KeyLastCheckInDate, today); err != nil {
		t.Fatalf("seed last date: %v", err)
	}

	if err := w.HandleReminderDue(ctx, false); err != nil {
		t.Fatalf("HandleReminderDue: %v", err)
	}
	if len(mock.Calls) != 0 {
		t.Errorf("reminder should be suppressed, got %d notifications", len(mock.Calls))
	}
}

func TestHandleReminderDueDeliversWhenNotCheckedIn(t *testing.T) {
	w, store, _ := newTestWorker(t)
	ctx := context.Background()

	mock := notify.NewMockPresenter()
	notify.SetPresenter(mock)

	yesterday := time.Now().AddDate(0, 0, -1).Format(model.DateLayout)
	if err := store.Set(ctx, settings.KeyLastCheckInDate, yesterday); err != nil {
		t.Fatalf("seed last date: %v", err)
	}

	if err := w.HandleReminderDue(ctx, false); err != nil {
		t.Fatalf("HandleReminderDue: %v", err)
	}
	if len(mock.Calls) != 1 {
		t.Errorf("expected 1 notification, got %d", len(mock.Calls))
	}
}

func TestHandleReminderDueForceBypassesSuppression(t *testing.T) {
	w, store, _ := newTestWorker(t)
	ctx := context.Background()

	mock := notify.NewMockPresenter()
	notify.SetPresenter(mock)

	today := time.Now().Format(model.DateLayout)
	if err := store.Set(ctx, settings.KeyLastCheckInDate, today); err != nil {
		t.Fatalf("seed last date: %v", err)
	}

	if err := w.HandleReminderDue(ctx, true); err != nil {
		t.Fatalf("HandleReminderDue(force): %v", err)
	}
	if len(mock.Calls) != 1 {
		t.Errorf("forced reminder should bypass suppression, got %d notifications", len(mock.Calls))
	}
}

func TestHandlePenaltyCheckTriggersEscalation(t *testing.T) {
	w, store, vault := newTestWorker(t)
	ctx := context.Background()

	mock := email.NewMockSender()
	email.SetSender(mock)

	breakDate := time.Now().AddDate(0, 0, -3).Format(model.DateLayout)
	if err := store.SetBatch(ctx, map[string]string{
		settings.KeyLastCheckInDate: breakDate,
		settings.KeyStreakDays:      "9",
		settings.KeyContactEmail:    "friend@example.com",
		settings.KeySenderEmail:     "me@example.com",
		settings.KeySMTPHost:        "smtp.example.com",
	}, nil); err != nil {
		t.Fatalf("seed state: %v", err)
	}
	if err := vault.SetSecret(ctx, secret.SecretNameSenderPassword, "pw"); err != nil {
		t.Fatalf("SetSecret: %v", err)
	}

	if err := w.HandlePenaltyCheck(ctx); err != nil {
		t.Fatalf("HandlePenaltyCheck: %v", err)
	}
	if len(mock.Calls) != 1 {
		t.Fatalf("expected 1 escalation email, got %d", len(mock.Calls))
	}
	if mock.Calls[0].To != "friend@example.com" {
		t.Errorf("To = %q, want friend@example.com", mock.Calls[0].To)
	}
}

func TestHandlePenaltyCheckBelowThreshold(t *testing.T) {
	w, store, vault := newTestWorker(t)
	ctx := context.Background()

	mock := email.NewMockSender()
	email.SetSender(mock)

	recent := time.Now().AddDate(0, 0, -2).Format(model.DateLayout)
	if err := store.SetBatch(ctx, map[string]string{
		settings.KeyLastCheckInDate: recent,
		settings.KeyStreakDays:      "4",
		settings.KeyContactEmail:    "friend@example.com",
		settings.KeySenderEmail:     "me@example.com",
	}, nil); err != nil {
		t.Fatalf("seed state: %v", err)
	}
	if err := vault.SetSecret(ctx, secret.SecretNameSenderPassword, "pw"); err != nil {
		t.Fatalf("SetSecret: %v", err)
	}

	if err := w.HandlePenaltyCheck(ctx); err != nil {
		t.Fatalf("HandlePenaltyCheck: %v", err)
	}
	if len(mock.Calls) != 0 {
		t.Errorf("no email expected below threshold, got %d", len(mock.Calls))
	}
}
