package escalate

import (
	"context"
	"strings"
	"testing"

	"PrivateCheck/internal/model"
	"PrivateCheck/internal/repository"
	"PrivateCheck/pkg/email"
	"PrivateCheck/pkg/errors"
	"PrivateCheck/storage/secret"
	"PrivateCheck/storage/settings"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *repository.SettingsRepository, secret.Store, *email.MockSender) {
	t.Helper()

	repo := repository.NewSettingsRepository(settings.NewMemoryStore())
	vault := secret.NewMemoryStore()
	mock := email.NewMockSender()
	email.SetSender(mock)

	return NewDispatcher(repo, vault), repo, vault, mock
}

func configureContacts(t *testing.T, repo *repository.SettingsRepository, vault secret.Store, emails [3]string) {
	t.Helper()
	ctx := context.Background()

	if err := repo.SaveContactSettings(ctx, emails[0], emails[1], emails[2], "me@example.com", "smtp.example.com"); err != nil {
		t.Fatalf("SaveContactSettings: %v", err)
	}
	if err := vault.SetSecret(ctx, secret.SecretNameSenderPassword, "app-password"); err != nil {
		t.Fatalf("SetSecret: %v", err)
	}
}

func sendDecision() model.EscalationDecision {
	return model.EscalationDecision{
		Send:            true,
		MissedDays:      2,
		StreakAtBreak:   7,
		LastCheckInDate: "2026-03-07",
	}
}

func TestDispatchSendsToAllContacts(t *testing.T) {
	d, repo, vault, mock := newTestDispatcher(t)
	configureContacts(t, repo, vault, [3]string{"a@example.com", "b@example.com", "c@example.com"})

	if err := d.Dispatch(context.Background(), sendDecision()); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	if len(mock.Calls) != 3 {
		t.Fatalf("sent %d emails, want 3", len(mock.Calls))
	}
	for _, msg := range mock.Calls {
		if msg.From != "me@example.com" {
			t.Errorf("From = %q, want me@example.com", msg.From)
		}
		if msg.Credential != "app-password" {
			t.Error("credential not filled from secret store")
		}
		if !strings.Contains(msg.Body, "2026-03-07") {
			t.Error("body should mention last check-in date")
		}
		if !strings.Contains(msg.Body, "2 天") {
			t.Errorf("body should mention missed days, got %q", msg.Body)
		}
	}
}

func TestDispatchPartialFailureIsSuccess(t *testing.T) {
	d, repo, vault, mock := newTestDispatcher(t)
	configureContacts(t, repo, vault, [3]string{"a@example.com", "b@example.com", "c@example.com"})
	mock.FailFor["a@example.com"] = true
	mock.FailFor["c@example.com"] = true

	if err := d.Dispatch(context.Background(), sendDecision()); err != nil {
		t.Fatalf("Dispatch with one success should succeed, got %v", err)
	}
}

func TestDispatchAllFailuresIsError(t *testing.T) {
	d, repo, vault, mock := newTestDispatcher(t)
	configureContacts(t, repo, vault, [3]string{"a@example.com", "b@example.com", ""})
	mock.FailAll = true

	err := d.Dispatch(context.Background(), sendDecision())
	if err != errors.NetworkSend {
		t.Fatalf("Dispatch with all failures = %v, want NetworkSend", err)
	}
}

func TestDispatchNoContactsIsNoop(t *testing.T) {
	d, _, vault, mock := newTestDispatcher(t)
	if err := vault.SetSecret(context.Background(), secret.SecretNameSenderPassword, "pw"); err != nil {
		t.Fatalf("SetSecret: %v", err)
	}

	if err := d.Dispatch(context.Background(), sendDecision()); err != nil {
		t.Fatalf("Dispatch without contacts should be a no-op success, got %v", err)
	}
	if len(mock.Calls) != 0 {
		t.Errorf("sent %d emails, want 0", len(mock.Calls))
	}
}

func TestDispatchNoSenderIsNoop(t *testing.T) {
	d, repo, _, mock := newTestDispatcher(t)
	ctx := context.Background()

	// 只配了收件人，没配发件人
	if err := repo.SaveContactSettings(ctx, "a@example.com", "", "", "", "smtp.example.com"); err != nil {
		t.Fatalf("SaveContactSettings: %v", err)
	}

	if err := d.Dispatch(ctx, sendDecision()); err != nil {
		t.Fatalf("Dispatch without sender should be a no-op success, got %v", err)
	}
	if len(mock.Calls) != 0 {
		t.Errorf("sent %d emails, want 0", len(mock.Calls))
	}
}

func TestDispatchDuplicateContactsDeduplicated(t *testing.T) {
	d, repo, vault, mock := newTestDispatcher(t)
	configureContacts(t, repo, vault, [3]string{"a@example.com", "a@example.com", "b@example.com"})

	if err := d.Dispatch(context.Background(), sendDecision()); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(mock.Calls) != 2 {
		t.Errorf("sent %d emails, want 2 after dedup", len(mock.Calls))
	}
}

func TestDispatchNoActionDecision(t *testing.T) {
	d, repo, vault, mock := newTestDispatcher(t)
	configureContacts(t, repo, vault, [3]string{"a@example.com", "", ""})

	if err := d.Dispatch(context.Background(), model.NoAction); err != nil {
		t.Fatalf("Dispatch(NoAction): %v", err)
	}
	if len(mock.Calls) != 0 {
		t.Errorf("NoAction should send nothing, sent %d", len(mock.Calls))
	}
}
