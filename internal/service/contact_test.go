package service

import (
	"context"
	"testing"

	"PrivateCheck/internal/model"
	"PrivateCheck/pkg/errors"
	"PrivateCheck/storage/secret"
)

func TestUpdateSettingsRoundTrip(t *testing.T) {
	setupStores(t)
	ctx := context.Background()

	err := Contact().UpdateSettings(ctx, model.UpdateContactsRequest{
		ContactEmail:  "a@example.com",
		ContactEmail2: "b@example.com",
		SenderEmail:   "me@example.com",
		SenderSecret:  "app-password",
		SMTPHost:      "smtp.example.com",
	})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}

	view, err := Contact().GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}

	if view.ContactEmail != "a@example.com" || view.ContactEmail2 != "b@example.com" {
		t.Errorf("contacts = %q, %q", view.ContactEmail, view.ContactEmail2)
	}
	if view.SenderEmail != "me@example.com" {
		t.Errorf("sender = %q", view.SenderEmail)
	}
	if !view.HasCredential {
		t.Error("HasCredential should be true after saving a secret")
	}
}

func TestUpdateSettingsRejectsInvalidEmail(t *testing.T) {
	setupStores(t)

	err := Contact().UpdateSettings(context.Background(), model.UpdateContactsRequest{
		ContactEmail: "not-an-email",
	})
	if err != errors.InvalidSettings {
		t.Fatalf("UpdateSettings = %v, want InvalidSettings", err)
	}
}

func TestUpdateSettingsKeepsCredentialWhenOmitted(t *testing.T) {
	_, vault := setupStores(t)
	ctx := context.Background()

	if err := vault.SetSecret(ctx, secret.SecretNameSenderPassword, "existing"); err != nil {
		t.Fatalf("SetSecret: %v", err)
	}

	err := Contact().UpdateSettings(ctx, model.UpdateContactsRequest{
		ContactEmail: "a@example.com",
		SenderEmail:  "me@example.com",
	})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}

	got, err := vault.GetSecret(ctx, secret.SecretNameSenderPassword)
	if err != nil || got != "existing" {
		t.Errorf("secret = %q (%v), want unchanged existing", got, err)
	}
}

func TestUpdateSettingsDefaultsSMTPHost(t *testing.T) {
	setupStores(t)
	ctx := context.Background()

	err := Contact().UpdateSettings(ctx, model.UpdateContactsRequest{
		ContactEmail: "a@example.com",
		SenderEmail:  "me@example.com",
	})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}

	view, err := Contact().GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if view.SMTPHost == "" {
		t.Error("SMTPHost should fall back to the configured default")
	}
}
