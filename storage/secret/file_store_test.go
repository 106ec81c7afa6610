package secret

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.json")
	s := NewFileStore(path)
	ctx := context.Background()

	// 空文件：读不到就是空串
	got, err := s.GetSecret(ctx, SecretNameSenderPassword)
	if err != nil || got != "" {
		t.Fatalf("GetSecret on fresh store = %q (%v), want empty", got, err)
	}

	if err := s.SetSecret(ctx, SecretNameSenderPassword, "app-password"); err != nil {
		t.Fatalf("SetSecret: %v", err)
	}

	got, err = s.GetSecret(ctx, SecretNameSenderPassword)
	if err != nil || got != "app-password" {
		t.Fatalf("GetSecret = %q (%v), want app-password", got, err)
	}

	if err := s.RemoveSecret(ctx, SecretNameSenderPassword); err != nil {
		t.Fatalf("RemoveSecret: %v", err)
	}
	got, err = s.GetSecret(ctx, SecretNameSenderPassword)
	if err != nil || got != "" {
		t.Errorf("GetSecret after remove = %q (%v), want empty", got, err)
	}
}

func TestFileStorePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file mode semantics differ on windows")
	}

	path := filepath.Join(t.TempDir(), "secrets.json")
	s := NewFileStore(path)

	if err := s.SetSecret(context.Background(), SecretNameSenderPassword, "pw"); err != nil {
		t.Fatalf("SetSecret: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("secret file mode = %o, want 600", perm)
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.json")
	ctx := context.Background()

	if err := NewFileStore(path).SetSecret(ctx, SecretNameSenderPassword, "pw"); err != nil {
		t.Fatalf("SetSecret: %v", err)
	}

	got, err := NewFileStore(path).GetSecret(ctx, SecretNameSenderPassword)
	if err != nil || got != "pw" {
		t.Errorf("reopened GetSecret = %q (%v), want pw", got, err)
	}
}
