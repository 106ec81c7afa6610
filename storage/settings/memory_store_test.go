package settings

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreGetSetRemove(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) = %v, want ErrNotFound", err)
	}

	if err := s.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil || got != "v" {
		t.Fatalf("Get = %q (%v), want v", got, err)
	}

	if err := s.Remove(ctx, "k"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Remove = %v, want ErrNotFound", err)
	}

	// Remove 不存在的键不是错误
	if err := s.Remove(ctx, "k"); err != nil {
		t.Errorf("Remove(absent) = %v, want nil", err)
	}
}

func TestMemoryStoreSetSemantics(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for _, m := range []string{"a", "b", "a"} {
		if err := s.AddToSet(ctx, "set", m); err != nil {
			t.Fatalf("AddToSet: %v", err)
		}
	}

	members, err := s.GetSet(ctx, "set")
	if err != nil {
		t.Fatalf("GetSet: %v", err)
	}
	if len(members) != 2 {
		t.Errorf("set size = %d, want 2 (duplicates collapse)", len(members))
	}
}

func TestMemoryStoreSetBatch(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	err := s.SetBatch(ctx,
		map[string]string{"k1": "v1", "k2": "v2"},
		map[string][]string{"history": {"e1", "e2"}},
	)
	if err != nil {
		t.Fatalf("SetBatch: %v", err)
	}

	for k, want := range map[string]string{"k1": "v1", "k2": "v2"} {
		got, err := s.Get(ctx, k)
		if err != nil || got != want {
			t.Errorf("Get(%s) = %q (%v), want %q", k, got, err, want)
		}
	}

	members, err := s.GetSet(ctx, "history")
	if err != nil || len(members) != 2 {
		t.Errorf("GetSet(history) = %v (%v), want 2 members", members, err)
	}
}

func TestMemoryStoreObserveEmitsCurrentValueFirst(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Set(ctx, "k", "initial"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	ch, cancel := s.Observe(ctx, "k")
	defer cancel()

	select {
	case got := <-ch:
		if got != "initial" {
			t.Fatalf("first observed value = %q, want initial", got)
		}
	case <-time.After(time.Second):
		t.Fatal("Observe did not emit current value")
	}

	if err := s.Set(ctx, "k", "updated"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	select {
	case got := <-ch:
		if got != "updated" {
			t.Fatalf("observed value = %q, want updated", got)
		}
	case <-time.After(time.Second):
		t.Fatal("Observe did not emit updated value")
	}
}

func TestMemoryStoreObserveCancel(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	ch, cancel := s.Observe(ctx, "k")
	cancel()

	if err := s.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	select {
	case got, ok := <-ch:
		if ok {
			t.Fatalf("cancelled observer received %q", got)
		}
	case <-time.After(100 * time.Millisecond):
		// 取消后不再收到通知
	}
}
