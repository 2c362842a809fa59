package memory

import (
	"context"
	"testing"
)

func TestMemoryStoreGetSet(t *testing.T) {
	ctx := context.Background()
	s := New()
	if _, ok, err := s.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || v != "v2" {
		t.Fatalf("unexpected get: v=%q ok=%v err=%v", v, ok, err)
	}
	if s.Writes() != 2 {
		t.Fatalf("expected 2 writes, got %d", s.Writes())
	}
}

func TestNewWithSeeds(t *testing.T) {
	s := NewWith(map[string]string{"a": "1"})
	if v, ok, _ := s.Get(context.Background(), "a"); !ok || v != "1" {
		t.Fatalf("expected seeded value, got %q ok=%v", v, ok)
	}
	if s.Writes() != 0 {
		t.Fatalf("seeding should not count as writes")
	}
}
