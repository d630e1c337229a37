package store

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemory[string]()

	if err := s.Save(ctx, "a", "first"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	v, err := s.Get(ctx, "a")
	if err != nil || v != "first" {
		t.Fatalf("Get: %q, %v", v, err)
	}

	// Save overwrites.
	_ = s.Save(ctx, "a", "second")
	if v, _ := s.Get(ctx, "a"); v != "second" {
		t.Errorf("overwrite failed: %q", v)
	}
}

func TestMemoryStoreMissing(t *testing.T) {
	s := NewMemory[int]()
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id: err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemory[int]()
	_ = s.Save(ctx, "x", 1)
	if err := s.Delete(ctx, "x"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "x"); !errors.Is(err, ErrNotFound) {
		t.Error("deleted id should be gone")
	}
	if err := s.Delete(ctx, "x"); err != nil {
		t.Errorf("double delete should be a no-op, got %v", err)
	}
}
