package cache

import (
	"errors"
	"testing"
	"time"
)

func TestStoreSetGet(t *testing.T) {
	s := NewStore()
	s.Set("k", "v", 0)
	if value, ok := s.Get("k"); !ok || value != "v" {
		t.Fatalf("unexpected get: %v %v", value, ok)
	}
	s.Delete("k")
	if _, ok := s.Get("k"); ok {
		t.Fatalf("expected deleted key")
	}
}

func TestStoreExpiry(t *testing.T) {
	s := NewStore()
	s.Set("k", "v", time.Nanosecond)
	time.Sleep(5 * time.Millisecond)
	if _, ok := s.Get("k"); ok {
		t.Fatalf("expected expired key")
	}
}

func TestStoreNilSafe(t *testing.T) {
	var s *Store
	s.Set("k", "v", 0)
	if _, ok := s.Get("k"); ok {
		t.Fatalf("expected miss on nil store")
	}
	s.Delete("k")
}

func TestGetOrFill(t *testing.T) {
	s := NewStore()
	calls := 0
	fill := func() (any, error) {
		calls++
		return "filled", nil
	}
	for i := 0; i < 2; i++ {
		value, err := s.GetOrFill("k", time.Minute, fill)
		if err != nil || value != "filled" {
			t.Fatalf("unexpected fill result: %v %v", value, err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected single fill, got %d", calls)
	}
}

func TestGetOrFillError(t *testing.T) {
	s := NewStore()
	wantErr := errors.New("boom")
	if _, err := s.GetOrFill("k", time.Minute, func() (any, error) { return nil, wantErr }); !errors.Is(err, wantErr) {
		t.Fatalf("expected fill error, got %v", err)
	}
	if _, ok := s.Get("k"); ok {
		t.Fatalf("error result must not be cached")
	}
}
