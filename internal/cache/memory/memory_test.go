package memory

import (
	"context"
	"testing"
	"time"

	"github.com/statuswatch/statuswatch/internal/cache"
)

func TestStore_PutGet(t *testing.T) {
	ctx := context.Background()
	s := New()

	e := cache.Entry{
		Key:       "https://example.com#external",
		Payload:   []byte(`{"a":1}`),
		StoredAt:  time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(10 * time.Minute),
	}
	if err := s.Put(ctx, e); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, e.Key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || string(got.Payload) != `{"a":1}` {
		t.Fatalf("unexpected entry: %+v", got)
	}

	// mutating the returned payload must not affect the store
	got.Payload[0] = 'X'
	again, _ := s.Get(ctx, e.Key)
	if string(again.Payload) != `{"a":1}` {
		t.Fatalf("store payload mutated via caller copy")
	}
}

func TestStore_AbsentKey(t *testing.T) {
	s := New()
	got, err := s.Get(context.Background(), "missing")
	if err != nil || got != nil {
		t.Fatalf("want nil,nil for absent key, got %v, %v", got, err)
	}
}

func TestStore_ExpiredRowReclaimed(t *testing.T) {
	ctx := context.Background()
	s := New()
	e := cache.Entry{
		Key:       "k",
		Payload:   []byte("x"),
		StoredAt:  time.Now().Add(-time.Hour),
		ExpiresAt: time.Now().Add(-30 * time.Minute),
	}
	if err := s.Put(ctx, e); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil || got != nil {
		t.Fatalf("expired row should read as absent, got %v, %v", got, err)
	}
}
