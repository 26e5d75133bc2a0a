package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	id, err := store.Create(ctx, Session{UserID: 1, Usuario: "admin", Nombre: "Admin"})
	if err != nil {
		t.Fatalf("error creating session: %v", err)
	}
	if id == "" {
		t.Fatal("expected a non-empty session id")
	}

	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("error fetching session: %v", err)
	}
	if got.UserID != 1 || got.Usuario != "admin" || got.Nombre != "Admin" {
		t.Errorf("unexpected session: %+v", got)
	}
}

func TestMemoryStoreDestroy(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	id, err := store.Create(ctx, Session{UserID: 1, Usuario: "admin"})
	if err != nil {
		t.Fatalf("error creating session: %v", err)
	}
	if err := store.Destroy(ctx, id); err != nil {
		t.Fatalf("error destroying session: %v", err)
	}
	if _, err := store.Get(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(-time.Second)
	ctx := context.Background()

	id, err := store.Create(ctx, Session{UserID: 1, Usuario: "admin"})
	if err != nil {
		t.Fatalf("error creating session: %v", err)
	}
	if _, err := store.Get(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for expired session, got %v", err)
	}
}

func TestMemoryStoreUnknownID(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	if _, err := store.Get(context.Background(), "deadbeef"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := newSessionID()
		if err != nil {
			t.Fatalf("error generating session id: %v", err)
		}
		if len(id) != 32 {
			t.Fatalf("expected 32 hex chars, got %d", len(id))
		}
		if seen[id] {
			t.Fatalf("duplicate session id %q", id)
		}
		seen[id] = true
	}
}
