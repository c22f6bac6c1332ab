package tokens

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	s := NewMemoryStore()
	t.Cleanup(s.Close)
	return s
}

func TestMemoryStorePutGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "verify_code:abc", "123456", time.Minute); err != nil {
		t.Fatalf("put: %v", err)
	}

	v, err := s.Get(ctx, "verify_code:abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v != "123456" {
		t.Errorf("valeur = %q, attendu %q", v, "123456")
	}

	// Get n'est pas consommant
	if _, err := s.Get(ctx, "verify_code:abc"); err != nil {
		t.Errorf("second get: %v", err)
	}
}

func TestMemoryStoreTakeIsSingleUse(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "reset_token:xyz", "user-1", time.Minute); err != nil {
		t.Fatalf("put: %v", err)
	}

	v, err := s.Take(ctx, "reset_token:xyz")
	if err != nil {
		t.Fatalf("take: %v", err)
	}
	if v != "user-1" {
		t.Errorf("valeur = %q, attendu %q", v, "user-1")
	}

	// Le token est consommé : un rejeu échoue
	if _, err := s.Take(ctx, "reset_token:xyz"); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("rejeu: erreur = %v, attendu ErrTokenNotFound", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "k", "v", -time.Second); err != nil {
		t.Fatalf("put: %v", err)
	}

	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("get expiré: erreur = %v, attendu ErrTokenNotFound", err)
	}
	if _, err := s.Take(ctx, "k"); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("take expiré: erreur = %v, attendu ErrTokenNotFound", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("get après delete: erreur = %v, attendu ErrTokenNotFound", err)
	}

	// Supprimer une clé absente est un succès
	if err := s.Delete(ctx, "absent"); err != nil {
		t.Errorf("delete clé absente: %v", err)
	}
}

func TestMemoryStoreSweep(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Put(ctx, "vivant", "v", time.Hour)
	s.Put(ctx, "mort", "v", time.Minute)

	s.Sweep(time.Now().Add(30 * time.Minute))

	if _, err := s.Get(ctx, "vivant"); err != nil {
		t.Errorf("l'entrée non expirée a été balayée: %v", err)
	}
	if _, err := s.Get(ctx, "mort"); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("l'entrée expirée aurait dû être balayée")
	}
}
