// Package tokens : stockage des artefacts éphémères à usage unique
// (tokens de réinitialisation, codes de vérification d'email,
// inscriptions en attente). L'interface Store rend le backing
// interchangeable : mémoire process-local ou Redis.
package tokens

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrTokenNotFound = errors.New("token invalide ou expiré")

// Default est le store branché au démarrage (Redis si disponible,
// mémoire sinon).
var Default Store = NewMemoryStore()

type Store interface {
	// Put enregistre value sous key avec une durée de vie.
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	// Get retourne la valeur si elle existe et n'est pas expirée.
	Get(ctx context.Context, key string) (string, error)
	// Take retourne puis supprime la valeur — usage unique.
	Take(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// =============================================
// MEMORY STORE
// =============================================

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore : map protégée par mutex, balayage horaire des entrées
// expirées. Les tokens sont perdus au redémarrage du process —
// acceptable, ils sont courts et à usage unique.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	stop    chan struct{}
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		stop:    make(chan struct{}),
	}
	go s.sweepLoop(time.Hour)
	return s
}

func (s *MemoryStore) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.Sweep(time.Now())
		case <-s.stop:
			return
		}
	}
}

// Sweep retire toutes les entrées expirées à l'instant donné.
func (s *MemoryStore) Sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, k)
		}
	}
}

// Close arrête le balayage de fond.
func (s *MemoryStore) Close() { close(s.stop) }

func (s *MemoryStore) Put(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		delete(s.entries, key)
		return "", ErrTokenNotFound
	}
	return e.value, nil
}

func (s *MemoryStore) Take(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	delete(s.entries, key)
	if !ok || time.Now().After(e.expiresAt) {
		return "", ErrTokenNotFound
	}
	return e.value, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// =============================================
// REDIS STORE
// =============================================

// RedisStore : même contrat sur Redis, TTL natifs. Survit aux
// redémarrages et se partage entre instances.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, value, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if err == redis.Nil {
		return "", ErrTokenNotFound
	}
	return v, err
}

func (s *RedisStore) Take(ctx context.Context, key string) (string, error) {
	v, err := s.client.GetDel(ctx, s.prefix+key).Result()
	if err == redis.Nil {
		return "", ErrTokenNotFound
	}
	return v, err
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
