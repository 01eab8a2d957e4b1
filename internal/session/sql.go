package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/scholar/internal/store"
)

// SQLStore keeps state in the local SQLite database so sessions survive
// restarts of a single-node server.
type SQLStore struct {
	repo store.SessionRepo
	ttl  time.Duration
}

// NewSQLStore creates a SQLStore. ttl <= 0 stores rows without expiry.
func NewSQLStore(repo store.SessionRepo, ttl time.Duration) *SQLStore {
	return &SQLStore{repo: repo, ttl: ttl}
}

func (s *SQLStore) Get(ctx context.Context, key string) (*State, error) {
	rec, err := s.repo.Load(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var st State
	if err := json.Unmarshal(rec.Data, &st); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &st, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, st *State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	now := time.Now()
	rec := store.SessionRecord{Key: key, Data: data, UpdatedAt: now}
	if s.ttl > 0 {
		rec.ExpiresAt = now.Add(s.ttl)
	}
	return s.repo.Save(ctx, rec)
}

func (s *SQLStore) Clear(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}

// Prune removes expired rows.
func (s *SQLStore) Prune(ctx context.Context) (int, error) {
	return s.repo.Prune(ctx, time.Now())
}
