package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// sessionRepo implements SessionRepo on the session_states table.
type sessionRepo struct {
	drv *entsql.Driver
}

func (r *sessionRepo) Save(ctx context.Context, rec SessionRecord) error {
	var expires int64
	if !rec.ExpiresAt.IsZero() {
		expires = rec.ExpiresAt.UnixMilli()
	}
	updated := rec.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}

	query, args := builder().Insert(sessionTable).
		Columns("session_key", "data", "updated_at", "expires_at").
		Values(rec.Key, string(rec.Data), updated.UnixMilli(), expires).
		OnConflict(
			entsql.ConflictColumns("session_key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("save session state: %w", err)
	}
	return nil
}

func (r *sessionRepo) Load(ctx context.Context, key string) (*SessionRecord, error) {
	b := builder()
	query, args := b.Select("session_key", "data", "updated_at", "expires_at").
		From(b.Table(sessionTable)).
		Where(entsql.EQ("session_key", key)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("load session state: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("load session state: %w", err)
		}
		return nil, ErrNotFound
	}

	var (
		rec              SessionRecord
		data             string
		updated, expires int64
	)
	if err := rows.Scan(&rec.Key, &data, &updated, &expires); err != nil {
		return nil, fmt.Errorf("scan session state: %w", err)
	}
	rec.Data = []byte(data)
	rec.UpdatedAt = fromMillis(updated)
	if expires > 0 {
		rec.ExpiresAt = fromMillis(expires)
		if !time.Now().Before(rec.ExpiresAt) {
			return nil, ErrNotFound
		}
	}
	return &rec, nil
}

func (r *sessionRepo) Delete(ctx context.Context, key string) error {
	query, args := builder().Delete(sessionTable).
		Where(entsql.EQ("session_key", key)).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("delete session state: %w", err)
	}
	return nil
}

func (r *sessionRepo) Prune(ctx context.Context, now time.Time) (int, error) {
	query, args := builder().Delete(sessionTable).
		Where(entsql.And(
			entsql.GT("expires_at", 0),
			entsql.LTE("expires_at", now.UnixMilli()),
		)).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("prune session states: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune session states: %w", err)
	}
	return int(n), nil
}
