package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendLessonEvent(ctx context.Context, data LessonEventData) error {
	err := r.insert(ctx, lessonTable,
		[]string{
			"session_id", "content_version", "academic_level", "subject",
			"topic", "source", "word_count", "key_points",
		},
		[]any{
			data.SessionID, data.ContentVersion, data.AcademicLevel, data.Subject,
			data.Topic, data.Source, data.WordCount, data.KeyPoints,
		},
	)
	if err != nil {
		return fmt.Errorf("save lesson event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLessons(ctx context.Context, opts QueryOpts) ([]LessonEvent, error) {
	query, args := selectEvents(lessonTable, opts,
		"id", "sequence", "timestamp", "session_id", "content_version",
		"academic_level", "subject", "topic", "source", "word_count", "key_points",
	).Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query lesson events: %w", err)
	}
	defer rows.Close()

	var out []LessonEvent
	for rows.Next() {
		var (
			e  LessonEvent
			ts int64
		)
		if err := rows.Scan(
			&e.ID, &e.Sequence, &ts, &e.SessionID, &e.ContentVersion,
			&e.AcademicLevel, &e.Subject, &e.Topic, &e.Source, &e.WordCount, &e.KeyPoints,
		); err != nil {
			return nil, fmt.Errorf("scan lesson event: %w", err)
		}
		e.Timestamp = fromMillis(ts)
		out = append(out, e)
	}
	return out, rows.Err()
}
