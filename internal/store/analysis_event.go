package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendAnalysisEvent(ctx context.Context, data AnalysisEventData) error {
	err := r.insert(ctx, analysisTable,
		[]string{
			"session_id", "content_version", "topic", "source",
			"grade", "can_proceed", "response_words",
		},
		[]any{
			data.SessionID, data.ContentVersion, data.Topic, data.Source,
			data.Grade, boolInt(data.CanProceed), data.ResponseWords,
		},
	)
	if err != nil {
		return fmt.Errorf("save analysis event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAnalyses(ctx context.Context, opts QueryOpts) ([]AnalysisEvent, error) {
	query, args := selectEvents(analysisTable, opts,
		"id", "sequence", "timestamp", "session_id", "content_version",
		"topic", "source", "grade", "can_proceed", "response_words",
	).Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query analysis events: %w", err)
	}
	defer rows.Close()

	var out []AnalysisEvent
	for rows.Next() {
		var (
			e          AnalysisEvent
			ts         int64
			canProceed int64
		)
		if err := rows.Scan(
			&e.ID, &e.Sequence, &ts, &e.SessionID, &e.ContentVersion,
			&e.Topic, &e.Source, &e.Grade, &canProceed, &e.ResponseWords,
		); err != nil {
			return nil, fmt.Errorf("scan analysis event: %w", err)
		}
		e.Timestamp = fromMillis(ts)
		e.CanProceed = canProceed != 0
		out = append(out, e)
	}
	return out, rows.Err()
}
