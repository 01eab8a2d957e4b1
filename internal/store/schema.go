package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const (
	llmRequestTable = "llm_request_events"
	lessonTable     = "lesson_events"
	analysisTable   = "analysis_events"
	sessionTable    = "session_states"
)

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func idColumn() *entsql.ColumnBuilder {
	return entsql.Column("id").Type("integer").Attr("PRIMARY KEY AUTOINCREMENT")
}

func intColumn(name string) *entsql.ColumnBuilder {
	return entsql.Column(name).Type("integer").Attr("NOT NULL DEFAULT 0")
}

func textColumn(name string) *entsql.ColumnBuilder {
	return entsql.Column(name).Type("text").Attr("NOT NULL DEFAULT ''")
}

// eventColumns are shared by every event table: global sequence and
// creation time in unix milliseconds.
func eventColumns(cols ...*entsql.ColumnBuilder) []*entsql.ColumnBuilder {
	return append([]*entsql.ColumnBuilder{
		idColumn(),
		intColumn("sequence"),
		intColumn("timestamp"),
	}, cols...)
}

// migrate creates the event and session tables. It is idempotent.
func migrate(ctx context.Context, drv dialect.ExecQuerier) error {
	b := builder()
	tables := []*entsql.TableBuilder{
		b.CreateTable(llmRequestTable).IfNotExists().Columns(eventColumns(
			textColumn("provider"),
			textColumn("model"),
			textColumn("purpose"),
			intColumn("input_tokens"),
			intColumn("output_tokens"),
			intColumn("latency_ms"),
			intColumn("success"),
			textColumn("error_message"),
			textColumn("request_body"),
			textColumn("response_body"),
		)...),
		b.CreateTable(lessonTable).IfNotExists().Columns(eventColumns(
			textColumn("session_id"),
			textColumn("content_version"),
			textColumn("academic_level"),
			textColumn("subject"),
			textColumn("topic"),
			textColumn("source"),
			intColumn("word_count"),
			intColumn("key_points"),
		)...),
		b.CreateTable(analysisTable).IfNotExists().Columns(eventColumns(
			textColumn("session_id"),
			textColumn("content_version"),
			textColumn("topic"),
			textColumn("source"),
			intColumn("grade"),
			intColumn("can_proceed"),
			intColumn("response_words"),
		)...),
		b.CreateTable(sessionTable).IfNotExists().Columns(
			entsql.Column("session_key").Type("text").Attr("PRIMARY KEY"),
			textColumn("data"),
			intColumn("updated_at"),
			intColumn("expires_at"),
		),
	}
	for _, t := range tables {
		query, args := t.Query()
		if err := drv.Exec(ctx, query, args, nil); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}
