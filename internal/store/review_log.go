package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// reviewLogRepo implements ReviewLogRepo.
type reviewLogRepo struct {
	db *sql.DB
	b  *entsql.DialectBuilder
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *reviewLogRepo) Append(ctx context.Context, data ReviewLogData) error {
	return insertReviewLog(ctx, r.db, r.b, data)
}

func insertReviewLog(ctx context.Context, db execer, b *entsql.DialectBuilder, data ReviewLogData) error {
	query, args := b.Insert(ReviewLogsTable.Name).
		Columns("entry_id", "answer", "correct", "late", "strategy", "score", "from_stage", "to_stage", "reviewed_at").
		Values(data.EntryID, data.Answer, data.Correct, data.Late, data.Strategy, data.Score,
			data.FromStage, data.ToStage, data.ReviewedAt.UTC()).
		Query()
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save review log: %w", err)
	}
	return nil
}

func (r *reviewLogRepo) ListByEntry(ctx context.Context, entryID string, opts QueryOpts) ([]ReviewLogRecord, error) {
	preds := []*entsql.Predicate{entsql.EQ("entry_id", entryID)}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("reviewed_at", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("reviewed_at", opts.To.UTC()))
	}
	sel := r.b.Select("id", "entry_id", "answer", "correct", "late", "strategy", "score", "from_stage", "to_stage", "reviewed_at").
		From(r.b.Table(ReviewLogsTable.Name)).
		Where(entsql.And(preds...)).
		OrderBy(entsql.Asc("id"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query review logs: %w", err)
	}
	defer rows.Close()

	var logs []ReviewLogRecord
	for rows.Next() {
		var l ReviewLogRecord
		if err := rows.Scan(&l.ID, &l.EntryID, &l.Answer, &l.Correct, &l.Late, &l.Strategy, &l.Score,
			&l.FromStage, &l.ToStage, &l.ReviewedAt); err != nil {
			return nil, fmt.Errorf("scan review log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
