package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
)

var vocabColumns = []string{
	"id", "word", "key", "sentence", "translation", "video_id", "video_title",
	"captured_at", "stage", "scheduled_at", "last_reviewed_at",
	"review_count", "correct_count",
}

// vocabRepo implements VocabRepo with ent's dialect-aware SQL builder.
type vocabRepo struct {
	db *sql.DB
	b  *entsql.DialectBuilder
}

func (r *vocabRepo) Create(ctx context.Context, rec *VocabRecord) error {
	var last any
	if rec.LastReviewedAt != nil {
		last = rec.LastReviewedAt.UTC()
	}
	query, args := r.b.Insert(VocabularyTable.Name).
		Columns(vocabColumns...).
		Values(
			rec.ID, rec.Word, rec.Key, rec.Sentence, rec.Translation, rec.VideoID, rec.VideoTitle,
			rec.CapturedAt.UTC(), rec.Stage, rec.ScheduledAt.UTC(), last,
			rec.ReviewCount, rec.CorrectCount,
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if sqlgraph.IsUniqueConstraintError(err) {
			return fmt.Errorf("save vocabulary %q: %w", rec.Key, ErrDuplicate)
		}
		return fmt.Errorf("save vocabulary: %w", err)
	}
	return nil
}

func (r *vocabRepo) Get(ctx context.Context, id string) (*VocabRecord, error) {
	return r.first(ctx, entsql.EQ("id", id))
}

func (r *vocabRepo) FindByKey(ctx context.Context, key string) (*VocabRecord, error) {
	return r.first(ctx, entsql.EQ("key", key))
}

func (r *vocabRepo) first(ctx context.Context, p *entsql.Predicate) (*VocabRecord, error) {
	query, args := r.b.Select(vocabColumns...).
		From(r.b.Table(VocabularyTable.Name)).
		Where(p).
		Limit(1).
		Query()
	recs, err := r.query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, ErrNotFound
	}
	return &recs[0], nil
}

func (r *vocabRepo) List(ctx context.Context, opts QueryOpts) ([]VocabRecord, error) {
	sel := r.b.Select(vocabColumns...).
		From(r.b.Table(VocabularyTable.Name)).
		OrderBy(entsql.Desc("captured_at"), entsql.Asc("id"))
	var preds []*entsql.Predicate
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("captured_at", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("captured_at", opts.To.UTC()))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	query, args := sel.Query()
	return r.query(ctx, query, args)
}

func (r *vocabRepo) ListDue(ctx context.Context, now time.Time, masteredStage int) ([]VocabRecord, error) {
	query, args := r.b.Select(vocabColumns...).
		From(r.b.Table(VocabularyTable.Name)).
		Where(entsql.And(
			entsql.LTE("scheduled_at", now.UTC()),
			entsql.LT("stage", masteredStage),
		)).
		OrderBy(entsql.Asc("scheduled_at"), entsql.Asc("id")).
		Query()
	return r.query(ctx, query, args)
}

func (r *vocabRepo) RecordReview(ctx context.Context, id string, u ReviewUpdate, log ReviewLogData) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query, args := r.b.Update(VocabularyTable.Name).
		Set("stage", u.Stage).
		Set("scheduled_at", u.ScheduledAt.UTC()).
		Set("last_reviewed_at", u.LastReviewedAt.UTC()).
		Set("review_count", u.ReviewCount).
		Set("correct_count", u.CorrectCount).
		Where(entsql.And(
			entsql.EQ("id", id),
			entsql.EQ("stage", u.FromStage),
			entsql.EQ("review_count", u.FromReviewCount),
		)).
		Query()
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return r.missingOrConflict(ctx, tx, id)
	}

	if err := insertReviewLog(ctx, tx, r.b, log); err != nil {
		return err
	}
	return tx.Commit()
}

// missingOrConflict tells a deleted row from one another review already
// moved on.
func (r *vocabRepo) missingOrConflict(ctx context.Context, tx *sql.Tx, id string) error {
	query, args := r.b.Select(entsql.Count("*")).
		From(r.b.Table(VocabularyTable.Name)).
		Where(entsql.EQ("id", id)).
		Query()
	var n int
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return fmt.Errorf("check vocabulary: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrConflict
}

func (r *vocabRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query, args := r.b.Delete(ReviewLogsTable.Name).Where(entsql.EQ("entry_id", id)).Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete review logs: %w", err)
	}

	query, args = r.b.Delete(VocabularyTable.Name).Where(entsql.EQ("id", id)).Query()
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete vocabulary: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *vocabRepo) StageCounts(ctx context.Context) (map[int]int, error) {
	query, args := r.b.Select("stage", entsql.As(entsql.Count("*"), "n")).
		From(r.b.Table(VocabularyTable.Name)).
		GroupBy("stage").
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query stage counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var stage, n int
		if err := rows.Scan(&stage, &n); err != nil {
			return nil, fmt.Errorf("scan stage count: %w", err)
		}
		counts[stage] = n
	}
	return counts, rows.Err()
}

func (r *vocabRepo) Totals(ctx context.Context) (VocabTotals, error) {
	query, args := r.b.Select(
		entsql.As(entsql.Count("*"), "items"),
		entsql.As(entsql.Sum("review_count"), "reviews"),
		entsql.As(entsql.Sum("correct_count"), "correct"),
	).
		From(r.b.Table(VocabularyTable.Name)).
		Query()

	var (
		t                VocabTotals
		reviews, correct sql.NullInt64
	)
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&t.Items, &reviews, &correct); err != nil {
		return VocabTotals{}, fmt.Errorf("query totals: %w", err)
	}
	t.Reviews, t.Correct = int(reviews.Int64), int(correct.Int64)
	return t, nil
}

func (r *vocabRepo) query(ctx context.Context, query string, args []any) ([]VocabRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query vocabulary: %w", err)
	}
	defer rows.Close()

	var recs []VocabRecord
	for rows.Next() {
		var (
			rec  VocabRecord
			last sql.NullTime
		)
		err := rows.Scan(
			&rec.ID, &rec.Word, &rec.Key, &rec.Sentence, &rec.Translation, &rec.VideoID, &rec.VideoTitle,
			&rec.CapturedAt, &rec.Stage, &rec.ScheduledAt, &last,
			&rec.ReviewCount, &rec.CorrectCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan vocabulary: %w", err)
		}
		if last.Valid {
			t := last.Time
			rec.LastReviewedAt = &t
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
