package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecord(id, key string, scheduled time.Time) *VocabRecord {
	return &VocabRecord{
		ID:          id,
		Word:        key,
		Key:         key,
		Sentence:    "I " + key + " every day.",
		CapturedAt:  scheduled.Add(-24 * time.Hour),
		Stage:       0,
		ScheduledAt: scheduled,
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("mysql", "dsn")
	assert.Error(t, err)
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		require.NoError(t, err, "PRAGMA %s", tt.pragma)
		assert.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"vocabulary", "review_logs", "llm_requests"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestVocab_CreateGetFind(t *testing.T) {
	s := openTestStore(t)
	repo := s.Vocab()
	ctx := context.Background()

	scheduled := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	rec := testRecord("v1", "run", scheduled)
	rec.Translation = "correr"
	require.NoError(t, repo.Create(ctx, rec))

	got, err := repo.Get(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "run", got.Word)
	assert.Equal(t, "correr", got.Translation)
	assert.True(t, got.ScheduledAt.Equal(scheduled))
	assert.Nil(t, got.LastReviewedAt)

	byKey, err := repo.FindByKey(ctx, "run")
	require.NoError(t, err)
	assert.Equal(t, "v1", byKey.ID)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.FindByKey(ctx, "missing")
	assert.True(t, IsNotFound(err))
}

func TestVocab_DuplicateKeyRejected(t *testing.T) {
	s := openTestStore(t)
	repo := s.Vocab()
	ctx := context.Background()

	now := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, testRecord("v1", "run", now)))
	assert.ErrorIs(t, repo.Create(ctx, testRecord("v2", "run", now)), ErrDuplicate)
}

func TestVocab_ListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.Vocab()
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, key := range []string{"a", "b", "c"} {
		rec := testRecord(key, key, base)
		rec.CapturedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.Create(ctx, rec))
	}

	all, err := repo.List(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].ID)
	assert.Equal(t, "a", all[2].ID)

	limited, err := repo.List(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	from, err := repo.List(ctx, QueryOpts{From: base.Add(time.Hour)})
	require.NoError(t, err)
	assert.Len(t, from, 2)
}

func TestVocab_ListDue(t *testing.T) {
	s := openTestStore(t)
	repo := s.Vocab()
	ctx := context.Background()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, testRecord("past", "past", now.Add(-48*time.Hour))))
	require.NoError(t, repo.Create(ctx, testRecord("future", "future", now.Add(48*time.Hour))))
	mastered := testRecord("mastered", "mastered", now.Add(-72*time.Hour))
	mastered.Stage = 5
	require.NoError(t, repo.Create(ctx, mastered))

	due, err := repo.ListDue(ctx, now, 5)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "past", due[0].ID)
}

func TestVocab_RecordReview(t *testing.T) {
	s := openTestStore(t)
	repo := s.Vocab()
	ctx := context.Background()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, testRecord("v1", "run", now)))

	next := now.AddDate(0, 0, 3)
	err := repo.RecordReview(ctx, "v1", ReviewUpdate{
		Stage: 1, ScheduledAt: next, LastReviewedAt: now, ReviewCount: 1, CorrectCount: 1,
	}, ReviewLogData{EntryID: "v1", Answer: "run", Correct: true, ToStage: 1, ReviewedAt: now})
	require.NoError(t, err)

	got, err := repo.Get(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stage)
	assert.True(t, got.ScheduledAt.Equal(next))
	require.NotNil(t, got.LastReviewedAt)
	assert.True(t, got.LastReviewedAt.Equal(now))
	assert.Equal(t, 1, got.ReviewCount)
	assert.Equal(t, 1, got.CorrectCount)

	logs, err := s.ReviewLogs().ListByEntry(ctx, "v1", QueryOpts{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 1, logs[0].ToStage)

	err = repo.RecordReview(ctx, "missing", ReviewUpdate{ScheduledAt: now, LastReviewedAt: now}, ReviewLogData{EntryID: "missing", ReviewedAt: now})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVocab_RecordReviewStaleReadConflicts(t *testing.T) {
	s := openTestStore(t)
	repo := s.Vocab()
	ctx := context.Background()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, testRecord("v1", "run", now)))

	// Two attempts graded against the same stage 0 read.
	u := ReviewUpdate{Stage: 1, ScheduledAt: now.AddDate(0, 0, 3), LastReviewedAt: now, ReviewCount: 1, CorrectCount: 1}
	log := ReviewLogData{EntryID: "v1", Answer: "run", Correct: true, ToStage: 1, ReviewedAt: now}
	require.NoError(t, repo.RecordReview(ctx, "v1", u, log))
	assert.ErrorIs(t, repo.RecordReview(ctx, "v1", u, log), ErrConflict)

	got, err := repo.Get(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stage)
	assert.Equal(t, 1, got.ReviewCount)

	logs, err := s.ReviewLogs().ListByEntry(ctx, "v1", QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestVocab_RecordReviewRollsBackWhenLogFails(t *testing.T) {
	s := openTestStore(t)
	repo := s.Vocab()
	ctx := context.Background()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, testRecord("v1", "run", now)))
	_, err := s.DB().Exec("DROP TABLE review_logs")
	require.NoError(t, err)

	err = repo.RecordReview(ctx, "v1", ReviewUpdate{
		Stage: 1, ScheduledAt: now.AddDate(0, 0, 3), LastReviewedAt: now, ReviewCount: 1, CorrectCount: 1,
	}, ReviewLogData{EntryID: "v1", Answer: "run", Correct: true, ToStage: 1, ReviewedAt: now})
	require.Error(t, err)

	got, err := repo.Get(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stage)
	assert.Equal(t, 0, got.ReviewCount)
	assert.Nil(t, got.LastReviewedAt)
	assert.True(t, got.ScheduledAt.Equal(now))
}

func TestVocab_DeleteRemovesLogs(t *testing.T) {
	s := openTestStore(t)
	repo := s.Vocab()
	logs := s.ReviewLogs()
	ctx := context.Background()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, testRecord("v1", "run", now)))
	require.NoError(t, logs.Append(ctx, ReviewLogData{EntryID: "v1", Answer: "run", Correct: true, ToStage: 1, ReviewedAt: now}))

	require.NoError(t, repo.Delete(ctx, "v1"))

	_, err := repo.Get(ctx, "v1")
	assert.ErrorIs(t, err, ErrNotFound)

	remaining, err := logs.ListByEntry(ctx, "v1", QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, remaining)

	assert.ErrorIs(t, repo.Delete(ctx, "v1"), ErrNotFound)
}

func TestVocab_StageCountsAndTotals(t *testing.T) {
	s := openTestStore(t)
	repo := s.Vocab()
	ctx := context.Background()

	totals, err := repo.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, VocabTotals{}, totals)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, stage := range []int{0, 0, 2} {
		rec := testRecord(string(rune('a'+i)), string(rune('a'+i)), now)
		rec.Stage = stage
		rec.ReviewCount = 2
		rec.CorrectCount = i
		require.NoError(t, repo.Create(ctx, rec))
	}

	counts, err := repo.StageCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{0: 2, 2: 1}, counts)

	totals, err = repo.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, VocabTotals{Items: 3, Reviews: 6, Correct: 3}, totals)
}

func TestReviewLogs_AppendAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.Vocab().Create(ctx, testRecord("v1", "run", now)))

	repo := s.ReviewLogs()
	for i := 0; i < 3; i++ {
		err := repo.Append(ctx, ReviewLogData{
			EntryID:    "v1",
			Answer:     "answer",
			Correct:    i%2 == 0,
			Strategy:   "enhanced",
			Score:      0.9,
			FromStage:  i,
			ToStage:    i + 1,
			ReviewedAt: now.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	got, err := repo.ListByEntry(ctx, "v1", QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].Correct)
	assert.False(t, got[1].Correct)
	assert.Equal(t, 2, got[2].FromStage)
	assert.InDelta(t, 0.9, got[0].Score, 1e-9)

	limited, err := repo.ListByEntry(ctx, "v1", QueryOpts{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestLLMEvents_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.LLMEvents()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "m1", Purpose: "translate", InputTokens: 10, OutputTokens: 5, LatencyMs: 120, Success: true,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "openai", Model: "m2", Purpose: "translate", Success: false, ErrorMessage: "boom",
	}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "openai", events[0].Provider)
	assert.Equal(t, "boom", events[0].ErrorMessage)
	assert.True(t, events[1].Success)
	assert.Equal(t, 10, events[1].InputTokens)

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestDefaultDBPath_EnvOverride(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sub", "custom.db")
	t.Setenv("CLIPVOCAB_DB", p)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.DirExists(t, filepath.Dir(p))
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CLIPVOCAB_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "clipvocab", "clipvocab.db"), got)
}
