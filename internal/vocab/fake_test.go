package vocab

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/abhisek/clipvocab/internal/store"
)

// memRepo is an in-memory VocabRepo and ReviewLogRepo for tests.
type memRepo struct {
	mu   sync.Mutex
	recs map[string]store.VocabRecord
	logs []store.ReviewLogRecord

	// logErr makes RecordReview fail as if the log insert had.
	logErr error
}

func newMemRepo() *memRepo {
	return &memRepo{recs: make(map[string]store.VocabRecord)}
}

func (m *memRepo) Create(_ context.Context, rec *store.VocabRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.recs {
		if r.Key == rec.Key {
			return fmt.Errorf("save vocabulary %q: %w", rec.Key, store.ErrDuplicate)
		}
	}
	m.recs[rec.ID] = *rec
	return nil
}

func (m *memRepo) Get(_ context.Context, id string) (*store.VocabRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &r, nil
}

func (m *memRepo) FindByKey(_ context.Context, key string) (*store.VocabRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.recs {
		if r.Key == key {
			return &r, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memRepo) List(_ context.Context, opts store.QueryOpts) ([]store.VocabRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []store.VocabRecord
	for _, r := range m.recs {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CapturedAt.Equal(out[j].CapturedAt) {
			return out[i].CapturedAt.After(out[j].CapturedAt)
		}
		return out[i].ID < out[j].ID
	})
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (m *memRepo) ListDue(_ context.Context, now time.Time, masteredStage int) ([]store.VocabRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []store.VocabRecord
	for _, r := range m.recs {
		if !r.ScheduledAt.After(now) && r.Stage < masteredStage {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRepo) RecordReview(_ context.Context, id string, u store.ReviewUpdate, log store.ReviewLogData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recs[id]
	if !ok {
		return store.ErrNotFound
	}
	if r.Stage != u.FromStage || r.ReviewCount != u.FromReviewCount {
		return store.ErrConflict
	}
	if m.logErr != nil {
		return m.logErr
	}
	last := u.LastReviewedAt
	r.Stage, r.ScheduledAt, r.LastReviewedAt = u.Stage, u.ScheduledAt, &last
	r.ReviewCount, r.CorrectCount = u.ReviewCount, u.CorrectCount
	m.recs[id] = r
	m.logs = append(m.logs, store.ReviewLogRecord{ID: int64(len(m.logs) + 1), ReviewLogData: log})
	return nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recs[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.recs, id)
	kept := m.logs[:0]
	for _, l := range m.logs {
		if l.EntryID != id {
			kept = append(kept, l)
		}
	}
	m.logs = kept
	return nil
}

func (m *memRepo) StageCounts(_ context.Context) (map[int]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[int]int)
	for _, r := range m.recs {
		counts[r.Stage]++
	}
	return counts, nil
}

func (m *memRepo) Totals(_ context.Context) (store.VocabTotals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var t store.VocabTotals
	for _, r := range m.recs {
		t.Items++
		t.Reviews += r.ReviewCount
		t.Correct += r.CorrectCount
	}
	return t, nil
}

func (m *memRepo) Append(_ context.Context, data store.ReviewLogData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, store.ReviewLogRecord{ID: int64(len(m.logs) + 1), ReviewLogData: data})
	return nil
}

func (m *memRepo) ListByEntry(_ context.Context, entryID string, _ store.QueryOpts) ([]store.ReviewLogRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []store.ReviewLogRecord
	for _, l := range m.logs {
		if l.EntryID == entryID {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeTranslator struct {
	calls int
	err   error
}

func (f *fakeTranslator) Translate(_ context.Context, text, target string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return text + "@" + target, nil
}

type fakeVideos struct {
	sentence string
	title    string
	err      error
}

func (f *fakeVideos) FindSentence(_ context.Context, _, _ string) (string, error) {
	return f.sentence, f.err
}

func (f *fakeVideos) Title(_ context.Context, _ string) (string, error) {
	return f.title, f.err
}
