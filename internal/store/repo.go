package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a row changed between read and write.
	ErrConflict = errors.New("row changed concurrently")

	// ErrDuplicate is returned when an insert violates a unique index.
	ErrDuplicate = errors.New("duplicate row")
)

// QueryOpts configures list queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	From  time.Time // timestamp >= From
	To    time.Time // timestamp <= To
}

// VocabRecord is one captured vocabulary item together with its review
// schedule.
type VocabRecord struct {
	ID          string
	Word        string
	Key         string
	Sentence    string
	Translation string
	VideoID     string
	VideoTitle  string
	CapturedAt  time.Time

	Stage          int
	ScheduledAt    time.Time
	LastReviewedAt *time.Time
	ReviewCount    int
	CorrectCount   int
}

// ReviewUpdate carries the review fields written back after an attempt.
// FromStage and FromReviewCount are the values the attempt was graded
// against; the write only applies while the row still holds them.
type ReviewUpdate struct {
	FromStage       int
	FromReviewCount int

	Stage          int
	ScheduledAt    time.Time
	LastReviewedAt time.Time
	ReviewCount    int
	CorrectCount   int
}

// VocabTotals holds lifetime review counters summed over all items.
type VocabTotals struct {
	Items   int
	Reviews int
	Correct int
}

// VocabRepo manages captured vocabulary.
type VocabRepo interface {
	// Create inserts a new record. The ID must be set by the caller. A key
	// that is already taken returns ErrDuplicate.
	Create(ctx context.Context, rec *VocabRecord) error

	// Get returns the record with id, or ErrNotFound.
	Get(ctx context.Context, id string) (*VocabRecord, error)

	// FindByKey returns the record with the given headword key, or ErrNotFound.
	FindByKey(ctx context.Context, key string) (*VocabRecord, error)

	// List returns records newest first, honoring opts on captured_at.
	List(ctx context.Context, opts QueryOpts) ([]VocabRecord, error)

	// ListDue returns unmastered records scheduled at or before now.
	ListDue(ctx context.Context, now time.Time, masteredStage int) ([]VocabRecord, error)

	// RecordReview writes the review fields of id and appends log in one
	// transaction. It returns ErrNotFound for a missing id and ErrConflict
	// when the row no longer matches u.FromStage and u.FromReviewCount.
	RecordReview(ctx context.Context, id string, u ReviewUpdate, log ReviewLogData) error

	// Delete removes id and its review logs.
	Delete(ctx context.Context, id string) error

	// StageCounts returns the number of records per stage.
	StageCounts(ctx context.Context) (map[int]int, error)

	// Totals sums the lifetime counters of all records.
	Totals(ctx context.Context) (VocabTotals, error)
}

// ReviewLogData captures one review attempt.
type ReviewLogData struct {
	EntryID    string    `json:"entry_id"`
	Answer     string    `json:"answer"`
	Correct    bool      `json:"correct"`
	Late       bool      `json:"late"`
	Strategy   string    `json:"strategy,omitempty"`
	Score      float64   `json:"score"`
	FromStage  int       `json:"from_stage"`
	ToStage    int       `json:"to_stage"`
	ReviewedAt time.Time `json:"reviewed_at"`
}

// ReviewLogRecord is a stored review attempt.
type ReviewLogRecord struct {
	ID int64 `json:"id"`
	ReviewLogData
}

// ReviewLogRepo is the append-only history of review attempts.
type ReviewLogRepo interface {
	Append(ctx context.Context, data ReviewLogData) error
	ListByEntry(ctx context.Context, entryID string, opts QueryOpts) ([]ReviewLogRecord, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestRecord is a stored LLM request event.
type LLMRequestRecord struct {
	ID        int64
	CreatedAt time.Time
	LLMRequestEventData
}

// LLMEventRepo records LLM API calls for cost tracking and debugging.
type LLMEventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestRecord, error)
}
