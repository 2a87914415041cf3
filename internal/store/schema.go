package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// VocabularyColumns holds the columns for the "vocabulary" table.
	VocabularyColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "word", Type: field.TypeString},
		{Name: "key", Type: field.TypeString},
		{Name: "sentence", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "translation", Type: field.TypeString, Default: ""},
		{Name: "video_id", Type: field.TypeString, Default: ""},
		{Name: "video_title", Type: field.TypeString, Default: ""},
		{Name: "captured_at", Type: field.TypeTime},
		{Name: "stage", Type: field.TypeInt, Default: 0},
		{Name: "scheduled_at", Type: field.TypeTime},
		{Name: "last_reviewed_at", Type: field.TypeTime, Nullable: true},
		{Name: "review_count", Type: field.TypeInt, Default: 0},
		{Name: "correct_count", Type: field.TypeInt, Default: 0},
	}
	// VocabularyTable holds the schema information for the "vocabulary" table.
	VocabularyTable = &schema.Table{
		Name:       "vocabulary",
		Columns:    VocabularyColumns,
		PrimaryKey: []*schema.Column{VocabularyColumns[0]},
		Indexes: []*schema.Index{
			{Name: "vocabulary_key", Unique: true, Columns: []*schema.Column{VocabularyColumns[2]}},
			{Name: "vocabulary_scheduled_at", Unique: false, Columns: []*schema.Column{VocabularyColumns[9]}},
		},
	}

	// ReviewLogsColumns holds the columns for the "review_logs" table.
	ReviewLogsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "entry_id", Type: field.TypeString},
		{Name: "answer", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "correct", Type: field.TypeBool},
		{Name: "late", Type: field.TypeBool, Default: false},
		{Name: "strategy", Type: field.TypeString, Default: ""},
		{Name: "score", Type: field.TypeFloat64, Default: 0},
		{Name: "from_stage", Type: field.TypeInt},
		{Name: "to_stage", Type: field.TypeInt},
		{Name: "reviewed_at", Type: field.TypeTime},
	}
	// ReviewLogsTable holds the schema information for the "review_logs" table.
	ReviewLogsTable = &schema.Table{
		Name:       "review_logs",
		Columns:    ReviewLogsColumns,
		PrimaryKey: []*schema.Column{ReviewLogsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "review_logs_vocabulary_reviews",
				Columns:    []*schema.Column{ReviewLogsColumns[1]},
				RefColumns: []*schema.Column{VocabularyColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "reviewlog_entry_id", Unique: false, Columns: []*schema.Column{ReviewLogsColumns[1]}},
		},
	}

	// LlmRequestsColumns holds the columns for the "llm_requests" table.
	LlmRequestsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "created_at", Type: field.TypeTime},
	}
	// LlmRequestsTable holds the schema information for the "llm_requests" table.
	LlmRequestsTable = &schema.Table{
		Name:       "llm_requests",
		Columns:    LlmRequestsColumns,
		PrimaryKey: []*schema.Column{LlmRequestsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequest_provider", Unique: false, Columns: []*schema.Column{LlmRequestsColumns[1]}},
			{Name: "llmrequest_purpose", Unique: false, Columns: []*schema.Column{LlmRequestsColumns[3]}},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		VocabularyTable,
		ReviewLogsTable,
		LlmRequestsTable,
	}
)

func init() {
	ReviewLogsTable.ForeignKeys[0].RefTable = VocabularyTable
}
