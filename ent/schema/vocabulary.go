package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Vocabulary is a captured word or phrase and its review schedule.
type Vocabulary struct {
	ent.Schema
}

func (Vocabulary) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Immutable().
			Comment("UUID"),
		field.String("word").
			NotEmpty().
			Comment("Headword as the learner typed it"),
		field.String("key").
			Comment("Stemmed, lowercased headword used for duplicate detection"),
		field.Text("sentence").
			Default("").
			Comment("Sentence the word was heard in; the review reference"),
		field.String("translation").
			Default(""),
		field.String("video_id").
			Default(""),
		field.String("video_title").
			Default(""),
		field.Time("captured_at").
			Immutable(),
		field.Int("stage").
			Default(0).
			Comment("Review stage, 0 (new) to 5 (mastered)"),
		field.Time("scheduled_at").
			Comment("When the next review is due"),
		field.Time("last_reviewed_at").
			Optional().
			Nillable(),
		field.Int("review_count").
			Default(0),
		field.Int("correct_count").
			Default(0),
	}
}

func (Vocabulary) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("reviews", ReviewLog.Type),
	}
}

func (Vocabulary) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("key").Unique(),
		index.Fields("scheduled_at"),
	}
}
