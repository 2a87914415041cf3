package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ReviewLog records one graded review attempt.
type ReviewLog struct {
	ent.Schema
}

func (ReviewLog) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (ReviewLog) Fields() []ent.Field {
	return []ent.Field{
		field.String("entry_id"),
		field.Text("answer").
			Default(""),
		field.Bool("correct"),
		field.Bool("late").
			Default(false).
			Comment("Reviewed more than three whole days after it was due"),
		field.String("strategy").
			Default("").
			Comment("Grading strategy that accepted the answer"),
		field.Float("score").
			Default(0),
		field.Int("from_stage"),
		field.Int("to_stage"),
		field.Time("reviewed_at").
			Immutable(),
	}
}

func (ReviewLog) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("entry", Vocabulary.Type).
			Ref("reviews").
			Field("entry_id").
			Unique().
			Required(),
	}
}

func (ReviewLog) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("entry_id"),
	}
}
