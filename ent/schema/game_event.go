package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// GameEvent records what happened during one matching-game session.
type GameEvent struct {
	ent.Schema
}

func (GameEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (GameEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID of the game session"),
		field.Enum("kind").
			Values("start", "attempt", "complete", "abandon").
			Comment("Lifecycle step or placement attempt"),
		field.String("category").
			Comment("Outcome category the session was built for"),
		field.String("slot_id").
			Default("").
			Comment("Drop target (attempt only)"),
		field.String("option_id").
			Default("").
			Comment("Option that was dropped (attempt only)"),
		field.String("outcome").
			Default("").
			Comment("placed, rejected or ignored (attempt only)"),
		field.String("input").
			Default("").
			Comment("tap, drag or touch (attempt only)"),
		field.Int("filled").
			Default(0).
			Comment("Slots filled after the event"),
		field.Int("total").
			Default(0).
			Comment("Slots in the assignment"),
	}
}

func (GameEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("category", "kind"),
	}
}
