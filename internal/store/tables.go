package store

import (
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/aistack/ent/schema"
)

const (
	gameEventsTable = "game_events"
	sequenceTable   = "global_sequence"
)

// Tables returns the migration tables derived from the ent schema
// definitions in ent/schema, plus the sequence table.
func Tables() ([]*schema.Table, error) {
	events, err := tableFromSchema(gameEventsTable, entschema.GameEvent{})
	if err != nil {
		return nil, err
	}

	seq := schema.NewTable(sequenceTable).
		AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt}).
		AddColumn(&schema.Column{Name: "next_val", Type: field.TypeInt64, Default: 1})

	return []*schema.Table{events, seq}, nil
}

// tableFromSchema builds a table with an auto-increment id followed by the
// mixin fields and the schema's own fields, in declaration order.
func tableFromSchema(name string, s ent.Interface) (*schema.Table, error) {
	t := schema.NewTable(name).
		AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt, Increment: true})

	var fields []ent.Field
	var indexes []ent.Index
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("%s.%s: %w", name, d.Name, d.Err)
		}
		col := &schema.Column{
			Name:     columnName(d),
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Nullable: d.Optional,
			Size:     int64(d.Size),
			Comment:  d.Comment,
		}
		switch v := d.Default.(type) {
		case string, bool, int, int64, float64:
			col.Default = v
		}
		for _, e := range d.Enums {
			col.Enums = append(col.Enums, e.V)
		}
		t.AddColumn(col)
	}

	for _, idx := range indexes {
		d := idx.Descriptor()
		t.AddIndex(fmt.Sprintf("%s_%s", strings.ReplaceAll(name, "_", ""), strings.Join(d.Fields, "_")), d.Unique, d.Fields)
	}
	return t, nil
}

func columnName(d *field.Descriptor) string {
	if d.StorageKey != "" {
		return d.StorageKey
	}
	return d.Name
}
