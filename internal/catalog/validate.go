package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed catalog.schema.json
var schemaJSON []byte

const schemaURL = "schema://aistack/catalog.json"

// ValidationError describes why catalog data was rejected.
type ValidationError struct {
	Category string // empty for document-level problems
	Message  string
	Err      error
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Category == "" {
		return "invalid catalog: " + msg
	}
	return fmt.Sprintf("invalid catalog: category %q: %s", e.Category, msg)
}

func (e *ValidationError) Unwrap() error { return e.Err }

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("parse catalog schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(schemaURL)
})

func validateSchema(raw any) error {
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}
	if err := sch.Validate(raw); err != nil {
		return &ValidationError{Message: "schema validation failed", Err: err}
	}
	return nil
}

// validateStructure enforces the rules the schema cannot express.
func validateStructure(doc document) error {
	seenCategories := make(map[string]bool)
	seenOptions := make(map[string]string)

	for _, cat := range doc.Categories {
		if seenCategories[cat.ID] {
			return &ValidationError{Category: cat.ID, Message: "duplicate category id"}
		}
		seenCategories[cat.ID] = true

		slots := make(map[string]SlotTemplate, len(cat.Slots))
		for _, s := range cat.Slots {
			if _, dup := slots[s.ID]; dup {
				return &ValidationError{Category: cat.ID, Message: fmt.Sprintf("duplicate slot id %q", s.ID)}
			}
			slots[s.ID] = s
		}

		correct := make(map[string][]Option)
		distractors := make(map[string]int)
		for _, o := range cat.Options {
			if owner, dup := seenOptions[o.ID]; dup {
				return &ValidationError{Category: cat.ID, Message: fmt.Sprintf("option %q already defined in %q", o.ID, owner)}
			}
			seenOptions[o.ID] = cat.ID

			if _, ok := slots[o.Target]; !ok {
				return &ValidationError{Category: cat.ID, Message: fmt.Sprintf("option %q targets undeclared slot %q", o.ID, o.Target)}
			}
			if o.Correct {
				correct[o.Target] = append(correct[o.Target], o)
			} else {
				distractors[o.Target]++
			}
		}

		for _, s := range cat.Slots {
			n := len(correct[s.ID]) + distractors[s.ID]
			if n == 0 {
				// Slots without options are dropped when the game starts.
				continue
			}
			if len(correct[s.ID]) != 1 {
				return &ValidationError{Category: cat.ID, Message: fmt.Sprintf("slot %q has %d correct options, want 1", s.ID, len(correct[s.ID]))}
			}
			if distractors[s.ID] == 0 {
				return &ValidationError{Category: cat.ID, Message: fmt.Sprintf("slot %q has no distractors", s.ID)}
			}
			if got := correct[s.ID][0].Text; got != s.Accepted {
				return &ValidationError{Category: cat.ID, Message: fmt.Sprintf("slot %q accepts %q but its correct option is %q", s.ID, s.Accepted, got)}
			}
		}
	}
	return nil
}
