package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog_Categories(t *testing.T) {
	c := Default()
	cats := c.Categories()
	require.Len(t, cats, 5)

	want := []string{"button-1", "button-2", "button-3", "button-4", "button-5"}
	for i, cat := range cats {
		assert.Equal(t, want[i], cat.ID)
		assert.NotEmpty(t, cat.Title)
		assert.NotEmpty(t, cat.Component.Name)
	}
}

func TestDefaultCatalog_OneCorrectPerSlot(t *testing.T) {
	c := Default()
	for _, cat := range c.Categories() {
		opts := c.OptionsFor(cat.ID)
		for _, tmpl := range c.SlotTemplatesFor(cat.ID) {
			var correct, distractors int
			for _, o := range opts {
				if o.Target != tmpl.ID {
					continue
				}
				assert.Equal(t, cat.ID, o.Category, "option %s", o.ID)
				if o.Correct {
					correct++
					assert.Equal(t, tmpl.Accepted, o.Text, "%s/%s", cat.ID, tmpl.ID)
				} else {
					distractors++
				}
			}
			if correct+distractors == 0 {
				continue
			}
			assert.Equal(t, 1, correct, "%s/%s correct options", cat.ID, tmpl.ID)
			assert.Equal(t, 2, distractors, "%s/%s distractors", cat.ID, tmpl.ID)
		}
	}
}

func TestDefaultCatalog_Button2HasNoEdgeSlot(t *testing.T) {
	c := Default()
	for _, tmpl := range c.SlotTemplatesFor("button-2") {
		assert.NotEqual(t, "edge-deployment", tmpl.ID)
	}
	for _, o := range c.OptionsFor("button-2") {
		assert.NotEqual(t, "edge-deployment", o.Target)
	}
}

func TestUnknownCategory(t *testing.T) {
	c := Default()
	assert.Empty(t, c.OptionsFor("button-99"))
	assert.Empty(t, c.SlotTemplatesFor("button-99"))
	_, ok := c.Category("button-99")
	assert.False(t, ok)
}

func TestAccessorsReturnCopies(t *testing.T) {
	c := Default()
	opts := c.OptionsFor("button-1")
	opts[0].Correct = !opts[0].Correct
	assert.NotEqual(t, opts[0].Correct, c.OptionsFor("button-1")[0].Correct)

	cat, ok := c.Category("button-1")
	require.True(t, ok)
	cat.Slots[0].Name = "changed"
	assert.Equal(t, "Hardware", c.SlotTemplatesFor("button-1")[0].Name)
}

func TestDescribe(t *testing.T) {
	c := Default()
	assert.Contains(t, c.Describe("PowerEdge XE-Series"), "edge servers")
	assert.Equal(t, DefaultFallbackDescription, c.Describe("Unknown Gadget"))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing categories",
			yaml: "descriptions: {}\n",
		},
		{
			name: "bad id",
			yaml: `
categories:
  - id: "Not An Id"
    title: T
    component: {id: c, name: C}
    slots: []
    options: []
`,
		},
		{
			name: "two correct options",
			yaml: `
categories:
  - id: c1
    title: T
    component: {id: c, name: C}
    slots:
      - {id: hardware, name: Hardware, accepted: A}
    options:
      - {id: o1, text: A, correct: true, target: hardware}
      - {id: o2, text: B, correct: true, target: hardware}
`,
		},
		{
			name: "accepted label mismatch",
			yaml: `
categories:
  - id: c1
    title: T
    component: {id: c, name: C}
    slots:
      - {id: hardware, name: Hardware, accepted: Z}
    options:
      - {id: o1, text: A, correct: true, target: hardware}
      - {id: o2, text: B, correct: false, target: hardware}
`,
		},
		{
			name: "undeclared target",
			yaml: `
categories:
  - id: c1
    title: T
    component: {id: c, name: C}
    slots:
      - {id: hardware, name: Hardware, accepted: A}
    options:
      - {id: o1, text: A, correct: true, target: hardware}
      - {id: o2, text: B, correct: false, target: security}
`,
		},
		{
			name: "duplicate option id",
			yaml: `
categories:
  - id: c1
    title: T
    component: {id: c, name: C}
    slots:
      - {id: hardware, name: Hardware, accepted: A}
    options:
      - {id: o1, text: A, correct: true, target: hardware}
      - {id: o1, text: B, correct: false, target: hardware}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.yaml))
			require.Error(t, err)
			var verr *ValidationError
			assert.True(t, errors.As(err, &verr), "want *ValidationError, got %T: %v", err, err)
		})
	}
}

func TestLoad_SlotWithoutOptionsIsAllowed(t *testing.T) {
	c, err := Load([]byte(`
categories:
  - id: c1
    title: T
    component: {id: c, name: C}
    slots:
      - {id: hardware, name: Hardware, accepted: A}
      - {id: edge-deployment, name: Edge, accepted: E}
    options:
      - {id: o1, text: A, correct: true, target: hardware}
      - {id: o2, text: B, correct: false, target: hardware}
`))
	require.NoError(t, err)
	assert.Len(t, c.SlotTemplatesFor("c1"), 2)
	assert.Equal(t, DefaultFallbackDescription, c.Describe("A"))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, embeddedCatalog, 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, c.Categories(), 5)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
