package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultFallbackDescription is shown for products without a description.
const DefaultFallbackDescription = "Detailed information about this solution is coming soon."

//go:embed catalog.yaml
var embeddedCatalog []byte

// Catalog is the static, read-only table of outcome categories, slots and
// options. All accessors return copies; a Catalog is safe for concurrent use.
type Catalog struct {
	categories   []Category
	byID         map[string]int
	descriptions map[string]string
	fallback     string
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return Load(embeddedCatalog)
})

// Default returns the catalog compiled into the binary.
// It panics if the embedded data is invalid.
func Default() *Catalog {
	c, err := defaultCatalog()
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// LoadFile reads and validates a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Load(data)
}

// Load parses and validates catalog YAML. Schema violations and structural
// problems are reported as *ValidationError.
func Load(data []byte) (*Catalog, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := validateStructure(doc); err != nil {
		return nil, err
	}

	c := &Catalog{
		categories:   doc.Categories,
		byID:         make(map[string]int, len(doc.Categories)),
		descriptions: doc.Descriptions,
		fallback:     doc.FallbackDescription,
	}
	if c.fallback == "" {
		c.fallback = DefaultFallbackDescription
	}
	for i := range c.categories {
		cat := &c.categories[i]
		for j := range cat.Options {
			cat.Options[j].Category = cat.ID
		}
		c.byID[cat.ID] = i
	}
	return c, nil
}

// Categories returns all categories in display order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = cloneCategory(cat)
	}
	return out
}

// Category looks up a category by id.
func (c *Catalog) Category(id string) (Category, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Category{}, false
	}
	return cloneCategory(c.categories[i]), true
}

// OptionsFor returns every option of the category. An unknown category
// yields nil.
func (c *Catalog) OptionsFor(category string) []Option {
	i, ok := c.byID[category]
	if !ok {
		return nil
	}
	return slices.Clone(c.categories[i].Options)
}

// SlotTemplatesFor returns the ordered slot templates of the category. An
// unknown category yields nil.
func (c *Catalog) SlotTemplatesFor(category string) []SlotTemplate {
	i, ok := c.byID[category]
	if !ok {
		return nil
	}
	return slices.Clone(c.categories[i].Slots)
}

// Describe returns the long description of a product label.
func (c *Catalog) Describe(label string) string {
	if d, ok := c.descriptions[label]; ok {
		return d
	}
	return c.fallback
}

func cloneCategory(cat Category) Category {
	cat.Slots = slices.Clone(cat.Slots)
	cat.Options = slices.Clone(cat.Options)
	return cat
}
