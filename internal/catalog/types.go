package catalog

// Option is a candidate label offered for a slot. Each option targets exactly
// one slot and is either the correct answer or a distractor.
type Option struct {
	ID       string `yaml:"id"`
	Text     string `yaml:"text"`
	Correct  bool   `yaml:"correct"`
	Target   string `yaml:"target"`
	Category string `yaml:"-"`
}

// SlotTemplate describes a slot of an outcome category before options are
// attached to it.
type SlotTemplate struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Accepted string `yaml:"accepted"` // text of the one correct option
}

// Component is the stack component assembled for a category.
type Component struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Category is one of the business outcomes a visitor can choose.
type Category struct {
	ID        string         `yaml:"id"`
	Title     string         `yaml:"title"`
	Component Component      `yaml:"component"`
	Slots     []SlotTemplate `yaml:"slots"`
	Options   []Option       `yaml:"options"`
}

// document is the on-disk catalog layout.
type document struct {
	FallbackDescription string            `yaml:"fallback_description"`
	Categories          []Category        `yaml:"categories"`
	Descriptions        map[string]string `yaml:"descriptions"`
}
