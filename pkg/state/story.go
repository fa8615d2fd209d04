package state

// StoryStep is one node of the linear preparation story.
type StoryStep struct {
	Description string        `json:"description" yaml:"description"`
	Choices     []StoryChoice `json:"choices" yaml:"choices"`
}

// StoryChoice is a branch at a story step. Effects is optional.
type StoryChoice struct {
	ID      string       `json:"id" yaml:"id"`
	Text    string       `json:"text" yaml:"text"`
	Effects *FlatEffects `json:"effects,omitempty" yaml:"effects,omitempty"`
}

// FlatEffects is a declarative effect payload made of partial records.
// Deltas for ids already in state are relative; unknown ids are only added
// when the delta carries a full record.
type FlatEffects struct {
	Resources []ResourceDelta `json:"resources,omitempty" yaml:"resources,omitempty"`
	Skills    []SkillDelta    `json:"skills,omitempty" yaml:"skills,omitempty"`
}

// IsEmpty reports whether the payload changes nothing.
func (fe *FlatEffects) IsEmpty() bool {
	return fe == nil || (len(fe.Resources) == 0 && len(fe.Skills) == 0)
}

// ResourceDelta is a partial Resource. Quantity is a delta for existing
// resources and the starting quantity (default 1) for new ones.
type ResourceDelta struct {
	ID       string           `json:"id" yaml:"id"`
	Name     string           `json:"name,omitempty" yaml:"name,omitempty"`
	Quantity int              `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Category ResourceCategory `json:"category,omitempty" yaml:"category,omitempty"`
	Location string           `json:"location,omitempty" yaml:"location,omitempty"`
	Icon     string           `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// Complete reports whether the delta can stand in for a new Resource.
func (d ResourceDelta) Complete() bool {
	return d.Name != "" && d.Category != "" && d.Location != "" && d.Icon != ""
}

// Resource builds the full record for a complete delta.
func (d ResourceDelta) Resource() Resource {
	qty := d.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		qty = 0
	}
	return Resource{
		ID:       d.ID,
		Name:     d.Name,
		Quantity: qty,
		Category: d.Category,
		Location: d.Location,
		Icon:     d.Icon,
	}
}

// SkillDelta is a partial Skill. Level is a delta (default 1) for existing
// skills and the starting level for new ones.
type SkillDelta struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Level       int    `json:"level,omitempty" yaml:"level,omitempty"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	MaxLevel    int    `json:"max_level,omitempty" yaml:"max_level,omitempty"`
}

// DefaultSkillMaxLevel applies to skills added without an explicit cap.
const DefaultSkillMaxLevel = 5

// Complete reports whether the delta can stand in for a new Skill.
func (d SkillDelta) Complete() bool {
	return d.Name != "" && d.Icon != "" && d.Description != ""
}

// Skill builds the full record for a complete delta.
func (d SkillDelta) Skill() Skill {
	maxLevel := d.MaxLevel
	if maxLevel <= 0 {
		maxLevel = DefaultSkillMaxLevel
	}
	level := d.Level
	if level == 0 {
		level = 1
	}
	return Skill{
		ID:          d.ID,
		Name:        d.Name,
		Level:       ClampSkillLevel(level, maxLevel),
		Icon:        d.Icon,
		Description: d.Description,
		MaxLevel:    maxLevel,
	}
}

// ClampSkillLevel bounds level to [0, maxLevel].
func ClampSkillLevel(level, maxLevel int) int {
	if level < 0 {
		return 0
	}
	if maxLevel > 0 && level > maxLevel {
		return maxLevel
	}
	return level
}
