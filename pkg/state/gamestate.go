package state

import (
	"github.com/google/uuid"
)

// Phase is the coarse stage of a game session.
type Phase string

const (
	PhasePreparation Phase = "PREPARATION"
	PhaseDisaster    Phase = "DISASTER"
	PhaseSurvival    Phase = "SURVIVAL"
)

// ResourceCategory groups resources for display and for survival consumption.
type ResourceCategory string

const (
	CategoryBasic    ResourceCategory = "Basic"
	CategoryTools    ResourceCategory = "Tools"
	CategorySkills   ResourceCategory = "Skills"
	CategorySocial   ResourceCategory = "Social"
	CategoryPersonal ResourceCategory = "Personal"
)

// Categories lists every resource category in display order.
var Categories = []ResourceCategory{CategoryBasic, CategoryTools, CategorySkills, CategorySocial, CategoryPersonal}

// Valid reports whether c is one of the known categories.
func (c ResourceCategory) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// DisasterType identifies which disaster struck.
type DisasterType string

const (
	DisasterEarthquake   DisasterType = "Earthquake"
	DisasterFlood        DisasterType = "Flood"
	DisasterZombiePlague DisasterType = "ZombiePlague"
	DisasterWildfire     DisasterType = "Wildfire"
	DisasterHurricane    DisasterType = "Hurricane"
)

// DisasterTypes is the fixed enumeration the disaster timer picks from.
var DisasterTypes = []DisasterType{
	DisasterEarthquake,
	DisasterFlood,
	DisasterZombiePlague,
	DisasterWildfire,
	DisasterHurricane,
}

const (
	// LocationOnPerson is the only resource location that survives a disaster.
	LocationOnPerson = "On Person"

	// DefaultPreparationSeconds is the preparation countdown length.
	DefaultPreparationSeconds = 300

	// DefaultLocation is where a new character wakes up.
	DefaultLocation = "Home"

	MaxVital = 100
)

// Resource is an item or supply held by the character.
type Resource struct {
	ID       string           `json:"id" yaml:"id"`
	Name     string           `json:"name" yaml:"name"`
	Quantity int              `json:"quantity" yaml:"quantity"`
	Category ResourceCategory `json:"category" yaml:"category"`
	Location string           `json:"location" yaml:"location"` // free-form place tag, e.g. "House", "Car", "On Person"
	Icon     string           `json:"icon" yaml:"icon"`
	Level    *int             `json:"level,omitempty" yaml:"level,omitempty"`
}

// Skill is a learnable ability. Level is always within [0, MaxLevel].
type Skill struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Level        int      `json:"level" yaml:"level"`
	Icon         string   `json:"icon" yaml:"icon"`
	Description  string   `json:"description" yaml:"description"`
	Requirements []string `json:"requirements,omitempty" yaml:"requirements,omitempty"`
	Effects      []string `json:"effects,omitempty" yaml:"effects,omitempty"`
	MaxLevel     int      `json:"max_level" yaml:"max_level"`
}

// Effect is a pure state transformer. Effects must not mutate their input.
type Effect func(GameState) GameState

// GameAction is something the player can spend preparation time on.
// Not to be confused with the reducer's dispatch Action.
type GameAction struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Duration        int      `json:"duration"` // seconds
	Description     string   `json:"description"`
	Requirements    []string `json:"requirements,omitempty"` // resource or skill ids, optionally "skill:level"
	ImmediateEffect Effect   `json:"-"`
	LongTermEffect  string   `json:"long_term_effect,omitempty"`
	Consequences    string   `json:"consequences,omitempty"`
	IsFree          bool     `json:"is_free"`
	Icon            string   `json:"icon"`
	ScoreIncrease   int      `json:"score_increase"`
	MaxLevel        int      `json:"max_level,omitempty"` // caps skill-training actions; 0 means uncapped
	Skill           string   `json:"skill,omitempty"`     // skill trained by the action, checked against MaxLevel
	DiscoveryChance float64  `json:"discovery_chance,omitempty"`
}

// EventChoice is one response to a GameEvent.
type EventChoice struct {
	Text   string `json:"text"`
	Effect Effect `json:"-"`
}

// GameEvent surfaces at random during preparation.
type GameEvent struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
	Choices     []EventChoice `json:"choices"`
}

// GameState is the complete state of one game session. It is treated as an
// immutable value: every transition goes through Reduce and returns a new value.
type GameState struct {
	ID                uuid.UUID           `json:"id"`
	Phase             Phase               `json:"phase"`
	StoryStep         int                 `json:"story_step"`
	TimeRemaining     int                 `json:"time_remaining"` // seconds
	Resources         []Resource          `json:"resources"`
	Skills            []Skill             `json:"skills"`
	Character         Character           `json:"character"`
	CurrentAction     *GameAction         `json:"current_action,omitempty"`
	CurrentEvent      *GameEvent          `json:"current_event,omitempty"`
	Disaster          DisasterType        `json:"disaster,omitempty"`
	SurvivalPhase     *SurvivalPhaseState `json:"survival_phase,omitempty"`
	PreparednessScore int                 `json:"preparedness_score"`
	CurrentLocation   string              `json:"current_location"`
	Day               int                 `json:"day"`
	ItemsDiscovered   []Resource          `json:"items_discovered,omitempty"`
	FreeActionUsed    bool                `json:"free_action_used"` // reset on every story step advance
	Events            []string            `json:"events,omitempty"`
}

// NewGameState returns the session-start state. Resources and skills are empty
// until the starting inventory is generated.
func NewGameState() GameState {
	return GameState{
		ID:            uuid.New(),
		Phase:         PhasePreparation,
		TimeRemaining: DefaultPreparationSeconds,
		Resources:     []Resource{},
		Skills:        []Skill{},
		Character: Character{
			Skills:   map[string]int{},
			Supplies: map[string]int{},
			Health:   MaxVital,
			Morale:   MaxVital,
		},
		CurrentLocation: DefaultLocation,
		Day:             1,
	}
}

// Resource looks up a resource by id.
func (gs GameState) Resource(id string) (Resource, bool) {
	for _, r := range gs.Resources {
		if r.ID == id {
			return r, true
		}
	}
	return Resource{}, false
}

// Skill looks up a skill by id.
func (gs GameState) Skill(id string) (Skill, bool) {
	for _, s := range gs.Skills {
		if s.ID == id {
			return s, true
		}
	}
	return Skill{}, false
}

// HasResource reports whether the resource exists with a nonzero quantity.
func (gs GameState) HasResource(id string) bool {
	r, ok := gs.Resource(id)
	return ok && r.Quantity > 0
}

// HasSkill reports whether the skill is in the skill list, at any level.
func (gs GameState) HasSkill(id string) bool {
	_, ok := gs.Skill(id)
	return ok
}

// IsGameOver holds when every Basic resource is exhausted. It is derived on
// demand and never stored. A state with no Basic resources at all is over.
func (gs GameState) IsGameOver() bool {
	for _, r := range gs.Resources {
		if r.Category == CategoryBasic && r.Quantity > 0 {
			return false
		}
	}
	return true
}

// ResourcesByCategory groups resources for display, preserving list order.
func (gs GameState) ResourcesByCategory() map[ResourceCategory][]Resource {
	grouped := make(map[ResourceCategory][]Resource)
	for _, r := range gs.Resources {
		grouped[r.Category] = append(grouped[r.Category], r)
	}
	return grouped
}
