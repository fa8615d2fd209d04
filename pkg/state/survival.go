package state

// Stage sequences survival content independently of the coarse Phase.
type Stage string

const (
	StageInitialDisaster    Stage = "InitialDisaster"
	StageAccessResources    Stage = "AccessResources"
	StageSurvivalChallenges Stage = "SurvivalChallenges"
	StageLongTermSurvival   Stage = "LongTermSurvival"
)

// Stages lists the survival stages in order.
var Stages = []Stage{StageInitialDisaster, StageAccessResources, StageSurvivalChallenges, StageLongTermSurvival}

// Next returns the stage after s. The last stage is terminal.
func (s Stage) Next() Stage {
	for i, st := range Stages {
		if st == s && i+1 < len(Stages) {
			return Stages[i+1]
		}
	}
	return s
}

// Choice is one branch of a disaster or survival scenario.
type Choice struct {
	ID                string   `json:"id"`
	Text              string   `json:"text"`
	Consequence       Effect   `json:"-"`
	RequiredSkills    []string `json:"required_skills,omitempty"`
	RequiredResources []string `json:"required_resources,omitempty"`
}

// Scenario is a single branching decision point.
type Scenario struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Choices     []Choice `json:"choices"`
}

// Choice looks up a choice by id.
func (s *Scenario) Choice(id string) (Choice, bool) {
	if s == nil {
		return Choice{}, false
	}
	for _, c := range s.Choices {
		if c.ID == id {
			return c, true
		}
	}
	return Choice{}, false
}

// Disaster is progressed linearly through InitialScenarios; OngoingEffects
// is applied once after the last one.
type Disaster struct {
	ID               string       `json:"id"`
	Type             DisasterType `json:"type"`
	Name             string       `json:"name"`
	Description      string       `json:"description"`
	InitialScenarios []Scenario   `json:"initial_scenarios"`
	OngoingEffects   Effect       `json:"-"`
}

// SurvivalPhaseState is the nested state used during DISASTER and SURVIVAL.
type SurvivalPhaseState struct {
	Stage           Stage        `json:"stage"`
	DisasterType    DisasterType `json:"disaster_type"`
	Disaster        *Disaster    `json:"disaster,omitempty"`
	ScenarioIndex   int          `json:"scenario_index"`
	CurrentScenario *Scenario    `json:"current_scenario,omitempty"`
	Day             int          `json:"day"`
	Location        string       `json:"location"`
}

// clone returns a shallow copy safe to modify at the top level.
func (sp *SurvivalPhaseState) clone() *SurvivalPhaseState {
	if sp == nil {
		return &SurvivalPhaseState{Stage: StageInitialDisaster, Day: 1}
	}
	c := *sp
	return &c
}
