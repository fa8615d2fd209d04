package state

// ActionType names a reducer transition.
type ActionType string

const (
	ActInitializeGame          ActionType = "INITIALIZE_GAME"
	ActUpdateResource          ActionType = "UPDATE_RESOURCE"
	ActAddResource             ActionType = "ADD_RESOURCE"
	ActRemoveResource          ActionType = "REMOVE_RESOURCE"
	ActUpdateSkill             ActionType = "UPDATE_SKILL"
	ActAddSkill                ActionType = "ADD_SKILL"
	ActPerformAction           ActionType = "PERFORM_ACTION"
	ActCompleteAction          ActionType = "COMPLETE_ACTION"
	ActUseFreeAction           ActionType = "USE_FREE_ACTION"
	ActTriggerEvent            ActionType = "TRIGGER_EVENT"
	ActResolveEvent            ActionType = "RESOLVE_EVENT"
	ActAddEvent                ActionType = "ADD_EVENT"
	ActNextStoryStep           ActionType = "NEXT_STORY_STEP"
	ActStartPreparationPhase   ActionType = "START_PREPARATION_PHASE"
	ActEndPreparationPhase     ActionType = "END_PREPARATION_PHASE"
	ActUpdateTime              ActionType = "UPDATE_TIME"
	ActTickCountdown           ActionType = "TICK_COUNTDOWN"
	ActStartDisaster           ActionType = "START_DISASTER"
	ActSetSurvivalPhase        ActionType = "SET_SURVIVAL_PHASE"
	ActSetScenario             ActionType = "SET_SCENARIO"
	ActSetStage                ActionType = "SET_STAGE"
	ActStartSurvivalPhase      ActionType = "START_SURVIVAL_PHASE"
	ActSurvivalTick            ActionType = "SURVIVAL_TICK"
	ActAdvanceDay              ActionType = "ADVANCE_DAY"
	ActChangeLocation          ActionType = "CHANGE_LOCATION"
	ActUpdateCharacter         ActionType = "UPDATE_CHARACTER"
	ActUpdatePreparednessScore ActionType = "UPDATE_PREPAREDNESS_SCORE"
	ActDiscoverItem            ActionType = "DISCOVER_ITEM"
	ActKeepItem                ActionType = "KEEP_ITEM"
	ActDiscardItem             ActionType = "DISCARD_ITEM"
	ActApplyEffect             ActionType = "APPLY_EFFECT"
)

// Action is a message accepted by Reduce. It is the only way to change a
// GameState.
type Action interface {
	Type() ActionType
}

// InitializeGame replaces the resource and skill lists.
type InitializeGame struct {
	Resources []Resource
	Skills    []Skill
}

type UpdateResource struct {
	ID       string
	Quantity int
}

// AddResource appends a resource, or adds to the quantity of an existing one.
type AddResource struct {
	Resource Resource
}

type RemoveResource struct {
	ID string
}

// UpdateSkill sets an absolute level. The reducer does not clamp it.
type UpdateSkill struct {
	ID    string
	Level int
}

type AddSkill struct {
	Skill Skill
}

// PerformAction starts a timed action and spends its duration.
type PerformAction struct {
	Action GameAction
}

// CompleteAction finishes the current action. Effect may be nil. When ID
// is set the action is dropped unless it names the current action.
type CompleteAction struct {
	ID            string
	ScoreIncrease int
	Effect        Effect
}

// UseFreeAction applies a free action instantly and marks the turn's free
// action as spent.
type UseFreeAction struct {
	Action GameAction
}

type TriggerEvent struct {
	Event GameEvent
}

// ResolveEvent applies the chosen event effect and clears the current event
// in the same transition.
type ResolveEvent struct {
	Effect Effect
}

// AddEvent appends an entry to the event log.
type AddEvent struct {
	Name string
}

type NextStoryStep struct{}

type StartPreparationPhase struct{}

type EndPreparationPhase struct{}

// UpdateTime sets the countdown, floored at zero.
type UpdateTime struct {
	Seconds int
}

// TickCountdown subtracts from the countdown, floored at zero.
type TickCountdown struct {
	Seconds int
}

// StartDisaster moves to the DISASTER phase. Only resources carried on
// person survive it and pending discoveries are lost.
type StartDisaster struct {
	Disaster DisasterType
}

type SetSurvivalPhase struct {
	Survival *SurvivalPhaseState
}

// SetScenario sets the active scenario. A nil Scenario clears it.
type SetScenario struct {
	Scenario *Scenario
	Index    int
}

type SetStage struct {
	Stage Stage
}

type StartSurvivalPhase struct{}

// SurvivalTick consumes one unit of every Basic resource and advances the day.
type SurvivalTick struct{}

type AdvanceDay struct{}

type ChangeLocation struct {
	Location string
}

// UpdateCharacter merges into the character. Nil fields are left alone.
type UpdateCharacter struct {
	Health   *int
	Morale   *int
	Skills   map[string]int
	Supplies map[string]int
}

type UpdatePreparednessScore struct {
	Score int
}

// DiscoverItem offers an item to the player.
type DiscoverItem struct {
	Item Resource
}

// KeepItem accepts a discovered item into the inventory.
type KeepItem struct {
	Item Resource
}

// DiscardItem drops the most recent discovery.
type DiscardItem struct{}

// ApplyEffect runs an arbitrary effect through the reducer.
type ApplyEffect struct {
	Effect Effect
}

func (InitializeGame) Type() ActionType          { return ActInitializeGame }
func (UpdateResource) Type() ActionType          { return ActUpdateResource }
func (AddResource) Type() ActionType             { return ActAddResource }
func (RemoveResource) Type() ActionType          { return ActRemoveResource }
func (UpdateSkill) Type() ActionType             { return ActUpdateSkill }
func (AddSkill) Type() ActionType                { return ActAddSkill }
func (PerformAction) Type() ActionType           { return ActPerformAction }
func (CompleteAction) Type() ActionType          { return ActCompleteAction }
func (UseFreeAction) Type() ActionType           { return ActUseFreeAction }
func (TriggerEvent) Type() ActionType            { return ActTriggerEvent }
func (ResolveEvent) Type() ActionType            { return ActResolveEvent }
func (AddEvent) Type() ActionType                { return ActAddEvent }
func (NextStoryStep) Type() ActionType           { return ActNextStoryStep }
func (StartPreparationPhase) Type() ActionType   { return ActStartPreparationPhase }
func (EndPreparationPhase) Type() ActionType     { return ActEndPreparationPhase }
func (UpdateTime) Type() ActionType              { return ActUpdateTime }
func (TickCountdown) Type() ActionType           { return ActTickCountdown }
func (StartDisaster) Type() ActionType           { return ActStartDisaster }
func (SetSurvivalPhase) Type() ActionType        { return ActSetSurvivalPhase }
func (SetScenario) Type() ActionType             { return ActSetScenario }
func (SetStage) Type() ActionType                { return ActSetStage }
func (StartSurvivalPhase) Type() ActionType      { return ActStartSurvivalPhase }
func (SurvivalTick) Type() ActionType            { return ActSurvivalTick }
func (AdvanceDay) Type() ActionType              { return ActAdvanceDay }
func (ChangeLocation) Type() ActionType          { return ActChangeLocation }
func (UpdateCharacter) Type() ActionType         { return ActUpdateCharacter }
func (UpdatePreparednessScore) Type() ActionType { return ActUpdatePreparednessScore }
func (DiscoverItem) Type() ActionType            { return ActDiscoverItem }
func (KeepItem) Type() ActionType                { return ActKeepItem }
func (DiscardItem) Type() ActionType             { return ActDiscardItem }
func (ApplyEffect) Type() ActionType             { return ActApplyEffect }
