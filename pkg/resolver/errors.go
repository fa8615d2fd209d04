package resolver

import "errors"

var (
	ErrUnknownChoice      = errors.New("unknown choice")
	ErrNoScenario         = errors.New("no active scenario")
	ErrNoActiveEvent      = errors.New("no active event")
	ErrChoiceUnavailable  = errors.New("choice requirements not met")
	ErrWrongPhase         = errors.New("not allowed in the current phase")
	ErrRequirementsNotMet = errors.New("action requirements not met")
	ErrNotEnoughTime      = errors.New("not enough time remaining")
	ErrSkillMaxed         = errors.New("skill already at max level")
	ErrUnknownSkill       = errors.New("unknown skill")
	ErrNoDiscovery        = errors.New("no discovered item pending")
)
