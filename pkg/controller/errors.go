package controller

import (
	"errors"

	"github.com/jwebster45206/survival-engine/pkg/resolver"
)

var (
	ErrUnknownAction            = errors.New("unknown action")
	ErrActionInProgress         = errors.New("an action is already in progress")
	ErrFreeActionUsed           = errors.New("free action already used this turn")
	ErrDisasterAlreadyTriggered = errors.New("disaster already triggered")
	ErrNotStarted               = errors.New("controller not started")

	ErrWrongPhase         = resolver.ErrWrongPhase
	ErrRequirementsNotMet = resolver.ErrRequirementsNotMet
	ErrNotEnoughTime      = resolver.ErrNotEnoughTime
	ErrChoiceUnavailable  = resolver.ErrChoiceUnavailable
)
