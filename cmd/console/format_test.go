package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwebster45206/survival-engine/pkg/state"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"buildFitness", "Build Fitness"},
		{"ZombiePlague", "Zombie Plague"},
		{"PREPARATION", "Preparation"},
		{"InitialDisaster", "Initial Disaster"},
		{"first_night", "First Night"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, label(tt.in))
		})
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "5:00", formatClock(300))
	assert.Equal(t, "0:09", formatClock(9))
}

func TestWriteSummary(t *testing.T) {
	gs := state.NewGameState()
	gs.Phase = state.PhaseSurvival
	gs.Disaster = state.DisasterZombiePlague
	gs.Day = 4
	gs.PreparednessScore = 35
	gs.Events = []string{"Sale at Local Store"}

	out := writeSummary(gs, 42)
	assert.Contains(t, out, "seed 42")
	assert.Contains(t, out, "Disaster: Zombie Plague")
	assert.Contains(t, out, "Day: 4")
	assert.Contains(t, out, "Preparedness: 35")
	assert.Contains(t, out, "- Sale at Local Store")
}

func TestWriteInventory_HidesEmptyStacksInSidebar(t *testing.T) {
	gs := state.NewGameState()
	gs.Resources = []state.Resource{
		{ID: "water", Name: "Water", Quantity: 0, Category: state.CategoryBasic, Location: "House"},
		{ID: "whistle", Name: "Whistle", Quantity: 1, Category: state.CategoryTools, Location: state.LocationOnPerson},
	}

	side := writeInventory(gs, false)
	assert.NotContains(t, side, "Water")
	assert.Contains(t, side, "Whistle x1")

	full := writeInventory(gs, true)
	assert.Contains(t, full, "Water x0 (House)")
	assert.Contains(t, full, "Whistle x1 (On Person)")
}
