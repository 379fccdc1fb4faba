// Package domain defines the MCP tool schemas and handlers for the narrator
// engine: processing and validating narrator text, rolling dice, and reading
// or writing character sheets.
package domain

import (
	"fmt"

	"github.com/kopertop/ai-dnd-expo-sub004/internal/dice"
	"github.com/kopertop/ai-dnd-expo-sub004/internal/game"
)

// RollerFactory produces a dice roller for one tool invocation.
type RollerFactory func() (*dice.Roller, error)

// NewRollerFactory builds a roller factory over a seed source. Each
// invocation gets a fresh roller so concurrent tool calls never share a
// random stream.
func NewRollerFactory(seedFunc func() (int64, error)) RollerFactory {
	return func() (*dice.Roller, error) {
		seed, err := seedFunc()
		if err != nil {
			return nil, fmt.Errorf("generate dice seed: %w", err)
		}
		return dice.NewRoller(seed), nil
	}
}

// FixedRollerFactory builds a factory that always seeds rollers with the
// provided value. Useful for reproducible sessions and tests.
func FixedRollerFactory(seed int64) RollerFactory {
	return func() (*dice.Roller, error) {
		return dice.NewRoller(seed), nil
	}
}

// CharacterResult is the MCP-facing view of a character sheet.
type CharacterResult struct {
	ID              string         `json:"id" jsonschema:"character identifier"`
	Name            string         `json:"name" jsonschema:"character name"`
	Health          int            `json:"health" jsonschema:"current health points"`
	MaxHealth       int            `json:"max_health" jsonschema:"maximum health points"`
	ActionPoints    int            `json:"action_points" jsonschema:"current action points"`
	MaxActionPoints int            `json:"max_action_points" jsonschema:"maximum action points"`
	Stats           map[string]int `json:"stats" jsonschema:"ability scores keyed by str/dex/con/int/wis/cha"`
}

// RollResult is the MCP-facing view of a dice roll outcome.
type RollResult struct {
	Notation string `json:"notation" jsonschema:"canonical dice notation that was rolled"`
	Rolls    []int  `json:"rolls" jsonschema:"individual die results"`
	Modifier int    `json:"modifier" jsonschema:"flat modifier applied to the sum"`
	Total    int    `json:"total" jsonschema:"final total including modifier"`
}

func characterResult(sheet game.CharacterSheet) CharacterResult {
	result := CharacterResult{
		ID:              sheet.ID,
		Name:            sheet.Name,
		Health:          sheet.Health,
		MaxHealth:       sheet.MaxHealth,
		ActionPoints:    sheet.ActionPoints,
		MaxActionPoints: sheet.MaxActionPoints,
		Stats:           map[string]int{},
	}
	for _, key := range game.StatKeys {
		result.Stats[string(key)] = sheet.Stat(key)
	}
	return result
}

func rollResult(outcome dice.Outcome) RollResult {
	return RollResult{
		Notation: outcome.Notation,
		Rolls:    outcome.Rolls,
		Modifier: outcome.Modifier,
		Total:    outcome.Total,
	}
}
