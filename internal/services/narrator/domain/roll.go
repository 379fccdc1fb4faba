package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kopertop/ai-dnd-expo-sub004/internal/dice"
	apperrors "github.com/kopertop/ai-dnd-expo-sub004/internal/errors"
)

// RollDiceInput represents the MCP tool input for rolling dice.
type RollDiceInput struct {
	Notation     string `json:"notation" jsonschema:"dice notation such as 1d20+5 or 3d6"`
	Advantage    bool   `json:"advantage,omitempty" jsonschema:"roll twice and keep the higher total"`
	Disadvantage bool   `json:"disadvantage,omitempty" jsonschema:"roll twice and keep the lower total"`
	Seed         *int64 `json:"seed,omitempty" jsonschema:"optional seed for a reproducible roll"`
	Locale       string `json:"locale,omitempty" jsonschema:"BCP 47 locale for error messages (defaults to en-US)"`
}

// RollDiceTool defines the MCP tool schema for rolling dice.
func RollDiceTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_dice",
		Description: "Rolls dice from standard notation (NdM+K), optionally with advantage or disadvantage. Die counts of 1-100 and sides of 2-1000 are accepted.",
	}
}

// RollDiceHandler executes a dice roll request.
func RollDiceHandler(newRoller RollerFactory) mcp.ToolHandlerFor[RollDiceInput, RollResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RollDiceInput) (*mcp.CallToolResult, RollResult, error) {
		if input.Advantage && input.Disadvantage {
			return nil, RollResult{}, fmt.Errorf("advantage and disadvantage are mutually exclusive")
		}

		expr, err := dice.ParseExpression(input.Notation)
		if err != nil {
			return nil, RollResult{}, fmt.Errorf("%s", apperrors.UserMessage(err, input.Locale))
		}

		roller, err := resolveRoller(newRoller, input.Seed)
		if err != nil {
			return nil, RollResult{}, err
		}

		var outcome dice.Outcome
		switch {
		case input.Advantage:
			outcome = roller.RollExpressionWithAdvantage(expr)
		case input.Disadvantage:
			outcome = roller.RollExpressionWithDisadvantage(expr)
		default:
			outcome = roller.RollExpression(expr)
		}

		return nil, rollResult(outcome), nil
	}
}

// RollAbilityScoreInput represents the MCP tool input for rolling an ability score.
type RollAbilityScoreInput struct {
	Seed *int64 `json:"seed,omitempty" jsonschema:"optional seed for a reproducible roll"`
}

// AbilityScoreResult represents the MCP tool output for an ability score roll.
type AbilityScoreResult struct {
	Rolls        []int `json:"rolls" jsonschema:"the four d6 results in roll order"`
	DroppedIndex int   `json:"dropped_index" jsonschema:"index of the dropped (lowest) die"`
	Dropped      int   `json:"dropped" jsonschema:"value of the dropped die"`
	Total        int   `json:"total" jsonschema:"sum of the three kept dice"`
}

// RollAbilityScoreTool defines the MCP tool schema for rolling an ability score.
func RollAbilityScoreTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_ability_score",
		Description: "Rolls 4d6 and drops the lowest die, the standard method for generating an ability score.",
	}
}

// RollAbilityScoreHandler executes an ability score roll request.
func RollAbilityScoreHandler(newRoller RollerFactory) mcp.ToolHandlerFor[RollAbilityScoreInput, AbilityScoreResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RollAbilityScoreInput) (*mcp.CallToolResult, AbilityScoreResult, error) {
		roller, err := resolveRoller(newRoller, input.Seed)
		if err != nil {
			return nil, AbilityScoreResult{}, err
		}

		score := roller.RollAbilityScore()
		return nil, AbilityScoreResult{
			Rolls:        score.Rolls[:],
			DroppedIndex: score.DroppedIndex,
			Dropped:      score.Dropped(),
			Total:        score.Total,
		}, nil
	}
}

func resolveRoller(newRoller RollerFactory, seed *int64) (*dice.Roller, error) {
	if seed != nil {
		return dice.NewRoller(*seed), nil
	}
	return newRoller()
}
