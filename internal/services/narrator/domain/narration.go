package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	apperrors "github.com/kopertop/ai-dnd-expo-sub004/internal/errors"
	"github.com/kopertop/ai-dnd-expo-sub004/internal/executor"
	"github.com/kopertop/ai-dnd-expo-sub004/internal/game"
	"github.com/kopertop/ai-dnd-expo-sub004/internal/processor"
	"github.com/kopertop/ai-dnd-expo-sub004/internal/storage"
)

// ProcessNarrationInput represents the MCP tool input for processing narrator text.
type ProcessNarrationInput struct {
	Text        string `json:"text" jsonschema:"narrator text containing inline [TYPE:PARAMS] commands"`
	CharacterID string `json:"character_id,omitempty" jsonschema:"character to apply state changes to; omit for stateless processing"`
	Locale      string `json:"locale,omitempty" jsonschema:"BCP 47 locale for error messages (defaults to en-US)"`
}

// CommandOutcome represents the result of one executed command.
type CommandOutcome struct {
	Kind    string      `json:"kind" jsonschema:"command kind (roll, update, damage, heal, status, inventory)"`
	Raw     string      `json:"raw" jsonschema:"raw command parameters as extracted"`
	Success bool        `json:"success" jsonschema:"whether the command executed"`
	Message string      `json:"message,omitempty" jsonschema:"player-facing result or error message"`
	Roll    *RollResult `json:"roll,omitempty" jsonschema:"dice outcome when the command rolled dice"`
	Value   int         `json:"value,omitempty" jsonschema:"primary numeric result (total, clamped value, actual damage or healing)"`
}

// ProcessNarrationResult represents the MCP tool output for processing narrator text.
type ProcessNarrationResult struct {
	CleanText string           `json:"clean_text" jsonschema:"display text with every command token stripped"`
	Success   bool             `json:"success" jsonschema:"false when any command failed"`
	Messages  []string         `json:"messages,omitempty" jsonschema:"per-command messages in extraction order"`
	Outcomes  []CommandOutcome `json:"outcomes,omitempty" jsonschema:"per-command outcomes in extraction order"`
	Character *CharacterResult `json:"character,omitempty" jsonschema:"updated character sheet when a character was addressed"`
}

// ProcessNarrationTool defines the MCP tool schema for processing narrator text.
func ProcessNarrationTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "process_narration",
		Description: "Extracts, validates and executes inline [TYPE:PARAMS] commands from narrator text, applies the resulting state changes to the character, and returns the cleaned display text with per-command outcomes.",
	}
}

// ProcessNarrationHandler executes a narration processing request.
func ProcessNarrationHandler(store storage.CharacterStore, newRoller RollerFactory) mcp.ToolHandlerFor[ProcessNarrationInput, ProcessNarrationResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ProcessNarrationInput) (*mcp.CallToolResult, ProcessNarrationResult, error) {
		if input.Text == "" {
			return nil, ProcessNarrationResult{}, fmt.Errorf("text is required")
		}

		var sheet *game.CharacterSheet
		if input.CharacterID != "" {
			loaded, err := store.Get(ctx, input.CharacterID)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return nil, ProcessNarrationResult{}, fmt.Errorf("character %q not found", input.CharacterID)
				}
				return nil, ProcessNarrationResult{}, fmt.Errorf("load character: %w", err)
			}
			sheet = &loaded
		}

		roller, err := newRoller()
		if err != nil {
			return nil, ProcessNarrationResult{}, err
		}

		cleanText, result := processor.New(roller).ProcessResponse(ctx, input.Text, executor.Context{
			Character: sheet,
			World:     game.NewWorldState(),
		})

		output := ProcessNarrationResult{
			CleanText: cleanText,
			Success:   result.Success,
			Messages:  result.Messages,
		}
		for _, outcome := range result.Outcomes {
			entry := CommandOutcome{
				Kind:    outcome.Kind.String(),
				Raw:     outcome.Raw,
				Success: outcome.Success,
				Message: outcome.Message,
				Value:   outcome.Value,
			}
			if outcome.Err != nil {
				entry.Message = apperrors.UserMessage(outcome.Err, input.Locale)
			}
			if outcome.Roll != nil {
				roll := rollResult(*outcome.Roll)
				entry.Roll = &roll
			}
			output.Outcomes = append(output.Outcomes, entry)
		}

		if sheet != nil {
			updated := *sheet
			if !result.Delta.IsZero() {
				updated, err = store.ApplyDelta(ctx, input.CharacterID, result.Delta)
				if err != nil {
					return nil, ProcessNarrationResult{}, fmt.Errorf("commit character changes: %w", err)
				}
			}
			character := characterResult(updated)
			output.Character = &character
		}

		return nil, output, nil
	}
}

// ValidateNarrationInput represents the MCP tool input for validating narrator text.
type ValidateNarrationInput struct {
	Text   string `json:"text" jsonschema:"narrator text containing inline [TYPE:PARAMS] commands"`
	Locale string `json:"locale,omitempty" jsonschema:"BCP 47 locale for error messages (defaults to en-US)"`
}

// ValidatedCommand represents the grammar-check result for one extracted command.
type ValidatedCommand struct {
	Kind   string `json:"kind" jsonschema:"command kind (roll, update, damage, heal, status, inventory)"`
	Params string `json:"params" jsonschema:"raw command parameters as extracted"`
	Valid  bool   `json:"valid" jsonschema:"whether the command parses"`
	Error  string `json:"error,omitempty" jsonschema:"grammar error message when invalid"`
}

// ValidateNarrationResult represents the MCP tool output for validating narrator text.
type ValidateNarrationResult struct {
	Valid     bool               `json:"valid" jsonschema:"true when every extracted command parses"`
	CleanText string             `json:"clean_text" jsonschema:"display text with every command token stripped"`
	Commands  []ValidatedCommand `json:"commands,omitempty" jsonschema:"per-command grammar results in extraction order"`
}

// ValidateNarrationTool defines the MCP tool schema for validating narrator text.
func ValidateNarrationTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "validate_narration",
		Description: "Extracts and grammar-checks inline commands from narrator text without executing anything or touching game state. Uses the exact grammar execution uses.",
	}
}

// ValidateNarrationHandler executes a narration validation request.
func ValidateNarrationHandler() mcp.ToolHandlerFor[ValidateNarrationInput, ValidateNarrationResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ValidateNarrationInput) (*mcp.CallToolResult, ValidateNarrationResult, error) {
		if input.Text == "" {
			return nil, ValidateNarrationResult{}, fmt.Errorf("text is required")
		}

		validation := processor.ValidateText(input.Text)

		output := ValidateNarrationResult{
			Valid:     validation.Valid,
			CleanText: validation.CleanText,
		}
		for _, entry := range validation.Commands {
			validated := ValidatedCommand{
				Kind:   entry.Raw.Kind.String(),
				Params: entry.Raw.Params,
				Valid:  entry.Err == nil,
			}
			if entry.Err != nil {
				validated.Error = apperrors.UserMessage(entry.Err, input.Locale)
			}
			output.Commands = append(output.Commands, validated)
		}

		return nil, output, nil
	}
}
