package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kopertop/ai-dnd-expo-sub004/internal/game"
	"github.com/kopertop/ai-dnd-expo-sub004/internal/platform/random"
	"github.com/kopertop/ai-dnd-expo-sub004/internal/storage"
)

// CharacterCreateInput represents the MCP tool input for creating a character.
type CharacterCreateInput struct {
	ID              string         `json:"id,omitempty" jsonschema:"character identifier; generated when omitted"`
	Name            string         `json:"name" jsonschema:"character name"`
	MaxHealth       int            `json:"max_health" jsonschema:"maximum health points"`
	MaxActionPoints int            `json:"max_action_points" jsonschema:"maximum action points"`
	Stats           map[string]int `json:"stats,omitempty" jsonschema:"ability scores keyed by str/dex/con/int/wis/cha; missing keys default to 10"`
}

// CharacterCreateTool defines the MCP tool schema for creating a character.
func CharacterCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "character_create",
		Description: "Creates a character sheet with full health and action points. Ability scores outside 1-30 are rejected.",
	}
}

// CharacterCreateHandler executes a character creation request.
func CharacterCreateHandler(store storage.CharacterStore) mcp.ToolHandlerFor[CharacterCreateInput, CharacterResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CharacterCreateInput) (*mcp.CallToolResult, CharacterResult, error) {
		if input.Name == "" {
			return nil, CharacterResult{}, fmt.Errorf("name is required")
		}
		if input.MaxHealth < 1 {
			return nil, CharacterResult{}, fmt.Errorf("max_health must be at least 1")
		}
		if input.MaxActionPoints < 0 {
			return nil, CharacterResult{}, fmt.Errorf("max_action_points cannot be negative")
		}

		stats := map[game.StatKey]int{}
		for name, value := range input.Stats {
			key, ok := game.ParseStatKey(name)
			if !ok {
				return nil, CharacterResult{}, fmt.Errorf("stat %q is not one of str/dex/con/int/wis/cha", name)
			}
			if value < game.StatMin || value > game.StatMax {
				return nil, CharacterResult{}, fmt.Errorf("stat %q must be between %d and %d", name, game.StatMin, game.StatMax)
			}
			stats[key] = value
		}

		id := input.ID
		if id == "" {
			generated, err := random.NewID()
			if err != nil {
				return nil, CharacterResult{}, fmt.Errorf("generate character id: %w", err)
			}
			id = generated
		}

		sheet := game.CharacterSheet{
			ID:              id,
			Name:            input.Name,
			Health:          input.MaxHealth,
			MaxHealth:       input.MaxHealth,
			ActionPoints:    input.MaxActionPoints,
			MaxActionPoints: input.MaxActionPoints,
			Stats:           stats,
		}
		if err := store.Put(ctx, sheet); err != nil {
			return nil, CharacterResult{}, fmt.Errorf("save character: %w", err)
		}

		return nil, characterResult(sheet), nil
	}
}

// CharacterGetInput represents the MCP tool input for reading a character sheet.
type CharacterGetInput struct {
	CharacterID string `json:"character_id" jsonschema:"character identifier"`
}

// CharacterGetTool defines the MCP tool schema for reading a character sheet.
func CharacterGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "character_sheet_get",
		Description: "Reads a character sheet by identifier.",
	}
}

// CharacterGetHandler executes a character sheet read request.
func CharacterGetHandler(store storage.CharacterStore) mcp.ToolHandlerFor[CharacterGetInput, CharacterResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CharacterGetInput) (*mcp.CallToolResult, CharacterResult, error) {
		if input.CharacterID == "" {
			return nil, CharacterResult{}, fmt.Errorf("character_id is required")
		}

		sheet, err := store.Get(ctx, input.CharacterID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, CharacterResult{}, fmt.Errorf("character %q not found", input.CharacterID)
			}
			return nil, CharacterResult{}, fmt.Errorf("load character: %w", err)
		}

		return nil, characterResult(sheet), nil
	}
}
