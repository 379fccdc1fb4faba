// Package storage defines the persistence interfaces the engine's callers
// implement. The engine itself never persists anything; it returns deltas and
// a store commits them.
package storage

import (
	"context"

	apperrors "github.com/kopertop/ai-dnd-expo-sub004/internal/errors"
	"github.com/kopertop/ai-dnd-expo-sub004/internal/game"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// CharacterStore persists character sheets and commits character deltas.
type CharacterStore interface {
	Put(ctx context.Context, sheet game.CharacterSheet) error
	Get(ctx context.Context, id string) (game.CharacterSheet, error)
	// ApplyDelta merges a partial delta into the stored sheet atomically and
	// returns the updated sheet.
	ApplyDelta(ctx context.Context, id string, delta game.Delta) (game.CharacterSheet, error)
}
