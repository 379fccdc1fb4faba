package game

// WorldSchemaVersion identifies the world-state schema. Bump when fields are
// added or change meaning so producers and consumers never drift silently.
const WorldSchemaVersion = 1

// TimeOfDay is the coarse in-game clock.
type TimeOfDay string

const (
	TimeDawn  TimeOfDay = "dawn"
	TimeDay   TimeOfDay = "day"
	TimeDusk  TimeOfDay = "dusk"
	TimeNight TimeOfDay = "night"
)

// WorldState is the game-state half of an execution context: an enumerated,
// typed key space instead of a free-form map.
type WorldState struct {
	SchemaVersion int
	Location      string
	TimeOfDay     TimeOfDay
	InCombat      bool
	Flags         map[string]bool
}

// NewWorldState returns an empty world state at the current schema version.
func NewWorldState() *WorldState {
	return &WorldState{
		SchemaVersion: WorldSchemaVersion,
		TimeOfDay:     TimeDay,
		Flags:         map[string]bool{},
	}
}
