// Package game defines the character and world state the command engine reads
// and mutates through deltas.
package game

import "strings"

// Stat bounds for ability scores.
const (
	StatMin = 1
	StatMax = 30
)

// DefaultStatValue is assumed when a character sheet has no entry for a stat.
const DefaultStatValue = 10

// StatKey identifies one of the six ability scores.
type StatKey string

const (
	StatStrength     StatKey = "str"
	StatDexterity    StatKey = "dex"
	StatConstitution StatKey = "con"
	StatIntelligence StatKey = "int"
	StatWisdom       StatKey = "wis"
	StatCharisma     StatKey = "cha"
)

// StatKeys lists the six ability scores in canonical order.
var StatKeys = []StatKey{
	StatStrength,
	StatDexterity,
	StatConstitution,
	StatIntelligence,
	StatWisdom,
	StatCharisma,
}

// ParseStatKey parses a case-insensitive stat abbreviation.
func ParseStatKey(s string) (StatKey, bool) {
	key := StatKey(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range StatKeys {
		if key == known {
			return known, true
		}
	}
	return "", false
}

// CharacterSheet is one character snapshot the engine executes commands
// against. The engine never mutates a sheet directly; it emits Deltas and the
// owning store commits them.
type CharacterSheet struct {
	ID              string
	Name            string
	Health          int
	MaxHealth       int
	ActionPoints    int
	MaxActionPoints int
	Stats           map[StatKey]int
}

// Stat returns the character's value for the given stat, assuming the
// default when the sheet has no entry.
func (c CharacterSheet) Stat(key StatKey) int {
	if value, ok := c.Stats[key]; ok {
		return value
	}
	return DefaultStatValue
}

// Clone returns a deep copy of the sheet.
func (c CharacterSheet) Clone() CharacterSheet {
	out := c
	if c.Stats != nil {
		out.Stats = make(map[StatKey]int, len(c.Stats))
		for key, value := range c.Stats {
			out.Stats[key] = value
		}
	}
	return out
}
