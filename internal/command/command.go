// Package command extracts and parses narrator tool commands of the form
// [TYPE:PARAMS] embedded in free-form model output.
package command

import (
	"strings"

	"github.com/kopertop/ai-dnd-expo-sub004/internal/dice"
	"github.com/kopertop/ai-dnd-expo-sub004/internal/game"
)

// Kind identifies one of the six recognized command types. The set is closed;
// dispatch sites switch exhaustively over it.
type Kind int

const (
	KindUnspecified Kind = iota
	KindRoll
	KindUpdate
	KindDamage
	KindHeal
	KindStatus
	KindInventory
)

func (k Kind) String() string {
	switch k {
	case KindRoll:
		return "roll"
	case KindUpdate:
		return "update"
	case KindDamage:
		return "damage"
	case KindHeal:
		return "heal"
	case KindStatus:
		return "status"
	case KindInventory:
		return "inventory"
	default:
		return "unspecified"
	}
}

// KindFromString resolves a case-insensitive tag name to a Kind.
func KindFromString(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "roll":
		return KindRoll, true
	case "update":
		return KindUpdate, true
	case "damage":
		return KindDamage, true
	case "heal":
		return KindHeal, true
	case "status":
		return KindStatus, true
	case "inventory":
		return KindInventory, true
	default:
		return KindUnspecified, false
	}
}

// RawCommand is one extracted token before grammar parsing.
type RawCommand struct {
	Kind   Kind
	Params string
}

// UpdateTarget names the field an update command addresses.
type UpdateTarget int

const (
	TargetUnspecified UpdateTarget = iota
	TargetHP
	TargetMaxHP
	TargetAP
	TargetMaxAP
	TargetStat
)

func (t UpdateTarget) String() string {
	switch t {
	case TargetHP:
		return "hp"
	case TargetMaxHP:
		return "maxhp"
	case TargetAP:
		return "ap"
	case TargetMaxAP:
		return "maxap"
	case TargetStat:
		return "stat"
	default:
		return "unspecified"
	}
}

// UpdateOp is the arithmetic an update command applies.
type UpdateOp int

const (
	OpUnspecified UpdateOp = iota
	OpAdd
	OpSubtract
	OpSet
)

func (o UpdateOp) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpSet:
		return "set"
	default:
		return "unspecified"
	}
}

// RollParams is the payload of a parsed roll command.
type RollParams struct {
	Expr         dice.Expression
	Advantage    bool
	Disadvantage bool
	Purpose      string
}

// UpdateParams is the payload of a parsed stat-update command. Stat is set
// only when Target is TargetStat.
type UpdateParams struct {
	Target UpdateTarget
	Op     UpdateOp
	Value  int
	Stat   game.StatKey
}

// MagnitudeParams is the shared payload of damage and heal commands: either a
// literal non-negative amount or a dice expression, plus an optional tag such
// as "fire".
type MagnitudeParams struct {
	Literal int
	Expr    *dice.Expression
	Tag     string
}

// StatusParams is the payload of a parsed status command.
type StatusParams struct {
	Effect   string
	Duration *int
	Unit     string
}

// InventoryAction names the inventory operation.
type InventoryAction string

const (
	InventoryAdd     InventoryAction = "add"
	InventoryRemove  InventoryAction = "remove"
	InventoryEquip   InventoryAction = "equip"
	InventoryUnequip InventoryAction = "unequip"
)

// InventoryParams is the payload of a parsed inventory command.
type InventoryParams struct {
	Action   InventoryAction
	Item     string
	Quantity int
}

// Command is one fully parsed tool command. Exactly one payload pointer is
// set, matching Kind; Magnitude serves both damage and heal.
type Command struct {
	Kind Kind
	Raw  string

	Roll      *RollParams
	Update    *UpdateParams
	Magnitude *MagnitudeParams
	Status    *StatusParams
	Inventory *InventoryParams
}

// Parsed pairs a raw command with its parse result so batches can carry
// per-command grammar failures without aborting.
type Parsed struct {
	Raw RawCommand
	Cmd Command
	Err error
}
