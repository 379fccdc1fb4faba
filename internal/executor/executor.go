// Package executor applies parsed tool commands to a caller-owned game
// context, producing per-command outcomes and partial character deltas.
package executor

import (
	"fmt"

	"github.com/kopertop/ai-dnd-expo-sub004/internal/command"
	"github.com/kopertop/ai-dnd-expo-sub004/internal/dice"
	apperrors "github.com/kopertop/ai-dnd-expo-sub004/internal/errors"
	"github.com/kopertop/ai-dnd-expo-sub004/internal/game"
)

// ErrMissingCharacter indicates a state-mutating command without a character
// in the context.
var ErrMissingCharacter = apperrors.New(apperrors.CodeExecutionMissingCharacter, "no character is available for this command")

// Context is the read/write view the caller supplies for one batch: one
// character snapshot and one game-state snapshot. The executor only reads
// current values and emits deltas; committing them is the caller's job.
type Context struct {
	Character *game.CharacterSheet
	World     *game.WorldState
}

// Outcome is the result of executing a single command.
type Outcome struct {
	Kind    command.Kind
	Raw     string
	Success bool
	Message string
	Err     error
	Roll    *dice.Outcome
	Value   int
	Delta   game.Delta
}

// Result aggregates a batch: per-command outcomes in extraction order, the
// merged delta from every successful command, and an overall success flag
// that is false if any command failed.
type Result struct {
	Outcomes []Outcome
	Delta    game.Delta
	Success  bool
	Messages []string
}

// Executor resolves commands against game state, rolling dice through the
// injected roller.
type Executor struct {
	roller *dice.Roller
}

// New creates an executor over the provided roller.
func New(roller *dice.Roller) *Executor {
	return &Executor{roller: roller}
}

// Execute applies one parsed command to the context.
func (e *Executor) Execute(cmd command.Command, ctx Context) Outcome {
	switch cmd.Kind {
	case command.KindRoll:
		return e.executeRoll(cmd)
	case command.KindUpdate:
		return e.executeUpdate(cmd, ctx)
	case command.KindDamage:
		return e.executeDamage(cmd, ctx)
	case command.KindHeal:
		return e.executeHeal(cmd, ctx)
	case command.KindStatus:
		return executeStatus(cmd)
	case command.KindInventory:
		return executeInventory(cmd)
	default:
		return failure(cmd, apperrors.New(apperrors.CodeCommandUnknownKind, "command kind is not recognized"))
	}
}

// ExecuteBatch runs every command in extraction order. A grammar or execution
// failure is recorded as a failed outcome for that command only; the batch
// never stops early. Deltas from successful commands merge shallowly, with a
// later command's field write winning over an earlier one.
func (e *Executor) ExecuteBatch(parsed []command.Parsed, ctx Context) Result {
	result := Result{Success: true}

	for _, entry := range parsed {
		var outcome Outcome
		if entry.Err != nil {
			outcome = failure(entry.Cmd, entry.Err)
		} else {
			outcome = e.Execute(entry.Cmd, ctx)
		}

		result.Outcomes = append(result.Outcomes, outcome)
		if outcome.Success {
			result.Delta.Merge(outcome.Delta)
		} else {
			result.Success = false
		}
		if outcome.Message != "" {
			result.Messages = append(result.Messages, outcome.Message)
		}
	}

	return result
}

func (e *Executor) executeRoll(cmd command.Command) Outcome {
	params := cmd.Roll

	var roll dice.Outcome
	switch {
	case params.Advantage:
		roll = e.roller.RollExpressionWithAdvantage(params.Expr)
	case params.Disadvantage:
		roll = e.roller.RollExpressionWithDisadvantage(params.Expr)
	default:
		roll = e.roller.RollExpression(params.Expr)
	}

	message := fmt.Sprintf("Rolled %s: %d", roll.Notation, roll.Total)
	if params.Purpose != "" {
		message = fmt.Sprintf("Rolled %s for %s: %d", roll.Notation, params.Purpose, roll.Total)
	}

	return Outcome{
		Kind:    cmd.Kind,
		Raw:     cmd.Raw,
		Success: true,
		Message: message,
		Roll:    &roll,
		Value:   roll.Total,
	}
}

func (e *Executor) executeUpdate(cmd command.Command, ctx Context) Outcome {
	if ctx.Character == nil {
		return failure(cmd, ErrMissingCharacter)
	}
	params := cmd.Update
	sheet := ctx.Character

	var current, low, high int
	switch params.Target {
	case command.TargetHP:
		current, low, high = sheet.Health, 0, sheet.MaxHealth
	case command.TargetMaxHP:
		current, low, high = sheet.MaxHealth, 1, maxResource
	case command.TargetAP:
		current, low, high = sheet.ActionPoints, 0, sheet.MaxActionPoints
	case command.TargetMaxAP:
		current, low, high = sheet.MaxActionPoints, 0, maxResource
	case command.TargetStat:
		current, low, high = sheet.Stat(params.Stat), game.StatMin, game.StatMax
	default:
		return failure(cmd, apperrors.New(apperrors.CodeCommandInvalidUpdate, "update target is not recognized"))
	}

	applied := applyOp(current, params.Op, params.Value)
	clamped := clamp(applied, low, high)

	var delta game.Delta
	switch params.Target {
	case command.TargetHP:
		delta.Health = game.IntPtr(clamped)
	case command.TargetMaxHP:
		delta.MaxHealth = game.IntPtr(clamped)
	case command.TargetAP:
		delta.ActionPoints = game.IntPtr(clamped)
	case command.TargetMaxAP:
		delta.MaxActionPoints = game.IntPtr(clamped)
	case command.TargetStat:
		delta.Stats = map[game.StatKey]int{params.Stat: clamped}
	}

	label := params.Target.String()
	if params.Target == command.TargetStat {
		label = string(params.Stat)
	}

	return Outcome{
		Kind:    cmd.Kind,
		Raw:     cmd.Raw,
		Success: true,
		Message: fmt.Sprintf("%s is now %d", label, clamped),
		Value:   clamped,
		Delta:   delta,
	}
}

func (e *Executor) executeDamage(cmd command.Command, ctx Context) Outcome {
	if ctx.Character == nil {
		return failure(cmd, ErrMissingCharacter)
	}

	magnitude, roll := e.resolveMagnitude(cmd.Magnitude)

	// Conservation: never deal more damage than the character has health.
	current := ctx.Character.Health
	newHealth := current - magnitude
	if newHealth < 0 {
		newHealth = 0
	}
	actual := current - newHealth

	message := fmt.Sprintf("Took %d damage (%d HP remaining)", actual, newHealth)
	if cmd.Magnitude.Tag != "" {
		message = fmt.Sprintf("Took %d %s damage (%d HP remaining)", actual, cmd.Magnitude.Tag, newHealth)
	}

	return Outcome{
		Kind:    cmd.Kind,
		Raw:     cmd.Raw,
		Success: true,
		Message: message,
		Roll:    roll,
		Value:   actual,
		Delta:   game.Delta{Health: game.IntPtr(newHealth)},
	}
}

func (e *Executor) executeHeal(cmd command.Command, ctx Context) Outcome {
	if ctx.Character == nil {
		return failure(cmd, ErrMissingCharacter)
	}

	magnitude, roll := e.resolveMagnitude(cmd.Magnitude)

	current := ctx.Character.Health
	newHealth := current + magnitude
	if newHealth > ctx.Character.MaxHealth {
		newHealth = ctx.Character.MaxHealth
	}
	actual := newHealth - current

	message := fmt.Sprintf("Healed %d HP (%d HP total)", actual, newHealth)
	if cmd.Magnitude.Tag != "" {
		message = fmt.Sprintf("Healed %d HP from %s (%d HP total)", actual, cmd.Magnitude.Tag, newHealth)
	}

	return Outcome{
		Kind:    cmd.Kind,
		Raw:     cmd.Raw,
		Success: true,
		Message: message,
		Roll:    roll,
		Value:   actual,
		Delta:   game.Delta{Health: game.IntPtr(newHealth)},
	}
}

// executeStatus acknowledges a status effect with a structured outcome. The
// engine keeps no effect state machine; a caller-side system can attach
// behavior to the typed outcome later.
func executeStatus(cmd command.Command) Outcome {
	params := cmd.Status

	message := fmt.Sprintf("Status applied: %s", params.Effect)
	value := 0
	if params.Duration != nil {
		message = fmt.Sprintf("Status applied: %s (%d %s)", params.Effect, *params.Duration, params.Unit)
		value = *params.Duration
	}

	return Outcome{
		Kind:    cmd.Kind,
		Raw:     cmd.Raw,
		Success: true,
		Message: message,
		Value:   value,
	}
}

// executeInventory acknowledges an inventory change with a structured
// outcome; item storage itself lives with the caller.
func executeInventory(cmd command.Command) Outcome {
	params := cmd.Inventory

	var message string
	switch params.Action {
	case command.InventoryAdd:
		message = fmt.Sprintf("Added %d x %s to inventory", params.Quantity, params.Item)
	case command.InventoryRemove:
		message = fmt.Sprintf("Removed %d x %s from inventory", params.Quantity, params.Item)
	case command.InventoryEquip:
		message = fmt.Sprintf("Equipped %s", params.Item)
	case command.InventoryUnequip:
		message = fmt.Sprintf("Unequipped %s", params.Item)
	}

	return Outcome{
		Kind:    cmd.Kind,
		Raw:     cmd.Raw,
		Success: true,
		Message: message,
		Value:   params.Quantity,
	}
}

// resolveMagnitude turns a damage/heal payload into a concrete amount,
// rolling dice when the payload carries an expression.
func (e *Executor) resolveMagnitude(params *command.MagnitudeParams) (int, *dice.Outcome) {
	if params.Expr == nil {
		return params.Literal, nil
	}
	roll := e.roller.RollExpression(*params.Expr)
	magnitude := roll.Total
	// A heavily negative modifier can push a roll below zero; damage and
	// healing are never negative.
	if magnitude < 0 {
		magnitude = 0
	}
	return magnitude, &roll
}

// maxResource bounds max-HP/max-AP writes so a runaway narrator cannot set
// absurd ceilings.
const maxResource = 9999

func applyOp(current int, op command.UpdateOp, value int) int {
	switch op {
	case command.OpAdd:
		return current + value
	case command.OpSubtract:
		return current - value
	case command.OpSet:
		return value
	default:
		return current
	}
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

func failure(cmd command.Command, err error) Outcome {
	return Outcome{
		Kind:    cmd.Kind,
		Raw:     cmd.Raw,
		Success: false,
		Message: apperrors.UserMessage(err, ""),
		Err:     err,
	}
}
