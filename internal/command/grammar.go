package command

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kopertop/ai-dnd-expo-sub004/internal/dice"
	apperrors "github.com/kopertop/ai-dnd-expo-sub004/internal/errors"
	"github.com/kopertop/ai-dnd-expo-sub004/internal/game"
)

var (
	// ErrEmptyParams indicates a recognized command with no parameters.
	ErrEmptyParams = apperrors.New(apperrors.CodeCommandEmptyParams, "command parameters cannot be empty")
	// ErrInvalidUpdate indicates an update command that does not match the update grammar.
	ErrInvalidUpdate = apperrors.New(apperrors.CodeCommandInvalidUpdate, "update must match TARGET, operator and value")
	// ErrInvalidMagnitude indicates a damage/heal amount that is neither dice notation nor a non-negative integer.
	ErrInvalidMagnitude = apperrors.New(apperrors.CodeCommandInvalidMagnitude, "magnitude must be dice notation or a non-negative integer")
	// ErrInvalidStatus indicates a status command with a malformed duration.
	ErrInvalidStatus = apperrors.New(apperrors.CodeCommandInvalidStatus, "status duration must be an integer")
	// ErrInvalidInventory indicates an inventory command with a bad action or missing item.
	ErrInvalidInventory = apperrors.New(apperrors.CodeCommandInvalidInventory, "inventory must name an action and an item")
)

// DefaultStatusUnit applies when a status has a duration but no unit.
const DefaultStatusUnit = "rounds"

// rollPurposeKeywords start the free-text purpose of a roll command.
var rollPurposeKeywords = map[string]bool{
	"damage":     true,
	"attack":     true,
	"check":      true,
	"save":       true,
	"initiative": true,
}

// Parse turns a raw command into a typed Command or a grammar error naming
// the rule that failed. Errors never propagate past the command they belong
// to; callers record them per command.
func Parse(raw RawCommand) (Command, error) {
	cmd := Command{Kind: raw.Kind, Raw: raw.Params}

	var err error
	switch raw.Kind {
	case KindRoll:
		cmd.Roll, err = ParseRoll(raw.Params)
	case KindUpdate:
		cmd.Update, err = ParseUpdate(raw.Params)
	case KindDamage, KindHeal:
		cmd.Magnitude, err = ParseMagnitude(raw.Params)
	case KindStatus:
		cmd.Status, err = ParseStatus(raw.Params)
	case KindInventory:
		cmd.Inventory, err = ParseInventory(raw.Params)
	case KindUnspecified:
		err = apperrors.New(apperrors.CodeCommandUnknownKind, "command kind is not recognized")
	default:
		err = apperrors.New(apperrors.CodeCommandUnknownKind, "command kind is not recognized")
	}
	if err != nil {
		return Command{Kind: raw.Kind, Raw: raw.Params}, err
	}
	return cmd, nil
}

// ParseAll parses every raw command, pairing each with its own result so one
// malformed command never hides the rest.
func ParseAll(raws []RawCommand) []Parsed {
	parsed := make([]Parsed, 0, len(raws))
	for _, raw := range raws {
		cmd, err := Parse(raw)
		parsed = append(parsed, Parsed{Raw: raw, Cmd: cmd, Err: err})
	}
	return parsed
}

// ParseRoll parses roll parameters: dice notation, an optional
// advantage/disadvantage keyword, then an optional free-text purpose
// following a purpose keyword such as "attack" or "check".
func ParseRoll(params string) (*RollParams, error) {
	fields := strings.Fields(params)
	if len(fields) == 0 {
		return nil, ErrEmptyParams
	}

	expr, err := dice.ParseExpression(fields[0])
	if err != nil {
		return nil, err
	}

	roll := &RollParams{Expr: expr}
	rest := fields[1:]
	if len(rest) > 0 {
		switch strings.ToLower(rest[0]) {
		case "advantage":
			roll.Advantage = true
			rest = rest[1:]
		case "disadvantage":
			roll.Disadvantage = true
			rest = rest[1:]
		}
	}

	for i, token := range rest {
		if rollPurposeKeywords[strings.ToLower(token)] {
			roll.Purpose = strings.Join(rest[i+1:], " ")
			break
		}
	}
	return roll, nil
}

var updateRe = regexp.MustCompile(`(?i)^(HP|MAXHP|AP|MAXAP|STR|DEX|CON|INT|WIS|CHA)([+\-=])(\d+)$`)

// ParseUpdate parses update parameters of the form TARGET(+|-|=)VALUE, where
// TARGET is a resource field or one of the six ability stats.
func ParseUpdate(params string) (*UpdateParams, error) {
	trimmed := strings.TrimSpace(params)
	if trimmed == "" {
		return nil, ErrEmptyParams
	}

	matches := updateRe.FindStringSubmatch(trimmed)
	if matches == nil {
		return nil, apperrors.WithMetadata(apperrors.CodeCommandInvalidUpdate,
			fmt.Sprintf("update %q must match TARGET, operator and value", params),
			map[string]string{"Params": params})
	}

	value, err := strconv.Atoi(matches[3])
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeCommandInvalidUpdate, "parse update value", err)
	}

	update := &UpdateParams{Value: value}
	switch matches[2] {
	case "+":
		update.Op = OpAdd
	case "-":
		update.Op = OpSubtract
	case "=":
		update.Op = OpSet
	}

	switch target := strings.ToLower(matches[1]); target {
	case "hp":
		update.Target = TargetHP
	case "maxhp":
		update.Target = TargetMaxHP
	case "ap":
		update.Target = TargetAP
	case "maxap":
		update.Target = TargetMaxAP
	default:
		stat, ok := game.ParseStatKey(target)
		if !ok {
			// Unreachable while the regex and stat keys agree.
			return nil, apperrors.WithMetadata(apperrors.CodeCommandInvalidUpdate,
				fmt.Sprintf("update target %q is not recognized", target),
				map[string]string{"Params": params})
		}
		update.Target = TargetStat
		update.Stat = stat
	}
	return update, nil
}

// ParseMagnitude parses a damage or heal amount: the first token is dice
// notation or a bare non-negative integer, and any remaining tokens form a
// free-text tag such as "fire".
func ParseMagnitude(params string) (*MagnitudeParams, error) {
	fields := strings.Fields(params)
	if len(fields) == 0 {
		return nil, ErrEmptyParams
	}

	magnitude := &MagnitudeParams{Tag: strings.Join(fields[1:], " ")}

	expr, err := dice.ParseExpression(fields[0])
	switch {
	case err == nil:
		magnitude.Expr = &expr
	case apperrors.IsCode(err, apperrors.CodeDiceCountOutOfRange),
		apperrors.IsCode(err, apperrors.CodeDiceSidesOutOfRange):
		// Dice-shaped but out of range: a parse failure, not a literal.
		return nil, err
	default:
		literal, convErr := strconv.Atoi(fields[0])
		if convErr != nil || literal < 0 {
			return nil, apperrors.WithMetadata(apperrors.CodeCommandInvalidMagnitude,
				fmt.Sprintf("magnitude %q must be dice notation or a non-negative integer", fields[0]),
				map[string]string{"Params": params})
		}
		magnitude.Literal = literal
	}
	return magnitude, nil
}

// ParseStatus parses status parameters: an effect name, an optional integer
// duration, and an optional unit defaulting to rounds.
func ParseStatus(params string) (*StatusParams, error) {
	fields := strings.Fields(params)
	if len(fields) == 0 {
		return nil, ErrEmptyParams
	}

	status := &StatusParams{Effect: fields[0]}
	if len(fields) >= 2 {
		duration, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, apperrors.WithMetadata(apperrors.CodeCommandInvalidStatus,
				fmt.Sprintf("status duration %q must be an integer", fields[1]),
				map[string]string{"Params": params})
		}
		status.Duration = &duration
		status.Unit = DefaultStatusUnit
	}
	if len(fields) >= 3 {
		status.Unit = strings.Join(fields[2:], " ")
	}
	return status, nil
}

// ParseInventory parses inventory parameters: an action, an item name, and an
// optional trailing quantity defaulting to one.
func ParseInventory(params string) (*InventoryParams, error) {
	fields := strings.Fields(params)
	if len(fields) == 0 {
		return nil, ErrEmptyParams
	}

	var action InventoryAction
	switch strings.ToLower(fields[0]) {
	case "add":
		action = InventoryAdd
	case "remove":
		action = InventoryRemove
	case "equip":
		action = InventoryEquip
	case "unequip":
		action = InventoryUnequip
	default:
		return nil, apperrors.WithMetadata(apperrors.CodeCommandInvalidInventory,
			fmt.Sprintf("inventory action %q is not recognized", fields[0]),
			map[string]string{"Params": params})
	}

	rest := fields[1:]
	quantity := 1
	if len(rest) > 0 {
		if value, err := strconv.Atoi(rest[len(rest)-1]); err == nil {
			if value < 1 {
				return nil, apperrors.WithMetadata(apperrors.CodeCommandInvalidInventory,
					fmt.Sprintf("inventory quantity %d must be positive", value),
					map[string]string{"Params": params})
			}
			quantity = value
			rest = rest[:len(rest)-1]
		}
	}

	item := strings.Join(rest, " ")
	if item == "" {
		return nil, apperrors.WithMetadata(apperrors.CodeCommandInvalidInventory,
			"inventory item name is required",
			map[string]string{"Params": params})
	}

	return &InventoryParams{Action: action, Item: item, Quantity: quantity}, nil
}
