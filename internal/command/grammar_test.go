package command

import (
	"errors"
	"testing"

	"github.com/kopertop/ai-dnd-expo-sub004/internal/dice"
	apperrors "github.com/kopertop/ai-dnd-expo-sub004/internal/errors"
	"github.com/kopertop/ai-dnd-expo-sub004/internal/game"
)

// TestParseRoll covers notation, advantage keywords and purposes.
func TestParseRoll(t *testing.T) {
	tcs := []struct {
		params string
		want   RollParams
	}{
		{"1d20+5", RollParams{Expr: dice.Expression{Count: 1, Sides: 20, Modifier: 5}}},
		{"1d20 advantage", RollParams{Expr: dice.Expression{Count: 1, Sides: 20}, Advantage: true}},
		{"1d20 disadvantage", RollParams{Expr: dice.Expression{Count: 1, Sides: 20}, Disadvantage: true}},
		{
			"1d20+3 advantage attack the goblin chief",
			RollParams{Expr: dice.Expression{Count: 1, Sides: 20, Modifier: 3}, Advantage: true, Purpose: "the goblin chief"},
		},
		{
			"1d20 check perception in the dark",
			RollParams{Expr: dice.Expression{Count: 1, Sides: 20}, Purpose: "perception in the dark"},
		},
		{"2d6 fire damage", RollParams{Expr: dice.Expression{Count: 2, Sides: 6}}},
	}

	for _, tc := range tcs {
		got, err := ParseRoll(tc.params)
		if err != nil {
			t.Fatalf("ParseRoll(%q) returned error: %v", tc.params, err)
		}
		if *got != tc.want {
			t.Fatalf("ParseRoll(%q) = %+v, want %+v", tc.params, *got, tc.want)
		}
	}
}

// TestParseRollRejectsBadNotation ensures dice errors surface as the
// command's own grammar failure.
func TestParseRollRejectsBadNotation(t *testing.T) {
	if _, err := ParseRoll("twenty"); !errors.Is(err, dice.ErrInvalidNotation) {
		t.Fatalf("ParseRoll error = %v, want %v", err, dice.ErrInvalidNotation)
	}
	if _, err := ParseRoll("0d6"); !errors.Is(err, dice.ErrCountOutOfRange) {
		t.Fatalf("ParseRoll error = %v, want %v", err, dice.ErrCountOutOfRange)
	}
	if _, err := ParseRoll(""); !errors.Is(err, ErrEmptyParams) {
		t.Fatalf("ParseRoll error = %v, want %v", err, ErrEmptyParams)
	}
}

// TestParseUpdate covers resource targets, stat routing and operators.
func TestParseUpdate(t *testing.T) {
	tcs := []struct {
		params string
		want   UpdateParams
	}{
		{"HP-5", UpdateParams{Target: TargetHP, Op: OpSubtract, Value: 5}},
		{"hp+10", UpdateParams{Target: TargetHP, Op: OpAdd, Value: 10}},
		{"MAXHP=30", UpdateParams{Target: TargetMaxHP, Op: OpSet, Value: 30}},
		{"AP+2", UpdateParams{Target: TargetAP, Op: OpAdd, Value: 2}},
		{"maxap=5", UpdateParams{Target: TargetMaxAP, Op: OpSet, Value: 5}},
		{"STR+1", UpdateParams{Target: TargetStat, Op: OpAdd, Value: 1, Stat: game.StatStrength}},
		{"dex=18", UpdateParams{Target: TargetStat, Op: OpSet, Value: 18, Stat: game.StatDexterity}},
		{"Cha-2", UpdateParams{Target: TargetStat, Op: OpSubtract, Value: 2, Stat: game.StatCharisma}},
	}

	for _, tc := range tcs {
		got, err := ParseUpdate(tc.params)
		if err != nil {
			t.Fatalf("ParseUpdate(%q) returned error: %v", tc.params, err)
		}
		if *got != tc.want {
			t.Fatalf("ParseUpdate(%q) = %+v, want %+v", tc.params, *got, tc.want)
		}
	}
}

// TestParseUpdateRejectsInvalid ensures malformed updates fail with the
// update grammar error.
func TestParseUpdateRejectsInvalid(t *testing.T) {
	tcs := []string{
		"BADTARGET+1",
		"HP*2",
		"HP+",
		"HP-abc",
		"HP",
		"+5",
	}
	for _, params := range tcs {
		if _, err := ParseUpdate(params); !errors.Is(err, ErrInvalidUpdate) {
			t.Fatalf("ParseUpdate(%q) error = %v, want %v", params, err, ErrInvalidUpdate)
		}
	}
	if _, err := ParseUpdate("  "); !errors.Is(err, ErrEmptyParams) {
		t.Fatalf("ParseUpdate blank error = %v, want %v", err, ErrEmptyParams)
	}
}

// TestParseMagnitude covers literal amounts, dice amounts and tags.
func TestParseMagnitude(t *testing.T) {
	got, err := ParseMagnitude("12 fire")
	if err != nil {
		t.Fatalf("ParseMagnitude returned error: %v", err)
	}
	if got.Literal != 12 || got.Expr != nil || got.Tag != "fire" {
		t.Fatalf("unexpected magnitude: %+v", *got)
	}

	got, err = ParseMagnitude("2d6+1 cold")
	if err != nil {
		t.Fatalf("ParseMagnitude returned error: %v", err)
	}
	if got.Expr == nil || *got.Expr != (dice.Expression{Count: 2, Sides: 6, Modifier: 1}) {
		t.Fatalf("unexpected expression: %+v", got.Expr)
	}
	if got.Tag != "cold" {
		t.Fatalf("expected tag cold, got %q", got.Tag)
	}

	got, err = ParseMagnitude("0")
	if err != nil {
		t.Fatalf("ParseMagnitude returned error: %v", err)
	}
	if got.Literal != 0 || got.Tag != "" {
		t.Fatalf("unexpected magnitude: %+v", *got)
	}
}

// TestParseMagnitudeRejectsInvalid ensures bad amounts fail as grammar
// errors, including dice-shaped but out-of-range expressions.
func TestParseMagnitudeRejectsInvalid(t *testing.T) {
	if _, err := ParseMagnitude("-5"); !errors.Is(err, ErrInvalidMagnitude) {
		t.Fatalf("ParseMagnitude(-5) error = %v, want %v", err, ErrInvalidMagnitude)
	}
	if _, err := ParseMagnitude("lots"); !errors.Is(err, ErrInvalidMagnitude) {
		t.Fatalf("ParseMagnitude(lots) error = %v, want %v", err, ErrInvalidMagnitude)
	}
	if _, err := ParseMagnitude("101d6"); !errors.Is(err, dice.ErrCountOutOfRange) {
		t.Fatalf("ParseMagnitude(101d6) error = %v, want %v", err, dice.ErrCountOutOfRange)
	}
	if _, err := ParseMagnitude(""); !errors.Is(err, ErrEmptyParams) {
		t.Fatalf("ParseMagnitude empty error = %v, want %v", err, ErrEmptyParams)
	}
}

// TestParseStatus covers effect, duration and unit defaulting.
func TestParseStatus(t *testing.T) {
	got, err := ParseStatus("poisoned")
	if err != nil {
		t.Fatalf("ParseStatus returned error: %v", err)
	}
	if got.Effect != "poisoned" || got.Duration != nil || got.Unit != "" {
		t.Fatalf("unexpected status: %+v", *got)
	}

	got, err = ParseStatus("stunned 2")
	if err != nil {
		t.Fatalf("ParseStatus returned error: %v", err)
	}
	if got.Effect != "stunned" || got.Duration == nil || *got.Duration != 2 {
		t.Fatalf("unexpected status: %+v", *got)
	}
	if got.Unit != DefaultStatusUnit {
		t.Fatalf("expected default unit, got %q", got.Unit)
	}

	got, err = ParseStatus("blessed 10 minutes")
	if err != nil {
		t.Fatalf("ParseStatus returned error: %v", err)
	}
	if got.Unit != "minutes" || *got.Duration != 10 {
		t.Fatalf("unexpected status: %+v", *got)
	}
}

// TestParseStatusRejectsBadDuration ensures non-integer durations fail.
func TestParseStatusRejectsBadDuration(t *testing.T) {
	if _, err := ParseStatus("stunned soon"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("ParseStatus error = %v, want %v", err, ErrInvalidStatus)
	}
	if _, err := ParseStatus(""); !errors.Is(err, ErrEmptyParams) {
		t.Fatalf("ParseStatus empty error = %v, want %v", err, ErrEmptyParams)
	}
}

// TestParseInventory covers actions, multi-word items and quantities.
func TestParseInventory(t *testing.T) {
	tcs := []struct {
		params string
		want   InventoryParams
	}{
		{"add torch", InventoryParams{Action: InventoryAdd, Item: "torch", Quantity: 1}},
		{"add healing potion 3", InventoryParams{Action: InventoryAdd, Item: "healing potion", Quantity: 3}},
		{"remove rope 2", InventoryParams{Action: InventoryRemove, Item: "rope", Quantity: 2}},
		{"EQUIP longsword", InventoryParams{Action: InventoryEquip, Item: "longsword", Quantity: 1}},
		{"unequip wooden shield", InventoryParams{Action: InventoryUnequip, Item: "wooden shield", Quantity: 1}},
	}

	for _, tc := range tcs {
		got, err := ParseInventory(tc.params)
		if err != nil {
			t.Fatalf("ParseInventory(%q) returned error: %v", tc.params, err)
		}
		if *got != tc.want {
			t.Fatalf("ParseInventory(%q) = %+v, want %+v", tc.params, *got, tc.want)
		}
	}
}

// TestParseInventoryRejectsInvalid ensures bad actions and missing items fail.
func TestParseInventoryRejectsInvalid(t *testing.T) {
	tcs := []string{
		"steal torch",
		"add",
		"add 3",
		"remove rope 0",
	}
	for _, params := range tcs {
		if _, err := ParseInventory(params); !errors.Is(err, ErrInvalidInventory) {
			t.Fatalf("ParseInventory(%q) error = %v, want %v", params, err, ErrInvalidInventory)
		}
	}
}

// TestParseAllKeepsPerCommandErrors ensures one grammar failure never hides
// the commands around it.
func TestParseAllKeepsPerCommandErrors(t *testing.T) {
	raws := Extract("[UPDATE:HP-5] [UPDATE:BADTARGET+1] [DAMAGE:2d6]")
	parsed := ParseAll(raws)
	if len(parsed) != 3 {
		t.Fatalf("expected 3 parsed entries, got %d", len(parsed))
	}
	if parsed[0].Err != nil {
		t.Fatalf("first command unexpectedly failed: %v", parsed[0].Err)
	}
	if !errors.Is(parsed[1].Err, ErrInvalidUpdate) {
		t.Fatalf("second command error = %v, want %v", parsed[1].Err, ErrInvalidUpdate)
	}
	if parsed[2].Err != nil {
		t.Fatalf("third command unexpectedly failed: %v", parsed[2].Err)
	}
	if apperrors.GetCode(parsed[1].Err) != apperrors.CodeCommandInvalidUpdate {
		t.Fatalf("unexpected code: %v", apperrors.GetCode(parsed[1].Err))
	}
}
