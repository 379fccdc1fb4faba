package executor

import (
	"errors"
	"testing"

	"github.com/kopertop/ai-dnd-expo-sub004/internal/command"
	"github.com/kopertop/ai-dnd-expo-sub004/internal/dice"
	"github.com/kopertop/ai-dnd-expo-sub004/internal/game"
)

func testContext() (Context, *game.CharacterSheet) {
	sheet := &game.CharacterSheet{
		ID:              "char-1",
		Name:            "Theren",
		Health:          10,
		MaxHealth:       20,
		ActionPoints:    3,
		MaxActionPoints: 5,
		Stats: map[game.StatKey]int{
			game.StatStrength:  14,
			game.StatDexterity: 12,
		},
	}
	return Context{Character: sheet, World: game.NewWorldState()}, sheet
}

func mustParse(t *testing.T, kind command.Kind, params string) command.Command {
	t.Helper()
	cmd, err := command.Parse(command.RawCommand{Kind: kind, Params: params})
	if err != nil {
		t.Fatalf("parse %v %q: %v", kind, params, err)
	}
	return cmd
}

// TestExecuteUpdateClampsHP ensures raw arithmetic is clamped into
// [0, maxHealth] and the delta reports the clamped value.
func TestExecuteUpdateClampsHP(t *testing.T) {
	ctx, _ := testContext()
	exec := New(dice.NewRoller(1))

	outcome := exec.Execute(mustParse(t, command.KindUpdate, "HP-999"), ctx)
	if !outcome.Success {
		t.Fatalf("update failed: %v", outcome.Err)
	}
	if outcome.Value != 0 {
		t.Fatalf("expected clamped value 0, got %d", outcome.Value)
	}
	if outcome.Delta.Health == nil || *outcome.Delta.Health != 0 {
		t.Fatalf("expected delta health 0, got %+v", outcome.Delta.Health)
	}
	if outcome.Delta.MaxHealth != nil || outcome.Delta.ActionPoints != nil {
		t.Fatalf("delta touched unrelated fields: %+v", outcome.Delta)
	}

	outcome = exec.Execute(mustParse(t, command.KindUpdate, "HP+999"), ctx)
	if outcome.Delta.Health == nil || *outcome.Delta.Health != 20 {
		t.Fatalf("expected delta health 20, got %+v", outcome.Delta.Health)
	}
}

// TestExecuteUpdateSetAndAP covers set semantics and AP clamping.
func TestExecuteUpdateSetAndAP(t *testing.T) {
	ctx, _ := testContext()
	exec := New(dice.NewRoller(1))

	outcome := exec.Execute(mustParse(t, command.KindUpdate, "HP=15"), ctx)
	if outcome.Delta.Health == nil || *outcome.Delta.Health != 15 {
		t.Fatalf("expected health 15, got %+v", outcome.Delta.Health)
	}

	outcome = exec.Execute(mustParse(t, command.KindUpdate, "AP+10"), ctx)
	if outcome.Delta.ActionPoints == nil || *outcome.Delta.ActionPoints != 5 {
		t.Fatalf("expected AP clamped to 5, got %+v", outcome.Delta.ActionPoints)
	}

	outcome = exec.Execute(mustParse(t, command.KindUpdate, "AP-10"), ctx)
	if outcome.Delta.ActionPoints == nil || *outcome.Delta.ActionPoints != 0 {
		t.Fatalf("expected AP clamped to 0, got %+v", outcome.Delta.ActionPoints)
	}
}

// TestExecuteUpdateClampsStats ensures ability stats stay in [1,30] and the
// delta is a single-key stat map.
func TestExecuteUpdateClampsStats(t *testing.T) {
	ctx, _ := testContext()
	exec := New(dice.NewRoller(1))

	outcome := exec.Execute(mustParse(t, command.KindUpdate, "STR+99"), ctx)
	if got := outcome.Delta.Stats[game.StatStrength]; got != 30 {
		t.Fatalf("expected str clamped to 30, got %d", got)
	}

	outcome = exec.Execute(mustParse(t, command.KindUpdate, "DEX-99"), ctx)
	if got := outcome.Delta.Stats[game.StatDexterity]; got != 1 {
		t.Fatalf("expected dex clamped to 1, got %d", got)
	}

	// A stat missing from the sheet reads as the default before arithmetic.
	outcome = exec.Execute(mustParse(t, command.KindUpdate, "WIS+2"), ctx)
	if got := outcome.Delta.Stats[game.StatWisdom]; got != game.DefaultStatValue+2 {
		t.Fatalf("expected wis %d, got %d", game.DefaultStatValue+2, got)
	}
}

// TestExecuteDamageConservation ensures actual damage never exceeds the
// health available to lose.
func TestExecuteDamageConservation(t *testing.T) {
	ctx, _ := testContext()
	exec := New(dice.NewRoller(1))

	outcome := exec.Execute(mustParse(t, command.KindDamage, "50"), ctx)
	if !outcome.Success {
		t.Fatalf("damage failed: %v", outcome.Err)
	}
	if outcome.Value != 10 {
		t.Fatalf("expected actual damage 10, got %d", outcome.Value)
	}
	if outcome.Delta.Health == nil || *outcome.Delta.Health != 0 {
		t.Fatalf("expected health 0, got %+v", outcome.Delta.Health)
	}
}

// TestExecuteDamageRollsDice ensures dice magnitudes resolve through the
// roller and record the roll.
func TestExecuteDamageRollsDice(t *testing.T) {
	ctx, sheet := testContext()
	exec := New(dice.NewRoller(7))
	want := dice.NewRoller(7).RollExpression(dice.Expression{Count: 2, Sides: 6})

	outcome := exec.Execute(mustParse(t, command.KindDamage, "2d6 fire"), ctx)
	if outcome.Roll == nil {
		t.Fatal("expected recorded roll")
	}
	if outcome.Roll.Total != want.Total {
		t.Fatalf("roll total = %d, want %d", outcome.Roll.Total, want.Total)
	}

	expected := sheet.Health - want.Total
	if expected < 0 {
		expected = 0
	}
	if outcome.Delta.Health == nil || *outcome.Delta.Health != expected {
		t.Fatalf("expected health %d, got %+v", expected, outcome.Delta.Health)
	}
}

// TestExecuteHealCapsAtMax ensures healing cannot exceed max health.
func TestExecuteHealCapsAtMax(t *testing.T) {
	ctx, _ := testContext()
	exec := New(dice.NewRoller(1))

	outcome := exec.Execute(mustParse(t, command.KindHeal, "50"), ctx)
	if outcome.Value != 10 {
		t.Fatalf("expected actual healing 10, got %d", outcome.Value)
	}
	if outcome.Delta.Health == nil || *outcome.Delta.Health != 20 {
		t.Fatalf("expected health 20, got %+v", outcome.Delta.Health)
	}
}

// TestExecuteRoll covers plain, advantage and purpose-bearing rolls.
func TestExecuteRoll(t *testing.T) {
	exec := New(dice.NewRoller(3))
	want := dice.NewRoller(3).RollExpression(dice.Expression{Count: 1, Sides: 20, Modifier: 5})

	outcome := exec.Execute(mustParse(t, command.KindRoll, "1d20+5"), Context{})
	if !outcome.Success {
		t.Fatalf("roll failed: %v", outcome.Err)
	}
	if outcome.Value != want.Total {
		t.Fatalf("roll value = %d, want %d", outcome.Value, want.Total)
	}
	if !outcome.Delta.IsZero() {
		t.Fatalf("roll produced a delta: %+v", outcome.Delta)
	}

	advWant := dice.NewRoller(4).RollExpressionWithAdvantage(dice.Expression{Count: 1, Sides: 20})
	outcome = New(dice.NewRoller(4)).Execute(mustParse(t, command.KindRoll, "1d20 advantage"), Context{})
	if outcome.Value != advWant.Total {
		t.Fatalf("advantage value = %d, want %d", outcome.Value, advWant.Total)
	}
}

// TestExecuteStatusAndInventory ensure structured outcomes with no deltas.
func TestExecuteStatusAndInventory(t *testing.T) {
	ctx, _ := testContext()
	exec := New(dice.NewRoller(1))

	outcome := exec.Execute(mustParse(t, command.KindStatus, "poisoned 3"), ctx)
	if !outcome.Success || outcome.Value != 3 {
		t.Fatalf("unexpected status outcome: %+v", outcome)
	}
	if !outcome.Delta.IsZero() {
		t.Fatalf("status produced a delta: %+v", outcome.Delta)
	}

	outcome = exec.Execute(mustParse(t, command.KindInventory, "add healing potion 2"), ctx)
	if !outcome.Success || outcome.Value != 2 {
		t.Fatalf("unexpected inventory outcome: %+v", outcome)
	}
	if outcome.Message != "Added 2 x healing potion to inventory" {
		t.Fatalf("unexpected inventory message: %q", outcome.Message)
	}
}

// TestExecuteUpdateRequiresCharacter ensures state-mutating commands fail
// cleanly without a character.
func TestExecuteUpdateRequiresCharacter(t *testing.T) {
	exec := New(dice.NewRoller(1))
	outcome := exec.Execute(mustParse(t, command.KindUpdate, "HP-5"), Context{})
	if outcome.Success {
		t.Fatal("expected failure without character")
	}
	if !errors.Is(outcome.Err, ErrMissingCharacter) {
		t.Fatalf("error = %v, want %v", outcome.Err, ErrMissingCharacter)
	}
}

// TestExecuteBatchIsolation mirrors the canonical batch-isolation case: the
// first command's delta survives a later command's failure.
func TestExecuteBatchIsolation(t *testing.T) {
	ctx, _ := testContext()
	exec := New(dice.NewRoller(1))

	raws := command.Extract("[UPDATE:HP-5] [UPDATE:BADTARGET+1]")
	parsed := command.ParseAll(raws)
	result := exec.ExecuteBatch(parsed, ctx)

	if result.Success {
		t.Fatal("expected overall failure")
	}
	if len(result.Outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(result.Outcomes))
	}
	if !result.Outcomes[0].Success {
		t.Fatalf("first command failed: %v", result.Outcomes[0].Err)
	}
	if result.Outcomes[1].Success {
		t.Fatal("second command unexpectedly succeeded")
	}
	if result.Outcomes[1].Err == nil {
		t.Fatal("second command has no recorded error")
	}
	if result.Delta.Health == nil || *result.Delta.Health != 5 {
		t.Fatalf("expected merged delta health 5, got %+v", result.Delta.Health)
	}
}

// TestExecuteBatchMergesLaterWrites ensures a later field write wins and stat
// maps merge key by key.
func TestExecuteBatchMergesLaterWrites(t *testing.T) {
	ctx, _ := testContext()
	exec := New(dice.NewRoller(1))

	raws := command.Extract("[UPDATE:HP-5] [UPDATE:HP-2] [UPDATE:STR+1] [UPDATE:DEX+1]")
	parsed := command.ParseAll(raws)
	result := exec.ExecuteBatch(parsed, ctx)

	if !result.Success {
		t.Fatalf("batch failed: %+v", result)
	}
	// Both HP updates read the same snapshot (health 10); the later write wins.
	if result.Delta.Health == nil || *result.Delta.Health != 8 {
		t.Fatalf("expected merged health 8, got %+v", result.Delta.Health)
	}
	if result.Delta.Stats[game.StatStrength] != 15 || result.Delta.Stats[game.StatDexterity] != 13 {
		t.Fatalf("unexpected stat merge: %+v", result.Delta.Stats)
	}
}

// TestExecuteBatchEmpty ensures zero commands yield an empty successful result.
func TestExecuteBatchEmpty(t *testing.T) {
	exec := New(dice.NewRoller(1))
	result := exec.ExecuteBatch(nil, Context{})
	if !result.Success {
		t.Fatal("expected empty batch to succeed")
	}
	if len(result.Outcomes) != 0 || !result.Delta.IsZero() {
		t.Fatalf("unexpected result: %+v", result)
	}
}
