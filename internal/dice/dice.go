// Package dice implements the NdM+K dice notation engine for narrator tool
// commands.
package dice

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	apperrors "github.com/kopertop/ai-dnd-expo-sub004/internal/errors"
)

// Bounds for dice expressions. Out-of-range values are parse failures, never
// clamped.
const (
	MinCount = 1
	MaxCount = 100
	MinSides = 2
	MaxSides = 1000
)

var (
	// ErrInvalidNotation indicates a string that is not NdM+K notation.
	ErrInvalidNotation = apperrors.New(apperrors.CodeDiceInvalidNotation, "dice notation must match NdM+K")
	// ErrCountOutOfRange indicates a dice count outside [1,100].
	ErrCountOutOfRange = apperrors.New(apperrors.CodeDiceCountOutOfRange, "dice count must be between 1 and 100")
	// ErrSidesOutOfRange indicates a sides value outside [2,1000].
	ErrSidesOutOfRange = apperrors.New(apperrors.CodeDiceSidesOutOfRange, "dice sides must be between 2 and 1000")
)

// Expression is a parsed NdM+K dice expression.
type Expression struct {
	Count    int
	Sides    int
	Modifier int
}

// String renders the expression back to canonical notation.
func (e Expression) String() string {
	notation := fmt.Sprintf("%dd%d", e.Count, e.Sides)
	switch {
	case e.Modifier > 0:
		return fmt.Sprintf("%s+%d", notation, e.Modifier)
	case e.Modifier < 0:
		return fmt.Sprintf("%s%d", notation, e.Modifier)
	default:
		return notation
	}
}

var notationRe = regexp.MustCompile(`^(\d*)[dD](\d+)([+-]\d+)?$`)

// ParseExpression parses dice notation of the form "NdM", "dM", "NdM+K" or
// "NdM-K". A missing count means one die. Whitespace inside the notation is
// tolerated because narrator output is not trustworthy about spacing.
func ParseExpression(notation string) (Expression, error) {
	raw := strings.ReplaceAll(strings.TrimSpace(notation), " ", "")
	matches := notationRe.FindStringSubmatch(raw)
	if matches == nil {
		return Expression{}, apperrors.WithMetadata(apperrors.CodeDiceInvalidNotation,
			fmt.Sprintf("dice notation %q must match NdM+K", notation),
			map[string]string{"Notation": notation})
	}

	count := 1
	if matches[1] != "" {
		parsed, err := strconv.Atoi(matches[1])
		if err != nil {
			return Expression{}, apperrors.Wrap(apperrors.CodeDiceInvalidNotation, "parse dice count", err)
		}
		count = parsed
	}
	if count < MinCount || count > MaxCount {
		return Expression{}, ErrCountOutOfRange
	}

	sides, err := strconv.Atoi(matches[2])
	if err != nil {
		return Expression{}, apperrors.Wrap(apperrors.CodeDiceInvalidNotation, "parse dice sides", err)
	}
	if sides < MinSides || sides > MaxSides {
		return Expression{}, ErrSidesOutOfRange
	}

	modifier := 0
	if matches[3] != "" {
		modifier, err = strconv.Atoi(matches[3])
		if err != nil {
			return Expression{}, apperrors.Wrap(apperrors.CodeDiceInvalidNotation, "parse dice modifier", err)
		}
	}

	return Expression{Count: count, Sides: sides, Modifier: modifier}, nil
}

// Outcome captures the results of one evaluated dice expression. The total is
// always sum(rolls) + modifier, computed after all draws.
type Outcome struct {
	Notation string
	Rolls    []int
	Modifier int
	Total    int
}

// AbilityScore captures a 4d6-drop-lowest ability score roll. Rolls holds all
// four dice in roll order; DroppedIndex points at the dropped (minimum) die.
type AbilityScore struct {
	Rolls        [4]int
	DroppedIndex int
	Total        int
}

// Dropped returns the value of the dropped die.
func (a AbilityScore) Dropped() int {
	return a.Rolls[a.DroppedIndex]
}

// Roller evaluates dice expressions against an injectable random source.
// Production wiring seeds it from crypto/rand; tests pass a fixed seed.
type Roller struct {
	rng *rand.Rand
}

// NewRoller creates a roller seeded with the provided seed.
func NewRoller(seed int64) *Roller {
	return NewRollerFromSource(rand.NewSource(seed))
}

// NewRollerFromSource creates a roller over an arbitrary random source.
func NewRollerFromSource(source rand.Source) *Roller {
	return &Roller{rng: rand.New(source)}
}

// Roll parses and evaluates dice notation.
func (r *Roller) Roll(notation string) (Outcome, error) {
	expr, err := ParseExpression(notation)
	if err != nil {
		return Outcome{}, err
	}
	return r.RollExpression(expr), nil
}

// RollExpression evaluates an already parsed expression. Each die draw is an
// independent uniform integer in [1, sides].
func (r *Roller) RollExpression(expr Expression) Outcome {
	rolls := make([]int, expr.Count)
	sum := 0
	for i := 0; i < expr.Count; i++ {
		value := r.rollDie(expr.Sides)
		rolls[i] = value
		sum += value
	}
	return Outcome{
		Notation: expr.String(),
		Rolls:    rolls,
		Modifier: expr.Modifier,
		Total:    sum + expr.Modifier,
	}
}

// RollWithAdvantage evaluates the expression twice and keeps the outcome with
// the higher total.
func (r *Roller) RollWithAdvantage(notation string) (Outcome, error) {
	expr, err := ParseExpression(notation)
	if err != nil {
		return Outcome{}, err
	}
	return r.RollExpressionWithAdvantage(expr), nil
}

// RollWithDisadvantage evaluates the expression twice and keeps the outcome
// with the lower total.
func (r *Roller) RollWithDisadvantage(notation string) (Outcome, error) {
	expr, err := ParseExpression(notation)
	if err != nil {
		return Outcome{}, err
	}
	return r.RollExpressionWithDisadvantage(expr), nil
}

// RollExpressionWithAdvantage rolls expr twice and keeps the higher total.
func (r *Roller) RollExpressionWithAdvantage(expr Expression) Outcome {
	first := r.RollExpression(expr)
	second := r.RollExpression(expr)
	if second.Total > first.Total {
		return second
	}
	return first
}

// RollExpressionWithDisadvantage rolls expr twice and keeps the lower total.
func (r *Roller) RollExpressionWithDisadvantage(expr Expression) Outcome {
	first := r.RollExpression(expr)
	second := r.RollExpression(expr)
	if second.Total < first.Total {
		return second
	}
	return first
}

// RollAbilityScore rolls four six-sided dice and sums the highest three. The
// outcome records all four dice and which one was dropped.
func (r *Roller) RollAbilityScore() AbilityScore {
	var score AbilityScore
	for i := range score.Rolls {
		score.Rolls[i] = r.rollDie(6)
	}

	dropped := 0
	for i, value := range score.Rolls {
		if value < score.Rolls[dropped] {
			dropped = i
		}
	}
	score.DroppedIndex = dropped

	for i, value := range score.Rolls {
		if i != dropped {
			score.Total += value
		}
	}
	return score
}

// rollDie rolls a die with the provided number of sides.
func (r *Roller) rollDie(sides int) int {
	return r.rng.Intn(sides) + 1
}
