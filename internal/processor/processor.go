// Package processor is the single facade callers use to turn raw narrator
// text into clean display text and executed tool-command results.
package processor

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kopertop/ai-dnd-expo-sub004/internal/command"
	"github.com/kopertop/ai-dnd-expo-sub004/internal/dice"
	apperrors "github.com/kopertop/ai-dnd-expo-sub004/internal/errors"
	"github.com/kopertop/ai-dnd-expo-sub004/internal/executor"
)

const tracerName = "github.com/kopertop/ai-dnd-expo-sub004/internal/processor"

// Processor runs extraction, grammar parsing and execution as one pipeline.
// It holds no state across calls beyond the dice roller's random source.
type Processor struct {
	exec   *executor.Executor
	tracer trace.Tracer
}

// New creates a processor that rolls dice through the provided roller.
func New(roller *dice.Roller) *Processor {
	return &Processor{
		exec:   executor.New(roller),
		tracer: otel.Tracer(tracerName),
	}
}

// Validation is the side-effect-free mirror of ProcessResponse: the same
// parsed commands and grammar errors execution would see, with no context
// touched. Upstream callers use it to decide whether a generated response is
// acceptable before any game state changes.
type Validation struct {
	Commands  []command.Parsed
	CleanText string
	Valid     bool
}

// ValidateText extracts and grammar-checks rawText without executing
// anything. Validation and execution share the same grammar implementations,
// so they can never diverge on what counts as parseable.
func ValidateText(rawText string) Validation {
	parsed := command.ParseAll(command.Extract(rawText))

	valid := true
	for _, entry := range parsed {
		if entry.Err != nil {
			valid = false
			break
		}
	}
	return Validation{
		Commands:  parsed,
		CleanText: command.StripAll(rawText),
		Valid:     valid,
	}
}

// Validate is ValidateText as a method, for callers already holding a
// processor.
func (p *Processor) Validate(rawText string) Validation {
	return ValidateText(rawText)
}

// ProcessResponse extracts, parses and executes every command in rawText
// against the caller-owned context, returning the stripped display text and
// the aggregated result. Zero commands yield an empty successful result. The
// clean text always comes from StripAll, no matter how many commands
// executed successfully.
//
// ProcessResponse never panics past its own boundary; an unexpected internal
// failure becomes a failed result with a descriptive message.
func (p *Processor) ProcessResponse(ctx context.Context, rawText string, gctx executor.Context) (cleanText string, result executor.Result) {
	_, span := p.tracer.Start(ctx, "processor.ProcessResponse")
	defer span.End()

	cleanText = command.StripAll(rawText)

	defer func() {
		if r := recover(); r != nil {
			err := apperrors.New(apperrors.CodeExecutionInternal,
				fmt.Sprintf("command execution failed unexpectedly: %v", r))
			result = executor.Result{
				Success:  false,
				Messages: []string{apperrors.UserMessage(err, "")},
			}
		}
	}()

	parsed := command.ParseAll(command.Extract(rawText))
	span.SetAttributes(attribute.Int("commands.count", len(parsed)))

	result = p.exec.ExecuteBatch(parsed, gctx)
	span.SetAttributes(attribute.Bool("commands.success", result.Success))
	return cleanText, result
}
