// Package errors provides structured error handling for the narrator engine.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Dice errors
	CodeDiceInvalidNotation Code = "DICE_INVALID_NOTATION"
	CodeDiceCountOutOfRange Code = "DICE_COUNT_OUT_OF_RANGE"
	CodeDiceSidesOutOfRange Code = "DICE_SIDES_OUT_OF_RANGE"

	// Command grammar errors
	CodeCommandEmptyParams      Code = "COMMAND_EMPTY_PARAMS"
	CodeCommandInvalidUpdate    Code = "COMMAND_INVALID_UPDATE"
	CodeCommandInvalidMagnitude Code = "COMMAND_INVALID_MAGNITUDE"
	CodeCommandInvalidStatus    Code = "COMMAND_INVALID_STATUS"
	CodeCommandInvalidInventory Code = "COMMAND_INVALID_INVENTORY"
	CodeCommandUnknownKind      Code = "COMMAND_UNKNOWN_KIND"

	// Execution errors
	CodeExecutionMissingCharacter Code = "EXECUTION_MISSING_CHARACTER"
	CodeExecutionInternal         Code = "EXECUTION_INTERNAL"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)
