package i18n

// Error codes must match the codes defined in internal/errors/codes.go.
const (
	CodeUnknown = "UNKNOWN"

	CodeDiceInvalidNotation = "DICE_INVALID_NOTATION"
	CodeDiceCountOutOfRange = "DICE_COUNT_OUT_OF_RANGE"
	CodeDiceSidesOutOfRange = "DICE_SIDES_OUT_OF_RANGE"

	CodeCommandEmptyParams      = "COMMAND_EMPTY_PARAMS"
	CodeCommandInvalidUpdate    = "COMMAND_INVALID_UPDATE"
	CodeCommandInvalidMagnitude = "COMMAND_INVALID_MAGNITUDE"
	CodeCommandInvalidStatus    = "COMMAND_INVALID_STATUS"
	CodeCommandInvalidInventory = "COMMAND_INVALID_INVENTORY"
	CodeCommandUnknownKind      = "COMMAND_UNKNOWN_KIND"

	CodeExecutionMissingCharacter = "EXECUTION_MISSING_CHARACTER"
	CodeExecutionInternal         = "EXECUTION_INTERNAL"

	CodeNotFound = "NOT_FOUND"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		CodeUnknown: "An unexpected error occurred",

		// Dice errors
		CodeDiceInvalidNotation: "Dice notation {{.Notation}} is not valid",
		CodeDiceCountOutOfRange: "Dice count must be between 1 and 100",
		CodeDiceSidesOutOfRange: "Dice sides must be between 2 and 1000",

		// Command grammar errors
		CodeCommandEmptyParams:      "Command parameters cannot be empty",
		CodeCommandInvalidUpdate:    "Update command {{.Params}} is not valid",
		CodeCommandInvalidMagnitude: "Damage or heal amount {{.Params}} is not valid",
		CodeCommandInvalidStatus:    "Status command {{.Params}} is not valid",
		CodeCommandInvalidInventory: "Inventory command {{.Params}} is not valid",
		CodeCommandUnknownKind:      "Command type is not recognized",

		// Execution errors
		CodeExecutionMissingCharacter: "No character is available for this command",
		CodeExecutionInternal:         "The command could not be executed",

		// Storage errors
		CodeNotFound: "The requested record was not found",
	},
}
