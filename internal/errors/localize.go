package errors

import (
	"errors"

	"github.com/kopertop/ai-dnd-expo-sub004/internal/errors/i18n"
)

// DefaultLocale is the default locale for error messages.
const DefaultLocale = "en-US"

// UserMessage formats a user-facing message for the given error and locale,
// defaulting to en-US if the locale is empty. Non-domain errors produce a
// generic message so internal details never leak to the narrator client.
func UserMessage(err error, locale string) string {
	if err == nil {
		return ""
	}

	if locale == "" {
		locale = DefaultLocale
	}
	catalog := i18n.GetCatalog(locale)

	var appErr *Error
	if errors.As(err, &appErr) {
		return catalog.Format(string(appErr.Code), appErr.Metadata)
	}
	return catalog.Format(string(CodeUnknown), nil)
}
