package command

import (
	"regexp"
	"strings"
)

// tokenRe matches one bracket token: an alphabetic TYPE, a colon, and PARAMS
// up to the closing bracket.
var tokenRe = regexp.MustCompile(`\[([A-Za-z]+):([^\]]*)\]`)

// Extract scans text left to right and returns every recognized command token
// in order. Tokens whose TYPE is not one of the six recognized kinds are
// dropped silently: narrator output is untrusted and may hallucinate tags,
// and extraction never rejects a whole response over an unknown tag.
func Extract(text string) []RawCommand {
	matches := tokenRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	commands := make([]RawCommand, 0, len(matches))
	for _, match := range matches {
		kind, ok := KindFromString(match[1])
		if !ok {
			continue
		}
		commands = append(commands, RawCommand{
			Kind:   kind,
			Params: strings.TrimSpace(match[2]),
		})
	}
	return commands
}

// StripAll removes every bracket token, recognized or not, and normalizes the
// surrounding whitespace. Command syntax must never leak into player-visible
// text, even for tags the executor does not understand.
//
// StripAll is idempotent: stripping already-clean text returns it unchanged.
func StripAll(text string) string {
	stripped := tokenRe.ReplaceAllString(text, "")

	lines := strings.Split(stripped, "\n")
	normalized := make([]string, 0, len(lines))
	blankRun := 0
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			blankRun++
			// Collapse runs of blank lines to a single paragraph break.
			if len(normalized) == 0 || blankRun > 1 {
				continue
			}
		} else {
			blankRun = 0
		}
		normalized = append(normalized, line)
	}

	// Drop trailing blank lines left by stripped tokens.
	for len(normalized) > 0 && normalized[len(normalized)-1] == "" {
		normalized = normalized[:len(normalized)-1]
	}

	return strings.Join(normalized, "\n")
}
