// internal/common/validation/question.go
package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	apperrors "youth-employment-chat/internal/common/errors"
)

// SanitizeQuestion prepares user text for interpolation into a prompt.
// Whitespace controls become spaces, other control and format characters are
// dropped, and the result is trimmed. An empty result is valid. maxRunes <= 0
// disables the length check.
func SanitizeQuestion(question string, maxRunes int) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return ' '
		case unicode.IsControl(r), unicode.Is(unicode.Cf, r):
			return -1
		case r == utf8.RuneError:
			return -1
		default:
			return r
		}
	}, question)
	cleaned = strings.TrimSpace(cleaned)

	if maxRunes > 0 {
		if n := utf8.RuneCountInString(cleaned); n > maxRunes {
			return "", apperrors.NewQuestionTooLongError(n, maxRunes)
		}
	}

	return cleaned, nil
}
