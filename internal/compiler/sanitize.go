package compiler

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxTextSize bounds labels and message texts, in bytes.
	DefaultMaxTextSize = 4096
	// EnvMaxTextSize is the environment variable overriding DefaultMaxTextSize.
	EnvMaxTextSize = "SEQLINE_MAX_TEXT_SIZE"
)

var (
	ErrTextTooLarge = errors.New("text exceeds maximum allowed size")
	ErrInvalidUTF8  = errors.New("text contains invalid UTF-8 sequences")
)

// SanitizeText enforces the size limit, validates UTF-8 and strips control characters
// other than newline, tab and carriage return, so texts cannot corrupt terminals or SVG output.
func SanitizeText(text string) (string, error) {
	limit := maxTextSize()
	if len(text) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrTextTooLarge, len(text), limit)
	}
	if !utf8.ValidString(text) {
		return "", ErrInvalidUTF8
	}

	clean := true
	for _, r := range text {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return text, nil
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}

func maxTextSize() int {
	if val := os.Getenv(EnvMaxTextSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxTextSize
}
