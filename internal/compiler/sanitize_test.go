package compiler_test

import (
	"strings"
	"testing"

	"github.com/aretw0/seqline/internal/compiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeText_SizeLimit(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"Under Limit", compiler.DefaultMaxTextSize - 1, false},
		{"Exact Limit", compiler.DefaultMaxTextSize, false},
		{"Over Limit", compiler.DefaultMaxTextSize + 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compiler.SanitizeText(strings.Repeat("a", tt.size))
			if tt.wantErr {
				assert.ErrorIs(t, err, compiler.ErrTextTooLarge)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeText_EnvOverride(t *testing.T) {
	t.Setenv(compiler.EnvMaxTextSize, "8")
	_, err := compiler.SanitizeText("123456789")
	assert.ErrorIs(t, err, compiler.ErrTextTooLarge)

	t.Setenv(compiler.EnvMaxTextSize, "nonsense")
	_, err = compiler.SanitizeText("123456789")
	assert.NoError(t, err)
}

func TestSanitizeText_ControlChars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Normal Text", "login()", "login()"},
		{"Safe Controls", "line1\nline2\tx", "line1\nline2\tx"},
		{"ANSI Code", "\x1b[31mred\x1b[0m", "[31mred[0m"},
		{"Null Byte", "a\x00b", "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := compiler.SanitizeText(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSanitizeText_InvalidUTF8(t *testing.T) {
	_, err := compiler.SanitizeText("bad\xff")
	assert.ErrorIs(t, err, compiler.ErrInvalidUTF8)
}

func TestParse_StripsControlCharacters(t *testing.T) {
	doc := "participants:\n  - {name: a, type: A, label: \"the\\x07 a\"}\nmessages:\n  - {to: a, text: \"go\\x1b()\"}\n"
	sc, err := compiler.NewParser().Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "the a", sc.Participants[0].Label)
	assert.Equal(t, "go()", sc.Messages[0].Text)
}
