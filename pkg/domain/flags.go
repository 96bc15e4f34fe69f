package domain

import (
	"fmt"
	"strings"
)

// Flag configures how a participant is drawn and how it behaves at the end of a diagram.
type Flag uint8

const (
	// FlagAnonymous hides the object name in the head, only the type is shown.
	FlagAnonymous Flag = 1 << iota
	// FlagRole draws the head label without underline.
	FlagRole
	// FlagProcess marks a participant that is active from the start (like an actor).
	FlagProcess
	// FlagExternal marks a participant defined outside of the diagram.
	FlagExternal
	// FlagAutoDestroy puts a destruction cross below the lifeline when it terminates.
	FlagAutoDestroy
	// FlagThread marks a participant that spawns its own thread of control.
	FlagThread
	// FlagVariable marks a participant representing a variable.
	FlagVariable
)

var flagNames = []struct {
	flag Flag
	name string
}{
	{FlagAnonymous, "anonymous"},
	{FlagRole, "role"},
	{FlagProcess, "process"},
	{FlagExternal, "external"},
	{FlagAutoDestroy, "autodestroy"},
	{FlagThread, "thread"},
	{FlagVariable, "variable"},
}

// Flags is a set of Flag values.
type Flags uint8

// NewFlags builds a set from individual flags.
func NewFlags(fs ...Flag) Flags {
	var out Flags
	for _, f := range fs {
		out |= Flags(f)
	}
	return out
}

// Has reports whether f is in the set.
func (s Flags) Has(f Flag) bool {
	return s&Flags(f) != 0
}

// With returns a copy of the set including f.
func (s Flags) With(f Flag) Flags {
	return s | Flags(f)
}

// Without returns a copy of the set excluding f.
func (s Flags) Without(f Flag) Flags {
	return s &^ Flags(f)
}

// Len returns the number of flags in the set.
func (s Flags) Len() int {
	n := 0
	for _, fn := range flagNames {
		if s.Has(fn.flag) {
			n++
		}
	}
	return n
}

// Names returns the flag names in declaration order.
func (s Flags) Names() []string {
	var names []string
	for _, fn := range flagNames {
		if s.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return names
}

// String joins the flag names with commas.
func (s Flags) String() string {
	return strings.Join(s.Names(), ",")
}

// ParseFlag resolves a flag by name (case-insensitive).
func ParseFlag(name string) (Flag, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, fn := range flagNames {
		if fn.name == n {
			return fn.flag, nil
		}
	}
	return 0, fmt.Errorf("unknown participant flag %q", name)
}

// ParseFlags resolves a list of names into a set, failing on the first unknown one.
func ParseFlags(names []string) (Flags, error) {
	var out Flags
	for _, n := range names {
		f, err := ParseFlag(n)
		if err != nil {
			return 0, err
		}
		out = out.With(f)
	}
	return out, nil
}

// MarshalText renders the set as a comma separated list of names.
func (s Flags) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a comma separated list of names.
func (s *Flags) UnmarshalText(text []byte) error {
	if len(strings.TrimSpace(string(text))) == 0 {
		*s = 0
		return nil
	}
	parsed, err := ParseFlags(strings.Split(string(text), ","))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
