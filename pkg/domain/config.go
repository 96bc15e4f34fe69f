package domain

import (
	"errors"
	"fmt"
)

// Config holds the resolved geometry settings of a diagram.
type Config struct {
	MainLifelineWidth  int `json:"main_lifeline_width" yaml:"main_lifeline_width" mapstructure:"main_lifeline_width"`
	SubLifelineWidth   int `json:"sub_lifeline_width" yaml:"sub_lifeline_width" mapstructure:"sub_lifeline_width"`
	HeadHeight         int `json:"head_height" yaml:"head_height" mapstructure:"head_height"`
	FigureHeight       int `json:"figure_height" yaml:"figure_height" mapstructure:"figure_height"`
	CrossSize          int `json:"cross_size" yaml:"cross_size" mapstructure:"cross_size"`
	MessageSpacing     int `json:"message_spacing" yaml:"message_spacing" mapstructure:"message_spacing"`
	ParticipantSpacing int `json:"participant_spacing" yaml:"participant_spacing" mapstructure:"participant_spacing"`
	Margin             int `json:"margin" yaml:"margin" mapstructure:"margin"`
}

// DefaultConfig returns the settings used when a scenario does not override them.
func DefaultConfig() Config {
	return Config{
		MainLifelineWidth:  8,
		SubLifelineWidth:   6,
		HeadHeight:         30,
		FigureHeight:       50,
		CrossSize:          10,
		MessageSpacing:     20,
		ParticipantSpacing: 120,
		Margin:             20,
	}
}

// Merge returns c with every zero field taken from base. A zero field of c therefore means
// "unset"; use ConfigOverride to request an explicit zero.
func (c Config) Merge(base Config) Config {
	pick := func(v, fallback int) int {
		if v == 0 {
			return fallback
		}
		return v
	}
	return Config{
		MainLifelineWidth:  pick(c.MainLifelineWidth, base.MainLifelineWidth),
		SubLifelineWidth:   pick(c.SubLifelineWidth, base.SubLifelineWidth),
		HeadHeight:         pick(c.HeadHeight, base.HeadHeight),
		FigureHeight:       pick(c.FigureHeight, base.FigureHeight),
		CrossSize:          pick(c.CrossSize, base.CrossSize),
		MessageSpacing:     pick(c.MessageSpacing, base.MessageSpacing),
		ParticipantSpacing: pick(c.ParticipantSpacing, base.ParticipantSpacing),
		Margin:             pick(c.Margin, base.Margin),
	}
}

// ConfigOverride holds the geometry a scenario sets explicitly. A nil field keeps the base value,
// so zero is a valid setting (margin: 0, cross_size: 0).
// Field tags are used by the scenario compiler to decode the free-form config map.
type ConfigOverride struct {
	MainLifelineWidth  *int `json:"main_lifeline_width,omitempty" yaml:"main_lifeline_width,omitempty" mapstructure:"main_lifeline_width"`
	SubLifelineWidth   *int `json:"sub_lifeline_width,omitempty" yaml:"sub_lifeline_width,omitempty" mapstructure:"sub_lifeline_width"`
	HeadHeight         *int `json:"head_height,omitempty" yaml:"head_height,omitempty" mapstructure:"head_height"`
	FigureHeight       *int `json:"figure_height,omitempty" yaml:"figure_height,omitempty" mapstructure:"figure_height"`
	CrossSize          *int `json:"cross_size,omitempty" yaml:"cross_size,omitempty" mapstructure:"cross_size"`
	MessageSpacing     *int `json:"message_spacing,omitempty" yaml:"message_spacing,omitempty" mapstructure:"message_spacing"`
	ParticipantSpacing *int `json:"participant_spacing,omitempty" yaml:"participant_spacing,omitempty" mapstructure:"participant_spacing"`
	Margin             *int `json:"margin,omitempty" yaml:"margin,omitempty" mapstructure:"margin"`
}

// Apply returns base with every set field of o replacing the base value.
func (o ConfigOverride) Apply(base Config) Config {
	pick := func(v *int, fallback int) int {
		if v == nil {
			return fallback
		}
		return *v
	}
	return Config{
		MainLifelineWidth:  pick(o.MainLifelineWidth, base.MainLifelineWidth),
		SubLifelineWidth:   pick(o.SubLifelineWidth, base.SubLifelineWidth),
		HeadHeight:         pick(o.HeadHeight, base.HeadHeight),
		FigureHeight:       pick(o.FigureHeight, base.FigureHeight),
		CrossSize:          pick(o.CrossSize, base.CrossSize),
		MessageSpacing:     pick(o.MessageSpacing, base.MessageSpacing),
		ParticipantSpacing: pick(o.ParticipantSpacing, base.ParticipantSpacing),
		Margin:             pick(o.Margin, base.Margin),
	}
}

// Merge returns o with every nil field taken from base.
func (o ConfigOverride) Merge(base ConfigOverride) ConfigOverride {
	pick := func(v, fallback *int) *int {
		if v == nil {
			return fallback
		}
		return v
	}
	return ConfigOverride{
		MainLifelineWidth:  pick(o.MainLifelineWidth, base.MainLifelineWidth),
		SubLifelineWidth:   pick(o.SubLifelineWidth, base.SubLifelineWidth),
		HeadHeight:         pick(o.HeadHeight, base.HeadHeight),
		FigureHeight:       pick(o.FigureHeight, base.FigureHeight),
		CrossSize:          pick(o.CrossSize, base.CrossSize),
		MessageSpacing:     pick(o.MessageSpacing, base.MessageSpacing),
		ParticipantSpacing: pick(o.ParticipantSpacing, base.ParticipantSpacing),
		Margin:             pick(o.Margin, base.Margin),
	}
}

// Validate rejects negative sizes.
func (o ConfigOverride) Validate() error {
	var errs []error
	check := func(name string, v *int) {
		if v != nil && *v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %d", name, *v))
		}
	}
	check("main_lifeline_width", o.MainLifelineWidth)
	check("sub_lifeline_width", o.SubLifelineWidth)
	check("head_height", o.HeadHeight)
	check("figure_height", o.FigureHeight)
	check("cross_size", o.CrossSize)
	check("message_spacing", o.MessageSpacing)
	check("participant_spacing", o.ParticipantSpacing)
	check("margin", o.Margin)
	return errors.Join(errs...)
}
