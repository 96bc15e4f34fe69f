package dto

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ScenarioFile is the on-disk shape of a scenario document.
// Config is kept free-form and decoded into domain.Config with mapstructure.
type ScenarioFile struct {
	Name         string            `yaml:"name" json:"name"`
	Config       map[string]any    `yaml:"config" json:"config"`
	Participants []ParticipantFile `yaml:"participants" json:"participants"`
	Messages     []MessageFile     `yaml:"messages" json:"messages"`
}

// ParticipantFile declares a participant. Alive defaults to true when omitted.
//
// A plain string "name:Type" is accepted as a shorthand.
type ParticipantFile struct {
	Name   string   `yaml:"name" json:"name"`
	Type   string   `yaml:"type" json:"type"`
	Label  string   `yaml:"label" json:"label"`
	Alive  *bool    `yaml:"alive" json:"alive"`
	Flags  []string `yaml:"flags" json:"flags"`
	Line   int      `yaml:"-" json:"-"`
	Column int      `yaml:"-" json:"-"`
}

type participantFields ParticipantFile

// UnmarshalYAML accepts both the mapping and the "name:Type" scalar form.
func (p *ParticipantFile) UnmarshalYAML(node *yaml.Node) error {
	p.Line, p.Column = node.Line, node.Column
	if node.Kind == yaml.ScalarNode {
		name, typ, ok := strings.Cut(node.Value, ":")
		if !ok {
			return fmt.Errorf("line %d: participant %q must be written as name:Type", node.Line, node.Value)
		}
		p.Name, p.Type = strings.TrimSpace(name), strings.TrimSpace(typ)
		return nil
	}
	var fields participantFields
	if err := node.Decode(&fields); err != nil {
		return err
	}
	line, column := p.Line, p.Column
	*p = ParticipantFile(fields)
	p.Line, p.Column = line, column
	return nil
}

// MessageFile is one event of the scenario. Kind defaults to "call".
type MessageFile struct {
	From   string `yaml:"from" json:"from"`
	To     string `yaml:"to" json:"to"`
	Text   string `yaml:"text" json:"text"`
	Thread int    `yaml:"thread" json:"thread"`
	Kind   string `yaml:"kind" json:"kind"`
}
