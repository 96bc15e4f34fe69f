package compiler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/seqline/internal/dto"
	"github.com/aretw0/seqline/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Parser turns scenario documents into domain scenarios.
type Parser struct{}

// NewParser creates a parser. Config keys missing from a document are left at zero so the
// engine's own configuration applies.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile reads and parses a scenario file. An unnamed scenario is named after the file.
func (p *Parser) ParseFile(path string) (*domain.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	sc, err := p.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return sc, nil
}

// Parse decodes a YAML (or JSON) scenario document and validates it.
func (p *Parser) Parse(data []byte) (*domain.Scenario, error) {
	var file dto.ScenarioFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ValidationError{Problems: []string{"empty scenario document"}}
		}
		return nil, &ValidationError{Problems: []string{fmt.Sprintf("syntax: %v", err)}}
	}
	return p.compile(&file)
}

func (p *Parser) compile(file *dto.ScenarioFile) (*domain.Scenario, error) {
	v := &ValidationError{}
	sc := &domain.Scenario{Name: file.Name}

	cfg, err := decodeConfig(file.Config)
	if err != nil {
		v.add("config: %v", err)
	}
	sc.Config = cfg

	declared := make(map[string]bool, len(file.Participants))
	for i, pf := range file.Participants {
		part, problems := compileParticipant(pf)
		for _, problem := range problems {
			v.add("participant %d: %s", i, problem)
		}
		if part.Name != "" {
			if declared[part.Name] {
				v.add("participant %d: %q declared twice", i, part.Name)
			}
			declared[part.Name] = true
		}
		sc.Participants = append(sc.Participants, part)
	}

	for i, mf := range file.Messages {
		msg, problems := compileMessage(mf, declared)
		for _, problem := range problems {
			v.add("message %d: %s", i, problem)
		}
		sc.Messages = append(sc.Messages, msg)
	}

	if len(v.Problems) > 0 {
		return nil, v
	}
	return sc, nil
}

func decodeConfig(raw map[string]any) (domain.ConfigOverride, error) {
	var cfg domain.ConfigOverride
	if len(raw) == 0 {
		return cfg, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return cfg, err
	}
	if err := dec.Decode(raw); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func compileParticipant(pf dto.ParticipantFile) (domain.Participant, []string) {
	var problems []string
	part := domain.Participant{
		Name:   strings.TrimSpace(pf.Name),
		Type:   strings.TrimSpace(pf.Type),
		Label:  pf.Label,
		Alive:  pf.Alive == nil || *pf.Alive,
		Region: domain.Region{Start: pf.Line, End: pf.Line},
	}
	if part.Name == "" {
		problems = append(problems, "missing name")
	}
	if part.Type == "" {
		problems = append(problems, "missing type")
	}
	if label, err := SanitizeText(part.Label); err != nil {
		problems = append(problems, fmt.Sprintf("label: %v", err))
	} else {
		part.Label = label
	}
	flags, err := domain.ParseFlags(pf.Flags)
	if err != nil {
		problems = append(problems, err.Error())
	}
	part.Flags = flags
	return part, problems
}

func compileMessage(mf dto.MessageFile, declared map[string]bool) (domain.Message, []string) {
	var problems []string
	msg := domain.Message{
		From:   strings.TrimSpace(mf.From),
		To:     strings.TrimSpace(mf.To),
		Text:   mf.Text,
		Thread: mf.Thread,
		Kind:   domain.MessageKind(strings.ToLower(strings.TrimSpace(mf.Kind))),
	}
	if msg.Kind == "" {
		msg.Kind = domain.MessageCall
	}
	if text, err := SanitizeText(msg.Text); err != nil {
		problems = append(problems, fmt.Sprintf("text: %v", err))
	} else {
		msg.Text = text
	}
	switch msg.Kind {
	case domain.MessageCall, domain.MessageCreate, domain.MessageDestroy:
		if msg.To == "" {
			problems = append(problems, fmt.Sprintf("%s needs a receiver", msg.Kind))
		}
	case domain.MessageReturn:
	default:
		problems = append(problems, fmt.Sprintf("unknown kind %q", mf.Kind))
	}
	if msg.Thread < 0 {
		problems = append(problems, fmt.Sprintf("negative thread %d", msg.Thread))
	}
	for _, name := range []string{msg.From, msg.To} {
		if name != "" && !declared[name] {
			problems = append(problems, fmt.Sprintf("undeclared participant %q", name))
		}
	}
	return msg, problems
}
