package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/seqline/pkg/domain"
)

// Builder manages the scenario construction.
type Builder struct {
	name     string
	config   domain.ConfigOverride
	order    []string
	parts    map[string]*ParticipantBuilder
	messages []domain.Message
	thread   int
	errs     []error
}

// New creates a new scenario builder.
func New(name string) *Builder {
	return &Builder{
		name:  name,
		parts: make(map[string]*ParticipantBuilder),
	}
}

// Config sets geometry overrides. Nil fields keep the engine defaults.
func (b *Builder) Config(cfg domain.ConfigOverride) *Builder {
	b.config = cfg
	return b
}

// Participant declares a participant, alive from the start.
// If the participant already exists, it returns the existing builder.
func (b *Builder) Participant(name, typ string) *ParticipantBuilder {
	if pb, ok := b.parts[name]; ok {
		return pb
	}
	pb := &ParticipantBuilder{
		part:    domain.Participant{Name: name, Type: typ, Alive: true},
		builder: b,
	}
	b.parts[name] = pb
	b.order = append(b.order, name)
	return pb
}

// Actor declares a stick figure participant.
func (b *Builder) Actor(name string) *ParticipantBuilder {
	return b.Participant(name, domain.ActorType)
}

// Thread selects the thread of the messages added next.
func (b *Builder) Thread(thread int) *Builder {
	if thread < 0 {
		b.errs = append(b.errs, fmt.Errorf("negative thread %d", thread))
		return b
	}
	b.thread = thread
	return b
}

// Call adds a synchronous call. An empty from means the call enters from outside the diagram.
func (b *Builder) Call(from, to, text string) *Builder {
	return b.add(domain.Message{From: from, To: to, Text: text, Kind: domain.MessageCall})
}

// Create adds a message bringing to to life.
func (b *Builder) Create(from, to, text string) *Builder {
	return b.add(domain.Message{From: from, To: to, Text: text, Kind: domain.MessageCreate})
}

// Destroy adds a message ending the life of to.
func (b *Builder) Destroy(from, to string) *Builder {
	return b.add(domain.Message{From: from, To: to, Kind: domain.MessageDestroy})
}

// Return ends the innermost activation of the current thread.
func (b *Builder) Return() *Builder {
	return b.add(domain.Message{Kind: domain.MessageReturn})
}

// ReturnWith ends the innermost activation of the current thread with a labelled arrow.
func (b *Builder) ReturnWith(text string) *Builder {
	return b.add(domain.Message{Text: text, Kind: domain.MessageReturn})
}

func (b *Builder) add(msg domain.Message) *Builder {
	msg.Thread = b.thread
	b.messages = append(b.messages, msg)
	return b
}

// Build checks the names used by messages and returns the scenario.
func (b *Builder) Build() (*domain.Scenario, error) {
	errs := append([]error(nil), b.errs...)
	if err := b.config.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("config: %w", err))
	}
	for i, msg := range b.messages {
		for _, name := range []string{msg.From, msg.To} {
			if name == "" {
				continue
			}
			if _, ok := b.parts[name]; !ok {
				errs = append(errs, fmt.Errorf("message %d: undeclared participant %q", i, name))
			}
		}
		if msg.Kind != domain.MessageReturn && msg.To == "" {
			errs = append(errs, fmt.Errorf("message %d: %s needs a receiver", i, msg.Kind))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("failed to build scenario %s: %w", b.name, err)
	}

	sc := &domain.Scenario{
		Name:     b.name,
		Config:   b.config,
		Messages: append([]domain.Message(nil), b.messages...),
	}
	for _, name := range b.order {
		sc.Participants = append(sc.Participants, b.parts[name].part)
	}
	return sc, nil
}
