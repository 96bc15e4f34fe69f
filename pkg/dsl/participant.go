package dsl

import "github.com/aretw0/seqline/pkg/domain"

// ParticipantBuilder configures one participant.
type ParticipantBuilder struct {
	part    domain.Participant
	builder *Builder
}

// Label sets the text of the head box.
func (pb *ParticipantBuilder) Label(label string) *ParticipantBuilder {
	pb.part.Label = label
	return pb
}

// Unborn makes the participant wait for a create message.
func (pb *ParticipantBuilder) Unborn() *ParticipantBuilder {
	pb.part.Alive = false
	return pb
}

// Flag adds a flag.
func (pb *ParticipantBuilder) Flag(f domain.Flag) *ParticipantBuilder {
	pb.part.Flags = pb.part.Flags.With(f)
	return pb
}

// Done returns to the scenario builder.
func (pb *ParticipantBuilder) Done() *Builder {
	return pb.builder
}
