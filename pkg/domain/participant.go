package domain

// ActorType is the participant type that is drawn as a stick figure and is always active.
const ActorType = "Actor"

// LifelineID identifies a lifeline record inside an arena.
type LifelineID int

// Region is a location in the source text of a diagram, kept for UI correlation.
// The engine never interprets it.
type Region struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Participant declares an object or actor of a sequence diagram.
type Participant struct {
	Name   string `json:"name" yaml:"name"`
	Type   string `json:"type" yaml:"type"`
	Label  string `json:"label,omitempty" yaml:"label,omitempty"`
	Alive  bool   `json:"alive" yaml:"alive"`
	Flags  Flags  `json:"flags,omitempty" yaml:"flags,omitempty"`
	Region Region `json:"region,omitempty" yaml:"region,omitempty"`
}

// IsActor reports whether the participant is drawn as an actor.
func (p Participant) IsActor() bool {
	return p.Type == ActorType
}

// DisplayLabel is the text written in the participant head.
// An explicit label wins; anonymous participants show only their type.
func (p Participant) DisplayLabel() string {
	if p.Label != "" {
		return p.Label
	}
	if p.Flags.Has(FlagAnonymous) || p.Name == "" {
		return ":" + p.Type
	}
	if p.IsActor() {
		return p.Name
	}
	return p.Name + ":" + p.Type
}
