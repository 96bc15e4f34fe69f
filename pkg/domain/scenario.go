package domain

// MessageKind tells the interpreter how a message changes the lifelines.
type MessageKind string

const (
	// MessageCall activates the receiver (or a nested activation of it).
	MessageCall MessageKind = "call"
	// MessageCreate brings the receiver to life and activates it.
	MessageCreate MessageKind = "create"
	// MessageReturn ends the innermost activation of the thread.
	MessageReturn MessageKind = "return"
	// MessageDestroy terminates the receiver and removes it from the diagram.
	MessageDestroy MessageKind = "destroy"
)

// Message is one event of a scenario.
// From is empty for messages that originate outside the diagram.
type Message struct {
	From   string      `json:"from,omitempty" yaml:"from,omitempty"`
	To     string      `json:"to,omitempty" yaml:"to,omitempty"`
	Text   string      `json:"text,omitempty" yaml:"text,omitempty"`
	Thread int         `json:"thread" yaml:"thread"`
	Kind   MessageKind `json:"kind" yaml:"kind"`
}

// Scenario is the full input of a render: configuration, participants and the event stream.
type Scenario struct {
	Name         string         `json:"name" yaml:"name"`
	Config       ConfigOverride `json:"config" yaml:"config"`
	Participants []Participant  `json:"participants" yaml:"participants"`
	Messages     []Message      `json:"messages" yaml:"messages"`
}
