package domain

import "slices"

// ParticipantLayout is the rendered state of one participant.
type ParticipantLayout struct {
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Label     string    `json:"label"`
	Position  int       `json:"position"`
	Flags     []string  `json:"flags,omitempty"`
	Head      Segment   `json:"head"`
	Views     []Segment `json:"views"`
	Cross     *Segment  `json:"cross,omitempty"`
	Alive     bool      `json:"alive"`
	Destroyed bool      `json:"destroyed"`
	Region    Region    `json:"region"`
}

// MessageLayout is an arrow between two participants at a vertical position.
type MessageLayout struct {
	From     string      `json:"from,omitempty"`
	To       string      `json:"to"`
	FromPos  int         `json:"from_pos"`
	ToPos    int         `json:"to_pos"`
	Text     string      `json:"text,omitempty"`
	Kind     MessageKind `json:"kind"`
	Thread   int         `json:"thread"`
	Y        int         `json:"y"`
	FromSide Direction   `json:"from_side"`
	ToSide   Direction   `json:"to_side"`
	FromLvl  int         `json:"from_level"`
	ToLvl    int         `json:"to_level"`
}

// Layout is the complete result of interpreting a scenario.
type Layout struct {
	Name         string              `json:"name"`
	Config       Config              `json:"config"`
	Participants []ParticipantLayout `json:"participants"`
	Messages     []MessageLayout     `json:"messages"`
	Extras       []Segment           `json:"extras,omitempty"`
	Height       int                 `json:"height"`
}

// Participant looks up a participant layout by name.
func (l *Layout) Participant(name string) (ParticipantLayout, bool) {
	for _, p := range l.Participants {
		if p.Name == name {
			return p, true
		}
	}
	return ParticipantLayout{}, false
}

// Clone returns a deep copy of the layout.
func (l *Layout) Clone() *Layout {
	out := *l
	out.Participants = make([]ParticipantLayout, len(l.Participants))
	for i, p := range l.Participants {
		p.Flags = slices.Clone(p.Flags)
		p.Views = slices.Clone(p.Views)
		if p.Cross != nil {
			c := *p.Cross
			p.Cross = &c
		}
		out.Participants[i] = p
	}
	out.Messages = slices.Clone(l.Messages)
	out.Extras = slices.Clone(l.Extras)
	return &out
}
