package domain

// SegmentID identifies a segment inside the arena that produced it.
type SegmentID int

// NoSegment is the zero reference for optional segments (head of a sub lifeline, missing cross).
const NoSegment SegmentID = -1

// SegmentKind is the graphical primitive a segment stands for.
type SegmentKind string

const (
	// SegmentBar is the rectangle drawn while a lifeline is active.
	SegmentBar SegmentKind = "bar"
	// SegmentLine is the thin line drawn while a lifeline is inactive.
	SegmentLine SegmentKind = "line"
	// SegmentBox is the labeled box heading an object lifeline.
	SegmentBox SegmentKind = "box"
	// SegmentFigure is the stick figure heading an actor lifeline.
	SegmentFigure SegmentKind = "figure"
	// SegmentCross marks the destruction of an object.
	SegmentCross SegmentKind = "cross"
)

// Segment describes one drawable: its kind, owner and vertical extent.
// Values are copies; changing a Segment never changes the lifeline it came from.
type Segment struct {
	ID        SegmentID   `json:"id" yaml:"id"`
	Kind      SegmentKind `json:"kind" yaml:"kind"`
	Owner     string      `json:"owner" yaml:"owner"`
	Label     string      `json:"label,omitempty" yaml:"label,omitempty"`
	Direction Direction   `json:"direction" yaml:"direction"`
	SideLevel int         `json:"side_level" yaml:"side_level"`
	Thread    int         `json:"thread" yaml:"thread"`
	Width     int         `json:"width" yaml:"width"`
	Top       int         `json:"top" yaml:"top"`
	Height    int         `json:"height" yaml:"height"`
	Visible   bool        `json:"visible" yaml:"visible"`

	// MainLine is set on the one line that spans the whole inactive trunk of a lifeline.
	MainLine bool `json:"main_line,omitempty" yaml:"main_line,omitempty"`

	// Head options.
	Anonymous  bool `json:"anonymous,omitempty" yaml:"anonymous,omitempty"`
	Underlined bool `json:"underlined,omitempty" yaml:"underlined,omitempty"`
}

// Bottom is the vertical position where the segment ends.
func (s Segment) Bottom() int {
	return s.Top + s.Height
}

// WithTop moves the segment so that it starts at top, keeping its height.
func (s Segment) WithTop(top int) Segment {
	s.Top = top
	return s
}

// WithHeight returns the segment with a new height.
func (s Segment) WithHeight(h int) Segment {
	s.Height = h
	return s
}

// WithBottom keeps the top and stretches (or shrinks) the segment to end at bottom.
// A bottom above the top collapses the segment to zero height.
func (s Segment) WithBottom(bottom int) Segment {
	s.Height = max(bottom-s.Top, 0)
	return s
}

// IsHead reports whether the segment is a participant head.
func (s Segment) IsHead() bool {
	return s.Kind == SegmentBox || s.Kind == SegmentFigure
}
