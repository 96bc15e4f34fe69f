package domain

import "fmt"

// Direction tells on which side of its root a lifeline branches off.
// Root lifelines are always DirectionCenter.
type Direction int

const (
	DirectionCenter Direction = iota
	DirectionLeft
	DirectionRight
)

// String returns the lower-case name of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionCenter:
		return "center"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// MarshalText implements encoding.TextMarshaler so layouts serialize readable directions.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	switch string(text) {
	case "center", "":
		*d = DirectionCenter
	case "left":
		*d = DirectionLeft
	case "right":
		*d = DirectionRight
	default:
		return fmt.Errorf("unknown direction %q", string(text))
	}
	return nil
}
