// Package action defines the terminal alphabet of the instruction language:
// a closed set of directed primitive actions.
package action

import (
	"fmt"
	"strings"
)

// Direction is the side an action is performed towards.
type Direction uint8

const (
	Left Direction = iota
	Right
)

var directionNames = [...]string{
	Left:  "Left",
	Right: "Right",
}

// Valid reports whether d is one of the declared directions.
func (d Direction) Valid() bool { return int(d) < len(directionNames) }

func (d Direction) String() string {
	if d.Valid() {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// MarshalText encodes d as its lower-case name.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(strings.ToLower(directionNames[d])), nil
}

// UnmarshalText accepts any casing of a direction name.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection maps "left"/"right" in any casing to a Direction.
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if strings.EqualFold(s, name) {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Verb is the kind of movement an actor performs.
type Verb uint8

const (
	Jump Verb = iota
	Walk
	Punch
)

var verbNames = [...]string{
	Jump:  "Jump",
	Walk:  "Walk",
	Punch: "Punch",
}

// Valid reports whether v is one of the declared verbs.
func (v Verb) Valid() bool { return int(v) < len(verbNames) }

func (v Verb) String() string {
	if v.Valid() {
		return verbNames[v]
	}
	return fmt.Sprintf("Verb(%d)", int(v))
}

// MarshalText encodes v as its lower-case name.
func (v Verb) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("invalid verb %d", int(v))
	}
	return []byte(strings.ToLower(verbNames[v])), nil
}

// UnmarshalText accepts any casing of a verb name.
func (v *Verb) UnmarshalText(text []byte) error {
	parsed, err := ParseVerb(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseVerb maps "jump"/"walk"/"punch" in any casing to a Verb.
func ParseVerb(s string) (Verb, error) {
	for i, name := range verbNames {
		if strings.EqualFold(s, name) {
			return Verb(i), nil
		}
	}
	return 0, fmt.Errorf("unknown verb %q", s)
}

// Action is a single directed command. It is a comparable value, so two
// actions are equal exactly when verb and direction match, and it can be used
// as a map key.
//
//	Punch(Left)
//	^^^^^ ^^^^
//	Verb  Direction
type Action struct {
	Verb      Verb      `json:"verb" yaml:"verb"`
	Direction Direction `json:"direction" yaml:"direction"`
}

// New builds the action v performed towards d.
func New(v Verb, d Direction) Action {
	return Action{Verb: v, Direction: d}
}

// Valid reports whether both components are in range.
func (a Action) Valid() bool { return a.Verb.Valid() && a.Direction.Valid() }

func (a Action) String() string {
	return fmt.Sprintf("%s(%s)", a.Verb, a.Direction)
}

// Verbs lists every verb in declaration order.
func Verbs() []Verb { return []Verb{Jump, Walk, Punch} }

// Directions lists every direction in declaration order.
func Directions() []Direction { return []Direction{Left, Right} }

// All returns every action, verb-major: Jump(Left), Jump(Right), Walk(Left), ...
func All() []Action {
	out := make([]Action, 0, len(verbNames)*len(directionNames))
	for _, v := range Verbs() {
		for _, d := range Directions() {
			out = append(out, New(v, d))
		}
	}
	return out
}
