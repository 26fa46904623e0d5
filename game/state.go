package game

import "strconv"

// State is the phase of the controller's turn cycle.
type State int

const (
	Init State = iota
	Spawning
	Falling
	Clearing
	Ended
)

var stateNames = [...]string{"Init", "Spawning", "Falling", "Clearing", "Ended"}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// Direction is a decoded player command.
type Direction int

const (
	Left Direction = iota
	Right
	// Up rotates the piece clockwise.
	Up
	// Down accelerates the fall while held.
	Down
)

var directionNames = [...]string{"Left", "Right", "Up", "Down"}

func (d Direction) String() string {
	if d >= 0 && int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "Direction(" + strconv.Itoa(int(d)) + ")"
}
