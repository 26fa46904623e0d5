package field

// Status is the occupancy state of a grid cell.
type Status int

const (
	Free Status = iota
	Temporary
	Fixed
)

func (s Status) String() string {
	switch s {
	case Free:
		return "free"
	case Temporary:
		return "temporary"
	case Fixed:
		return "fixed"
	default:
		return "unknown"
	}
}

// Cell is one square of the play field.
type Cell struct {
	Status Status
	Color  uint32
}

// Coord addresses a cell by column and row, row 0 being the top.
type Coord struct {
	Col int
	Row int
}

// Outcome is the result kind of a descend attempt.
type Outcome int

const (
	// Available means the piece moved and keeps falling.
	Available Outcome = iota
	// Collision means the piece was fixed and no row was completed.
	Collision
	// Clear means the piece was fixed and completed the rows in Result.Rows.
	Clear
	// EndGame means the piece could not enter the field.
	EndGame
)

func (o Outcome) String() string {
	switch o {
	case Available:
		return "available"
	case Collision:
		return "collision"
	case Clear:
		return "clear"
	case EndGame:
		return "endgame"
	default:
		return "unknown"
	}
}

// Result reports what happened on a descend attempt. Rows is only set for
// Clear and is sorted ascending.
type Result struct {
	Outcome Outcome
	Rows    []int
}
