package game

import "fmt"

// ActionKind tags the variant held by an Action.
type ActionKind int

const (
	ActionWait ActionKind = iota
	ActionCollect
	ActionPlace
)

func (k ActionKind) String() string {
	switch k {
	case ActionWait:
		return "wait"
	case ActionCollect:
		return "collect"
	case ActionPlace:
		return "place"
	default:
		return "unknown"
	}
}

// Action is a single agent decision applied between ticks. Only the fields
// relevant to Kind are meaningful.
type Action struct {
	Kind ActionKind

	// Collect
	Target int

	// Place
	Unit UnitKind
	Col  int
	Row  int
}

// Wait does nothing.
func Wait() Action { return Action{Kind: ActionWait} }

// Collect picks up the collectible with the given id.
func Collect(id int) Action { return Action{Kind: ActionCollect, Target: id} }

// Place puts a unit of kind at (col,row).
func Place(kind UnitKind, col, row int) Action {
	return Action{Kind: ActionPlace, Unit: kind, Col: col, Row: row}
}

func (a Action) String() string {
	switch a.Kind {
	case ActionCollect:
		return fmt.Sprintf("collect #%d", a.Target)
	case ActionPlace:
		return fmt.Sprintf("place %s @ (%d,%d)", a.Unit, a.Col, a.Row)
	default:
		return a.Kind.String()
	}
}
