package controls

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownAction = errors.New("controls: unknown action")

// Action is a semantic input symbol derived from raw key state.
type Action uint8

const (
	Idle Action = iota
	MoveUp
	MoveDown
	MoveLeft
	MoveRight
	Attack
	Run

	actionCount
)

var actionNames = [actionCount]string{
	Idle:      "idle",
	MoveUp:    "move_up",
	MoveDown:  "move_down",
	MoveLeft:  "move_left",
	MoveRight: "move_right",
	Attack:    "attack",
	Run:       "run",
}

func (a Action) String() string {
	if a >= actionCount {
		return fmt.Sprintf("action(%d)", uint8(a))
	}
	return actionNames[a]
}

// ParseAction resolves a prefab action name such as "move_up".
func ParseAction(name string) (Action, error) {
	clean := strings.ToLower(strings.TrimSpace(name))
	for i, n := range actionNames {
		if n == clean {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// ActionSet is the set of actions active during one tick. It is a bit set, so
// duplicates cannot exist and there is no ordering.
type ActionSet uint16

var movementActions = NewActionSet(MoveUp, MoveDown, MoveLeft, MoveRight)

func NewActionSet(actions ...Action) ActionSet {
	var s ActionSet
	for _, a := range actions {
		s = s.Add(a)
	}
	return s
}

func (s ActionSet) Add(a Action) ActionSet {
	if a >= actionCount {
		return s
	}
	return s | 1<<a
}

func (s ActionSet) Has(a Action) bool {
	return a < actionCount && s&(1<<a) != 0
}

// HasAny reports whether any of the given actions is in the set.
func (s ActionSet) HasAny(actions ...Action) bool {
	return s&NewActionSet(actions...) != 0
}

// HasMovement reports whether any directional movement action is held.
func (s ActionSet) HasMovement() bool {
	return s&movementActions != 0
}

func (s ActionSet) Empty() bool {
	return s == 0
}

func (s ActionSet) Len() int {
	n := 0
	for a := Action(0); a < actionCount; a++ {
		if s.Has(a) {
			n++
		}
	}
	return n
}

// Actions lists the members in declaration order.
func (s ActionSet) Actions() []Action {
	out := make([]Action, 0, s.Len())
	for a := Action(0); a < actionCount; a++ {
		if s.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

func (s ActionSet) String() string {
	names := make([]string, 0, s.Len())
	for _, a := range s.Actions() {
		names = append(names, a.String())
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// ActionCommand notifies downstream systems of the actions held this tick.
// It is only emitted for non-empty sets.
type ActionCommand struct {
	Actions ActionSet
}
