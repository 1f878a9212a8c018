package statemachine

import (
	"fmt"
	"log"

	"github.com/milk9111/topdown/animation"
	"github.com/milk9111/topdown/controls"
)

type MovementState uint8

const (
	MovementIdle MovementState = iota
	MovementWalk
	MovementRun
)

func (s MovementState) String() string {
	switch s {
	case MovementIdle:
		return "idle"
	case MovementWalk:
		return "walk"
	case MovementRun:
		return "run"
	default:
		return fmt.Sprintf("movement(%d)", uint8(s))
	}
}

type AttackState uint8

const (
	AttackIdle AttackState = iota
	Attacking
)

func (s AttackState) String() string {
	switch s {
	case AttackIdle:
		return "idle"
	case Attacking:
		return "attacking"
	default:
		return fmt.Sprintf("attack(%d)", uint8(s))
	}
}

// TransitMovement applies at most one movement transition for actions and
// reports whether the state changed. Run never drops straight to Idle.
func TransitMovement(s *MovementState, actions controls.ActionSet) bool {
	next := *s
	switch *s {
	case MovementIdle:
		if actions.HasMovement() {
			next = MovementWalk
		}
	case MovementWalk:
		if !actions.HasMovement() {
			next = MovementIdle
		} else if actions.Has(controls.Run) {
			next = MovementRun
		}
	case MovementRun:
		if !actions.Has(controls.Run) {
			next = MovementWalk
		}
	default:
	}

	if next == *s {
		return false
	}
	log.Printf("statemachine: movement %s -> %s", *s, next)
	*s = next
	return true
}

// TransitAttack follows the Attack action: held means Attacking.
func TransitAttack(s *AttackState, actions controls.ActionSet) bool {
	next := *s
	switch *s {
	case AttackIdle:
		if actions.Has(controls.Attack) {
			next = Attacking
		}
	case Attacking:
		if !actions.Has(controls.Attack) {
			next = AttackIdle
		}
	default:
	}

	if next == *s {
		return false
	}
	log.Printf("statemachine: attack %s -> %s", *s, next)
	*s = next
	return true
}

// Character holds both sub-machines of one controllable character.
type Character struct {
	Movement MovementState
	Attack   AttackState
}

func (c *Character) Step(actions controls.ActionSet) (movementChanged, attackChanged bool) {
	movementChanged = TransitMovement(&c.Movement, actions)
	attackChanged = TransitAttack(&c.Attack, actions)
	return movementChanged, attackChanged
}

func (c Character) Family() animation.Family {
	return Visual(c.Movement, c.Attack)
}

// Visual picks the animation family for a state pair. Attacking wins over
// any movement state.
func Visual(m MovementState, a AttackState) animation.Family {
	if a == Attacking {
		return animation.Attack
	}
	switch m {
	case MovementWalk:
		return animation.Walk
	case MovementRun:
		return animation.Run
	default:
		return animation.Idle
	}
}
