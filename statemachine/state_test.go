package statemachine

import (
	"testing"

	"github.com/milk9111/topdown/animation"
	"github.com/milk9111/topdown/controls"
)

func TestTransitMovement(t *testing.T) {
	tests := []struct {
		name    string
		from    MovementState
		actions controls.ActionSet
		want    MovementState
		changed bool
	}{
		{"idle stays idle", MovementIdle, controls.NewActionSet(), MovementIdle, false},
		{"idle ignores run alone", MovementIdle, controls.NewActionSet(controls.Run), MovementIdle, false},
		{"idle to walk", MovementIdle, controls.NewActionSet(controls.MoveUp), MovementWalk, true},
		{"idle to walk even with run", MovementIdle, controls.NewActionSet(controls.MoveUp, controls.Run), MovementWalk, true},
		{"walk to idle", MovementWalk, controls.NewActionSet(controls.Attack), MovementIdle, true},
		{"walk to idle checked before run", MovementWalk, controls.NewActionSet(controls.Run), MovementIdle, true},
		{"walk to run", MovementWalk, controls.NewActionSet(controls.MoveLeft, controls.Run), MovementRun, true},
		{"walk stays walk", MovementWalk, controls.NewActionSet(controls.MoveLeft), MovementWalk, false},
		{"run to walk", MovementRun, controls.NewActionSet(controls.MoveLeft), MovementWalk, true},
		{"run to walk not idle", MovementRun, controls.NewActionSet(), MovementWalk, true},
		{"run stays run", MovementRun, controls.NewActionSet(controls.Run), MovementRun, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.from
			changed := TransitMovement(&s, tt.actions)
			if s != tt.want || changed != tt.changed {
				t.Fatalf("got %s (changed=%v), want %s (changed=%v)", s, changed, tt.want, tt.changed)
			}
		})
	}
}

func TestTransitAttack(t *testing.T) {
	s := AttackIdle
	if TransitAttack(&s, controls.NewActionSet(controls.MoveUp)) || s != AttackIdle {
		t.Fatalf("attack changed without attack action")
	}
	if !TransitAttack(&s, controls.NewActionSet(controls.Attack)) || s != Attacking {
		t.Fatalf("expected attacking")
	}
	if TransitAttack(&s, controls.NewActionSet(controls.Attack)) {
		t.Fatalf("held attack should not report a change")
	}
	if !TransitAttack(&s, controls.NewActionSet()) || s != AttackIdle {
		t.Fatalf("expected attack idle")
	}
}

func TestCharacterAttackRoundTrip(t *testing.T) {
	var c Character
	steps := []struct {
		actions controls.ActionSet
		family  animation.Family
	}{
		{controls.NewActionSet(), animation.Idle},
		{controls.NewActionSet(controls.Attack), animation.Attack},
		{controls.NewActionSet(), animation.Idle},
	}
	for i, step := range steps {
		c.Step(step.actions)
		if got := c.Family(); got != step.family {
			t.Fatalf("step %d: family %s, want %s", i, got, step.family)
		}
	}
}

func TestVisualAttackPrecedence(t *testing.T) {
	for _, m := range []MovementState{MovementIdle, MovementWalk, MovementRun} {
		if got := Visual(m, Attacking); got != animation.Attack {
			t.Fatalf("Visual(%s, attacking) = %s", m, got)
		}
	}
	if Visual(MovementRun, AttackIdle) != animation.Run {
		t.Fatalf("expected run family")
	}
	if Visual(MovementWalk, AttackIdle) != animation.Walk {
		t.Fatalf("expected walk family")
	}
}
