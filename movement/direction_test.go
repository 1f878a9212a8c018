package movement

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/controls"
)

func TestFromActionsPrecedence(t *testing.T) {
	set := controls.NewActionSet
	cases := []struct {
		name    string
		actions controls.ActionSet
		want    Direction
	}{
		{"none", 0, Zero},
		{"run_only", set(controls.Run), Zero},
		{"up", set(controls.MoveUp), Up},
		{"down", set(controls.MoveDown), Down},
		{"left", set(controls.MoveLeft), Left},
		{"right", set(controls.MoveRight), Right},
		{"up_right", set(controls.MoveUp, controls.MoveRight), UpRight},
		{"down_left", set(controls.MoveDown, controls.MoveLeft), DownLeft},
		{"down_right", set(controls.MoveDown, controls.MoveRight), DownRight},
		{"up_left", set(controls.MoveUp, controls.MoveLeft), UpLeft},
		{"up_down_right_is_up_right", set(controls.MoveUp, controls.MoveDown, controls.MoveRight), UpRight},
		{"up_down_left_is_down_left", set(controls.MoveUp, controls.MoveDown, controls.MoveLeft), DownLeft},
		{"all_four_is_up_right", set(controls.MoveUp, controls.MoveDown, controls.MoveLeft, controls.MoveRight), UpRight},
		{"left_right_down_is_down_left", set(controls.MoveLeft, controls.MoveRight, controls.MoveDown), DownLeft},
		{"up_down_is_up", set(controls.MoveUp, controls.MoveDown), Up},
		{"left_right_is_left", set(controls.MoveLeft, controls.MoveRight), Left},
		{"attack_and_run_ignored", set(controls.MoveDown, controls.Attack, controls.Run), Down},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := FromActions(c.actions); got != c.want {
				t.Fatalf("FromActions(%v) = %v, want %v", c.actions, got, c.want)
			}
		})
	}
}

func TestVector(t *testing.T) {
	cases := []struct {
		dir  Direction
		want common.Vec2
	}{
		{Zero, common.Vec2{}},
		{Up, common.Vec2{X: 0, Y: -1}},
		{Down, common.Vec2{X: 0, Y: 1}},
		{Left, common.Vec2{X: -1, Y: 0}},
		{Right, common.Vec2{X: 1, Y: 0}},
		{UpRight, common.Vec2{X: 1, Y: -1}},
		{UpLeft, common.Vec2{X: -1, Y: -1}},
		{DownRight, common.Vec2{X: 1, Y: 1}},
		{DownLeft, common.Vec2{X: -1, Y: 1}},
	}
	for _, c := range cases {
		t.Run(c.dir.String(), func(t *testing.T) {
			if got := c.dir.Vector(nil); got != c.want {
				t.Fatalf("Vector() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestRandomVectorNeverDegenerate(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 10000; i++ {
		v := Random.Vector(rng)
		if math.IsNaN(v.X) || math.IsNaN(v.Y) {
			t.Fatalf("draw %d produced NaN: %v", i, v)
		}
		if l := v.Len(); math.Abs(l-1) > 1e-9 {
			t.Fatalf("draw %d length %f, want 1", i, l)
		}
	}
}

// halfSource makes every Float64 draw exactly 0.5, which maps to 0 after the
// [-1, 1) shift.
type halfSource struct{}

func (halfSource) Uint64() uint64 { return 1 << 52 }

func TestRandomVectorZeroSampleFallsBack(t *testing.T) {
	rng := rand.New(halfSource{})
	v := RandomVector(rng)
	if v != (common.Vec2{X: 1}) {
		t.Fatalf("expected fallback unit x, got %v", v)
	}
}

func TestParseDirectionRoundTrip(t *testing.T) {
	all := append([]Direction{Zero, Random}, Directions[:]...)
	for _, d := range all {
		got, ok := ParseDirection(d.String())
		if !ok || got != d {
			t.Fatalf("ParseDirection(%q) = %v, %v", d.String(), got, ok)
		}
	}
	if _, ok := ParseDirection("north"); ok {
		t.Fatalf("expected unknown direction to fail")
	}
}

func TestFacesLeft(t *testing.T) {
	tests := []struct {
		name    string
		d       Direction
		heading common.Vec2
		want    bool
	}{
		{"left", Left, common.Vec2{}, true},
		{"up_left", UpLeft, common.Vec2{X: 1}, true},
		{"right", Right, common.Vec2{X: -1}, false},
		{"random west", Random, common.Vec2{X: -0.6, Y: 0.8}, true},
		{"random east", Random, common.Vec2{X: 0.6, Y: 0.8}, false},
		{"zero", Zero, common.Vec2{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FacesLeft(tt.d, tt.heading); got != tt.want {
				t.Fatalf("FacesLeft(%s, %v) = %v", tt.d, tt.heading, got)
			}
		})
	}
}

func TestIsNegX(t *testing.T) {
	for _, d := range Directions {
		want := d == Left || d == UpLeft || d == DownLeft
		if d.IsNegX() != want {
			t.Fatalf("%v IsNegX = %v", d, d.IsNegX())
		}
	}
}

func TestMoveCommandVelocity(t *testing.T) {
	cases := []struct {
		name string
		cmd  MoveCommand
		want float64
	}{
		{"walk_cardinal", MoveCommand{Direction: Right, Acceleration: 1, Speed: 200}, 200},
		{"run_cardinal", MoveCommand{Direction: Up, Acceleration: 2, Speed: 200}, 400},
		{"diagonal_normalized", MoveCommand{Direction: DownLeft, Acceleration: 1, Speed: 200}, 200},
		{"zero", MoveCommand{Direction: Zero, Acceleration: 1, Speed: 200}, 0},
		{"zero_accel_defaults_to_one", MoveCommand{Direction: Left, Speed: 50}, 50},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := c.cmd.Velocity(nil)
			if math.Abs(v.Len()-c.want) > 1e-9 {
				t.Fatalf("speed = %f, want %f", v.Len(), c.want)
			}
		})
	}
}

func TestMoveCommandHeldHeading(t *testing.T) {
	cmd := MoveCommand{Direction: Random, Acceleration: 1, Speed: 10, Heading: common.Vec2{X: 0, Y: 1}}
	if v := cmd.Velocity(nil); v != (common.Vec2{X: 0, Y: 10}) {
		t.Fatalf("expected held heading, got %v", v)
	}
}

func TestIntegrate(t *testing.T) {
	pos := Integrate(common.Vec2{X: 10, Y: 10}, MoveCommand{Direction: Down, Acceleration: 2, Speed: 100}, 500*time.Millisecond, nil)
	if pos != (common.Vec2{X: 10, Y: 110}) {
		t.Fatalf("unexpected position %v", pos)
	}
}
