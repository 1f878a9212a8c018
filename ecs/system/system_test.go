package system

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/milk9111/topdown/animation"
	"github.com/milk9111/topdown/controls"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/ecs/entity"
	"github.com/milk9111/topdown/movement"
	"github.com/milk9111/topdown/prefabs"
)

const tick = time.Second / 60

type heldKeys []controls.Symbol

func (h *heldKeys) Held() []controls.Symbol { return *h }

// recorder records the events still queued at the end of a tick.
type recorder struct {
	animates []AnimateEvent
	moves    []MoveEvent
}

func (p *recorder) Update(w *ecs.World) {
	p.animates = append(p.animates, ecs.Read[AnimateEvent](w)...)
	p.moves = append(p.moves, ecs.Read[MoveEvent](w)...)
}

func (p *recorder) reset() {
	p.animates = nil
	p.moves = nil
}

func testLibrary(t *testing.T) *animation.Library {
	t.Helper()
	lengths := map[animation.Family]int{
		animation.Idle:   16,
		animation.Walk:   10,
		animation.Run:    7,
		animation.Attack: 14,
	}
	b := animation.NewBuilder()
	for fam, last := range lengths {
		for _, d := range append([]movement.Direction{movement.Zero}, movement.Directions[:]...) {
			err := b.Register(animation.Key{Family: fam, Direction: d}, animation.Asset{
				Indices: animation.Indices{First: 0, Last: last},
				Frame:   70 * time.Millisecond,
				Layout:  animation.Layout{FrameW: 32, FrameH: 32, Cols: 4, Rows: 5},
				Texture: animation.TextureID(fam.String() + "/" + d.String()),
			})
			if err != nil {
				t.Fatalf("register: %v", err)
			}
		}
	}
	lib, err := b.Build(animation.Families[:]...)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return lib
}

type harness struct {
	w      *ecs.World
	keys   *heldKeys
	events *recorder
	sched  *ecs.Scheduler
	player ecs.Entity
	camera ecs.Entity
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	lib := testLibrary(t)

	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld())
	player, err := entity.NewPlayer(w, entity.Resources{Library: lib})
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	camera, err := entity.NewCameraAt(w, 0, 0)
	if err != nil {
		t.Fatalf("camera: %v", err)
	}

	keys := &heldKeys{}
	p := &recorder{}
	sched := NewPipeline(keys, lib, prefabs.LoadScript, 1)
	sched.Add(p)
	return &harness{w: w, keys: keys, events: p, sched: sched, player: player, camera: camera}
}

func (h *harness) step(held ...controls.Symbol) {
	*h.keys = held
	h.w.SetDelta(tick)
	h.sched.Update(h.w)
}

func (h *harness) playback(t *testing.T) animation.Playback {
	t.Helper()
	anim, ok := ecs.Get(h.w, h.player, component.AnimationComponent.Kind())
	if !ok {
		t.Fatalf("player lost its animation")
	}
	return anim.Playback
}

func (h *harness) position(t *testing.T) (float64, float64) {
	t.Helper()
	tr, ok := ecs.Get(h.w, h.player, component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("player lost its transform")
	}
	return tr.X, tr.Y
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestPlayerWalksUp(t *testing.T) {
	h := newHarness(t)

	h.step("W")
	x, y := h.position(t)
	if !near(x, 640) || !near(y, 360-200*tick.Seconds()) {
		t.Fatalf("unexpected position (%v, %v)", x, y)
	}
	if got := h.playback(t).Key; got != (animation.Key{Family: animation.Walk, Direction: movement.Up}) {
		t.Fatalf("expected walk/up, got %s", got)
	}

	h.events.reset()
	h.step("W")
	h.step("W")
	if len(h.events.animates) != 0 {
		t.Fatalf("holding a key must not re-emit animate events, got %v", h.events.animates)
	}
	if len(h.events.moves) != 2 {
		t.Fatalf("expected one move per tick, got %d", len(h.events.moves))
	}

	h.step()
	if got := h.playback(t).Key; got != (animation.Key{Family: animation.Idle, Direction: movement.Zero}) {
		t.Fatalf("expected idle/zero after release, got %s", got)
	}
	_, before := h.position(t)
	h.step()
	if _, after := h.position(t); !near(before, after) {
		t.Fatalf("player kept moving without input: %v -> %v", before, after)
	}
}

func TestPlayerRunDoublesSpeed(t *testing.T) {
	h := newHarness(t)

	h.step("D", "ShiftLeft")
	if got := h.playback(t).Key.Family; got != animation.Walk {
		t.Fatalf("first tick should walk, got %s", got)
	}
	x0, _ := h.position(t)
	if !near(x0, 640+400*tick.Seconds()) {
		t.Fatalf("expected run speed on the first tick, got x=%v", x0)
	}

	h.step("D", "ShiftLeft")
	if got := h.playback(t).Key; got != (animation.Key{Family: animation.Run, Direction: movement.Right}) {
		t.Fatalf("expected run/right, got %s", got)
	}

	h.step("D")
	if got := h.playback(t).Key.Family; got != animation.Walk {
		t.Fatalf("releasing run should walk, got %s", got)
	}
}

func TestDiagonalSpeedIsNormalized(t *testing.T) {
	h := newHarness(t)
	h.step("W", "D")
	x, y := h.position(t)
	dist := math.Hypot(x-640, y-360)
	if !near(dist, 200*tick.Seconds()) {
		t.Fatalf("diagonal moved %v, want %v", dist, 200*tick.Seconds())
	}
	if got := h.playback(t).Key.Direction; got != movement.UpRight {
		t.Fatalf("expected up_right, got %s", got)
	}
}

func TestAttackRoundTrip(t *testing.T) {
	h := newHarness(t)

	h.step()
	if len(h.events.animates) != 0 {
		t.Fatalf("idle start should not switch clips")
	}
	h.step("F")
	if got := h.playback(t).Key.Family; got != animation.Attack {
		t.Fatalf("expected attack, got %s", got)
	}
	h.step("F", "W")
	if got := h.playback(t).Key; got != (animation.Key{Family: animation.Attack, Direction: movement.Up}) {
		t.Fatalf("attack should win over walk, got %s", got)
	}
	h.step()
	if got := h.playback(t).Key.Family; got != animation.Idle {
		t.Fatalf("expected idle, got %s", got)
	}
	if len(h.events.animates) != 3 {
		t.Fatalf("expected 3 clip switches, got %d", len(h.events.animates))
	}
}

func TestAnimationAdvancesAndClamps(t *testing.T) {
	h := newHarness(t)

	// 12 idle frames at 70ms with 1/60s ticks.
	for i := 0; i < 51; i++ {
		h.step()
	}
	if got := h.playback(t).Index; got != 12 {
		t.Fatalf("expected idle index 12, got %d", got)
	}

	h.step("D", "ShiftLeft")
	h.step("D", "ShiftLeft")
	p := h.playback(t)
	if p.Key.Family != animation.Run || p.Index > 7 {
		t.Fatalf("run clip should clamp into [0, 7], got %s at %d", p.Key, p.Index)
	}

	sprite, _ := ecs.Get(h.w, h.player, component.SpriteComponent.Kind())
	if sprite.Texture != "run/right" || sprite.Source != p.Layout.Rect(p.Index) {
		t.Fatalf("sprite not synced with playback: %+v", sprite)
	}
}

func TestAnimateEventsApplyInArrivalOrder(t *testing.T) {
	lib := testLibrary(t)
	walkUp := animation.Key{Family: animation.Walk, Direction: movement.Up}
	runLeft := animation.Key{Family: animation.Run, Direction: movement.Left}

	tests := []struct {
		name      string
		keys      []animation.Key
		wantKey   animation.Key
		wantIndex int
	}{
		{name: "walk then run", keys: []animation.Key{walkUp, runLeft}, wantKey: runLeft, wantIndex: 7},
		{name: "run then walk", keys: []animation.Key{runLeft, walkUp}, wantKey: walkUp, wantIndex: 7},
		{name: "walk only", keys: []animation.Key{walkUp}, wantKey: walkUp, wantIndex: 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := ecs.CreateEntity(w)
			playback, err := animation.NewPlayback(lib, animation.Key{Family: animation.Idle, Direction: movement.Down})
			if err != nil {
				t.Fatal(err)
			}
			playback.Index = 9
			if err := ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{Playback: playback}); err != nil {
				t.Fatal(err)
			}
			if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{}); err != nil {
				t.Fatal(err)
			}
			for _, key := range tt.keys {
				ecs.Emit(w, EventAnimate, AnimateEvent{Entity: e, Key: key})
			}

			NewAnimationSystem(lib).Update(w)

			anim, _ := ecs.Get(w, e, component.AnimationComponent.Kind())
			if anim.Playback.Key != tt.wantKey || anim.Playback.Index != tt.wantIndex {
				t.Fatalf("expected %s at %d, got %s at %d", tt.wantKey, tt.wantIndex, anim.Playback.Key, anim.Playback.Index)
			}
			sprite, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
			if sprite.Texture != animation.TextureID(tt.wantKey.String()) {
				t.Fatalf("sprite shows %s, want %s", sprite.Texture, tt.wantKey)
			}
		})
	}
}

func TestAnimationSystemPanicsOnMissingClip(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{}); err != nil {
		t.Fatal(err)
	}
	ecs.Emit(w, EventAnimate, AnimateEvent{Entity: e, Key: animation.Key{Family: animation.Run, Direction: movement.Up}})

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic")
		}
	}()
	empty, err := animation.NewBuilder().Build()
	if err != nil {
		t.Fatal(err)
	}
	NewAnimationSystem(empty).Update(w)
}

func TestCameraFollowsPlayer(t *testing.T) {
	h := newHarness(t)

	w := h.w
	w.SetDelta(100 * time.Millisecond)
	NewCameraSystem().Update(w)

	cam, _ := ecs.Get(w, h.camera, component.TransformComponent.Kind())
	if !near(cam.X, 128) || !near(cam.Y, 72) {
		t.Fatalf("expected camera at (128, 72), got (%v, %v)", cam.X, cam.Y)
	}

	w.SetDelta(10 * time.Second)
	NewCameraSystem().Update(w)
	if !near(cam.X, 640) || !near(cam.Y, 360) {
		t.Fatalf("large steps should land on the target, got (%v, %v)", cam.X, cam.Y)
	}
}

func TestCameraPanicsWithoutPlayer(t *testing.T) {
	w := ecs.NewWorld()
	if _, err := entity.NewCamera(w); err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic without a player")
		}
	}()
	NewCameraSystem().Update(w)
}

func TestInputEmitsOnlyWhenNonEmpty(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{Mapper: controls.NewMapper(nil)}); err != nil {
		t.Fatal(err)
	}

	keys := &heldKeys{"Q"}
	NewInputSystem(keys).Update(w)
	if n := len(ecs.Read[ActionEvent](w)); n != 0 {
		t.Fatalf("unbound keys should not emit, got %d", n)
	}

	*keys = heldKeys{"A", "F"}
	NewInputSystem(keys).Update(w)
	got := ecs.Read[ActionEvent](w)
	if len(got) != 1 || got[0].Command.Actions != controls.NewActionSet(controls.MoveLeft, controls.Attack) {
		t.Fatalf("unexpected commands %v", got)
	}
}

func TestMovementWithoutBodyIntegrates(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: 10, Y: 10}); err != nil {
		t.Fatal(err)
	}
	w.SetDelta(500 * time.Millisecond)
	ecs.Emit(w, EventMove, MoveEvent{Entity: e, Command: movement.MoveCommand{Direction: movement.Left, Speed: 100, Acceleration: 1}})
	NewMovementSystem(1).Update(w)

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if !near(tr.X, -40) || !near(tr.Y, 10) {
		t.Fatalf("unexpected position (%v, %v)", tr.X, tr.Y)
	}
}

func scriptOf(src string) ScriptSource {
	return func(string) ([]byte, error) { return []byte(src), nil }
}

func newWanderer(t *testing.T, w *ecs.World, wd component.Wanderer) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, e, component.WandererComponent.Kind(), &wd); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestWanderHoldsHeadingUntilNextDecision(t *testing.T) {
	w := ecs.NewWorld()
	newWanderer(t, w, component.Wanderer{Script: "always.tengo", Speed: 50, Decide: time.Second, Elapsed: time.Second})
	ws := NewWanderSystem(scriptOf(`direction := "random"`), 7)

	w.SetDelta(tick)
	ws.Update(w)
	first := ecs.Read[MoveEvent](w)
	if len(first) != 1 || first[0].Command.Direction != movement.Random {
		t.Fatalf("expected one random move, got %v", first)
	}
	heading := first[0].Command.Heading
	if !near(heading.Len(), 1) {
		t.Fatalf("heading should be a unit vector, got %v", heading)
	}

	ws.Update(w)
	second := ecs.Read[MoveEvent](w)
	if second[len(second)-1].Command.Heading != heading {
		t.Fatalf("heading changed inside the decision window")
	}
}

func TestWanderRestsAndReturnsHome(t *testing.T) {
	w := ecs.NewWorld()
	rest := newWanderer(t, w, component.Wanderer{Script: "wander.tengo", Rest: 1, Speed: 50, Decide: time.Second, Elapsed: time.Second, BoundsW: 100, BoundsH: 100})
	far := newWanderer(t, w, component.Wanderer{Script: "wander.tengo", Rest: 1, Speed: 50, Decide: time.Second, Elapsed: time.Second, BoundsW: 100, BoundsH: 100})
	tr, _ := ecs.Get(w, far, component.TransformComponent.Kind())
	tr.X = 300

	w.SetDelta(tick)
	NewWanderSystem(prefabs.LoadScript, 3).Update(w)

	moves := ecs.Read[MoveEvent](w)
	if len(moves) != 1 || moves[0].Entity != far {
		t.Fatalf("only the far wanderer should move, got %v", moves)
	}
	if h := moves[0].Command.Heading; !near(h.X, -1) || !near(h.Y, 0) {
		t.Fatalf("expected heading home, got %v", h)
	}
	wd, _ := ecs.Get(w, rest, component.WandererComponent.Kind())
	if wd.Direction != movement.Zero {
		t.Fatalf("resting wanderer should face zero, got %s", wd.Direction)
	}
}

func TestWanderTurnsSpriteTowardMotion(t *testing.T) {
	tests := []struct {
		decision  string
		startLeft bool
		wantLeft  bool
	}{
		{decision: "left", wantLeft: true},
		{decision: "down_left", wantLeft: true},
		{decision: "right", startLeft: true, wantLeft: false},
		{decision: "up", startLeft: true, wantLeft: false},
		{decision: "zero", startLeft: true, wantLeft: true},
		{decision: "zero", startLeft: false, wantLeft: false},
	}
	for _, tt := range tests {
		t.Run(tt.decision, func(t *testing.T) {
			w := ecs.NewWorld()
			e := newWanderer(t, w, component.Wanderer{Script: "fixed.tengo", Speed: 10, Decide: time.Second, Elapsed: time.Second})
			if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Width: 4, Height: 4, FacingLeft: tt.startLeft}); err != nil {
				t.Fatal(err)
			}

			w.SetDelta(tick)
			NewWanderSystem(scriptOf(`direction := "`+tt.decision+`"`), 1).Update(w)

			sprite, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
			if sprite.FacingLeft != tt.wantLeft {
				t.Fatalf("expected FacingLeft %v, got %v", tt.wantLeft, sprite.FacingLeft)
			}
		})
	}
}

func TestWanderBadScriptPanics(t *testing.T) {
	w := ecs.NewWorld()
	newWanderer(t, w, component.Wanderer{Script: "broken.tengo", Speed: 1, Decide: time.Second, Elapsed: time.Second})
	ws := NewWanderSystem(func(string) ([]byte, error) { return nil, errors.New("missing") }, 1)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unloadable script")
		}
	}()
	w.SetDelta(tick)
	ws.Update(w)
}
