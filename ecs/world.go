package ecs

import (
	"time"

	"github.com/milk9111/topdown/ecs/component"
)

// World owns entities, component stores, the per-tick event queue and the
// tick's delta time.
type World struct {
	gens  []generation
	alive []bool
	free  []entityID

	stores map[component.ComponentID]store
	events EventQueue
	delta  time.Duration

	physicsWorld *PhysicsWorld
}

func NewWorld() *World {
	return &World{
		// id 0 is reserved so the zero Entity is never valid.
		gens:   []generation{0},
		alive:  []bool{false},
		stores: make(map[component.ComponentID]store),
	}
}

func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

func (w *World) CreateEntity() Entity {
	if n := len(w.free); n > 0 {
		id := w.free[n-1]
		w.free = w.free[:n-1]
		w.alive[id] = true
		return makeEntity(id, w.gens[id])
	}
	id := entityID(len(w.gens))
	w.gens = append(w.gens, 0)
	w.alive = append(w.alive, true)
	return makeEntity(id, 0)
}

// DestroyEntity removes every component of e and recycles its id. It
// returns false for stale or unknown handles.
func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

func (w *World) DestroyEntity(e Entity) bool {
	if !w.IsAlive(e) {
		return false
	}
	id := e.id()
	for _, s := range w.stores {
		s.remove(id)
	}
	w.alive[id] = false
	w.gens[id]++
	w.free = append(w.free, id)
	return true
}

func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	id := e.id()
	if id == 0 || int(id) >= len(w.gens) {
		return false
	}
	return w.alive[id] && w.gens[id] == e.generation()
}

// Entities returns every live entity in id order.
func Entities(w *World) []Entity {
	var out []Entity
	for i := 1; i < len(w.gens); i++ {
		if w.alive[i] {
			out = append(out, makeEntity(entityID(i), w.gens[i]))
		}
	}
	return out
}

func (w *World) entity(id entityID) Entity {
	return makeEntity(id, w.gens[id])
}

// First returns any live entity that has kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	s, ok := w.stores[kind.ID()]
	if !ok {
		return 0, false
	}
	for _, id := range s.ids() {
		if w.alive[id] {
			return w.entity(id), true
		}
	}
	return 0, false
}

// Query returns the live entities that have every kind, in store order of
// the first kind.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if len(kinds) == 0 {
		return nil
	}
	stores := make([]store, 0, len(kinds))
	for _, k := range kinds {
		s, ok := w.stores[k.ID()]
		if !ok {
			return nil
		}
		stores = append(stores, s)
	}

	var out []Entity
outer:
	for _, id := range stores[0].ids() {
		if !w.alive[id] {
			continue
		}
		for _, s := range stores[1:] {
			if !s.has(id) {
				continue outer
			}
		}
		out = append(out, w.entity(id))
	}
	return out
}

// SetDelta records the elapsed time of the tick about to run.
func (w *World) SetDelta(dt time.Duration) {
	w.delta = dt
}

func (w *World) Delta() time.Duration {
	return w.delta
}

// Events returns the world event queue. Events live for one tick.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) SetPhysicsWorld(pw *PhysicsWorld) {
	w.physicsWorld = pw
}

func (w *World) PhysicsWorld() *PhysicsWorld {
	if w == nil {
		return nil
	}
	return w.physicsWorld
}
