package ecs

import (
	"fmt"

	"github.com/milk9111/topdown/ecs/component"
)

func storeFor[T any](w *World, kind component.ComponentKind[T]) *sparseSet[T] {
	s, ok := w.stores[kind.ID()]
	if !ok {
		return nil
	}
	return s.(*sparseSet[T])
}

// Add sets e's component of kind, replacing any existing value.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.IsAlive(e) {
		return fmt.Errorf("%w: %s", component.ErrEntityNotAlive, e)
	}
	s := storeFor(w, kind)
	if s == nil {
		s = newSparseSet[T]()
		w.stores[kind.ID()] = s
	}
	s.set(e.id(), value)
	return nil
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	s := storeFor(w, kind)
	if s == nil {
		return nil, false
	}
	return s.get(e.id())
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	_, ok := Get(w, e, kind)
	return ok
}

// ForEach visits every live entity with kind. fn must not add or remove
// components of kind.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s := storeFor(w, kind)
	if s == nil {
		return
	}
	for i := 0; i < s.len(); i++ {
		id := s.dense[i]
		if w.alive[id] {
			fn(w.entity(id), s.values[i])
		}
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa, sb := storeFor(w, ka), storeFor(w, kb)
	if sa == nil || sb == nil {
		return
	}
	for i := 0; i < sa.len(); i++ {
		id := sa.dense[i]
		if !w.alive[id] {
			continue
		}
		b, ok := sb.get(id)
		if !ok {
			continue
		}
		fn(w.entity(id), sa.values[i], b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sa, sb, sc := storeFor(w, ka), storeFor(w, kb), storeFor(w, kc)
	if sa == nil || sb == nil || sc == nil {
		return
	}
	for i := 0; i < sa.len(); i++ {
		id := sa.dense[i]
		if !w.alive[id] {
			continue
		}
		b, ok := sb.get(id)
		if !ok {
			continue
		}
		c, ok := sc.get(id)
		if !ok {
			continue
		}
		fn(w.entity(id), sa.values[i], b, c)
	}
}
