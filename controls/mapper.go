package controls

import (
	"fmt"
	"sort"
)

// Symbol names a raw input symbol. Names follow ebiten's Key.String() output
// ("W", "ArrowUp", "ShiftLeft").
type Symbol string

// Binding maps raw symbols to actions. Several symbols may share one action.
type Binding map[Symbol]Action

// DefaultBinding is the stock keyboard layout.
func DefaultBinding() Binding {
	return Binding{
		"W":          MoveUp,
		"A":          MoveLeft,
		"S":          MoveDown,
		"D":          MoveRight,
		"ArrowUp":    MoveUp,
		"ArrowLeft":  MoveLeft,
		"ArrowDown":  MoveDown,
		"ArrowRight": MoveRight,
		"ShiftLeft":  Run,
		"F":          Attack,
	}
}

// ParseBinding decodes a prefab binding table of symbol -> action name.
func ParseBinding(raw map[string]string) (Binding, error) {
	b := make(Binding, len(raw))
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		a, err := ParseAction(raw[k])
		if err != nil {
			return nil, fmt.Errorf("controls: binding %q: %w", k, err)
		}
		b[Symbol(k)] = a
	}
	return b, nil
}

// Symbols returns every bound symbol, sorted.
func (b Binding) Symbols() []Symbol {
	out := make([]Symbol, 0, len(b))
	for s := range b {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Mapper translates held symbols into actions through a fixed binding.
type Mapper struct {
	binding Binding
}

func NewMapper(binding Binding) *Mapper {
	if binding == nil {
		binding = DefaultBinding()
	}
	return &Mapper{binding: binding}
}

func (m *Mapper) Binding() Binding {
	if m == nil {
		return nil
	}
	return m.binding
}

// Map returns the actions whose bound symbol is held. Unbound symbols are
// ignored and an empty input yields an empty set.
func (m *Mapper) Map(held []Symbol) ActionSet {
	var out ActionSet
	if m == nil {
		return out
	}
	for _, sym := range held {
		if a, ok := m.binding[sym]; ok {
			out = out.Add(a)
		}
	}
	return out
}
