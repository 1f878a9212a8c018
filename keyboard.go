package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/topdown/controls"
)

// keyboard reports held keys by ebiten key name, which is the symbol
// vocabulary bindings are written in.
type keyboard struct {
	keys []ebiten.Key
}

func (k *keyboard) Held() []controls.Symbol {
	k.keys = inpututil.AppendPressedKeys(k.keys[:0])
	held := make([]controls.Symbol, 0, len(k.keys))
	for _, key := range k.keys {
		held = append(held, controls.Symbol(key.String()))
	}
	return held
}
