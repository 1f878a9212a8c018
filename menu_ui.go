package main

import "github.com/ebitenui/ebitenui"

// NewMainMenuUI builds the title screen. Play starts a fresh world each time.
func NewMainMenuUI(g *Game) *ebitenui.UI {
	return newPanelUI("Knight", 255,
		menuButton{label: "Play", onClick: g.startGame},
		menuButton{label: "Quit", onClick: func() { g.quit = true }},
	)
}
