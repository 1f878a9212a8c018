package animation

import "image"

// Layout is the grid geometry of a sprite sheet. Frames run left-to-right,
// top-to-bottom.
type Layout struct {
	FrameW int
	FrameH int
	Cols   int
	Rows   int
}

// GridLayout builds a layout of square frames sized sheetWidth / cols.
func GridLayout(sheetWidth, cols, rows int) Layout {
	if cols <= 0 || rows <= 0 {
		return Layout{}
	}
	size := sheetWidth / cols
	return Layout{FrameW: size, FrameH: size, Cols: cols, Rows: rows}
}

func (l Layout) Frames() int {
	return l.Cols * l.Rows
}

// Rect returns the sheet rectangle of the atlas frame at index.
func (l Layout) Rect(index int) image.Rectangle {
	if l.Cols <= 0 || index < 0 {
		return image.Rectangle{}
	}
	col := index % l.Cols
	row := index / l.Cols
	x := col * l.FrameW
	y := row * l.FrameH
	return image.Rect(x, y, x+l.FrameW, y+l.FrameH)
}
