package component

import "github.com/milk9111/topdown/animation"

type Animation struct {
	Playback animation.Playback
}

var AnimationComponent = NewComponent[Animation]()
