package component

import "github.com/milk9111/topdown/controls"

// Input maps held keys to actions for one entity.
type Input struct {
	Mapper *controls.Mapper
	Last   controls.ActionSet
}

var InputComponent = NewComponent[Input]()
