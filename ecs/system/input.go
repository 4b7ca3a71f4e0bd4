package system

import (
	"github.com/milk9111/saiyanquest/ecs"
	"github.com/milk9111/saiyanquest/ecs/component"
)

// InputLatchSystem runs last and latches button state so held buttons only
// fire on the frame they went down.
type InputLatchSystem struct{}

func NewInputLatchSystem() *InputLatchSystem {
	return &InputLatchSystem{}
}

func (s *InputLatchSystem) Update(w *ecs.World, _ float64) {
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		in.EndFrame()
	})
}
