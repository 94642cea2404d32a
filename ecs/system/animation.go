package system

import (
	"github.com/milk9111/voxelwalk/anim"
	"github.com/milk9111/voxelwalk/ecs"
	"github.com/milk9111/voxelwalk/ecs/component"
)

// AnimationSystem advances every clip mixer by the tick's delta time,
// whatever the locomotion state.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	dt := w.DeltaTime()
	ecs.ForEach(w, component.AnimationComponent.Kind(), func(e ecs.Entity, an *component.Animation) {
		if an.Mixer == nil {
			if len(an.Clips) == 0 {
				return
			}
			an.Mixer = anim.NewMixer()
		}
		if an.Layer == nil && len(an.Clips) > 0 {
			an.Layer = anim.NewBlendLayer(an.Mixer, anim.BuildClipMap(an.Mixer, an.Clips))
			if loco, ok := ecs.Get(w, e, component.LocomotionComponent.Kind()); ok {
				an.Layer.CrossfadeTo(loco.State)
			}
		}
		an.Mixer.Update(dt)
	})
}
