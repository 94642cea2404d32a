package component

import "github.com/milk9111/voxelwalk/anim"

// Animation binds a character to its clip mixer and locomotion blend layer.
type Animation struct {
	Clips []anim.Clip
	Mixer *anim.Mixer
	Layer *anim.BlendLayer
}

var AnimationComponent = NewComponent[Animation]()
