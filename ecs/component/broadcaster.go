package component

import "github.com/milk9111/voxelwalk/audio"

// Broadcaster is an in-scene audio source.
type Broadcaster struct {
	Track *audio.Track
	// URL is the source the track was loaded from.
	URL string
	// Gain is the volume last applied for the listener distance.
	Gain  float64
	OnAir bool
}

var BroadcasterComponent = NewComponent[Broadcaster]()
