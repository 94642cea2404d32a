package component

// Voxel links an entity to an item of the voxels settings domain.
type Voxel struct {
	ID    string
	Color string
}

var VoxelComponent = NewComponent[Voxel]()
