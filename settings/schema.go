package settings

import "fmt"

// FieldKind tells a UI layer which control a field needs.
type FieldKind int

const (
	FieldToggle FieldKind = iota
	FieldRange
	FieldEnum
	FieldColor
	FieldText
	FieldAction
)

// Option is one choice of an enum field.
type Option struct {
	Label string
	Value string
}

// Field describes one editable setting. Key is the yaml key inside the
// domain; for FieldAction it names the Action handled by Apply.
type Field struct {
	Key     string
	Label   string
	Kind    FieldKind
	Min     float64
	Max     float64
	Step    float64
	Options []Option
}

func toggle(key, label string) Field {
	return Field{Key: key, Label: label, Kind: FieldToggle}
}

func rangeField(key, label string, min, max, step float64) Field {
	return Field{Key: key, Label: label, Kind: FieldRange, Min: min, Max: max, Step: step}
}

func colorField(key, label string) Field {
	return Field{Key: key, Label: label, Kind: FieldColor}
}

func action(key, label string) Field {
	return Field{Key: key, Label: label, Kind: FieldAction}
}

// Actions dispatched through Store.Apply.
const (
	ActionReset       = "reset"
	ActionAddVoxel    = "add_voxel"
	ActionDeleteVoxel = "delete_voxel"
	ActionPlay        = "play"
	ActionPause       = "pause"
	ActionActivate    = "activate"
	ActionRemove      = "remove"
)

var schemas = map[Domain][]Field{
	DomainGrid: {
		toggle("enabled", "Show Grid"),
		toggle("infinite_grid", "Infinite Grid"),
		toggle("follow_camera", "Follow Camera"),
		rangeField("cell_size", "Cell Size", 0.1, 10, 0.1),
		rangeField("cell_thickness", "Cell Thickness", 0.01, 5, 0.01),
		colorField("cell_color", "Cell Color"),
		rangeField("section_size", "Section Size", 0.1, 10, 0.1),
		rangeField("section_thickness", "Section Thickness", 0.01, 5, 0.01),
		colorField("section_color", "Section Color"),
		rangeField("fade_distance", "Fade Distance", 0, 100, 1),
		rangeField("fade_strength", "Fade Strength", 0, 1, 0.01),
		rangeField("fade_from", "Fade From", 0, 1, 0.01),
		action(ActionReset, "Reset"),
	},
	DomainGround: {
		colorField("color", "Color"),
		rangeField("opacity", "Opacity", 0, 5, 0.01),
		rangeField("roughness", "Roughness", 0, 5, 0.01),
		rangeField("metalness", "Metalness", 0, 1, 0.01),
		rangeField("ao_map_intensity", "AO Intensity", 0, 5, 0.01),
		rangeField("normal_scale", "Normal Scale", 0, 5, 0.01),
		rangeField("displacement_scale", "Displacement Scale", 0, 2, 0.01),
		rangeField("texture_scale_x", "Texture Scale X", 0.1, 1000, 0.1),
		rangeField("texture_scale_y", "Texture Scale Y", 0.1, 1000, 0.1),
		rangeField("uv_offset_x", "UV Offset X", -1, 1, 0.01),
		rangeField("uv_offset_y", "UV Offset Y", -1, 1, 0.01),
		{Key: "texture_url", Label: "Texture URL", Kind: FieldText},
		toggle("flip_x", "Flip X"),
		toggle("flip_y", "Flip Y"),
		action(ActionReset, "Reset"),
	},
	DomainSky: {
		rangeField("turbidity", "Turbidity", 0, 20, 0.1),
		rangeField("rayleigh", "Rayleigh", 0, 10, 0.1),
		rangeField("mie_coefficient", "Mie Coefficient", 0, 0.1, 0.001),
		rangeField("mie_directional_g", "Mie Directional G", 0, 1, 0.01),
		rangeField("elevation", "Elevation", 0, 90, 0.1),
		rangeField("azimuth", "Azimuth", 0, 360, 1),
		rangeField("exposure", "Exposure", 0, 2, 0.01),
		colorField("background_color", "Background"),
		{Key: "environment_url", Label: "Environment URL", Kind: FieldText},
		action(ActionReset, "Reset"),
	},
	DomainFog: {
		toggle("enabled", "Enable Fog"),
		{Key: "mode", Label: "Fog Mode", Kind: FieldEnum, Options: []Option{
			{Label: "linear", Value: string(FogLinear)},
			{Label: "exp", Value: string(FogExp)},
			{Label: "exp2", Value: string(FogExp2)},
		}},
		rangeField("density", "Fog Density", 0, 0.05, 0.001),
		rangeField("near", "Fog Near", 0, 100, 1),
		rangeField("far", "Fog Far", 10, 1000, 1),
		colorField("color", "Fog Color"),
		action(ActionReset, "Reset Fog"),
	},
	DomainShadow: {
		toggle("enabled", "Enable Shadows"),
		{Key: "type", Label: "Type", Kind: FieldEnum, Options: []Option{
			{Label: "Contact", Value: "contact"},
			{Label: "SSAO", Value: "ssao"},
		}},
		rangeField("opacity", "Opacity", 0, 1, 0.01),
		rangeField("blur", "Blur", 0, 10, 0.1),
		rangeField("distance", "Distance", 1, 100, 1),
		colorField("color", "Color"),
	},
	DomainVoxels: {
		action(ActionAddVoxel, "Add Voxel"),
		action(ActionDeleteVoxel, "Delete Voxel"),
	},
	DomainBroadcaster: {
		rangeField("volume", "Volume", 0, 1, 0.01),
		rangeField("distance", "Distance", 1, 100, 1),
		{Key: "mode", Label: "Mode", Kind: FieldEnum, Options: []Option{
			{Label: "Translate", Value: string(ModeTranslate)},
			{Label: "Rotate", Value: string(ModeRotate)},
			{Label: "Scale", Value: string(ModeScale)},
		}},
		toggle("mic_enabled", "Mic"),
		{Key: "url", Label: "Audio URL", Kind: FieldText},
		action(ActionActivate, "Add"),
		action(ActionPlay, "Play"),
		action(ActionPause, "Pause"),
		action(ActionRemove, "Delete"),
	},
}

// Schema returns the field list of d, or nil for an unknown domain.
func Schema(d Domain) []Field {
	return schemas[d]
}

// Apply runs the action field key of d.
func (s *Store) Apply(d Domain, key string) error {
	switch key {
	case ActionReset:
		return s.Reset(d)
	case ActionAddVoxel:
		s.AddVoxel()
		return nil
	case ActionDeleteVoxel:
		if id := s.cur.Voxels.Selected; id != "" {
			return s.RemoveVoxel(id)
		}
		return nil
	case ActionActivate:
		return s.Update(DomainBroadcaster, func(st *Settings) { st.Broadcaster.Active = true })
	case ActionRemove:
		return s.Update(DomainBroadcaster, func(st *Settings) {
			st.Broadcaster.Active = false
			st.Broadcaster.Playing = false
		})
	case ActionPlay:
		return s.Update(DomainBroadcaster, func(st *Settings) { st.Broadcaster.Playing = true })
	case ActionPause:
		return s.Update(DomainBroadcaster, func(st *Settings) { st.Broadcaster.Playing = false })
	}
	return fmt.Errorf("settings: %s: unknown action %q", d, key)
}
