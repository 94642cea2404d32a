package settings

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Domain names one independently observable group of scene settings.
type Domain string

const (
	DomainGrid        Domain = "grid"
	DomainGround      Domain = "ground"
	DomainSky         Domain = "sky"
	DomainFog         Domain = "fog"
	DomainShadow      Domain = "shadow"
	DomainVoxels      Domain = "voxels"
	DomainBroadcaster Domain = "broadcaster"
)

// Domains lists every domain in panel order.
var Domains = []Domain{
	DomainGrid,
	DomainGround,
	DomainSky,
	DomainFog,
	DomainShadow,
	DomainVoxels,
	DomainBroadcaster,
}

type Grid struct {
	Enabled          bool    `yaml:"enabled"`
	InfiniteGrid     bool    `yaml:"infinite_grid"`
	FollowCamera     bool    `yaml:"follow_camera"`
	CellSize         float64 `yaml:"cell_size"`
	CellThickness    float64 `yaml:"cell_thickness"`
	CellColor        string  `yaml:"cell_color"`
	SectionSize      float64 `yaml:"section_size"`
	SectionThickness float64 `yaml:"section_thickness"`
	SectionColor     string  `yaml:"section_color"`
	FadeDistance     float64 `yaml:"fade_distance"`
	FadeStrength     float64 `yaml:"fade_strength"`
	FadeFrom         float64 `yaml:"fade_from"`
}

type Ground struct {
	Color             string  `yaml:"color"`
	Opacity           float64 `yaml:"opacity"`
	Roughness         float64 `yaml:"roughness"`
	Metalness         float64 `yaml:"metalness"`
	AOMapIntensity    float64 `yaml:"ao_map_intensity"`
	NormalScale       float64 `yaml:"normal_scale"`
	DisplacementScale float64 `yaml:"displacement_scale"`
	TextureScaleX     float64 `yaml:"texture_scale_x"`
	TextureScaleY     float64 `yaml:"texture_scale_y"`
	UVOffsetX         float64 `yaml:"uv_offset_x"`
	UVOffsetY         float64 `yaml:"uv_offset_y"`
	TextureURL        string  `yaml:"texture_url"`
	FlipX             bool    `yaml:"flip_x"`
	FlipY             bool    `yaml:"flip_y"`
}

type Sky struct {
	Turbidity       float64 `yaml:"turbidity"`
	Rayleigh        float64 `yaml:"rayleigh"`
	MieCoefficient  float64 `yaml:"mie_coefficient"`
	MieDirectionalG float64 `yaml:"mie_directional_g"`
	Elevation       float64 `yaml:"elevation"`
	Azimuth         float64 `yaml:"azimuth"`
	Exposure        float64 `yaml:"exposure"`
	BackgroundColor string  `yaml:"background_color"`
	EnvironmentURL  string  `yaml:"environment_url"`
	SkyColor        string  `yaml:"sky_color"`
}

// SunDirection returns the unit vector toward the sun from elevation and
// azimuth in degrees.
func (s Sky) SunDirection() mgl64.Vec3 {
	phi := mgl64.DegToRad(90 - s.Elevation)
	theta := mgl64.DegToRad(s.Azimuth)
	return mgl64.Vec3{
		math.Sin(phi) * math.Sin(theta),
		math.Cos(phi),
		math.Sin(phi) * math.Cos(theta),
	}
}

type FogMode string

const (
	FogLinear FogMode = "linear"
	FogExp    FogMode = "exp"
	FogExp2   FogMode = "exp2"
)

type Fog struct {
	Enabled bool    `yaml:"enabled"`
	Mode    FogMode `yaml:"mode"`
	Density float64 `yaml:"density"`
	Near    float64 `yaml:"near"`
	Far     float64 `yaml:"far"`
	Color   string  `yaml:"color"`
}

type Shadow struct {
	Enabled  bool    `yaml:"enabled"`
	Type     string  `yaml:"type"`
	Opacity  float64 `yaml:"opacity"`
	Blur     float64 `yaml:"blur"`
	Distance float64 `yaml:"distance"`
	Color    string  `yaml:"color"`
}

// Voxel is one placed block.
type Voxel struct {
	ID       string     `yaml:"id"`
	Position mgl64.Vec3 `yaml:"position,flow"`
	Rotation mgl64.Vec3 `yaml:"rotation,flow"`
	Scale    mgl64.Vec3 `yaml:"scale,flow"`
	Color    string     `yaml:"color"`
	Opacity  float64    `yaml:"opacity"`
}

type Voxels struct {
	Items []Voxel `yaml:"items"`
	// Selected is the id of the selected voxel, empty when none is.
	Selected string `yaml:"selected"`
}

type TransformMode string

const (
	ModeTranslate TransformMode = "translate"
	ModeRotate    TransformMode = "rotate"
	ModeScale     TransformMode = "scale"
)

type Broadcaster struct {
	Active       bool          `yaml:"active"`
	Playing      bool          `yaml:"playing"`
	MicEnabled   bool          `yaml:"mic_enabled"`
	URL          string        `yaml:"url"`
	CurrentTrack string        `yaml:"current_track"`
	Volume       float64       `yaml:"volume"`
	Distance     float64       `yaml:"distance"`
	Mode         TransformMode `yaml:"mode"`
	Color        string        `yaml:"color"`
	Size         float64       `yaml:"size"`
	Position     mgl64.Vec3    `yaml:"position,flow"`
}

// Settings is the full scene dressing state.
type Settings struct {
	Grid        Grid        `yaml:"grid"`
	Ground      Ground      `yaml:"ground"`
	Sky         Sky         `yaml:"sky"`
	Fog         Fog         `yaml:"fog"`
	Shadow      Shadow      `yaml:"shadow"`
	Voxels      Voxels      `yaml:"voxels"`
	Broadcaster Broadcaster `yaml:"broadcaster"`
}

func DefaultGrid() Grid {
	return Grid{
		Enabled:          true,
		CellSize:         0.5,
		CellThickness:    0.5,
		CellColor:        "#6f6f6f",
		SectionSize:      1,
		SectionThickness: 1,
		SectionColor:     "#2080ff",
		FadeDistance:     50,
		FadeStrength:     1,
		FadeFrom:         1,
	}
}

func DefaultGround() Ground {
	return Ground{
		Color:          "#ffffff",
		Opacity:        1,
		Roughness:      1,
		AOMapIntensity: 1,
		NormalScale:    1,
		TextureScaleX:  1,
		TextureScaleY:  1,
	}
}

func DefaultSky() Sky {
	return Sky{
		Turbidity:       2,
		Rayleigh:        1,
		MieCoefficient:  0.005,
		MieDirectionalG: 0.8,
		Elevation:       33,
		Azimuth:         180,
		Exposure:        0.5,
		BackgroundColor: "#000000",
		SkyColor:        "#87ceeb",
	}
}

func DefaultFog() Fog {
	return Fog{
		Enabled: true,
		Mode:    FogLinear,
		Density: 0.005,
		Near:    30,
		Far:     100,
		Color:   "#f0f0f0",
	}
}

func DefaultShadow() Shadow {
	return Shadow{
		Enabled:  true,
		Type:     "contact",
		Opacity:  0.75,
		Blur:     2.5,
		Distance: 30,
		Color:    "#000000",
	}
}

func DefaultBroadcaster() Broadcaster {
	return Broadcaster{
		Volume:   0.5,
		Distance: 10,
		Mode:     ModeTranslate,
		Color:    "#ff0000",
		Size:     1,
		Position: mgl64.Vec3{0, 1.5, 0},
	}
}

// Defaults returns the settings a fresh scene starts with.
func Defaults() Settings {
	return Settings{
		Grid:        DefaultGrid(),
		Ground:      DefaultGround(),
		Sky:         DefaultSky(),
		Fog:         DefaultFog(),
		Shadow:      DefaultShadow(),
		Broadcaster: DefaultBroadcaster(),
	}
}
