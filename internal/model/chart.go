package model

// Chart is one v2 per-difficulty chart document (.rmcc).
type Chart struct {
	Meta    ChartMeta `json:"meta"`
	Tracks  []Track   `json:"tracks"`
	Effects []Effect  `json:"effects"`
}

type ChartMeta struct {
	Charters     []string   `json:"charters"`
	Level        float64    `json:"level"`
	Offset       int64      `json:"offset"` // milliseconds
	UID          int        `json:"uid"`
	Comments     []string   `json:"comments"`
	BPMs         []BPMEntry `json:"bpms"`
	InitialArena string     `json:"initialArena,omitempty"`
}

type BPMEntry struct {
	Beat float64 `json:"beat"`
	BPM  float64 `json:"bpm"`
}

// Track carries the note sequence plus the per-axis interpolation
// event channels.
type Track struct {
	ID               int        `json:"id"`
	SpeedEvents      []NumEvent `json:"speedEvents"`
	XTransformEvents []NumEvent `json:"xTransformEvents"`
	YTransformEvents []NumEvent `json:"yTransformEvents"`
	ZTransformEvents []NumEvent `json:"zTransformEvents"`
	XRotateEvents    []NumEvent `json:"xRotateEvents"`
	YRotateEvents    []NumEvent `json:"yRotateEvents"`
	ZRotateEvents    []NumEvent `json:"zRotateEvents"`
	XScaleEvents     []NumEvent `json:"xScaleEvents"`
	YScaleEvents     []NumEvent `json:"yScaleEvents"`
	ZScaleEvents     []NumEvent `json:"zScaleEvents"`
	Notes            []Note     `json:"notes"`
}

// NumEvent is one interpolation segment of a track channel.
type NumEvent struct {
	StartBeat  float64 `json:"startBeat"`
	EndBeat    float64 `json:"endBeat"`
	StartValue float64 `json:"startValue"`
	EndValue   float64 `json:"endValue"`
	Easing     int     `json:"easing"` // 0 = LINEAR
}

// FlatEvent builds a single constant-valued segment spanning the
// whole song.
func FlatEvent(endBeat, value float64) []NumEvent {
	return []NumEvent{{StartBeat: 0, EndBeat: endBeat, StartValue: value, EndValue: value}}
}

// Note is a v2 note. 0=TAP, 1=LOOK, 2=HOLD, 3=DODGE.
type Note struct {
	NoteType int        `json:"noteType"`
	Beat     float64    `json:"beat"`
	Pos      [3]float64 `json:"pos"`
	Scale    [3]float64 `json:"scale"`
	Rotation [3]float64 `json:"rotation"`
}

// Effect is a v2 effect record with a type-dependent property bag.
type Effect struct {
	EffectType string         `json:"effectType"`
	Beat       float64        `json:"beat"`
	Properties map[string]any `json:"properties"`
}

// SongManifest is the v2 per-song manifest.yml document. The list fields
// are reserved for later tooling and always emitted empty here.
type SongManifest struct {
	Name         string   `yaml:"name"`
	Composer     string   `yaml:"composer"`
	Icon         string   `yaml:"icon"`
	Alias        string   `yaml:"alias"`
	Length       int64    `yaml:"length"` // milliseconds
	BaseBPM      float64  `yaml:"base_bpm"`
	RespackSHA1  string   `yaml:"respack_sha1"`
	Description  string   `yaml:"description"`
	SongID       int      `yaml:"song_id"`
	Version      string   `yaml:"version"`
	Comments     []string `yaml:"comments"`
	PlayerAlias  []string `yaml:"player-alias"`
	Tags         []string `yaml:"tags"`
	UnlockSong   []any    `yaml:"unlockSong"`
	UnlockWorld  []any    `yaml:"unlockWorld"`
	UnlockNether []any    `yaml:"unlockNether"`
	UnlockVoid   []any    `yaml:"unlockVoid"`
}

// ArenaManifest is the v2 per-arena metadata.yml document.
type ArenaManifest struct {
	Name          string          `yaml:"name"`
	DisplayName   string          `yaml:"display-name"`
	Author        string          `yaml:"author"`
	Description   string          `yaml:"description"`
	Icon          string          `yaml:"icon"`
	Border        string          `yaml:"border"`
	Schematic     string          `yaml:"schematic"`
	Hide          bool            `yaml:"hide"`
	UnlockMethods []UnlockMethod  `yaml:"unlock-method"`
	SchematicInfo SchematicBounds `yaml:"schematic-info"`
}

type UnlockMethod struct {
	Type  string `yaml:"type"`
	Value any    `yaml:"value"`
}

// SchematicBounds is the geometry recovered from the schematic tag tree.
type SchematicBounds struct {
	Dimensions []int `yaml:"dimensions"` // width, height, length
	Offset     []int `yaml:"offset"`
}

// SoundRegistry is the v2 sounds.json document, keyed by sound event name.
type SoundRegistry map[string]SoundEvent

type SoundEvent struct {
	Replace  bool    `json:"replace"`
	Sounds   []Sound `json:"sounds"`
	Subtitle string  `json:"subtitle"`
}

type Sound struct {
	Name                string  `json:"name"`
	Type                string  `json:"type"`
	Volume              float64 `json:"volume"`
	Pitch               float64 `json:"pitch"`
	Weight              int     `json:"weight"`
	Stream              bool    `json:"stream"`
	AttenuationDistance int     `json:"attenuation_distance"`
	Preload             bool    `json:"preload"`
}

// PackMeta is the pack.mcmeta descriptor of the combined resource pack.
type PackMeta struct {
	Pack PackInfo `json:"pack"`
}

type PackInfo struct {
	Description      string `json:"description"`
	PackFormat       int    `json:"pack_format"`
	SupportedFormats []int  `json:"supported_formats"`
	MinFormat        int    `json:"min_format"`
	MaxFormat        int    `json:"max_format"`
}
