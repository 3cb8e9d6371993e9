package model

import "encoding/json"

// LegacySongMetadata is the v1 per-song metadata.yml document.
type LegacySongMetadata struct {
	Name        string `yaml:"name"`
	RespackSHA1 string `yaml:"respack_sha1"`
	Composer    string `yaml:"composer"`
	Length      int64  `yaml:"length"` // ticks
	Icon        string `yaml:"icon"`
	Version     string `yaml:"version"`
	Alias       string `yaml:"alias"`
}

// LegacyChart is one v1 per-difficulty chart document
// (world.json, nether.json, end.json or void.json).
type LegacyChart struct {
	Meta    *LegacyChartMeta `json:"meta"`
	Frames  []LegacyFrame    `json:"frames"`
	Effects []LegacyEffect   `json:"effects"`
}

type LegacyChartMeta struct {
	Charter      string   `json:"charter"`
	CharterAlias *string  `json:"charter-alias"`
	UUID         string   `json:"uuid"`
	InitialArena *string  `json:"initial-arena"`
	FlowSpeed    float64  `json:"flow-speed"`
	Offset       int64    `json:"offset"` // ticks
	Level        float64  `json:"level"`
	Comments     []string `json:"comments"`
	CoopCharters []string `json:"coop-charters"`
}

// LegacyFrame groups the notes sharing one judgment tick.
type LegacyFrame struct {
	JudgeTick int64        `json:"judge-tick"`
	Notes     []LegacyNote `json:"notes"`
}

type LegacyNote struct {
	Type   string    `json:"type"` // NOTE_CLICK, NOTE_LEFT_CLICK, NOTE_RIGHT_CLICK, NOTE_LOOK, NOTE_HOLD, NOTE_DO_NOT_CLICK
	Pos    []float64 `json:"pos"`
	Length *int64    `json:"length"` // only for NOTE_HOLD
}

// PosX returns the x component of the note position, zero when absent.
func (n *LegacyNote) PosX() float64 {
	if len(n.Pos) >= 1 {
		return n.Pos[0]
	}
	return 0
}

// PosY returns the y component of the note position, zero when absent.
func (n *LegacyNote) PosY() float64 {
	if len(n.Pos) >= 2 {
		return n.Pos[1]
	}
	return 0
}

// LegacyEffect is a v1 effect record. The payload shape depends on the
// effect type, so every field is optional; pointers and nil slices mark
// absent fields. Color stays raw because it is a string for COLOR effects
// and an array for TRANSFORMATIONS.
type LegacyEffect struct {
	StartTick  int64  `json:"start-tick"`
	EffectType string `json:"effect-type"`

	Duration *int64 `json:"duration"` // ticks

	// HOLOGRAM
	HologramContents []string  `json:"hologram-contents"`
	HologramLoc      []float64 `json:"hologram-loc"`
	ID               *string   `json:"id"`

	// MESSAGE
	Contents []string `json:"contents"`

	// EFFECT / CLREFFECT
	EffectID  *string `json:"effect-id"`
	Amplifier *int    `json:"amplifier"`

	// TIME
	Time *int64 `json:"time"`

	// WEATHER
	Weather *string `json:"weather"`

	// COLOR (string) / TRANSFORMATIONS (array)
	Color json.RawMessage `json:"color"`

	// ARENA
	Arena *string `json:"arena"`

	// SPEED (dropped by the mapping)
	Speed *float64 `json:"speed"`

	// VISIBLE
	Visible   *bool    `json:"visible"`
	NoteTypes []string `json:"note-types"`

	// TEXT
	Loc     []float64 `json:"loc"`
	Content *string   `json:"content"`

	// TRANSFORMATIONS
	Type    *string         `json:"type"`
	To      json.RawMessage `json:"to"`
	Scale   *float64        `json:"scale"`
	Rotate  *float64        `json:"rotate"`
	Shadow  *bool           `json:"shadow"`
	Glowing *bool           `json:"glowing"`
}

// ColorString interprets the color field as a plain string.
func (e *LegacyEffect) ColorString() (string, bool) {
	if len(e.Color) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(e.Color, &s); err != nil {
		return "", false
	}
	return s, true
}

// LegacyArena is the v1 arena YAML document.
type LegacyArena struct {
	DisplayName   string            `yaml:"arena-displayname"`
	Name          string            `yaml:"arena-name"`
	Price         int               `yaml:"price"`
	CanBuy        bool              `yaml:"can-buy"`
	Icon          string            `yaml:"arena-icon"`
	SchematicFile string            `yaml:"schematic-file"`
	Effects       map[string]string `yaml:"effects"`
}

// NormalJudgeBoxMaterial returns the judge-box material from the arena
// effects section, empty when not configured.
func (a *LegacyArena) NormalJudgeBoxMaterial() string {
	return a.Effects["normal-judge-box-material"]
}
