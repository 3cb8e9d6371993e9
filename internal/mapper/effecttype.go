package mapper

import (
	"fmt"
	"strings"
	"time"

	"github.com/frkovo/rhythmc-converter/internal/model"
	"github.com/frkovo/rhythmc-converter/pkg/logger"
)

// Effect type mappings:
//
//	HOLOGRAM        -> HOLOGRAM
//	REMOVEHOLOGRAM  -> REMOVE_HOLOGRAM
//	INVERT          -> EFFECT (BLINDNESS)
//	MESSAGE         -> MESSAGE
//	EFFECT          -> EFFECT
//	CLREFFECT       -> CLEAR_EFFECT
//	TIME            -> TIME
//	WEATHER         -> WEATHER
//	COLOR           -> GLOW_COLOR
//	ARENA           -> ARENA
//	VISIBLE         -> HIDE_NOTES (logic inverted)
//	TEXT            -> TEXT_DISPLAY
//	TRANSFORMATIONS -> TEXT_DISPLAY_EFFECT
//	SPEED, JUDGEDOT -> dropped

const (
	// BLINDNESS potion effect ID
	blindnessEffectID = 15

	// Effect duration when the legacy record carries none: one year in
	// milliseconds, effectively forever.
	defaultDurationMs int64 = 31_536_000_000

	// The legacy engine ran a fixed 20-ticks-per-second clock.
	msPerTick int64 = 50
)

// MapEffect converts a legacy effect to its new-format record. Returns nil
// for effect types the new engine has no equivalent for (SPEED, JUDGEDOT)
// and for unrecognized tags, which are logged and skipped.
func MapEffect(old *model.LegacyEffect) *model.Effect {
	if old == nil || old.EffectType == "" {
		return nil
	}

	oldType := strings.ToUpper(old.EffectType)
	beat := float64(old.StartTick) // tick = beat when BPM = 1200

	switch oldType {
	case "HOLOGRAM":
		return mapHologram(old, beat)
	case "REMOVEHOLOGRAM":
		return mapRemoveHologram(old, beat)
	case "INVERT":
		return mapInvert(old, beat)
	case "MESSAGE":
		return mapMessage(old, beat)
	case "EFFECT":
		return mapPotionEffect(old, beat)
	case "CLREFFECT":
		return mapClearEffect(old, beat)
	case "TIME":
		return mapTime(old, beat)
	case "WEATHER":
		return mapWeather(old, beat)
	case "COLOR":
		return mapColor(old, beat)
	case "ARENA":
		return mapArena(old, beat)
	case "VISIBLE":
		return mapVisible(old, beat)
	case "TEXT":
		return mapText(old, beat)
	case "TRANSFORMATIONS":
		return mapTransformations(old, beat)
	case "SPEED", "JUDGEDOT":
		// The new engine has no equivalent for these.
		return nil
	default:
		logger.Warnf("Unknown effect type: %s", oldType)
		return nil
	}
}

// durationMs converts the legacy tick duration to milliseconds, with the
// "forever" default when absent.
func durationMs(old *model.LegacyEffect) int64 {
	if old.Duration != nil {
		return *old.Duration * msPerTick
	}
	return defaultDurationMs
}

func mapHologram(old *model.LegacyEffect, beat float64) *model.Effect {
	location := []float64{0.0, 1.5, 0.0}
	if old.HologramLoc != nil {
		location = old.HologramLoc
	}

	id := fmt.Sprintf("RhyMCGameHologram_%d", time.Now().UnixMilli())
	if old.ID != nil {
		id = *old.ID
	}

	contents := []string{}
	if old.HologramContents != nil {
		contents = old.HologramContents
	}

	return &model.Effect{
		EffectType: "HOLOGRAM",
		Beat:       beat,
		Properties: map[string]any{
			"location": location,
			"id":       id,
			"contents": contents,
			"duration": durationMs(old),
		},
	}
}

func mapRemoveHologram(old *model.LegacyEffect, beat float64) *model.Effect {
	props := map[string]any{}
	if old.ID != nil {
		props["id"] = *old.ID
	}
	return &model.Effect{EffectType: "REMOVE_HOLOGRAM", Beat: beat, Properties: props}
}

// mapInvert reinterprets the legacy screen-invert as a blindness potion
// effect. Preserved from the original mapping as-is.
func mapInvert(old *model.LegacyEffect, beat float64) *model.Effect {
	return &model.Effect{
		EffectType: "EFFECT",
		Beat:       beat,
		Properties: map[string]any{
			"effectId":  blindnessEffectID,
			"amplifier": 1,
			"duration":  durationMs(old),
		},
	}
}

func mapMessage(old *model.LegacyEffect, beat float64) *model.Effect {
	contents := []string{}
	if old.Contents != nil {
		contents = old.Contents
	}
	return &model.Effect{
		EffectType: "MESSAGE",
		Beat:       beat,
		Properties: map[string]any{"contents": contents},
	}
}

func mapPotionEffect(old *model.LegacyEffect, beat float64) *model.Effect {
	effectID := ""
	if old.EffectID != nil {
		effectID = *old.EffectID
	}
	amplifier := 0
	if old.Amplifier != nil {
		amplifier = *old.Amplifier
	}
	return &model.Effect{
		EffectType: "EFFECT",
		Beat:       beat,
		Properties: map[string]any{
			"effectId":  PotionEffectID(effectID),
			"amplifier": amplifier,
			"duration":  durationMs(old),
		},
	}
}

func mapClearEffect(old *model.LegacyEffect, beat float64) *model.Effect {
	props := map[string]any{}
	if old.EffectID != nil {
		props["effectId"] = PotionEffectID(*old.EffectID)
	}
	return &model.Effect{EffectType: "CLEAR_EFFECT", Beat: beat, Properties: props}
}

func mapTime(old *model.LegacyEffect, beat float64) *model.Effect {
	timeOfDay := int64(6000)
	if old.Time != nil {
		timeOfDay = *old.Time
	}
	return &model.Effect{
		EffectType: "TIME",
		Beat:       beat,
		Properties: map[string]any{
			"time":     timeOfDay,
			"duration": durationMs(old),
		},
	}
}

func mapWeather(old *model.LegacyEffect, beat float64) *model.Effect {
	weather := "CLEAR"
	if old.Weather != nil {
		weather = *old.Weather
	}
	return &model.Effect{
		EffectType: "WEATHER",
		Beat:       beat,
		Properties: map[string]any{"weather": weather},
	}
}

func mapColor(old *model.LegacyEffect, beat float64) *model.Effect {
	color := "WHITE"
	if s, ok := old.ColorString(); ok {
		color = s
	}
	return &model.Effect{
		EffectType: "GLOW_COLOR",
		Beat:       beat,
		Properties: map[string]any{"color": color},
	}
}

func mapArena(old *model.LegacyEffect, beat float64) *model.Effect {
	props := map[string]any{}
	if old.Arena != nil {
		props["arena"] = *old.Arena
	}
	return &model.Effect{EffectType: "ARENA", Beat: beat, Properties: props}
}

// mapVisible inverts the legacy visibility flag: the old format said which
// notes to show, the new format says which notes to hide. Empty lists on
// both keys mean "show everything".
func mapVisible(old *model.LegacyEffect, beat float64) *model.Effect {
	noteTypes := []string{}
	if old.Visible != nil && !*old.Visible {
		if old.NoteTypes != nil {
			for _, t := range old.NoteTypes {
				noteTypes = append(noteTypes, NoteTypeName(MapNoteType(t)))
			}
		} else {
			noteTypes = []string{"TAP", "LOOK", "HOLD", "DODGE"}
		}
	}
	return &model.Effect{
		EffectType: "HIDE_NOTES",
		Beat:       beat,
		Properties: map[string]any{
			"noteTypes": noteTypes,
			"tracks":    []int{},
		},
	}
}

func mapText(old *model.LegacyEffect, beat float64) *model.Effect {
	id := fmt.Sprintf("text_%d", time.Now().UnixMilli())
	if old.ID != nil {
		id = *old.ID
	}

	text := ""
	if old.Content != nil {
		text = *old.Content
	}

	position := []float64{0.0, 1.5, 0.0}
	if old.Loc != nil {
		position = old.Loc
	}

	return &model.Effect{
		EffectType: "TEXT_DISPLAY",
		Beat:       beat,
		Properties: map[string]any{
			"id":       id,
			"text":     text,
			"position": position,
			"rotation": []float64{0.0, 0.0, 0.0},
			"scale":    []float64{1.0, 1.0, 1.0},
		},
	}
}

// mapTransformations emits a sparse record: optional legacy fields are
// copied through only when present. The duration here stays in ticks,
// matching the original mapping.
func mapTransformations(old *model.LegacyEffect, beat float64) *model.Effect {
	props := map[string]any{}
	if old.ID != nil {
		props["id"] = *old.ID
	}
	if old.Type != nil {
		props["type"] = *old.Type
	}
	if old.To != nil {
		props["to"] = old.To
	}
	if old.Rotate != nil {
		props["rotate"] = *old.Rotate
	}
	if old.Scale != nil {
		props["scale"] = *old.Scale
	}
	if old.Shadow != nil {
		props["shadow"] = *old.Shadow
	}
	if old.Glowing != nil {
		props["glowing"] = *old.Glowing
	}
	if old.Color != nil {
		props["color"] = old.Color
	}
	if old.Content != nil {
		props["content"] = *old.Content
	}
	if old.Duration != nil {
		props["duration"] = *old.Duration
	}
	return &model.Effect{EffectType: "TEXT_DISPLAY_EFFECT", Beat: beat, Properties: props}
}
