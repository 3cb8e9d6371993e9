package mapper

import (
	"strconv"
	"strings"
)

// potionEffectIDs maps Bukkit potion effect names to their numeric IDs.
var potionEffectIDs = map[string]int{
	"SPEED":               1,
	"SLOWNESS":            2,
	"SLOW":                2,
	"HASTE":               3,
	"MINING_FATIGUE":      4,
	"STRENGTH":            5,
	"INSTANT_HEALTH":      6,
	"INSTANT_DAMAGE":      7,
	"JUMP_BOOST":          8,
	"NAUSEA":              9,
	"REGENERATION":        10,
	"RESISTANCE":          11,
	"FIRE_RESISTANCE":     12,
	"WATER_BREATHING":     13,
	"INVISIBILITY":        14,
	"BLINDNESS":           15,
	"NIGHT_VISION":        16,
	"HUNGER":              17,
	"WEAKNESS":            18,
	"POISON":              19,
	"WITHER":              20,
	"HEALTH_BOOST":        21,
	"ABSORPTION":          22,
	"SATURATION":          23,
	"GLOWING":             24,
	"LEVITATION":          25,
	"LUCK":                26,
	"UNLUCK":              27,
	"BAD_LUCK":            27,
	"SLOW_FALLING":        28,
	"CONDUIT_POWER":       29,
	"DOLPHINS_GRACE":      30,
	"BAD_OMEN":            31,
	"HERO_OF_THE_VILLAGE": 32,
	"DARKNESS":            33,
	"TRIAL_OMEN":          34,
	"RAID_OMEN":           35,
	"WIND_CHARGED":        36,
	"WEAVING":             37,
	"OOZING":              38,
	"INFESTED":            39,
}

// PotionEffectID resolves a potion effect name (case-insensitive) to its
// numeric ID. Strings that are not known names are parsed as raw integer
// codes; anything else falls back to 1 (SPEED).
func PotionEffectID(effectID string) int {
	if effectID == "" {
		return 1
	}
	if id, ok := potionEffectIDs[strings.ToUpper(effectID)]; ok {
		return id
	}
	if id, err := strconv.Atoi(effectID); err == nil {
		return id
	}
	return 1
}
