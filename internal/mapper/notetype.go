package mapper

import "strings"

// New-format note type values.
const (
	TAP = iota
	LOOK
	HOLD
	DODGE
)

// MapNoteType maps a legacy note type tag to the new note type value.
// The three click variants collapse to TAP; unknown or empty tags also
// fall back to TAP, never an error.
func MapNoteType(oldType string) int {
	switch strings.ToUpper(oldType) {
	case "NOTE_CLICK", "NOTE_LEFT_CLICK", "NOTE_RIGHT_CLICK":
		return TAP
	case "NOTE_LOOK":
		return LOOK
	case "NOTE_HOLD":
		return HOLD
	case "NOTE_DO_NOT_CLICK":
		return DODGE
	default:
		return TAP
	}
}

// NoteTypeName returns the canonical name of a new note type value,
// falling back to TAP for out-of-range input.
func NoteTypeName(noteType int) string {
	switch noteType {
	case TAP:
		return "TAP"
	case LOOK:
		return "LOOK"
	case HOLD:
		return "HOLD"
	case DODGE:
		return "DODGE"
	default:
		return "TAP"
	}
}
