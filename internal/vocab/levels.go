package vocab

// Level is the ordinal familiarity rating of a vocabulary entry.
type Level int

const (
	// LevelUnfamiliar marks words the user does not know yet.
	LevelUnfamiliar Level = 1
	// LevelFair marks words the user half knows.
	LevelFair Level = 2
	// LevelMastered marks words the user has memorized.
	LevelMastered Level = 3
)

// AllLevels returns every defined level in display order.
func AllLevels() []Level {
	return []Level{LevelUnfamiliar, LevelFair, LevelMastered}
}

// Valid reports whether l is one of the defined levels.
func (l Level) Valid() bool {
	return l >= LevelUnfamiliar && l <= LevelMastered
}

// Key returns the stable string key for a level, used in settings and
// command-line input. Unknown values map to the unfamiliar key.
func (l Level) Key() string {
	switch l {
	case LevelFair:
		return "fair"
	case LevelMastered:
		return "known"
	default:
		return "unknown"
	}
}

// Label returns the human-readable label for a level.
func (l Level) Label() string {
	switch l {
	case LevelFair:
		return "fair"
	case LevelMastered:
		return "mastered"
	default:
		return "unfamiliar"
	}
}

// LevelFromKey converts a string key back to a level. Unrecognized keys
// fall back to LevelUnfamiliar, mirroring how saved settings from older
// versions are interpreted.
func LevelFromKey(key string) Level {
	switch key {
	case "fair":
		return LevelFair
	case "known":
		return LevelMastered
	default:
		return LevelUnfamiliar
	}
}
