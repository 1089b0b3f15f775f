package types

import "fmt"

// AlertLevel is a three-valued ordinal severity. The wire representation is
// the enum name; DisplayName is what ends up in human-facing notification
// text.
type AlertLevel string

const (
	AlertLevelRoutine     AlertLevel = "ROUTINE"
	AlertLevelUrgent      AlertLevel = "URGENT"
	AlertLevelLifeOrDeath AlertLevel = "LIFE_OR_DEATH"
)

// MinimumSeverity is the default volunteer threshold: receive everything.
const MinimumSeverity = 0

func ParseAlertLevel(s string) (AlertLevel, error) {
	switch AlertLevel(s) {
	case AlertLevelRoutine, AlertLevelUrgent, AlertLevelLifeOrDeath:
		return AlertLevel(s), nil
	default:
		return "", fmt.Errorf("unknown alert level %q", s)
	}
}

func (l AlertLevel) Valid() bool {
	_, err := ParseAlertLevel(string(l))
	return err == nil
}

// Level returns the ordinal used against volunteer minimum-severity
// thresholds. Unknown levels map to -1.
func (l AlertLevel) Level() int {
	switch l {
	case AlertLevelRoutine:
		return 0
	case AlertLevelUrgent:
		return 1
	case AlertLevelLifeOrDeath:
		return 2
	default:
		return -1
	}
}

func (l AlertLevel) DisplayName() string {
	switch l {
	case AlertLevelRoutine:
		return "Routine"
	case AlertLevelUrgent:
		return "Urgent"
	case AlertLevelLifeOrDeath:
		return "Life or death"
	default:
		return ""
	}
}
