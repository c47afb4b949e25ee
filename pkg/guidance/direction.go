package guidance

import (
	"fmt"
	"strings"

	"github.com/lintang-b-s/campusnav/pkg/datastructure"
)

const (
	U_TURN_UNKNOWN     = -999
	TURN_SHARP_LEFT    = -3
	TURN_LEFT          = -2
	TURN_SLIGHT_LEFT   = -1
	CONTINUE_ON_STREET = 0
	TURN_SLIGHT_RIGHT  = 1
	TURN_RIGHT         = 2
	TURN_SHARP_RIGHT   = 3
	FINISH             = 4
	IGNORE             = 9999999
	START              = 101
)

type Instruction struct {
	Sign int
	// Name node the walker heads toward after this instruction
	Name string
	// At node the instruction happens at
	At                 string
	NodeID             datastructure.NodeID
	Point              datastructure.Coordinate
	CumulativeDistance float64
	// TurnBearing bearing of the segment leaving Point, degrees in (-180, 180]
	TurnBearing float64
}

func NewInstruction(sign int, name, at string, id datastructure.NodeID, p datastructure.Coordinate,
	cumulativeDist, turnBearing float64) Instruction {
	return Instruction{
		Sign:               sign,
		Name:               name,
		At:                 at,
		NodeID:             id,
		Point:              p,
		CumulativeDistance: cumulativeDist,
		TurnBearing:        turnBearing,
	}
}

func (instr *Instruction) GetTurnDescription() string {
	var description string

	switch instr.Sign {
	case START:
		headingAngle := instr.TurnBearing
		if headingAngle < 0.0 {
			headingAngle += 360
		}
		compassDir := bearingToCompass(headingAngle)
		if isEmpty(instr.Name) {
			description = fmt.Sprintf("Head %s", compassDir)
		} else {
			description = fmt.Sprintf("Head %s toward %s", compassDir, instr.Name)
		}
	case FINISH:
		if isEmpty(instr.At) {
			description = "You have arrived at your destination"
		} else {
			description = fmt.Sprintf("Arrive at %s", instr.At)
		}
	case CONTINUE_ON_STREET:
		description = "Continue"
		if !isEmpty(instr.At) {
			description = fmt.Sprintf("Continue past %s", instr.At)
		}
		if !isEmpty(instr.Name) {
			description = fmt.Sprintf("%s toward %s", description, instr.Name)
		}
	default:
		dir, _ := getDirectionDescription(instr.Sign)
		if dir == "" {
			return fmt.Sprintf("unknown %d", instr.Sign)
		}
		description = dir
		if !isEmpty(instr.At) {
			description = fmt.Sprintf("%s at %s", description, instr.At)
		}
		if !isEmpty(instr.Name) {
			description = fmt.Sprintf("%s toward %s", description, instr.Name)
		}
	}
	return description
}

func (instr *Instruction) TurnType() string {
	switch instr.Sign {
	case START:
		return "START"
	case FINISH:
		return "FINISH"
	case CONTINUE_ON_STREET:
		return "CONTINUE_ON_STREET"
	}
	_, turnType := getDirectionDescription(instr.Sign)
	return turnType
}

func bearingToCompass(bearing float64) string {
	if bearing < 22.5 {
		return "North"
	} else if bearing < 67.5 {
		return "North East"
	} else if bearing < 112.5 {
		return "East"
	} else if bearing < 157.5 {
		return "South East"
	} else if bearing < 202.5 {
		return "South"
	} else if bearing < 247.5 {
		return "South West"
	} else if bearing < 292.5 {
		return "West"
	} else if bearing < 337.5 {
		return "North West"
	} else {
		return "North"
	}
}

func getDirectionDescription(sign int) (string, string) {
	switch sign {
	case U_TURN_UNKNOWN:
		return "Turn around", "U_TURN_UNKNOWN"
	case TURN_SHARP_LEFT:
		return "Turn sharp left", "TURN_SHARP_LEFT"
	case TURN_LEFT:
		return "Turn left", "TURN_LEFT"
	case TURN_SLIGHT_LEFT:
		return "Turn slight left", "TURN_SLIGHT_LEFT"
	case TURN_SLIGHT_RIGHT:
		return "Turn slight right", "TURN_SLIGHT_RIGHT"
	case TURN_RIGHT:
		return "Turn right", "TURN_RIGHT"
	case TURN_SHARP_RIGHT:
		return "Turn sharp right", "TURN_SHARP_RIGHT"
	default:
		return "", ""
	}
}

func isEmpty(str string) bool {
	return strings.TrimSpace(str) == ""
}
