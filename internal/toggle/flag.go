package toggle

import (
	"errors"
	"fmt"
)

// Flag identifies one of the heatmap layer switches.
type Flag string

const (
	// FlagHeatmap shows or hides the heatmap layer.
	FlagHeatmap Flag = "heatmap"
	// FlagGradient switches between the custom color ramp and the renderer default.
	FlagGradient Flag = "gradient"
	// FlagRadius switches between a fixed point radius and the renderer default.
	FlagRadius Flag = "radius"
	// FlagOpacity switches between a fixed opacity and the renderer default.
	FlagOpacity Flag = "opacity"
)

// ErrUnknownFlag is returned for a flag name that is not one of the known flags.
var ErrUnknownFlag = errors.New("unknown toggle flag")

// Flags lists every known flag in a stable order.
func Flags() []Flag {
	return []Flag{FlagHeatmap, FlagGradient, FlagRadius, FlagOpacity}
}

// ParseFlag converts a flag name into a Flag.
func ParseFlag(name string) (Flag, error) {
	flag := Flag(name)
	if !flag.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFlag, name)
	}

	return flag, nil
}

// Valid reports whether f is a known flag.
func (f Flag) Valid() bool {
	switch f {
	case FlagHeatmap, FlagGradient, FlagRadius, FlagOpacity:
		return true
	default:
		return false
	}
}

func (f Flag) String() string {
	return string(f)
}
