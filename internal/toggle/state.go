// Package toggle holds the on/off switches of the heatmap layer. Each flag is
// either active, carrying a fixed value, or inactive with no value.
package toggle

import (
	"fmt"

	"github.com/UnknownOlympus/heatmap/internal/models"
)

const (
	// DefaultRadius is the point radius applied while FlagRadius is active.
	DefaultRadius = 20
	// DefaultOpacity is the layer opacity applied while FlagOpacity is active.
	DefaultOpacity = 0.2

	// ClassWarn is the button class that marks a non-default setting.
	ClassWarn = "md-warn"
)

// DefaultGradient returns the color ramp applied while FlagGradient is active.
func DefaultGradient() []string {
	return []string{
		"rgba(0, 255, 255, 0)",
		"rgba(0, 255, 255, 1)",
		"rgba(0, 191, 255, 1)",
		"rgba(0, 127, 255, 1)",
		"rgba(0, 63, 255, 1)",
		"rgba(0, 0, 255, 1)",
		"rgba(0, 0, 223, 1)",
		"rgba(0, 0, 191, 1)",
		"rgba(0, 0, 159, 1)",
		"rgba(0, 0, 127, 1)",
		"rgba(63, 0, 91, 1)",
		"rgba(127, 0, 63, 1)",
		"rgba(191, 0, 31, 1)",
		"rgba(255, 0, 0, 1)",
	}
}

// Setting is the effective value of a flag after a change.
// Value is nil when the flag is inactive.
type Setting struct {
	Flag   Flag `json:"flag"`
	Active bool `json:"active"`
	Value  any  `json:"value"`
}

// State is the set of layer switches. The zero value has every flag inactive;
// use NewState for the initial layer state.
type State struct {
	active map[Flag]bool
}

// NewState returns the initial state: heatmap visible, everything else inactive.
func NewState() *State {
	return &State{active: map[Flag]bool{FlagHeatmap: true}}
}

// Toggle flips flag and returns its new effective value.
func (s *State) Toggle(flag Flag) (Setting, error) {
	if !flag.Valid() {
		return Setting{}, fmt.Errorf("%w: %q", ErrUnknownFlag, string(flag))
	}
	if s.active == nil {
		s.active = make(map[Flag]bool)
	}
	s.active[flag] = !s.active[flag]

	return s.Effective(flag), nil
}

// Active reports whether flag is currently active.
func (s *State) Active(flag Flag) bool {
	return s.active[flag]
}

// Effective returns the current setting of flag.
func (s *State) Effective(flag Flag) Setting {
	setting := Setting{Flag: flag, Active: s.active[flag]}
	if setting.Active {
		setting.Value = activeValue(flag)
	}

	return setting
}

// Style converts the current switches into renderer parameters.
func (s *State) Style() models.Style {
	style := models.Style{Visible: s.active[FlagHeatmap]}
	if s.active[FlagGradient] {
		style.Gradient = DefaultGradient()
	}
	if s.active[FlagRadius] {
		style.Radius = DefaultRadius
	}
	if s.active[FlagOpacity] {
		style.Opacity = DefaultOpacity
	}

	return style
}

// ButtonClass returns the CSS class of the button bound to flag. A hidden
// heatmap and any active style flag are highlighted.
func (s *State) ButtonClass(flag Flag) string {
	switch flag {
	case FlagHeatmap:
		if s.active[FlagHeatmap] {
			return ""
		}
		return ClassWarn
	case FlagGradient, FlagRadius, FlagOpacity:
		if s.active[flag] {
			return ClassWarn
		}
		return ""
	default:
		return ""
	}
}

// Snapshot returns the setting of every flag in the order of Flags.
func (s *State) Snapshot() []Setting {
	out := make([]Setting, 0, len(Flags()))
	for _, flag := range Flags() {
		out = append(out, s.Effective(flag))
	}

	return out
}

func activeValue(flag Flag) any {
	switch flag {
	case FlagHeatmap:
		return true
	case FlagGradient:
		return DefaultGradient()
	case FlagRadius:
		return DefaultRadius
	case FlagOpacity:
		return DefaultOpacity
	default:
		return nil
	}
}
