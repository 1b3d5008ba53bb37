package timing

import (
	"fmt"
	"sort"
	"strings"
)

// Personality is a named bundle of motion multipliers applied uniformly to a
// whole run. Speed > 1 shortens durations; Stagger scales the gap between
// consecutive records.
type Personality struct {
	Name         string  `yaml:"name" json:"name"`
	Speed        float64 `yaml:"speed" json:"speed"`
	Stagger      float64 `yaml:"stagger" json:"stagger"`
	Zoom         float64 `yaml:"zoom" json:"zoom"`
	Emphasis     float64 `yaml:"emphasis" json:"emphasis"`
	LandingScale float64 `yaml:"landingScale" json:"landingScale"`

	EnterEasing   string `yaml:"enterEasing" json:"enterEasing"`
	ExitEasing    string `yaml:"exitEasing" json:"exitEasing"`
	MoveEasing    string `yaml:"moveEasing" json:"moveEasing"`
	ConnectEasing string `yaml:"connectEasing" json:"connectEasing"`
	CameraEasing  string `yaml:"cameraEasing" json:"cameraEasing"`
}

const DefaultPersonality = "balanced"

var personalities = map[string]Personality{
	"balanced": {
		Name: "balanced", Speed: 1, Stagger: 1, Zoom: 1, Emphasis: 1, LandingScale: 1.08,
		EnterEasing: "easeOutCubic", ExitEasing: "easeInCubic", MoveEasing: "easeInOutCubic",
		ConnectEasing: "easeOutQuad", CameraEasing: "easeInOutCubic",
	},
	"calm": {
		Name: "calm", Speed: 0.8, Stagger: 1.3, Zoom: 0.95, Emphasis: 0.95, LandingScale: 1.04,
		EnterEasing: "easeOutSine", ExitEasing: "easeInSine", MoveEasing: "easeInOutSine",
		ConnectEasing: "easeOutSine", CameraEasing: "easeInOutSine",
	},
	"energetic": {
		Name: "energetic", Speed: 1.3, Stagger: 0.7, Zoom: 1.08, Emphasis: 1.1, LandingScale: 1.15,
		EnterEasing: "easeOutBack", ExitEasing: "easeInBack", MoveEasing: "easeInOutCubic",
		ConnectEasing: "easeOutCubic", CameraEasing: "easeInOutCubic",
	},
	"technical": {
		Name: "technical", Speed: 1.1, Stagger: 0.9, Zoom: 1, Emphasis: 1, LandingScale: 1.05,
		EnterEasing: "easeOutQuad", ExitEasing: "easeInQuad", MoveEasing: "easeInOutQuad",
		ConnectEasing: "linear", CameraEasing: "easeInOutQuad",
	},
}

// LookupPersonality returns a registered profile; "" means the default.
func LookupPersonality(name string) (Personality, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultPersonality
	}
	p, ok := personalities[key]
	if !ok {
		return Personality{}, fmt.Errorf("unknown motion personality %q (known: %s)", name, strings.Join(PersonalityNames(), ", "))
	}
	return p, nil
}

func PersonalityNames() []string {
	names := make([]string, 0, len(personalities))
	for n := range personalities {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Pacing is the narrative pacing mode of a run or scene.
type Pacing string

const (
	PacingNormal   Pacing = "normal"
	PacingFastReel Pacing = "fast_reel"
)

func ParsePacing(name string) (Pacing, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "normal":
		return PacingNormal, nil
	case "fast_reel", "fast-reel", "reel":
		return PacingFastReel, nil
	default:
		return "", fmt.Errorf("unknown pacing mode %q", name)
	}
}

// multipliers returns (speed, stagger) for the pacing mode.
func (p Pacing) multipliers() (float64, float64) {
	if p == PacingFastReel {
		return 1.4, 0.5
	}
	return 1, 1
}

// paceMultipliers maps a per-transition pace hint to (speed, stagger).
func paceMultipliers(pace string) (float64, float64) {
	switch strings.ToLower(pace) {
	case "slow":
		return 0.8, 1.2
	case "fast":
		return 1.25, 0.8
	default:
		return 1, 1
	}
}
