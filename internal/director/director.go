package director

import (
	"math"

	"github.com/gahane31/my-animation-sub000/internal/timing"
)

// Director resolves the focus of each scene: which entity leads it and where
// the camera looks.
type Director struct {
	Personality timing.Personality

	BaseDuration       float64 // Camera transition length before multipliers (seconds)
	IntroduceZoom      float64 // Zoom when the lead entity was just introduced
	HookZoom           float64 // Fixed zoom for the opening scene
	HookDurationFactor float64
	MinZoom            float64
	MaxZoom            float64
	ChangeThreshold    float64 // Zoom delta below which the camera holds still

	PrimaryScale     float64
	SecondaryScale   float64
	SecondaryOpacity float64
	HookScaleBoost   float64
}

// NewDirector creates a new Director with default settings
func NewDirector(p timing.Personality) *Director {
	if p.Zoom <= 0 || p.Emphasis <= 0 {
		p, _ = timing.LookupPersonality(timing.DefaultPersonality)
	}
	return &Director{
		Personality:        p,
		BaseDuration:       1.2,
		IntroduceZoom:      1.4,
		HookZoom:           1.3,
		HookDurationFactor: 0.6,
		MinZoom:            0.6,
		MaxZoom:            2.0,
		ChangeThreshold:    0.05,
		PrimaryScale:       1.15,
		SecondaryScale:     0.9,
		SecondaryOpacity:   0.75,
		HookScaleBoost:     timing.HookScaleBoost,
	}
}

// baseZoom buckets the visible entity count.
func baseZoom(count int) float64 {
	switch {
	case count <= 2:
		return 1.35
	case count <= 5:
		return 1.15
	case count <= 10:
		return 1.0
	default:
		return 0.85
	}
}

func (d *Director) clampZoom(z float64) float64 {
	return math.Max(d.MinZoom, math.Min(d.MaxZoom, z))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
