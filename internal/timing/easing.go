package timing

import "github.com/tanema/gween/ease"

// DefaultEasing is used for unknown easing names.
const DefaultEasing = "easeInOutCubic"

var easings = map[string]ease.TweenFunc{
	"linear":         ease.Linear,
	"easeInQuad":     ease.InQuad,
	"easeOutQuad":    ease.OutQuad,
	"easeInOutQuad":  ease.InOutQuad,
	"easeInCubic":    ease.InCubic,
	"easeOutCubic":   ease.OutCubic,
	"easeInOutCubic": ease.InOutCubic,
	"easeInSine":     ease.InSine,
	"easeOutSine":    ease.OutSine,
	"easeInOutSine":  ease.InOutSine,
	"easeInBack":     ease.InBack,
	"easeOutBack":    ease.OutBack,
	"easeInOutBack":  ease.InOutBack,
	"easeOutBounce":  ease.OutBounce,
}

// Ease maps an easing name to its tween function.
func Ease(name string) ease.TweenFunc {
	if fn, ok := easings[name]; ok {
		return fn
	}
	return easings[DefaultEasing]
}

// KnownEasing reports whether name is registered.
func KnownEasing(name string) bool {
	_, ok := easings[name]
	return ok
}

// Progress samples an easing curve at t in [0,1].
func Progress(name string, t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return float64(Ease(name)(float32(t), 0, 1, 1))
}
