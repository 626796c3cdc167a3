package matching

import "math/rand"

// JitterScore perturbs a display-only score within ±5 of its true value,
// clamped to [0, 100]. It exists purely to vary category readouts on
// practice-session results and must never feed persisted or
// comparison-sensitive values; the scoring contract in this package stays
// deterministic.
func JitterScore(score int, rng *rand.Rand) int {
	jittered := score + int(rng.Float64()*10) - 5
	if jittered < 0 {
		return 0
	}
	if jittered > 100 {
		return 100
	}
	return jittered
}
