package voice

import "github.com/sandevgo/deskbot/internal/core"

// Prosody maps a persona mood to rate and pitch adjustments.
func Prosody(mood string) (rate, pitch float64) {
	switch mood {
	case "enthusiastic":
		return 1.10, 0.05
	case "cynical", "professional":
		return 0.95, -0.05
	default:
		return 1.0, 0
	}
}

func voiceFor(id, mood string) core.Voice {
	rate, pitch := Prosody(mood)
	return core.Voice{ID: id, Rate: rate, Pitch: pitch}
}
