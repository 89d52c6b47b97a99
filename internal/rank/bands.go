package rank

import (
	"fmt"
	"strconv"
)

const (
	ThresholdExcellent = 80
	ThresholdGood      = 60
	ThresholdFair      = 40
)

type Band struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Emoji string `json:"emoji"`
}

var (
	BandExcellent = Band{Label: "Excellent", Color: "success", Emoji: "🟢"}
	BandGood      = Band{Label: "Good", Color: "primary", Emoji: "🔵"}
	BandFair      = Band{Label: "Fair", Color: "warning", Emoji: "🟡"}
	BandPoor      = Band{Label: "Poor", Color: "danger", Emoji: "🔴"}
)

// BandFor maps a 0..100 score onto its display band.
func BandFor(score float64) Band {
	switch {
	case score >= ThresholdExcellent:
		return BandExcellent
	case score >= ThresholdGood:
		return BandGood
	case score >= ThresholdFair:
		return BandFair
	default:
		return BandPoor
	}
}

func ScoreLabel(score float64) string { return BandFor(score).Label }
func ScoreColor(score float64) string { return BandFor(score).Color }
func ScoreEmoji(score float64) string { return BandFor(score).Emoji }

func FormatScore(score float64) string {
	return strconv.Itoa(int(RoundHalfUp(score)))
}

// FormatNumber abbreviates counts: 1500 -> 1.5K, 2000000 -> 2.0M.
func FormatNumber(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.Itoa(n)
	}
}
