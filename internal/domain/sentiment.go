package domain

import (
	"encoding/json"
	"fmt"
)

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

var Trends = []Trend{TrendImproving, TrendStable, TrendDeclining}

func (t Trend) Valid() bool {
	switch t {
	case TrendImproving, TrendDeclining, TrendStable:
		return true
	}
	return false
}

func (t *Trend) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v := Trend(s)
	if !v.Valid() {
		return fmt.Errorf("unknown sentiment trend %q", s)
	}
	*t = v
	return nil
}

type SentimentAnalysis struct {
	OverallRating      float64  `json:"overallRating"`
	ReviewCount        int      `json:"reviewCount"`
	PositivePercentage float64  `json:"positivePercentage"`
	NegativePercentage float64  `json:"negativePercentage"`
	RecentTrend        Trend    `json:"recentTrend"`
	KeyInsights        []string `json:"keyInsights"`
}
