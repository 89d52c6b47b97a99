package rank

import "testing"

func TestBandBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  Band
	}{
		{100, BandExcellent},
		{80, BandExcellent},
		{79.99, BandGood},
		{60, BandGood},
		{59.5, BandFair},
		{40, BandFair},
		{39.9, BandPoor},
		{20, BandPoor},
		{0, BandPoor},
	}
	for _, c := range cases {
		if got := BandFor(c.score); got != c.want {
			t.Fatalf("BandFor(%v) = %+v, want %+v", c.score, got, c.want)
		}
		if ScoreLabel(c.score) != c.want.Label || ScoreColor(c.score) != c.want.Color || ScoreEmoji(c.score) != c.want.Emoji {
			t.Fatalf("label/color/emoji disagree at %v", c.score)
		}
	}
}

func TestFormatScore(t *testing.T) {
	if got := FormatScore(88.95); got != "89" {
		t.Fatalf("FormatScore(88.95) = %q", got)
	}
	if got := FormatScore(72.5); got != "73" {
		t.Fatalf("FormatScore(72.5) = %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[int]string{999: "999", 1000: "1.0K", 15420: "15.4K", 2_500_000: "2.5M"}
	for in, want := range cases {
		if got := FormatNumber(in); got != want {
			t.Fatalf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}
