package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"truthrecruit-engine/internal/config"
	"truthrecruit-engine/internal/domain"
	"truthrecruit-engine/internal/pipeline"
	"truthrecruit-engine/internal/rank"
)

type AnalyzeCmd struct {
	URL   string `arg:"" name:"url" help:"LinkedIn company page URL."`
	JSON  bool   `help:"Print the full analysis as JSON."`
	Email string `help:"Optional email to attach to the request."`
}

func (c *AnalyzeCmd) Run(ctx *Context) error {
	cfg := ctx.Config
	bg := context.Background()

	st, err := openStore(bg, cfg, ctx.DataDir, ctx.Logger.Named("store"))
	if err != nil {
		return err
	}
	defer st.Close()

	runner := &pipeline.Runner{
		Providers: newProviders(cfg),
		Store:     st,
		Config:    func() config.Config { return cfg },
		Logger:    ctx.Logger.Named("pipeline"),
	}

	start := time.Now()
	a, err := runner.Analyze(bg, pipeline.Request{LinkedInURL: c.URL, UserEmail: c.Email})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if c.JSON {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	}
	return writeSummary(ctx.Out, a, elapsed)
}

func writeSummary(w io.Writer, a domain.CompanyAnalysis, elapsed time.Duration) error {
	var b strings.Builder
	c := a.Company
	s := a.Sentiment

	fmt.Fprintf(&b, "%s (%s, %s)\n", c.Name, c.Industry, c.Location)
	fmt.Fprintf(&b, "Report id: %s\n\n", a.CompanyID)

	score := func(label string, v float64) {
		fmt.Fprintf(&b, "  %-26s %s %6s  %s\n", label, rank.ScoreEmoji(v), rank.FormatScore(v), rank.ScoreLabel(v))
	}
	score("Hiring authenticity", float64(a.HiringAuthenticityScore))
	score("Overall", a.OverallScore)
	fmt.Fprintf(&b, "  %-26s    %6d%%\n", "Ghost job probability", a.GhostJobProbability)

	fmt.Fprintf(&b, "\nBreakdown\n")
	bd := a.ScoreBreakdown
	score("Hiring velocity", bd.HiringVelocity)
	score("Response rate", bd.ResponseRate)
	score("Job posting duration", bd.JobPostingDuration)
	score("Employee satisfaction", bd.EmployeeSatisfaction)
	score("Company stability", bd.CompanyStability)

	fmt.Fprintf(&b, "\nSentiment: %.1f/5 from %s reviews, trend %s\n",
		s.OverallRating, rank.FormatNumber(s.ReviewCount), s.RecentTrend)
	fmt.Fprintf(&b, "Open postings: %d\n", len(a.JobPostings))

	if len(a.Recommendations) > 0 {
		fmt.Fprintf(&b, "\nRecommendations\n")
		for _, r := range a.Recommendations {
			fmt.Fprintf(&b, "  %s\n", r)
		}
	}
	fmt.Fprintf(&b, "\nProcessed in %dms\n", elapsed.Milliseconds())

	_, err := io.WriteString(w, b.String())
	return err
}
