package analyzer

import "truthrecruit-engine/internal/domain"

const (
	RecAuthenticityHigh   = "✅ Strong hiring authenticity - good chance of genuine opportunities"
	RecAuthenticityMedium = "⚠️ Moderate hiring authenticity - research specific roles carefully"
	RecAuthenticityLow    = "❌ Low hiring authenticity - proceed with caution"

	RecGhostLow    = "✅ Low ghost job risk - postings appear legitimate"
	RecGhostMedium = "⚠️ Medium ghost job risk - verify job requirements and posting dates"
	RecGhostHigh   = "❌ High ghost job risk - many postings may be fake or outdated"

	RecSatisfactionHigh  = "✅ High employee satisfaction - positive work environment likely"
	RecSatisfactionMixed = "⚠️ Mixed employee feedback - research team-specific reviews"
	RecSatisfactionPoor  = "❌ Poor employee satisfaction - consider workplace culture carefully"

	RecTrendUp   = "📈 Employee sentiment trending upward - company may be improving"
	RecTrendDown = "📉 Employee sentiment declining - investigate recent changes"

	RecEarlyStage  = "🚀 Early-stage company - high potential but higher risk"
	RecEstablished = "🏢 Established company - likely stable but potentially less innovative"
)

// Recommendations returns advice strings in a fixed order: authenticity,
// ghost risk, satisfaction, trend, company age. The last two may be absent.
func Recommendations(authenticity, ghost int, sentiment domain.SentimentAnalysis, companyAge int) []string {
	out := make([]string, 0, 5)

	switch {
	case authenticity >= 80:
		out = append(out, RecAuthenticityHigh)
	case authenticity >= 60:
		out = append(out, RecAuthenticityMedium)
	default:
		out = append(out, RecAuthenticityLow)
	}

	switch {
	case ghost <= 20:
		out = append(out, RecGhostLow)
	case ghost <= 50:
		out = append(out, RecGhostMedium)
	default:
		out = append(out, RecGhostHigh)
	}

	switch {
	case sentiment.OverallRating >= 4.0:
		out = append(out, RecSatisfactionHigh)
	case sentiment.OverallRating >= 3.5:
		out = append(out, RecSatisfactionMixed)
	default:
		out = append(out, RecSatisfactionPoor)
	}

	switch sentiment.RecentTrend {
	case domain.TrendImproving:
		out = append(out, RecTrendUp)
	case domain.TrendDeclining:
		out = append(out, RecTrendDown)
	}

	if companyAge < 2 {
		out = append(out, RecEarlyStage)
	} else if companyAge >= 10 {
		out = append(out, RecEstablished)
	}

	return out
}
