package scoring

import (
	"fmt"

	"github.com/credlens/credlens/internal/types"
)

// Red flag categories the recruiter view is allowed to surface. The full
// trust red-flag list never crosses into the recruiter view.
const (
	recruiterFlagNotAuthentic = "Authenticity concerns detected"
	recruiterFlagForkFarming  = "Fork-only contribution pattern"
	recruiterFlagPoorFit      = "Poor role compatibility"
)

// ComputeRecruiterMatchScore combines the three axis results into one
// threshold-gated, boost-adjusted match score with recruiter and engineer
// views. The only error path is a malformed config override.
func ComputeRecruiterMatchScore(trust types.TrustScoreResult, compatibility types.CompatibilityScoreResult, impact types.ImpactScoreResult, overrides *MatchOverrides) (types.RecruiterMatchScoreResult, error) {
	cfg, err := resolveMatchConfig(overrides)
	if err != nil {
		return types.RecruiterMatchScoreResult{}, err
	}

	gated := trust.TotalScore < cfg.Thresholds.Trust ||
		compatibility.TotalScore < cfg.Thresholds.Compatibility ||
		impact.TotalScore < cfg.Thresholds.Impact

	var (
		total      float64
		components types.MatchComponents
		boosts     = types.MatchBoosts{Trust: 1, Compatibility: 1, Impact: 1}
	)
	if !gated {
		boosts = types.MatchBoosts{
			Trust:         boostFactor(trust.TotalScore, cfg.Boosts.Trust),
			Compatibility: boostFactor(compatibility.TotalScore, cfg.Boosts.Compatibility),
			Impact:        boostFactor(impact.TotalScore, cfg.Boosts.Impact),
		}
		// Reported components are the raw weighted contributions; the
		// boost multipliers are folded only into the capped total.
		components = types.MatchComponents{
			Trust:         trust.TotalScore * cfg.Weights.Trust,
			Compatibility: compatibility.TotalScore * cfg.Weights.Compatibility,
			Impact:        impact.TotalScore * cfg.Weights.Impact,
		}
		total = clamp100(
			trust.TotalScore*cfg.Weights.Trust*boosts.Trust +
				compatibility.TotalScore*cfg.Weights.Compatibility*boosts.Compatibility +
				impact.TotalScore*cfg.Weights.Impact*boosts.Impact)
	}

	level, recommendation := matchLevel(total)

	result := types.RecruiterMatchScoreResult{
		TotalMatchScore: total,
		MatchLevel:      level,
		Recommendation:  recommendation,
		Components:      components,
		CalculationDetails: types.CalculationDetails{
			Boosts: boosts,
			Gated:  gated,
		},
	}
	result.RecruiterView = buildRecruiterView(result, trust, compatibility, impact)
	result.EngineerView = buildEngineerView(trust, compatibility, impact)
	return result, nil
}

func boostFactor(score float64, rule BoostRule) float64 {
	if score > rule.Threshold {
		return rule.Factor
	}
	return 1
}

func matchLevel(total float64) (level, recommendation string) {
	switch {
	case total >= 85:
		return types.MatchExcellent, types.RecommendStrongly
	case total >= 70:
		return types.MatchStrong, types.Recommend
	case total >= 50:
		return types.MatchGood, types.RecommendConsider
	case total >= 30:
		return types.MatchFair, types.RecommendConsider
	default:
		return types.MatchPoor, types.RecommendAgainst
	}
}

// buildRecruiterView projects the shaped, restricted recruiter response.
// It is one of two projection functions over the same computation; the
// separation from buildEngineerView is a privacy boundary.
func buildRecruiterView(result types.RecruiterMatchScoreResult, trust types.TrustScoreResult, compatibility types.CompatibilityScoreResult, impact types.ImpactScoreResult) types.RecruiterView {
	strengths := []string{}
	if trust.TotalScore > 75 {
		strengths = append(strengths, fmt.Sprintf("Highly trustworthy contribution history (trust %.0f)", trust.TotalScore))
	}
	if compatibility.TotalScore > 75 {
		strengths = append(strengths, fmt.Sprintf("Excellent %s role fit (%.0f)", compatibility.Role, compatibility.TotalScore))
	}
	if impact.TotalScore > 80 {
		strengths = append(strengths, fmt.Sprintf("Outstanding contribution impact (%.0f)", impact.TotalScore))
	}
	if trust.TotalScore > 75 && compatibility.TotalScore > 75 {
		strengths = append(strengths, "Rare combination of high trust and strong role fit")
	}

	concerns := []string{}
	if trust.TotalScore < 60 {
		concerns = append(concerns, fmt.Sprintf("Trust score below comfort threshold (%.0f)", trust.TotalScore))
	}
	if compatibility.TotalScore < 50 {
		concerns = append(concerns, fmt.Sprintf("Role compatibility is limited (%.0f)", compatibility.TotalScore))
	}
	if impact.TotalScore < 50 {
		concerns = append(concerns, fmt.Sprintf("Contribution impact is modest (%.0f)", impact.TotalScore))
	}
	if len(trust.RedFlags) > 0 {
		concerns = append(concerns, fmt.Sprintf("%d authenticity flags raised", len(trust.RedFlags)))
	}

	// Only whitelisted red-flag categories reach recruiters.
	redFlags := []string{}
	if !trust.IsAuthentic {
		redFlags = append(redFlags, recruiterFlagNotAuthentic)
	}
	if trust.SpamDetection.ForkFarming {
		redFlags = append(redFlags, recruiterFlagForkFarming)
	}
	if compatibility.CompatibilityLevel == types.CompatibilityPoor {
		redFlags = append(redFlags, recruiterFlagPoorFit)
	}

	return types.RecruiterView{
		MatchScore:     result.TotalMatchScore,
		MatchLevel:     result.MatchLevel,
		Recommendation: result.Recommendation,
		TrustScore:     trust.TotalScore,
		FitScore:       compatibility.TotalScore,
		ImpactScore:    impact.TotalScore,
		IsAuthentic:    trust.IsAuthentic,
		IsGoodFit:      compatibility.CompatibilityLevel != types.CompatibilityPoor,
		HasImpact:      impact.TotalScore > 50,
		Strengths:      strengths,
		Concerns:       concerns,
		RedFlags:       redFlags,
		Summary:        recruiterSummary(result, compatibility),
	}
}

func recruiterSummary(result types.RecruiterMatchScoreResult, compatibility types.CompatibilityScoreResult) string {
	switch result.MatchLevel {
	case types.MatchExcellent:
		return fmt.Sprintf("Exceptional %s candidate with a verified, high-impact track record.", compatibility.Role)
	case types.MatchStrong:
		return fmt.Sprintf("Strong %s candidate worth prioritizing for outreach.", compatibility.Role)
	case types.MatchGood:
		return fmt.Sprintf("Solid %s candidate worth a closer look.", compatibility.Role)
	case types.MatchFair:
		return fmt.Sprintf("Possible %s candidate; review the concerns before reaching out.", compatibility.Role)
	default:
		return fmt.Sprintf("Not a recommended match for the %s role based on public activity.", compatibility.Role)
	}
}

// buildEngineerView projects the transparent engineer-facing response: the
// full axis breakdowns and improvement suggestions, never the match score or
// any recruiter-facing ranking language.
func buildEngineerView(trust types.TrustScoreResult, compatibility types.CompatibilityScoreResult, impact types.ImpactScoreResult) types.EngineerView {
	suggestions := []string{}
	if trust.Components.CollaborationSignals.Score < 50 {
		suggestions = append(suggestions, "Review more of your collaborators' pull requests; reciprocal reviews strengthen collaboration signals.")
	}
	if trust.SpamDetection.SelfMergeFarming || trust.Components.ContributionAuthenticity.Breakdown[trustMaintainerTrust] < 50 {
		suggestions = append(suggestions, "Contribute to repositories where maintainers merge your work; self-merged PRs carry little weight.")
	}
	if trust.Components.ContributionAuthenticity.Breakdown[trustDiversity] < 50 {
		suggestions = append(suggestions, "Contribute to a wider set of repositories to build repository diversity.")
	}
	if impact.Components.Longevity.Score < 50 {
		suggestions = append(suggestions, "Keep contributing regularly; sustained month-over-month activity builds longevity.")
	}
	if impact.Components.PRImpact.Score < 50 {
		suggestions = append(suggestions, "Focus on substantial pull requests that attract review discussion.")
	}
	if compatibility.Signals.TechnologyStack < 50 {
		suggestions = append(suggestions, fmt.Sprintf("Work with more of the core %s technologies to strengthen your stack evidence.", compatibility.Role))
	}
	if compatibility.NegativeSignals.InsufficientDepth > 0 {
		suggestions = append(suggestions, fmt.Sprintf("More merged PRs in %s-related code would give a clearer picture of your depth.", compatibility.Role))
	}

	return types.EngineerView{
		Trust:                  trust,
		Impact:                 impact,
		Compatibility:          compatibility,
		ImprovementSuggestions: suggestions,
	}
}
