package scoring

import (
	"fmt"
	"strings"

	"github.com/credlens/credlens/internal/types"
)

// The account age score is linear up to 365 days, so a score below this
// marks an account younger than six months.
const newAccountAgeScore = 180.0 / 365 * 100

// GenerateMatchExplanation turns the three axis results into prose strengths
// and concerns with concrete evidence. It is purely derivative: it never
// invents a score, never ranks, and stays usable when no match score was
// computed.
func GenerateMatchExplanation(trust types.TrustScoreResult, impact types.ImpactScoreResult, compatibility types.CompatibilityScoreResult) types.MatchExplanation {
	return types.MatchExplanation{
		WhyThisMatch:            whyThisMatch(trust, impact, compatibility),
		Strengths:               explainStrengths(trust, impact, compatibility),
		Concerns:                explainConcerns(trust, impact, compatibility),
		TrustIndicators:         trustIndicators(trust),
		CompatibilityIndicators: compatibilityIndicators(compatibility),
		ImpactIndicators:        impactIndicators(impact),
	}
}

// whyThisMatch is a templated sentence: one clause each for authenticity,
// role compatibility, and impact level.
func whyThisMatch(trust types.TrustScoreResult, impact types.ImpactScoreResult, compatibility types.CompatibilityScoreResult) string {
	var authenticity string
	if trust.IsAuthentic {
		authenticity = "This engineer has an authentic, verifiable contribution history"
	} else {
		authenticity = "This engineer's contribution history raises authenticity concerns"
	}

	var fit string
	switch compatibility.CompatibilityLevel {
	case types.CompatibilityHigh:
		fit = fmt.Sprintf("shows a strong fit for %s work", compatibility.Role)
	case types.CompatibilityMedium:
		fit = fmt.Sprintf("shows a reasonable fit for %s work", compatibility.Role)
	case types.CompatibilityLow:
		fit = fmt.Sprintf("shows limited alignment with %s work", compatibility.Role)
	default:
		fit = fmt.Sprintf("shows little evidence of %s work", compatibility.Role)
	}

	var impactClause string
	switch {
	case impact.TotalScore >= 70:
		impactClause = "with a high-impact track record"
	case impact.TotalScore >= 40:
		impactClause = "with a moderate contribution footprint"
	default:
		impactClause = "with a modest contribution footprint so far"
	}

	return fmt.Sprintf("%s, %s, %s.", authenticity, fit, impactClause)
}

func explainStrengths(trust types.TrustScoreResult, impact types.ImpactScoreResult, compatibility types.CompatibilityScoreResult) []types.ExplanationEntry {
	strengths := []types.ExplanationEntry{}

	if trust.IsAuthentic {
		strengths = append(strengths, types.ExplanationEntry{
			Title:       "Authentic profile",
			Description: "Account and contribution history pass authenticity checks.",
			Evidence: []string{
				fmt.Sprintf("trust score %.0f/100", trust.TotalScore),
				fmt.Sprintf("confidence %.0f%%", trust.Confidence),
			},
		})
	}
	if v := trust.Components.ContributionAuthenticity.Breakdown[trustMaintainerTrust]; v > 80 {
		strengths = append(strengths, types.ExplanationEntry{
			Title:       "Maintainer-validated work",
			Description: "Most merged PRs were accepted by project maintainers rather than self-merged.",
			Evidence:    []string{fmt.Sprintf("maintainer trust ratio %.0f%%", v)},
		})
	}
	if v := trust.Components.ContributionAuthenticity.Breakdown[trustDiversity]; v > 70 {
		strengths = append(strengths, types.ExplanationEntry{
			Title:       "Broad repository footprint",
			Description: "Contributions span a diverse set of repositories.",
			Evidence:    []string{fmt.Sprintf("repository diversity score %.0f/100", v)},
		})
	}
	if v := trust.Components.CollaborationSignals.Score; v > 70 {
		strengths = append(strengths, types.ExplanationEntry{
			Title:       "Strong collaboration signals",
			Description: "Works with many collaborators and reciprocates code reviews.",
			Evidence: []string{
				fmt.Sprintf("collaboration component %.0f/100", v),
				fmt.Sprintf("review reciprocity %.0f%%", trust.Components.CollaborationSignals.Breakdown[trustReciprocity]),
			},
		})
	}

	if v := impact.Components.PRImpact.Score; v > 70 {
		strengths = append(strengths, types.ExplanationEntry{
			Title:       "High pull-request impact",
			Description: "Recent merged PRs draw substantial review engagement.",
			Evidence: []string{
				fmt.Sprintf("PR impact component %.0f/100", v),
				fmt.Sprintf("%d clean merged PRs considered", impact.Signals.CleanPRs),
			},
		})
	}
	if v := impact.Components.Longevity.Score; v > 70 {
		strengths = append(strengths, types.ExplanationEntry{
			Title:       "Sustained contribution record",
			Description: "Consistent activity over an extended period.",
			Evidence:    []string{fmt.Sprintf("longevity component %.0f/100", v)},
		})
	}
	if v := impact.Components.Collaboration.Score; v > 70 {
		strengths = append(strengths, types.ExplanationEntry{
			Title:       "Collaborative contributor",
			Description: "Participates in team repositories and follows issues through to PRs.",
			Evidence:    []string{fmt.Sprintf("impact collaboration component %.0f/100", v)},
		})
	}

	if v := compatibility.Signals.TechnologyStack; v > 70 {
		strengths = append(strengths, types.ExplanationEntry{
			Title:       fmt.Sprintf("Matching %s technology stack", compatibility.Role),
			Description: "The technologies this engineer works with match the role.",
			Evidence: []string{
				fmt.Sprintf("technology match score %.0f/100", v),
				fmt.Sprintf("matched: %s", strings.Join(compatibility.MatchedTechnologies, ", ")),
			},
		})
	}
	if v := compatibility.Signals.DomainDepth; v > 70 {
		strengths = append(strengths, types.ExplanationEntry{
			Title:       fmt.Sprintf("Deep %s experience", compatibility.Role),
			Description: "The bulk of analyzed PRs are squarely in the role's domain.",
			Evidence:    []string{fmt.Sprintf("domain depth %.0f%% of PRs", v)},
		})
	}
	if len(compatibility.DetectedPatterns) > 0 {
		strengths = append(strengths, types.ExplanationEntry{
			Title:       "Relevant architecture experience",
			Description: fmt.Sprintf("Worked with architecture patterns expected of a %s engineer.", compatibility.Role),
			Evidence:    []string{fmt.Sprintf("patterns: %s", strings.Join(compatibility.DetectedPatterns, ", "))},
		})
	}

	return strengths
}

func explainConcerns(trust types.TrustScoreResult, impact types.ImpactScoreResult, compatibility types.CompatibilityScoreResult) []types.ConcernEntry {
	concerns := []types.ConcernEntry{}

	if !trust.IsAuthentic {
		concerns = append(concerns, types.ConcernEntry{
			Title:       "Authenticity not established",
			Description: "The profile did not pass authenticity checks.",
			Severity:    types.SeverityHigh,
			Evidence: []string{
				fmt.Sprintf("trust score %.0f/100", trust.TotalScore),
				fmt.Sprintf("%d red flags", len(trust.RedFlags)),
			},
		})
	}
	if trust.SpamDetection.ForkFarming {
		concerns = append(concerns, types.ConcernEntry{
			Title:       "Fork-only contributions",
			Description: "All contributions target forked repositories, none original ones.",
			Severity:    types.SeverityHigh,
			Evidence:    []string{FlagForkOnly},
		})
	}
	if v := trust.Components.AntiGaming.Breakdown[trustForkScore]; v > 0 && v <= 60 {
		concerns = append(concerns, types.ConcernEntry{
			Title:       "Fork-heavy activity",
			Description: "A large share of PRs target forked repositories.",
			Severity:    types.SeverityMedium,
			Evidence:    []string{fmt.Sprintf("fork score %.0f/100", v)},
		})
	}
	if v, ok := trust.Components.AccountAuthenticity.Breakdown[trustAccountAge]; ok && v < newAccountAgeScore {
		concerns = append(concerns, types.ConcernEntry{
			Title:       "New account",
			Description: "The account is less than six months old, limiting the evidence window.",
			Severity:    types.SeverityLow,
			Evidence:    []string{fmt.Sprintf("account age score %.0f/100", v)},
		})
	}
	if v := trust.Components.ContributionAuthenticity.Breakdown[trustDiversity]; v > 0 && v < 40 {
		concerns = append(concerns, types.ConcernEntry{
			Title:       "Low repository diversity",
			Description: "Contributions concentrate in very few repositories.",
			Severity:    types.SeverityMedium,
			Evidence:    []string{fmt.Sprintf("diversity score %.0f/100", v)},
		})
	}
	if v := trust.Components.CollaborationSignals.Score; v < 40 {
		concerns = append(concerns, types.ConcernEntry{
			Title:       "Limited collaboration",
			Description: "Few collaborators or little review reciprocity in the history.",
			Severity:    types.SeverityMedium,
			Evidence:    []string{fmt.Sprintf("collaboration component %.0f/100", v)},
		})
	}

	if impact.Signals.CleanPRs < 5 {
		concerns = append(concerns, types.ConcernEntry{
			Title:       "Few merged PRs",
			Description: "Not enough merged pull requests for a reliable impact estimate.",
			Severity:    types.SeverityLow,
			Evidence:    []string{fmt.Sprintf("%d clean merged PRs", impact.Signals.CleanPRs)},
		})
	}
	if v := impact.Components.Longevity.Score; v > 0 && v < 40 {
		concerns = append(concerns, types.ConcernEntry{
			Title:       "Short activity span",
			Description: "Merged activity covers a short period.",
			Severity:    types.SeverityLow,
			Evidence:    []string{fmt.Sprintf("longevity component %.0f/100", v)},
		})
	}

	if compatibility.CompatibilityLevel == types.CompatibilityPoor {
		concerns = append(concerns, types.ConcernEntry{
			Title:       fmt.Sprintf("Poor %s compatibility", compatibility.Role),
			Description: "Public activity shows little evidence of the requested role.",
			Severity:    types.SeverityHigh,
			Evidence:    []string{fmt.Sprintf("compatibility score %.0f/100", compatibility.TotalScore)},
		})
	}
	if v := compatibility.Signals.TechnologyStack; v < 40 {
		concerns = append(concerns, types.ConcernEntry{
			Title:       "Weak technology match",
			Description: fmt.Sprintf("Few %s technologies appear in the activity.", compatibility.Role),
			Severity:    types.SeverityMedium,
			Evidence:    []string{fmt.Sprintf("technology match %.0f/100", v)},
		})
	}
	if v := compatibility.Signals.DomainDepth; v < 40 {
		concerns = append(concerns, types.ConcernEntry{
			Title:       "Shallow domain depth",
			Description: fmt.Sprintf("Few PRs are substantially %s-related.", compatibility.Role),
			Severity:    types.SeverityMedium,
			Evidence:    []string{fmt.Sprintf("domain depth %.0f%%", v)},
		})
	}
	if v := compatibility.NegativeSignals.TechnologyMismatch; v > 50 {
		concerns = append(concerns, types.ConcernEntry{
			Title:       "Off-role technology focus",
			Description: fmt.Sprintf("Much of the activity involves technologies that point away from %s work.", compatibility.Role),
			Severity:    types.SeverityMedium,
			Evidence:    []string{fmt.Sprintf("technology mismatch %.0f%%", v)},
		})
	}

	return concerns
}

func trustIndicators(trust types.TrustScoreResult) []string {
	indicators := append([]string{}, trust.GreenFlags...)
	indicators = append(indicators, fmt.Sprintf("confidence %.0f%%", trust.Confidence))
	return indicators
}

func compatibilityIndicators(compatibility types.CompatibilityScoreResult) []string {
	indicators := []string{fmt.Sprintf("compatibility level: %s", compatibility.CompatibilityLevel)}
	if len(compatibility.MatchedTechnologies) > 0 {
		indicators = append(indicators, fmt.Sprintf("matched technologies: %s", strings.Join(compatibility.MatchedTechnologies, ", ")))
	}
	if len(compatibility.DetectedPatterns) > 0 {
		indicators = append(indicators, fmt.Sprintf("architecture patterns: %s", strings.Join(compatibility.DetectedPatterns, ", ")))
	}
	return indicators
}

func impactIndicators(impact types.ImpactScoreResult) []string {
	indicators := []string{fmt.Sprintf("%d merged PRs considered", impact.Signals.CleanPRs)}
	if impact.Signals.SelfMergedPRs > 0 {
		indicators = append(indicators, fmt.Sprintf("%d self-merged PRs excluded", impact.Signals.SelfMergedPRs))
	}
	if impact.Signals.SpamPRs > 0 {
		indicators = append(indicators, fmt.Sprintf("%d spam PRs excluded", impact.Signals.SpamPRs))
	}
	for i, repo := range impact.TopRepositories {
		if i >= 3 {
			break
		}
		indicators = append(indicators, fmt.Sprintf("%s: %d merged PRs", repo.Repository, repo.PRCount))
	}
	return indicators
}
