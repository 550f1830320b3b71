package scoring

import (
	"time"

	"github.com/credlens/credlens/internal/types"
)

// Breakdown keys for the trust components.
const (
	trustAccountAge      = "account_age"
	trustAccountMaturity = "account_maturity"
	trustProfile         = "profile_completeness"

	trustSpan            = "contribution_span"
	trustDiversity       = "repository_diversity"
	trustMaintainerTrust = "maintainer_trust"
	trustConsistency     = "temporal_consistency"

	trustCollaborators = "unique_collaborators"
	trustInteractions  = "maintainer_interactions"
	trustCrossRepo     = "cross_repo_collaboration"
	trustReciprocity   = "review_reciprocity"

	trustSpamScore  = "spam_score"
	trustForkScore  = "fork_score"
	trustPattern    = "pattern_anomaly"
	trustBehavioral = "behavioral"
)

// Red/green flag strings. Consumed verbatim by the explanation generator and
// the recruiter view, so changing them is a breaking change.
const (
	FlagForkOnly          = "Fork-only contributions detected"
	FlagAccountTooNew     = "Account too new"
	FlagExcessiveDaily    = "Excessive daily PR volume"
	FlagIdenticalCommits  = "Repeated identical commit messages"
	FlagSelfMergeMajority = "Majority of PRs are self-merged"
	FlagRepoFarming       = "Shallow activity spread across many repositories"
	FlagLowDiversity      = "Low repository diversity"

	FlagHighMaintainerTrust = "High maintainer trust"
	FlagSustainedHistory    = "Sustained contribution history"
	FlagHealthyReciprocity  = "Healthy review reciprocity"
	FlagCompleteProfile     = "Complete public profile"
)

// Penalty points per detected spam signal.
const (
	penaltyExcessiveDaily   = 30
	penaltyIdenticalCommits = 25
	penaltyForkFarming      = 40
	penaltySelfMergeFarming = 30
	penaltyRepoFarming      = 20
)

// ComputeTrustScore scores account and contribution authenticity from an
// account snapshot and a contribution pattern. It never fails on thin or
// empty data; the only error path is a malformed config override.
func ComputeTrustScore(account types.GitHubAccount, pattern types.ContributionPattern, overrides *TrustOverrides) (types.TrustScoreResult, error) {
	cfg, err := resolveTrustConfig(overrides)
	if err != nil {
		return types.TrustScoreResult{}, err
	}
	return computeTrust(account, pattern, cfg, time.Now().UTC()), nil
}

// ComputeTrustScoreAt is ComputeTrustScore evaluated at a fixed point in
// time. Identical inputs always produce identical results.
func ComputeTrustScoreAt(account types.GitHubAccount, pattern types.ContributionPattern, overrides *TrustOverrides, now time.Time) (types.TrustScoreResult, error) {
	cfg, err := resolveTrustConfig(overrides)
	if err != nil {
		return types.TrustScoreResult{}, err
	}
	return computeTrust(account, pattern, cfg, now), nil
}

// computeTrust is the deterministic core, parameterized on "now" so results
// are reproducible in tests.
func computeTrust(account types.GitHubAccount, pattern types.ContributionPattern, cfg TrustConfig, now time.Time) types.TrustScoreResult {
	spam := detectSpamSignals(pattern, cfg)

	accountAgeDays := now.Sub(account.CreatedAt).Hours() / 24
	spanDays := pattern.ContributionSpan().Hours() / 24

	empty := pattern.TotalPRs == 0 && pattern.MergedPRs == 0

	var components types.TrustComponents
	if empty {
		components = types.TrustComponents{
			AccountAuthenticity:      zeroComponent(cfg.Weights.AccountAuthenticity),
			ContributionAuthenticity: zeroComponent(cfg.Weights.ContributionAuthenticity),
			CollaborationSignals:     zeroComponent(cfg.Weights.CollaborationSignals),
			AntiGaming:               zeroComponent(cfg.Weights.AntiGaming),
		}
	} else {
		components = types.TrustComponents{
			AccountAuthenticity:      scoreAccountAuthenticity(account, accountAgeDays, spanDays, cfg),
			ContributionAuthenticity: scoreContributionAuthenticity(pattern, spanDays, cfg),
			CollaborationSignals:     scoreCollaborationSignals(pattern, cfg),
			AntiGaming:               scoreAntiGaming(account, pattern, spam, accountAgeDays, cfg),
		}
	}

	total := clamp100(
		components.AccountAuthenticity.Score*cfg.Weights.AccountAuthenticity +
			components.ContributionAuthenticity.Score*cfg.Weights.ContributionAuthenticity +
			components.CollaborationSignals.Score*cfg.Weights.CollaborationSignals +
			components.AntiGaming.Score*cfg.Weights.AntiGaming)

	redFlags, greenFlags := trustFlags(account, pattern, spam, components, accountAgeDays, spanDays, cfg)

	confidence := 100.0
	if pattern.TotalPRs < 5 {
		confidence -= 30
	}
	if spanDays < 30 {
		confidence -= 20
	}
	if pattern.UniqueRepositories < 2 {
		confidence -= 25
	}
	if confidence < 0 {
		confidence = 0
	}

	return types.TrustScoreResult{
		TotalScore:    total,
		Components:    components,
		SpamDetection: spam,
		IsAuthentic:   total >= 60 && len(redFlags) < 3 && !spam.ForkFarming,
		Confidence:    confidence,
		RedFlags:      redFlags,
		GreenFlags:    greenFlags,
	}
}

func zeroComponent(weight float64) types.ComponentScore {
	return types.ComponentScore{Score: 0, Weight: weight, Breakdown: map[string]float64{}}
}

// detectSpamSignals is the pure predicate pass over the pattern.
func detectSpamSignals(p types.ContributionPattern, cfg TrustConfig) types.SpamSignals {
	return types.SpamSignals{
		ExcessiveDailyPRs:       p.MaxPRsPerDay > cfg.MaxDailyPRs,
		IdenticalCommitMessages: p.DuplicateCommitMessages >= cfg.DuplicateMessageThreshold,
		ForkFarming:             p.ForkPRs > 0 && p.OriginalRepoContributions == 0,
		SelfMergeFarming:        p.MergedPRs > 0 && ratio(float64(p.SelfMergedPRs), float64(p.MergedPRs)) > 0.5,
		RepositoryFarming:       p.UniqueRepositories > 50 && p.ReposWithMultiplePRs < 5,
	}
}

func scoreAccountAuthenticity(account types.GitHubAccount, ageDays, spanDays float64, cfg TrustConfig) types.ComponentScore {
	ageScore := linearScale(ageDays, 365)
	if ageDays < float64(cfg.MinAccountAgeDays) {
		ageScore *= 0.3
	}
	maturityScore := linearScale(spanDays, 182.5)

	completeness := 0.0
	for _, field := range []string{account.Bio, account.Location, account.Company, account.Website, account.Email} {
		if field != "" {
			completeness += 20
		}
	}
	completeness = clamp100(completeness)

	score := clamp100(ageScore*0.4 + maturityScore*0.35 + completeness*0.25)
	return types.ComponentScore{
		Score:  score,
		Weight: cfg.Weights.AccountAuthenticity,
		Breakdown: map[string]float64{
			trustAccountAge:      ageScore,
			trustAccountMaturity: maturityScore,
			trustProfile:         completeness,
		},
	}
}

func scoreContributionAuthenticity(p types.ContributionPattern, spanDays float64, cfg TrustConfig) types.ComponentScore {
	spanScore := linearScale(spanDays, 365)
	diversity := logScale(float64(p.UniqueRepositories), 20)
	maintainerTrust := clamp100(ratio(float64(p.MergedPRs-p.SelfMergedPRs), float64(p.MergedPRs)) * 100)

	spanMonths := monthsInDays(spanDays)
	consistency := clamp100(ratio(float64(p.ActiveMonths), spanMonths) * 100)

	score := (spanScore + diversity + maintainerTrust + consistency) / 4
	if p.UniqueRepositories < cfg.MinUniqueRepos {
		score *= 0.5
	}
	return types.ComponentScore{
		Score:  clamp100(score),
		Weight: cfg.Weights.ContributionAuthenticity,
		Breakdown: map[string]float64{
			trustSpan:            spanScore,
			trustDiversity:       diversity,
			trustMaintainerTrust: maintainerTrust,
			trustConsistency:     consistency,
		},
	}
}

func scoreCollaborationSignals(p types.ContributionPattern, cfg TrustConfig) types.ComponentScore {
	collaborators := logScale(float64(p.UniqueCollaborators), 50)
	interactions := clamp100(ratio(float64(p.MaintainerInteractions), float64(p.MergedPRs)) * 100)
	crossRepo := clamp100(ratio(float64(p.CrossRepoCollaborations), float64(p.UniqueRepositories)) * 100)
	reciprocity := reviewReciprocity(p.ReviewsGiven, p.ReviewsReceived)

	score := clamp100((collaborators + interactions + crossRepo + reciprocity) / 4)
	return types.ComponentScore{
		Score:  score,
		Weight: cfg.Weights.CollaborationSignals,
		Breakdown: map[string]float64{
			trustCollaborators: collaborators,
			trustInteractions:  interactions,
			trustCrossRepo:     crossRepo,
			trustReciprocity:   reciprocity,
		},
	}
}

// reviewReciprocity is min(given,received)/max(given,received) scaled to 100.
func reviewReciprocity(given, received int) float64 {
	if given == 0 && received == 0 {
		return 0
	}
	lo, hi := float64(given), float64(received)
	if lo > hi {
		lo, hi = hi, lo
	}
	return clamp100(lo / hi * 100)
}

func scoreAntiGaming(account types.GitHubAccount, p types.ContributionPattern, spam types.SpamSignals, ageDays float64, cfg TrustConfig) types.ComponentScore {
	spamScore := 100.0
	if spam.ExcessiveDailyPRs {
		spamScore -= penaltyExcessiveDaily
	}
	if spam.IdenticalCommitMessages {
		spamScore -= penaltyIdenticalCommits
	}
	if spam.ForkFarming {
		spamScore -= penaltyForkFarming
	}
	if spam.SelfMergeFarming {
		spamScore -= penaltySelfMergeFarming
	}
	if spam.RepositoryFarming {
		spamScore -= penaltyRepoFarming
	}
	if spamScore < 0 {
		spamScore = 0
	}

	forkScore := 100 - forkRatioPenalty(p)

	patternScore := 100.0
	if p.MaxPRsPerDay > cfg.MaxDailyPRs/2 {
		patternScore -= 25
	}
	if p.DuplicateCommitMessages > 0 {
		patternScore -= 25
	}
	if patternScore < 0 {
		patternScore = 0
	}

	behavioral := 100.0
	if ageDays < float64(cfg.MinAccountAgeDays) && p.TotalPRs > 50 {
		behavioral -= 40
	}
	if ratio(float64(p.SelfMergedPRs), float64(p.MergedPRs)) > 0.3 {
		behavioral -= 30
	}
	if p.ReviewsGiven == 0 && p.MergedPRs > 10 {
		behavioral -= 20
	}
	if behavioral < 0 {
		behavioral = 0
	}

	score := clamp100(spamScore*0.4 + forkScore*0.3 + patternScore*0.2 + behavioral*0.1)
	return types.ComponentScore{
		Score:  score,
		Weight: cfg.Weights.AntiGaming,
		Breakdown: map[string]float64{
			trustSpamScore:  spamScore,
			trustForkScore:  forkScore,
			trustPattern:    patternScore,
			trustBehavioral: behavioral,
		},
	}
}

// forkRatioPenalty returns the tiered penalty for fork-heavy activity.
func forkRatioPenalty(p types.ContributionPattern) float64 {
	if p.TotalPRs == 0 {
		return 0
	}
	forkRatio := float64(p.ForkPRs) / float64(p.TotalPRs)
	switch {
	case forkRatio == 1 && p.OriginalRepoContributions == 0:
		return 100
	case forkRatio > 0.8:
		return 70
	case forkRatio > 0.5:
		return 40
	default:
		return 0
	}
}

func trustFlags(account types.GitHubAccount, p types.ContributionPattern, spam types.SpamSignals, components types.TrustComponents, ageDays, spanDays float64, cfg TrustConfig) (red []string, green []string) {
	red = []string{}
	green = []string{}

	if spam.ForkFarming {
		red = append(red, FlagForkOnly)
	}
	if ageDays < float64(cfg.MinAccountAgeDays) {
		red = append(red, FlagAccountTooNew)
	}
	if spam.ExcessiveDailyPRs {
		red = append(red, FlagExcessiveDaily)
	}
	if spam.IdenticalCommitMessages {
		red = append(red, FlagIdenticalCommits)
	}
	if spam.SelfMergeFarming {
		red = append(red, FlagSelfMergeMajority)
	}
	if spam.RepositoryFarming {
		red = append(red, FlagRepoFarming)
	}
	if p.TotalPRs > 0 && p.UniqueRepositories < cfg.MinUniqueRepos {
		red = append(red, FlagLowDiversity)
	}

	if components.ContributionAuthenticity.Breakdown[trustMaintainerTrust] > 80 {
		green = append(green, FlagHighMaintainerTrust)
	}
	if spanDays >= 365 {
		green = append(green, FlagSustainedHistory)
	}
	if components.CollaborationSignals.Breakdown[trustReciprocity] > 70 {
		green = append(green, FlagHealthyReciprocity)
	}
	if components.AccountAuthenticity.Breakdown[trustProfile] >= 80 {
		green = append(green, FlagCompleteProfile)
	}
	return red, green
}
