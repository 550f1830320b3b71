package scoring

import (
	"math"
	"sort"
	"time"

	"github.com/credlens/credlens/internal/types"
)

// Breakdown keys for the impact components.
const (
	impactDecayedPRs       = "decayed_pr_count"
	impactReviewEngagement = "review_engagement"
	impactAcceptance       = "acceptance_rate"
	impactRepoDiversity    = "repo_diversity"
	impactMaintainerMerge  = "maintainer_merge"

	impactCrossRepo       = "cross_repo"
	impactReciprocity     = "review_reciprocity"
	impactIssueConversion = "issue_conversion"
	impactTeamRepos       = "team_repo_participation"

	impactSpanMonths  = "activity_span"
	impactConsistency = "consistency"
	impactYearsActive = "years_active"

	impactReviewRounds = "review_rounds"
	impactChangeSize   = "change_size"
	impactAntiSpam     = "anti_spam"
)

// Penalty reasons reported in the impact result.
const (
	PenaltySelfMerged = "self-merged PRs excluded"
	PenaltySpam       = "spam PRs excluded"
)

// ComputeImpactScore scores contribution magnitude, collaboration, longevity
// and quality from a normalized activity bundle. It never fails on empty
// activity; the only error path is a malformed config override.
func ComputeImpactScore(activity types.GitHubActivity, overrides *ImpactOverrides) (types.ImpactScoreResult, error) {
	cfg, err := resolveImpactConfig(overrides)
	if err != nil {
		return types.ImpactScoreResult{}, err
	}
	return computeImpact(activity, cfg, time.Now().UTC()), nil
}

// ComputeImpactScoreAt is ComputeImpactScore evaluated at a fixed point in
// time. Identical inputs always produce identical results.
func ComputeImpactScoreAt(activity types.GitHubActivity, overrides *ImpactOverrides, now time.Time) (types.ImpactScoreResult, error) {
	cfg, err := resolveImpactConfig(overrides)
	if err != nil {
		return types.ImpactScoreResult{}, err
	}
	return computeImpact(activity, cfg, now), nil
}

func computeImpact(activity types.GitHubActivity, cfg ImpactConfig, now time.Time) types.ImpactScoreResult {
	// Filter order matters: the self-merge filter runs first, the spam
	// filter runs on its survivors.
	surviving, selfMerged := filterSelfMerged(activity.MergedPRs)
	clean, spam := filterSpam(surviving, cfg)

	signals := types.ImpactSignals{
		SelfMergedPRs: selfMerged,
		SpamPRs:       spam,
		CleanPRs:      len(clean),
	}
	penalties := []types.ImpactPenalty{
		{Reason: PenaltySelfMerged, Count: selfMerged, Impact: 0},
		{Reason: PenaltySpam, Count: spam, Impact: 0},
	}

	var components types.ImpactComponents
	if len(clean) == 0 {
		components = types.ImpactComponents{
			PRImpact:      zeroComponent(cfg.Weights.PRImpact),
			Collaboration: zeroComponent(cfg.Weights.Collaboration),
			Longevity:     zeroComponent(cfg.Weights.Longevity),
			Quality:       zeroComponent(cfg.Weights.Quality),
		}
		return types.ImpactScoreResult{
			TotalScore:      0,
			Components:      components,
			Signals:         signals,
			TopRepositories: []types.RepositoryImpact{},
			RecentActivity:  []types.ActivityEvent{},
			Penalties:       penalties,
		}
	}

	components = types.ImpactComponents{
		PRImpact:      scorePRImpact(clean, cfg, now),
		Collaboration: scoreImpactCollaboration(activity, clean, cfg),
		Longevity:     scoreLongevity(clean, cfg),
		Quality:       scoreQuality(clean, cfg),
	}

	total := clamp100(
		components.PRImpact.Score*cfg.Weights.PRImpact +
			components.Collaboration.Score*cfg.Weights.Collaboration +
			components.Longevity.Score*cfg.Weights.Longevity +
			components.Quality.Score*cfg.Weights.Quality)

	return types.ImpactScoreResult{
		TotalScore:      total,
		Components:      components,
		Signals:         signals,
		TopRepositories: topRepositories(clean, 10),
		RecentActivity:  recentActivity(clean, cfg, now, 10),
		Penalties:       penalties,
	}
}

func filterSelfMerged(prs []types.MergedPR) (clean []types.MergedPR, excluded int) {
	clean = make([]types.MergedPR, 0, len(prs))
	for _, pr := range prs {
		if pr.IsSelfMerge() {
			excluded++
			continue
		}
		clean = append(clean, pr)
	}
	return clean, excluded
}

func filterSpam(prs []types.MergedPR, cfg ImpactConfig) (clean []types.MergedPR, excluded int) {
	perDay := make(map[string]int, len(prs))
	for _, pr := range prs {
		perDay[pr.MergedAt.Format("2006-01-02")]++
	}

	clean = make([]types.MergedPR, 0, len(prs))
	for _, pr := range prs {
		if pr.FilesChanged < cfg.MinPRSize || perDay[pr.MergedAt.Format("2006-01-02")] > cfg.MaxPRFrequency {
			excluded++
			continue
		}
		clean = append(clean, pr)
	}
	return clean, excluded
}

// decayedImpact weights a PR by cfg.DecayFactor per month of age.
func decayedImpact(pr types.MergedPR, cfg ImpactConfig, now time.Time) float64 {
	months := monthsInDays(now.Sub(pr.MergedAt).Hours() / 24)
	if months < 0 {
		months = 0
	}
	return math.Pow(cfg.DecayFactor, months)
}

func scorePRImpact(clean []types.MergedPR, cfg ImpactConfig, now time.Time) types.ComponentScore {
	decayed := 0.0
	comments := 0.0
	maintainerMerges := 0
	repos := map[string]struct{}{}
	for _, pr := range clean {
		decayed += decayedImpact(pr, cfg, now)
		comments += float64(pr.ReviewComments)
		if pr.IsMaintainerMerge {
			maintainerMerges++
		}
		repos[pr.Repository] = struct{}{}
	}

	decayedScore := clamp(decayed/10, 0, 1) * 100
	engagement := clamp(ratio(comments, float64(len(clean)))/5, 0, 1) * 100
	acceptance := 100.0 // only merged PRs are considered
	diversity := logScale(float64(len(repos)), 20)
	maintainerRatio := ratio(float64(maintainerMerges), float64(len(clean))) * 100

	score := clamp100(decayedScore*0.3 + engagement*0.25 + acceptance*0.15 + diversity*0.15 + maintainerRatio*0.15)
	return types.ComponentScore{
		Score:  score,
		Weight: cfg.Weights.PRImpact,
		Breakdown: map[string]float64{
			impactDecayedPRs:       decayedScore,
			impactReviewEngagement: engagement,
			impactAcceptance:       acceptance,
			impactRepoDiversity:    diversity,
			impactMaintainerMerge:  maintainerRatio,
		},
	}
}

func scoreImpactCollaboration(activity types.GitHubActivity, clean []types.MergedPR, cfg ImpactConfig) types.ComponentScore {
	repos := map[string]struct{}{}
	for _, pr := range clean {
		repos[pr.Repository] = struct{}{}
	}
	crossRepo := logScale(float64(len(repos)), 20)
	reciprocity := reviewReciprocity(len(activity.ReviewsGiven), len(activity.ReviewsReceived))

	linked := 0
	for _, issue := range activity.Issues {
		if issue.HasLinkedPR {
			linked++
		}
	}
	conversion := clamp100(ratio(float64(linked), float64(len(activity.Issues))) * 100)

	teamRepos := 0
	for _, repo := range activity.Repositories {
		if repo.ContributorCount > 1 {
			teamRepos++
		}
	}
	participation := clamp100(ratio(float64(teamRepos), float64(len(activity.Repositories))) * 100)

	score := clamp100(crossRepo*0.3 + reciprocity*0.3 + conversion*0.2 + participation*0.2)
	return types.ComponentScore{
		Score:  score,
		Weight: cfg.Weights.Collaboration,
		Breakdown: map[string]float64{
			impactCrossRepo:       crossRepo,
			impactReciprocity:     reciprocity,
			impactIssueConversion: conversion,
			impactTeamRepos:       participation,
		},
	}
}

func scoreLongevity(clean []types.MergedPR, cfg ImpactConfig) types.ComponentScore {
	first, last := clean[0].MergedAt, clean[0].MergedAt
	months := map[string]struct{}{}
	years := map[int]struct{}{}
	for _, pr := range clean {
		if pr.MergedAt.Before(first) {
			first = pr.MergedAt
		}
		if pr.MergedAt.After(last) {
			last = pr.MergedAt
		}
		months[pr.MergedAt.Format("2006-01")] = struct{}{}
		years[pr.MergedAt.Year()] = struct{}{}
	}

	spanMonths := monthsInDays(last.Sub(first).Hours() / 24)
	spanScore := linearScale(spanMonths, 24)
	consistency := clamp100(ratio(float64(len(months)), spanMonths) * 100)
	yearScore := linearScale(float64(len(years)), 3)

	score := clamp100(spanScore*0.4 + consistency*0.35 + yearScore*0.25)
	return types.ComponentScore{
		Score:  score,
		Weight: cfg.Weights.Longevity,
		Breakdown: map[string]float64{
			impactSpanMonths:  spanScore,
			impactConsistency: consistency,
			impactYearsActive: yearScore,
		},
	}
}

func scoreQuality(clean []types.MergedPR, cfg ImpactConfig) types.ComponentScore {
	rounds := 0.0
	touched := 0.0
	maintainerMerges := 0
	forkPRs := 0
	for _, pr := range clean {
		rounds += float64(pr.ReviewRounds)
		touched += float64(pr.FilesChanged + pr.DirectoriesChanged)
		if pr.IsMaintainerMerge {
			maintainerMerges++
		}
		if pr.IsFork {
			forkPRs++
		}
	}

	n := float64(len(clean))
	roundScore := linearScale(rounds/n, 3)
	maintainerRatio := ratio(float64(maintainerMerges), n) * 100
	sizeScore := clamp(touched/n/10, 0, 1) * 100

	forkPenalty := ratio(float64(forkPRs), n) * 50
	antiSpam := 100 - forkPenalty

	score := clamp100(roundScore*0.3 + maintainerRatio*0.3 + sizeScore*0.25 + antiSpam*0.15)
	return types.ComponentScore{
		Score:  score,
		Weight: cfg.Weights.Quality,
		Breakdown: map[string]float64{
			impactReviewRounds:    roundScore,
			impactMaintainerMerge: maintainerRatio,
			impactChangeSize:      sizeScore,
			impactAntiSpam:        antiSpam,
		},
	}
}

func topRepositories(clean []types.MergedPR, limit int) []types.RepositoryImpact {
	counts := map[string]int{}
	for _, pr := range clean {
		counts[pr.Repository]++
	}
	top := make([]types.RepositoryImpact, 0, len(counts))
	for repo, count := range counts {
		top = append(top, types.RepositoryImpact{Repository: repo, PRCount: count})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].PRCount != top[j].PRCount {
			return top[i].PRCount > top[j].PRCount
		}
		return top[i].Repository < top[j].Repository
	})
	if len(top) > limit {
		top = top[:limit]
	}
	return top
}

func recentActivity(clean []types.MergedPR, cfg ImpactConfig, now time.Time, limit int) []types.ActivityEvent {
	sorted := append([]types.MergedPR(nil), clean...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MergedAt.After(sorted[j].MergedAt)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	events := make([]types.ActivityEvent, 0, len(sorted))
	for _, pr := range sorted {
		events = append(events, types.ActivityEvent{
			Repository: pr.Repository,
			MergedAt:   pr.MergedAt,
			Impact:     decayedImpact(pr, cfg, now),
		})
	}
	return events
}
