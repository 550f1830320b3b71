package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credlens/credlens/internal/types"
)

var trustNow = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func establishedAccount() types.GitHubAccount {
	return types.GitHubAccount{
		Username:  "senior-dev",
		CreatedAt: trustNow.AddDate(-4, 0, 0),
		Bio:       "Backend engineer",
		Location:  "Berlin",
		Company:   "Acme",
		Website:   "https://example.dev",
		Email:     "dev@example.dev",
	}
}

func healthyPattern() types.ContributionPattern {
	return types.ContributionPattern{
		TotalPRs:                  120,
		MergedPRs:                 100,
		SelfMergedPRs:             5,
		ForkPRs:                   10,
		OriginalRepoContributions: 90,
		MaxPRsPerDay:              3,
		ActiveMonths:              30,
		UniqueRepositories:        15,
		ReposWithMultiplePRs:      8,
		UniqueCollaborators:       40,
		MaintainerInteractions:    80,
		CrossRepoCollaborations:   10,
		ReviewsGiven:              60,
		ReviewsReceived:           70,
		FirstContribution:         trustNow.AddDate(-3, 0, 0),
		LastContribution:          trustNow.AddDate(0, 0, -1),
	}
}

func TestComputeTrustScore_HealthyProfile(t *testing.T) {
	result, err := ComputeTrustScoreAt(establishedAccount(), healthyPattern(), nil, trustNow)
	require.NoError(t, err)

	assert.True(t, result.IsAuthentic)
	assert.Greater(t, result.TotalScore, 80.0)
	assert.LessOrEqual(t, result.TotalScore, 100.0)
	assert.Equal(t, 100.0, result.Confidence)
	assert.Empty(t, result.RedFlags)
	assert.Equal(t, 0, result.SpamDetection.Count())

	assert.Contains(t, result.GreenFlags, FlagHighMaintainerTrust)
	assert.Contains(t, result.GreenFlags, FlagSustainedHistory)
	assert.Contains(t, result.GreenFlags, FlagHealthyReciprocity)
	assert.Contains(t, result.GreenFlags, FlagCompleteProfile)
}

func TestComputeTrustScore_ComponentRanges(t *testing.T) {
	result, err := ComputeTrustScoreAt(establishedAccount(), healthyPattern(), nil, trustNow)
	require.NoError(t, err)

	for name, component := range map[string]types.ComponentScore{
		"account_authenticity":      result.Components.AccountAuthenticity,
		"contribution_authenticity": result.Components.ContributionAuthenticity,
		"collaboration_signals":     result.Components.CollaborationSignals,
		"anti_gaming":               result.Components.AntiGaming,
	} {
		assert.GreaterOrEqual(t, component.Score, 0.0, name)
		assert.LessOrEqual(t, component.Score, 100.0, name)
		assert.NotEmpty(t, component.Breakdown, name)
		for key, v := range component.Breakdown {
			assert.GreaterOrEqual(t, v, 0.0, "%s/%s", name, key)
			assert.LessOrEqual(t, v, 100.0, "%s/%s", name, key)
		}
	}
}

func TestComputeTrustScore_Deterministic(t *testing.T) {
	first, err := ComputeTrustScoreAt(establishedAccount(), healthyPattern(), nil, trustNow)
	require.NoError(t, err)
	second, err := ComputeTrustScoreAt(establishedAccount(), healthyPattern(), nil, trustNow)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeTrustScore_ForkFarming(t *testing.T) {
	pattern := types.ContributionPattern{
		TotalPRs:                  30,
		MergedPRs:                 25,
		ForkPRs:                   30,
		OriginalRepoContributions: 0,
		MaxPRsPerDay:              2,
		ActiveMonths:              4,
		UniqueRepositories:        6,
		ReposWithMultiplePRs:      2,
		FirstContribution:         trustNow.AddDate(0, -4, 0),
		LastContribution:          trustNow.AddDate(0, 0, -1),
	}

	result, err := ComputeTrustScoreAt(establishedAccount(), pattern, nil, trustNow)
	require.NoError(t, err)

	assert.True(t, result.SpamDetection.ForkFarming)
	assert.Contains(t, result.RedFlags, FlagForkOnly)
	// Fork farming disqualifies regardless of the numeric total.
	assert.False(t, result.IsAuthentic)
	assert.Equal(t, 0.0, result.Components.AntiGaming.Breakdown["fork_score"])
}

func TestComputeTrustScore_SpamSignalsAccumulate(t *testing.T) {
	pattern := healthyPattern()
	pattern.MaxPRsPerDay = 25
	pattern.DuplicateCommitMessages = 7
	pattern.SelfMergedPRs = 60

	result, err := ComputeTrustScoreAt(establishedAccount(), pattern, nil, trustNow)
	require.NoError(t, err)

	assert.True(t, result.SpamDetection.ExcessiveDailyPRs)
	assert.True(t, result.SpamDetection.IdenticalCommitMessages)
	assert.True(t, result.SpamDetection.SelfMergeFarming)
	assert.Equal(t, 3, result.SpamDetection.Count())

	assert.Contains(t, result.RedFlags, FlagExcessiveDaily)
	assert.Contains(t, result.RedFlags, FlagIdenticalCommits)
	assert.Contains(t, result.RedFlags, FlagSelfMergeMajority)
	// Three or more red flags disqualify the profile.
	assert.False(t, result.IsAuthentic)
}

func TestComputeTrustScore_EmptyPattern(t *testing.T) {
	account := types.GitHubAccount{
		Username:  "brand-new",
		CreatedAt: trustNow.AddDate(0, 0, -10),
	}

	result, err := ComputeTrustScoreAt(account, types.ContributionPattern{}, nil, trustNow)
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.TotalScore)
	assert.False(t, result.IsAuthentic)
	assert.Equal(t, 0.0, result.Components.AccountAuthenticity.Score)
	assert.Equal(t, 0.0, result.Components.AntiGaming.Score)
	assert.Contains(t, result.RedFlags, FlagAccountTooNew)
	// Thin evidence: <5 PRs, <30 day span, <2 repos.
	assert.Equal(t, 25.0, result.Confidence)
}

func TestComputeTrustScore_OverridesChangeDetection(t *testing.T) {
	pattern := healthyPattern() // MaxPRsPerDay is 3

	baseline, err := ComputeTrustScoreAt(establishedAccount(), pattern, nil, trustNow)
	require.NoError(t, err)
	assert.False(t, baseline.SpamDetection.ExcessiveDailyPRs)

	strict, err := ComputeTrustScoreAt(establishedAccount(), pattern, &TrustOverrides{
		MaxDailyPRs: intPtr(2),
	}, trustNow)
	require.NoError(t, err)
	assert.True(t, strict.SpamDetection.ExcessiveDailyPRs)
	assert.Contains(t, strict.RedFlags, FlagExcessiveDaily)
}

func TestComputeTrustScore_InvalidOverride(t *testing.T) {
	_, err := ComputeTrustScoreAt(establishedAccount(), healthyPattern(), &TrustOverrides{
		Weights: &TrustWeightOverrides{AntiGaming: floatPtr(2)},
	}, trustNow)
	assert.Error(t, err)
}

func TestComputeTrustScore_LowDiversityFlag(t *testing.T) {
	pattern := healthyPattern()
	pattern.UniqueRepositories = 1

	result, err := ComputeTrustScoreAt(establishedAccount(), pattern, nil, trustNow)
	require.NoError(t, err)

	assert.Contains(t, result.RedFlags, FlagLowDiversity)
	// Single-repo history halves contribution authenticity.
	assert.Less(t, result.Components.ContributionAuthenticity.Score, 60.0)
}

func TestDetectSpamSignals(t *testing.T) {
	cfg := DefaultTrustConfig()

	tests := []struct {
		name    string
		pattern types.ContributionPattern
		check   func(t *testing.T, s types.SpamSignals)
	}{
		{
			name:    "clean pattern has no signals",
			pattern: healthyPattern(),
			check: func(t *testing.T, s types.SpamSignals) {
				assert.Equal(t, 0, s.Count())
			},
		},
		{
			name: "repository farming needs breadth without depth",
			pattern: types.ContributionPattern{
				TotalPRs:             80,
				MergedPRs:            60,
				UniqueRepositories:   60,
				ReposWithMultiplePRs: 2,
			},
			check: func(t *testing.T, s types.SpamSignals) {
				assert.True(t, s.RepositoryFarming)
			},
		},
		{
			name: "self merge below half is tolerated",
			pattern: types.ContributionPattern{
				TotalPRs:      20,
				MergedPRs:     20,
				SelfMergedPRs: 10,
			},
			check: func(t *testing.T, s types.SpamSignals) {
				assert.False(t, s.SelfMergeFarming)
			},
		},
		{
			name: "fork farming requires zero original contributions",
			pattern: types.ContributionPattern{
				TotalPRs:                  10,
				MergedPRs:                 8,
				ForkPRs:                   9,
				OriginalRepoContributions: 1,
			},
			check: func(t *testing.T, s types.SpamSignals) {
				assert.False(t, s.ForkFarming)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, detectSpamSignals(tt.pattern, cfg))
		})
	}
}
