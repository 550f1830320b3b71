package scoring

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credlens/credlens/internal/types"
)

var impactNow = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func mergedPR(repo string, mergedAt time.Time) types.MergedPR {
	return types.MergedPR{
		Repository:        repo,
		MergedAt:          mergedAt,
		Author:            "dev",
		MergedBy:          "maintainer",
		ReviewComments:    4,
		ReviewRounds:      2,
		FilesChanged:      6,
		DirectoriesChanged: 2,
		IsMaintainerMerge: true,
	}
}

func healthyActivity() types.GitHubActivity {
	prs := make([]types.MergedPR, 0, 24)
	for i := 0; i < 24; i++ {
		repo := fmt.Sprintf("org/service-%d", i%4)
		prs = append(prs, mergedPR(repo, impactNow.AddDate(0, -i, -3)))
	}
	return types.GitHubActivity{
		Username:  "dev",
		MergedPRs: prs,
		ReviewsGiven: []types.CodeReview{
			{Repository: "org/service-0", Reviewer: "dev"},
			{Repository: "org/service-1", Reviewer: "dev"},
			{Repository: "org/service-2", Reviewer: "dev"},
		},
		ReviewsReceived: []types.CodeReview{
			{Repository: "org/service-0", PRAuthor: "dev"},
			{Repository: "org/service-1", PRAuthor: "dev"},
			{Repository: "org/service-2", PRAuthor: "dev"},
			{Repository: "org/service-3", PRAuthor: "dev"},
		},
		Issues: []types.Issue{
			{Repository: "org/service-0", HasLinkedPR: true},
			{Repository: "org/service-1", HasLinkedPR: true},
			{Repository: "org/service-2", HasLinkedPR: false},
		},
		Repositories: []types.RepositoryContribution{
			{Repository: "org/service-0", PRCount: 6, ContributorCount: 12},
			{Repository: "org/service-1", PRCount: 6, ContributorCount: 8},
			{Repository: "org/service-2", PRCount: 6, ContributorCount: 5},
			{Repository: "org/service-3", PRCount: 6, ContributorCount: 1},
		},
	}
}

func TestComputeImpactScore_HealthyActivity(t *testing.T) {
	result, err := ComputeImpactScoreAt(healthyActivity(), nil, impactNow)
	require.NoError(t, err)

	assert.Greater(t, result.TotalScore, 0.0)
	assert.LessOrEqual(t, result.TotalScore, 100.0)
	assert.Equal(t, 24, result.Signals.CleanPRs)
	assert.Equal(t, 0, result.Signals.SelfMergedPRs)
	assert.Equal(t, 0, result.Signals.SpamPRs)
	assert.Len(t, result.TopRepositories, 4)
	assert.Len(t, result.RecentActivity, 10)
}

func TestComputeImpactScore_SelfMergedExcluded(t *testing.T) {
	activity := types.GitHubActivity{Username: "solo"}
	for i := 0; i < 8; i++ {
		pr := mergedPR("solo/project", impactNow.AddDate(0, -i, 0))
		pr.MergedBy = pr.Author
		activity.MergedPRs = append(activity.MergedPRs, pr)
	}

	result, err := ComputeImpactScoreAt(activity, nil, impactNow)
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.TotalScore)
	assert.Equal(t, 8, result.Signals.SelfMergedPRs)
	assert.Equal(t, 0, result.Signals.CleanPRs)
	assert.Empty(t, result.TopRepositories)
	assert.Empty(t, result.RecentActivity)

	// Penalties are always reported, even at zero counts.
	reasons := []string{}
	for _, p := range result.Penalties {
		reasons = append(reasons, p.Reason)
	}
	assert.Contains(t, reasons, PenaltySelfMerged)
	assert.Contains(t, reasons, PenaltySpam)
}

func TestComputeImpactScore_SpamFiltering(t *testing.T) {
	activity := types.GitHubActivity{Username: "burst"}
	// Twelve PRs merged on a single day exceed the default frequency cap,
	// so the whole day is discarded.
	day := impactNow.AddDate(0, -1, 0)
	for i := 0; i < 12; i++ {
		activity.MergedPRs = append(activity.MergedPRs, mergedPR("org/burst", day))
	}
	activity.MergedPRs = append(activity.MergedPRs,
		mergedPR("org/steady", impactNow.AddDate(0, -2, 0)),
		mergedPR("org/steady", impactNow.AddDate(0, -3, 0)),
	)

	result, err := ComputeImpactScoreAt(activity, nil, impactNow)
	require.NoError(t, err)

	assert.Equal(t, 12, result.Signals.SpamPRs)
	assert.Equal(t, 2, result.Signals.CleanPRs)
}

func TestComputeImpactScore_TrivialPRsAreSpam(t *testing.T) {
	activity := types.GitHubActivity{Username: "typo-farmer"}
	for i := 0; i < 5; i++ {
		pr := mergedPR("org/docs", impactNow.AddDate(0, -i, 0))
		pr.FilesChanged = 0
		activity.MergedPRs = append(activity.MergedPRs, pr)
	}

	result, err := ComputeImpactScoreAt(activity, nil, impactNow)
	require.NoError(t, err)

	assert.Equal(t, 5, result.Signals.SpamPRs)
	assert.Equal(t, 0.0, result.TotalScore)
}

func TestComputeImpactScore_SelfMergeFilterRunsFirst(t *testing.T) {
	// Eleven PRs land on one day, two of them self-merged. After the
	// self-merge filter the day holds nine PRs, under the frequency cap,
	// so none of the survivors count as spam.
	activity := types.GitHubActivity{Username: "ordered"}
	day := impactNow.AddDate(0, -1, 0)
	for i := 0; i < 11; i++ {
		pr := mergedPR("org/app", day)
		if i < 2 {
			pr.MergedBy = pr.Author
		}
		activity.MergedPRs = append(activity.MergedPRs, pr)
	}

	result, err := ComputeImpactScoreAt(activity, nil, impactNow)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Signals.SelfMergedPRs)
	assert.Equal(t, 0, result.Signals.SpamPRs)
	assert.Equal(t, 9, result.Signals.CleanPRs)
}

func TestComputeImpactScore_TimeDecay(t *testing.T) {
	activity := healthyActivity()

	recent, err := ComputeImpactScoreAt(activity, nil, impactNow)
	require.NoError(t, err)
	later, err := ComputeImpactScoreAt(activity, nil, impactNow.AddDate(2, 0, 0))
	require.NoError(t, err)

	// The same work counts for less two years on.
	assert.Less(t,
		later.Components.PRImpact.Breakdown["decayed_pr_count"],
		recent.Components.PRImpact.Breakdown["decayed_pr_count"])
}

func TestComputeImpactScore_TopRepositoriesOrdering(t *testing.T) {
	activity := types.GitHubActivity{Username: "dev"}
	for i := 0; i < 5; i++ {
		activity.MergedPRs = append(activity.MergedPRs, mergedPR("org/busy", impactNow.AddDate(0, -i, 0)))
	}
	for i := 0; i < 2; i++ {
		activity.MergedPRs = append(activity.MergedPRs, mergedPR("org/quiet", impactNow.AddDate(0, -i, -10)))
	}

	result, err := ComputeImpactScoreAt(activity, nil, impactNow)
	require.NoError(t, err)

	require.Len(t, result.TopRepositories, 2)
	assert.Equal(t, "org/busy", result.TopRepositories[0].Repository)
	assert.Equal(t, 5, result.TopRepositories[0].PRCount)
	assert.Equal(t, "org/quiet", result.TopRepositories[1].Repository)

	// Recent activity is newest first.
	for i := 1; i < len(result.RecentActivity); i++ {
		assert.False(t, result.RecentActivity[i].MergedAt.After(result.RecentActivity[i-1].MergedAt))
	}
}

func TestComputeImpactScore_Deterministic(t *testing.T) {
	first, err := ComputeImpactScoreAt(healthyActivity(), nil, impactNow)
	require.NoError(t, err)
	second, err := ComputeImpactScoreAt(healthyActivity(), nil, impactNow)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeImpactScore_InvalidOverride(t *testing.T) {
	_, err := ComputeImpactScoreAt(healthyActivity(), &ImpactOverrides{
		DecayFactor: floatPtr(1.5),
	}, impactNow)
	assert.Error(t, err)
}

func TestComputeImpactScore_EmptyActivity(t *testing.T) {
	result, err := ComputeImpactScoreAt(types.GitHubActivity{}, nil, impactNow)
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.TotalScore)
	assert.Equal(t, 0, result.Signals.CleanPRs)
	assert.NotNil(t, result.TopRepositories)
	assert.NotNil(t, result.RecentActivity)
}
