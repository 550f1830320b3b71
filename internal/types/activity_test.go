package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMergedPR_IsSelfMerge(t *testing.T) {
	tests := []struct {
		name     string
		pr       MergedPR
		expected bool
	}{
		{
			name:     "author merged own PR",
			pr:       MergedPR{Author: "dev", MergedBy: "dev"},
			expected: true,
		},
		{
			name:     "maintainer merged PR",
			pr:       MergedPR{Author: "dev", MergedBy: "maintainer"},
			expected: false,
		},
		{
			name:     "unknown author is never a self merge",
			pr:       MergedPR{Author: "", MergedBy: ""},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.pr.IsSelfMerge())
		})
	}
}

func TestContributionPattern_ContributionSpan(t *testing.T) {
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		pattern  ContributionPattern
		expected time.Duration
	}{
		{
			name:     "no dated contributions",
			pattern:  ContributionPattern{},
			expected: 0,
		},
		{
			name: "last before first",
			pattern: ContributionPattern{
				FirstContribution: first,
				LastContribution:  first.AddDate(0, 0, -1),
			},
			expected: 0,
		},
		{
			name: "one year span",
			pattern: ContributionPattern{
				FirstContribution: first,
				LastContribution:  first.AddDate(1, 0, 0),
			},
			expected: first.AddDate(1, 0, 0).Sub(first),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.pattern.ContributionSpan())
		})
	}
}

func TestSpamSignals_Count(t *testing.T) {
	assert.Equal(t, 0, SpamSignals{}.Count())
	assert.Equal(t, 2, SpamSignals{ForkFarming: true, SelfMergeFarming: true}.Count())
	assert.Equal(t, 5, SpamSignals{
		ExcessiveDailyPRs:       true,
		IdenticalCommitMessages: true,
		ForkFarming:             true,
		SelfMergeFarming:        true,
		RepositoryFarming:       true,
	}.Count())
}
