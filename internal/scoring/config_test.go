package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestResolveTrustConfig(t *testing.T) {
	t.Run("nil overrides keep defaults", func(t *testing.T) {
		cfg, err := resolveTrustConfig(nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultTrustConfig(), cfg)
	})

	t.Run("partial override merges over defaults", func(t *testing.T) {
		cfg, err := resolveTrustConfig(&TrustOverrides{
			MaxDailyPRs: intPtr(5),
			Weights: &TrustWeightOverrides{
				AntiGaming: floatPtr(0.5),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.MaxDailyPRs)
		assert.Equal(t, 0.5, cfg.Weights.AntiGaming)
		// Untouched fields keep their defaults.
		assert.Equal(t, DefaultTrustConfig().MinAccountAgeDays, cfg.MinAccountAgeDays)
		assert.Equal(t, DefaultTrustConfig().Weights.AccountAuthenticity, cfg.Weights.AccountAuthenticity)
	})

	t.Run("weight outside unit interval is rejected", func(t *testing.T) {
		_, err := resolveTrustConfig(&TrustOverrides{
			Weights: &TrustWeightOverrides{AccountAuthenticity: floatPtr(1.5)},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "outside [0,1]")
	})

	t.Run("negative weight is rejected", func(t *testing.T) {
		_, err := resolveTrustConfig(&TrustOverrides{
			Weights: &TrustWeightOverrides{CollaborationSignals: floatPtr(-0.1)},
		})
		assert.Error(t, err)
	})
}

func TestResolveImpactConfig(t *testing.T) {
	t.Run("nil overrides keep defaults", func(t *testing.T) {
		cfg, err := resolveImpactConfig(nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultImpactConfig(), cfg)
	})

	t.Run("decay factor must stay in (0,1]", func(t *testing.T) {
		for _, bad := range []float64{0, -0.5, 1.2} {
			_, err := resolveImpactConfig(&ImpactOverrides{DecayFactor: floatPtr(bad)})
			assert.Error(t, err, "decay factor %v should be rejected", bad)
		}

		cfg, err := resolveImpactConfig(&ImpactOverrides{DecayFactor: floatPtr(1)})
		require.NoError(t, err)
		assert.Equal(t, 1.0, cfg.DecayFactor)
	})

	t.Run("spam thresholds merge", func(t *testing.T) {
		cfg, err := resolveImpactConfig(&ImpactOverrides{
			MinPRSize:      intPtr(3),
			MaxPRFrequency: intPtr(4),
		})
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.MinPRSize)
		assert.Equal(t, 4, cfg.MaxPRFrequency)
		assert.Equal(t, DefaultImpactConfig().DecayFactor, cfg.DecayFactor)
	})
}

func TestResolveMatchConfig(t *testing.T) {
	t.Run("nil overrides keep defaults", func(t *testing.T) {
		cfg, err := resolveMatchConfig(nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultMatchConfig(), cfg)
	})

	t.Run("threshold outside [0,100] is rejected", func(t *testing.T) {
		_, err := resolveMatchConfig(&MatchOverrides{
			Thresholds: &MatchThresholdOverrides{Trust: floatPtr(150)},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "outside [0,100]")
	})

	t.Run("boost factor below one is rejected", func(t *testing.T) {
		_, err := resolveMatchConfig(&MatchOverrides{
			Boosts: &MatchBoostOverrides{Impact: &BoostRule{Threshold: 90, Factor: 0.9}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "below 1")
	})

	t.Run("full override replaces boost rule", func(t *testing.T) {
		cfg, err := resolveMatchConfig(&MatchOverrides{
			Boosts: &MatchBoostOverrides{Trust: &BoostRule{Threshold: 70, Factor: 1.2}},
		})
		require.NoError(t, err)
		assert.Equal(t, BoostRule{Threshold: 70, Factor: 1.2}, cfg.Boosts.Trust)
		assert.Equal(t, DefaultMatchConfig().Boosts.Impact, cfg.Boosts.Impact)
	})
}
