package scoring

import (
	"fmt"

	"github.com/credlens/credlens/internal/errors"
)

// TrustWeights are the top-level component weights of the trust total.
type TrustWeights struct {
	AccountAuthenticity      float64 `json:"account_authenticity"`
	ContributionAuthenticity float64 `json:"contribution_authenticity"`
	CollaborationSignals     float64 `json:"collaboration_signals"`
	AntiGaming               float64 `json:"anti_gaming"`
}

// TrustConfig holds every tunable of the trust calculator.
type TrustConfig struct {
	Weights                   TrustWeights `json:"weights"`
	MaxDailyPRs               int          `json:"max_daily_prs"`
	DuplicateMessageThreshold int          `json:"duplicate_message_threshold"`
	MinAccountAgeDays         int          `json:"min_account_age_days"`
	MinUniqueRepos            int          `json:"min_unique_repos"`
}

// DefaultTrustConfig returns the documented trust defaults.
func DefaultTrustConfig() TrustConfig {
	return TrustConfig{
		Weights: TrustWeights{
			AccountAuthenticity:      0.25,
			ContributionAuthenticity: 0.35,
			CollaborationSignals:     0.25,
			AntiGaming:               0.15,
		},
		MaxDailyPRs:               20,
		DuplicateMessageThreshold: 5,
		MinAccountAgeDays:         30,
		MinUniqueRepos:            2,
	}
}

// TrustOverrides is a partial TrustConfig; nil fields keep their defaults.
type TrustOverrides struct {
	Weights                   *TrustWeightOverrides `json:"weights,omitempty"`
	MaxDailyPRs               *int                  `json:"max_daily_prs,omitempty"`
	DuplicateMessageThreshold *int                  `json:"duplicate_message_threshold,omitempty"`
	MinAccountAgeDays         *int                  `json:"min_account_age_days,omitempty"`
	MinUniqueRepos            *int                  `json:"min_unique_repos,omitempty"`
}

// TrustWeightOverrides is a partial TrustWeights.
type TrustWeightOverrides struct {
	AccountAuthenticity      *float64 `json:"account_authenticity,omitempty"`
	ContributionAuthenticity *float64 `json:"contribution_authenticity,omitempty"`
	CollaborationSignals     *float64 `json:"collaboration_signals,omitempty"`
	AntiGaming               *float64 `json:"anti_gaming,omitempty"`
}

func resolveTrustConfig(o *TrustOverrides) (TrustConfig, error) {
	cfg := DefaultTrustConfig()
	if o == nil {
		return cfg, nil
	}
	if o.Weights != nil {
		mergeWeight(&cfg.Weights.AccountAuthenticity, o.Weights.AccountAuthenticity)
		mergeWeight(&cfg.Weights.ContributionAuthenticity, o.Weights.ContributionAuthenticity)
		mergeWeight(&cfg.Weights.CollaborationSignals, o.Weights.CollaborationSignals)
		mergeWeight(&cfg.Weights.AntiGaming, o.Weights.AntiGaming)
	}
	mergeInt(&cfg.MaxDailyPRs, o.MaxDailyPRs)
	mergeInt(&cfg.DuplicateMessageThreshold, o.DuplicateMessageThreshold)
	mergeInt(&cfg.MinAccountAgeDays, o.MinAccountAgeDays)
	mergeInt(&cfg.MinUniqueRepos, o.MinUniqueRepos)

	if err := validateWeights(map[string]float64{
		"account_authenticity":      cfg.Weights.AccountAuthenticity,
		"contribution_authenticity": cfg.Weights.ContributionAuthenticity,
		"collaboration_signals":     cfg.Weights.CollaborationSignals,
		"anti_gaming":               cfg.Weights.AntiGaming,
	}); err != nil {
		return TrustConfig{}, err
	}
	return cfg, nil
}

// ImpactWeights are the top-level component weights of the impact total.
type ImpactWeights struct {
	PRImpact      float64 `json:"pr_impact"`
	Collaboration float64 `json:"collaboration"`
	Longevity     float64 `json:"longevity"`
	Quality       float64 `json:"quality"`
}

// ImpactConfig holds every tunable of the impact calculator.
type ImpactConfig struct {
	Weights        ImpactWeights `json:"weights"`
	MinPRSize      int           `json:"min_pr_size"`       // files changed below this are spam
	MaxPRFrequency int           `json:"max_pr_frequency"`  // PRs per day above this are spam
	DecayFactor    float64       `json:"decay_factor"`      // per-month exponential decay
}

// DefaultImpactConfig returns the documented impact defaults.
func DefaultImpactConfig() ImpactConfig {
	return ImpactConfig{
		Weights: ImpactWeights{
			PRImpact:      0.4,
			Collaboration: 0.3,
			Longevity:     0.2,
			Quality:       0.1,
		},
		MinPRSize:      1,
		MaxPRFrequency: 10,
		DecayFactor:    0.95,
	}
}

// ImpactOverrides is a partial ImpactConfig; nil fields keep their defaults.
type ImpactOverrides struct {
	Weights        *ImpactWeightOverrides `json:"weights,omitempty"`
	MinPRSize      *int                   `json:"min_pr_size,omitempty"`
	MaxPRFrequency *int                   `json:"max_pr_frequency,omitempty"`
	DecayFactor    *float64               `json:"decay_factor,omitempty"`
}

// ImpactWeightOverrides is a partial ImpactWeights.
type ImpactWeightOverrides struct {
	PRImpact      *float64 `json:"pr_impact,omitempty"`
	Collaboration *float64 `json:"collaboration,omitempty"`
	Longevity     *float64 `json:"longevity,omitempty"`
	Quality       *float64 `json:"quality,omitempty"`
}

func resolveImpactConfig(o *ImpactOverrides) (ImpactConfig, error) {
	cfg := DefaultImpactConfig()
	if o == nil {
		return cfg, nil
	}
	if o.Weights != nil {
		mergeWeight(&cfg.Weights.PRImpact, o.Weights.PRImpact)
		mergeWeight(&cfg.Weights.Collaboration, o.Weights.Collaboration)
		mergeWeight(&cfg.Weights.Longevity, o.Weights.Longevity)
		mergeWeight(&cfg.Weights.Quality, o.Weights.Quality)
	}
	mergeInt(&cfg.MinPRSize, o.MinPRSize)
	mergeInt(&cfg.MaxPRFrequency, o.MaxPRFrequency)
	if o.DecayFactor != nil {
		cfg.DecayFactor = *o.DecayFactor
	}
	if cfg.DecayFactor <= 0 || cfg.DecayFactor > 1 {
		return ImpactConfig{}, errors.NewConfigError(fmt.Sprintf("decay_factor %v outside (0,1]", cfg.DecayFactor))
	}
	if err := validateWeights(map[string]float64{
		"pr_impact":     cfg.Weights.PRImpact,
		"collaboration": cfg.Weights.Collaboration,
		"longevity":     cfg.Weights.Longevity,
		"quality":       cfg.Weights.Quality,
	}); err != nil {
		return ImpactConfig{}, err
	}
	return cfg, nil
}

// MatchWeights are the per-axis weights of the recruiter match blend.
type MatchWeights struct {
	Trust         float64 `json:"trust"`
	Compatibility float64 `json:"compatibility"`
	Impact        float64 `json:"impact"`
}

// MatchThresholds are the hard minimum gates; any axis below its gate forces
// the whole match total to zero.
type MatchThresholds struct {
	Trust         float64 `json:"trust"`
	Compatibility float64 `json:"compatibility"`
	Impact        float64 `json:"impact"`
}

// BoostRule is one exceptional-performance bonus: the axis score must exceed
// Threshold for Factor to apply.
type BoostRule struct {
	Threshold float64 `json:"threshold"`
	Factor    float64 `json:"factor"`
}

// MatchBoostRules hold the per-axis boost rules.
type MatchBoostRules struct {
	Trust         BoostRule `json:"trust"`
	Compatibility BoostRule `json:"compatibility"`
	Impact        BoostRule `json:"impact"`
}

// MatchConfig holds every tunable of the recruiter match calculator.
type MatchConfig struct {
	Weights    MatchWeights    `json:"weights"`
	Thresholds MatchThresholds `json:"thresholds"`
	Boosts     MatchBoostRules `json:"boosts"`
}

// DefaultMatchConfig returns the documented recruiter match defaults.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		Weights:    MatchWeights{Trust: 0.4, Compatibility: 0.4, Impact: 0.2},
		Thresholds: MatchThresholds{Trust: 50, Compatibility: 30, Impact: 20},
		Boosts: MatchBoostRules{
			Trust:         BoostRule{Threshold: 80, Factor: 1.1},
			Compatibility: BoostRule{Threshold: 85, Factor: 1.15},
			Impact:        BoostRule{Threshold: 90, Factor: 1.05},
		},
	}
}

// MatchOverrides is a partial MatchConfig; nil fields keep their defaults.
type MatchOverrides struct {
	Weights    *MatchWeightOverrides    `json:"weights,omitempty"`
	Thresholds *MatchThresholdOverrides `json:"thresholds,omitempty"`
	Boosts     *MatchBoostOverrides     `json:"boosts,omitempty"`
}

// MatchWeightOverrides is a partial MatchWeights.
type MatchWeightOverrides struct {
	Trust         *float64 `json:"trust,omitempty"`
	Compatibility *float64 `json:"compatibility,omitempty"`
	Impact        *float64 `json:"impact,omitempty"`
}

// MatchThresholdOverrides is a partial MatchThresholds.
type MatchThresholdOverrides struct {
	Trust         *float64 `json:"trust,omitempty"`
	Compatibility *float64 `json:"compatibility,omitempty"`
	Impact        *float64 `json:"impact,omitempty"`
}

// MatchBoostOverrides is a partial MatchBoostRules.
type MatchBoostOverrides struct {
	Trust         *BoostRule `json:"trust,omitempty"`
	Compatibility *BoostRule `json:"compatibility,omitempty"`
	Impact        *BoostRule `json:"impact,omitempty"`
}

func resolveMatchConfig(o *MatchOverrides) (MatchConfig, error) {
	cfg := DefaultMatchConfig()
	if o == nil {
		return cfg, nil
	}
	if o.Weights != nil {
		mergeWeight(&cfg.Weights.Trust, o.Weights.Trust)
		mergeWeight(&cfg.Weights.Compatibility, o.Weights.Compatibility)
		mergeWeight(&cfg.Weights.Impact, o.Weights.Impact)
	}
	if o.Thresholds != nil {
		mergeWeight(&cfg.Thresholds.Trust, o.Thresholds.Trust)
		mergeWeight(&cfg.Thresholds.Compatibility, o.Thresholds.Compatibility)
		mergeWeight(&cfg.Thresholds.Impact, o.Thresholds.Impact)
	}
	if o.Boosts != nil {
		if o.Boosts.Trust != nil {
			cfg.Boosts.Trust = *o.Boosts.Trust
		}
		if o.Boosts.Compatibility != nil {
			cfg.Boosts.Compatibility = *o.Boosts.Compatibility
		}
		if o.Boosts.Impact != nil {
			cfg.Boosts.Impact = *o.Boosts.Impact
		}
	}
	if err := validateWeights(map[string]float64{
		"trust":         cfg.Weights.Trust,
		"compatibility": cfg.Weights.Compatibility,
		"impact":        cfg.Weights.Impact,
	}); err != nil {
		return MatchConfig{}, err
	}
	for name, t := range map[string]float64{
		"trust":         cfg.Thresholds.Trust,
		"compatibility": cfg.Thresholds.Compatibility,
		"impact":        cfg.Thresholds.Impact,
	} {
		if t < 0 || t > 100 {
			return MatchConfig{}, errors.NewConfigError(fmt.Sprintf("threshold %q = %v outside [0,100]", name, t))
		}
	}
	for name, b := range map[string]BoostRule{
		"trust":         cfg.Boosts.Trust,
		"compatibility": cfg.Boosts.Compatibility,
		"impact":        cfg.Boosts.Impact,
	} {
		if b.Factor < 1 {
			return MatchConfig{}, errors.NewConfigError(fmt.Sprintf("boost factor %q = %v below 1", name, b.Factor))
		}
	}
	return cfg, nil
}

func mergeWeight(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func mergeInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func validateWeights(weights map[string]float64) error {
	for name, w := range weights {
		if w < 0 || w > 1 {
			return errors.NewConfigError(fmt.Sprintf("weight %q = %v outside [0,1]", name, w))
		}
	}
	return nil
}
