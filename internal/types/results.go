package types

import "time"

// ComponentScore is one weighted component of a calculator total. Score is
// always within [0,100]; Breakdown holds the named sub-signals that fed it.
type ComponentScore struct {
	Score     float64            `json:"score"`
	Weight    float64            `json:"weight"`
	Breakdown map[string]float64 `json:"breakdown"`
}

// SpamSignals are the boolean gaming-pattern detections from the trust
// calculator's predicate pass.
type SpamSignals struct {
	ExcessiveDailyPRs       bool `json:"excessive_daily_prs"`
	IdenticalCommitMessages bool `json:"identical_commit_messages"`
	ForkFarming             bool `json:"fork_farming"`
	SelfMergeFarming        bool `json:"self_merge_farming"`
	RepositoryFarming       bool `json:"repository_farming"`
}

// Count returns how many spam signals fired.
func (s SpamSignals) Count() int {
	n := 0
	for _, b := range []bool{
		s.ExcessiveDailyPRs,
		s.IdenticalCommitMessages,
		s.ForkFarming,
		s.SelfMergeFarming,
		s.RepositoryFarming,
	} {
		if b {
			n++
		}
	}
	return n
}

// TrustComponents are the four weighted components of the trust total.
type TrustComponents struct {
	AccountAuthenticity      ComponentScore `json:"account_authenticity"`
	ContributionAuthenticity ComponentScore `json:"contribution_authenticity"`
	CollaborationSignals     ComponentScore `json:"collaboration_signals"`
	AntiGaming               ComponentScore `json:"anti_gaming"`
}

// TrustScoreResult is the self-describing output of the trust calculator.
type TrustScoreResult struct {
	TotalScore    float64         `json:"total_score"`
	Components    TrustComponents `json:"components"`
	SpamDetection SpamSignals     `json:"spam_detection"`
	IsAuthentic   bool            `json:"is_authentic"`
	Confidence    float64         `json:"confidence"`
	RedFlags      []string        `json:"red_flags"`
	GreenFlags    []string        `json:"green_flags"`
}

// ImpactComponents are the four weighted components of the impact total.
type ImpactComponents struct {
	PRImpact      ComponentScore `json:"pr_impact"`
	Collaboration ComponentScore `json:"collaboration"`
	Longevity     ComponentScore `json:"longevity"`
	Quality       ComponentScore `json:"quality"`
}

// ImpactSignals count how many PRs the pre-filter pipeline excluded.
type ImpactSignals struct {
	SelfMergedPRs int `json:"self_merged_prs"`
	SpamPRs       int `json:"spam_prs"`
	CleanPRs      int `json:"clean_prs"`
}

// RepositoryImpact is one entry of the top-contributing-repositories list.
type RepositoryImpact struct {
	Repository string `json:"repository"`
	PRCount    int    `json:"pr_count"`
}

// ActivityEvent is one recent merged PR with its time-decayed impact estimate.
type ActivityEvent struct {
	Repository string    `json:"repository"`
	MergedAt   time.Time `json:"merged_at"`
	Impact     float64   `json:"impact"`
}

// ImpactPenalty documents one filtering step applied before scoring. Impact
// stays 0: the entry records that filtering happened, not a score delta.
type ImpactPenalty struct {
	Reason string  `json:"reason"`
	Count  int     `json:"count"`
	Impact float64 `json:"impact"`
}

// ImpactScoreResult is the self-describing output of the impact calculator.
type ImpactScoreResult struct {
	TotalScore       float64            `json:"total_score"`
	Components       ImpactComponents   `json:"components"`
	Signals          ImpactSignals      `json:"signals"`
	TopRepositories  []RepositoryImpact `json:"top_repositories"`
	RecentActivity   []ActivityEvent    `json:"recent_activity"`
	Penalties        []ImpactPenalty    `json:"penalties"`
}

// Compatibility levels derived from the compatibility total.
const (
	CompatibilityHigh   = "high"
	CompatibilityMedium = "medium"
	CompatibilityLow    = "low"
	CompatibilityPoor   = "poor"
)

// CompatibilitySignals are the seven positive role-fit signals, each 0-100.
type CompatibilitySignals struct {
	TechnologyStack     float64 `json:"technology_stack"`
	DomainDepth         float64 `json:"domain_depth"`
	ArchitecturePattern float64 `json:"architecture_pattern"`
	FileTypeAlignment   float64 `json:"file_type_alignment"`
	ActivityTypeMatch   float64 `json:"activity_type_match"`
	RepositoryTypeMatch float64 `json:"repository_type_match"`
	ReviewExpertise     float64 `json:"review_expertise"`
}

// NegativeSignals are the role-fit penalty signals, each 0-100, higher = worse.
type NegativeSignals struct {
	TechnologyMismatch  float64 `json:"technology_mismatch"`
	DomainContradiction float64 `json:"domain_contradiction"`
	InsufficientDepth   float64 `json:"insufficient_depth"`
	ArchitectureMismatch float64 `json:"architecture_mismatch"`
	TechnologyOverweight float64 `json:"technology_overweight"`
}

// CompatibilityScoreResult is the output of the compatibility calculator.
type CompatibilityScoreResult struct {
	TotalScore          float64              `json:"total_score"`
	Role                string               `json:"role"`
	CompatibilityLevel  string               `json:"compatibility_level"`
	Signals             CompatibilitySignals `json:"signals"`
	NegativeSignals     NegativeSignals      `json:"negative_signals"`
	MatchedTechnologies []string             `json:"matched_technologies"`
	DetectedPatterns    []string             `json:"detected_patterns"`
	Strengths           []string             `json:"strengths"`
	Weaknesses          []string             `json:"weaknesses"`
}

// MatchComponents are the reported per-axis weighted contributions of the
// recruiter match total. They are pre-boost: the boost multipliers are folded
// only into the capped total.
type MatchComponents struct {
	Trust         float64 `json:"trust"`
	Compatibility float64 `json:"compatibility"`
	Impact        float64 `json:"impact"`
}

// MatchBoosts are the multiplicative bonuses applied per axis.
type MatchBoosts struct {
	Trust         float64 `json:"trust"`
	Compatibility float64 `json:"compatibility"`
	Impact        float64 `json:"impact"`
}

// CalculationDetails expose how the match total was produced.
type CalculationDetails struct {
	Boosts MatchBoosts `json:"boosts"`
	Gated  bool        `json:"gated"`
}

// RecruiterView is the recruiter-facing projection of a match result.
type RecruiterView struct {
	MatchScore     float64  `json:"match_score"`
	MatchLevel     string   `json:"match_level"`
	Recommendation string   `json:"recommendation"`
	TrustScore     float64  `json:"trust_score"`
	FitScore       float64  `json:"fit_score"`
	ImpactScore    float64  `json:"impact_score"`
	IsAuthentic    bool     `json:"is_authentic"`
	IsGoodFit      bool     `json:"is_good_fit"`
	HasImpact      bool     `json:"has_impact"`
	Strengths      []string `json:"strengths"`
	Concerns       []string `json:"concerns"`
	RedFlags       []string `json:"red_flags"`
	Summary        string   `json:"summary"`
}

// EngineerView is the engineer-facing projection: full transparency into the
// three underlying results plus improvement suggestions. It deliberately has
// no match score, level, or recommendation field; the two views are separate
// structs so the boundary cannot be violated by field hiding.
type EngineerView struct {
	Trust                  TrustScoreResult         `json:"trust"`
	Impact                 ImpactScoreResult        `json:"impact"`
	Compatibility          CompatibilityScoreResult `json:"compatibility"`
	ImprovementSuggestions []string                 `json:"improvement_suggestions"`
}

// Match levels and recommendations derived from the match total.
const (
	MatchExcellent = "excellent"
	MatchStrong    = "strong"
	MatchGood      = "good"
	MatchFair      = "fair"
	MatchPoor      = "poor"

	RecommendStrongly = "strongly-recommend"
	Recommend         = "recommend"
	RecommendConsider = "consider"
	RecommendAgainst  = "not-recommended"
)

// RecruiterMatchScoreResult is the combined, threshold-gated, boost-adjusted
// match score with its two audience views.
type RecruiterMatchScoreResult struct {
	TotalMatchScore    float64            `json:"total_match_score"`
	MatchLevel         string             `json:"match_level"`
	Recommendation     string             `json:"recommendation"`
	Components         MatchComponents    `json:"components"`
	CalculationDetails CalculationDetails `json:"calculation_details"`
	RecruiterView      RecruiterView      `json:"recruiter_view"`
	EngineerView       EngineerView       `json:"engineer_view"`
}

// Concern severities used by the explanation generator.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// ExplanationEntry is one strength with its concrete supporting evidence.
type ExplanationEntry struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Evidence    []string `json:"evidence"`
}

// ConcernEntry is one concern with a fixed severity and supporting evidence.
type ConcernEntry struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Evidence    []string `json:"evidence"`
}

// MatchExplanation is the prose output of the explanation generator. It is
// purely derivative of the three axis results and never carries a rank or a
// score it was not given.
type MatchExplanation struct {
	WhyThisMatch            string             `json:"why_this_match"`
	Strengths               []ExplanationEntry `json:"strengths"`
	Concerns                []ConcernEntry     `json:"concerns"`
	TrustIndicators         []string           `json:"trust_indicators"`
	CompatibilityIndicators []string           `json:"compatibility_indicators"`
	ImpactIndicators        []string           `json:"impact_indicators"`
}
