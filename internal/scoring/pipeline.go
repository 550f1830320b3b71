package scoring

import (
	"sync"
	"time"

	"github.com/credlens/credlens/internal/types"
)

// EngineerProfile bundles the normalized records one analysis run consumes.
type EngineerProfile struct {
	Account      types.GitHubAccount      `json:"account"`
	Pattern      types.ContributionPattern `json:"pattern"`
	Activity     types.GitHubActivity     `json:"activity"`
	RoleActivity types.EngineerActivity   `json:"role_activity"`
}

// PipelineOverrides carries optional per-calculator config overrides.
type PipelineOverrides struct {
	Trust  *TrustOverrides  `json:"trust,omitempty"`
	Impact *ImpactOverrides `json:"impact,omitempty"`
	Match  *MatchOverrides  `json:"match,omitempty"`
}

// Evaluation is the full result set of one analysis run. A later run for the
// same engineer produces a brand-new set; nothing is mutated in place.
type Evaluation struct {
	Trust         types.TrustScoreResult         `json:"trust"`
	Impact        types.ImpactScoreResult        `json:"impact"`
	Compatibility types.CompatibilityScoreResult `json:"compatibility"`
	Match         types.RecruiterMatchScoreResult `json:"match"`
	Explanation   types.MatchExplanation         `json:"explanation"`
	EvaluatedAt   time.Time                      `json:"evaluated_at"`
}

// Pipeline composes the four calculators and the explanation generator.
// Trust, impact and compatibility are mutually independent, so they run
// concurrently; match and explanation consume their results serially. The
// pipeline holds no mutable state between runs.
type Pipeline struct {
	compatibility *CompatibilityCalculator
}

// NewPipeline builds a pipeline over the given knowledge base; nil selects
// the built-in role tables.
func NewPipeline(kb KnowledgeBase) *Pipeline {
	return &Pipeline{compatibility: NewCompatibilityCalculator(kb)}
}

// KnownRoles lists the role identifiers the pipeline can score against.
func (p *Pipeline) KnownRoles() []string {
	return p.compatibility.kb.Roles()
}

// KnowledgeBase exposes the role tables for read-only inspection.
func (p *Pipeline) KnowledgeBase() KnowledgeBase {
	return p.compatibility.kb
}

// Evaluate runs the full scoring pipeline for one engineer and role.
func (p *Pipeline) Evaluate(profile EngineerProfile, query types.RoleQuery, overrides *PipelineOverrides) (Evaluation, error) {
	return p.EvaluateAt(profile, query, overrides, time.Now().UTC())
}

// EvaluateAt is Evaluate with a fixed evaluation time; identical inputs and
// time always produce an identical evaluation.
func (p *Pipeline) EvaluateAt(profile EngineerProfile, query types.RoleQuery, overrides *PipelineOverrides, now time.Time) (Evaluation, error) {
	if overrides == nil {
		overrides = &PipelineOverrides{}
	}

	var (
		wg            sync.WaitGroup
		trust         types.TrustScoreResult
		impact        types.ImpactScoreResult
		compatibility types.CompatibilityScoreResult
		trustErr      error
		impactErr     error
		compatErr     error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		trust, trustErr = ComputeTrustScoreAt(profile.Account, profile.Pattern, overrides.Trust, now)
	}()
	go func() {
		defer wg.Done()
		impact, impactErr = ComputeImpactScoreAt(profile.Activity, overrides.Impact, now)
	}()
	go func() {
		defer wg.Done()
		compatibility, compatErr = p.compatibility.Compute(profile.RoleActivity, query)
	}()
	wg.Wait()

	for _, err := range []error{trustErr, impactErr, compatErr} {
		if err != nil {
			return Evaluation{}, err
		}
	}

	match, err := ComputeRecruiterMatchScore(trust, compatibility, impact, overrides.Match)
	if err != nil {
		return Evaluation{}, err
	}

	return Evaluation{
		Trust:         trust,
		Impact:        impact,
		Compatibility: compatibility,
		Match:         match,
		Explanation:   GenerateMatchExplanation(trust, impact, compatibility),
		EvaluatedAt:   now,
	}, nil
}
