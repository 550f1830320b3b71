package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/credlens/credlens/internal/errors"
	"github.com/credlens/credlens/internal/types"
)

// Structural change flags map to fixed architecture pattern names.
const (
	patternFromAPI      = "rest-api"
	patternFromInfra    = "infrastructure-as-code"
	patternFromDatabase = "database-schema"
)

// Minimum PR count below which the insufficient-depth penalty fires.
const minDepthPRs = 5

// CompatibilityCalculator scores role-fit against a knowledge base of
// per-role technology tables. The knowledge base is fixed at construction;
// the calculator itself is stateless and safe for concurrent use.
type CompatibilityCalculator struct {
	kb KnowledgeBase
}

// NewCompatibilityCalculator builds a calculator over the given knowledge
// base. Pass nil to use the built-in tables.
func NewCompatibilityCalculator(kb KnowledgeBase) *CompatibilityCalculator {
	if kb == nil {
		kb = DefaultKnowledgeBase()
	}
	return &CompatibilityCalculator{kb: kb}
}

// ComputeCompatibilityScore scores role-fit with the built-in knowledge base.
func ComputeCompatibilityScore(activity types.EngineerActivity, query types.RoleQuery) (types.CompatibilityScoreResult, error) {
	return NewCompatibilityCalculator(nil).Compute(activity, query)
}

// Compute scores the activity against the queried role. An unknown role is a
// caller error; empty activity degrades to zero scores.
func (c *CompatibilityCalculator) Compute(activity types.EngineerActivity, query types.RoleQuery) (types.CompatibilityScoreResult, error) {
	role := strings.ToLower(strings.TrimSpace(query.Role))
	knowledge, ok := c.kb[role]
	if !ok {
		return types.CompatibilityScoreResult{}, errors.NewUnknownRoleError(query.Role, c.kb.Roles())
	}

	matched, mismatched := matchTechnologies(activity, knowledge)
	patterns := detectPatterns(activity, knowledge)

	signals := types.CompatibilitySignals{
		TechnologyStack:     technologyStackScore(matched, mismatched),
		DomainDepth:         domainDepthScore(activity, knowledge),
		ArchitecturePattern: clamp100(float64(len(patterns)) * 20),
		FileTypeAlignment:   fileTypeAlignmentScore(activity, knowledge),
		ActivityTypeMatch:   activityTypeScore(activity, knowledge, role),
		RepositoryTypeMatch: repositoryTypeScore(activity, knowledge),
		ReviewExpertise:     reviewExpertiseScore(activity, knowledge),
	}

	techMismatch := technologyMismatchScore(activity, knowledge)
	negatives := types.NegativeSignals{
		TechnologyMismatch: techMismatch,
		// Mirrors TechnologyMismatch until product defines a distinct
		// contradiction formula.
		DomainContradiction:  techMismatch,
		InsufficientDepth:    binarySignal(len(activity.PRs) < minDepthPRs, 100),
		ArchitectureMismatch: binarySignal(len(patterns) == 0, 100),
		TechnologyOverweight: binarySignal(len(mismatched) > len(matched), 70),
	}

	weights := signalWeightsFor(role)
	positive := signals.TechnologyStack*weights.TechnologyStack +
		signals.DomainDepth*weights.DomainDepth +
		signals.ArchitecturePattern*weights.ArchitecturePattern +
		signals.FileTypeAlignment*weights.FileTypeAlignment +
		signals.ActivityTypeMatch*weights.ActivityTypeMatch +
		signals.RepositoryTypeMatch*weights.RepositoryTypeMatch +
		signals.ReviewExpertise*weights.ReviewExpertise

	penalty := 0.15*negatives.TechnologyMismatch +
		0.1*negatives.DomainContradiction +
		0.2*negatives.InsufficientDepth +
		0.1*negatives.ArchitectureMismatch +
		0.15*negatives.TechnologyOverweight

	total := clamp100(positive - penalty)

	result := types.CompatibilityScoreResult{
		TotalScore:          total,
		Role:                role,
		CompatibilityLevel:  compatibilityLevel(total),
		Signals:             signals,
		NegativeSignals:     negatives,
		MatchedTechnologies: matched,
		DetectedPatterns:    patterns,
	}
	result.Strengths, result.Weaknesses = compatibilityEvidence(role, signals, negatives, matched, patterns)
	return result, nil
}

func compatibilityLevel(total float64) string {
	switch {
	case total >= 75:
		return types.CompatibilityHigh
	case total >= 50:
		return types.CompatibilityMedium
	case total >= 25:
		return types.CompatibilityLow
	default:
		return types.CompatibilityPoor
	}
}

func binarySignal(cond bool, value float64) float64 {
	if cond {
		return value
	}
	return 0
}

// matchTechnologies collects the distinct role technologies the activity
// touches, and the distinct negative indicators it hits.
func matchTechnologies(activity types.EngineerActivity, k RoleKnowledge) (matched, mismatched []string) {
	matchedSet := map[string]struct{}{}
	mismatchedSet := map[string]struct{}{}

	for _, pr := range activity.PRs {
		text := strings.ToLower(pr.Title + " " + pr.Body)
		for _, kw := range k.Keywords {
			if strings.Contains(text, kw) {
				matchedSet[kw] = struct{}{}
			}
		}
		for _, neg := range k.NegativeIndicators {
			if strings.Contains(text, neg) {
				mismatchedSet[neg] = struct{}{}
			}
		}
		for _, file := range pr.Files {
			ext := strings.ToLower(file.Extension)
			if containsString(k.Extensions, ext) {
				matchedSet[ext] = struct{}{}
			}
			path := strings.ToLower(file.Path)
			for _, neg := range k.NegativeIndicators {
				if strings.Contains(path, neg) {
					mismatchedSet[neg] = struct{}{}
				}
			}
		}
	}

	for _, repo := range activity.Repositories {
		// Only languages making up a meaningful share of a repo count.
		for lang, pct := range repo.Languages {
			if pct <= 10 {
				continue
			}
			lower := strings.ToLower(lang)
			if containsString(k.Languages, lower) {
				matchedSet[lower] = struct{}{}
			}
			if containsString(k.NegativeIndicators, lower) {
				mismatchedSet[lower] = struct{}{}
			}
		}
	}

	return sortedKeys(matchedSet), sortedKeys(mismatchedSet)
}

func technologyStackScore(matched, mismatched []string) float64 {
	score := clamp(float64(len(matched))*15, 0, 100)
	penalty := clamp(float64(len(mismatched))*10, 0, 50)
	return clamp100(score - penalty)
}

// domainDepthScore is the fraction of PRs that are substantially
// role-relevant: either most changed files match the role, or the PR text
// mentions a role keyword.
func domainDepthScore(activity types.EngineerActivity, k RoleKnowledge) float64 {
	if len(activity.PRs) == 0 {
		return 0
	}
	relevant := 0
	for _, pr := range activity.PRs {
		if prFileShare(pr, k) > 0.5 || textHasAny(pr.Title+" "+pr.Body, k.Keywords) {
			relevant++
		}
	}
	return clamp100(float64(relevant) / float64(len(activity.PRs)) * 100)
}

// prFileShare is the fraction of a PR's changed files whose extension is in
// the role's table.
func prFileShare(pr types.PRAnalysis, k RoleKnowledge) float64 {
	if len(pr.Files) == 0 {
		return 0
	}
	hits := 0
	for _, file := range pr.Files {
		if containsString(k.Extensions, strings.ToLower(file.Extension)) {
			hits++
		}
	}
	return float64(hits) / float64(len(pr.Files))
}

func detectPatterns(activity types.EngineerActivity, k RoleKnowledge) []string {
	found := map[string]struct{}{}
	addIfKnown := func(pattern string) {
		if containsString(k.Patterns, pattern) {
			found[pattern] = struct{}{}
		}
	}

	for _, pr := range activity.PRs {
		text := strings.ToLower(pr.Title + " " + pr.Body)
		for _, file := range pr.Files {
			text += " " + strings.ToLower(file.Path)
		}
		for _, pattern := range k.Patterns {
			if strings.Contains(text, pattern) || strings.Contains(text, strings.ReplaceAll(pattern, "-", " ")) {
				found[pattern] = struct{}{}
			}
		}
		if pr.Flags.API {
			addIfKnown(patternFromAPI)
		}
		if pr.Flags.Infra {
			addIfKnown(patternFromInfra)
		}
		if pr.Flags.Database {
			addIfKnown(patternFromDatabase)
		}
	}

	for _, repo := range activity.Repositories {
		text := strings.ToLower(strings.Join(repo.Topics, " ") + " " + repo.Description)
		for _, pattern := range k.Patterns {
			if strings.Contains(text, pattern) || strings.Contains(text, strings.ReplaceAll(pattern, "-", " ")) {
				found[pattern] = struct{}{}
			}
		}
	}

	return sortedKeys(found)
}

func fileTypeAlignmentScore(activity types.EngineerActivity, k RoleKnowledge) float64 {
	total, hits := 0, 0
	for _, pr := range activity.PRs {
		for _, file := range pr.Files {
			total++
			if containsString(k.Extensions, strings.ToLower(file.Extension)) {
				hits++
			}
		}
	}
	return clamp100(ratio(float64(hits), float64(total)) * 100)
}

// activityTypeScore is the fraction of PRs and issues classified as
// role-relevant via structural flags, keyword hits, or issue-type flags.
func activityTypeScore(activity types.EngineerActivity, k RoleKnowledge, role string) float64 {
	total := len(activity.PRs) + len(activity.Issues)
	if total == 0 {
		return 0
	}
	relevant := 0
	for _, pr := range activity.PRs {
		if flagsMatchRole(pr.Flags, role) || textHasAny(pr.Title+" "+pr.Body, k.Keywords) {
			relevant++
		}
	}
	for _, issue := range activity.Issues {
		switch {
		case textHasAny(issue.Title+" "+issue.Body, k.Keywords):
			relevant++
		case issue.IsInfra && infraRole(role):
			relevant++
		case issue.IsSecurity && role == RoleSecurity:
			relevant++
		}
	}
	return clamp100(float64(relevant) / float64(total) * 100)
}

func flagsMatchRole(flags types.ChangeFlags, role string) bool {
	switch role {
	case RoleBackend:
		return flags.API || flags.Database
	case RoleFrontend, RoleMobile:
		return flags.UI
	case RoleFullstack:
		return flags.API || flags.UI || flags.Database
	case RoleDevOps, RoleSRE, RolePlatformEngineer:
		return flags.Infra || flags.Config
	case RoleDataEngineer:
		return flags.Database || flags.Infra
	case RoleSecurity:
		return flags.Infra || flags.Config
	default:
		return false
	}
}

func infraRole(role string) bool {
	return role == RoleDevOps || role == RoleSRE || role == RolePlatformEngineer
}

// repositoryTypeScore is the fraction of non-fork repositories whose primary
// language or topic/description text matches the role.
func repositoryTypeScore(activity types.EngineerActivity, k RoleKnowledge) float64 {
	total, hits := 0, 0
	for _, repo := range activity.Repositories {
		if repo.IsFork {
			continue
		}
		total++
		if containsString(k.Languages, strings.ToLower(repo.PrimaryLanguage)) {
			hits++
			continue
		}
		text := strings.ToLower(strings.Join(repo.Topics, " ") + " " + repo.Description)
		if textHasAny(text, k.Keywords) {
			hits++
		}
	}
	return clamp100(ratio(float64(hits), float64(total)) * 100)
}

// reviewExpertiseScore is the fraction of code reviews touching
// role-relevant file extensions or languages.
func reviewExpertiseScore(activity types.EngineerActivity, k RoleKnowledge) float64 {
	if len(activity.Reviews) == 0 {
		return 0
	}
	hits := 0
	for _, review := range activity.Reviews {
		if containsString(k.Languages, strings.ToLower(review.Language)) {
			hits++
			continue
		}
		for _, file := range review.Files {
			if containsString(k.Extensions, strings.ToLower(file.Extension)) {
				hits++
				break
			}
		}
	}
	return clamp100(float64(hits) / float64(len(activity.Reviews)) * 100)
}

// technologyMismatchScore is the fraction of file touches hitting negative
// indicators.
func technologyMismatchScore(activity types.EngineerActivity, k RoleKnowledge) float64 {
	total, hits := 0, 0
	for _, pr := range activity.PRs {
		for _, file := range pr.Files {
			total++
			path := strings.ToLower(file.Path)
			for _, neg := range k.NegativeIndicators {
				if strings.Contains(path, neg) {
					hits++
					break
				}
			}
		}
	}
	return clamp100(ratio(float64(hits), float64(total)) * 100)
}

func compatibilityEvidence(role string, signals types.CompatibilitySignals, negatives types.NegativeSignals, matched, patterns []string) (strengths, weaknesses []string) {
	strengths = []string{}
	weaknesses = []string{}

	if signals.TechnologyStack > 70 {
		strengths = append(strengths, fmt.Sprintf("Strong %s technology stack: %s", role, strings.Join(matched, ", ")))
	}
	if signals.DomainDepth > 70 {
		strengths = append(strengths, fmt.Sprintf("Deep %s domain contributions (%.0f%% of PRs role-relevant)", role, signals.DomainDepth))
	}
	if signals.ArchitecturePattern > 70 {
		strengths = append(strengths, fmt.Sprintf("Hands-on with %s architecture patterns: %s", role, strings.Join(patterns, ", ")))
	}
	if signals.FileTypeAlignment > 70 {
		strengths = append(strengths, fmt.Sprintf("File changes align with %s work (%.0f%%)", role, signals.FileTypeAlignment))
	}
	if signals.ActivityTypeMatch > 70 {
		strengths = append(strengths, fmt.Sprintf("Activity mix fits %s responsibilities (%.0f%%)", role, signals.ActivityTypeMatch))
	}
	if signals.RepositoryTypeMatch > 70 {
		strengths = append(strengths, fmt.Sprintf("Repositories are %s-oriented (%.0f%%)", role, signals.RepositoryTypeMatch))
	}
	if signals.ReviewExpertise > 70 {
		strengths = append(strengths, fmt.Sprintf("Reviews demonstrate %s expertise (%.0f%%)", role, signals.ReviewExpertise))
	}

	if negatives.TechnologyMismatch > 30 {
		weaknesses = append(weaknesses, fmt.Sprintf("%.0f%% of file changes touch technologies outside the %s stack", negatives.TechnologyMismatch, role))
	}
	if negatives.InsufficientDepth > 0 {
		weaknesses = append(weaknesses, fmt.Sprintf("Fewer than %d analyzable PRs; not enough evidence of %s depth", minDepthPRs, role))
	}
	if negatives.ArchitectureMismatch > 0 {
		weaknesses = append(weaknesses, fmt.Sprintf("No %s architecture patterns detected", role))
	}
	if negatives.TechnologyOverweight > 0 {
		weaknesses = append(weaknesses, fmt.Sprintf("Off-role technologies outweigh %s technologies", role))
	}
	return strengths, weaknesses
}

func containsString(list []string, value string) bool {
	if value == "" {
		return false
	}
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func textHasAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
