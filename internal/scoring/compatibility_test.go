package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credlens/credlens/internal/types"
)

func backendActivity() types.EngineerActivity {
	prs := []types.PRAnalysis{}
	titles := []string{
		"Add REST API endpoint for payments",
		"Introduce database migration for orders",
		"Cache layer for session lookups",
		"Fix auth middleware on the server",
		"gRPC service for inventory",
		"Queue consumer for notification events",
	}
	for i, title := range titles {
		prs = append(prs, types.PRAnalysis{
			Repository: "org/payments",
			Title:      title,
			MergedAt:   time.Date(2026, time.Month(1+i), 10, 0, 0, 0, 0, time.UTC),
			Files: []types.FileChange{
				{Path: "internal/api/handler.go", Extension: ".go", Directory: "internal/api"},
				{Path: "internal/store/queries.sql", Extension: ".sql", Directory: "internal/store"},
			},
			Flags: types.ChangeFlags{API: true, Database: i%2 == 0},
		})
	}
	return types.EngineerActivity{
		Username: "backend-dev",
		PRs:      prs,
		Issues: []types.IssueAnalysis{
			{Repository: "org/payments", Title: "API returns 500 on empty cache"},
		},
		Repositories: []types.RepositoryAnalysis{
			{
				Name:            "org/payments",
				PrimaryLanguage: "Go",
				Languages:       map[string]float64{"Go": 85, "Shell": 15},
				Topics:          []string{"microservices", "grpc"},
			},
		},
		Reviews: []types.ReviewAnalysis{
			{Repository: "org/payments", Language: "go", Files: []types.FileChange{{Path: "a.go", Extension: ".go"}}},
		},
	}
}

func frontendActivity() types.EngineerActivity {
	return types.EngineerActivity{
		Username: "frontend-dev",
		PRs: []types.PRAnalysis{
			{
				Title: "Restyle dashboard with tailwind",
				Files: []types.FileChange{
					{Path: "src/styles/dashboard.css", Extension: ".css", Directory: "src/styles"},
					{Path: "src/components/Chart.tsx", Extension: ".tsx", Directory: "src/components"},
				},
				Flags: types.ChangeFlags{UI: true},
			},
			{
				Title: "Add storybook stories for buttons",
				Files: []types.FileChange{
					{Path: "src/stories/Button.stories.tsx", Extension: ".tsx", Directory: "src/stories"},
				},
				Flags: types.ChangeFlags{UI: true},
			},
			{
				Title: "Fix css grid on mobile layout",
				Files: []types.FileChange{
					{Path: "src/styles/grid.css", Extension: ".css", Directory: "src/styles"},
				},
				Flags: types.ChangeFlags{UI: true},
			},
		},
		Repositories: []types.RepositoryAnalysis{
			{
				Name:            "me/portfolio",
				PrimaryLanguage: "TypeScript",
				Languages:       map[string]float64{"TypeScript": 70, "CSS": 30},
				Topics:          []string{"react", "design-system"},
			},
		},
	}
}

func TestCompatibility_UnknownRole(t *testing.T) {
	_, err := ComputeCompatibilityScore(backendActivity(), types.RoleQuery{Role: "wizard"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown role")
}

func TestCompatibility_RoleNormalization(t *testing.T) {
	result, err := ComputeCompatibilityScore(backendActivity(), types.RoleQuery{Role: "  Backend "})
	require.NoError(t, err)
	assert.Equal(t, RoleBackend, result.Role)
}

func TestCompatibility_BackendEngineerFitsBackendRole(t *testing.T) {
	result, err := ComputeCompatibilityScore(backendActivity(), types.RoleQuery{Role: RoleBackend})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.TotalScore, 75.0)
	assert.Equal(t, types.CompatibilityHigh, result.CompatibilityLevel)
	assert.Contains(t, result.MatchedTechnologies, "go")
	assert.Contains(t, result.MatchedTechnologies, ".go")
	assert.Contains(t, result.DetectedPatterns, "rest-api")
	assert.Equal(t, 0.0, result.NegativeSignals.InsufficientDepth)
	assert.Equal(t, 0.0, result.NegativeSignals.TechnologyMismatch)
	assert.NotEmpty(t, result.Strengths)
}

func TestCompatibility_FrontendEngineerAgainstBackendRole(t *testing.T) {
	result, err := ComputeCompatibilityScore(frontendActivity(), types.RoleQuery{Role: RoleBackend})
	require.NoError(t, err)

	assert.Less(t, result.TotalScore, 30.0)
	assert.Equal(t, types.CompatibilityPoor, result.CompatibilityLevel)
	assert.Greater(t, result.NegativeSignals.TechnologyMismatch, 0.0)
	assert.Greater(t, result.NegativeSignals.DomainContradiction, 0.0)
	assert.NotEmpty(t, result.Weaknesses)
}

func TestCompatibility_SameActivityDifferentRoles(t *testing.T) {
	activity := frontendActivity()

	asFrontend, err := ComputeCompatibilityScore(activity, types.RoleQuery{Role: RoleFrontend})
	require.NoError(t, err)
	asBackend, err := ComputeCompatibilityScore(activity, types.RoleQuery{Role: RoleBackend})
	require.NoError(t, err)

	assert.Greater(t, asFrontend.TotalScore, asBackend.TotalScore)
}

func TestCompatibility_EmptyActivity(t *testing.T) {
	result, err := ComputeCompatibilityScore(types.EngineerActivity{}, types.RoleQuery{Role: RoleBackend})
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.TotalScore)
	assert.Equal(t, types.CompatibilityPoor, result.CompatibilityLevel)
	assert.Equal(t, 100.0, result.NegativeSignals.InsufficientDepth)
	assert.Equal(t, 100.0, result.NegativeSignals.ArchitectureMismatch)
	assert.Empty(t, result.MatchedTechnologies)
}

func TestCompatibility_DomainContradictionMirrorsMismatch(t *testing.T) {
	result, err := ComputeCompatibilityScore(frontendActivity(), types.RoleQuery{Role: RoleBackend})
	require.NoError(t, err)

	assert.Equal(t, result.NegativeSignals.TechnologyMismatch, result.NegativeSignals.DomainContradiction)
}

func TestCompatibility_InsufficientDepthIsBinary(t *testing.T) {
	shallow := types.EngineerActivity{
		Username: "new-dev",
		PRs: []types.PRAnalysis{
			{Title: "Add api endpoint", Files: []types.FileChange{{Path: "main.go", Extension: ".go"}}},
		},
	}

	result, err := ComputeCompatibilityScore(shallow, types.RoleQuery{Role: RoleBackend})
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.NegativeSignals.InsufficientDepth)

	deep, err := ComputeCompatibilityScore(backendActivity(), types.RoleQuery{Role: RoleBackend})
	require.NoError(t, err)
	assert.Equal(t, 0.0, deep.NegativeSignals.InsufficientDepth)
}

func TestCompatibility_CustomKnowledgeBase(t *testing.T) {
	kb := DefaultKnowledgeBase()
	kb["game-developer"] = RoleKnowledge{
		Languages:  []string{"c++", "c#"},
		Extensions: []string{".cpp", ".cs", ".shader"},
		Keywords:   []string{"gameplay", "shader", "physics", "render"},
		Patterns:   []string{"entity-component-system"},
	}
	calc := NewCompatibilityCalculator(kb)

	activity := types.EngineerActivity{
		Username: "game-dev",
		PRs: []types.PRAnalysis{
			{Title: "Optimize shader compilation", Files: []types.FileChange{{Path: "render/water.shader", Extension: ".shader"}}},
		},
	}

	result, err := calc.Compute(activity, types.RoleQuery{Role: "game-developer"})
	require.NoError(t, err)
	assert.Equal(t, "game-developer", result.Role)
	assert.Contains(t, result.MatchedTechnologies, "shader")
}

func TestKnowledgeBaseRoles(t *testing.T) {
	roles := DefaultKnowledgeBase().Roles()
	assert.Len(t, roles, 10)
	assert.Contains(t, roles, RoleBackend)
	assert.Contains(t, roles, RolePlatformEngineer)
	// Sorted output keeps the roles listing stable.
	for i := 1; i < len(roles); i++ {
		assert.Less(t, roles[i-1], roles[i])
	}
}
