package scoring

import "sort"

// Supported role identifiers.
const (
	RoleBackend          = "backend"
	RoleFrontend         = "frontend"
	RoleFullstack        = "fullstack"
	RoleDevOps           = "devops"
	RoleMobile           = "mobile"
	RoleDataEngineer     = "data-engineer"
	RoleSecurity         = "security"
	RoleMLEngineer       = "ml-engineer"
	RoleSRE              = "sre"
	RolePlatformEngineer = "platform-engineer"
)

// RoleKnowledge is the static knowledge table for one role: the languages,
// file extensions, keywords and architecture patterns that characterize it,
// plus negative indicators that suggest a different role.
type RoleKnowledge struct {
	Languages          []string `json:"languages" mapstructure:"languages"`
	Extensions         []string `json:"extensions" mapstructure:"extensions"`
	Keywords           []string `json:"keywords" mapstructure:"keywords"`
	Patterns           []string `json:"patterns" mapstructure:"patterns"`
	NegativeIndicators []string `json:"negative_indicators" mapstructure:"negative_indicators"`
}

// KnowledgeBase maps role identifiers to their knowledge tables. New roles
// can be added without touching the calculator logic.
type KnowledgeBase map[string]RoleKnowledge

// Roles returns the known role identifiers in sorted order.
func (kb KnowledgeBase) Roles() []string {
	roles := make([]string, 0, len(kb))
	for role := range kb {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

// SignalWeights weigh the seven positive compatibility signals.
type SignalWeights struct {
	TechnologyStack     float64 `json:"technology_stack"`
	DomainDepth         float64 `json:"domain_depth"`
	ArchitecturePattern float64 `json:"architecture_pattern"`
	FileTypeAlignment   float64 `json:"file_type_alignment"`
	ActivityTypeMatch   float64 `json:"activity_type_match"`
	RepositoryTypeMatch float64 `json:"repository_type_match"`
	ReviewExpertise     float64 `json:"review_expertise"`
}

var baseSignalWeights = SignalWeights{
	TechnologyStack:     0.2,
	DomainDepth:         0.25,
	ArchitecturePattern: 0.15,
	FileTypeAlignment:   0.15,
	ActivityTypeMatch:   0.1,
	RepositoryTypeMatch: 0.1,
	ReviewExpertise:     0.05,
}

// Per-role overrides shift weight toward each role's most diagnostic signals.
var roleSignalWeights = map[string]SignalWeights{
	RoleBackend: {
		TechnologyStack:     0.25,
		DomainDepth:         0.3,
		ArchitecturePattern: 0.2,
		FileTypeAlignment:   0.1,
		ActivityTypeMatch:   0.05,
		RepositoryTypeMatch: 0.05,
		ReviewExpertise:     0.05,
	},
	RoleFrontend: {
		TechnologyStack:     0.25,
		DomainDepth:         0.25,
		ArchitecturePattern: 0.1,
		FileTypeAlignment:   0.25,
		ActivityTypeMatch:   0.05,
		RepositoryTypeMatch: 0.05,
		ReviewExpertise:     0.05,
	},
	RoleDevOps: {
		TechnologyStack:     0.25,
		DomainDepth:         0.2,
		ArchitecturePattern: 0.15,
		FileTypeAlignment:   0.15,
		ActivityTypeMatch:   0.15,
		RepositoryTypeMatch: 0.05,
		ReviewExpertise:     0.05,
	},
}

func signalWeightsFor(role string) SignalWeights {
	if w, ok := roleSignalWeights[role]; ok {
		return w
	}
	return baseSignalWeights
}

// DefaultKnowledgeBase returns the built-in tables for the ten supported
// roles. Callers may extend the returned map before constructing a
// compatibility calculator.
func DefaultKnowledgeBase() KnowledgeBase {
	return KnowledgeBase{
		RoleBackend: {
			Languages:  []string{"go", "java", "python", "ruby", "c#", "rust", "kotlin", "php", "elixir", "scala"},
			Extensions: []string{".go", ".java", ".py", ".rb", ".cs", ".rs", ".php", ".ex", ".scala", ".sql"},
			Keywords:   []string{"api", "database", "endpoint", "migration", "cache", "queue", "grpc", "rest", "auth", "server", "backend", "microservice"},
			Patterns:   []string{"rest-api", "grpc-service", "message-queue", "database-schema", "caching-layer", "microservices"},
			NegativeIndicators: []string{"css", "tailwind", "storybook", "figma", "react-native", "swiftui"},
		},
		RoleFrontend: {
			Languages:  []string{"javascript", "typescript", "css", "html", "vue", "svelte"},
			Extensions: []string{".js", ".jsx", ".ts", ".tsx", ".css", ".scss", ".html", ".vue", ".svelte"},
			Keywords:   []string{"component", "ui", "ux", "responsive", "accessibility", "styling", "layout", "frontend", "react", "vue", "animation"},
			Patterns:   []string{"component-architecture", "state-management", "design-system", "client-routing", "ssr"},
			NegativeIndicators: []string{"kubernetes", "terraform", "kafka", "etl", "pytorch", "ansible"},
		},
		RoleFullstack: {
			Languages:  []string{"javascript", "typescript", "go", "python", "ruby", "java", "php"},
			Extensions: []string{".js", ".jsx", ".ts", ".tsx", ".go", ".py", ".rb", ".java", ".php", ".sql", ".css", ".html"},
			Keywords:   []string{"api", "component", "fullstack", "frontend", "backend", "database", "endpoint", "ui"},
			Patterns:   []string{"rest-api", "component-architecture", "state-management", "database-schema", "ssr"},
			NegativeIndicators: []string{"firmware", "embedded", "kernel"},
		},
		RoleDevOps: {
			Languages:  []string{"hcl", "shell", "yaml", "python", "go", "dockerfile"},
			Extensions: []string{".tf", ".sh", ".yaml", ".yml", ".dockerfile", ".toml"},
			Keywords:   []string{"ci", "cd", "pipeline", "deploy", "docker", "kubernetes", "terraform", "ansible", "helm", "infrastructure", "provisioning"},
			Patterns:   []string{"infrastructure-as-code", "ci-pipeline", "container-orchestration", "gitops", "blue-green-deploy"},
			NegativeIndicators: []string{"css", "storybook", "swiftui", "react-native"},
		},
		RoleMobile: {
			Languages:  []string{"swift", "kotlin", "dart", "objective-c", "java"},
			Extensions: []string{".swift", ".kt", ".dart", ".m", ".mm", ".xib", ".storyboard"},
			Keywords:   []string{"ios", "android", "mobile", "app store", "play store", "flutter", "react native", "push notification", "offline"},
			Patterns:   []string{"mvvm", "mobile-navigation", "offline-sync", "push-notifications"},
			NegativeIndicators: []string{"terraform", "kafka", "etl", "kubernetes"},
		},
		RoleDataEngineer: {
			Languages:  []string{"python", "sql", "scala", "java"},
			Extensions: []string{".py", ".sql", ".scala", ".ipynb", ".parquet"},
			Keywords:   []string{"etl", "pipeline", "warehouse", "spark", "airflow", "kafka", "dbt", "batch", "streaming", "schema", "ingestion"},
			Patterns:   []string{"etl-pipeline", "data-warehouse", "stream-processing", "batch-processing", "data-lake"},
			NegativeIndicators: []string{"css", "storybook", "swiftui", "component"},
		},
		RoleSecurity: {
			Languages:  []string{"python", "go", "c", "rust", "shell"},
			Extensions: []string{".py", ".go", ".c", ".rs", ".sh"},
			Keywords:   []string{"security", "vulnerability", "exploit", "cve", "pentest", "audit", "encryption", "tls", "sast", "fuzzing", "hardening"},
			Patterns:   []string{"threat-modeling", "security-scanning", "secrets-management", "zero-trust"},
			NegativeIndicators: []string{"css", "storybook", "figma"},
		},
		RoleMLEngineer: {
			Languages:  []string{"python", "c++", "julia"},
			Extensions: []string{".py", ".ipynb", ".cu", ".jl"},
			Keywords:   []string{"model", "training", "inference", "pytorch", "tensorflow", "embedding", "fine-tune", "dataset", "feature", "llm", "neural"},
			Patterns:   []string{"training-pipeline", "model-serving", "feature-store", "experiment-tracking"},
			NegativeIndicators: []string{"css", "storybook", "terraform", "swiftui"},
		},
		RoleSRE: {
			Languages:  []string{"go", "python", "shell", "yaml"},
			Extensions: []string{".go", ".py", ".sh", ".yaml", ".yml"},
			Keywords:   []string{"reliability", "slo", "sli", "incident", "oncall", "alerting", "monitoring", "observability", "capacity", "postmortem", "runbook"},
			Patterns:   []string{"observability-stack", "incident-response", "chaos-engineering", "capacity-planning"},
			NegativeIndicators: []string{"css", "storybook", "figma", "swiftui"},
		},
		RolePlatformEngineer: {
			Languages:  []string{"go", "python", "typescript", "hcl", "yaml"},
			Extensions: []string{".go", ".py", ".ts", ".tf", ".yaml", ".yml"},
			Keywords:   []string{"platform", "developer experience", "internal tool", "golden path", "self-service", "paved road", "tooling", "sdk", "cli"},
			Patterns:   []string{"internal-developer-platform", "service-catalog", "infrastructure-as-code", "gitops"},
			NegativeIndicators: []string{"storybook", "figma", "swiftui"},
		},
	}
}
