package types

import "time"

// GitHubAccount is an immutable snapshot of a public account profile,
// produced once per analysis run by the fetch layer.
type GitHubAccount struct {
	Username    string    `json:"username"`
	CreatedAt   time.Time `json:"created_at"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	Bio         string    `json:"bio,omitempty"`
	Location    string    `json:"location,omitempty"`
	Company     string    `json:"company,omitempty"`
	Website     string    `json:"website,omitempty"`
	Email       string    `json:"email,omitempty"`
	Verified    bool      `json:"verified"`
}

// ContributionPattern holds aggregated statistics over an engineer's
// PR/review/issue history. Derived deterministically from raw activity
// and immutable once computed.
type ContributionPattern struct {
	TotalPRs      int `json:"total_prs"`
	MergedPRs     int `json:"merged_prs"`
	SelfMergedPRs int `json:"self_merged_prs"`
	ForkPRs       int `json:"fork_prs"`

	// OriginalRepoContributions counts PRs targeting non-fork repositories.
	OriginalRepoContributions int `json:"original_repo_contributions"`

	MaxPRsPerDay int `json:"max_prs_per_day"`
	ActiveMonths int `json:"active_months"`

	UniqueRepositories   int `json:"unique_repositories"`
	ReposWithMultiplePRs int `json:"repos_with_multiple_prs"`
	UniqueCollaborators  int `json:"unique_collaborators"`

	DuplicateCommitMessages int `json:"duplicate_commit_messages"`
	MaintainerInteractions  int `json:"maintainer_interactions"`
	CrossRepoCollaborations int `json:"cross_repo_collaborations"`

	ReviewsGiven    int `json:"reviews_given"`
	ReviewsReceived int `json:"reviews_received"`

	FirstContribution time.Time `json:"first_contribution"`
	LastContribution  time.Time `json:"last_contribution"`
}

// ContributionSpan returns the duration between first and last contribution.
// Zero when the pattern holds no dated contributions.
func (p ContributionPattern) ContributionSpan() time.Duration {
	if p.FirstContribution.IsZero() || p.LastContribution.Before(p.FirstContribution) {
		return 0
	}
	return p.LastContribution.Sub(p.FirstContribution)
}

// MergedPR describes a single merged pull request.
type MergedPR struct {
	ID                 string    `json:"id"`
	Repository         string    `json:"repository"`
	MergedAt           time.Time `json:"merged_at"`
	Author             string    `json:"author"`
	MergedBy           string    `json:"merged_by"`
	ReviewComments     int       `json:"review_comments"`
	ReviewRounds       int       `json:"review_rounds"`
	FilesChanged       int       `json:"files_changed"`
	DirectoriesChanged int       `json:"directories_changed"`
	IsMaintainerMerge  bool      `json:"is_maintainer_merge"`
	IsFork             bool      `json:"is_fork"`
	TimeToMergeHours   float64   `json:"time_to_merge_hours"`
}

// IsSelfMerge reports whether the PR was merged by its own author.
func (pr MergedPR) IsSelfMerge() bool {
	return pr.Author != "" && pr.Author == pr.MergedBy
}

// CodeReview is a single review event, either given or received.
type CodeReview struct {
	Repository  string    `json:"repository"`
	Reviewer    string    `json:"reviewer"`
	PRAuthor    string    `json:"pr_author"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Issue is a single issue authored by the engineer.
type Issue struct {
	Repository  string    `json:"repository"`
	CreatedAt   time.Time `json:"created_at"`
	Closed      bool      `json:"closed"`
	HasLinkedPR bool      `json:"has_linked_pr"`
}

// RepositoryContribution summarizes an engineer's footprint in one repository.
type RepositoryContribution struct {
	Repository       string `json:"repository"`
	PRCount          int    `json:"pr_count"`
	ContributorCount int    `json:"contributor_count"`
	IsFork           bool   `json:"is_fork"`
}

// ActivitySpan is the first/last merged-PR window of the activity bundle.
type ActivitySpan struct {
	FirstPR time.Time `json:"first_pr"`
	LastPR  time.Time `json:"last_pr"`
}

// GitHubActivity is the full normalized activity bundle for one engineer.
type GitHubActivity struct {
	Username        string                   `json:"username"`
	MergedPRs       []MergedPR               `json:"merged_prs"`
	ReviewsGiven    []CodeReview             `json:"reviews_given"`
	ReviewsReceived []CodeReview             `json:"reviews_received"`
	Issues          []Issue                  `json:"issues"`
	Repositories    []RepositoryContribution `json:"repositories"`
	Span            ActivitySpan             `json:"activity_span"`
}

// ChangeFlags are structural change categories detected for a PR.
type ChangeFlags struct {
	API      bool `json:"api"`
	UI       bool `json:"ui"`
	Database bool `json:"database"`
	Config   bool `json:"config"`
	Infra    bool `json:"infra"`
	Tests    bool `json:"tests"`
	Docs     bool `json:"docs"`
}

// FileChange is one changed file inside an analyzed PR or review.
type FileChange struct {
	Path      string `json:"path"`
	Extension string `json:"extension"`
	Directory string `json:"directory"`
}

// PRAnalysis is the role-analysis view of a single PR.
type PRAnalysis struct {
	Repository string       `json:"repository"`
	Title      string       `json:"title"`
	Body       string       `json:"body,omitempty"`
	MergedAt   time.Time    `json:"merged_at"`
	Files      []FileChange `json:"files"`
	Flags      ChangeFlags  `json:"flags"`
}

// IssueAnalysis is the role-analysis view of a single issue.
type IssueAnalysis struct {
	Repository string `json:"repository"`
	Title      string `json:"title"`
	Body       string `json:"body,omitempty"`
	IsInfra    bool   `json:"is_infra"`
	IsSecurity bool   `json:"is_security"`
}

// RepositoryAnalysis is the role-analysis view of a contributed repository.
type RepositoryAnalysis struct {
	Name            string             `json:"name"`
	PrimaryLanguage string             `json:"primary_language"`
	Languages       map[string]float64 `json:"languages"` // language -> percentage of repo
	Topics          []string           `json:"topics"`
	Description     string             `json:"description,omitempty"`
	IsFork          bool               `json:"is_fork"`
}

// ReviewAnalysis is a code review with the files it touched.
type ReviewAnalysis struct {
	Repository string       `json:"repository"`
	Language   string       `json:"language,omitempty"`
	Files      []FileChange `json:"files"`
}

// EngineerActivity is the richer, role-analysis-oriented activity view
// consumed by the compatibility calculator.
type EngineerActivity struct {
	Username     string               `json:"username"`
	PRs          []PRAnalysis         `json:"prs"`
	Issues       []IssueAnalysis      `json:"issues"`
	Repositories []RepositoryAnalysis `json:"repositories"`
	Reviews      []ReviewAnalysis     `json:"reviews"`
}

// RoleQuery selects which role an engineer is scored against.
type RoleQuery struct {
	Role  string   `json:"role"`
	Hints []string `json:"hints,omitempty"`
}
