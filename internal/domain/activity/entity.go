package activity

import "time"

// Repository is a read-only mirror of a GitHub repository, trimmed to the
// fields the dashboard needs.
type Repository struct {
	ID              int64
	Name            string
	FullName        string
	Description     *string
	HTMLURL         string
	DefaultBranch   string
	Private         bool
	Fork            bool
	Archived        bool
	Language        *string
	License         *string
	StargazersCount int
	ForksCount      int
	OpenIssuesCount int
	WatchersCount   int
	CreatedAt       time.Time
	UpdatedAt       time.Time
	PushedAt        time.Time
	OwnerLogin      string
	OwnerType       string
}

// Ref returns the owner/name reference of the repository.
func (r *Repository) Ref() (RepoRef, error) {
	if r.FullName != "" {
		return ParseFullName(r.FullName)
	}
	return NewRepoRef(r.OwnerLogin, r.Name)
}

// CommitAuthor is the git-level author of a commit. GitHub may only know
// the free-text name and email, not a platform login.
type CommitAuthor struct {
	Login string
	Name  string
	Email string
	Date  time.Time
}

// Commit is an immutable commit record.
type Commit struct {
	SHA     string
	Message string
	HTMLURL string
	Author  CommitAuthor
}

// Identity exposes the author fields used for identity merging.
func (c *Commit) Identity() RawIdentity {
	return RawIdentity{Login: c.Author.Login, Name: c.Author.Name, Email: c.Author.Email}
}

// WorkItemKind distinguishes issues from pull requests.
type WorkItemKind string

const (
	KindIssue       WorkItemKind = "issue"
	KindPullRequest WorkItemKind = "pull_request"
)

// WorkItem is an issue or a pull request. Comments is only populated for
// issues; the pull request list endpoint does not report it.
type WorkItem struct {
	Kind     WorkItemKind
	Number   int
	Title    string
	State    string
	Body     string
	Author   string
	Labels   []string
	Comments int
	HTMLURL  string
	Draft    bool
}

// Identity exposes the author login used for identity merging.
func (w *WorkItem) Identity() RawIdentity {
	return RawIdentity{Login: w.Author}
}

// User is the authenticated GitHub account.
type User struct {
	ID        int64
	Login     string
	Name      string
	Email     string
	AvatarURL string
	HTMLURL   string
}

// PageRef points at a page of a provider listing. URL is empty when the
// page was computed locally.
type PageRef struct {
	URL  string
	Page int
}

// PageInfo holds the cursors of a paged listing. Nil members mean the
// relation does not exist.
type PageInfo struct {
	Next  *PageRef
	Prev  *PageRef
	First *PageRef
	Last  *PageRef
}

// RepositoryPage is a single page of repositories.
type RepositoryPage struct {
	Items    []*Repository
	PageInfo *PageInfo
}
