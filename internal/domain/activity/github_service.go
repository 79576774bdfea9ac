package activity

import (
	"context"
	"time"
)

// RepositoryListOptions are passed through to the authenticated user's
// repository listing.
type RepositoryListOptions struct {
	Visibility  string
	Affiliation string
	Type        string
	Sort        string
	Direction   string
	Page        int
	PerPage     int
}

// CommitListOptions selects commits. Zero times leave the window open.
type CommitListOptions struct {
	Since   time.Time
	Until   time.Time
	Page    int
	PerPage int
}

// GitHubService is a domain service interface for reading GitHub activity.
// Every call takes the caller's access token; implementations hold no
// credential of their own.
type GitHubService interface {
	// GetAuthenticatedUser returns the account that owns accessToken.
	GetAuthenticatedUser(ctx context.Context, accessToken string) (*User, error)

	// ListRepositoriesPage returns one page of the authenticated user's repositories.
	ListRepositoriesPage(ctx context.Context, accessToken string, opts RepositoryListOptions) (*RepositoryPage, error)

	// ListAllRepositories returns the authenticated user's repositories,
	// bounded to MaxAuthenticatedRepoPages pages.
	ListAllRepositories(ctx context.Context, accessToken string, opts RepositoryListOptions) ([]*Repository, error)

	// ListOrgRepositories returns every repository of an organization.
	ListOrgRepositories(ctx context.Context, accessToken string, org string) ([]*Repository, error)

	// ListUserRepositories returns every public repository of a user account.
	ListUserRepositories(ctx context.Context, accessToken string, username string) ([]*Repository, error)

	// ListCommitsPage returns a single page of commits, newest first.
	ListCommitsPage(ctx context.Context, accessToken string, ref RepoRef, opts CommitListOptions) ([]*Commit, error)

	// ListCommits returns every commit matching opts.
	ListCommits(ctx context.Context, accessToken string, ref RepoRef, opts CommitListOptions) ([]*Commit, error)

	// ListOpenIssues returns every open issue, excluding pull requests.
	ListOpenIssues(ctx context.Context, accessToken string, ref RepoRef) ([]*WorkItem, error)

	// ListOpenPullRequests returns every open pull request.
	ListOpenPullRequests(ctx context.Context, accessToken string, ref RepoRef) ([]*WorkItem, error)
}
