package github

import (
	"context"
	"errors"

	gogithub "github.com/google/go-github/v74/github"

	"gitglimpse-core/internal/domain/activity"
	"gitglimpse-core/internal/github"
)

const issueStateOpen = "open"

// GitHubServiceImpl implements the domain activity.GitHubService interface
type GitHubServiceImpl struct {
	client *github.Client
}

// NewGitHubService creates a new GitHub service implementation
func NewGitHubService(client *github.Client) activity.GitHubService {
	return &GitHubServiceImpl{client: client}
}

// upstream wraps transport errors; a missing token is an authentication error
func upstream(operation string, err error) error {
	if errors.Is(err, github.ErrMissingToken) {
		return activity.ErrNotAuthenticated()
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return activity.ErrUpstream(operation, err)
}

// GetAuthenticatedUser fetches the account behind accessToken
func (g *GitHubServiceImpl) GetAuthenticatedUser(ctx context.Context, accessToken string) (*activity.User, error) {
	u, err := g.client.GetAuthenticatedUser(ctx, accessToken)
	if err != nil {
		return nil, upstream("get user", err)
	}

	return &activity.User{
		ID:        u.GetID(),
		Login:     u.GetLogin(),
		Name:      u.GetName(),
		Email:     u.GetEmail(),
		AvatarURL: u.GetAvatarURL(),
		HTMLURL:   u.GetHTMLURL(),
	}, nil
}

// ListRepositoriesPage fetches one page of the caller's repositories
func (g *GitHubServiceImpl) ListRepositoriesPage(ctx context.Context, accessToken string, opts activity.RepositoryListOptions) (*activity.RepositoryPage, error) {
	repos, resp, err := g.client.ListAuthenticatedUserRepos(ctx, accessToken, toRepoListOptions(opts))
	if err != nil {
		return nil, upstream("list repositories", err)
	}

	return &activity.RepositoryPage{
		Items:    toDomainRepositories(repos),
		PageInfo: toPageInfo(resp),
	}, nil
}

// ListAllRepositories walks the caller's repositories, bounded to
// activity.MaxAuthenticatedRepoPages pages
func (g *GitHubServiceImpl) ListAllRepositories(ctx context.Context, accessToken string, opts activity.RepositoryListOptions) ([]*activity.Repository, error) {
	listOpts := toRepoListOptions(opts)

	repos, err := activity.CollectPages(ctx, func(ctx context.Context, page, perPage int) (activity.Page[*gogithub.Repository], error) {
		listOpts.Page = page
		listOpts.PerPage = perPage
		items, resp, err := g.client.ListAuthenticatedUserRepos(ctx, accessToken, listOpts)
		if err != nil {
			return activity.Page[*gogithub.Repository]{}, err
		}
		return activity.Page[*gogithub.Repository]{Items: items, NextPage: resp.NextPage}, nil
	}, activity.PageOptions{MaxPages: activity.MaxAuthenticatedRepoPages})
	if err != nil {
		return nil, upstream("list repositories", err)
	}

	return toDomainRepositories(repos), nil
}

// ListOrgRepositories fetches every repository of an organization
func (g *GitHubServiceImpl) ListOrgRepositories(ctx context.Context, accessToken string, org string) ([]*activity.Repository, error) {
	repos, err := activity.CollectPages(ctx, func(ctx context.Context, page, perPage int) (activity.Page[*gogithub.Repository], error) {
		items, resp, err := g.client.ListOrgRepos(ctx, accessToken, org, page, perPage)
		if err != nil {
			return activity.Page[*gogithub.Repository]{}, err
		}
		return activity.Page[*gogithub.Repository]{Items: items, NextPage: resp.NextPage}, nil
	}, activity.PageOptions{})
	if err != nil {
		return nil, upstream("list organization repositories", err)
	}

	return toDomainRepositories(repos), nil
}

// ListUserRepositories fetches every repository of a user account
func (g *GitHubServiceImpl) ListUserRepositories(ctx context.Context, accessToken string, username string) ([]*activity.Repository, error) {
	repos, err := activity.CollectPages(ctx, func(ctx context.Context, page, perPage int) (activity.Page[*gogithub.Repository], error) {
		items, resp, err := g.client.ListUserRepos(ctx, accessToken, username, page, perPage)
		if err != nil {
			return activity.Page[*gogithub.Repository]{}, err
		}
		return activity.Page[*gogithub.Repository]{Items: items, NextPage: resp.NextPage}, nil
	}, activity.PageOptions{})
	if err != nil {
		return nil, upstream("list user repositories", err)
	}

	return toDomainRepositories(repos), nil
}

// ListCommitsPage fetches a single page of commits
func (g *GitHubServiceImpl) ListCommitsPage(ctx context.Context, accessToken string, ref activity.RepoRef, opts activity.CommitListOptions) ([]*activity.Commit, error) {
	commits, _, err := g.client.ListCommits(ctx, accessToken, ref.Owner(), ref.Name(), opts.Since, opts.Until, opts.Page, opts.PerPage)
	if err != nil {
		return nil, upstream("list commits", err)
	}
	return toDomainCommits(commits), nil
}

// ListCommits fetches every commit in the options' window
func (g *GitHubServiceImpl) ListCommits(ctx context.Context, accessToken string, ref activity.RepoRef, opts activity.CommitListOptions) ([]*activity.Commit, error) {
	commits, err := activity.CollectPages(ctx, func(ctx context.Context, page, perPage int) (activity.Page[*gogithub.RepositoryCommit], error) {
		items, resp, err := g.client.ListCommits(ctx, accessToken, ref.Owner(), ref.Name(), opts.Since, opts.Until, page, perPage)
		if err != nil {
			return activity.Page[*gogithub.RepositoryCommit]{}, err
		}
		return activity.Page[*gogithub.RepositoryCommit]{Items: items, NextPage: resp.NextPage}, nil
	}, activity.PageOptions{})
	if err != nil {
		return nil, upstream("list commits", err)
	}
	return toDomainCommits(commits), nil
}

// ListOpenIssues fetches every open issue. Pull requests are dropped after
// paging so that short-page detection sees the raw page size.
func (g *GitHubServiceImpl) ListOpenIssues(ctx context.Context, accessToken string, ref activity.RepoRef) ([]*activity.WorkItem, error) {
	issues, err := activity.CollectPages(ctx, func(ctx context.Context, page, perPage int) (activity.Page[*gogithub.Issue], error) {
		items, resp, err := g.client.ListIssues(ctx, accessToken, ref.Owner(), ref.Name(), issueStateOpen, page, perPage)
		if err != nil {
			return activity.Page[*gogithub.Issue]{}, err
		}
		return activity.Page[*gogithub.Issue]{Items: items, NextPage: resp.NextPage}, nil
	}, activity.PageOptions{})
	if err != nil {
		return nil, upstream("list issues", err)
	}

	items := make([]*activity.WorkItem, 0, len(issues))
	for _, issue := range issues {
		if issue.IsPullRequest() {
			continue
		}
		items = append(items, toDomainIssue(issue))
	}
	return items, nil
}

// ListOpenPullRequests fetches every open pull request
func (g *GitHubServiceImpl) ListOpenPullRequests(ctx context.Context, accessToken string, ref activity.RepoRef) ([]*activity.WorkItem, error) {
	prs, err := activity.CollectPages(ctx, func(ctx context.Context, page, perPage int) (activity.Page[*gogithub.PullRequest], error) {
		items, resp, err := g.client.ListPullRequests(ctx, accessToken, ref.Owner(), ref.Name(), issueStateOpen, page, perPage)
		if err != nil {
			return activity.Page[*gogithub.PullRequest]{}, err
		}
		return activity.Page[*gogithub.PullRequest]{Items: items, NextPage: resp.NextPage}, nil
	}, activity.PageOptions{})
	if err != nil {
		return nil, upstream("list pull requests", err)
	}

	items := make([]*activity.WorkItem, len(prs))
	for i, pr := range prs {
		items[i] = toDomainPullRequest(pr)
	}
	return items, nil
}
