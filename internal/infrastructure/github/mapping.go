package github

import (
	gogithub "github.com/google/go-github/v74/github"

	"gitglimpse-core/internal/domain/activity"
	"gitglimpse-core/internal/github"
)

func toRepoListOptions(opts activity.RepositoryListOptions) github.RepoListOptions {
	return github.RepoListOptions{
		Visibility:  opts.Visibility,
		Affiliation: opts.Affiliation,
		Type:        opts.Type,
		Sort:        opts.Sort,
		Direction:   opts.Direction,
		Page:        opts.Page,
		PerPage:     opts.PerPage,
	}
}

func toDomainRepositories(repos []*gogithub.Repository) []*activity.Repository {
	out := make([]*activity.Repository, len(repos))
	for i, r := range repos {
		out[i] = toDomainRepository(r)
	}
	return out
}

func toDomainRepository(r *gogithub.Repository) *activity.Repository {
	repo := &activity.Repository{
		ID:              r.GetID(),
		Name:            r.GetName(),
		FullName:        r.GetFullName(),
		Description:     r.Description,
		HTMLURL:         r.GetHTMLURL(),
		DefaultBranch:   r.GetDefaultBranch(),
		Private:         r.GetPrivate(),
		Fork:            r.GetFork(),
		Archived:        r.GetArchived(),
		Language:        r.Language,
		StargazersCount: r.GetStargazersCount(),
		ForksCount:      r.GetForksCount(),
		OpenIssuesCount: r.GetOpenIssuesCount(),
		WatchersCount:   r.GetWatchersCount(),
		CreatedAt:       r.GetCreatedAt().Time,
		UpdatedAt:       r.GetUpdatedAt().Time,
		PushedAt:        r.GetPushedAt().Time,
		OwnerLogin:      r.GetOwner().GetLogin(),
		OwnerType:       r.GetOwner().GetType(),
	}
	if license := r.GetLicense(); license != nil {
		name := license.GetSPDXID()
		if name == "" {
			name = license.GetName()
		}
		if name != "" {
			repo.License = &name
		}
	}
	return repo
}

func toDomainCommits(commits []*gogithub.RepositoryCommit) []*activity.Commit {
	out := make([]*activity.Commit, len(commits))
	for i, c := range commits {
		author := c.GetCommit().GetAuthor()
		out[i] = &activity.Commit{
			SHA:     c.GetSHA(),
			Message: c.GetCommit().GetMessage(),
			HTMLURL: c.GetHTMLURL(),
			Author: activity.CommitAuthor{
				Login: c.GetAuthor().GetLogin(),
				Name:  author.GetName(),
				Email: author.GetEmail(),
				Date:  author.GetDate().Time,
			},
		}
	}
	return out
}

func labelNames(labels []*gogithub.Label) []string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		if name := l.GetName(); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func toDomainIssue(issue *gogithub.Issue) *activity.WorkItem {
	return &activity.WorkItem{
		Kind:     activity.KindIssue,
		Number:   issue.GetNumber(),
		Title:    issue.GetTitle(),
		State:    issue.GetState(),
		Body:     issue.GetBody(),
		Author:   issue.GetUser().GetLogin(),
		Labels:   labelNames(issue.Labels),
		Comments: issue.GetComments(),
		HTMLURL:  issue.GetHTMLURL(),
	}
}

func toDomainPullRequest(pr *gogithub.PullRequest) *activity.WorkItem {
	return &activity.WorkItem{
		Kind:     activity.KindPullRequest,
		Number:   pr.GetNumber(),
		Title:    pr.GetTitle(),
		State:    pr.GetState(),
		Body:     pr.GetBody(),
		Author:   pr.GetUser().GetLogin(),
		Labels:   labelNames(pr.Labels),
		Comments: pr.GetComments(),
		HTMLURL:  pr.GetHTMLURL(),
		Draft:    pr.GetDraft(),
	}
}

func toPageInfo(resp *github.Response) *activity.PageInfo {
	if resp == nil {
		return nil
	}

	ref := func(rel string, page int) *activity.PageRef {
		link, ok := resp.Links[rel]
		if !ok && page == 0 {
			return nil
		}
		if link.Page == 0 {
			link.Page = page
		}
		return &activity.PageRef{URL: link.URL, Page: link.Page}
	}

	return &activity.PageInfo{
		Next:  ref("next", resp.NextPage),
		Prev:  ref("prev", resp.PrevPage),
		First: ref("first", resp.FirstPage),
		Last:  ref("last", resp.LastPage),
	}
}
