package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"gitglimpse-core/internal/application/dto"
	"gitglimpse-core/internal/domain/activity"
	"gitglimpse-core/internal/domain/summary"
	"gitglimpse-core/internal/logging"
)

const (
	repoIssuesPrompt = `Summarize the currently open issues for %s.
Highlight themes, severity, blockers, and suggested next steps. Be concise.`

	ownerIssuesPrompt = `Summarize open issues across all repositories for owner %q.
Group by repo when useful. Call out critical problems, themes, and recommended next steps.
Repos with issues: %d, total open issues: %d.`

	repoPullRequestsPrompt = `Summarize the currently open pull requests for %s.
Highlight what is being changed, review risk, stale or blocked work, and suggested next steps. Be concise.`

	ownerPullRequestsPrompt = `Summarize open pull requests across all repositories for owner %q.
Group by repo when useful. Call out risky or long-running changes, themes, and recommended next steps.
Repos with pull requests: %d, total open pull requests: %d.`
)

type listWorkItemsFunc func(ctx context.Context, gh activity.GitHubService, accessToken string, ref activity.RepoRef) ([]*activity.WorkItem, error)

// workItemKind parameterizes WorkItemService for issues or pull requests
type workItemKind struct {
	noun         string
	list         listWorkItemsFunc
	repoLimit    int
	ownerLimit   int
	showComments bool
	repoEmpty    string
	ownerEmpty   string
	repoPrompt   string
	ownerPrompt  string
}

var issueKind = workItemKind{
	noun:         "issues",
	list:         listOpenIssues,
	repoLimit:    summary.LimitRepoIssues,
	ownerLimit:   summary.LimitOwnerIssues,
	showComments: true,
	repoEmpty:    "No open issues.",
	ownerEmpty:   "No open issues across repositories.",
	repoPrompt:   repoIssuesPrompt,
	ownerPrompt:  ownerIssuesPrompt,
}

var pullRequestKind = workItemKind{
	noun:        "pull requests",
	list:        listOpenPullRequests,
	repoLimit:   summary.LimitRepoPullRequests,
	ownerLimit:  summary.LimitOwnerPullRequests,
	repoEmpty:   "No open pull requests.",
	ownerEmpty:  "No open pull requests across repositories.",
	repoPrompt:  repoPullRequestsPrompt,
	ownerPrompt: ownerPullRequestsPrompt,
}

func listOpenIssues(ctx context.Context, gh activity.GitHubService, accessToken string, ref activity.RepoRef) ([]*activity.WorkItem, error) {
	return gh.ListOpenIssues(ctx, accessToken, ref)
}

func listOpenPullRequests(ctx context.Context, gh activity.GitHubService, accessToken string, ref activity.RepoRef) ([]*activity.WorkItem, error) {
	return gh.ListOpenPullRequests(ctx, accessToken, ref)
}

// WorkItemService lists and summarizes open issues or open pull requests,
// for one repository or across every repository of an owner
type WorkItemService struct {
	kind             workItemKind
	githubService    activity.GitHubService
	summarizer       summary.Summarizer
	ownerConcurrency int
	logger           *slog.Logger
}

// NewIssueService creates a work item service for open issues
func NewIssueService(githubService activity.GitHubService, summarizer summary.Summarizer, ownerConcurrency int, logger *slog.Logger) *WorkItemService {
	return newWorkItemService(issueKind, githubService, summarizer, ownerConcurrency, logger)
}

// NewPullRequestService creates a work item service for open pull requests
func NewPullRequestService(githubService activity.GitHubService, summarizer summary.Summarizer, ownerConcurrency int, logger *slog.Logger) *WorkItemService {
	return newWorkItemService(pullRequestKind, githubService, summarizer, ownerConcurrency, logger)
}

func newWorkItemService(kind workItemKind, githubService activity.GitHubService, summarizer summary.Summarizer, ownerConcurrency int, logger *slog.Logger) *WorkItemService {
	if logger == nil {
		logger = logging.Discard()
	}
	if ownerConcurrency < 1 {
		ownerConcurrency = 1
	}
	return &WorkItemService{
		kind:             kind,
		githubService:    githubService,
		summarizer:       summarizer,
		ownerConcurrency: ownerConcurrency,
		logger:           logger.With("kind", kind.noun),
	}
}

// List returns every open item of a repository
func (s *WorkItemService) List(ctx context.Context, accessToken string, ref activity.RepoRef) (*dto.WorkItemListResponse, error) {
	items, err := s.kind.list(ctx, s.githubService, accessToken, ref)
	if err != nil {
		return nil, err
	}

	return &dto.WorkItemListResponse{
		Repo:  ref.String(),
		Count: len(items),
		Items: dto.NewWorkItemResponses(items, true),
	}, nil
}

// Summarize summarizes the open items of a repository
func (s *WorkItemService) Summarize(ctx context.Context, accessToken string, ref activity.RepoRef) (*dto.WorkItemSummaryResponse, error) {
	items, err := s.kind.list(ctx, s.githubService, accessToken, ref)
	if err != nil {
		return nil, err
	}

	_, authors := activity.MergeAuthors(items)
	resp := &dto.WorkItemSummaryResponse{
		Repo:    ref.String(),
		Count:   len(items),
		Authors: authors,
	}

	if len(items) == 0 {
		resp.SummaryFields = dto.NewSummaryFields(summary.NoActivity(s.kind.repoEmpty), "")
		return resp, nil
	}

	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = s.itemLine("", item, summary.RepoExcerptLength)
	}
	lines, note := summary.Cap(lines, s.kind.repoLimit, s.kind.noun)

	prompt := summary.Prompt(fmt.Sprintf(s.kind.repoPrompt, ref), lines)
	result := s.summarizer.Summarize(ctx, prompt)
	logSummaryResult(s.logger, s.kind.noun, result)

	resp.SummaryFields = dto.NewSummaryFields(result, note)
	return resp, nil
}

// ListForOwner returns the open items of every repository of owner.
// Repositories without open items are left out.
func (s *WorkItemService) ListForOwner(ctx context.Context, accessToken string, owner string) (*dto.OwnerWorkItemListResponse, error) {
	owner, err := activity.NewOwner(owner)
	if err != nil {
		return nil, err
	}

	groups, err := s.collectForOwner(ctx, accessToken, owner)
	if err != nil {
		return nil, err
	}

	resp := &dto.OwnerWorkItemListResponse{
		Owner:        owner,
		Repositories: make([]*dto.OwnerRepositoryItems, 0, len(groups)),
	}
	for _, g := range groups {
		resp.Total += len(g.items)
		resp.Repositories = append(resp.Repositories, &dto.OwnerRepositoryItems{
			Repo:  g.repo,
			Count: len(g.items),
			Items: dto.NewWorkItemResponses(g.items, false),
		})
	}
	return resp, nil
}

// SummarizeForOwner summarizes open items across every repository of owner
func (s *WorkItemService) SummarizeForOwner(ctx context.Context, accessToken string, owner string) (*dto.OwnerWorkItemSummaryResponse, error) {
	owner, err := activity.NewOwner(owner)
	if err != nil {
		return nil, err
	}

	groups, err := s.collectForOwner(ctx, accessToken, owner)
	if err != nil {
		return nil, err
	}

	resp := &dto.OwnerWorkItemSummaryResponse{
		Owner:        owner,
		Repositories: make([]*dto.OwnerRepositoryStat, 0, len(groups)),
	}

	var (
		lines []string
		all   []*activity.WorkItem
	)
	for _, g := range groups {
		resp.Total += len(g.items)
		resp.Repositories = append(resp.Repositories, &dto.OwnerRepositoryStat{Repo: g.repo, Count: len(g.items)})
		for _, item := range g.items {
			lines = append(lines, s.itemLine(g.repo, item, summary.OwnerExcerptLength))
		}
		all = append(all, g.items...)
	}
	_, resp.Authors = activity.MergeAuthors(all)

	if resp.Total == 0 {
		resp.SummaryFields = dto.NewSummaryFields(summary.NoActivity(s.kind.ownerEmpty), "")
		return resp, nil
	}

	lines, note := summary.Cap(lines, s.kind.ownerLimit, s.kind.noun)
	prompt := summary.Prompt(fmt.Sprintf(s.kind.ownerPrompt, owner, len(groups), resp.Total), lines)

	result := s.summarizer.Summarize(ctx, prompt)
	logSummaryResult(s.logger, "owner "+s.kind.noun, result)

	resp.SummaryFields = dto.NewSummaryFields(result, note)
	return resp, nil
}

type repoItems struct {
	repo  string
	items []*activity.WorkItem
}

// collectForOwner fetches the open items of every repository of owner with
// at most ownerConcurrency requests in flight. Groups keep the order of the
// repository listing; empty groups are dropped. The first failure cancels
// the remaining fetches and fails the whole call.
func (s *WorkItemService) collectForOwner(ctx context.Context, accessToken string, owner string) ([]repoItems, error) {
	repos, err := s.resolveOwnerRepositories(ctx, accessToken, owner)
	if err != nil {
		return nil, err
	}

	results := make([][]*activity.WorkItem, len(repos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.ownerConcurrency)
	for i, repo := range repos {
		g.Go(func() error {
			ref, err := activity.NewRepoRef(owner, repo.Name)
			if err != nil {
				return err
			}
			items, err := s.kind.list(gctx, s.githubService, accessToken, ref)
			if err != nil {
				return err
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error("owner aggregation failed", "owner", owner, "repositories", len(repos), "error", err)
		return nil, err
	}

	groups := make([]repoItems, 0, len(repos))
	for i, repo := range repos {
		if len(results[i]) == 0 {
			continue
		}
		groups = append(groups, repoItems{repo: repo.Name, items: results[i]})
	}
	return groups, nil
}

// resolveOwnerRepositories lists owner's repositories as an organization
// first and falls back to the user listing when that fails or is empty
func (s *WorkItemService) resolveOwnerRepositories(ctx context.Context, accessToken string, owner string) ([]*activity.Repository, error) {
	repos, err := s.githubService.ListOrgRepositories(ctx, accessToken, owner)
	switch {
	case err == nil && len(repos) > 0:
		return repos, nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, err
	case activity.CodeOf(err) == activity.CodeNotAuthenticated:
		return nil, err
	case err != nil:
		s.logger.Debug("organization listing failed, trying user", "owner", owner, "error", err)
	}

	return s.githubService.ListUserRepositories(ctx, accessToken, owner)
}

// itemLine formats one record for a prompt. repo is set in owner scope.
func (s *WorkItemService) itemLine(repo string, item *activity.WorkItem, excerptLength int) string {
	var sb strings.Builder
	if repo != "" {
		fmt.Fprintf(&sb, "[%s] ", repo)
	}

	author := item.Author
	if author == "" {
		author = "unknown"
	}
	fmt.Fprintf(&sb, "#%d by %s", item.Number, author)

	if len(item.Labels) > 0 {
		fmt.Fprintf(&sb, " [%s]", strings.Join(item.Labels, ", "))
	}
	if s.kind.showComments && repo == "" {
		fmt.Fprintf(&sb, " (comments:%d)", item.Comments)
	}

	fmt.Fprintf(&sb, ": %s\n%s", item.Title, summary.Excerpt(item.Body, excerptLength))
	return sb.String()
}
