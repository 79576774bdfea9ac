package service_test

import (
	"context"
	"errors"
	"sync"

	"gitglimpse-core/internal/domain/activity"
	"gitglimpse-core/internal/domain/summary"
)

// Mock implementations
type mockGitHubService struct {
	mu sync.Mutex

	user     *activity.User
	repoPage *activity.RepositoryPage
	allRepos []*activity.Repository
	commits  []*activity.Commit

	orgRepos  []*activity.Repository
	orgErr    error
	userRepos []*activity.Repository
	userErr   error

	issues    map[string][]*activity.WorkItem
	pulls     map[string][]*activity.WorkItem
	repoErrs  map[string]error
	calls     map[string]int
	tokens    []string
	repoOpts  []activity.RepositoryListOptions
	commitOpt []activity.CommitListOptions
}

func newMockGitHubService() *mockGitHubService {
	return &mockGitHubService{
		issues:   make(map[string][]*activity.WorkItem),
		pulls:    make(map[string][]*activity.WorkItem),
		repoErrs: make(map[string]error),
		calls:    make(map[string]int),
	}
}

func (m *mockGitHubService) record(op, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[op]++
	m.tokens = append(m.tokens, token)
}

func (m *mockGitHubService) callCount(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *mockGitHubService) GetAuthenticatedUser(ctx context.Context, accessToken string) (*activity.User, error) {
	m.record("user", accessToken)
	if m.user == nil {
		return nil, activity.ErrUpstream("get user", errors.New("Bad credentials"))
	}
	return m.user, nil
}

func (m *mockGitHubService) ListRepositoriesPage(ctx context.Context, accessToken string, opts activity.RepositoryListOptions) (*activity.RepositoryPage, error) {
	m.record("repos_page", accessToken)
	m.mu.Lock()
	m.repoOpts = append(m.repoOpts, opts)
	m.mu.Unlock()
	if m.repoPage == nil {
		return &activity.RepositoryPage{}, nil
	}
	return m.repoPage, nil
}

func (m *mockGitHubService) ListAllRepositories(ctx context.Context, accessToken string, opts activity.RepositoryListOptions) ([]*activity.Repository, error) {
	m.record("repos_all", accessToken)
	m.mu.Lock()
	m.repoOpts = append(m.repoOpts, opts)
	m.mu.Unlock()
	return m.allRepos, nil
}

func (m *mockGitHubService) ListOrgRepositories(ctx context.Context, accessToken string, org string) ([]*activity.Repository, error) {
	m.record("org_repos", accessToken)
	return m.orgRepos, m.orgErr
}

func (m *mockGitHubService) ListUserRepositories(ctx context.Context, accessToken string, username string) ([]*activity.Repository, error) {
	m.record("user_repos", accessToken)
	return m.userRepos, m.userErr
}

func (m *mockGitHubService) ListCommitsPage(ctx context.Context, accessToken string, ref activity.RepoRef, opts activity.CommitListOptions) ([]*activity.Commit, error) {
	m.record("commits_page", accessToken)
	m.mu.Lock()
	m.commitOpt = append(m.commitOpt, opts)
	m.mu.Unlock()
	if opts.PerPage > 0 && len(m.commits) > opts.PerPage {
		return m.commits[:opts.PerPage], nil
	}
	return m.commits, nil
}

func (m *mockGitHubService) ListCommits(ctx context.Context, accessToken string, ref activity.RepoRef, opts activity.CommitListOptions) ([]*activity.Commit, error) {
	m.record("commits", accessToken)
	m.mu.Lock()
	m.commitOpt = append(m.commitOpt, opts)
	m.mu.Unlock()
	return m.commits, nil
}

func (m *mockGitHubService) ListOpenIssues(ctx context.Context, accessToken string, ref activity.RepoRef) ([]*activity.WorkItem, error) {
	m.record("issues", accessToken)
	if err := m.repoErrs[ref.String()]; err != nil {
		return nil, err
	}
	return m.issues[ref.String()], nil
}

func (m *mockGitHubService) ListOpenPullRequests(ctx context.Context, accessToken string, ref activity.RepoRef) ([]*activity.WorkItem, error) {
	m.record("pulls", accessToken)
	if err := m.repoErrs[ref.String()]; err != nil {
		return nil, err
	}
	return m.pulls[ref.String()], nil
}

type mockSummarizer struct {
	mu      sync.Mutex
	result  summary.Result
	prompts []string
}

func newMockSummarizer() *mockSummarizer {
	return &mockSummarizer{result: summary.Generated("generated summary")}
}

func (m *mockSummarizer) Summarize(ctx context.Context, prompt string) summary.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	return m.result
}

func (m *mockSummarizer) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

func mustRef(owner, name string) activity.RepoRef {
	ref, err := activity.NewRepoRef(owner, name)
	if err != nil {
		panic(err)
	}
	return ref
}
