package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitglimpse-core/internal/application/service"
	"gitglimpse-core/internal/domain/activity"
	"gitglimpse-core/internal/domain/summary"
)

func syntheticIssues(n int, author string) []*activity.WorkItem {
	items := make([]*activity.WorkItem, n)
	for i := range items {
		items[i] = &activity.WorkItem{
			Kind:     activity.KindIssue,
			Number:   i + 1,
			Title:    fmt.Sprintf("Issue %d", i+1),
			State:    "open",
			Body:     "body",
			Author:   author,
			Labels:   []string{"bug"},
			Comments: 2,
		}
	}
	return items
}

func TestIssueService_SummarizeCapsAt200(t *testing.T) {
	gh := newMockGitHubService()
	gh.issues["octo/hello"] = syntheticIssues(205, "alice")
	summarizer := newMockSummarizer()
	svc := service.NewIssueService(gh, summarizer, 4, nil)

	resp, err := svc.Summarize(context.Background(), "tok", mustRef("octo", "hello"))
	require.NoError(t, err)

	require.Equal(t, 1, summarizer.callCount())
	prompt := summarizer.prompts[0]
	assert.Equal(t, 200, strings.Count(prompt, " by alice [bug] (comments:2): "))
	assert.Contains(t, prompt, "#200 by alice")
	assert.NotContains(t, prompt, "#201 by alice")
	assert.True(t, strings.HasPrefix(prompt, "Summarize the currently open issues for octo/hello."))

	assert.Equal(t, 205, resp.Count)
	assert.Equal(t, "Summarized first 200 issues due to size limits.", resp.Note)
	assert.Equal(t, "generated summary", resp.Summary)
	assert.Equal(t, string(summary.StatusOK), resp.SummaryStatus)
	assert.Equal(t, []string{"alice"}, resp.Authors)
}

func TestIssueService_SummarizeUnderCapHasNoNote(t *testing.T) {
	gh := newMockGitHubService()
	gh.issues["octo/hello"] = syntheticIssues(150, "alice")
	summarizer := newMockSummarizer()
	svc := service.NewIssueService(gh, summarizer, 4, nil)

	resp, err := svc.Summarize(context.Background(), "tok", mustRef("octo", "hello"))
	require.NoError(t, err)

	assert.Empty(t, resp.Note)
	assert.Equal(t, 150, strings.Count(summarizer.prompts[0], " by alice "))
}

func TestIssueService_SummarizeNoIssuesSkipsProvider(t *testing.T) {
	gh := newMockGitHubService()
	summarizer := newMockSummarizer()
	svc := service.NewIssueService(gh, summarizer, 4, nil)

	resp, err := svc.Summarize(context.Background(), "tok", mustRef("octo", "empty"))
	require.NoError(t, err)

	assert.Equal(t, 0, summarizer.callCount())
	assert.Equal(t, "No open issues.", resp.Summary)
	assert.Equal(t, string(summary.StatusNoActivity), resp.SummaryStatus)
	assert.Equal(t, 0, resp.Count)
}

func TestIssueService_SummarizeExcerptsBody(t *testing.T) {
	gh := newMockGitHubService()
	issues := syntheticIssues(1, "")
	issues[0].Body = strings.Repeat("x", 1000)
	issues[0].Labels = nil
	gh.issues["octo/hello"] = issues
	summarizer := newMockSummarizer()
	svc := service.NewIssueService(gh, summarizer, 4, nil)

	_, err := svc.Summarize(context.Background(), "tok", mustRef("octo", "hello"))
	require.NoError(t, err)

	prompt := summarizer.prompts[0]
	assert.Contains(t, prompt, "#1 by unknown (comments:2): Issue 1\n"+strings.Repeat("x", 800))
	assert.NotContains(t, prompt, strings.Repeat("x", 801))
}

func TestIssueService_SummarizeReportsQuota(t *testing.T) {
	gh := newMockGitHubService()
	gh.issues["octo/hello"] = syntheticIssues(3, "alice")
	summarizer := newMockSummarizer()
	summarizer.result = summary.QuotaExhausted("quota", 90*time.Second)
	svc := service.NewIssueService(gh, summarizer, 4, nil)

	resp, err := svc.Summarize(context.Background(), "tok", mustRef("octo", "hello"))
	require.NoError(t, err)

	assert.Empty(t, resp.Summary)
	assert.Equal(t, string(summary.StatusQuotaExhausted), resp.SummaryStatus)
	assert.Equal(t, 90, resp.RetryAfterSeconds)
	assert.Equal(t, 3, resp.Count)
}

func TestPullRequestService_SummarizeOmitsComments(t *testing.T) {
	gh := newMockGitHubService()
	gh.pulls["octo/hello"] = []*activity.WorkItem{{
		Kind:   activity.KindPullRequest,
		Number: 7,
		Title:  "Add feature",
		Author: "bob",
		Labels: []string{"enhancement", "ui"},
	}}
	summarizer := newMockSummarizer()
	svc := service.NewPullRequestService(gh, summarizer, 4, nil)

	resp, err := svc.Summarize(context.Background(), "tok", mustRef("octo", "hello"))
	require.NoError(t, err)

	assert.Contains(t, summarizer.prompts[0], "#7 by bob [enhancement, ui]: Add feature\n")
	assert.Equal(t, []string{"bob"}, resp.Authors)
	assert.Equal(t, 0, gh.callCount("issues"))
}

func TestIssueService_ListForOwnerFallsBackToUser(t *testing.T) {
	gh := newMockGitHubService()
	gh.orgErr = activity.ErrUpstream("list organization repositories", errors.New("Not Found"))
	gh.userRepos = []*activity.Repository{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	gh.issues["octo/a"] = syntheticIssues(2, "alice")
	gh.issues["octo/c"] = syntheticIssues(1, "carol")
	svc := service.NewIssueService(gh, newMockSummarizer(), 2, nil)

	resp, err := svc.ListForOwner(context.Background(), "tok", "octo")
	require.NoError(t, err)

	assert.Equal(t, 1, gh.callCount("org_repos"))
	assert.Equal(t, 1, gh.callCount("user_repos"))
	assert.Equal(t, 3, gh.callCount("issues"))

	require.Len(t, resp.Repositories, 2)
	assert.Equal(t, "a", resp.Repositories[0].Repo)
	assert.Equal(t, 2, resp.Repositories[0].Count)
	assert.Equal(t, "c", resp.Repositories[1].Repo)
	assert.Equal(t, 3, resp.Total)
	assert.Empty(t, resp.Repositories[0].Items[0].Body)
}

func TestIssueService_ListForOwnerEmptyOrgFallsBack(t *testing.T) {
	gh := newMockGitHubService()
	gh.orgRepos = []*activity.Repository{}
	gh.userRepos = []*activity.Repository{{Name: "a"}}
	svc := service.NewIssueService(gh, newMockSummarizer(), 2, nil)

	resp, err := svc.ListForOwner(context.Background(), "tok", "octo")
	require.NoError(t, err)

	assert.Equal(t, 1, gh.callCount("user_repos"))
	assert.Empty(t, resp.Repositories)
	assert.Equal(t, 0, resp.Total)
}

func TestIssueService_ListForOwnerPrefersOrg(t *testing.T) {
	gh := newMockGitHubService()
	gh.orgRepos = []*activity.Repository{{Name: "a"}}
	gh.issues["octo/a"] = syntheticIssues(1, "alice")
	svc := service.NewIssueService(gh, newMockSummarizer(), 2, nil)

	resp, err := svc.ListForOwner(context.Background(), "tok", "octo")
	require.NoError(t, err)

	assert.Equal(t, 0, gh.callCount("user_repos"))
	assert.Equal(t, 1, resp.Total)
}

func TestIssueService_ListForOwnerBothListingsFail(t *testing.T) {
	gh := newMockGitHubService()
	gh.orgErr = activity.ErrUpstream("list organization repositories", errors.New("Not Found"))
	gh.userErr = activity.ErrUpstream("list user repositories", errors.New("Not Found"))
	svc := service.NewIssueService(gh, newMockSummarizer(), 2, nil)

	_, err := svc.ListForOwner(context.Background(), "tok", "ghost")
	require.Error(t, err)
	assert.Equal(t, activity.CodeUpstream, activity.CodeOf(err))
	assert.Equal(t, 1, gh.callCount("user_repos"))
}

func TestIssueService_ListForOwnerFailsOnAnyRepository(t *testing.T) {
	gh := newMockGitHubService()
	gh.orgRepos = []*activity.Repository{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	gh.issues["octo/a"] = syntheticIssues(1, "alice")
	gh.repoErrs["octo/b"] = activity.ErrUpstream("list issues", errors.New("API rate limit exceeded"))
	svc := service.NewIssueService(gh, newMockSummarizer(), 1, nil)

	resp, err := svc.ListForOwner(context.Background(), "tok", "octo")
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "rate limit")
}

func TestIssueService_ListForOwnerKeepsOrderUnderConcurrency(t *testing.T) {
	gh := newMockGitHubService()
	for i := 0; i < 20; i++ {
		name := fmt.Sprintf("repo-%02d", i)
		gh.orgRepos = append(gh.orgRepos, &activity.Repository{Name: name})
		gh.issues["octo/"+name] = syntheticIssues(i%3, "alice")
	}
	svc := service.NewIssueService(gh, newMockSummarizer(), 8, nil)

	resp, err := svc.ListForOwner(context.Background(), "tok", "octo")
	require.NoError(t, err)

	var names []string
	for _, r := range resp.Repositories {
		names = append(names, r.Repo)
	}
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
	assert.Len(t, names, 13)
	for _, token := range gh.tokens {
		assert.Equal(t, "tok", token)
	}
}

func TestIssueService_ListForOwnerRejectsInvalidOwner(t *testing.T) {
	gh := newMockGitHubService()
	svc := service.NewIssueService(gh, newMockSummarizer(), 2, nil)

	_, err := svc.ListForOwner(context.Background(), "tok", "a/b")
	require.Error(t, err)
	assert.Equal(t, activity.CodeInvalidRepoRef, activity.CodeOf(err))
	assert.Equal(t, 0, gh.callCount("org_repos"))
}

func TestIssueService_SummarizeForOwner(t *testing.T) {
	gh := newMockGitHubService()
	gh.orgRepos = []*activity.Repository{{Name: "api"}, {Name: "web"}, {Name: "docs"}}
	gh.issues["octo/api"] = syntheticIssues(250, "alice")
	gh.issues["octo/web"] = syntheticIssues(100, "Bob")
	summarizer := newMockSummarizer()
	svc := service.NewIssueService(gh, summarizer, 3, nil)

	resp, err := svc.SummarizeForOwner(context.Background(), "tok", "octo")
	require.NoError(t, err)

	require.Equal(t, 1, summarizer.callCount())
	prompt := summarizer.prompts[0]
	assert.Contains(t, prompt, `for owner "octo"`)
	assert.Contains(t, prompt, "Repos with issues: 2, total open issues: 350.")
	assert.Equal(t, 250, strings.Count(prompt, "[api] #"))
	assert.Equal(t, 50, strings.Count(prompt, "[web] #"))
	assert.NotContains(t, prompt, "(comments:")

	assert.Equal(t, 350, resp.Total)
	assert.Equal(t, "Summarized first 300 issues due to size limits.", resp.Note)
	assert.Equal(t, []string{"Bob", "alice"}, resp.Authors)
	require.Len(t, resp.Repositories, 2)
	assert.Equal(t, "api", resp.Repositories[0].Repo)
	assert.Equal(t, 250, resp.Repositories[0].Count)
}

func TestIssueService_SummarizeForOwnerNoIssues(t *testing.T) {
	gh := newMockGitHubService()
	gh.orgRepos = []*activity.Repository{{Name: "api"}}
	summarizer := newMockSummarizer()
	svc := service.NewIssueService(gh, summarizer, 3, nil)

	resp, err := svc.SummarizeForOwner(context.Background(), "tok", "octo")
	require.NoError(t, err)

	assert.Equal(t, 0, summarizer.callCount())
	assert.Equal(t, "No open issues across repositories.", resp.Summary)
	assert.Equal(t, string(summary.StatusNoActivity), resp.SummaryStatus)
}

func TestPullRequestService_SummarizeForOwnerCapsAt200(t *testing.T) {
	gh := newMockGitHubService()
	gh.orgRepos = []*activity.Repository{{Name: "api"}}
	prs := syntheticIssues(230, "alice")
	for _, pr := range prs {
		pr.Kind = activity.KindPullRequest
	}
	gh.pulls["octo/api"] = prs
	summarizer := newMockSummarizer()
	svc := service.NewPullRequestService(gh, summarizer, 3, nil)

	resp, err := svc.SummarizeForOwner(context.Background(), "tok", "octo")
	require.NoError(t, err)

	assert.Equal(t, 200, strings.Count(summarizer.prompts[0], "[api] #"))
	assert.Equal(t, "Summarized first 200 pull requests due to size limits.", resp.Note)
}
