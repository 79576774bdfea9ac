package service_test

import (
	"context"
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

func sampleCommits() []*activity.Commit {
	day := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	return []*activity.Commit{
		{SHA: "1", Message: "Fix login redirect", Author: activity.CommitAuthor{Login: "alice", Name: "Alice", Email: "alice@example.com", Date: day}},
		{SHA: "2", Message: "Update docs", Author: activity.CommitAuthor{Login: "ALICE", Date: day}},
		{SHA: "3", Message: "Bump deps\n\nSigned-off-by: bot", Author: activity.CommitAuthor{Name: "Dependency Bot", Email: "bot@example.com", Date: day}},
		{SHA: "4", Message: "Tweak CI", Author: activity.CommitAuthor{Name: "dependency_bot", Date: day}},
	}
}

func TestCommitService_ListLatestDefaults(t *testing.T) {
	gh := newMockGitHubService()
	gh.commits = sampleCommits()
	svc := service.NewCommitService(gh, newMockSummarizer(), nil)

	resp, err := svc.ListLatest(context.Background(), "tok", mustRef("octo", "hello"), 0, 0)
	require.NoError(t, err)

	require.Len(t, gh.commitOpt, 1)
	assert.Equal(t, activity.CommitListOptions{Page: 1, PerPage: 30}, gh.commitOpt[0])
	assert.Equal(t, "octo/hello", resp.Repo)
	assert.Equal(t, 4, resp.Count)
	assert.Equal(t, "alice", resp.Items[0].Author.Login)
}

func TestCommitService_ListByDate(t *testing.T) {
	gh := newMockGitHubService()
	gh.commits = sampleCommits()
	svc := service.NewCommitService(gh, newMockSummarizer(), nil)

	resp, err := svc.ListByDate(context.Background(), "tok", mustRef("octo", "hello"), "2024-02-01")
	require.NoError(t, err)

	require.Len(t, gh.commitOpt, 1)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), gh.commitOpt[0].Since)
	assert.Equal(t, time.Date(2024, 2, 1, 23, 59, 59, 0, time.UTC), gh.commitOpt[0].Until)
	assert.Equal(t, "2024-02-01", resp.Date)
	assert.Equal(t, 4, resp.Count)
}

func TestCommitService_InvalidDateMakesNoCalls(t *testing.T) {
	for _, date := range []string{"2024/02/01", "2024-02-30", "yesterday"} {
		gh := newMockGitHubService()
		summarizer := newMockSummarizer()
		svc := service.NewCommitService(gh, summarizer, nil)

		_, err := svc.ListByDate(context.Background(), "tok", mustRef("octo", "hello"), date)
		require.Error(t, err, date)
		assert.Equal(t, activity.CodeInvalidDate, activity.CodeOf(err))

		_, err = svc.SummarizeByDate(context.Background(), "tok", mustRef("octo", "hello"), date)
		require.Error(t, err, date)

		assert.Equal(t, 0, gh.callCount("commits"))
		assert.Equal(t, 0, summarizer.callCount())
	}
}

func TestCommitService_SummarizeByDateMergesAuthors(t *testing.T) {
	gh := newMockGitHubService()
	gh.commits = sampleCommits()
	summarizer := newMockSummarizer()
	svc := service.NewCommitService(gh, summarizer, nil)

	resp, err := svc.SummarizeByDate(context.Background(), "tok", mustRef("octo", "hello"), "2024-02-01")
	require.NoError(t, err)

	assert.Equal(t, []string{"Dependency Bot", "alice", "dependency_bot"}, resp.Authors)
	assert.Equal(t, 4, resp.Count)
	assert.Equal(t, "generated summary", resp.Summary)

	prompt := summarizer.prompts[0]
	assert.Contains(t, prompt, "on 2024-02-01 (UTC)")
	assert.Contains(t, prompt, "- Fix login redirect (alice)")
	assert.Contains(t, prompt, "- Tweak CI (dependency_bot)")
}

func TestCommitService_SummarizeByDateCapsAt200(t *testing.T) {
	gh := newMockGitHubService()
	for i := 0; i < 230; i++ {
		gh.commits = append(gh.commits, &activity.Commit{SHA: fmt.Sprint(i), Message: fmt.Sprintf("change %d", i), Author: activity.CommitAuthor{Login: "alice"}})
	}
	summarizer := newMockSummarizer()
	svc := service.NewCommitService(gh, summarizer, nil)

	resp, err := svc.SummarizeByDate(context.Background(), "tok", mustRef("octo", "hello"), "2024-02-01")
	require.NoError(t, err)

	assert.Equal(t, 200, strings.Count(summarizer.prompts[0], "- change "))
	assert.Equal(t, "Summarized first 200 commits due to size limits.", resp.Note)
	assert.Equal(t, 230, resp.Count)
}

func TestCommitService_SummarizeLatest(t *testing.T) {
	gh := newMockGitHubService()
	for i := 0; i < 25; i++ {
		gh.commits = append(gh.commits, &activity.Commit{SHA: fmt.Sprint(i), Message: fmt.Sprintf("change %d", i)})
	}
	summarizer := newMockSummarizer()
	svc := service.NewCommitService(gh, summarizer, nil)

	resp, err := svc.SummarizeLatest(context.Background(), "tok", mustRef("octo", "hello"))
	require.NoError(t, err)

	assert.Equal(t, activity.CommitListOptions{Page: 1, PerPage: 10}, gh.commitOpt[0])
	assert.Equal(t, 10, strings.Count(summarizer.prompts[0], "- change "))
	assert.Equal(t, 10, resp.Count)
	assert.Empty(t, resp.Note)
}

func TestCommitService_SummarizeWithoutCommits(t *testing.T) {
	gh := newMockGitHubService()
	summarizer := newMockSummarizer()
	svc := service.NewCommitService(gh, summarizer, nil)

	latest, err := svc.SummarizeLatest(context.Background(), "tok", mustRef("octo", "hello"))
	require.NoError(t, err)
	assert.Equal(t, string(summary.StatusNoActivity), latest.SummaryStatus)

	byDate, err := svc.SummarizeByDate(context.Background(), "tok", mustRef("octo", "hello"), "2024-02-01")
	require.NoError(t, err)
	assert.Equal(t, "No commits on 2024-02-01.", byDate.Summary)

	assert.Equal(t, 0, summarizer.callCount())
}

func TestCommitService_SummaryUnavailable(t *testing.T) {
	gh := newMockGitHubService()
	gh.commits = sampleCommits()
	summarizer := newMockSummarizer()
	summarizer.result = summary.Unavailable("summary generation failed")
	svc := service.NewCommitService(gh, summarizer, nil)

	resp, err := svc.SummarizeLatest(context.Background(), "tok", mustRef("octo", "hello"))
	require.NoError(t, err)

	assert.Empty(t, resp.Summary)
	assert.Equal(t, string(summary.StatusUnavailable), resp.SummaryStatus)
	assert.Equal(t, "summary generation failed", resp.SummaryError)
	assert.Equal(t, 4, resp.Count)
}
