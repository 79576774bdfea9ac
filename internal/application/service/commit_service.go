package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gitglimpse-core/internal/application/dto"
	"gitglimpse-core/internal/domain/activity"
	"gitglimpse-core/internal/domain/summary"
	"gitglimpse-core/internal/logging"
)

const defaultCommitPerPage = 30

// CommitService handles commit listing and summaries
type CommitService struct {
	githubService activity.GitHubService
	summarizer    summary.Summarizer
	logger        *slog.Logger
}

// NewCommitService creates a new commit service
func NewCommitService(githubService activity.GitHubService, summarizer summary.Summarizer, logger *slog.Logger) *CommitService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &CommitService{
		githubService: githubService,
		summarizer:    summarizer,
		logger:        logger,
	}
}

// ListLatest returns one page of the most recent commits
func (s *CommitService) ListLatest(ctx context.Context, accessToken string, ref activity.RepoRef, page, perPage int) (*dto.CommitListResponse, error) {
	if page < 1 {
		page = 1
	}
	switch {
	case perPage <= 0:
		perPage = defaultCommitPerPage
	case perPage > maxPerPage:
		perPage = maxPerPage
	}

	commits, err := s.githubService.ListCommitsPage(ctx, accessToken, ref, activity.CommitListOptions{Page: page, PerPage: perPage})
	if err != nil {
		return nil, err
	}

	return &dto.CommitListResponse{
		Repo:    ref.String(),
		Page:    page,
		PerPage: perPage,
		Count:   len(commits),
		Items:   dto.NewCommitResponses(commits),
	}, nil
}

// ListByDate returns every commit authored on one UTC day
func (s *CommitService) ListByDate(ctx context.Context, accessToken string, ref activity.RepoRef, date string) (*dto.CommitListResponse, error) {
	day, err := activity.ParseDay(date)
	if err != nil {
		return nil, err
	}

	commits, err := s.githubService.ListCommits(ctx, accessToken, ref, activity.CommitListOptions{Since: day.Since, Until: day.Until})
	if err != nil {
		return nil, err
	}

	return &dto.CommitListResponse{
		Repo:  ref.String(),
		Date:  day.Date,
		Since: &day.Since,
		Until: &day.Until,
		Count: len(commits),
		Items: dto.NewCommitResponses(commits),
	}, nil
}

// SummarizeLatest summarizes the most recent commits
func (s *CommitService) SummarizeLatest(ctx context.Context, accessToken string, ref activity.RepoRef) (*dto.CommitSummaryResponse, error) {
	commits, err := s.githubService.ListCommitsPage(ctx, accessToken, ref, activity.CommitListOptions{Page: 1, PerPage: summary.LimitLatestCommits})
	if err != nil {
		return nil, err
	}

	_, authors := activity.MergeAuthors(commits)
	resp := &dto.CommitSummaryResponse{
		Repo:    ref.String(),
		Count:   len(commits),
		Authors: authors,
	}

	if len(commits) == 0 {
		resp.SummaryFields = dto.NewSummaryFields(summary.NoActivity("No commits found."), "")
		return resp, nil
	}

	lines := make([]string, len(commits))
	for i, c := range commits {
		lines[i] = "- " + strings.TrimSpace(c.Message)
	}
	lines, note := summary.Cap(lines, summary.LimitLatestCommits, "commits")

	prompt := summary.Prompt(fmt.Sprintf(`Summarize the latest commits in %s.
Describe the main changes and what they are for. Be concise.`, ref), lines)

	result := s.summarizer.Summarize(ctx, prompt)
	logSummaryResult(s.logger, "latest commits", result)
	resp.SummaryFields = dto.NewSummaryFields(result, note)
	return resp, nil
}

// SummarizeByDate summarizes one UTC day of commits with the merged list
// of authors
func (s *CommitService) SummarizeByDate(ctx context.Context, accessToken string, ref activity.RepoRef, date string) (*dto.CommitSummaryResponse, error) {
	day, err := activity.ParseDay(date)
	if err != nil {
		return nil, err
	}

	commits, err := s.githubService.ListCommits(ctx, accessToken, ref, activity.CommitListOptions{Since: day.Since, Until: day.Until})
	if err != nil {
		return nil, err
	}

	_, authors := activity.MergeAuthors(commits)
	resp := &dto.CommitSummaryResponse{
		Repo:    ref.String(),
		Date:    day.Date,
		Count:   len(commits),
		Authors: authors,
	}

	if len(commits) == 0 {
		resp.SummaryFields = dto.NewSummaryFields(summary.NoActivity(fmt.Sprintf("No commits on %s.", day.Date)), "")
		return resp, nil
	}

	lines := make([]string, len(commits))
	for i, c := range commits {
		lines[i] = fmt.Sprintf("- %s (%s)", strings.TrimSpace(c.Message), commitAuthorName(c))
	}
	lines, note := summary.Cap(lines, summary.LimitDayCommits, "commits")

	prompt := summary.Prompt(fmt.Sprintf(`Summarize the commits made to %s on %s (UTC).
Describe what was worked on and by whom. Be concise.
Authors: %s.`, ref, day.Date, strings.Join(authors, ", ")), lines)

	result := s.summarizer.Summarize(ctx, prompt)
	logSummaryResult(s.logger, "commits by date", result)
	resp.SummaryFields = dto.NewSummaryFields(result, note)
	return resp, nil
}

func commitAuthorName(c *activity.Commit) string {
	name := activity.AuthorIdentity{Login: c.Author.Login, Name: c.Author.Name, Email: c.Author.Email}.DisplayName()
	if name == "" {
		return "unknown"
	}
	return name
}
