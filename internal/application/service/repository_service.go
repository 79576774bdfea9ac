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

const (
	defaultRepositoryPerPage = 20
	maxPerPage               = 100
	defaultRepositorySort    = "pushed"
)

var (
	repositorySorts      = map[string]bool{"created": true, "updated": true, "pushed": true, "full_name": true}
	repositoryDirections = map[string]bool{"asc": true, "desc": true}
)

// RepositoryQuery holds the /repos query parameters
type RepositoryQuery struct {
	Page        int
	PerPage     int
	Q           string
	Language    string
	MinStars    *int
	Sort        string
	Direction   string
	Visibility  string
	Affiliation string
	Type        string
	Summary     bool
}

// Normalize applies defaults and rejects unsupported values
func (q *RepositoryQuery) Normalize() error {
	if q.Page < 1 {
		q.Page = 1
	}
	switch {
	case q.PerPage <= 0:
		q.PerPage = defaultRepositoryPerPage
	case q.PerPage > maxPerPage:
		q.PerPage = maxPerPage
	}

	q.Q = strings.TrimSpace(q.Q)
	q.Language = strings.TrimSpace(q.Language)

	if q.Sort == "" {
		q.Sort = defaultRepositorySort
	}
	if !repositorySorts[q.Sort] {
		return activity.ErrInvalidQuery("sort", q.Sort)
	}
	if q.Direction != "" && !repositoryDirections[q.Direction] {
		return activity.ErrInvalidQuery("direction", q.Direction)
	}
	if q.MinStars != nil && *q.MinStars < 0 {
		return activity.ErrInvalidQuery("min_stars", fmt.Sprint(*q.MinStars))
	}
	return nil
}

// hasLocalFilter reports whether filtering must happen on our side
func (q *RepositoryQuery) hasLocalFilter() bool {
	return q.Q != "" || q.Language != "" || q.MinStars != nil
}

func (q *RepositoryQuery) listOptions() activity.RepositoryListOptions {
	return activity.RepositoryListOptions{
		Visibility:  q.Visibility,
		Affiliation: q.Affiliation,
		Type:        q.Type,
		Sort:        q.Sort,
		Direction:   q.Direction,
		Page:        q.Page,
		PerPage:     q.PerPage,
	}
}

func (q *RepositoryQuery) filters() dto.RepositoryFilters {
	return dto.RepositoryFilters{
		Q:           q.Q,
		Language:    q.Language,
		MinStars:    q.MinStars,
		Sort:        q.Sort,
		Direction:   q.Direction,
		Visibility:  q.Visibility,
		Affiliation: q.Affiliation,
		Type:        q.Type,
	}
}

// RepositoryService handles repository listing use cases
type RepositoryService struct {
	githubService activity.GitHubService
	summarizer    summary.Summarizer
	logger        *slog.Logger
}

// NewRepositoryService creates a new repository service
func NewRepositoryService(githubService activity.GitHubService, summarizer summary.Summarizer, logger *slog.Logger) *RepositoryService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &RepositoryService{
		githubService: githubService,
		summarizer:    summarizer,
		logger:        logger,
	}
}

// ListRepositories lists the caller's repositories. Without local filters a
// single GitHub page is proxied; with them every repository is fetched,
// filtered and paginated here.
func (s *RepositoryService) ListRepositories(ctx context.Context, accessToken string, query RepositoryQuery) (*dto.RepositoryListResponse, error) {
	if err := query.Normalize(); err != nil {
		return nil, err
	}

	var (
		items    []*activity.Repository
		pageInfo *activity.PageInfo
	)

	if query.hasLocalFilter() {
		opts := query.listOptions()
		opts.Page, opts.PerPage = 0, 0
		all, err := s.githubService.ListAllRepositories(ctx, accessToken, opts)
		if err != nil {
			return nil, err
		}
		items, pageInfo = paginate(filterRepositories(all, query), query.Page, query.PerPage)
	} else {
		page, err := s.githubService.ListRepositoriesPage(ctx, accessToken, query.listOptions())
		if err != nil {
			return nil, err
		}
		items, pageInfo = page.Items, page.PageInfo
	}

	resp := &dto.RepositoryListResponse{
		Page:     query.Page,
		PerPage:  query.PerPage,
		Filters:  query.filters(),
		PageInfo: dto.NewPageInfoResponse(pageInfo),
		Count:    len(items),
		Items:    make([]*dto.RepositoryResponse, len(items)),
	}
	for i, r := range items {
		resp.Items[i] = dto.NewRepositoryResponse(r)
	}

	if query.Summary {
		resp.SummaryFields = s.summarize(ctx, items)
	}

	return resp, nil
}

func (s *RepositoryService) summarize(ctx context.Context, repos []*activity.Repository) dto.SummaryFields {
	if len(repos) == 0 {
		return dto.NewSummaryFields(summary.NoActivity("No repositories match the current filters."), "")
	}

	lines := make([]string, len(repos))
	for i, r := range repos {
		lines[i] = repositoryLine(r)
	}
	lines, note := summary.Cap(lines, summary.LimitRepositories, "repositories")

	prompt := summary.Prompt(`Summarize the following GitHub repositories for their owner.
Group them by purpose or technology, point out the most active and notable ones. Be concise.`, lines)

	result := s.summarizer.Summarize(ctx, prompt)
	logSummaryResult(s.logger, "repositories", result)
	return dto.NewSummaryFields(result, note)
}

func repositoryLine(r *activity.Repository) string {
	var sb strings.Builder
	sb.WriteString(r.FullName)

	meta := []string{fmt.Sprintf("stars:%d", r.StargazersCount)}
	if r.Language != nil && *r.Language != "" {
		meta = append([]string{*r.Language}, meta...)
	}
	if r.Archived {
		meta = append(meta, "archived")
	}
	fmt.Fprintf(&sb, " (%s)", strings.Join(meta, ", "))

	if r.Description != nil && *r.Description != "" {
		sb.WriteString(": ")
		sb.WriteString(*r.Description)
	}
	return sb.String()
}

// filterRepositories applies q, language and min_stars
func filterRepositories(repos []*activity.Repository, query RepositoryQuery) []*activity.Repository {
	needle := strings.ToLower(query.Q)
	out := make([]*activity.Repository, 0, len(repos))

	for _, r := range repos {
		if needle != "" && !repositoryMatches(r, needle) {
			continue
		}
		if query.Language != "" && (r.Language == nil || !strings.EqualFold(*r.Language, query.Language)) {
			continue
		}
		if query.MinStars != nil && r.StargazersCount < *query.MinStars {
			continue
		}
		out = append(out, r)
	}
	return out
}

func repositoryMatches(r *activity.Repository, needle string) bool {
	if strings.Contains(strings.ToLower(r.Name), needle) || strings.Contains(strings.ToLower(r.FullName), needle) {
		return true
	}
	return r.Description != nil && strings.Contains(strings.ToLower(*r.Description), needle)
}

// paginate slices items locally and computes page-number cursors
func paginate[T any](items []T, page, perPage int) ([]T, *activity.PageInfo) {
	last := (len(items) + perPage - 1) / perPage
	if last < 1 {
		last = 1
	}

	info := &activity.PageInfo{}
	if page > 1 {
		info.First = &activity.PageRef{Page: 1}
		info.Prev = &activity.PageRef{Page: min(page-1, last)}
	}
	if page < last {
		info.Next = &activity.PageRef{Page: page + 1}
		info.Last = &activity.PageRef{Page: last}
	}

	start := (page - 1) * perPage
	if start >= len(items) {
		return []T{}, info
	}
	end := min(start+perPage, len(items))
	return items[start:end], info
}

func logSummaryResult(logger *slog.Logger, scope string, result summary.Result) {
	switch result.Status {
	case summary.StatusUnavailable:
		logger.Warn("summary unavailable", "scope", scope, "reason", result.Reason)
	case summary.StatusQuotaExhausted:
		logger.Warn("summary skipped, provider quota exhausted", "scope", scope, "retry_after", result.RetryAfter)
	}
}
