package dto

import (
	"time"

	"gitglimpse-core/internal/domain/activity"
)

// RepositoryResponse represents repository data in API responses
type RepositoryResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Owner           string    `json:"owner"`
	Description     *string   `json:"description"`
	HTMLURL         string    `json:"html_url"`
	DefaultBranch   string    `json:"default_branch"`
	Private         bool      `json:"private"`
	Fork            bool      `json:"fork"`
	Archived        bool      `json:"archived"`
	Language        *string   `json:"language"`
	License         *string   `json:"license"`
	Stars           int       `json:"stargazers_count"`
	Watchers        int       `json:"watchers_count"`
	Forks           int       `json:"forks_count"`
	OpenIssuesCount int       `json:"open_issues_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	PushedAt        time.Time `json:"pushed_at"`
}

// RepositoryFilters echoes the filters a listing was computed with
type RepositoryFilters struct {
	Q           string `json:"q,omitempty"`
	Language    string `json:"language,omitempty"`
	MinStars    *int   `json:"min_stars,omitempty"`
	Sort        string `json:"sort"`
	Direction   string `json:"direction,omitempty"`
	Visibility  string `json:"visibility,omitempty"`
	Affiliation string `json:"affiliation,omitempty"`
	Type        string `json:"type,omitempty"`
}

// RepositoryListResponse represents a paginated list of repositories
type RepositoryListResponse struct {
	Page     int                   `json:"page"`
	PerPage  int                   `json:"per_page"`
	Filters  RepositoryFilters     `json:"filters"`
	PageInfo PageInfoResponse      `json:"page_info"`
	Count    int                   `json:"count"`
	Items    []*RepositoryResponse `json:"items"`
	SummaryFields
}

func NewRepositoryResponse(r *activity.Repository) *RepositoryResponse {
	return &RepositoryResponse{
		ID:              r.ID,
		Name:            r.Name,
		FullName:        r.FullName,
		Owner:           r.OwnerLogin,
		Description:     r.Description,
		HTMLURL:         r.HTMLURL,
		DefaultBranch:   r.DefaultBranch,
		Private:         r.Private,
		Fork:            r.Fork,
		Archived:        r.Archived,
		Language:        r.Language,
		License:         r.License,
		Stars:           r.StargazersCount,
		Watchers:        r.WatchersCount,
		Forks:           r.ForksCount,
		OpenIssuesCount: r.OpenIssuesCount,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		PushedAt:        r.PushedAt,
	}
}
