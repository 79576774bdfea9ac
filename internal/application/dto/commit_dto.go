package dto

import (
	"time"

	"gitglimpse-core/internal/domain/activity"
)

// CommitAuthorResponse is the git author of a commit
type CommitAuthorResponse struct {
	Login string    `json:"login,omitempty"`
	Name  string    `json:"name,omitempty"`
	Email string    `json:"email,omitempty"`
	Date  time.Time `json:"date"`
}

// CommitResponse represents a commit in API responses
type CommitResponse struct {
	SHA     string               `json:"sha"`
	Message string               `json:"message"`
	HTMLURL string               `json:"html_url"`
	Author  CommitAuthorResponse `json:"author"`
}

// CommitListResponse is a list of commits, either one page of the latest
// commits or every commit of one day
type CommitListResponse struct {
	Repo    string            `json:"repo"`
	Date    string            `json:"date,omitempty"`
	Since   *time.Time        `json:"since,omitempty"`
	Until   *time.Time        `json:"until,omitempty"`
	Page    int               `json:"page,omitempty"`
	PerPage int               `json:"per_page,omitempty"`
	Count   int               `json:"count"`
	Items   []*CommitResponse `json:"items"`
}

// CommitSummaryResponse is an AI summary of commits
type CommitSummaryResponse struct {
	Repo    string   `json:"repo"`
	Date    string   `json:"date,omitempty"`
	Count   int      `json:"count"`
	Authors []string `json:"authors"`
	SummaryFields
}

func NewCommitResponses(commits []*activity.Commit) []*CommitResponse {
	out := make([]*CommitResponse, len(commits))
	for i, c := range commits {
		out[i] = &CommitResponse{
			SHA:     c.SHA,
			Message: c.Message,
			HTMLURL: c.HTMLURL,
			Author: CommitAuthorResponse{
				Login: c.Author.Login,
				Name:  c.Author.Name,
				Email: c.Author.Email,
				Date:  c.Author.Date,
			},
		}
	}
	return out
}
