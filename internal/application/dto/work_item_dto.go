package dto

import "gitglimpse-core/internal/domain/activity"

// WorkItemResponse represents an issue or a pull request
type WorkItemResponse struct {
	Number   int      `json:"number"`
	Title    string   `json:"title"`
	State    string   `json:"state"`
	Author   *string  `json:"author"`
	Labels   []string `json:"labels"`
	Comments int      `json:"comments"`
	HTMLURL  string   `json:"html_url"`
	Draft    bool     `json:"draft,omitempty"`
	Body     string   `json:"body,omitempty"`
}

// WorkItemListResponse lists the open items of one repository
type WorkItemListResponse struct {
	Repo  string              `json:"repo"`
	Count int                 `json:"count"`
	Items []*WorkItemResponse `json:"items"`
}

// WorkItemSummaryResponse is an AI summary of one repository's open items
type WorkItemSummaryResponse struct {
	Repo    string   `json:"repo"`
	Count   int      `json:"count"`
	Authors []string `json:"authors"`
	SummaryFields
}

// OwnerRepositoryItems groups the open items of one repository of an owner
type OwnerRepositoryItems struct {
	Repo  string              `json:"repo"`
	Count int                 `json:"count"`
	Items []*WorkItemResponse `json:"items"`
}

// OwnerWorkItemListResponse lists open items across an owner's repositories
type OwnerWorkItemListResponse struct {
	Owner        string                  `json:"owner"`
	Repositories []*OwnerRepositoryItems `json:"repositories"`
	Total        int                     `json:"total"`
}

// OwnerRepositoryStat is the open item count of one repository
type OwnerRepositoryStat struct {
	Repo  string `json:"repo"`
	Count int    `json:"count"`
}

// OwnerWorkItemSummaryResponse is an AI summary across an owner's repositories
type OwnerWorkItemSummaryResponse struct {
	Owner        string                 `json:"owner"`
	Repositories []*OwnerRepositoryStat `json:"repositories"`
	Total        int                    `json:"total"`
	Authors      []string               `json:"authors"`
	SummaryFields
}

// NewWorkItemResponse converts a work item. Bodies are only included when
// withBody is set.
func NewWorkItemResponse(item *activity.WorkItem, withBody bool) *WorkItemResponse {
	resp := &WorkItemResponse{
		Number:   item.Number,
		Title:    item.Title,
		State:    item.State,
		Labels:   item.Labels,
		Comments: item.Comments,
		HTMLURL:  item.HTMLURL,
		Draft:    item.Draft,
	}
	if item.Author != "" {
		author := item.Author
		resp.Author = &author
	}
	if resp.Labels == nil {
		resp.Labels = []string{}
	}
	if withBody {
		resp.Body = item.Body
	}
	return resp
}

func NewWorkItemResponses(items []*activity.WorkItem, withBody bool) []*WorkItemResponse {
	out := make([]*WorkItemResponse, len(items))
	for i, item := range items {
		out[i] = NewWorkItemResponse(item, withBody)
	}
	return out
}
