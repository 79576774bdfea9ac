package dto

import "gitglimpse-core/internal/domain/activity"

// PageRefResponse points at another page of a listing
type PageRefResponse struct {
	URL  string `json:"url,omitempty"`
	Page int    `json:"page"`
}

// PageInfoResponse holds the next/prev/first/last cursors
type PageInfoResponse struct {
	Next  *PageRefResponse `json:"next"`
	Prev  *PageRefResponse `json:"prev"`
	First *PageRefResponse `json:"first"`
	Last  *PageRefResponse `json:"last"`
}

func NewPageInfoResponse(info *activity.PageInfo) PageInfoResponse {
	if info == nil {
		return PageInfoResponse{}
	}
	return PageInfoResponse{
		Next:  newPageRef(info.Next),
		Prev:  newPageRef(info.Prev),
		First: newPageRef(info.First),
		Last:  newPageRef(info.Last),
	}
}

func newPageRef(ref *activity.PageRef) *PageRefResponse {
	if ref == nil {
		return nil
	}
	return &PageRefResponse{URL: ref.URL, Page: ref.Page}
}
