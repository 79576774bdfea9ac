package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gitglimpse-core/internal/application/service"
)

// workItemHandler serves the four issue or pull request routes
type workItemHandler struct {
	service *service.WorkItemService
}

func (h *workItemHandler) list(c *gin.Context) {
	token, ok := accessToken(c)
	if !ok {
		return
	}
	ref, ok := repoRef(c)
	if !ok {
		return
	}

	resp, err := h.service.List(c.Request.Context(), token, ref)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *workItemHandler) summarize(c *gin.Context) {
	token, ok := accessToken(c)
	if !ok {
		return
	}
	ref, ok := repoRef(c)
	if !ok {
		return
	}

	resp, err := h.service.Summarize(c.Request.Context(), token, ref)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSummary(c, resp.SummaryFields, resp)
}

func (h *workItemHandler) listForOwner(c *gin.Context) {
	token, ok := accessToken(c)
	if !ok {
		return
	}

	resp, err := h.service.ListForOwner(c.Request.Context(), token, c.Param("owner"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *workItemHandler) summarizeForOwner(c *gin.Context) {
	token, ok := accessToken(c)
	if !ok {
		return
	}

	resp, err := h.service.SummarizeForOwner(c.Request.Context(), token, c.Param("owner"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSummary(c, resp.SummaryFields, resp)
}

// IssueHandler handles open issue requests
type IssueHandler struct {
	workItemHandler
}

// NewIssueHandler creates a new issue handler
func NewIssueHandler(issueService *service.WorkItemService) *IssueHandler {
	return &IssueHandler{workItemHandler{service: issueService}}
}

// List handles GET /issues/:owner/:repo
// @Summary List open issues
// @Description Every open issue of a repository, pull requests excluded
// @Tags Issues
// @Produce json
// @Security SessionAuth
// @Param owner path string true "Repository owner"
// @Param repo path string true "Repository name"
// @Success 200 {object} dto.WorkItemListResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /issues/{owner}/{repo} [get]
func (h *IssueHandler) List(c *gin.Context) { h.list(c) }

// Summarize handles GET /issues/:owner/:repo/summary
// @Summary Summarize open issues
// @Description AI summary of up to 200 open issues
// @Tags Issues
// @Produce json
// @Security SessionAuth
// @Param owner path string true "Repository owner"
// @Param repo path string true "Repository name"
// @Success 200 {object} dto.WorkItemSummaryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /issues/{owner}/{repo}/summary [get]
func (h *IssueHandler) Summarize(c *gin.Context) { h.summarize(c) }

// ListForOwner handles GET /issues/owner/:owner/open
// @Summary List open issues across an owner's repositories
// @Tags Issues
// @Produce json
// @Security SessionAuth
// @Param owner path string true "Organization or user login"
// @Success 200 {object} dto.OwnerWorkItemListResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /issues/owner/{owner}/open [get]
func (h *IssueHandler) ListForOwner(c *gin.Context) { h.listForOwner(c) }

// SummarizeForOwner handles GET /issues/owner/:owner/open/summary
// @Summary Summarize open issues across an owner's repositories
// @Description AI summary of up to 300 open issues
// @Tags Issues
// @Produce json
// @Security SessionAuth
// @Param owner path string true "Organization or user login"
// @Success 200 {object} dto.OwnerWorkItemSummaryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /issues/owner/{owner}/open/summary [get]
func (h *IssueHandler) SummarizeForOwner(c *gin.Context) { h.summarizeForOwner(c) }

// PullRequestHandler handles open pull request requests
type PullRequestHandler struct {
	workItemHandler
}

// NewPullRequestHandler creates a new pull request handler
func NewPullRequestHandler(pullRequestService *service.WorkItemService) *PullRequestHandler {
	return &PullRequestHandler{workItemHandler{service: pullRequestService}}
}

// List handles GET /prs/:owner/:repo
// @Summary List open pull requests
// @Tags Pull Requests
// @Produce json
// @Security SessionAuth
// @Param owner path string true "Repository owner"
// @Param repo path string true "Repository name"
// @Success 200 {object} dto.WorkItemListResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /prs/{owner}/{repo} [get]
func (h *PullRequestHandler) List(c *gin.Context) { h.list(c) }

// Summarize handles GET /prs/:owner/:repo/summary
// @Summary Summarize open pull requests
// @Description AI summary of up to 200 open pull requests
// @Tags Pull Requests
// @Produce json
// @Security SessionAuth
// @Param owner path string true "Repository owner"
// @Param repo path string true "Repository name"
// @Success 200 {object} dto.WorkItemSummaryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /prs/{owner}/{repo}/summary [get]
func (h *PullRequestHandler) Summarize(c *gin.Context) { h.summarize(c) }

// ListForOwner handles GET /prs/owner/:owner/open
// @Summary List open pull requests across an owner's repositories
// @Tags Pull Requests
// @Produce json
// @Security SessionAuth
// @Param owner path string true "Organization or user login"
// @Success 200 {object} dto.OwnerWorkItemListResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /prs/owner/{owner}/open [get]
func (h *PullRequestHandler) ListForOwner(c *gin.Context) { h.listForOwner(c) }

// SummarizeForOwner handles GET /prs/owner/:owner/open/summary
// @Summary Summarize open pull requests across an owner's repositories
// @Description AI summary of up to 200 open pull requests
// @Tags Pull Requests
// @Produce json
// @Security SessionAuth
// @Param owner path string true "Organization or user login"
// @Success 200 {object} dto.OwnerWorkItemSummaryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /prs/owner/{owner}/open/summary [get]
func (h *PullRequestHandler) SummarizeForOwner(c *gin.Context) { h.summarizeForOwner(c) }
