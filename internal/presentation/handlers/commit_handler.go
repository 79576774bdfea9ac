package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gitglimpse-core/internal/application/service"
)

// CommitHandler handles commit-related HTTP requests
type CommitHandler struct {
	commitService *service.CommitService
}

// NewCommitHandler creates a new commit handler
func NewCommitHandler(commitService *service.CommitService) *CommitHandler {
	return &CommitHandler{commitService: commitService}
}

// ListLatest handles GET /commits/:owner/:repo
// @Summary List recent commits
// @Tags Commits
// @Produce json
// @Security SessionAuth
// @Param owner path string true "Repository owner"
// @Param repo path string true "Repository name"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page (max 100)" default(30)
// @Success 200 {object} dto.CommitListResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /commits/{owner}/{repo} [get]
func (h *CommitHandler) ListLatest(c *gin.Context) {
	token, ok := accessToken(c)
	if !ok {
		return
	}
	ref, ok := repoRef(c)
	if !ok {
		return
	}
	page, ok := queryInt(c, "page")
	if !ok {
		return
	}
	perPage, ok := queryInt(c, "per_page")
	if !ok {
		return
	}

	resp, err := h.commitService.ListLatest(c.Request.Context(), token, ref, page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListByDate handles GET /commits/:owner/:repo/by-date/:date
// @Summary List the commits of one UTC day
// @Tags Commits
// @Produce json
// @Security SessionAuth
// @Param owner path string true "Repository owner"
// @Param repo path string true "Repository name"
// @Param date path string true "Day as YYYY-MM-DD"
// @Success 200 {object} dto.CommitListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /commits/{owner}/{repo}/by-date/{date} [get]
func (h *CommitHandler) ListByDate(c *gin.Context) {
	token, ok := accessToken(c)
	if !ok {
		return
	}
	ref, ok := repoRef(c)
	if !ok {
		return
	}

	resp, err := h.commitService.ListByDate(c.Request.Context(), token, ref, c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SummarizeLatest handles GET /commits/:owner/:repo/summary
// @Summary Summarize the latest commits
// @Description AI summary of the 10 most recent commits
// @Tags Commits
// @Produce json
// @Security SessionAuth
// @Param owner path string true "Repository owner"
// @Param repo path string true "Repository name"
// @Success 200 {object} dto.CommitSummaryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /commits/{owner}/{repo}/summary [get]
func (h *CommitHandler) SummarizeLatest(c *gin.Context) {
	token, ok := accessToken(c)
	if !ok {
		return
	}
	ref, ok := repoRef(c)
	if !ok {
		return
	}

	resp, err := h.commitService.SummarizeLatest(c.Request.Context(), token, ref)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSummary(c, resp.SummaryFields, resp)
}

// SummarizeByDate handles GET /commits/:owner/:repo/summary/:date
// @Summary Summarize one UTC day of commits
// @Description AI summary of a day's commits with the merged author list
// @Tags Commits
// @Produce json
// @Security SessionAuth
// @Param owner path string true "Repository owner"
// @Param repo path string true "Repository name"
// @Param date path string true "Day as YYYY-MM-DD"
// @Success 200 {object} dto.CommitSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /commits/{owner}/{repo}/summary/{date} [get]
func (h *CommitHandler) SummarizeByDate(c *gin.Context) {
	token, ok := accessToken(c)
	if !ok {
		return
	}
	ref, ok := repoRef(c)
	if !ok {
		return
	}

	resp, err := h.commitService.SummarizeByDate(c.Request.Context(), token, ref, c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSummary(c, resp.SummaryFields, resp)
}
