package handlers

import (
	"github.com/gin-gonic/gin"

	"gitglimpse-core/internal/application/service"
)

// RepositoryHandler handles repository-related HTTP requests
type RepositoryHandler struct {
	repositoryService *service.RepositoryService
}

// NewRepositoryHandler creates a new repository handler
func NewRepositoryHandler(repositoryService *service.RepositoryService) *RepositoryHandler {
	return &RepositoryHandler{
		repositoryService: repositoryService,
	}
}

// ListRepositories handles GET /repos
// @Summary List the signed-in user's repositories
// @Description Filtered and paginated repository list with an optional AI summary of the page
// @Tags Repositories
// @Produce json
// @Security SessionAuth
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page (max 100)" default(20)
// @Param q query string false "Case-insensitive match on name or description"
// @Param language query string false "Primary language"
// @Param min_stars query int false "Minimum stargazers"
// @Param sort query string false "created, updated, pushed or full_name" default(pushed)
// @Param direction query string false "asc or desc"
// @Param visibility query string false "all, public or private"
// @Param affiliation query string false "owner, collaborator, organization_member"
// @Param type query string false "all, owner, public, private, member"
// @Param summary query bool false "Include an AI summary"
// @Success 200 {object} dto.RepositoryListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /repos [get]
func (h *RepositoryHandler) ListRepositories(c *gin.Context) {
	token, ok := accessToken(c)
	if !ok {
		return
	}

	query := service.RepositoryQuery{
		Q:           c.Query("q"),
		Language:    c.Query("language"),
		Sort:        c.Query("sort"),
		Direction:   c.Query("direction"),
		Visibility:  c.Query("visibility"),
		Affiliation: c.Query("affiliation"),
		Type:        c.Query("type"),
	}
	if query.Page, ok = queryInt(c, "page"); !ok {
		return
	}
	if query.PerPage, ok = queryInt(c, "per_page"); !ok {
		return
	}
	if c.Query("min_stars") != "" {
		minStars, ok := queryInt(c, "min_stars")
		if !ok {
			return
		}
		query.MinStars = &minStars
	}
	if query.Summary, ok = queryBool(c, "summary"); !ok {
		return
	}

	resp, err := h.repositoryService.ListRepositories(c.Request.Context(), token, query)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSummary(c, resp.SummaryFields, resp)
}
