package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups every HTTP handler served by the API
type Handlers struct {
	Health       *HealthHandler
	Auth         *AuthHandler
	Repositories *RepositoryHandler
	Commits      *CommitHandler
	Issues       *IssueHandler
	PullRequests *PullRequestHandler
}

// RegisterRoutes mounts every route on router. requireSession guards the
// routes that act on behalf of a signed-in user.
func RegisterRoutes(router gin.IRouter, h Handlers, requireSession gin.HandlerFunc) {
	// No auth required
	router.GET("/health", h.Health.Health)
	router.GET("/auth", h.Auth.Login)
	router.GET("/auth/callback", h.Auth.Callback)

	auth := router.Group("/auth")
	auth.Use(requireSession)
	{
		auth.GET("/me", h.Auth.Me)
		auth.POST("/logout", h.Auth.Logout)
	}

	router.GET("/repos", requireSession, h.Repositories.ListRepositories)

	commits := router.Group("/commits")
	commits.Use(requireSession)
	{
		commits.GET("/:owner/:repo", h.Commits.ListLatest)
		commits.GET("/:owner/:repo/by-date/:date", h.Commits.ListByDate)
		commits.GET("/:owner/:repo/summary", h.Commits.SummarizeLatest)
		commits.GET("/:owner/:repo/summary/:date", h.Commits.SummarizeByDate)
	}

	issues := router.Group("/issues")
	issues.Use(requireSession)
	{
		issues.GET("/owner/:owner/open", h.Issues.ListForOwner)
		issues.GET("/owner/:owner/open/summary", h.Issues.SummarizeForOwner)
		issues.GET("/:owner/:repo", h.Issues.List)
		issues.GET("/:owner/:repo/summary", h.Issues.Summarize)
	}

	prs := router.Group("/prs")
	prs.Use(requireSession)
	{
		prs.GET("/owner/:owner/open", h.PullRequests.ListForOwner)
		prs.GET("/owner/:owner/open/summary", h.PullRequests.SummarizeForOwner)
		prs.GET("/:owner/:repo", h.PullRequests.List)
		prs.GET("/:owner/:repo/summary", h.PullRequests.Summarize)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
