package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"gitglimpse-core/internal/domain/activity"
	"gitglimpse-core/internal/domain/session"
	"gitglimpse-core/internal/middleware"
)

// accessToken returns the GitHub token of the request's session
func accessToken(c *gin.Context) (string, bool) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		respondError(c, activity.ErrNotAuthenticated())
		return "", false
	}
	return sess.AccessToken(), true
}

func currentSession(c *gin.Context) (*session.Session, bool) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		respondError(c, activity.ErrNotAuthenticated())
		return nil, false
	}
	return sess, true
}

// repoRef builds the repository reference from the :owner and :repo params
func repoRef(c *gin.Context) (activity.RepoRef, bool) {
	ref, err := activity.NewRepoRef(c.Param("owner"), c.Param("repo"))
	if err != nil {
		respondError(c, err)
		return activity.RepoRef{}, false
	}
	return ref, true
}

// queryInt parses an optional integer query parameter; absent means 0
func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		respondError(c, activity.ErrInvalidQuery(name, raw))
		return 0, false
	}
	return n, true
}

// queryBool accepts true/false/1/0 and friends; absent means false
func queryBool(c *gin.Context, name string) (bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return false, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		respondError(c, activity.ErrInvalidQuery(name, raw))
		return false, false
	}
	return v, true
}
