package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gitglimpse-core/internal/domain/session"
)

// ContextKeySession is the gin context key holding the *session.Session
const ContextKeySession = "session"

// SessionAuthenticator resolves a session token to a live session
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*session.Session, error)
}

// AuthMiddleware requires a valid dashboard session
type AuthMiddleware struct {
	authenticator SessionAuthenticator
	cookieName    string
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(authenticator SessionAuthenticator, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		authenticator: authenticator,
		cookieName:    cookieName,
	}
}

// RequireSession is a Gin middleware that requires a session. An explicit
// "Authorization: Bearer" header wins over the session cookie.
func (am *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := am.extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "not authenticated, sign in with GitHub first",
				"code":  "NOT_AUTHENTICATED",
			})
			return
		}

		sess, err := am.authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			code := session.CodeOf(err)
			if code == "" {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "failed to load session",
					"code":  "INTERNAL_ERROR",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "session is invalid or expired, sign in again",
				"code":  code,
			})
			return
		}

		c.Set(ContextKeySession, sess)
		c.Next()
	}
}

func (am *AuthMiddleware) extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		if token = strings.TrimSpace(token); token != "" {
			return token
		}
	}

	if cookie, err := c.Cookie(am.cookieName); err == nil && cookie != "" {
		return cookie
	}
	return ""
}

// SessionFrom returns the session set by RequireSession
func SessionFrom(c *gin.Context) (*session.Session, bool) {
	value, exists := c.Get(ContextKeySession)
	if !exists {
		return nil, false
	}
	sess, ok := value.(*session.Session)
	return sess, ok
}
