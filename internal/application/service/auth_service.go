package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"

	"gitglimpse-core/internal/application/dto"
	"gitglimpse-core/internal/config"
	"gitglimpse-core/internal/domain/activity"
	"gitglimpse-core/internal/domain/session"
	"gitglimpse-core/internal/logging"
)

const sessionTokenIssuer = "gitglimpse"

// LoginResult is returned once the OAuth callback has created a session
type LoginResult struct {
	SessionToken string
	ExpiresAt    time.Time
	User         *dto.UserResponse
}

// AuthService handles the GitHub OAuth flow and session tokens
type AuthService struct {
	oauth         *oauth2.Config
	githubService activity.GitHubService
	sessions      session.Repository
	secret        []byte
	ttl           time.Duration
	logger        *slog.Logger
}

// NewOAuthConfig builds the GitHub OAuth client configuration
func NewOAuthConfig(cfg *config.GitHubConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       cfg.Scopes,
		Endpoint:     githuboauth.Endpoint,
	}
}

// NewAuthService creates a new auth service
func NewAuthService(oauthConfig *oauth2.Config, githubService activity.GitHubService, sessions session.Repository, cfg *config.SessionConfig, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &AuthService{
		oauth:         oauthConfig,
		githubService: githubService,
		sessions:      sessions,
		secret:        []byte(cfg.Secret),
		ttl:           cfg.TTL,
		logger:        logger,
	}
}

// NewState returns a random OAuth state value
func (s *AuthService) NewState() string {
	return uuid.NewString()
}

// AuthCodeURL returns the GitHub authorization URL for state
func (s *AuthService) AuthCodeURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

// CompleteLogin verifies the callback, exchanges the code and opens a new
// session for the GitHub account behind it
func (s *AuthService) CompleteLogin(ctx context.Context, code, state, expectedState string) (*LoginResult, error) {
	if code == "" {
		return nil, session.ErrInvalidCallback("missing authorization code")
	}
	if state == "" || subtle.ConstantTimeCompare([]byte(state), []byte(expectedState)) != 1 {
		return nil, session.ErrInvalidCallback("oauth state mismatch")
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, activity.ErrUpstream("oauth token exchange", err)
	}

	user, err := s.githubService.GetAuthenticatedUser(ctx, token.AccessToken)
	if err != nil {
		return nil, err
	}

	sess, err := session.NewSession(token.AccessToken, user.Login, s.ttl)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	signed, err := s.signSessionToken(sess)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user signed in", "login", user.Login, "session_id", sess.ID().String())

	return &LoginResult{
		SessionToken: signed,
		ExpiresAt:    sess.ExpiresAt(),
		User:         dto.NewUserResponse(user),
	}, nil
}

func (s *AuthService) signSessionToken(sess *session.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    sessionTokenIssuer,
		Subject:   sess.ID().String(),
		IssuedAt:  jwt.NewNumericDate(sess.CreatedAt()),
		ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt()),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Authenticate resolves a session token to a live session
func (s *AuthService) Authenticate(ctx context.Context, raw string) (*session.Session, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(sessionTokenIssuer))
	if err != nil {
		return nil, session.ErrInvalidToken(err)
	}

	id, err := session.ParseSessionID(claims.Subject)
	if err != nil {
		return nil, session.ErrInvalidToken(err)
	}

	return s.sessions.FindByID(ctx, id)
}

// CurrentUser returns the GitHub identity of a session
func (s *AuthService) CurrentUser(ctx context.Context, sess *session.Session) (*dto.UserResponse, error) {
	user, err := s.githubService.GetAuthenticatedUser(ctx, sess.AccessToken())
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// Logout ends a session
func (s *AuthService) Logout(ctx context.Context, sess *session.Session) error {
	if err := s.sessions.Delete(ctx, sess.ID()); err != nil {
		return err
	}
	s.logger.Info("user signed out", "login", sess.Login(), "session_id", sess.ID().String())
	return nil
}

// PurgeExpiredSessions removes sessions past their expiry
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.sessions.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Debug("purged expired sessions", "count", n)
	}
	return n, nil
}
