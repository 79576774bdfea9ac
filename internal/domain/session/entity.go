package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SessionID is a value object representing a session's unique identifier
type SessionID struct {
	value uuid.UUID
}

// NewSessionID creates a new random SessionID
func NewSessionID() SessionID {
	return SessionID{value: uuid.New()}
}

// ParseSessionID parses a string into a SessionID
func ParseSessionID(id string) (SessionID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return SessionID{}, fmt.Errorf("invalid session ID format: %w", err)
	}
	return SessionID{value: uid}, nil
}

func (id SessionID) String() string {
	return id.value.String()
}

func (id SessionID) UUID() uuid.UUID {
	return id.value
}

// Session binds one dashboard user to the GitHub access token obtained
// through OAuth. Every GitHub call made on the user's behalf uses it.
type Session struct {
	id          SessionID
	accessToken string
	login       string
	createdAt   time.Time
	expiresAt   time.Time
}

// NewSession creates a session valid for ttl
func NewSession(accessToken, login string, ttl time.Duration) (*Session, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, ErrInvalidSessionData("access token", fmt.Errorf("access token cannot be empty"))
	}
	if ttl <= 0 {
		return nil, ErrInvalidSessionData("ttl", fmt.Errorf("ttl must be positive"))
	}

	now := time.Now().UTC()
	return &Session{
		id:          NewSessionID(),
		accessToken: accessToken,
		login:       login,
		createdAt:   now,
		expiresAt:   now.Add(ttl),
	}, nil
}

// Reconstitute recreates a Session from persistence
func Reconstitute(id, accessToken, login string, createdAt, expiresAt time.Time) (*Session, error) {
	sessionID, err := ParseSessionID(id)
	if err != nil {
		return nil, ErrInvalidSessionData("id", err)
	}

	return &Session{
		id:          sessionID,
		accessToken: accessToken,
		login:       login,
		createdAt:   createdAt,
		expiresAt:   expiresAt,
	}, nil
}

func (s *Session) ID() SessionID {
	return s.id
}

func (s *Session) AccessToken() string {
	return s.accessToken
}

func (s *Session) Login() string {
	return s.login
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Session) ExpiresAt() time.Time {
	return s.expiresAt
}

// IsExpired reports whether the session is no longer usable at now
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.expiresAt)
}
