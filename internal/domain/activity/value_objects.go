package activity

import (
	"fmt"
	"strings"
)

// RepoRef identifies a repository by owner and name.
type RepoRef struct {
	owner string
	name  string
}

// NewRepoRef creates a RepoRef with validation. Neither part may be empty
// or contain a slash.
func NewRepoRef(owner, name string) (RepoRef, error) {
	owner = strings.TrimSpace(owner)
	name = strings.TrimSpace(name)

	if owner == "" {
		return RepoRef{}, ErrInvalidRepoRef(owner+"/"+name, fmt.Errorf("owner cannot be empty"))
	}
	if name == "" {
		return RepoRef{}, ErrInvalidRepoRef(owner+"/"+name, fmt.Errorf("repository name cannot be empty"))
	}
	if strings.Contains(owner, "/") || strings.Contains(name, "/") {
		return RepoRef{}, ErrInvalidRepoRef(owner+"/"+name, fmt.Errorf("owner and name cannot contain '/'"))
	}

	return RepoRef{owner: owner, name: name}, nil
}

// ParseFullName splits "owner/name" at the single slash.
func ParseFullName(fullName string) (RepoRef, error) {
	owner, name, ok := strings.Cut(fullName, "/")
	if !ok {
		return RepoRef{}, ErrInvalidRepoRef(fullName, fmt.Errorf("expected owner/name"))
	}
	return NewRepoRef(owner, name)
}

func (r RepoRef) Owner() string {
	return r.owner
}

func (r RepoRef) Name() string {
	return r.name
}

func (r RepoRef) String() string {
	return r.owner + "/" + r.name
}

// NewOwner validates an owner login for owner-scope queries.
func NewOwner(owner string) (string, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" || strings.Contains(owner, "/") {
		return "", ErrInvalidRepoRef(owner, fmt.Errorf("invalid owner"))
	}
	return owner, nil
}
