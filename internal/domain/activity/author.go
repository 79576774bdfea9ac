package activity

import (
	"sort"
	"strings"
)

// RawIdentity is the author information carried by a single record. Empty
// strings mean the field is unknown.
type RawIdentity struct {
	Login string
	Name  string
	Email string
}

// AuthorIdentity is the merged identity of one contributor.
type AuthorIdentity struct {
	Login string
	Name  string
	Email string
}

// DisplayName prefers the login over the display name, then the email.
func (a AuthorIdentity) DisplayName() string {
	switch {
	case a.Login != "":
		return a.Login
	case a.Name != "":
		return a.Name
	default:
		return a.Email
	}
}

// Identified is implemented by records that carry author information.
type Identified interface {
	Identity() RawIdentity
}

// MergeKey returns the deduplication key of an identity: the case-folded
// login, else the case-folded email, else the normalized name. It returns
// "" when the identity has none of them.
func MergeKey(id RawIdentity) string {
	if login := strings.TrimSpace(id.Login); login != "" {
		return "login:" + strings.ToLower(login)
	}
	if email := strings.TrimSpace(id.Email); email != "" {
		return "email:" + strings.ToLower(email)
	}
	if name := normalizeName(id.Name); name != "" {
		return "name:" + name
	}
	return ""
}

// normalizeName trims, case-folds and collapses hyphens, underscores and
// whitespace runs into single spaces.
func normalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return strings.Join(strings.Fields(name), " ")
}

// MergeAuthors deduplicates the authors of records. It returns the merged
// identities keyed by merge key and the sorted, deduplicated display names.
// For identities sharing a key, each field keeps the first non-empty value
// seen. Records without login, name and email are ignored.
func MergeAuthors[T Identified](records []T) (map[string]AuthorIdentity, []string) {
	merged := make(map[string]AuthorIdentity)

	for _, record := range records {
		raw := record.Identity()
		key := MergeKey(raw)
		if key == "" {
			continue
		}

		current := merged[key]
		if current.Login == "" {
			current.Login = strings.TrimSpace(raw.Login)
		}
		if current.Name == "" {
			current.Name = strings.TrimSpace(raw.Name)
		}
		if current.Email == "" {
			current.Email = strings.TrimSpace(raw.Email)
		}
		merged[key] = current
	}

	seen := make(map[string]struct{}, len(merged))
	names := make([]string, 0, len(merged))
	for _, identity := range merged {
		name := identity.DisplayName()
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)

	return merged, names
}
