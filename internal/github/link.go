package github

import (
	"net/url"
	"strconv"
	"strings"
)

// Link is one entry of a Link response header
type Link struct {
	URL  string
	Page int
}

// Links maps a relation ("next", "prev", "first", "last") to its link
type Links map[string]Link

// ParseLinks parses an RFC 8288 Link header as sent by GitHub list
// endpoints. The page number is taken from the URL's page query parameter
// when present.
func ParseLinks(header string) Links {
	links := make(Links)
	if header == "" {
		return links
	}

	for _, part := range strings.Split(header, ",") {
		segments := strings.Split(strings.TrimSpace(part), ";")
		if len(segments) < 2 {
			continue
		}

		target := strings.TrimSpace(segments[0])
		if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			continue
		}
		target = target[1 : len(target)-1]

		for _, param := range segments[1:] {
			param = strings.TrimSpace(param)
			if !strings.HasPrefix(param, "rel=") {
				continue
			}
			rel := strings.Trim(strings.TrimPrefix(param, "rel="), `"`)
			for _, r := range strings.Fields(rel) {
				links[r] = Link{URL: target, Page: pageOf(target)}
			}
		}
	}

	return links
}

func pageOf(raw string) int {
	u, err := url.Parse(raw)
	if err != nil {
		return 0
	}
	page, err := strconv.Atoi(u.Query().Get("page"))
	if err != nil {
		return 0
	}
	return page
}
