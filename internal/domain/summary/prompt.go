package summary

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Per-caller limits on how many records are serialized into one prompt.
const (
	LimitRepoIssues        = 200
	LimitRepoPullRequests  = 200
	LimitOwnerIssues       = 300
	LimitOwnerPullRequests = 200
	LimitRepositories      = 50
	LimitLatestCommits     = 10
	LimitDayCommits        = 200
)

// Body excerpt lengths, in runes.
const (
	RepoExcerptLength  = 800
	OwnerExcerptLength = 600
)

// Cap returns at most limit lines and, when lines were dropped, a note
// disclosing it. noun names the records ("issues", "commits").
func Cap(lines []string, limit int, noun string) ([]string, string) {
	if len(lines) <= limit {
		return lines, ""
	}
	return lines[:limit], fmt.Sprintf("Summarized first %d %s due to size limits.", limit, noun)
}

// Prompt joins an instruction with record lines separated by blank lines.
func Prompt(instruction string, lines []string) string {
	return strings.TrimSpace(instruction) + "\n\n" + strings.Join(lines, "\n\n")
}

// Excerpt returns the first n runes of s.
func Excerpt(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
