package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gogithub "github.com/google/go-github/v74/github"
	"golang.org/x/oauth2"
)

// DefaultTimeout bounds a single GitHub API request
const DefaultTimeout = 30 * time.Second

// ErrMissingToken is returned when a call is made without an access token
var ErrMissingToken = errors.New("github access token is required")

// Client handles GitHub API interactions. It holds no credential; every
// call authenticates with the access token it is given.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
}

// NewClient creates a new GitHub API client. An empty apiURL targets
// api.github.com.
func NewClient(apiURL string) (*Client, error) {
	return NewClientWithHTTPClient(apiURL, &http.Client{Timeout: DefaultTimeout})
}

// NewClientWithHTTPClient creates a client on top of httpClient
func NewClientWithHTTPClient(apiURL string, httpClient *http.Client) (*Client, error) {
	c := &Client{httpClient: httpClient}
	if apiURL != "" {
		u, err := url.Parse(strings.TrimSuffix(apiURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL: %w", err)
		}
		c.baseURL = u
	}
	return c, nil
}

// api returns a go-github client authenticated with accessToken
func (c *Client) api(ctx context.Context, accessToken string) (*gogithub.Client, error) {
	if accessToken == "" {
		return nil, ErrMissingToken
	}

	base := context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tc := oauth2.NewClient(base, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))
	tc.Timeout = c.httpClient.Timeout

	client := gogithub.NewClient(tc)
	if c.baseURL != nil {
		client.BaseURL = c.baseURL
	}
	return client, nil
}

// Response carries the pagination data of a list call
type Response struct {
	NextPage  int
	PrevPage  int
	FirstPage int
	LastPage  int
	Links     Links
}

func newResponse(resp *gogithub.Response) *Response {
	if resp == nil {
		return &Response{}
	}
	r := &Response{
		NextPage:  resp.NextPage,
		PrevPage:  resp.PrevPage,
		FirstPage: resp.FirstPage,
		LastPage:  resp.LastPage,
	}
	if resp.Response != nil {
		r.Links = ParseLinks(resp.Header.Get("Link"))
	}
	return r
}

// RepoListOptions are the listing options of GET /user/repos
type RepoListOptions struct {
	Visibility  string
	Affiliation string
	Type        string
	Sort        string
	Direction   string
	Page        int
	PerPage     int
}

// GetAuthenticatedUser fetches the account that owns accessToken
func (c *Client) GetAuthenticatedUser(ctx context.Context, accessToken string) (*gogithub.User, error) {
	client, err := c.api(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch authenticated user: %w", err)
	}
	return user, nil
}

// ListAuthenticatedUserRepos fetches one page of the caller's repositories
func (c *Client) ListAuthenticatedUserRepos(ctx context.Context, accessToken string, opts RepoListOptions) ([]*gogithub.Repository, *Response, error) {
	client, err := c.api(ctx, accessToken)
	if err != nil {
		return nil, nil, err
	}

	listOpts := &gogithub.RepositoryListByAuthenticatedUserOptions{
		Visibility:  opts.Visibility,
		Affiliation: opts.Affiliation,
		Type:        opts.Type,
		Sort:        opts.Sort,
		Direction:   opts.Direction,
		ListOptions: gogithub.ListOptions{Page: opts.Page, PerPage: opts.PerPage},
	}
	// GitHub rejects type combined with visibility or affiliation
	if listOpts.Type != "" && (listOpts.Visibility != "" || listOpts.Affiliation != "") {
		listOpts.Type = ""
	}

	repos, resp, err := client.Repositories.ListByAuthenticatedUser(ctx, listOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch repositories: %w", err)
	}
	return repos, newResponse(resp), nil
}

// ListOrgRepos fetches one page of an organization's repositories
func (c *Client) ListOrgRepos(ctx context.Context, accessToken, org string, page, perPage int) ([]*gogithub.Repository, *Response, error) {
	client, err := c.api(ctx, accessToken)
	if err != nil {
		return nil, nil, err
	}

	repos, resp, err := client.Repositories.ListByOrg(ctx, org, &gogithub.RepositoryListByOrgOptions{
		Type:        "all",
		ListOptions: gogithub.ListOptions{Page: page, PerPage: perPage},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch repositories for org %s: %w", org, err)
	}
	return repos, newResponse(resp), nil
}

// ListUserRepos fetches one page of a user account's repositories
func (c *Client) ListUserRepos(ctx context.Context, accessToken, username string, page, perPage int) ([]*gogithub.Repository, *Response, error) {
	client, err := c.api(ctx, accessToken)
	if err != nil {
		return nil, nil, err
	}

	repos, resp, err := client.Repositories.ListByUser(ctx, username, &gogithub.RepositoryListByUserOptions{
		ListOptions: gogithub.ListOptions{Page: page, PerPage: perPage},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch repositories for user %s: %w", username, err)
	}
	return repos, newResponse(resp), nil
}

// ListCommits fetches one page of commits. Zero since/until are omitted.
func (c *Client) ListCommits(ctx context.Context, accessToken, owner, repo string, since, until time.Time, page, perPage int) ([]*gogithub.RepositoryCommit, *Response, error) {
	client, err := c.api(ctx, accessToken)
	if err != nil {
		return nil, nil, err
	}

	commits, resp, err := client.Repositories.ListCommits(ctx, owner, repo, &gogithub.CommitsListOptions{
		Since:       since,
		Until:       until,
		ListOptions: gogithub.ListOptions{Page: page, PerPage: perPage},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch commits for %s/%s: %w", owner, repo, err)
	}
	return commits, newResponse(resp), nil
}

// ListIssues fetches one page of issues. GitHub includes pull requests in
// this listing; callers filter them out.
func (c *Client) ListIssues(ctx context.Context, accessToken, owner, repo, state string, page, perPage int) ([]*gogithub.Issue, *Response, error) {
	client, err := c.api(ctx, accessToken)
	if err != nil {
		return nil, nil, err
	}

	issues, resp, err := client.Issues.ListByRepo(ctx, owner, repo, &gogithub.IssueListByRepoOptions{
		State:       state,
		ListOptions: gogithub.ListOptions{Page: page, PerPage: perPage},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch issues for %s/%s: %w", owner, repo, err)
	}
	return issues, newResponse(resp), nil
}

// ListPullRequests fetches one page of pull requests
func (c *Client) ListPullRequests(ctx context.Context, accessToken, owner, repo, state string, page, perPage int) ([]*gogithub.PullRequest, *Response, error) {
	client, err := c.api(ctx, accessToken)
	if err != nil {
		return nil, nil, err
	}

	prs, resp, err := client.PullRequests.List(ctx, owner, repo, &gogithub.PullRequestListOptions{
		State:       state,
		ListOptions: gogithub.ListOptions{Page: page, PerPage: perPage},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch pull requests for %s/%s: %w", owner, repo, err)
	}
	return prs, newResponse(resp), nil
}
