// Package api talks to the GitHub GraphQL API for the pull request label side action.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cli/go-gh/v2/pkg/api"
	"github.com/cli/go-gh/v2/pkg/auth"
)

// DefaultHost is used when no host is configured
const DefaultHost = "github.com"

// GraphQLClient interface allows mocking the GitHub GraphQL client for testing
type GraphQLClient interface {
	Query(name string, query interface{}, variables map[string]interface{}) error
	Mutate(name string, mutation interface{}, variables map[string]interface{}) error
}

// Client wraps the GitHub GraphQL API client
type Client struct {
	gql  GraphQLClient
	opts ClientOptions
}

// ClientOptions configures the API client
type ClientOptions struct {
	// Host is the GitHub hostname (default: github.com)
	Host string

	// AuthToken is the token sent with every request
	AuthToken string

	// Timeout bounds each request (default: no timeout)
	Timeout time.Duration

	// Transport overrides the HTTP transport, for tests
	Transport http.RoundTripper
}

// ResolveToken returns explicit when set, otherwise the token go-gh finds for host
// in GH_TOKEN, GITHUB_TOKEN or the gh config.
func ResolveToken(host, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if host == "" {
		host = DefaultHost
	}
	if token, _ := auth.TokenForHost(host); token != "" {
		return token, nil
	}
	return "", ErrNotAuthenticated
}

// NewClient creates an API client authenticated with opts.AuthToken
func NewClient(opts ClientOptions) (*Client, error) {
	if opts.AuthToken == "" {
		return nil, ErrNotAuthenticated
	}

	apiOpts := api.ClientOptions{
		Host:      opts.Host,
		AuthToken: opts.AuthToken,
		Timeout:   opts.Timeout,
		Transport: opts.Transport,
	}
	if apiOpts.Host == "" {
		apiOpts.Host = DefaultHost
	}

	gql, err := api.NewGraphQLClient(apiOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create GraphQL client: %w", err)
	}

	return &Client{gql: gql, opts: opts}, nil
}

// NewClientWithGraphQL creates a Client with a custom GraphQL client (for testing)
func NewClientWithGraphQL(gql GraphQLClient) *Client {
	return &Client{gql: gql}
}

func (c *Client) ready() error {
	if c.gql == nil {
		return fmt.Errorf("GraphQL client not initialized - is github_token set?")
	}
	return nil
}
