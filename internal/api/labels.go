package api

import (
	"fmt"

	graphql "github.com/cli/shurcooL-graphql"
)

// GetRepositoryID returns the node ID of a repository
func (c *Client) GetRepositoryID(owner, repo string) (string, error) {
	if err := c.ready(); err != nil {
		return "", err
	}

	var query struct {
		Repository struct {
			ID string
		} `graphql:"repository(owner: $owner, name: $repo)"`
	}

	variables := map[string]interface{}{
		"owner": graphql.String(owner),
		"repo":  graphql.String(repo),
	}

	if err := c.gql.Query("GetRepositoryID", &query, variables); err != nil {
		return "", WrapError("get", "repository "+owner+"/"+repo, err)
	}
	if query.Repository.ID == "" {
		return "", WrapError("get", "repository "+owner+"/"+repo, ErrNotFound)
	}
	return query.Repository.ID, nil
}

// GetLabelID returns the node ID of a repository label.
// A missing label yields an error matching ErrNotFound.
func (c *Client) GetLabelID(owner, repo, name string) (string, error) {
	if err := c.ready(); err != nil {
		return "", err
	}

	var query struct {
		Repository struct {
			Label *struct {
				ID string
			} `graphql:"label(name: $labelName)"`
		} `graphql:"repository(owner: $owner, name: $repo)"`
	}

	variables := map[string]interface{}{
		"owner":     graphql.String(owner),
		"repo":      graphql.String(repo),
		"labelName": graphql.String(name),
	}

	if err := c.gql.Query("GetLabelID", &query, variables); err != nil {
		return "", WrapError("get", fmt.Sprintf("label %q", name), err)
	}
	if query.Repository.Label == nil || query.Repository.Label.ID == "" {
		return "", WrapError("get", fmt.Sprintf("label %q", name), ErrNotFound)
	}
	return query.Repository.Label.ID, nil
}

// GetPullRequestID returns the node ID of a pull request
func (c *Client) GetPullRequestID(owner, repo string, number int) (string, error) {
	if err := c.ready(); err != nil {
		return "", err
	}

	var query struct {
		Repository struct {
			PullRequest struct {
				ID string
			} `graphql:"pullRequest(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $repo)"`
	}

	variables := map[string]interface{}{
		"owner":  graphql.String(owner),
		"repo":   graphql.String(repo),
		"number": graphql.Int(number),
	}

	if err := c.gql.Query("GetPullRequestID", &query, variables); err != nil {
		return "", WrapError("get", fmt.Sprintf("pull request #%d", number), err)
	}
	if query.Repository.PullRequest.ID == "" {
		return "", WrapError("get", fmt.Sprintf("pull request #%d", number), ErrNotFound)
	}
	return query.Repository.PullRequest.ID, nil
}

// CreateLabel creates a label in a repository and returns its node ID
func (c *Client) CreateLabel(repositoryID, name, color, description string) (string, error) {
	if err := c.ready(); err != nil {
		return "", err
	}

	var mutation struct {
		CreateLabel struct {
			Label struct {
				ID string
			}
		} `graphql:"createLabel(input: $input)"`
	}

	input := CreateLabelInput{
		RepositoryID: graphql.ID(repositoryID),
		Name:         graphql.String(name),
		Color:        graphql.String(color),
		Description:  graphql.String(description),
	}

	variables := map[string]interface{}{
		"input": input,
	}

	if err := c.gql.Mutate("CreateLabel", &mutation, variables); err != nil {
		return "", WrapError("create", fmt.Sprintf("label %q", name), err)
	}
	return mutation.CreateLabel.Label.ID, nil
}

// AddLabelsToLabelable attaches labels to an issue or pull request
func (c *Client) AddLabelsToLabelable(labelableID string, labelIDs []string) error {
	if err := c.ready(); err != nil {
		return err
	}

	var mutation struct {
		AddLabelsToLabelable struct {
			ClientMutationID string `graphql:"clientMutationId"`
		} `graphql:"addLabelsToLabelable(input: $input)"`
	}

	ids := make([]graphql.ID, 0, len(labelIDs))
	for _, id := range labelIDs {
		ids = append(ids, graphql.ID(id))
	}

	input := AddLabelsToLabelableInput{
		LabelableID: graphql.ID(labelableID),
		LabelIDs:    ids,
	}

	variables := map[string]interface{}{
		"input": input,
	}

	if err := c.gql.Mutate("AddLabelsToLabelable", &mutation, variables); err != nil {
		return WrapError("add", "labels", err)
	}
	return nil
}

// CreateLabelInput is the input for the createLabel mutation
type CreateLabelInput struct {
	RepositoryID graphql.ID     `json:"repositoryId"`
	Name         graphql.String `json:"name"`
	Color        graphql.String `json:"color"`
	Description  graphql.String `json:"description,omitempty"`
}

// AddLabelsToLabelableInput is the input for the addLabelsToLabelable mutation
type AddLabelsToLabelableInput struct {
	LabelableID graphql.ID   `json:"labelableId"`
	LabelIDs    []graphql.ID `json:"labelIds"`
}
