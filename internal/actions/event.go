package actions

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Event names this tool reacts to
const (
	EventPullRequest       = "pull_request"
	EventPullRequestTarget = "pull_request_target"
	EventPush              = "push"
)

// ErrNotPullRequest is returned when a pull request event carries no pull request
var ErrNotPullRequest = errors.New("This event is not a Pull Request.")

// Event is the triggering workflow event
type Event struct {
	Name    string
	Payload Payload
}

// Payload holds the parts of the webhook payload this tool reads
type Payload struct {
	PullRequest *PullRequest `json:"pull_request,omitempty"`
	Commits     []Commit     `json:"commits,omitempty"`
	Repository  *Repository  `json:"repository,omitempty"`
}

// PullRequest is the pull_request object of a pull request event
type PullRequest struct {
	Number int     `json:"number"`
	NodeID string  `json:"node_id,omitempty"`
	Labels []Label `json:"labels"`
}

// Label is a pull request label
type Label struct {
	Name string `json:"name"`
}

// Commit is one entry of a push event's commits list
type Commit struct {
	Message string `json:"message"`
}

// Repository is the repository object of a payload
type Repository struct {
	FullName string `json:"full_name"`
}

// LoadEvent reads the payload at path. An empty path yields an empty payload.
func LoadEvent(name, path string) (*Event, error) {
	ev := &Event{Name: name}
	if path == "" {
		return ev, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event payload: %w", err)
	}
	if err := json.Unmarshal(data, &ev.Payload); err != nil {
		return nil, fmt.Errorf("failed to parse event payload: %w", err)
	}
	return ev, nil
}

// IsPullRequest reports whether the event is a pull request event
func (e *Event) IsPullRequest() bool {
	return e.Name == EventPullRequest || e.Name == EventPullRequestTarget
}

// IsPush reports whether the event is a push
func (e *Event) IsPush() bool {
	return e.Name == EventPush
}

// PullRequest returns the event's pull request, or ErrNotPullRequest when the
// payload has none
func (e *Event) PullRequest() (*PullRequest, error) {
	if e.Payload.PullRequest == nil {
		return nil, ErrNotPullRequest
	}
	return e.Payload.PullRequest, nil
}

// CommitMessages returns the pushed commit messages in payload order
func (e *Event) CommitMessages() []string {
	messages := make([]string, 0, len(e.Payload.Commits))
	for _, c := range e.Payload.Commits {
		messages = append(messages, c.Message)
	}
	return messages
}

// LabelNames returns the names of the pull request's labels
func (pr *PullRequest) LabelNames() []string {
	names := make([]string, 0, len(pr.Labels))
	for _, l := range pr.Labels {
		names = append(names, l.Name)
	}
	return names
}

// HasLabel reports whether the pull request already carries a label
func (pr *PullRequest) HasLabel(name string) bool {
	for _, l := range pr.Labels {
		if l.Name == name {
			return true
		}
	}
	return false
}
