package bump

import (
	"slices"
	"strings"
)

// TriggerKind identifies the CI event that started a run
type TriggerKind int

const (
	TriggerOther TriggerKind = iota
	TriggerPullRequest
	TriggerPush
)

// Trigger is the event context an increment is derived from.
// Labels is only meaningful for pull requests and CommitMessages only for pushes.
type Trigger struct {
	Kind           TriggerKind
	Labels         []string
	CommitMessages []string
}

// PullRequestTrigger returns a trigger for a pull request carrying labels
func PullRequestTrigger(labels []string) Trigger {
	return Trigger{Kind: TriggerPullRequest, Labels: labels}
}

// PushTrigger returns a trigger for a push with the given commit messages, oldest first
func PushTrigger(messages []string) Trigger {
	return Trigger{Kind: TriggerPush, CommitMessages: messages}
}

// Resolve returns the increment kind for a trigger. Unrecognised triggers resolve to None.
func Resolve(t Trigger) Kind {
	switch t.Kind {
	case TriggerPullRequest:
		return FromLabels(t.Labels)
	case TriggerPush:
		return FromCommits(t.CommitMessages)
	default:
		return None
	}
}

// FromLabels returns the strongest increment kind named by an exact label match.
func FromLabels(labels []string) Kind {
	for _, k := range priority {
		if slices.Contains(labels, k.String()) {
			return k
		}
	}
	return None
}

// FromCommits returns the kind from the first message mentioning a keyword.
// Within that message major beats minor beats patch; later messages are not consulted.
func FromCommits(messages []string) Kind {
	for _, msg := range messages {
		if k := fromMessage(msg); k != None {
			return k
		}
	}
	return None
}

func fromMessage(msg string) Kind {
	lower := strings.ToLower(msg)
	for _, k := range priority {
		if strings.Contains(lower, k.String()) {
			return k
		}
	}
	return None
}
