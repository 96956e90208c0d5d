package bump

import "testing"

func TestFromLabels(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   Kind
	}{
		{"patch only", []string{"patch"}, Patch},
		{"minor only", []string{"minor"}, Minor},
		{"major only", []string{"major"}, Major},
		{"major beats patch", []string{"patch", "major"}, Major},
		{"minor beats patch", []string{"patch", "documentation", "minor"}, Minor},
		{"no valid labels", []string{"invalid-label"}, None},
		{"labels match exactly", []string{"Major", "minor-change"}, None},
		{"empty", nil, None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromLabels(tt.labels); got != tt.want {
				t.Errorf("FromLabels(%v) = %s, want %s", tt.labels, got, tt.want)
			}
		})
	}
}

func TestFromCommits(t *testing.T) {
	tests := []struct {
		name     string
		messages []string
		want     Kind
	}{
		{"no keywords", []string{"fix: update documentation"}, None},
		{"case insensitive", []string{"feat: MAJOR rewrite"}, Major},
		{"first matching commit wins", []string{"chore: tidy", "minor: add flag", "major: break api"}, Minor},
		{"priority within a commit", []string{"patch and minor and major"}, Major},
		{"substring match", []string{"bump patchlevel"}, Patch},
		{"empty", nil, None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromCommits(tt.messages); got != tt.want {
				t.Errorf("FromCommits(%v) = %s, want %s", tt.messages, got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	if got := Resolve(PullRequestTrigger([]string{"major", "patch"})); got != Major {
		t.Errorf("pull request: got %s, want major", got)
	}
	if got := Resolve(PushTrigger([]string{"minor change", "major change"})); got != Minor {
		t.Errorf("push: got %s, want minor", got)
	}
	if got := Resolve(Trigger{Kind: TriggerOther, Labels: []string{"major"}}); got != None {
		t.Errorf("other: got %s, want none", got)
	}
}

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"major":   Major,
		"Minor":   Minor,
		" PATCH ": Patch,
		"none":    None,
	}
	for input, want := range tests {
		got, err := ParseKind(input)
		if err != nil {
			t.Errorf("ParseKind(%q) error: %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("ParseKind(%q) = %s, want %s", input, got, want)
		}
	}

	if _, err := ParseKind("huge"); err == nil {
		t.Error("ParseKind(\"huge\") expected error")
	}
}
