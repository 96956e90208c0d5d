package actions

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Commands writes workflow commands to a job's log
type Commands struct {
	w io.Writer
}

// NewCommands returns a Commands writing to w
func NewCommands(w io.Writer) *Commands {
	return &Commands{w: w}
}

// Info writes a plain log line
func (c *Commands) Info(msg string) {
	fmt.Fprintln(c.w, msg)
}

// Debug writes a line only shown when step debugging is enabled
func (c *Commands) Debug(msg string) {
	c.issue("debug", msg)
}

// Notice writes a notice annotation
func (c *Commands) Notice(msg string) {
	c.issue("notice", msg)
}

// Warning writes a warning annotation
func (c *Commands) Warning(msg string) {
	c.issue("warning", msg)
}

// Error writes an error annotation
func (c *Commands) Error(msg string) {
	c.issue("error", msg)
}

func (c *Commands) issue(command, msg string) {
	fmt.Fprintf(c.w, "::%s::%s\n", command, EscapeData(msg))
}

// EscapeData escapes a workflow command message
func EscapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}

// FormatOutput renders a step output in the GITHUB_OUTPUT heredoc form
func FormatOutput(name, value string) (string, error) {
	delimiter := "ghadelimiter_" + uuid.NewString()
	if strings.Contains(name, delimiter) || strings.Contains(value, delimiter) {
		return "", fmt.Errorf("output %q must not contain the delimiter %q", name, delimiter)
	}
	return fmt.Sprintf("%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter), nil
}

// WriteOutput appends a step output to the file at path
func WriteOutput(path, name, value string) error {
	entry, err := FormatOutput(name, value)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(entry); err != nil {
		return fmt.Errorf("failed to write output %s: %w", name, err)
	}
	return nil
}
