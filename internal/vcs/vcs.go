// Package vcs queries a version-control client for the working-copy
// revision descriptor of the current directory.
package vcs

import (
	"fmt"
	"os/exec"
	"strings"
)

// Client runs a configured version-control command.
type Client struct {
	command string
	args    []string
}

// NewClient creates a client for the given VCS command and arguments.
func NewClient(command string, args []string) *Client {
	return &Client{
		command: command,
		args:    args,
	}
}

// Available checks if the configured VCS binary exists on the PATH.
func (c *Client) Available() bool {
	_, err := exec.LookPath(c.command)
	return err == nil
}

// Query invokes the VCS command once and returns its trimmed stdout.
// A missing binary, launch failure, or non-zero exit all mean the same
// thing to callers: no revision available. The working copy does not
// change mid-build, so there are no retries.
func (c *Client) Query() (string, error) {
	if !c.Available() {
		return "", fmt.Errorf("vcs command not found: %s", c.command)
	}

	out, err := exec.Command(c.command, c.args...).Output()
	if err != nil {
		return "", fmt.Errorf("executing %s: %w", c.command, err)
	}

	return strings.TrimSpace(string(out)), nil
}
