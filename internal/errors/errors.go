package errors

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/satococoa/envctl/internal/api"
	"github.com/satococoa/envctl/internal/command"
	"github.com/satococoa/envctl/internal/git"
)

// Common error messages with helpful context and suggestions

// Git Repository Errors
func NotInGitRepository(dir string) error {
	msg := fmt.Sprintf(`not a git repository: %s

Solutions:
  • Run 'envctl init' to create a new repository
  • Use '--dir' to point at an existing repository
  • Check if you're in the correct directory`, dir)
	return errors.New(msg)
}

func AlreadyGitRepository(dir string) error {
	msg := fmt.Sprintf(`already a git repository: %s

Tip: Use 'envctl branch' or 'envctl checkout' to work with it`, dir)
	return errors.New(msg)
}

func GitCommandFailed(command, output string) error {
	// Clean up the output for better readability
	cleanOutput := strings.TrimSpace(output)
	if cleanOutput == "" {
		cleanOutput = "no additional details available"
	}

	msg := fmt.Sprintf(`git command failed: %s

Details: %s

Tip: Try running the git command manually to see the full error`, command, cleanOutput)
	return errors.New(msg)
}

func GitNotFound(program string) error {
	msg := fmt.Sprintf(`could not run git: %s

Solutions:
  • Install git and make sure it is on your PATH
  • Set 'git.program' in .envctl.yml or ENVCTL_GIT to the git binary`, program)
	return errors.New(msg)
}

// FromGit converts errors returned by the git facade into actionable messages.
// Other errors are returned unchanged.
func FromGit(err error) error {
	if err == nil {
		return nil
	}

	var dirErr *git.DirectoryError
	if errors.As(err, &dirErr) {
		if errors.Is(err, git.ErrAlreadyRepository) {
			return AlreadyGitRepository(dirErr.Dir)
		}
		return NotInGitRepository(dirErr.Dir)
	}

	var procErr *command.ProcessError
	if errors.As(err, &procErr) {
		var exitErr *exec.ExitError
		exited := errors.As(procErr.Err, &exitErr)
		if procErr.ExitCode < 0 && !exited {
			return GitNotFound(procErr.Command.Name)
		}
		output := procErr.Stderr
		if strings.TrimSpace(output) == "" {
			output = procErr.Output
		}
		if strings.TrimSpace(output) == "" && exited {
			output = exitErr.Error()
		}
		return GitCommandFailed(procErr.Command.String(), output)
	}

	return err
}

// Validation Errors
func BranchNameRequired(commandExample string) error {
	msg := fmt.Sprintf(`branch name is required

Usage: %s

Examples:
  • envctl branch feature-login
  • envctl branch hotfix main`, commandExample)
	return errors.New(msg)
}

func BranchAlreadyExists(branchName string) error {
	msg := fmt.Sprintf(`branch '%s' already exists

Solutions:
  • Run 'envctl checkout %s' to switch to it
  • Choose a different branch name`, branchName, branchName)
	return errors.New(msg)
}

func BranchNotFound(branchName string) error {
	msg := fmt.Sprintf(`branch '%s' not found

Suggestions:
  • Check the branch name spelling
  • Run 'git branch' to see local branches
  • Create it with 'envctl branch %s'`, branchName, branchName)
	return errors.New(msg)
}

func NoUpstream(branchName string) error {
	msg := fmt.Sprintf(`no upstream configured for branch '%s'

Tip: Run 'git push -u origin %s' to publish it`, branchName, branchName)
	return errors.New(msg)
}

func DetachedHead() error {
	return errors.New(`HEAD is detached

Tip: Run 'envctl checkout <branch>' to switch to a branch`)
}

func ConfigKeyNotSet(key string) error {
	msg := fmt.Sprintf(`git config key '%s' is not set

Tip: Run 'git config %s <value>' to set it`, key, key)
	return errors.New(msg)
}

// Remote API Errors
func ProjectRequired() error {
	return errors.New(`project is required

Solutions:
  • Pass '--project <id>'
  • Set ENVCTL_PROJECT
  • Add 'project: <id>' to .envctl.yml`)
}

func APIRequestFailed(operation string, originalError error) error {
	msg := fmt.Sprintf("failed to %s", operation)

	if errors.Is(originalError, api.ErrUnauthorized) {
		msg += `

Cause: The API rejected the access token
Solution: Set a valid token with ENVCTL_TOKEN or '--token'`
	} else if errors.Is(originalError, api.ErrNotFound) {
		msg += `

Cause: The project or environment does not exist
Solution: Check the '--project' and '--environment' values`
	}

	msg += fmt.Sprintf("\n\nOriginal error: %v", originalError)
	return errors.New(msg)
}

func InvalidColumns(unknown, available []string) error {
	msg := fmt.Sprintf("unknown column(s): %s", strings.Join(unknown, ", "))
	if len(available) > 0 {
		msg += "\n\nAvailable columns:"
		for _, c := range available {
			msg += fmt.Sprintf("\n  • %s", c)
		}
	}
	return errors.New(msg)
}

func UnsupportedFormat(format string, supported []string) error {
	msg := fmt.Sprintf("unsupported format: %s", format)
	if len(supported) > 0 {
		msg += "\n\nSupported formats:"
		for _, f := range supported {
			msg += fmt.Sprintf("\n  • %s", f)
		}
	}
	return errors.New(msg)
}

// Configuration Errors
func ConfigLoadFailed(configPath string, parseError error) error {
	msg := fmt.Sprintf("failed to load configuration from '%s'", configPath)

	parseErrorStr := parseError.Error()
	if strings.Contains(parseErrorStr, "yaml") || strings.Contains(parseErrorStr, "unmarshal") {
		msg += `

Cause: YAML syntax error in configuration file
Solutions:
  • Check YAML syntax and indentation
  • Validate YAML at https://yamllint.com/`
	} else if strings.Contains(parseErrorStr, "invalid api url") {
		msg += `

Cause: api.url is not an absolute http(s) URL
Solution: Fix 'api.url' in .envctl.yml or ENVCTL_API_URL`
	} else if strings.Contains(parseErrorStr, "permission denied") {
		msg += `

Cause: Permission denied reading configuration file
Solution: Check file permissions with 'ls -la .envctl.yml'`
	}

	msg += fmt.Sprintf("\n\nOriginal error: %v", parseError)
	return errors.New(msg)
}

// File System Errors
func DirectoryAccessFailed(operation, path string, originalError error) error {
	msg := fmt.Sprintf("failed to %s directory: %s", operation, path)

	errorStr := originalError.Error()
	if strings.Contains(errorStr, "permission denied") {
		msg += `

Cause: Permission denied
Solutions:
  • Check directory permissions
  • Run with appropriate privileges
  • Ensure you own the directory`
	} else if strings.Contains(errorStr, "no such file or directory") {
		msg += `

Cause: Directory does not exist
Solutions:
  • Create the parent directory first
  • Check the path spelling
  • Use an absolute path`
	}

	msg += fmt.Sprintf("\n\nOriginal error: %v", originalError)
	return errors.New(msg)
}

// Hook Errors
func HookExecutionFailed(hookIndex int, hookCommand string, originalError error) error {
	msg := fmt.Sprintf("failed to execute post-checkout hook #%d: %s", hookIndex+1, hookCommand)

	errorStr := originalError.Error()
	if strings.Contains(errorStr, "permission denied") {
		msg += `

Cause: Permission denied
Solutions:
  • Check file permissions
  • Ensure the command is executable`
	} else if strings.Contains(errorStr, "not found") {
		msg += `

Cause: Command not found
Solutions:
  • Install the required command
  • Check command spelling in .envctl.yml
  • Use full path to command`
	}

	msg += fmt.Sprintf("\n\nOriginal error: %v", originalError)
	return errors.New(msg)
}
