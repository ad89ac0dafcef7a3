package framework

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func AssertOutputContains(t *testing.T, output, expected string) {
	t.Helper()
	assert.Contains(t, output, expected, "Expected output containing '%s', got: %s", expected, output)
}

func AssertHelpfulError(t *testing.T, output string) {
	t.Helper()

	helpfulElements := []string{
		"Suggestions:",
		"Solutions:",
		"Solution:",
		"Cause:",
		"Tip:",
		"•",
		"Examples:",
		"Usage:",
	}

	found := false
	for _, element := range helpfulElements {
		if strings.Contains(output, element) {
			found = true
			break
		}
	}

	if !found {
		t.Errorf("Error message does not appear to be helpful. Got: %s", output)
	}
}

func AssertMultipleStringsInOutput(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, exp := range expected {
		assert.Contains(t, output, exp, "Expected output to contain '%s', got: %s", exp, output)
	}
}

func AssertNoError(t *testing.T, err error) {
	t.Helper()
	assert.NoError(t, err)
}

func AssertError(t *testing.T, err error) {
	t.Helper()
	assert.Error(t, err)
}

func AssertFileExists(t *testing.T, repo *TestRepo, path string) {
	t.Helper()
	assert.True(t, repo.HasFile(path), "Expected file '%s' to exist", path)
}

func AssertFileNotExists(t *testing.T, repo *TestRepo, path string) {
	t.Helper()
	assert.False(t, repo.HasFile(path), "Expected file '%s' not to exist", path)
}

func AssertFileContains(t *testing.T, repo *TestRepo, path, content string) {
	t.Helper()
	assert.True(t, repo.HasFile(path), "File '%s' does not exist", path)
	if repo.HasFile(path) {
		fileContent := repo.ReadFile(path)
		assert.Contains(t, fileContent, content, "Expected file '%s' to contain '%s', got: %s", path, content, fileContent)
	}
}

func AssertCurrentBranch(t *testing.T, repo *TestRepo, expected string) {
	t.Helper()
	current := repo.CurrentBranch()
	assert.Equal(t, expected, current, "Expected current branch to be '%s', got: '%s'", expected, current)
}

func AssertBranchExists(t *testing.T, repo *TestRepo, branch string) {
	t.Helper()
	assert.Contains(t, repo.ListBranches(), branch, "Expected branch '%s' to exist", branch)
}

func AssertEqual(t *testing.T, expected, actual any) {
	t.Helper()
	assert.Equal(t, expected, actual)
}

func AssertNotEqual(t *testing.T, notExpected, actual any) {
	t.Helper()
	assert.NotEqual(t, notExpected, actual)
}

func AssertTrue(t *testing.T, condition bool, message string) {
	t.Helper()
	assert.True(t, condition, message)
}

func AssertFalse(t *testing.T, condition bool, message string) {
	t.Helper()
	assert.False(t, condition, message)
}
