package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/satococoa/envctl/internal/config"
	"github.com/satococoa/envctl/internal/logging"
)

// runApp runs envctl with args against captured writers. Environment
// overrides are cleared so the host setup cannot leak into the test.
func runApp(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	for _, key := range []string{config.EnvToken, config.EnvAPIURL, config.EnvProject, config.EnvGit, logging.DebugEnv} {
		t.Setenv(key, "")
	}

	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut

	err = app.Run(context.Background(), append([]string{"envctl"}, args...))
	return out.String(), errOut.String(), err
}
