// Package git drives the git binary on behalf of envctl commands.
//
// A Facade turns named repository operations into git invocations, refuses
// to run them outside a repository, and reports results as either text, an
// empty success, an expected absence, or an error.
package git
