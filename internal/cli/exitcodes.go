package cli

import "github.com/owencmcgrath/hrml/pkg/runner"

// Exit codes for hrml.
const (
	// ExitSuccess indicates successful execution with no failing issues.
	ExitSuccess = 0

	// ExitFailure indicates a failed command or a check with failing issues.
	ExitFailure = 1
)

// ExitCodeFromResult determines the exit code of a check run. Errors and
// unreadable files always fail; in strict mode any diagnostic does.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasFailures() {
		return ExitFailure
	}

	if strict && result.HasIssues() {
		return ExitFailure
	}

	return ExitSuccess
}
