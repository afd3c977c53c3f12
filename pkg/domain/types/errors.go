package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures for the top-level handler and for tests.
// Every error in this system is fatal to the run; tags only describe what
// went wrong, they never trigger retries.
var (
	// ErrTagMissingConfig marks a required configuration value that is
	// absent or empty. A missing credential is a deploy-time
	// misconfiguration, not a transient fault.
	ErrTagMissingConfig = goerr.NewTag("missing_configuration")

	// ErrTagNotCandidate marks an issue that lacks the release candidate
	// label. Such an issue should never have triggered this automation.
	ErrTagNotCandidate = goerr.NewTag("not_release_candidate")

	// ErrTagMissingField marks an issue body from which the release tag or
	// branch could not be extracted.
	ErrTagMissingField = goerr.NewTag("missing_field")

	// ErrTagUpstreamCall marks a failed GitHub or Slack API call.
	ErrTagUpstreamCall = goerr.NewTag("upstream_call")
)
