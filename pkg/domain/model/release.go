package model

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/signoff/pkg/domain/types"
)

// ReleaseFields holds the identifiers extracted from a release issue body.
// Both values are derived once and never recomputed or mutated.
type ReleaseFields struct {
	Tag    string // e.g. "v20240115.1"
	Branch string // e.g. "release/v20240115.1"
}

// The issue body is free-form text produced by an upstream "open a release
// issue" tool. Each pattern anchors on a fixed line prefix to tolerate
// surrounding prose while staying strict about the value format, so a
// malformed identifier fails here instead of reaching the GitHub API. The
// trailing guard rejects values with extra characters instead of silently
// truncating them to a plausible-looking identifier.
var (
	releaseTagPattern = regexp.MustCompile(`-\s*Release tag:\s*(v\d{8}\.\d+(?:-hotfix)?)(?:\s|$)`)
	branchPattern     = regexp.MustCompile(`-\s*Branch:\s*((?:release|hotfix)/v\d{8}\.\d+(?:-hotfix)?)(?:\s|$)`)
)

// ExtractReleaseFields parses the release tag and source branch out of an
// issue body. A pattern that does not match fails with an error naming the
// missing field and carrying the searched body for operator diagnosis.
func ExtractReleaseFields(body string) (*ReleaseFields, error) {
	tag := releaseTagPattern.FindStringSubmatch(body)
	if tag == nil {
		return nil, goerr.New("release tag not found in issue body",
			goerr.T(types.ErrTagMissingField),
			goerr.V("field", "tag"),
			goerr.V("body", body),
		)
	}

	branch := branchPattern.FindStringSubmatch(body)
	if branch == nil {
		return nil, goerr.New("branch not found in issue body",
			goerr.T(types.ErrTagMissingField),
			goerr.V("field", "branch"),
			goerr.V("body", body),
		)
	}

	return &ReleaseFields{
		Tag:    tag[1],
		Branch: branch[1],
	}, nil
}
