package interfaces

import (
	"context"

	"github.com/google/go-github/v75/github"
)

// GitHubClient defines the issue-tracker operations used by the sign-off
// pipeline.
type GitHubClient interface {
	// GetIssue fetches an issue by number. The only read in the pipeline.
	GetIssue(ctx context.Context, owner, repo string, number int) (*github.Issue, error)

	// CreateRelease creates a release record and returns it.
	CreateRelease(ctx context.Context, owner, repo string, release *github.RepositoryRelease) (*github.RepositoryRelease, error)

	// UploadReleaseAsset attaches a JSON blob to a release as a named asset.
	UploadReleaseAsset(ctx context.Context, owner, repo string, releaseID int64, name string, data []byte) error

	// DeleteRef deletes a git ref such as "heads/release/v20240115.1".
	DeleteRef(ctx context.Context, owner, repo, ref string) error
}
