package github

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/signoff/pkg/domain/interfaces"
	"github.com/m-mizutani/signoff/pkg/domain/types"
)

type client struct {
	githubClient *github.Client
}

// NewClient creates a GitHub client authenticated with a personal access
// token or an installation token. This is the auth path used by one-shot
// runs inside a CI job.
func NewClient(token string) (interfaces.GitHubClient, error) {
	if token == "" {
		return nil, goerr.New("github token is empty",
			goerr.T(types.ErrTagMissingConfig))
	}

	return &client{
		githubClient: github.NewClient(nil).WithAuthToken(token),
	}, nil
}

// NewAppClient creates a GitHub client with GitHub App authentication,
// used by the long-running webhook receiver.
func NewAppClient(appID, installationID int64, privateKey []byte) (interfaces.GitHubClient, error) {
	itr, err := ghinstallation.New(http.DefaultTransport, appID, installationID, privateKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub App transport")
	}

	return &client{
		githubClient: github.NewClient(&http.Client{Transport: itr}),
	}, nil
}

// GetIssue fetches an issue by number
func (c *client) GetIssue(ctx context.Context, owner, repo string, number int) (*github.Issue, error) {
	issue, _, err := c.githubClient.Issues.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get issue",
			goerr.T(types.ErrTagUpstreamCall),
			goerr.V("owner", owner),
			goerr.V("repo", repo),
			goerr.V("number", number),
		)
	}

	return issue, nil
}

// CreateRelease creates a release record
func (c *client) CreateRelease(ctx context.Context, owner, repo string, release *github.RepositoryRelease) (*github.RepositoryRelease, error) {
	created, _, err := c.githubClient.Repositories.CreateRelease(ctx, owner, repo, release)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create release",
			goerr.T(types.ErrTagUpstreamCall),
			goerr.V("owner", owner),
			goerr.V("repo", repo),
			goerr.V("tag", release.GetTagName()),
		)
	}

	return created, nil
}

// UploadReleaseAsset attaches a JSON blob to a release. The go-github upload
// API takes an *os.File, so the blob goes through a temporary file.
func (c *client) UploadReleaseAsset(ctx context.Context, owner, repo string, releaseID int64, name string, data []byte) error {
	tmp, err := os.CreateTemp("", "signoff-asset-*")
	if err != nil {
		return goerr.Wrap(err, "failed to create temporary asset file")
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		return goerr.Wrap(err, "failed to write asset data", goerr.V("path", tmp.Name()))
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return goerr.Wrap(err, "failed to rewind asset file", goerr.V("path", tmp.Name()))
	}

	opts := &github.UploadOptions{
		Name:      name,
		MediaType: "application/json",
	}
	if _, _, err := c.githubClient.Repositories.UploadReleaseAsset(ctx, owner, repo, releaseID, opts, tmp); err != nil {
		return goerr.Wrap(err, "failed to upload release asset",
			goerr.T(types.ErrTagUpstreamCall),
			goerr.V("owner", owner),
			goerr.V("repo", repo),
			goerr.V("release_id", releaseID),
			goerr.V("name", name),
		)
	}

	return nil
}

// DeleteRef deletes a git ref from the repository
func (c *client) DeleteRef(ctx context.Context, owner, repo, ref string) error {
	if _, err := c.githubClient.Git.DeleteRef(ctx, owner, repo, ref); err != nil {
		return goerr.Wrap(err, "failed to delete ref",
			goerr.T(types.ErrTagUpstreamCall),
			goerr.V("owner", owner),
			goerr.V("repo", repo),
			goerr.V("ref", ref),
		)
	}

	return nil
}
