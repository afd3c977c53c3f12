package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/signoff/pkg/domain/interfaces"
	"github.com/m-mizutani/signoff/pkg/domain/types"
	githubinfra "github.com/m-mizutani/signoff/pkg/infra/github"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub API configuration. Token auth is the default; setting
// an App ID switches to GitHub App installation auth.
type GitHub struct {
	Token          string `masq:"secret"`
	AppID          int64
	InstallationID int64
	PrivateKey     string `masq:"secret"`
	WebhookSecret  string `masq:"secret"`
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub API token",
			Destination: &c.Token,
			Sources:     cli.EnvVars("SIGNOFF_GITHUB_TOKEN"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID (enables App auth)",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("SIGNOFF_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-installation-id",
			Usage:       "GitHub App installation ID",
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("SIGNOFF_GITHUB_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-private-key",
			Usage:       "GitHub App private key (PEM)",
			Destination: &c.PrivateKey,
			Sources:     cli.EnvVars("SIGNOFF_GITHUB_PRIVATE_KEY"),
		},
		&cli.StringFlag{
			Name:        "github-webhook-secret",
			Usage:       "GitHub webhook secret (serve mode)",
			Destination: &c.WebhookSecret,
			Sources:     cli.EnvVars("SIGNOFF_GITHUB_WEBHOOK_SECRET"),
		},
	}
}

// NewClient builds the GitHub client from whichever credential is configured.
func (c *GitHub) NewClient() (interfaces.GitHubClient, error) {
	if c.AppID != 0 {
		if c.InstallationID == 0 || c.PrivateKey == "" {
			return nil, goerr.New("github app auth requires installation id and private key",
				goerr.T(types.ErrTagMissingConfig),
				goerr.V("app_id", c.AppID),
			)
		}
		return githubinfra.NewAppClient(c.AppID, c.InstallationID, []byte(c.PrivateKey))
	}

	if c.Token == "" {
		return nil, goerr.New("github token is required",
			goerr.T(types.ErrTagMissingConfig),
			goerr.V("flag", "github-token"),
		)
	}

	return githubinfra.NewClient(c.Token)
}
