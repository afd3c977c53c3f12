package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/signoff/pkg/domain/interfaces"
	"github.com/m-mizutani/signoff/pkg/domain/types"
	slackinfra "github.com/m-mizutani/signoff/pkg/infra/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds Slack notification configuration
type Slack struct {
	WebhookURL string `masq:"secret"`
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL",
			Destination: &c.WebhookURL,
			Sources:     cli.EnvVars("SIGNOFF_SLACK_WEBHOOK_URL"),
		},
	}
}

// NewNotifier builds the Slack notifier.
func (c *Slack) NewNotifier() (interfaces.Notifier, error) {
	if c.WebhookURL == "" {
		return nil, goerr.New("slack webhook URL is required",
			goerr.T(types.ErrTagMissingConfig),
			goerr.V("flag", "slack-webhook-url"),
		)
	}

	return slackinfra.NewClient(c.WebhookURL)
}
