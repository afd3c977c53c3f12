package slack

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/signoff/pkg/domain/interfaces"
	"github.com/m-mizutani/signoff/pkg/domain/model"
	"github.com/m-mizutani/signoff/pkg/domain/types"
	"github.com/slack-go/slack"
)

type client struct {
	webhookURL string
}

// NewClient creates a Notifier that posts to a Slack incoming webhook.
func NewClient(webhookURL string) (interfaces.Notifier, error) {
	if webhookURL == "" {
		return nil, goerr.New("slack webhook URL is empty",
			goerr.T(types.ErrTagMissingConfig))
	}

	return &client{
		webhookURL: webhookURL,
	}, nil
}

// Post sends one Block Kit message. The payload is built per call and not
// retained.
func (c *client) Post(ctx context.Context, msg *model.Notification) error {
	if err := slack.PostWebhookContext(ctx, c.webhookURL, BuildMessage(msg)); err != nil {
		return goerr.Wrap(err, "failed to post slack notification",
			goerr.T(types.ErrTagUpstreamCall),
			goerr.V("header", msg.Header),
		)
	}

	return nil
}

// BuildMessage converts a notification into a Slack webhook payload: a
// header block, then a section block carrying the body text and, when a
// target URL is set, a button accessory.
func BuildMessage(msg *model.Notification) *slack.WebhookMessage {
	header := slack.NewHeaderBlock(
		slack.NewTextBlockObject(slack.PlainTextType, msg.Header, true, false),
	)

	bodyText := slack.NewTextBlockObject(slack.MarkdownType, msg.Body, false, false)

	var accessory *slack.Accessory
	if msg.ButtonURL != "" {
		button := slack.NewButtonBlockElement(
			"view_release",
			msg.ButtonURL,
			slack.NewTextBlockObject(slack.PlainTextType, msg.ButtonText, false, false),
		)
		button.URL = msg.ButtonURL
		accessory = slack.NewAccessory(button)
	}

	section := slack.NewSectionBlock(bodyText, nil, accessory)

	return &slack.WebhookMessage{
		Blocks: &slack.Blocks{
			BlockSet: []slack.Block{header, section},
		},
	}
}
