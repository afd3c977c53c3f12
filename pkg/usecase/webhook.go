package usecase

import (
	"context"
	"encoding/json"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/signoff/pkg/domain/interfaces"
	"github.com/m-mizutani/signoff/pkg/domain/model"
	"github.com/m-mizutani/signoff/pkg/utils/async"
)

type webhookUseCase struct {
	signoffUC interfaces.SignoffUseCase
	dispatch  func(ctx context.Context, handler func(ctx context.Context) error)
}

// WebhookOption is a functional option for the webhook use case
type WebhookOption func(*webhookUseCase)

// WithDispatcher replaces the background dispatcher. Tests use a synchronous
// one.
func WithDispatcher(dispatch func(ctx context.Context, handler func(ctx context.Context) error)) WebhookOption {
	return func(uc *webhookUseCase) {
		uc.dispatch = dispatch
	}
}

// NewWebhook creates a new instance of WebhookUseCase
func NewWebhook(signoffUC interfaces.SignoffUseCase, opts ...WebhookOption) interfaces.WebhookUseCase {
	uc := &webhookUseCase{
		signoffUC: signoffUC,
		dispatch:  async.Dispatch,
	}
	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// ProcessEvent validates an incoming webhook event and, for a supported one,
// hands the sign-off pipeline to the background dispatcher so the webhook
// response is not held up by the GitHub and Slack round trips.
func (uc *webhookUseCase) ProcessEvent(ctx context.Context, event *model.WebhookEvent) error {
	logger := ctxlog.From(ctx)

	logger.Info("Processing webhook event",
		"id", event.ID,
		"type", event.Type,
		"action", event.Action,
		"repository", event.Repository,
		"sender", event.Sender,
		"supported", event.IsSupportedEvent(),
	)

	if !event.IsSupportedEvent() {
		logger.Warn("Unsupported event received",
			"type", event.Type,
			"action", event.Action,
		)
		return nil
	}

	req, err := signoffRequestFromPayload(event.RawPayload)
	if err != nil {
		return err
	}

	uc.dispatch(ctx, func(ctx context.Context) error {
		return uc.signoffUC.ProcessSignoff(ctx, req)
	})

	return nil
}

// signoffRequestFromPayload extracts the repository and issue number from an
// issues event payload. Labels and body are refetched by the pipeline rather
// than trusted from the event.
func signoffRequestFromPayload(raw []byte) (*model.SignoffRequest, error) {
	var event github.IssuesEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal issues event")
	}

	owner := event.GetRepo().GetOwner().GetLogin()
	repo := event.GetRepo().GetName()
	number := event.GetIssue().GetNumber()

	if owner == "" || repo == "" || number == 0 {
		return nil, goerr.New("issues event is missing required fields",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
			goerr.V("issue", number),
		)
	}

	return &model.SignoffRequest{
		Owner:       owner,
		Repo:        repo,
		IssueNumber: number,
	}, nil
}
