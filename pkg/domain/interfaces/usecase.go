package interfaces

import (
	"context"

	"github.com/m-mizutani/signoff/pkg/domain/model"
)

// WebhookUseCase defines the interface for webhook event processing
type WebhookUseCase interface {
	// ProcessEvent processes a webhook event
	ProcessEvent(ctx context.Context, event *model.WebhookEvent) error
}

// SignoffUseCase defines the release sign-off pipeline
type SignoffUseCase interface {
	// ProcessSignoff runs the full pipeline for one closed release issue
	ProcessSignoff(ctx context.Context, req *model.SignoffRequest) error
}
