package interfaces

import (
	"context"

	"github.com/m-mizutani/signoff/pkg/domain/model"
)

// Notifier posts a notification to the team messaging channel.
type Notifier interface {
	Post(ctx context.Context, msg *model.Notification) error
}
