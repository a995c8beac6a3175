package notifications

import (
	"context"
	"time"

	"github.com/ternarybob/applytrack/internal/interfaces"
	"github.com/ternarybob/arbor"
)

// DisabledGateway satisfies NotificationGateway when reminders are switched off in config.
// Every call succeeds and nothing is stored.
type DisabledGateway struct {
	logger arbor.ILogger
}

// NewDisabledGateway creates a DisabledGateway
func NewDisabledGateway(logger arbor.ILogger) *DisabledGateway {
	return &DisabledGateway{logger: logger}
}

func (g *DisabledGateway) ScheduleFollowUp(ctx context.Context, recordID string, content interfaces.FollowUpContent, when time.Time, hour, minute int) error {
	g.logger.Debug().Str("record_id", recordID).Msg("Notifications disabled, follow-up not scheduled")
	return nil
}

func (g *DisabledGateway) Cancel(ctx context.Context, recordID string) error {
	return nil
}

func (g *DisabledGateway) SetTapHandler(handler interfaces.TapHandler) {}
