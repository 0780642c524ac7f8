package notify

import (
	"context"

	"github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/events"
	"go.uber.org/zap"
)

// Notifier is the fire-and-forget notification sink. Implementations must
// never fail the calling operation: delivery errors are logged and dropped.
type Notifier interface {
	RequestSubmitted(ctx context.Context, ev events.LeaveRequestSubmittedEvent)
	RequestDecided(ctx context.Context, ev events.LeaveRequestDecidedEvent)
}

// LogNotifier writes human-readable notifications to the process log. It is
// the default sink when no broker is configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger ...*zap.Logger) *LogNotifier {
	l := zap.L().Named("notify")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notify")
	}
	return &LogNotifier{logger: l}
}

func (n *LogNotifier) RequestSubmitted(ctx context.Context, ev events.LeaveRequestSubmittedEvent) {
	n.logger.Info("leave request submitted",
		zap.String("request_id", ev.RequestID),
		zap.String("employee_name", ev.EmployeeName),
		zap.Int("days", ev.Days),
	)
}

func (n *LogNotifier) RequestDecided(ctx context.Context, ev events.LeaveRequestDecidedEvent) {
	n.logger.Info("leave request decided",
		zap.String("request_id", ev.RequestID),
		zap.String("employee_name", ev.EmployeeName),
		zap.String("status", ev.Status),
		zap.String("reviewed_by", ev.ReviewedBy),
	)
}
