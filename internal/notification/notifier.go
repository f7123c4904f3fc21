package notification

import (
	"context"

	"github.com/AndreiCindea/workflow-service/internal/events"

	"go.uber.org/zap"
)

// Notifier delivers the itinerary confirmation for a freshly created
// booking. Delivery targets (mail, chat) plug in behind this interface.
type Notifier interface {
	NotifyBookingCreated(ctx context.Context, event events.BookingCreatedEvent) error
}

type logNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier returns a Notifier that records the itinerary in the
// application log. It stands in until a real delivery channel is wired.
func NewLogNotifier(logger ...*zap.Logger) Notifier {
	l := zap.L().Named("notification.booking")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.booking")
	}
	return &logNotifier{logger: l}
}

func (n *logNotifier) NotifyBookingCreated(ctx context.Context, event events.BookingCreatedEvent) error {
	n.logger.Info("booking itinerary confirmed",
		zap.String("booking_id", event.BookingID),
		zap.String("employee_code", event.EmployeeCode),
		zap.String("resource_type", event.ResourceType),
		zap.String("destination", event.Destination),
		zap.Time("occurred_at", event.OccurredAt),
	)
	return nil
}
