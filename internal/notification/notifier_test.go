package notification_test

import (
	"context"
	"testing"
	"time"

	"github.com/AndreiCindea/workflow-service/internal/events"
	"github.com/AndreiCindea/workflow-service/internal/notification"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogNotifier_NotifyBookingCreated(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	notifier := notification.NewLogNotifier(zap.New(core))

	event := events.BookingCreatedEvent{
		EventType:    "booking_created",
		BookingID:    "b-1",
		EmployeeCode: "EMP001",
		ResourceType: "FLIGHT",
		Destination:  "NYC",
		OccurredAt:   time.Date(2024, 12, 15, 10, 0, 0, 0, time.UTC),
	}

	err := notifier.NotifyBookingCreated(context.Background(), event)

	assert.NoError(t, err)
	assert.Equal(t, 1, logs.Len())

	entry := logs.All()[0]
	assert.Equal(t, "booking itinerary confirmed", entry.Message)

	fields := entry.ContextMap()
	assert.Equal(t, "b-1", fields["booking_id"])
	assert.Equal(t, "EMP001", fields["employee_code"])
	assert.Equal(t, "NYC", fields["destination"])
}
