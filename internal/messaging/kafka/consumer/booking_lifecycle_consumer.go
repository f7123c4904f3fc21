package consumer

import (
	"context"
	"encoding/json"

	"github.com/AndreiCindea/workflow-service/internal/events"
	"github.com/AndreiCindea/workflow-service/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func ConsumeBookingLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	notifier notification.Notifier,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.booking_lifecycle")
	log.Info("booking lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("booking lifecycle consumer stopped")
				return
			}
			log.Error("fetch booking lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.BookingCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			// A poison message would otherwise block the partition.
			log.Error("decode booking_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := notifier.NotifyBookingCreated(ctx, event); err != nil {
			log.Error("notify booking created failed",
				zap.String("booking_id", event.BookingID),
				zap.String("employee_code", event.EmployeeCode),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit booking lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("booking notification delivered",
			zap.String("booking_id", event.BookingID),
			zap.String("employee_code", event.EmployeeCode),
		)
	}
}
