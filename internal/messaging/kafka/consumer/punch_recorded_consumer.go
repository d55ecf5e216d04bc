package consumer

import (
	"context"
	"encoding/json"

	"sphere-timecontrol/internal/events"
	"sphere-timecontrol/internal/summary"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumePunchRecorded projects punch.recorded events into the daily
// attendance summary read model. Messages failing on infrastructure errors
// are not committed and will be redelivered; malformed payloads are skipped.
func ConsumePunchRecorded(
	ctx context.Context,
	reader *kafkago.Reader,
	summaryService summary.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.punch_recorded")
	log.Info("punch recorded consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("punch recorded consumer stopped")
				return
			}
			log.Error("fetch punch recorded message failed", zap.Error(err))
			continue
		}

		var event events.PunchRecordedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode punch_recorded event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := summaryService.Apply(ctx, event); err != nil {
			log.Error("project punch_recorded event failed",
				zap.String("punch_id", event.PunchID),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit punch recorded message failed", zap.Error(err))
			continue
		}

		log.Debug("daily summary projected from punch_recorded event",
			zap.String("punch_id", event.PunchID),
			zap.String("employee_id", event.EmployeeID),
		)
	}
}
