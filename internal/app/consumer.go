package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sphere-timecontrol/internal/events"
	"sphere-timecontrol/internal/messaging/kafka/consumer"
	"sphere-timecontrol/internal/punch"
	"sphere-timecontrol/internal/shared/connection"
	"sphere-timecontrol/internal/summary"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer projects punch.recorded events into daily summaries until
// interrupted.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	punchRepo := punch.NewRepository(gormDB)
	summaryRepo := summary.NewRepository(gormDB)
	summaryService := summary.NewService(summaryRepo, punchRepo, attendanceConfig())

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.PunchRecordedTopic,
		GroupID:        "timecontrol-daily-summary",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumePunchRecorded(ctx, reader, summaryService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
