package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"printshop/cmd"
	"printshop/internal/adapters/out/notify"
	"printshop/internal/adapters/out/postgres/catalogrepo"
	"printshop/internal/adapters/out/postgres/orderrepo"
	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/ports"

	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	db, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	publisher, closePublisher, err := newPublisher(configs, logger)
	if err != nil {
		log.Fatalf("Error connecting to Kafka: %v", err)
	}
	defer closePublisher()

	app := cmd.NewCompositionRoot(configs, db, publisher, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if configs.SeedCatalog {
		seeded, seedErr := app.CreateSeedCatalogCommandHandler().Handle(ctx, commands.NewSeedCatalogCommand())
		if seedErr != nil {
			log.Fatalf("Error seeding catalog: %v", seedErr)
		}
		logger.InfoContext(ctx, "Catalog ready", "services_added", seeded.Services, "materials_added", seeded.Materials)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs.HTTPPort, logger)
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.HistoryEntryDTO{},
		&catalogrepo.ServiceDTO{},
		&catalogrepo.MaterialDTO{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func newPublisher(configs cmd.Config, logger *slog.Logger) (ports.OrderEventPublisher, func(), error) {
	if len(configs.KafkaBrokers) == 0 {
		logger.Info("No Kafka brokers configured, order events go to the log")
		return notify.NewLogPublisher(logger), func() {}, nil
	}
	publisher, err := notify.NewKafkaPublisher(notify.KafkaConfig{
		Brokers:  configs.KafkaBrokers,
		Topic:    configs.KafkaOrderChangedTopic,
		ClientID: configs.KafkaClientID,
	})
	if err != nil {
		return nil, nil, err
	}
	return publisher, publisher.Close, nil
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, port string, logger *slog.Logger) {
	e, err := app.CreateServer().Echo()
	if err != nil {
		log.Fatalf("http server: %v", err)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
