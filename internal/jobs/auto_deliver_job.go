package jobs

import (
	"context"
	"log/slog"
	"time"

	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

const (
	DefaultAutoDeliverSchedule  = "0 */15 * * * *"
	DefaultAutoDeliverGrace     = 72 * time.Hour
	DefaultAutoDeliverBatchSize = 100
)

type autoDeliverHandler interface {
	Handle(ctx context.Context, cmd commands.AutoDeliverOrdersCommand) (int, error)
}

// AutoDeliverSettings tune AutoDeliverJob. Zero values fall back to the defaults above.
type AutoDeliverSettings struct {
	Schedule    string
	GracePeriod time.Duration
	BatchSize   int
}

// AutoDeliverJob marks shipped orders as delivered once their estimated delivery date is
// more than GracePeriod in the past and the customer has not confirmed receipt.
type AutoDeliverJob struct {
	handler  autoDeliverHandler
	clock    services.Clock
	settings AutoDeliverSettings
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewAutoDeliverJob(
	handler autoDeliverHandler,
	clock services.Clock,
	settings AutoDeliverSettings,
	logger *slog.Logger,
) *AutoDeliverJob {
	if clock == nil {
		clock = services.SystemClock{}
	}
	if settings.Schedule == "" {
		settings.Schedule = DefaultAutoDeliverSchedule
	}
	if settings.GracePeriod <= 0 {
		settings.GracePeriod = DefaultAutoDeliverGrace
	}
	if settings.BatchSize <= 0 {
		settings.BatchSize = DefaultAutoDeliverBatchSize
	}
	return &AutoDeliverJob{
		handler:  handler,
		clock:    clock,
		settings: settings,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "auto_deliver_job"),
	}
}

// RunOnce delivers one batch of overdue orders.
func (j *AutoDeliverJob) RunOnce(ctx context.Context) (int, error) {
	cmd, err := commands.NewAutoDeliverOrdersCommand(j.clock.Now().Add(-j.settings.GracePeriod), j.settings.BatchSize)
	if err != nil {
		return 0, err
	}
	return j.handler.Handle(ctx, cmd)
}

func (j *AutoDeliverJob) Start() error {
	_, err := j.cron.AddFunc(j.settings.Schedule, func() {
		ctx := context.Background()
		delivered, err := j.RunOnce(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Auto delivery run failed", "delivered", delivered, "error", err)
			return
		}
		if delivered > 0 {
			j.logger.InfoContext(ctx, "Overdue orders marked as delivered", "delivered", delivered)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto delivery job started",
		"schedule", j.settings.Schedule,
		"grace_period", j.settings.GracePeriod.String(),
	)
	return nil
}

// Stop waits for a running batch to finish.
func (j *AutoDeliverJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Auto delivery job stopped")
}
