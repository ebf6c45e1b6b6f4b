// Package summary runs a scheduled end-of-day job that logs the previous
// day's event counts. It keeps no state and exposes no routes.
package summary

import (
	"context"

	"github.com/nestlog/nestlog/internal/clock"
	eventdomain "github.com/nestlog/nestlog/internal/event/domain"
	reportdomain "github.com/nestlog/nestlog/internal/report/domain"
	"github.com/nestlog/nestlog/internal/timeparse"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Worker struct {
	log      *zap.Logger
	clk      clock.Clock
	reports  reportdomain.Service
	cron     *cron.Cron
	schedule string
}

func NewWorker(log *zap.Logger, clk clock.Clock, reports reportdomain.Service, schedule string) *Worker {
	return &Worker{
		log:      log.Named("summary"),
		clk:      clk,
		reports:  reports,
		cron:     cron.New(),
		schedule: schedule,
	}
}

func (w *Worker) Start() error {
	if _, err := w.cron.AddFunc(w.schedule, w.run); err != nil {
		return err
	}
	w.cron.Start()
	w.log.Info("daily summary scheduled", zap.String("schedule", w.schedule))
	return nil
}

func (w *Worker) Stop(ctx context.Context) error {
	stopped := w.cron.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

func (w *Worker) run() {
	yesterday := w.clk.Now().AddDate(0, 0, -1).Format(timeparse.DateLayout)

	result := w.reports.DayCounts(context.Background(), yesterday)
	if !result.OK {
		w.log.Warn("daily summary unavailable",
			zap.String("date", yesterday),
			zap.String("reason", result.Reason),
		)
		return
	}

	fields := []zap.Field{zap.String("date", result.Date)}
	total := 0
	for _, t := range eventdomain.Types() {
		count := result.Counts[t]
		total += count
		fields = append(fields, zap.Int(string(t), count))
	}
	fields = append(fields, zap.Int("total", total))

	w.log.Info("daily summary", fields...)
}
