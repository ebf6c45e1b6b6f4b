package summary

import (
	"context"

	"github.com/nestlog/nestlog/internal/clock"
	"github.com/nestlog/nestlog/internal/config"
	reportdomain "github.com/nestlog/nestlog/internal/report/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("summary",
	fx.Invoke(register),
)

func register(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, clk clock.Clock, reports reportdomain.Service) {
	if !cfg.SummaryEnabled {
		log.Info("daily summary disabled")
		return
	}

	worker := NewWorker(log, clk, reports, cfg.SummarySchedule)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_ = ctx
			return worker.Start()
		},
		OnStop: func(ctx context.Context) error {
			return worker.Stop(ctx)
		},
	})
}
