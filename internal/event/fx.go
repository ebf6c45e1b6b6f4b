package event

import (
	"github.com/nestlog/nestlog/internal/event/repository"
	"github.com/nestlog/nestlog/internal/event/service"
	"github.com/nestlog/nestlog/internal/timeparse"
	"go.uber.org/fx"
)

var Module = fx.Module("event.service",
	fx.Provide(timeparse.New),
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
