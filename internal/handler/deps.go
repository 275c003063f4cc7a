package handler

import (
	"go.uber.org/zap"

	"github.com/foodfrenzy/stand/internal/config"
	"github.com/foodfrenzy/stand/internal/core/event"
	"github.com/foodfrenzy/stand/internal/scripting"
)

// Deps holds shared dependencies injected into all intent handlers.
type Deps struct {
	Cfg     config.GameConfig
	Log     *zap.Logger
	Balance *scripting.Engine
	Bus     *event.Bus
}
