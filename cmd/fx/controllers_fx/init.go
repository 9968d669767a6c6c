package controllers_fx

import (
	"go.uber.org/fx"

	"nearby/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewGatewayController))
