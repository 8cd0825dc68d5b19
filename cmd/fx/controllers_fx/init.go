package controllers_fx

import (
	"go.uber.org/fx"
	"solsub/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewWalletController),
	fx.Provide(controllers.NewPlanController),
	fx.Provide(controllers.NewSubscriptionController),
	fx.Provide(controllers.NewSwapController),
	fx.Provide(controllers.NewTokenController),
	fx.Provide(controllers.NewHealthController))
