package tokensfx

import (
	"go.uber.org/fx"
	"solsub/internal/services"
)

var Module = fx.Provide(
	provideTokenService)

func provideTokenService() services.TokenServiceInterface {
	return services.NewTokenService()
}
