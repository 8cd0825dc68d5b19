package wallet_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"solsub/internal/repositories"
	"solsub/internal/services"
)

var Module = fx.Provide(
	provideWalletBridge, provideSessionRepo, provideWalletService)

func provideWalletBridge() services.WalletProvider {
	return services.NewWalletBridgeClient()
}

func provideSessionRepo(db *gorm.DB) repositories.SessionRepository {
	return repositories.NewSessionRepository(db)
}

func provideWalletService(
	sessions repositories.SessionRepository,
	provider services.WalletProvider,
	rpc services.RPCService,
) services.WalletServiceInterface {
	return services.NewWalletService(sessions, provider, rpc)
}
