package rpc_fx

import (
	"go.uber.org/fx"
	"solsub/internal/services"
)

var Module = fx.Provide(
	provideRPCClient)

func provideRPCClient() services.RPCService {
	return services.NewSolanaRPCClient()
}
