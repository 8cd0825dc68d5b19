package swap_fx

import (
	"go.uber.org/fx"
	"solsub/internal/services"
	mem "solsub/pkg/memcache"
)

var Module = fx.Provide(
	provideSwapService)

func provideSwapService(cache mem.QuoteStore, rpc services.RPCService) services.SwapService {
	return services.NewJupiterClient(cache, rpc)
}
