package memcache_fx

import (
	"go.uber.org/fx"
	mem "solsub/pkg/memcache"
)

var Module = fx.Provide(provideMemcacheClient)

func provideMemcacheClient() mem.QuoteStore {
	return mem.NewQuotes()
}
