package providers

import (
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/adapter"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/config"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/providers/across"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/providers/axelar"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/providers/butter"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/providers/celer"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/providers/debridge"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/providers/hop"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/providers/lifi"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/providers/socket"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/providers/squid"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/providers/stargate"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/providers/synapse"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/providers/wormhole"
)

// BuildAll constructs every provider adapter against the configured base
// URLs. The returned order is stable but carries no meaning; the
// orchestrator runs them all concurrently.
func BuildAll(httpClient adapter.HTTPClient, cfg config.ProvidersConfig) []Adapter {
	return []Adapter{
		lifi.NewAdapter(httpClient, cfg.LiFiURL),
		squid.NewAdapter(httpClient, cfg.SquidURL),
		socket.NewAdapter(httpClient, cfg.SocketURL),
		stargate.NewAdapter(httpClient, cfg.StargateURL),
		wormhole.NewAdapter(httpClient, cfg.WormholeURL),
		axelar.NewAdapter(httpClient, cfg.AxelarURL),
		celer.NewAdapter(httpClient, cfg.CelerURL),
		hop.NewAdapter(),
		synapse.NewAdapter(httpClient, cfg.SynapseURL),
		across.NewAdapter(httpClient, cfg.AcrossURL),
		butter.NewAdapter(httpClient, cfg.ButterURL),
		debridge.NewAdapter(httpClient, cfg.DeBridgeURL),
	}
}
