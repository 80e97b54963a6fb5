package registry

import (
	"strings"
)

// ChainRecord represents one blockchain network as published by the public
// chain registries (chainid.network and its mirrors).
type ChainRecord struct {
	Name      string     `json:"name"`
	Chain     string     `json:"chain"`
	Icon      string     `json:"icon,omitempty"`
	RPC       []string   `json:"rpc"`
	Faucets   []string   `json:"faucets,omitempty"`
	Currency  Currency   `json:"nativeCurrency"`
	InfoURL   string     `json:"infoURL"`
	ShortName string     `json:"shortName"`
	ChainID   int64      `json:"chainId"`
	NetworkID int64      `json:"networkId"`
	Explorers []Explorer `json:"explorers,omitempty"`
	Title     string     `json:"title,omitempty"`
	Network   string     `json:"network,omitempty"`
	Status    string     `json:"status,omitempty"`
	RedFlags  []string   `json:"redFlags,omitempty"`
}

// Currency defines the native currency details of a chain
type Currency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

// Explorer defines a block explorer for a chain
type Explorer struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Standard string `json:"standard"`
}

// testnetKeywords flag records whose name or title marks them as
// non-production networks.
var testnetKeywords = []string{
	"testnet", "devnet", "sepolia", "goerli", "holesky", "kovan",
	"rinkeby", "ropsten", "mumbai", "fuji", "staging", "canary",
}

// IsTestnet reports whether the record describes a test or otherwise
// non-production network. Checks the explicit network field first, then
// falls back to keyword matching on the name and title.
func (r ChainRecord) IsTestnet() bool {
	if strings.EqualFold(r.Network, "testnet") {
		return true
	}
	if strings.EqualFold(r.Status, "deprecated") {
		return true
	}
	haystack := strings.ToLower(r.Name + " " + r.Title)
	for _, keyword := range testnetKeywords {
		if strings.Contains(haystack, keyword) {
			return true
		}
	}
	return false
}

// ExplorerURLs returns the explorer URLs in catalog order, empty entries
// dropped.
func (r ChainRecord) ExplorerURLs() []string {
	urls := make([]string, 0, len(r.Explorers))
	for _, explorer := range r.Explorers {
		if explorer.URL != "" {
			urls = append(urls, explorer.URL)
		}
	}
	return urls
}

// PublicRPCEndpoints returns the RPC endpoints usable without credentials.
// Registry entries with ${API_KEY}-style placeholders are dropped.
func (r ChainRecord) PublicRPCEndpoints() []string {
	endpoints := make([]string, 0, len(r.RPC))
	for _, endpoint := range r.RPC {
		if endpoint == "" || strings.Contains(endpoint, "${") {
			continue
		}
		endpoints = append(endpoints, endpoint)
	}
	return endpoints
}
