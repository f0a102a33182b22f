package node

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	swingby "github.com/zenGate-Global/swingby-connector-go"
)

// Node types accepted by GetPeers.
const (
	NodeTypeNormal = "normal"
	NodeTypeSigner = "signer"
)

// TestnetURL is the Swingby-hosted testnet node.
const TestnetURL = "https://testnet-node.swingby.network"

type Config struct {
	// BaseURL points at a Swingby node, e.g. TestnetURL. Required.
	BaseURL string

	// Transport performs the requests. Nil means httptransport with defaults.
	Transport swingby.Transport

	// Logger is handed to the default transport and used for Swap progress.
	Logger *zerolog.Logger
}

// Client wraps the REST API of a Swingby bridge node.
type Client struct {
	baseURL   string
	transport swingby.Transport
	logger    zerolog.Logger
}

// SwapParams are the arguments of CalculateSwap and Swap.
type SwapParams struct {
	// AddressTo is the payout address on the destination chain.
	AddressTo string
	// Amount is the amount of CurrencyFrom to swap.
	Amount decimal.Decimal
	// CurrencyFrom is the source currency (BTC, BTC.B, WBTC, ...).
	CurrencyFrom string
	// CurrencyTo is the destination currency.
	CurrencyTo string
	// Extra holds additional body fields the node understands. Named fields
	// take precedence over Extra keys of the same name.
	Extra map[string]any
}

// CreateSwapParams are the arguments of CreateSwap.
type CreateSwapParams struct {
	SwapParams
	// Nonce is the proof-of-work nonce returned by CalculateSwap.
	Nonce int64
}

// QuerySwapsParams filters QuerySwaps. Zero-valued fields are not sent.
type QuerySwapsParams struct {
	InHash     string
	OutHash    string
	ToChain    string
	FromChain  string
	InAddress  string
	OutAddress string
	Status     string
	PageSize   int
	Page       int
	// Sort = 1 returns results from old to new.
	Sort      int
	OrInHash  string
	OrOutHash string
	// Extra is copied into the query as is; named filters override it.
	Extra map[string]any
}
