package node

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	swingby "github.com/zenGate-Global/swingby-connector-go"
	"github.com/zenGate-Global/swingby-connector-go/httptransport"
)

const (
	pathAddresses     = "api/v1/addresses"
	pathPeers         = "api/v1/peers"
	pathStakes        = "api/v1/stakes"
	pathStatus        = "api/v1/status"
	pathSwapCalculate = "api/v1/swaps/calculate"
	pathSwapCreate    = "api/v1/swaps/create"
	pathSwapFees      = "api/v1/swaps/fees"
	pathSwapQuery     = "api/v1/swaps/query"
	pathSwapStats     = "api/v1/swaps/stats"
	pathKVStore       = "api/v1/debug/kvstore"
)

// New creates a node client.
func New(config Config) (*Client, error) {
	if strings.TrimSpace(config.BaseURL) == "" {
		return nil, fmt.Errorf(
			"%w: node base URL is required",
			swingby.ErrInvalidInput,
		)
	}

	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = config.Logger.With().Str("component", "node").Logger()
	}

	transport := config.Transport
	if transport == nil {
		transport = httptransport.New(httptransport.Config{Logger: config.Logger})
	}

	return &Client{
		baseURL:   config.BaseURL,
		transport: transport,
		logger:    logger,
	}, nil
}

// URL returns the node base URL.
func (c *Client) URL() string {
	return c.baseURL
}

func (c *Client) url(path string) string {
	return swingby.JoinURL(c.baseURL, path)
}

// GetTSSAddresses returns the node's TSS addresses, one per currency.
func (c *Client) GetTSSAddresses(ctx context.Context) (any, error) {
	return c.transport.Get(ctx, c.url(pathAddresses), nil)
}

// GetPeers lists the peers connected to the node. An empty nodeType means
// NodeTypeNormal.
func (c *Client) GetPeers(ctx context.Context, nodeType string) (any, error) {
	if nodeType == "" {
		nodeType = NodeTypeNormal
	}
	return c.transport.Get(ctx, c.url(pathPeers), swingby.Query{"type": nodeType})
}

// GetStakes lists all stakes on the network.
func (c *Client) GetStakes(ctx context.Context) (any, error) {
	return c.transport.Get(ctx, c.url(pathStakes), nil)
}

// GetStatus returns node state and network metadata.
func (c *Client) GetStatus(ctx context.Context) (any, error) {
	return c.transport.Get(ctx, c.url(pathStatus), nil)
}

// CalculateSwap asks the node for the amount the user will receive, the fees
// and the proof-of-work nonce for a swap. The result contains at least
// send_amount, receive_amount, fee and nonce.
func (c *Client) CalculateSwap(
	ctx context.Context,
	params SwapParams,
) (map[string]any, error) {
	res, err := c.transport.Post(
		ctx,
		c.url(pathSwapCalculate),
		swingby.Query{},
		swapBody(params),
	)
	if err != nil {
		return nil, err
	}
	return asObject(pathSwapCalculate, res)
}

// CreateSwap creates a swap record. The result contains the inbound address
// the user has to send funds to.
func (c *Client) CreateSwap(
	ctx context.Context,
	params CreateSwapParams,
) (map[string]any, error) {
	body := swapBody(params.SwapParams)
	body["nonce"] = params.Nonce
	return c.createSwap(ctx, body)
}

// Swap calculates a swap and creates it with the calculated send amount and
// nonce. Both values are forwarded exactly as the node returned them. The
// returned object holds the CreateSwap fields plus the full CalculateSwap
// result under "calc".
//
// The two calls are not atomic: when CreateSwap fails the calculation is
// simply discarded and the error is returned.
func (c *Client) Swap(
	ctx context.Context,
	params SwapParams,
) (map[string]any, error) {
	calc, err := c.CalculateSwap(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("swap: calculate: %w", err)
	}

	sendAmount, err := requiredField(calc, "send_amount")
	if err != nil {
		return nil, fmt.Errorf("swap: %w", err)
	}
	nonce, err := requiredField(calc, "nonce")
	if err != nil {
		return nil, fmt.Errorf("swap: %w", err)
	}

	c.logger.Debug().
		Str("currency_from", params.CurrencyFrom).
		Str("currency_to", params.CurrencyTo).
		Stringer("amount", params.Amount).
		Interface("send_amount", sendAmount).
		Interface("nonce", nonce).
		Msg("swap calculated")

	body := swapBody(params)
	body["amount"] = sendAmount
	body["nonce"] = nonce
	created, err := c.createSwap(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("swap: create: %w", err)
	}

	result := make(map[string]any, len(created)+1)
	for k, v := range created {
		result[k] = v
	}
	result["calc"] = calc
	return result, nil
}

func (c *Client) createSwap(ctx context.Context, body swingby.Body) (map[string]any, error) {
	res, err := c.transport.Post(ctx, c.url(pathSwapCreate), swingby.Query{}, body)
	if err != nil {
		return nil, err
	}
	return asObject(pathSwapCreate, res)
}

// GetSwapFees returns the bridge fee and miner fee per currency.
func (c *Client) GetSwapFees(ctx context.Context) (any, error) {
	return c.transport.Get(ctx, c.url(pathSwapFees), nil)
}

// QuerySwaps searches swaps. Only truthy filters are sent.
func (c *Client) QuerySwaps(
	ctx context.Context,
	params QuerySwapsParams,
) (any, error) {
	return c.transport.Get(ctx, c.url(pathSwapQuery), querySwapsQuery(params))
}

// GetSwapStats returns network and node performance statistics.
func (c *Client) GetSwapStats(ctx context.Context) (any, error) {
	return c.transport.Get(ctx, c.url(pathSwapStats), nil)
}

// GetKVStore returns the node's debug key/value store. Only available on
// testnet nodes. The node serves the store as a JSON document encoded in a
// JSON string; string payloads are decoded once more.
func (c *Client) GetKVStore(ctx context.Context) (any, error) {
	res, err := c.transport.Get(ctx, c.url(pathKVStore), nil)
	if err != nil {
		return nil, err
	}

	var raw []byte
	switch v := res.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	case json.RawMessage:
		raw = v
	default:
		return res, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var kv any
	if err := dec.Decode(&kv); err != nil {
		return nil, fmt.Errorf(
			"%w: kvstore payload is not JSON: %w",
			swingby.ErrDecode,
			err,
		)
	}
	return kv, nil
}

// CreateFloat would create a float deposit record.
func (c *Client) CreateFloat(ctx context.Context) (any, error) {
	return nil, fmt.Errorf("create float: %w", swingby.ErrNotImplemented)
}

// QueryFloats would query float records.
func (c *Client) QueryFloats(ctx context.Context) (any, error) {
	return nil, fmt.Errorf("query floats: %w", swingby.ErrNotImplemented)
}

func swapBody(params SwapParams) swingby.Body {
	body := swingby.Body{
		"address_to":    params.AddressTo,
		"amount":        params.Amount,
		"currency_from": params.CurrencyFrom,
		"currency_to":   params.CurrencyTo,
	}
	body.Merge(params.Extra)
	return body
}

func querySwapsQuery(params QuerySwapsParams) swingby.Query {
	q := swingby.Query{}
	q.Merge(params.Extra)
	q.SetIfTruthy("in_hash", params.InHash)
	q.SetIfTruthy("out_hash", params.OutHash)
	q.SetIfTruthy("to_chain", params.ToChain)
	q.SetIfTruthy("from_chain", params.FromChain)
	q.SetIfTruthy("in_address", params.InAddress)
	q.SetIfTruthy("out_address", params.OutAddress)
	q.SetIfTruthy("status", params.Status)
	q.SetIfTruthy("page_size", params.PageSize)
	q.SetIfTruthy("page", params.Page)
	q.SetIfTruthy("sort", params.Sort)
	q.SetIfTruthy("OR_in_hash", params.OrInHash)
	q.SetIfTruthy("OR_out_hash", params.OrOutHash)
	return q
}

func asObject(path string, res any) (map[string]any, error) {
	obj, ok := res.(map[string]any)
	if !ok {
		return nil, fmt.Errorf(
			"%w: %s: expected a JSON object, got %T",
			swingby.ErrDecode,
			path,
			res,
		)
	}
	return obj, nil
}

// requiredField returns obj[key] untouched. Only presence is checked.
func requiredField(obj map[string]any, key string) (any, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return nil, fmt.Errorf("%w: missing field %q", swingby.ErrDecode, key)
	}
	return v, nil
}
