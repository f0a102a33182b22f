package stakes

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	swingby "github.com/zenGate-Global/swingby-connector-go"
	"github.com/zenGate-Global/swingby-connector-go/httptransport"
)

const (
	pathLeaderboard        = "v1/stakes/leaderboard"
	pathFloats             = "v1/floats"
	pathPlatformStatus     = "v1/platform_status"
	pathRewardsLeaderboard = "v1/stakes/rewards_leaderboard"
	pathHolders            = "v1/stakes/holders"
	pathRewardsHistory     = "v1/stakes/rewards_history"
	pathWeeklyMemo         = "v1/stakes/weekly_memo"
	pathStakes             = "v1/stakes"
	pathAsset              = "v1/chain/asset"
)

// New creates a staking API client.
func New(config Config) *Client {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultURL
	}

	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = config.Logger.With().Str("component", "stakes").Logger()
	}

	transport := config.Transport
	if transport == nil {
		transport = httptransport.New(httptransport.Config{Logger: config.Logger})
	}

	return &Client{
		baseURL:   baseURL,
		transport: transport,
		logger:    logger,
	}
}

// URL returns the API base URL.
func (c *Client) URL() string {
	return c.baseURL
}

func (c *Client) url(path string) string {
	return swingby.JoinURL(c.baseURL, path)
}

// GetLeaderboard returns a page of the staking leaderboard. The result holds
// items, itemCount, total and totalStaked.
func (c *Client) GetLeaderboard(
	ctx context.Context,
	params LeaderboardParams,
) (any, error) {
	return c.transport.Get(ctx, c.url(pathLeaderboard), leaderboardQuery(params))
}

// GetFloats returns the network float balances keyed by currency.
func (c *Client) GetFloats(ctx context.Context) (map[string]any, error) {
	res, err := c.transport.Get(ctx, c.url(pathFloats), nil)
	if err != nil {
		return nil, err
	}

	balances, err := field(pathFloats, res, "balances")
	if err != nil {
		return nil, err
	}
	out, ok := balances.(map[string]any)
	if !ok {
		return nil, fmt.Errorf(
			"%w: %s: balances is %T, not an object",
			swingby.ErrDecode,
			pathFloats,
			balances,
		)
	}
	return out, nil
}

// GetPlatformStatus reports whether the platform is online, offline or under
// maintenance.
func (c *Client) GetPlatformStatus(ctx context.Context) (PlatformStatus, error) {
	res, err := c.transport.Get(ctx, c.url(pathPlatformStatus), nil)
	if err != nil {
		return 0, err
	}

	status, err := field(pathPlatformStatus, res, "status")
	if err != nil {
		return 0, err
	}
	switch v := status.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return PlatformStatus(n), nil
		}
	case float64:
		if v == math.Trunc(v) {
			return PlatformStatus(v), nil
		}
	}
	return 0, fmt.Errorf(
		"%w: %s: status is not an integer: %v",
		swingby.ErrDecode,
		pathPlatformStatus,
		status,
	)
}

// GetRewardsLeaderboard returns a page of the staking rewards leaderboard.
func (c *Client) GetRewardsLeaderboard(
	ctx context.Context,
	params LeaderboardParams,
) (any, error) {
	return c.transport.Get(
		ctx,
		c.url(pathRewardsLeaderboard),
		leaderboardQuery(params),
	)
}

// GetHolders returns every address holding Swingby tokens with its quantity
// and percentage.
//
// NOTE: the memo filter is applied only when memo is empty, so a memo passed
// here never reaches the API and the current week is always returned. An
// explicitly empty memo parameter (memo=) is not sent either, since an empty
// string cannot be told apart from no memo. Kept as is until the intended
// filter is confirmed.
func (c *Client) GetHolders(ctx context.Context, memo string) (any, error) {
	c.logMemoIgnored("holders", memo)
	return c.transport.Get(ctx, c.url(pathHolders), swingby.Query{})
}

// GetPayout is meant to return the unsigned staking rewards payout.
//
// NOTE: it calls the holders endpoint with the same memo handling as
// GetHolders, so memo is never sent; no dedicated payout path is known.
func (c *Client) GetPayout(ctx context.Context, memo string) (any, error) {
	c.logMemoIgnored("payout", memo)
	return c.transport.Get(ctx, c.url(pathHolders), swingby.Query{})
}

func (c *Client) logMemoIgnored(op, memo string) {
	if memo == "" {
		return
	}
	c.logger.Debug().
		Str("op", op).
		Str("memo", memo).
		Msg("memo filter not sent; returning the current week")
}

// GetRewardsHistory returns all rewards paid to address.
func (c *Client) GetRewardsHistory(
	ctx context.Context,
	address string,
) (any, error) {
	return c.transport.Get(
		ctx,
		c.url(pathRewardsHistory),
		swingby.Query{"address": address},
	)
}

// GetWeeklyMemo returns the current weekly memo as plain text.
func (c *Client) GetWeeklyMemo(ctx context.Context) (string, error) {
	return c.transport.GetText(ctx, c.url(pathWeeklyMemo), nil)
}

// GetStakes lists network stakes, optionally filtered by address and memo.
func (c *Client) GetStakes(ctx context.Context, params StakesParams) (any, error) {
	q := swingby.Query{}
	q.SetIfTruthy("address", params.Address)
	q.SetIfTruthy("memo", params.Memo)
	return c.transport.Get(ctx, c.url(pathStakes), q)
}

// GetTokenInfo returns Swingby token information.
func (c *Client) GetTokenInfo(ctx context.Context) (any, error) {
	return c.transport.Get(ctx, c.url(pathAsset), nil)
}

// GetTokenBalance returns the token balance of address.
func (c *Client) GetTokenBalance(ctx context.Context, address string) (any, error) {
	return c.transport.Get(
		ctx,
		c.url(pathAsset),
		swingby.Query{"address": address},
	)
}

func leaderboardQuery(params LeaderboardParams) swingby.Query {
	page := params.Page
	if page == 0 {
		page = DefaultPage
	}
	pageSize := params.PageSize
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}

	q := swingby.Query{
		"page":      page,
		"page_size": pageSize,
	}
	q.SetIfTruthy("memo", params.Memo)
	return q
}

func field(path string, res any, key string) (any, error) {
	obj, ok := res.(map[string]any)
	if !ok {
		return nil, fmt.Errorf(
			"%w: %s: expected a JSON object, got %T",
			swingby.ErrDecode,
			path,
			res,
		)
	}
	v, ok := obj[key]
	if !ok {
		return nil, fmt.Errorf(
			"%w: %s: missing field %q",
			swingby.ErrDecode,
			path,
			key,
		)
	}
	return v, nil
}
