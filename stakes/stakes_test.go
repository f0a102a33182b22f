package stakes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/tj/assert"
	swingby "github.com/zenGate-Global/swingby-connector-go"
	"github.com/zenGate-Global/swingby-connector-go/internal/mocks/mock_transport"
)

const testURL = "https://staking.test"

// setupStakes creates a staking client backed by a mock transport.
func setupStakes(t *testing.T) (*Client, *mock_transport.MockTransport) {
	t.Helper()

	tr := mock_transport.NewMockTransport(t)
	return New(Config{BaseURL: testURL, Transport: tr}), tr
}

func TestNewDefaultsURL(t *testing.T) {
	c := New(Config{})
	assert.Equal(t, DefaultURL, c.URL())
	assert.Equal(t, "https://staking-api.swingby.network/v1/floats", c.url(pathFloats))
}

func TestGetLeaderboard(t *testing.T) {
	cases := []struct {
		name   string
		params LeaderboardParams
		want   swingby.Query
	}{
		{
			"defaults",
			LeaderboardParams{},
			swingby.Query{"page": 1, "page_size": 25},
		},
		{
			"memo and paging",
			LeaderboardParams{Memo: "2024-10", Page: 3, PageSize: 50},
			swingby.Query{"page": 3, "page_size": 50, "memo": "2024-10"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, tr := setupStakes(t)
			tr.On("Get", mock.Anything, testURL+"/v1/stakes/leaderboard", tc.want).
				Return(map[string]any{"items": []any{}}, nil).Once()
			tr.On("Get", mock.Anything, testURL+"/v1/stakes/rewards_leaderboard", tc.want).
				Return(map[string]any{"items": []any{}}, nil).Once()

			_, err := c.GetLeaderboard(context.Background(), tc.params)
			assert.NoError(t, err)
			_, err = c.GetRewardsLeaderboard(context.Background(), tc.params)
			assert.NoError(t, err)
		})
	}
}

func TestGetFloatsUnwrapsBalances(t *testing.T) {
	c, tr := setupStakes(t)
	tr.On("Get", mock.Anything, testURL+"/v1/floats", swingby.Query(nil)).
		Return(map[string]any{
			"balances": map[string]any{"BTC": json.Number("1"), "BNB": json.Number("2")},
		}, nil).Once()

	floats, err := c.GetFloats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, map[string]any{"BTC": json.Number("1"), "BNB": json.Number("2")}, floats)
}

func TestGetFloatsMissingBalances(t *testing.T) {
	c, tr := setupStakes(t)
	tr.On("Get", mock.Anything, testURL+"/v1/floats", swingby.Query(nil)).
		Return(map[string]any{"other": 1}, nil).Once()

	_, err := c.GetFloats(context.Background())
	assert.True(t, swingby.IsDecode(err))
}

func TestGetPlatformStatus(t *testing.T) {
	cases := []struct {
		raw  any
		want PlatformStatus
	}{
		{json.Number("0"), PlatformOffline},
		{json.Number("1"), PlatformOnline},
		{float64(3), PlatformMaintenance},
	}
	for _, tc := range cases {
		c, tr := setupStakes(t)
		tr.On("Get", mock.Anything, testURL+"/v1/platform_status", swingby.Query(nil)).
			Return(map[string]any{"status": tc.raw}, nil).Once()

		got, err := c.GetPlatformStatus(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	assert.Equal(t, "maintenance", PlatformMaintenance.String())
	assert.Equal(t, "unknown", PlatformStatus(7).String())
}

func TestGetPlatformStatusNotInteger(t *testing.T) {
	c, tr := setupStakes(t)
	tr.On("Get", mock.Anything, testURL+"/v1/platform_status", swingby.Query(nil)).
		Return(map[string]any{"status": "up"}, nil).Once()

	_, err := c.GetPlatformStatus(context.Background())
	assert.True(t, swingby.IsDecode(err))
}

func TestHoldersAndPayoutIgnoreMemo(t *testing.T) {
	c, tr := setupStakes(t)
	tr.On("Get", mock.Anything, testURL+"/v1/stakes/holders", swingby.Query{}).
		Return(map[string]any{}, nil).Times(4)

	for _, memo := range []string{"", "2024-10"} {
		_, err := c.GetHolders(context.Background(), memo)
		assert.NoError(t, err)
		_, err = c.GetPayout(context.Background(), memo)
		assert.NoError(t, err)
	}
}

func TestIgnoredMemoIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	tr := mock_transport.NewMockTransport(t)
	c := New(Config{BaseURL: testURL, Transport: tr, Logger: &logger})

	tr.On("Get", mock.Anything, testURL+"/v1/stakes/holders", swingby.Query{}).
		Return(map[string]any{}, nil).Times(3)

	_, err := c.GetHolders(context.Background(), "2024-10")
	assert.NoError(t, err)
	_, err = c.GetPayout(context.Background(), "2024-11")
	assert.NoError(t, err)
	_, err = c.GetHolders(context.Background(), "")
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, 2, len(lines))
	assert.True(t, strings.Contains(lines[0], `"component":"stakes"`))
	assert.True(t, strings.Contains(lines[0], `"op":"holders"`))
	assert.True(t, strings.Contains(lines[0], `"memo":"2024-10"`))
	assert.True(t, strings.Contains(lines[1], `"op":"payout"`))
	assert.True(t, strings.Contains(lines[1], `"memo":"2024-11"`))
}

func TestAddressQueries(t *testing.T) {
	c, tr := setupStakes(t)
	addr := "0x71c7656ec7ab88b098defb751b7401b5f6d8976f"

	tr.On("Get", mock.Anything, testURL+"/v1/stakes/rewards_history", swingby.Query{"address": addr}).
		Return([]any{}, nil).Once()
	tr.On("Get", mock.Anything, testURL+"/v1/chain/asset", swingby.Query{"address": addr}).
		Return(map[string]any{"balance": "10"}, nil).Once()
	tr.On("Get", mock.Anything, testURL+"/v1/chain/asset", swingby.Query(nil)).
		Return(map[string]any{"symbol": "SWINGBY"}, nil).Once()

	_, err := c.GetRewardsHistory(context.Background(), addr)
	assert.NoError(t, err)

	balance, err := c.GetTokenBalance(context.Background(), addr)
	assert.NoError(t, err)
	assert.Equal(t, map[string]any{"balance": "10"}, balance)

	info, err := c.GetTokenInfo(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, map[string]any{"symbol": "SWINGBY"}, info)
}

func TestGetStakesFilters(t *testing.T) {
	cases := []struct {
		params StakesParams
		want   swingby.Query
	}{
		{StakesParams{}, swingby.Query{}},
		{StakesParams{Address: "a"}, swingby.Query{"address": "a"}},
		{StakesParams{Memo: "m"}, swingby.Query{"memo": "m"}},
		{StakesParams{Address: "a", Memo: "m"}, swingby.Query{"address": "a", "memo": "m"}},
	}
	for _, tc := range cases {
		c, tr := setupStakes(t)
		tr.On("Get", mock.Anything, testURL+"/v1/stakes", tc.want).
			Return([]any{}, nil).Once()

		_, err := c.GetStakes(context.Background(), tc.params)
		assert.NoError(t, err)
	}
}

func TestGetWeeklyMemoIsText(t *testing.T) {
	c, tr := setupStakes(t)
	tr.On("GetText", mock.Anything, testURL+"/v1/stakes/weekly_memo", swingby.Query(nil)).
		Return("  memo-42\n", nil).Once()

	memo, err := c.GetWeeklyMemo(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "  memo-42\n", memo)
	tr.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestErrorsPropagate(t *testing.T) {
	c, tr := setupStakes(t)
	apiErr := swingby.NewAPIError("GET", testURL+"/v1/floats", 429, "", nil)
	tr.On("Get", mock.Anything, testURL+"/v1/floats", swingby.Query(nil)).
		Return(nil, apiErr).Once()

	_, err := c.GetFloats(context.Background())
	assert.True(t, errors.Is(err, swingby.ErrRateLimited))
}

// TestWeeklyMemoOverHTTP runs the default transport end to end; the body is
// not valid JSON and must come back untouched.
func TestWeeklyMemoOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/stakes/weekly_memo" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, "2024-W42")
	}))
	t.Cleanup(srv.Close)

	memo, err := New(Config{BaseURL: srv.URL}).GetWeeklyMemo(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "2024-W42", memo)
}

func TestFloatsOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"balances":{"BTC":1,"BNB":2}}`)
	}))
	t.Cleanup(srv.Close)

	floats, err := New(Config{BaseURL: srv.URL}).GetFloats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, map[string]any{"BTC": json.Number("1"), "BNB": json.Number("2")}, floats)
}
