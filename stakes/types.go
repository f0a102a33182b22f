package stakes

import (
	"github.com/rs/zerolog"
	swingby "github.com/zenGate-Global/swingby-connector-go"
)

// DefaultURL is the production staking-insights API.
const DefaultURL = "https://staking-api.swingby.network"

// Leaderboard paging defaults.
const (
	DefaultPage     = 1
	DefaultPageSize = 25
)

type Config struct {
	// BaseURL of the staking API. Empty means DefaultURL.
	BaseURL string

	// Transport performs the requests. Nil means httptransport with defaults.
	Transport swingby.Transport

	// Logger is handed to the default transport and receives client-level
	// debug events. Nil disables logging.
	Logger *zerolog.Logger
}

// Client wraps the Swingby staking-insights API.
type Client struct {
	baseURL   string
	transport swingby.Transport
	logger    zerolog.Logger
}

// LeaderboardParams select a page of a weekly leaderboard.
type LeaderboardParams struct {
	// Memo is the weekly memo; empty means the current week.
	Memo string
	// Page defaults to DefaultPage.
	Page int
	// PageSize defaults to DefaultPageSize.
	PageSize int
}

// StakesParams filter GetStakes. Empty fields are not sent.
type StakesParams struct {
	Address string
	Memo    string
}

// PlatformStatus is the availability reported by GetPlatformStatus.
type PlatformStatus int

const (
	PlatformOffline     PlatformStatus = 0
	PlatformOnline      PlatformStatus = 1
	PlatformMaintenance PlatformStatus = 3
)

func (s PlatformStatus) String() string {
	switch s {
	case PlatformOffline:
		return "offline"
	case PlatformOnline:
		return "online"
	case PlatformMaintenance:
		return "maintenance"
	default:
		return "unknown"
	}
}
