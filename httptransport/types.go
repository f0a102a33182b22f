package httptransport

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultTimeout bounds every request when Config.Timeout is zero.
	DefaultTimeout = 30 * time.Second

	// RequestIDHeader carries the per-request identifier.
	RequestIDHeader = "X-Request-ID"

	defaultUserAgent = "swingby-connector-go"
)

type Config struct {
	// HTTPClient is used for every request. When nil a client with Timeout is
	// created.
	HTTPClient *http.Client

	// Timeout applies to the created client only; it is ignored when
	// HTTPClient is set. Zero means DefaultTimeout.
	Timeout time.Duration

	// UserAgent overrides the User-Agent header.
	UserAgent string

	// Logger receives one debug event per request. Nil disables logging.
	Logger *zerolog.Logger

	// Metrics, when set, records request counts and latencies.
	Metrics *Metrics
}

// Transport is the net/http implementation of swingby.Transport.
type Transport struct {
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger
	metrics    *Metrics
}

type errorResponse struct {
	Message string `json:"message"`
}
