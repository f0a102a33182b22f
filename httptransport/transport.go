package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	swingby "github.com/zenGate-Global/swingby-connector-go"
)

var _ swingby.Transport = (*Transport)(nil)

// New creates a transport. It never fails; the zero Config is valid.
func New(config Config) *Transport {
	httpClient := config.HTTPClient
	if httpClient == nil {
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = config.Logger.With().Str("component", "httptransport").Logger()
	}

	return &Transport{
		httpClient: httpClient,
		userAgent:  userAgent,
		logger:     logger,
		metrics:    config.Metrics,
	}
}

// Get issues a GET request and decodes the JSON response.
func (t *Transport) Get(
	ctx context.Context,
	endpoint string,
	query swingby.Query,
) (any, error) {
	body, err := t.doRequest(ctx, http.MethodGet, endpoint, query, nil)
	if err != nil {
		return nil, err
	}
	return decodeJSON(http.MethodGet, endpoint, body)
}

// GetText issues a GET request and returns the body as is.
func (t *Transport) GetText(
	ctx context.Context,
	endpoint string,
	query swingby.Query,
) (string, error) {
	body, err := t.doRequest(ctx, http.MethodGet, endpoint, query, nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Post issues a POST request with an application/json body and decodes the
// JSON response.
func (t *Transport) Post(
	ctx context.Context,
	endpoint string,
	query swingby.Query,
	body swingby.Body,
) (any, error) {
	if body == nil {
		body = swingby.Body{}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf(
			"%w: failed to encode request body for %s: %w",
			swingby.ErrInvalidInput,
			endpoint,
			err,
		)
	}

	respBody, err := t.doRequest(ctx, http.MethodPost, endpoint, query, payload)
	if err != nil {
		return nil, err
	}
	return decodeJSON(http.MethodPost, endpoint, respBody)
}

func (t *Transport) doRequest(
	ctx context.Context,
	method, endpoint string,
	query swingby.Query,
	payload []byte,
) ([]byte, error) {
	fullURL := endpoint
	if encoded := query.Encode(); encoded != "" {
		sep := "?"
		if strings.Contains(endpoint, "?") {
			sep = "&"
		}
		fullURL = endpoint + sep + encoded
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf(
			"%w: failed to create request for %s: %w",
			swingby.ErrInvalidInput,
			endpoint,
			err,
		)
	}

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		t.metrics.observe(method, 0, elapsed)
		t.logger.Warn().
			Str("request_id", requestID).
			Str("method", method).
			Str("url", endpoint).
			Dur("elapsed", elapsed).
			Err(err).
			Msg("request failed")
		return nil, transportError(method, endpoint, err)
	}
	defer resp.Body.Close()

	respBodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		t.metrics.observe(method, 0, elapsed)
		return nil, transportError(method, endpoint, err)
	}

	t.metrics.observe(method, resp.StatusCode, elapsed)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := swingby.NewAPIError(
			method,
			endpoint,
			resp.StatusCode,
			errorMessage(respBodyBytes),
			respBodyBytes,
		)
		t.logger.Warn().
			Str("request_id", requestID).
			Str("method", method).
			Str("url", endpoint).
			Int("status", resp.StatusCode).
			Str("error_message", apiErr.Message).
			Dur("elapsed", elapsed).
			Msg("request rejected")
		return nil, apiErr
	}

	t.logger.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("url", endpoint).
		Str("query", query.Encode()).
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("request completed")

	return respBodyBytes, nil
}

// errorMessage extracts the upstream "message" field, falling back to the
// raw body text.
func errorMessage(body []byte) string {
	var apiErr errorResponse
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
		return apiErr.Message
	}
	return strings.TrimSpace(string(body))
}

func decodeJSON(method, endpoint string, body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf(
			"%w: %s %s: %w. Body: %s",
			swingby.ErrDecode,
			method,
			endpoint,
			err,
			string(body),
		)
	}
	if dec.More() {
		return nil, fmt.Errorf(
			"%w: %s %s: trailing data after JSON value",
			swingby.ErrDecode,
			method,
			endpoint,
		)
	}
	return out, nil
}

func transportError(method, endpoint string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf(
			"%w: %w: %s %s: %w",
			swingby.ErrTransport,
			swingby.ErrTimeout,
			method,
			endpoint,
			err,
		)
	}
	return fmt.Errorf(
		"%w: %s %s: %w",
		swingby.ErrTransport,
		method,
		endpoint,
		err,
	)
}
