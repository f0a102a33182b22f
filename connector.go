package swingby

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// Query holds the query-string parameters of a request. Values are formatted
// with fmt, so strings, integers, json.Number and decimal.Decimal all encode
// the way they print.
type Query map[string]any

// Body is the JSON object sent with a POST request.
type Body map[string]any

// Transport performs the HTTP exchange for a client. Implementations must be
// safe for concurrent use and must not retry on failure.
type Transport interface {
	// Get issues a GET request and returns the decoded JSON response.
	Get(ctx context.Context, endpoint string, query Query) (any, error)

	// GetText issues a GET request and returns the response body unmodified.
	GetText(ctx context.Context, endpoint string, query Query) (string, error)

	// Post issues a POST request with body encoded as JSON and returns the
	// decoded JSON response.
	Post(
		ctx context.Context,
		endpoint string,
		query Query,
		body Body,
	) (any, error)
}

// Set adds key to the query unconditionally.
func (q Query) Set(key string, value any) {
	q[key] = value
}

// SetIfTruthy adds key to the query only when value is truthy: nil, zero
// numbers, false, empty strings and empty collections are skipped.
func (q Query) SetIfTruthy(key string, value any) {
	if Truthy(value) {
		q[key] = value
	}
}

// Merge copies every entry of extra into the query. Existing keys are
// overwritten.
func (q Query) Merge(extra map[string]any) {
	for k, v := range extra {
		q[k] = v
	}
}

// Encode renders the query as a URL query string sorted by key. Nil values
// are dropped.
func (q Query) Encode() string {
	if len(q) == 0 {
		return ""
	}
	values := make(url.Values, len(q))
	for k, v := range q {
		if v == nil {
			continue
		}
		values.Set(k, fmt.Sprint(v))
	}
	return values.Encode()
}

// Merge copies every entry of extra into the body without overwriting keys
// that are already present.
func (b Body) Merge(extra map[string]any) {
	for k, v := range extra {
		if _, exists := b[k]; exists {
			continue
		}
		b[k] = v
	}
}

// Truthy reports whether v would be kept by a filter that drops "empty"
// values.
func Truthy(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	if (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) &&
		rv.IsNil() {
		return false
	}

	switch t := v.(type) {
	case string:
		return t != ""
	case bool:
		return t
	case json.Number:
		return numericTruthy(t.String())
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.String, reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len() != 0
	}

	// decimal.Decimal and other numeric Stringers: numeric zero is falsy.
	if s, ok := v.(fmt.Stringer); ok {
		return numericTruthy(s.String())
	}
	return true
}

func numericTruthy(s string) bool {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f != 0
	}
	return s != ""
}

// JoinURL appends path to base with exactly one slash between them.
func JoinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
