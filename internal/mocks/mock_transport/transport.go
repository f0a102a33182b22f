// Package mock_transport provides a testify mock of swingby.Transport.
package mock_transport

import (
	"context"

	"github.com/stretchr/testify/mock"
	swingby "github.com/zenGate-Global/swingby-connector-go"
)

// MockTransport records calls made by a client and replays canned responses.
type MockTransport struct {
	mock.Mock
}

var _ swingby.Transport = (*MockTransport)(nil)

// NewMockTransport creates a mock and registers AssertExpectations on cleanup.
func NewMockTransport(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransport {
	m := &MockTransport{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Get provides a mock function with given fields: ctx, endpoint, query.
func (m *MockTransport) Get(
	ctx context.Context,
	endpoint string,
	query swingby.Query,
) (any, error) {
	args := m.Called(ctx, endpoint, query)
	return args.Get(0), args.Error(1)
}

// GetText provides a mock function with given fields: ctx, endpoint, query.
func (m *MockTransport) GetText(
	ctx context.Context,
	endpoint string,
	query swingby.Query,
) (string, error) {
	args := m.Called(ctx, endpoint, query)
	return args.String(0), args.Error(1)
}

// Post provides a mock function with given fields: ctx, endpoint, query, body.
func (m *MockTransport) Post(
	ctx context.Context,
	endpoint string,
	query swingby.Query,
	body swingby.Body,
) (any, error) {
	args := m.Called(ctx, endpoint, query, body)
	return args.Get(0), args.Error(1)
}
