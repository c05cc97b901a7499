package cli

import (
	"context"

	"github.com/gabapcia/addresswatch/internal/addrwatch"
	"github.com/gabapcia/addresswatch/internal/watchlist"

	"github.com/stretchr/testify/mock"
)

// registryServiceMock mocks the watchlist service for command tests.
type registryServiceMock struct {
	mock.Mock
}

// Compile-time assertion that the mock satisfies the watchlist.Service interface
var _ watchlist.Service = (*registryServiceMock)(nil)

func (m *registryServiceMock) Load(ctx context.Context) (watchlist.WatchList, error) {
	args := m.Called(ctx)
	return args.Get(0).(watchlist.WatchList), args.Error(1)
}

func (m *registryServiceMock) StartWatching(ctx context.Context, address string) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *registryServiceMock) StopWatching(ctx context.Context, address string) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

// watcherServiceMock mocks the addrwatch service for command tests.
type watcherServiceMock struct {
	mock.Mock
}

// Compile-time assertion that the mock satisfies the addrwatch.Service interface
var _ addrwatch.Service = (*watcherServiceMock)(nil)

func (m *watcherServiceMock) Run(ctx context.Context, addresses []string) (addrwatch.RunReport, error) {
	args := m.Called(ctx, addresses)
	return args.Get(0).(addrwatch.RunReport), args.Error(1)
}
