package mongo

import (
	"context"
	"errors"
	"sync"
	"testing"

	"geo-users/internal/config"
	"geo-users/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const mongoTestURI = "mongodb://invalid/?connectTimeoutMS=1&serverSelectionTimeoutMS=1"

var errStubPing = errors.New("stub ping failed")

// stubDriver implements the driver interface for testing
type stubDriver struct {
	connectErr error
	pings      *int
}

func (s stubDriver) Connect(_ context.Context, opts *options.ClientOptions) (*mongo.Client, error) {
	if s.connectErr != nil {
		return nil, s.connectErr
	}
	// mongo.Connect is lazy, so this never touches the network
	return mongo.Connect(opts)
}

func (s stubDriver) Ping(_ context.Context, _ *mongo.Client) error {
	if s.pings != nil {
		*s.pings++
	}
	return errStubPing
}

func (stubDriver) Disconnect(ctx context.Context, cli *mongo.Client) error {
	if cli == nil {
		return nil
	}
	return cli.Disconnect(ctx)
}

// withDriver temporarily replaces the global driver for testing
func withDriver(t *testing.T, d driver) {
	t.Helper()
	old := drv
	drv = d
	reset()
	t.Cleanup(func() {
		drv = old
		reset()
	})
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Config{
		MongoURI:    mongoTestURI,
		MongoDBName: "test",
		LogLevel:    "error",
		LogFormat:   "json",
	}
	_, err := logger.Init(cfg)
	require.NoError(t, err)
	return cfg
}

func TestInitConnectFailure(t *testing.T) {
	withDriver(t, stubDriver{connectErr: context.DeadlineExceeded})
	cfg := testConfig(t)

	cli, database, err := Init(context.Background(), cfg, logger.L())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, cli, "client should be nil on connection failure")
	assert.Nil(t, database, "db should be nil on connection failure")
	assert.Nil(t, Client())
	assert.Nil(t, DB())
}

func TestInitPingFailureLeavesNoSingleton(t *testing.T) {
	pings := 0
	withDriver(t, stubDriver{pings: &pings})
	cfg := testConfig(t)

	_, _, err1 := Init(context.Background(), cfg, logger.L())
	_, _, err2 := Init(context.Background(), cfg, logger.L())

	assert.ErrorIs(t, err1, errStubPing)
	assert.ErrorIs(t, err2, errStubPing)
	assert.Equal(t, 2, pings, "a failed Init must be retried on the next call")
	assert.Nil(t, Client())
}

func TestInitConcurrency(t *testing.T) {
	withDriver(t, stubDriver{connectErr: context.DeadlineExceeded})
	cfg := testConfig(t)

	const goroutines = 10
	var wg sync.WaitGroup
	errs := make([]error, goroutines)

	for i := range goroutines {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			_, _, errs[index] = Init(context.Background(), cfg, logger.L())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.Error(t, err, "Init call %d should fail", i)
	}
	assert.Nil(t, Client())
}

func TestShutdownWithoutInit(t *testing.T) {
	withDriver(t, stubDriver{connectErr: context.DeadlineExceeded})

	assert.ErrorIs(t, Shutdown(context.Background()), ErrNotInitialized)
	assert.ErrorIs(t, Shutdown(context.Background()), ErrNotInitialized, "Shutdown must be safe to repeat")
}
