package redis

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	tContainer "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/redpulse/client-go/store"
)

type RedisStoreTestSuite struct {
	suite.Suite
	ctx       context.Context
	container tContainer.Container
	store     *Store
}

func (s *RedisStoreTestSuite) SetupSuite() {
	s.ctx = context.Background()

	req := tContainer.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}
	container, err := tContainer.GenericContainer(s.ctx, tContainer.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	s.Require().NoError(err)

	s.container = container

	host, err := container.Host(s.ctx)
	s.Require().NoError(err)

	port, err := container.MappedPort(s.ctx, "6379")
	s.Require().NoError(err)

	redisStore, err := New(s.ctx, Config{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	s.Require().NoError(err)

	s.store = redisStore
}

func (s *RedisStoreTestSuite) TearDownSuite() {
	s.Require().NoError(s.store.Close())
	s.Require().NoError(s.container.Terminate(s.ctx))
}

func (s *RedisStoreTestSuite) TestGetSetRemove() {
	_, err := s.store.Get(s.ctx, store.KeyDemoSession)
	s.ErrorIs(err, store.ErrKeyNotFound)

	s.Require().NoError(s.store.Set(s.ctx, store.KeyDemoSession, `{"access_token":"demo"}`))

	value, err := s.store.Get(s.ctx, store.KeyDemoSession)
	s.Require().NoError(err)
	s.Equal(`{"access_token":"demo"}`, value)

	s.Require().NoError(s.store.Remove(s.ctx, store.KeyDemoSession))
	_, err = s.store.Get(s.ctx, store.KeyDemoSession)
	s.ErrorIs(err, store.ErrKeyNotFound)
}

func (s *RedisStoreTestSuite) TestPing() {
	s.NoError(s.store.Ping(s.ctx))
}

func TestRedisStoreTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed store test in short mode")
	}
	suite.Run(t, new(RedisStoreTestSuite))
}
