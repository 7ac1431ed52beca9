package roster_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/pokesearch/internal/errors"
	"github.com/KirkDiggler/pokesearch/internal/pkg/clock"
	"github.com/KirkDiggler/pokesearch/internal/repositories/roster"
	"github.com/KirkDiggler/pokesearch/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr    *miniredis.Miniredis
	clock *clock.Fixed
	repo  roster.Repository
	ctx   context.Context
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, mr := testutils.CreateTestRedisClient(s.T())
	s.mr = mr
	s.clock = clock.NewFixed(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	repo, err := roster.NewRedis(&roster.RedisConfig{Client: client, Clock: s.clock})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TestSaveAndGet() {
	names := []string{"bulbasaur", "ivysaur", "venusaur"}
	out, err := s.repo.Save(s.ctx, roster.SaveInput{Limit: 151, Names: names, TTL: time.Hour})
	s.Require().NoError(err)
	s.Assert().True(out.StoredAt.Equal(s.clock.Now()))

	s.Assert().True(s.mr.Exists("roster:pokemon:151"))
	s.Assert().Equal(time.Hour, s.mr.TTL("roster:pokemon:151"))

	got, err := s.repo.Get(s.ctx, roster.GetInput{Limit: 151})
	s.Require().NoError(err)
	s.Assert().Equal(names, got.Names)
	s.Assert().True(got.StoredAt.Equal(out.StoredAt))
}

func (s *RedisRepositoryTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, roster.GetInput{Limit: 151})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestExpiry() {
	_, err := s.repo.Save(s.ctx, roster.SaveInput{Limit: 151, Names: []string{"mew"}, TTL: time.Minute})
	s.Require().NoError(err)

	s.mr.FastForward(time.Minute)

	_, err = s.repo.Get(s.ctx, roster.GetInput{Limit: 151})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestCorruptedValue() {
	s.Require().NoError(s.mr.Set("roster:pokemon:151", "{not json"))

	_, err := s.repo.Get(s.ctx, roster.GetInput{Limit: 151})
	s.Require().Error(err)
	s.Assert().True(errors.IsInternal(err))
}

func (s *RedisRepositoryTestSuite) TestStorageFailure() {
	s.mr.Close()

	_, err := s.repo.Save(s.ctx, roster.SaveInput{Limit: 151, Names: []string{"mew"}})
	s.Require().Error(err)
	s.Assert().True(errors.IsInternal(err))
}

func (s *RedisRepositoryTestSuite) TestNewRedis_RequiresClient() {
	_, err := roster.NewRedis(&roster.RedisConfig{})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = roster.NewRedis(nil)
	s.Assert().True(errors.IsInvalidArgument(err))
}
