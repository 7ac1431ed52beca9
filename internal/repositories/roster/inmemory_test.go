package roster_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/pokesearch/internal/errors"
	"github.com/KirkDiggler/pokesearch/internal/pkg/clock"
	"github.com/KirkDiggler/pokesearch/internal/repositories/roster"
)

type InMemoryRepositoryTestSuite struct {
	suite.Suite
	clock *clock.Fixed
	repo  *roster.InMemoryRepository
	ctx   context.Context
}

func TestInMemoryRepositorySuite(t *testing.T) {
	suite.Run(t, new(InMemoryRepositoryTestSuite))
}

func (s *InMemoryRepositoryTestSuite) SetupTest() {
	s.clock = clock.NewFixed(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.repo = roster.NewInMemory(s.clock)
	s.ctx = context.Background()
}

func (s *InMemoryRepositoryTestSuite) TestSaveAndGet() {
	names := []string{"bulbasaur", "ivysaur"}
	out, err := s.repo.Save(s.ctx, roster.SaveInput{Limit: 151, Names: names, TTL: time.Hour})
	s.Require().NoError(err)
	s.Assert().Equal(s.clock.Now(), out.StoredAt)

	got, err := s.repo.Get(s.ctx, roster.GetInput{Limit: 151})
	s.Require().NoError(err)
	s.Assert().Equal(names, got.Names)
	s.Assert().Equal(out.StoredAt, got.StoredAt)
}

func (s *InMemoryRepositoryTestSuite) TestGetReturnsCopy() {
	_, err := s.repo.Save(s.ctx, roster.SaveInput{Limit: 3, Names: []string{"a", "b", "c"}})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, roster.GetInput{Limit: 3})
	s.Require().NoError(err)
	got.Names[0] = "mutated"

	again, err := s.repo.Get(s.ctx, roster.GetInput{Limit: 3})
	s.Require().NoError(err)
	s.Assert().Equal("a", again.Names[0])
}

func (s *InMemoryRepositoryTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, roster.GetInput{Limit: 151})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *InMemoryRepositoryTestSuite) TestExpiry() {
	_, err := s.repo.Save(s.ctx, roster.SaveInput{Limit: 151, Names: []string{"mew"}, TTL: time.Minute})
	s.Require().NoError(err)

	s.clock.Advance(59 * time.Second)
	_, err = s.repo.Get(s.ctx, roster.GetInput{Limit: 151})
	s.Require().NoError(err)

	s.clock.Advance(time.Second)
	_, err = s.repo.Get(s.ctx, roster.GetInput{Limit: 151})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *InMemoryRepositoryTestSuite) TestZeroTTLNeverExpires() {
	_, err := s.repo.Save(s.ctx, roster.SaveInput{Limit: 151, Names: []string{"mew"}})
	s.Require().NoError(err)

	s.clock.Advance(24 * 365 * time.Hour)
	_, err = s.repo.Get(s.ctx, roster.GetInput{Limit: 151})
	s.Assert().NoError(err)
}

func (s *InMemoryRepositoryTestSuite) TestLimitsAreIndependent() {
	_, err := s.repo.Save(s.ctx, roster.SaveInput{Limit: 10, Names: []string{"ten"}})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, roster.GetInput{Limit: 151})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *InMemoryRepositoryTestSuite) TestValidation() {
	testCases := []struct {
		name  string
		input roster.SaveInput
	}{
		{name: "zero limit", input: roster.SaveInput{Limit: 0}},
		{name: "negative ttl", input: roster.SaveInput{Limit: 1, TTL: -time.Second}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.repo.Save(s.ctx, tc.input)
			s.Assert().True(errors.IsInvalidArgument(err))
		})
	}

	_, err := s.repo.Get(s.ctx, roster.GetInput{Limit: -1})
	s.Assert().True(errors.IsInvalidArgument(err))
}
