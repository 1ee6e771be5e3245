// Package resultsmock mocks the results service for its callers.
// It lives apart from testutil since the results service tests import testutil.
package resultsmock

import (
	"context"

	resultsservice "familykarting/api/services/results"
	"familykarting/api/services/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockResultsService struct {
	mock.Mock
}

func (m *MockResultsService) Calculate(ctx context.Context, raceID uuid.UUID) (*resultsservice.Outcome, error) {
	args := m.Called(ctx, raceID)
	return testutil.Get[*resultsservice.Outcome](args, 0), args.Error(1)
}

func (m *MockResultsService) Refresh(ctx context.Context, raceID uuid.UUID) (*resultsservice.Outcome, error) {
	args := m.Called(ctx, raceID)
	return testutil.Get[*resultsservice.Outcome](args, 0), args.Error(1)
}

func (m *MockResultsService) Clear(ctx context.Context, raceID uuid.UUID) error {
	args := m.Called(ctx, raceID)
	return args.Error(0)
}

func (m *MockResultsService) RecalculateAll(ctx context.Context, raceIDs []uuid.UUID) (int, int) {
	args := m.Called(ctx, raceIDs)
	return args.Int(0), args.Int(1)
}

// Outcome builds an outcome with no results.
func Outcome(raceID uuid.UUID, status string) *resultsservice.Outcome {
	return &resultsservice.Outcome{RaceID: raceID, Status: status}
}
