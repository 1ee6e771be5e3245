package jobs

import (
	"context"
	"errors"
	"strings"
	"testing"

	"familykarting/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockRaceMaintainer struct{ mock.Mock }

func (m *mockRaceMaintainer) RecalculateAll(ctx context.Context) (int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *mockRaceMaintainer) BackfillWeather(ctx context.Context) (int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Error(2)
}

type mockUploader struct{ mock.Mock }

func (m *mockUploader) Upload(ctx context.Context, objectKey string) error {
	return m.Called(ctx, objectKey).Error(0)
}

func TestRecalculateResults(t *testing.T) {
	t.Run("partialFailureIsNotAnError", func(t *testing.T) {
		races := new(mockRaceMaintainer)
		races.On("RecalculateAll", mock.Anything).Return(12, 1, nil)

		assert.NoError(t, RecalculateResults(races, logger.Discard()))
		races.AssertExpectations(t)
	})

	t.Run("listingFails", func(t *testing.T) {
		races := new(mockRaceMaintainer)
		races.On("RecalculateAll", mock.Anything).Return(0, 0, errors.New("database error"))

		assert.ErrorContains(t, RecalculateResults(races, logger.Discard()), "database error")
	})
}

func TestBackfillWeather(t *testing.T) {
	races := new(mockRaceMaintainer)
	races.On("BackfillWeather", mock.Anything).Return(3, 0, nil)

	assert.NoError(t, BackfillWeather(races, logger.Discard()))

	races = new(mockRaceMaintainer)
	races.On("BackfillWeather", mock.Anything).Return(0, 0, errors.New("database error"))

	assert.Error(t, BackfillWeather(races, logger.Discard()))
}

func TestArchiveLogs(t *testing.T) {
	uploader := new(mockUploader)
	uploader.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "scheduler/") && strings.HasSuffix(key, ".log")
	})).Return(nil)

	assert.NoError(t, ArchiveLogs(uploader, logger.Discard()))
	uploader.AssertExpectations(t)
}
