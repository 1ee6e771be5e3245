package handlers

import (
	"context"
	"io"
	"time"

	"familykarting/api/dto"
	"familykarting/api/filters"
	resultsservice "familykarting/api/services/results"
	"familykarting/api/services/testutil"
	"familykarting/pkg/database/models"
	"familykarting/pkg/scoring"
	"familykarting/pkg/weather"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockCircuitService struct{ mock.Mock }

func (m *mockCircuitService) ListCircuits(ctx context.Context, filters *filters.CircuitFilter) ([]models.Circuit, error) {
	args := m.Called(ctx, filters)
	return testutil.Get[[]models.Circuit](args, 0), args.Error(1)
}

func (m *mockCircuitService) GetCircuitDetail(ctx context.Context, id uuid.UUID) (*dto.CircuitDetail, error) {
	args := m.Called(ctx, id)
	return testutil.Get[*dto.CircuitDetail](args, 0), args.Error(1)
}

func (m *mockCircuitService) GetCircuitHours(ctx context.Context, id uuid.UUID) (*dto.CircuitHours, error) {
	args := m.Called(ctx, id)
	return testutil.Get[*dto.CircuitHours](args, 0), args.Error(1)
}

func (m *mockCircuitService) CreateCircuit(ctx context.Context, input *dto.CircuitInput) (*models.Circuit, error) {
	args := m.Called(ctx, input)
	return testutil.Get[*models.Circuit](args, 0), args.Error(1)
}

func (m *mockCircuitService) UpdateCircuit(ctx context.Context, id uuid.UUID, input *dto.CircuitInput) (*models.Circuit, error) {
	args := m.Called(ctx, id, input)
	return testutil.Get[*models.Circuit](args, 0), args.Error(1)
}

func (m *mockCircuitService) DeleteCircuit(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockRaceService struct{ mock.Mock }

func (m *mockRaceService) ListRaces(ctx context.Context, filters *filters.RaceFilter) ([]models.Race, error) {
	args := m.Called(ctx, filters)
	return testutil.Get[[]models.Race](args, 0), args.Error(1)
}

func (m *mockRaceService) GetRaceDetail(ctx context.Context, id uuid.UUID) (*dto.RaceDetail, error) {
	args := m.Called(ctx, id)
	return testutil.Get[*dto.RaceDetail](args, 0), args.Error(1)
}

func (m *mockRaceService) CreateRace(ctx context.Context, input *dto.RaceInput) (*models.Race, error) {
	args := m.Called(ctx, input)
	return testutil.Get[*models.Race](args, 0), args.Error(1)
}

func (m *mockRaceService) UpdateRace(ctx context.Context, id uuid.UUID, input *dto.RaceInput) (*models.Race, error) {
	args := m.Called(ctx, id, input)
	return testutil.Get[*models.Race](args, 0), args.Error(1)
}

func (m *mockRaceService) DeleteRace(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRaceService) RecalculateResults(ctx context.Context, id uuid.UUID) (*resultsservice.Outcome, error) {
	args := m.Called(ctx, id)
	return testutil.Get[*resultsservice.Outcome](args, 0), args.Error(1)
}

func (m *mockRaceService) FetchWeather(ctx context.Context, id uuid.UUID) (*models.Race, error) {
	args := m.Called(ctx, id)
	return testutil.Get[*models.Race](args, 0), args.Error(1)
}

func (m *mockRaceService) ClearWeather(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockLapService struct{ mock.Mock }

func (m *mockLapService) ListLaps(ctx context.Context, filters *filters.LapFilter) ([]models.Lap, error) {
	args := m.Called(ctx, filters)
	return testutil.Get[[]models.Lap](args, 0), args.Error(1)
}

func (m *mockLapService) CreateLap(ctx context.Context, input *dto.LapInput) (*models.Lap, error) {
	args := m.Called(ctx, input)
	return testutil.Get[*models.Lap](args, 0), args.Error(1)
}

func (m *mockLapService) CreateLaps(ctx context.Context, input *dto.LapBatchInput) ([]models.Lap, error) {
	args := m.Called(ctx, input)
	return testutil.Get[[]models.Lap](args, 0), args.Error(1)
}

func (m *mockLapService) UpdateLap(ctx context.Context, id uuid.UUID, input *dto.LapInput) (*models.Lap, error) {
	args := m.Called(ctx, id, input)
	return testutil.Get[*models.Lap](args, 0), args.Error(1)
}

func (m *mockLapService) DeleteLap(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockScoreboardService struct{ mock.Mock }

func (m *mockScoreboardService) GetScoreboard(ctx context.Context, filter *filters.ScoreboardFilter) scoring.Scoreboard {
	return m.Called(ctx, filter).Get(0).(scoring.Scoreboard)
}

type mockStatsService struct{ mock.Mock }

func (m *mockStatsService) GetStats(ctx context.Context) (*dto.Stats, error) {
	args := m.Called(ctx)
	return testutil.Get[*dto.Stats](args, 0), args.Error(1)
}

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, *dto.Session, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), testutil.Get[*dto.Session](args, 1), args.Error(2)
}

func (m *mockAuthService) GetSession(ctx context.Context, token string) (*dto.Session, error) {
	args := m.Called(ctx, token)
	return testutil.Get[*dto.Session](args, 0), args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type mockPhotoService struct{ mock.Mock }

func (m *mockPhotoService) Upload(ctx context.Context, folder string, r io.Reader) (*dto.Upload, error) {
	args := m.Called(ctx, folder, r)
	return testutil.Get[*dto.Upload](args, 0), args.Error(1)
}

func (m *mockPhotoService) Delete(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}

type mockWeatherProvider struct{ mock.Mock }

func (m *mockWeatherProvider) ForDate(ctx context.Context, lat, lon float64, date time.Time) (*weather.Report, error) {
	args := m.Called(ctx, lat, lon, date)
	return testutil.Get[*weather.Report](args, 0), args.Error(1)
}

type mockDriverService struct{ mock.Mock }

func (m *mockDriverService) ListDrivers(ctx context.Context) ([]dto.DriverSummary, error) {
	args := m.Called(ctx)
	return testutil.Get[[]dto.DriverSummary](args, 0), args.Error(1)
}

func (m *mockDriverService) GetDriverDetail(ctx context.Context, id uuid.UUID) (*dto.DriverDetail, error) {
	args := m.Called(ctx, id)
	return testutil.Get[*dto.DriverDetail](args, 0), args.Error(1)
}

func (m *mockDriverService) CreateDriver(ctx context.Context, input *dto.DriverInput) (*models.Driver, error) {
	args := m.Called(ctx, input)
	return testutil.Get[*models.Driver](args, 0), args.Error(1)
}

func (m *mockDriverService) UpdateDriver(ctx context.Context, id uuid.UUID, input *dto.DriverInput) (*models.Driver, error) {
	args := m.Called(ctx, id, input)
	return testutil.Get[*models.Driver](args, 0), args.Error(1)
}

func (m *mockDriverService) DeleteDriver(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
