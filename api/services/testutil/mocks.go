package testutil

import (
	"context"
	"io"
	"testing"
	"time"

	"familykarting/api/filters"
	circuitrepo "familykarting/api/repositories/circuit"
	driverrepo "familykarting/api/repositories/driver"
	statsrepo "familykarting/api/repositories/stats"
	"familykarting/pkg/database/models"
	"familykarting/pkg/scoring"
	"familykarting/pkg/weather"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

const DatabaseError = "database error occurred"

// Assert the expectations of all mocks.
func VerifyAllMocks(t *testing.T, mocks ...any) {
	t.Helper()

	for _, m := range mocks {
		if mockObj, ok := m.(interface{ AssertExpectations(mock.TestingT) bool }); ok {
			mockObj.AssertExpectations(t)
		}
	}
}

// Get returns the argument at index as T, nil arguments become the zero value.
func Get[T any](args mock.Arguments, index int) T {
	var zero T
	if v := args.Get(index); v != nil {
		return v.(T)
	}
	return zero
}

// ============================================================================
// Mock Implementations of the repositories.
// ============================================================================

// Result store used by the results and scoreboard services.
type MockResultRepository struct {
	mock.Mock
}

func (m *MockResultRepository) GetRaceByID(ctx context.Context, id uuid.UUID) (*models.Race, error) {
	args := m.Called(ctx, id)
	return Get[*models.Race](args, 0), args.Error(1)
}

func (m *MockResultRepository) GetLapsByRace(ctx context.Context, raceID uuid.UUID) ([]scoring.Lap, error) {
	args := m.Called(ctx, raceID)
	return Get[[]scoring.Lap](args, 0), args.Error(1)
}

func (m *MockResultRepository) ReplaceRaceResults(ctx context.Context, raceID uuid.UUID, results []scoring.Result) error {
	args := m.Called(ctx, raceID, results)
	return args.Error(0)
}

func (m *MockResultRepository) ClearRaceResults(ctx context.Context, raceID uuid.UUID) error {
	args := m.Called(ctx, raceID)
	return args.Error(0)
}

func (m *MockResultRepository) GetResultRows(ctx context.Context) ([]scoring.ResultRow, error) {
	args := m.Called(ctx)
	return Get[[]scoring.ResultRow](args, 0), args.Error(1)
}

// Circuit repository mock.
type MockCircuitRepository struct {
	mock.Mock
}

func (m *MockCircuitRepository) ListCircuits(ctx context.Context, filters *filters.CircuitFilter) ([]models.Circuit, error) {
	args := m.Called(ctx, filters)
	return Get[[]models.Circuit](args, 0), args.Error(1)
}

func (m *MockCircuitRepository) GetCircuitByID(ctx context.Context, id uuid.UUID) (*models.Circuit, error) {
	args := m.Called(ctx, id)
	return Get[*models.Circuit](args, 0), args.Error(1)
}

func (m *MockCircuitRepository) CreateCircuit(ctx context.Context, circuit *models.Circuit) error {
	args := m.Called(ctx, circuit)
	return args.Error(0)
}

func (m *MockCircuitRepository) UpdateCircuit(ctx context.Context, circuit *models.Circuit) error {
	args := m.Called(ctx, circuit)
	return args.Error(0)
}

func (m *MockCircuitRepository) DeleteCircuit(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCircuitRepository) SetTimezone(ctx context.Context, id uuid.UUID, timezone string) error {
	args := m.Called(ctx, id, timezone)
	return args.Error(0)
}

func (m *MockCircuitRepository) GetBestLap(ctx context.Context, id uuid.UUID) (*circuitrepo.BestLap, error) {
	args := m.Called(ctx, id)
	return Get[*circuitrepo.BestLap](args, 0), args.Error(1)
}

// Driver repository mock.
type MockDriverRepository struct {
	mock.Mock
}

func (m *MockDriverRepository) ListDrivers(ctx context.Context) ([]driverrepo.DriverSummary, error) {
	args := m.Called(ctx)
	return Get[[]driverrepo.DriverSummary](args, 0), args.Error(1)
}

func (m *MockDriverRepository) GetDriverByID(ctx context.Context, id uuid.UUID) (*models.Driver, error) {
	args := m.Called(ctx, id)
	return Get[*models.Driver](args, 0), args.Error(1)
}

func (m *MockDriverRepository) CreateDriver(ctx context.Context, driver *models.Driver) error {
	args := m.Called(ctx, driver)
	return args.Error(0)
}

func (m *MockDriverRepository) UpdateDriver(ctx context.Context, driver *models.Driver) error {
	args := m.Called(ctx, driver)
	return args.Error(0)
}

func (m *MockDriverRepository) DeleteDriver(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDriverRepository) GetDriverResults(ctx context.Context, id uuid.UUID) ([]driverrepo.DriverResultRow, error) {
	args := m.Called(ctx, id)
	return Get[[]driverrepo.DriverResultRow](args, 0), args.Error(1)
}

func (m *MockDriverRepository) GetDriverBestLap(ctx context.Context, id uuid.UUID) (*float64, error) {
	args := m.Called(ctx, id)
	return Get[*float64](args, 0), args.Error(1)
}

// Race repository mock.
type MockRaceRepository struct {
	mock.Mock
}

func (m *MockRaceRepository) ListRaces(ctx context.Context, filters *filters.RaceFilter) ([]models.Race, error) {
	args := m.Called(ctx, filters)
	return Get[[]models.Race](args, 0), args.Error(1)
}

func (m *MockRaceRepository) ListRacesByCircuit(ctx context.Context, circuitID uuid.UUID) ([]models.Race, error) {
	args := m.Called(ctx, circuitID)
	return Get[[]models.Race](args, 0), args.Error(1)
}

func (m *MockRaceRepository) GetRaceByID(ctx context.Context, id uuid.UUID) (*models.Race, error) {
	args := m.Called(ctx, id)
	return Get[*models.Race](args, 0), args.Error(1)
}

func (m *MockRaceRepository) GetRaceDetail(ctx context.Context, id uuid.UUID) (*models.Race, error) {
	args := m.Called(ctx, id)
	return Get[*models.Race](args, 0), args.Error(1)
}

func (m *MockRaceRepository) CreateRace(ctx context.Context, race *models.Race, driverIDs []uuid.UUID, laps []models.Lap) error {
	args := m.Called(ctx, race, driverIDs, laps)
	return args.Error(0)
}

func (m *MockRaceRepository) UpdateRace(ctx context.Context, race *models.Race, driverIDs []uuid.UUID) error {
	args := m.Called(ctx, race, driverIDs)
	return args.Error(0)
}

func (m *MockRaceRepository) DeleteRace(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRaceRepository) SetWeather(ctx context.Context, id uuid.UUID, weather models.Weather) error {
	args := m.Called(ctx, id, weather)
	return args.Error(0)
}

func (m *MockRaceRepository) ListDoneRaceIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	return Get[[]uuid.UUID](args, 0), args.Error(1)
}

func (m *MockRaceRepository) ListRacesMissingWeather(ctx context.Context, before time.Time) ([]models.Race, error) {
	args := m.Called(ctx, before)
	return Get[[]models.Race](args, 0), args.Error(1)
}

// Lap repository mock.
type MockLapRepository struct {
	mock.Mock
}

func (m *MockLapRepository) ListLaps(ctx context.Context, filters *filters.LapFilter) ([]models.Lap, error) {
	args := m.Called(ctx, filters)
	return Get[[]models.Lap](args, 0), args.Error(1)
}

func (m *MockLapRepository) GetLapByID(ctx context.Context, id uuid.UUID) (*models.Lap, error) {
	args := m.Called(ctx, id)
	return Get[*models.Lap](args, 0), args.Error(1)
}

func (m *MockLapRepository) CreateLaps(ctx context.Context, laps []models.Lap) error {
	args := m.Called(ctx, laps)
	return args.Error(0)
}

func (m *MockLapRepository) UpdateLap(ctx context.Context, lap *models.Lap) error {
	args := m.Called(ctx, lap)
	return args.Error(0)
}

func (m *MockLapRepository) DeleteLap(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Admin repository mock.
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	args := m.Called(ctx, email)
	return Get[*models.Admin](args, 0), args.Error(1)
}

func (m *MockAdminRepository) GetAdminByID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	args := m.Called(ctx, id)
	return Get[*models.Admin](args, 0), args.Error(1)
}

func (m *MockAdminRepository) UpsertAdmin(ctx context.Context, admin *models.Admin) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

// Stats repository mock.
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) GetCounts(ctx context.Context) (*statsrepo.Counts, error) {
	args := m.Called(ctx)
	return Get[*statsrepo.Counts](args, 0), args.Error(1)
}

// ============================================================================
// Mock Implementations of the external clients.
// ============================================================================

// Redis session store mock.
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockSessionStore) Del(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

// Bucket mock.
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) PutObject(ctx context.Context, bucket, key string, body io.Reader, contentType string) error {
	args := m.Called(ctx, bucket, key, body, contentType)
	return args.Error(0)
}

func (m *MockObjectStore) DeleteObject(ctx context.Context, bucket, key string) error {
	args := m.Called(ctx, bucket, key)
	return args.Error(0)
}

func (m *MockObjectStore) PublicURL(bucket, key string) string {
	args := m.Called(bucket, key)
	return args.String(0)
}

func (m *MockObjectStore) KeyFromURL(bucket, url string) (string, bool) {
	args := m.Called(bucket, url)
	return args.String(0), args.Bool(1)
}

// Weather provider mock.
type MockWeatherProvider struct {
	mock.Mock
}

func (m *MockWeatherProvider) ForDate(ctx context.Context, lat, lon float64, date time.Time) (*weather.Report, error) {
	args := m.Called(ctx, lat, lon, date)
	return Get[*weather.Report](args, 0), args.Error(1)
}

func (m *MockWeatherProvider) Timezone(ctx context.Context, lat, lon float64) (string, error) {
	args := m.Called(ctx, lat, lon)
	return args.String(0), args.Error(1)
}
