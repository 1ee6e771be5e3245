package modules

import (
	"familykarting/api/handlers"
	resultrepo "familykarting/api/repositories/result"
	authservice "familykarting/api/services/auth"
	raceservice "familykarting/api/services/race"
	resultsservice "familykarting/api/services/results"
	statsservice "familykarting/api/services/stats"
	"familykarting/pkg/config"
	"familykarting/pkg/redis"
	"familykarting/pkg/storage"
	"familykarting/pkg/weather"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ModuleDependencies are the clients shared by every module.
type ModuleDependencies struct {
	DB      *gorm.DB
	Redis   *redis.RedisClient
	Storage *storage.Client
	Weather *weather.Client
	Config  *config.Config
	Logger  *logrus.Logger

	results *resultsservice.ResultsService
}

// Module containing the necessary handlers.
type Module struct {
	CircuitHandler    *handlers.CircuitHandler
	DriverHandler     *handlers.DriverHandler
	RaceHandler       *handlers.RaceHandler
	LapHandler        *handlers.LapHandler
	ScoreboardHandler *handlers.ScoreboardHandler
	WeatherHandler    *handlers.WeatherHandler
	AuthHandler       *handlers.AuthHandler
	UploadHandler     *handlers.UploadHandler
	HealthHandler     *handlers.HealthHandler

	// Used by the router for the admin group.
	AuthService  *authservice.AuthService
	StatsService *statsservice.StatsService
}

// NewModule creates a module with all the necessary handlers initialized.
func NewModule(deps *ModuleDependencies) *Module {
	deps.results = newResultsService(deps)

	statsService := statsservice.NewStatsService(&statsservice.StatsServiceDeps{DB: deps.DB})
	authService := newAuthService(deps)

	return &Module{
		CircuitHandler:    initializeCircuitHandler(deps),
		DriverHandler:     initializeDriverHandler(deps),
		RaceHandler:       initializeRaceHandler(deps),
		LapHandler:        initializeLapHandler(deps),
		ScoreboardHandler: initializeScoreboardHandler(deps, statsService),
		WeatherHandler:    initializeWeatherHandler(deps),
		AuthHandler:       initializeAuthHandler(deps, authService),
		UploadHandler:     initializeUploadHandler(deps),
		HealthHandler:     initializeHealthHandler(deps),
		AuthService:       authService,
		StatsService:      statsService,
	}
}

func newResultsService(deps *ModuleDependencies) *resultsservice.ResultsService {
	return resultsservice.NewResultsService(&resultsservice.ResultsServiceDeps{
		Store:  resultrepo.NewResultRepository(deps.DB),
		Logger: deps.Logger,
	})
}

// NewRaceService builds the race service outside of the api, used by the scheduler and the admin cli.
func NewRaceService(deps *ModuleDependencies) *raceservice.RaceService {
	if deps.results == nil {
		deps.results = newResultsService(deps)
	}

	raceDeps := &raceservice.RaceServiceDeps{
		DB:       deps.DB,
		Results:  deps.results,
		Location: deps.Config.Location(),
		Logger:   deps.Logger,
	}
	// Keep the interface nil without a client.
	if deps.Weather != nil {
		raceDeps.Weather = deps.Weather
	}

	return raceservice.NewRaceService(raceDeps)
}
