package modules

import (
	"familykarting/api/handlers"
	resultrepo "familykarting/api/repositories/result"
	scoreboardservice "familykarting/api/services/scoreboard"
	statsservice "familykarting/api/services/stats"
)

func initializeScoreboardHandler(deps *ModuleDependencies, statsService *statsservice.StatsService) *handlers.ScoreboardHandler {
	scoreboardDeps := &scoreboardservice.ScoreboardServiceDeps{
		Rows:     resultrepo.NewResultRepository(deps.DB),
		Location: deps.Config.Location(),
		Logger:   deps.Logger,
	}

	scoreboardHandlerDeps := &handlers.ScoreboardHandlerDependencies{
		ScoreboardService: scoreboardservice.NewScoreboardService(scoreboardDeps),
		StatsService:      statsService,
		Logger:            deps.Logger,
	}

	return handlers.NewScoreboardHandler(scoreboardHandlerDeps)
}

func initializeWeatherHandler(deps *ModuleDependencies) *handlers.WeatherHandler {
	return handlers.NewWeatherHandler(&handlers.WeatherHandlerDependencies{
		Weather: deps.Weather,
		Logger:  deps.Logger,
	})
}
