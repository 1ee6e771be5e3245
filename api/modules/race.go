package modules

import (
	"familykarting/api/handlers"
	lapservice "familykarting/api/services/lap"
)

func initializeRaceHandler(deps *ModuleDependencies) *handlers.RaceHandler {
	raceHandlerDeps := &handlers.RaceHandlerDependencies{
		RaceService: NewRaceService(deps),
		Logger:      deps.Logger,
	}

	return handlers.NewRaceHandler(raceHandlerDeps)
}

func initializeLapHandler(deps *ModuleDependencies) *handlers.LapHandler {
	lapDeps := &lapservice.LapServiceDeps{
		DB:      deps.DB,
		Results: deps.results,
		Logger:  deps.Logger,
	}

	lapService := lapservice.NewLapService(lapDeps)

	lapHandlerDeps := &handlers.LapHandlerDependencies{
		LapService: lapService,
		Logger:     deps.Logger,
	}

	return handlers.NewLapHandler(lapHandlerDeps)
}
