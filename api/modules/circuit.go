package modules

import (
	"familykarting/api/handlers"
	circuitservice "familykarting/api/services/circuit"
)

func initializeCircuitHandler(deps *ModuleDependencies) *handlers.CircuitHandler {
	circuitDeps := &circuitservice.CircuitServiceDeps{
		DB:        deps.DB,
		Timezones: deps.Weather,
		Logger:    deps.Logger,
	}

	circuitService := circuitservice.NewCircuitService(circuitDeps)

	circuitHandlerDeps := &handlers.CircuitHandlerDependencies{
		CircuitService: circuitService,
		Logger:         deps.Logger,
	}

	return handlers.NewCircuitHandler(circuitHandlerDeps)
}
