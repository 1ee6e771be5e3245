package modules

import (
	"familykarting/api/handlers"
	driverservice "familykarting/api/services/driver"
)

func initializeDriverHandler(deps *ModuleDependencies) *handlers.DriverHandler {
	driverDeps := &driverservice.DriverServiceDeps{
		DB:      deps.DB,
		Results: deps.results,
		Logger:  deps.Logger,
	}

	driverService := driverservice.NewDriverService(driverDeps)

	driverHandlerDeps := &handlers.DriverHandlerDependencies{
		DriverService: driverService,
		Logger:        deps.Logger,
	}

	return handlers.NewDriverHandler(driverHandlerDeps)
}
