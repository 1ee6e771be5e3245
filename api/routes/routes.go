package routes

import (
	"familykarting/api/handlers"
	"familykarting/pkg/metrics"

	"github.com/gin-gonic/gin"
)

type Router struct {
	engine *gin.Engine
	api    *gin.RouterGroup
	admin  *gin.RouterGroup
}

// NewRouter creates the router, admin routes go through the guard middlewares.
func NewRouter(engine *gin.Engine, adminGuard ...gin.HandlerFunc) *Router {
	api := engine.Group("/api/v1")
	return &Router{
		engine: engine,
		api:    api,
		admin:  api.Group("", adminGuard...),
	}
}

func (r *Router) SetupRoutes(handlerList ...any) {
	for _, h := range handlerList {
		switch handler := h.(type) {
		case *handlers.CircuitHandler:
			r.registerCircuitHandler(handler)
		case *handlers.DriverHandler:
			r.registerDriverHandler(handler)
		case *handlers.RaceHandler:
			r.registerRaceHandler(handler)
		case *handlers.LapHandler:
			r.registerLapHandler(handler)
		case *handlers.ScoreboardHandler:
			r.registerScoreboardHandler(handler)
		case *handlers.WeatherHandler:
			r.registerWeatherHandler(handler)
		case *handlers.AuthHandler:
			r.registerAuthHandler(handler)
		case *handlers.UploadHandler:
			r.registerUploadHandler(handler)
		case *handlers.HealthHandler:
			r.registerHealthHandler(handler)
		}
	}
}

// Register the circuit handler.
func (r *Router) registerCircuitHandler(handler *handlers.CircuitHandler) {
	circuits := r.api.Group("/circuits")
	{
		circuits.GET("", handler.ListCircuits)
		circuits.GET("/:id", handler.GetCircuit)
		circuits.GET("/:id/hours", handler.GetCircuitHours)
	}

	admin := r.admin.Group("/circuits")
	{
		admin.POST("", handler.CreateCircuit)
		admin.PUT("/:id", handler.UpdateCircuit)
		admin.DELETE("/:id", handler.DeleteCircuit)
	}
}

// Register the driver handler.
func (r *Router) registerDriverHandler(handler *handlers.DriverHandler) {
	drivers := r.api.Group("/drivers")
	{
		drivers.GET("", handler.ListDrivers)
		drivers.GET("/:id", handler.GetDriver)
	}

	admin := r.admin.Group("/drivers")
	{
		admin.POST("", handler.CreateDriver)
		admin.PUT("/:id", handler.UpdateDriver)
		admin.DELETE("/:id", handler.DeleteDriver)
	}
}

// Register the race handler.
func (r *Router) registerRaceHandler(handler *handlers.RaceHandler) {
	races := r.api.Group("/races")
	{
		races.GET("", handler.ListRaces)
		races.GET("/:id", handler.GetRace)
	}

	admin := r.admin.Group("/races")
	{
		admin.POST("", handler.CreateRace)
		admin.PUT("/:id", handler.UpdateRace)
		admin.DELETE("/:id", handler.DeleteRace)
		admin.POST("/:id/results/recalculate", handler.RecalculateResults)
		admin.POST("/:id/weather", handler.FetchWeather)
		admin.DELETE("/:id/weather", handler.ClearWeather)
	}
}

// Register the lap handler.
func (r *Router) registerLapHandler(handler *handlers.LapHandler) {
	r.api.GET("/laps", handler.ListLaps)

	admin := r.admin.Group("/laps")
	{
		admin.POST("", handler.CreateLaps)
		admin.PUT("/:id", handler.UpdateLap)
		admin.DELETE("/:id", handler.DeleteLap)
	}
}

// Register the scoreboard and stats endpoints.
func (r *Router) registerScoreboardHandler(handler *handlers.ScoreboardHandler) {
	r.api.GET("/scoreboard", handler.GetScoreboard)
	r.api.GET("/stats", handler.GetStats)
}

// Register the weather lookup.
func (r *Router) registerWeatherHandler(handler *handlers.WeatherHandler) {
	r.api.GET("/weather", handler.GetWeather)
}

// Register the session endpoints.
func (r *Router) registerAuthHandler(handler *handlers.AuthHandler) {
	auth := r.api.Group("/auth")
	{
		auth.POST("/login", handler.Login)
		auth.POST("/logout", handler.Logout)
		auth.GET("/session", handler.GetSession)
	}
}

// Register the uploads, admin only.
func (r *Router) registerUploadHandler(handler *handlers.UploadHandler) {
	uploads := r.admin.Group("/uploads")
	{
		uploads.POST("/photos", handler.UploadPhoto)
		uploads.DELETE("/photos", handler.DeletePhoto)
	}
}

// Health and metrics stay outside of the versioned api.
func (r *Router) registerHealthHandler(handler *handlers.HealthHandler) {
	r.engine.GET("/healthz", handler.Health)
	r.engine.GET("/metrics", gin.WrapH(metrics.Handler()))
}

// Engine returns the gin engine, served by the http server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
