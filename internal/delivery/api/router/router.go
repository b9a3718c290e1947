// Package router contains routing for the facade API.
package router

import (
	"quest/config"
	"quest/internal/delivery/api/router/handler"
	workerhandler "quest/internal/delivery/worker/handler"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AdventurerHandler *handler.AdventurerHandler
	RegionHandler     *handler.RegionHandler
	AdventureHandler  *handler.AdventureHandler
	SyncHandler       *handler.SyncHandler
	PushHandler       *workerhandler.PushHandler
	Registry          *prometheus.Registry
	Config            *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	adventurerHandler *handler.AdventurerHandler
	regionHandler     *handler.RegionHandler
	adventureHandler  *handler.AdventureHandler
	syncHandler       *handler.SyncHandler
	pushHandler       *workerhandler.PushHandler
	registry          *prometheus.Registry
	config            *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		adventurerHandler: params.AdventurerHandler,
		regionHandler:     params.RegionHandler,
		adventureHandler:  params.AdventureHandler,
		syncHandler:       params.SyncHandler,
		pushHandler:       params.PushHandler,
		registry:          params.Registry,
		config:            params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	// Pub/Sub push endpoint requesting a full sync
	e.POST("/push", r.pushHandler.HandlePush)

	if r.config.Metrics != nil && r.config.Metrics.Enabled {
		e.GET(r.config.Metrics.Path, echo.WrapHandler(promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
			Registry: r.registry,
		})))
	}

	apiV1 := e.Group("/api/v1")

	adventurersGroup := apiV1.Group("/adventurers")
	{
		adventurersGroup.GET("", r.adventurerHandler.ListAdventurers)
		adventurersGroup.POST("", r.adventurerHandler.CreateAdventurer)
		adventurersGroup.GET("/by-username/:username", r.adventurerHandler.GetAdventurerByUsername)
		adventurersGroup.GET("/:id", r.adventurerHandler.GetAdventurer)
		adventurersGroup.PUT("/:id", r.adventurerHandler.UpdateAdventurer)
	}

	regionsGroup := apiV1.Group("/regions")
	{
		regionsGroup.GET("", r.regionHandler.ListRegions)
		regionsGroup.POST("", r.regionHandler.CreateRegion)
		regionsGroup.GET("/locate", r.regionHandler.LocateRegions)
		regionsGroup.GET("/:id", r.regionHandler.GetRegion)
	}

	landmarksGroup := apiV1.Group("/landmarks")
	{
		landmarksGroup.GET("", r.regionHandler.ListLandmarks)
		landmarksGroup.POST("", r.regionHandler.CreateLandmark)
	}

	adventuresGroup := apiV1.Group("/adventures")
	{
		adventuresGroup.GET("", r.adventureHandler.ListAdventures)
		adventuresGroup.POST("", r.adventureHandler.CreateAdventure)
		adventuresGroup.GET("/:id", r.adventureHandler.GetAdventure)
	}

	tokensGroup := apiV1.Group("/tokens")
	{
		tokensGroup.GET("", r.adventureHandler.ListTokens)
		tokensGroup.POST("", r.adventureHandler.CreateToken)
	}

	completedGroup := apiV1.Group("/completed-adventures")
	{
		completedGroup.GET("", r.adventureHandler.ListCompletedAdventures)
		completedGroup.POST("", r.adventureHandler.CreateCompletedAdventure)
	}

	syncGroup := apiV1.Group("/sync")
	{
		syncGroup.POST("", r.syncHandler.FullSync)
		syncGroup.GET("/last", r.syncHandler.GetLastSync)
	}

	apiV1.GET("/status", r.syncHandler.GetStatus)
}
