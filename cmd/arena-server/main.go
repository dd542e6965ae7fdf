package main

import (
	"os"

	"github.com/WiktorStarczewski/miden-arena/internal/api"
	"github.com/WiktorStarczewski/miden-arena/internal/constants"
	"github.com/WiktorStarczewski/miden-arena/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Local development keeps secrets in a .env file; a missing file is
	// fine in deployments where the environment is set directly.
	_ = godotenv.Load()

	if os.Getenv(constants.EnvSessionSecret) == "" {
		logging.Info("SESSION_SECRET not set, using the development fallback", nil)
	}

	// Config file path may be provided via ARENA_CONFIG; defaults to
	// ./arena_config.json in the current working directory. The file is
	// optional, environment variables override it either way.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./arena_config.json"
	}
	cfg := loadConfigOrExit(configPath)
	logging.SetLevel(cfg.LogLevel)

	repo := createRepositoryOrExit(cfg.DatabasePath)

	hub := api.NewWatchHub()
	handler := api.NewMatchHandler(repo, hub, cfg.StakeAmount, cfg.ActionTimeout)
	authHandler := api.NewAuthHandler(repo)

	startTimeoutSweeper(repo, hub, cfg.SweepInterval)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// No session required
		apiRoutes.GET(constants.RouteCatalog, handler.ListCatalog)
		apiRoutes.GET(constants.RouteVersion, api.Version)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)
		apiRoutes.GET(constants.RouteOpenMatches, handler.ListOpenMatches)
		apiRoutes.GET(constants.RouteMatchByCode, handler.GetMatch)
		apiRoutes.GET(constants.RouteMatchWatch, handler.WatchMatch)
		apiRoutes.POST(constants.RouteAuthSession, authHandler.CreateSession)
		apiRoutes.DELETE(constants.RouteAuthSession, authHandler.DeleteSession)

		// Session required
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired())

		protected.POST(constants.RouteMatches, handler.CreateMatch)
		protected.POST(constants.RouteMatchJoin, handler.JoinMatch)
		protected.POST(constants.RouteMatchTeam, handler.SubmitTeam)
		protected.POST(constants.RouteMatchCommit, handler.SubmitCommit)
		protected.POST(constants.RouteMatchReveal, handler.SubmitReveal)
		protected.POST(constants.RouteMatchTimeout, handler.ClaimTimeout)
		// Profile: stats on GET, display-name update on POST
		protected.GET(constants.RoutePlayerStats, handler.GetPlayerStats)
		protected.POST(constants.RoutePlayerStats, handler.UpdatePlayerProfile)
	}

	addr := cfg.ListenAddress
	logging.Info("Arena server listening", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("HTTP server exited", err, logging.Fields{constants.LogFieldAddr: addr})
	}
}
