package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"t9w.in/tankmon/config"
	"t9w.in/tankmon/handlers"
	"t9w.in/tankmon/logging"
	"t9w.in/tankmon/routes"
)

var (
	Version   = "dev"
	BuildTime = ""
)

func main() {
	versionFlag := flag.Bool("version", false, "Print version info and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("Version:   %s\n", Version)
		fmt.Printf("BuildTime: %s\n", BuildTime)
		os.Exit(0)
	}

	logger, err := logging.NewLogger("tankmon")
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to build logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := config.Load(); err != nil {
		logger.Fatal("load configuration", zap.Error(err))
	}
	if err := config.Connect(); err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}

	now := time.Now().UTC()
	if err := config.SeedDefaults(config.DB, now); err != nil {
		logger.Fatal("seed default settings", zap.Error(err))
	}
	if config.App.SeedDemoData {
		if err := config.SeedDemoReadings(config.DB, now); err != nil {
			logger.Warn("seed demo readings", zap.Error(err))
		}
	}

	handlers.Init(logger)
	handlers.Version = Version

	device, err := handlers.NewDeviceHandlers(config.App.DataDir, config.App.DisplayZone)
	if err != nil {
		logger.Fatal("set up device storage", zap.Error(err))
	}
	weather := handlers.NewWeatherProxy(
		config.App.WeatherAPIURL,
		config.App.WeatherAPIKey,
		config.App.LocationName,
		config.App.Location,
		config.App.DisplayZone,
	)

	handler := enableCORS(routes.RegisterRoutes(device, weather, logger))

	logger.Info("server starting", zap.String("port", config.App.Port))
	if err := http.ListenAndServe(":"+config.App.Port, handler); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
