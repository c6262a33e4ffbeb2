package main

import (
	"seatmap/config"
	"seatmap/di"
	"seatmap/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
