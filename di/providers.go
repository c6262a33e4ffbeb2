package di

import (
	"time"

	"seatmap/config"
	"seatmap/internal/layout"
)

func provideLayoutManager(cfg *config.Config) *layout.Manager {
	scene := layout.Scene{
		Width:    cfg.Scene.Width,
		Height:   cfg.Scene.Height,
		GridSize: cfg.Scene.GridSize,
	}

	return layout.NewManager(scene, time.Duration(cfg.Scene.SessionTTLSeconds)*time.Second)
}
