package api

import (
	"go-product-analytics/internal/api/handler"
	"go-product-analytics/internal/config"
	"go-product-analytics/internal/store"
	"go-product-analytics/pkg/router"
)

// RegisterRoutes wires the dataset API onto the router. More specific
// routes come first because the router matches in registration order.
func RegisterRoutes(r *router.Router) {
	r.POST("/api/v1/datasets", handler.UploadDataset)
	r.GET("/api/v1/datasets", handler.ListDatasets)
	r.GET("/api/v1/datasets/*/metrics", handler.GetDatasetMetrics)
	r.POST("/api/v1/datasets/*/query", handler.QueryDataset)
	r.GET("/api/v1/datasets/*/aggregates", handler.GetDatasetAggregate)
	r.POST("/api/v1/datasets/*/export", handler.ExportDataset)
	r.GET("/api/v1/datasets/*/exports", handler.GetDatasetExports)
	r.GET("/api/v1/datasets/*", handler.GetDataset)
	r.GET("/api/v1/download/*/*", handler.DownloadFile)
}

// Serve initializes the store, applies configuration and runs the HTTP
// server until it fails.
func Serve(cfg *config.Config) error {
	if err := store.InitDB(cfg.DBPath); err != nil {
		return err
	}
	handler.Configure(cfg)

	r := router.New()
	RegisterRoutes(r)
	return r.Start(cfg.ListenAddr)
}
