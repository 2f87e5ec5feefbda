package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-product-analytics/internal/config"
	"go-product-analytics/internal/model"
	"go-product-analytics/internal/pipeline"
	"go-product-analytics/internal/store"
	"go-product-analytics/pkg/router"
	"go-product-analytics/pkg/utils"
)

const previewRows = 10

// In-memory dataset registry. Tables live for the lifetime of the
// process; the store only keeps their metadata.
var (
	regMu  sync.RWMutex
	tables = make(map[string]*model.Table)

	outputs        = utils.NewOutputManager("exports")
	maxUploadBytes = int64(64 << 20)
)

// Configure applies server configuration to the handler package.
func Configure(cfg *config.Config) {
	outputs = utils.NewOutputManager(cfg.ExportDir)
	maxUploadBytes = cfg.MaxUploadBytes()
}

func registerTable(datasetID string, t *model.Table) {
	regMu.Lock()
	defer regMu.Unlock()
	tables[datasetID] = t
}

func lookupTable(datasetID string) (*model.Table, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	t, ok := tables[datasetID]
	return t, ok
}

// UploadDataset ingests a product CSV
// @Summary Upload a product dataset
// @Description Parse an uploaded CSV into a normalized table, derive margin/revenue/profit and register it for querying
// @Tags datasets
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Product CSV export"
// @Success 200 {object} map[string]interface{} "Dataset registered"
// @Failure 400 {object} map[string]interface{} "Missing or malformed file"
// @Router /datasets [post]
func UploadDataset(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing file upload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read upload", http.StatusBadRequest)
		return
	}

	table, err := pipeline.LoadBytes(data)
	if err != nil {
		// Malformed input is terminal for this upload
		http.Error(w, "Unable to parse file as CSV", http.StatusBadRequest)
		return
	}

	datasetID := uuid.New().String()
	if err := store.SaveDataset(datasetID, header.Filename, pipeline.ContentHash(data), len(table.Records), table.Dropped); err != nil {
		http.Error(w, "Failed to save dataset", http.StatusInternalServerError)
		return
	}
	registerTable(datasetID, table)

	fmt.Printf("📄 Dataset %s loaded: %d rows kept, %d dropped\n", datasetID, len(table.Records), table.Dropped)

	writeJSON(w, map[string]interface{}{
		"message":   "Dataset uploaded successfully!",
		"datasetID": datasetID,
		"name":      header.Filename,
		"rows":      len(table.Records),
		"dropped":   table.Dropped,
		"schema":    table.Schema,
		"createdAt": time.Now().UTC(),
	})
}

// ListDatasets retrieves all uploaded datasets
// @Summary List datasets
// @Tags datasets
// @Produce json
// @Success 200 {array} map[string]interface{} "Dataset metadata"
// @Router /datasets [get]
func ListDatasets(w http.ResponseWriter, r *http.Request) {
	datasets, err := store.ListDatasets()
	if err != nil {
		http.Error(w, "Failed to fetch datasets", http.StatusInternalServerError)
		return
	}
	writeJSON(w, datasets)
}

// GetDataset retrieves one dataset's metadata
// @Summary Get dataset
// @Tags datasets
// @Produce json
// @Param id path string true "Dataset ID"
// @Success 200 {object} map[string]interface{} "Dataset metadata"
// @Failure 404 {object} map[string]interface{} "Dataset not found"
// @Router /datasets/{id} [get]
func GetDataset(w http.ResponseWriter, r *http.Request) {
	datasetID := router.PathSegment(r, 3)
	if datasetID == "" {
		http.Error(w, "Dataset ID is required", http.StatusBadRequest)
		return
	}

	dataset, err := store.GetDataset(datasetID)
	if err != nil {
		http.Error(w, "Dataset not found", http.StatusNotFound)
		return
	}
	_, loaded := lookupTable(datasetID)
	dataset["loaded"] = loaded
	writeJSON(w, dataset)
}

// GetDatasetMetrics computes the metrics snapshot of the full table
// @Summary Get dataset metrics
// @Tags datasets
// @Produce json
// @Param id path string true "Dataset ID"
// @Success 200 {object} model.MetricsSnapshot "Metrics snapshot"
// @Failure 404 {object} map[string]interface{} "Dataset not found"
// @Router /datasets/{id}/metrics [get]
func GetDatasetMetrics(w http.ResponseWriter, r *http.Request) {
	table, datasetID, ok := tableFromPath(w, r)
	if !ok {
		return
	}

	snap := pipeline.ComputeMetrics(table.View())
	if err := store.SaveSnapshot(datasetID, snap); err != nil {
		fmt.Printf("❌ Failed to persist snapshot for %s: %v\n", datasetID, err)
	}
	writeJSON(w, snap)
}

// QueryDataset applies filter predicates and returns the dashboard payload
// @Summary Query a dataset
// @Description Apply category/brand/price predicates and return the filtered metrics, previews and chart aggregates
// @Tags datasets
// @Accept json
// @Produce json
// @Param id path string true "Dataset ID"
// @Param filter body model.Filter true "Filter predicates"
// @Success 200 {object} map[string]interface{} "Dashboard payload"
// @Failure 400 {object} map[string]interface{} "Invalid filter payload"
// @Router /datasets/{id}/query [post]
func QueryDataset(w http.ResponseWriter, r *http.Request) {
	table, _, ok := tableFromPath(w, r)
	if !ok {
		return
	}

	filter, err := decodeFilter(r)
	if err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	view := pipeline.Apply(table, filter)
	preview := view.Records
	if len(preview) > previewRows {
		preview = preview[:previewRows]
	}

	writeJSON(w, map[string]interface{}{
		"rows":       len(view.Records),
		"preview":    preview,
		"metrics":    pipeline.ComputeMetrics(view),
		"aggregates": pipeline.AggregateAll(view),
	})
}

// GetDatasetAggregate runs one aggregation query over the full table
// @Summary Get one aggregate
// @Tags datasets
// @Produce json
// @Param id path string true "Dataset ID"
// @Param kind query string true "Aggregation kind" Enums(units_by_category, profit_by_brand, margin_vs_price, rating_distribution, top_profit)
// @Success 200 {object} map[string]interface{} "Aggregate result"
// @Failure 400 {object} map[string]interface{} "Unknown aggregation kind"
// @Router /datasets/{id}/aggregates [get]
func GetDatasetAggregate(w http.ResponseWriter, r *http.Request) {
	table, _, ok := tableFromPath(w, r)
	if !ok {
		return
	}

	kind := model.AggregateKind(r.URL.Query().Get("kind"))
	result, err := pipeline.Aggregate(table.View(), kind)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, map[string]interface{}{
		"kind":   kind,
		"result": result,
	})
}

// ExportDataset writes the filtered view to a downloadable file
// @Summary Export a filtered dataset
// @Description Apply filter predicates and serialize the resulting view as CSV or XLSX
// @Tags datasets
// @Accept json
// @Produce json
// @Param id path string true "Dataset ID"
// @Param format query string false "Export format" Enums(csv, xlsx) default(csv)
// @Param filter body model.Filter false "Filter predicates"
// @Success 200 {object} map[string]interface{} "Export recorded"
// @Failure 400 {object} map[string]interface{} "Invalid filter or format"
// @Router /datasets/{id}/export [post]
func ExportDataset(w http.ResponseWriter, r *http.Request) {
	table, datasetID, ok := tableFromPath(w, r)
	if !ok {
		return
	}

	filter, err := decodeFilter(r)
	if err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	view := pipeline.Apply(table, filter)

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		http.Error(w, "Unsupported export format: "+format, http.StatusBadRequest)
		return
	}

	fileName := "filtered_products." + format
	filePath, err := outputs.ExportFilePath(datasetID, fileName)
	if err != nil {
		http.Error(w, "Failed to prepare export", http.StatusInternalServerError)
		return
	}

	if format == "csv" {
		err = pipeline.WriteCSVFile(view, filePath)
	} else {
		err = pipeline.WriteXLSXFile(view, filePath)
	}
	if err != nil {
		http.Error(w, "Export failed", http.StatusInternalServerError)
		return
	}

	if err := store.SaveExport(datasetID, fileName, filePath, format, len(view.Records)); err != nil {
		fmt.Printf("❌ Failed to record export for %s: %v\n", datasetID, err)
	}

	fmt.Printf("💾 Exported %d records to %s\n", len(view.Records), filePath)

	writeJSON(w, map[string]interface{}{
		"message":     "Export completed successfully!",
		"datasetID":   datasetID,
		"fileName":    fileName,
		"format":      format,
		"recordCount": len(view.Records),
		"downloadURL": outputs.DownloadURL(datasetID, fileName),
	})
}

// GetDatasetExports lists the export history for a dataset
// @Summary List exports
// @Tags datasets
// @Produce json
// @Param id path string true "Dataset ID"
// @Success 200 {object} map[string]interface{} "Export history"
// @Router /datasets/{id}/exports [get]
func GetDatasetExports(w http.ResponseWriter, r *http.Request) {
	datasetID := router.PathSegment(r, 3)
	if datasetID == "" {
		http.Error(w, "Dataset ID is required", http.StatusBadRequest)
		return
	}

	exports, err := store.GetExports(datasetID)
	if err != nil {
		http.Error(w, "Failed to retrieve exports", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{
		"datasetID": datasetID,
		"exports":   exports,
		"count":     len(exports),
	})
}

// DownloadFile serves an exported file as an attachment
// @Summary Download an export
// @Tags files
// @Produce application/octet-stream
// @Param id path string true "Dataset ID"
// @Param filename path string true "File name"
// @Success 200 {file} file "File download"
// @Failure 404 {object} map[string]interface{} "File not found"
// @Router /download/{id}/{filename} [get]
func DownloadFile(w http.ResponseWriter, r *http.Request) {
	datasetID := router.PathSegment(r, 3)
	fileName := router.PathSegment(r, 4)
	if datasetID == "" || fileName == "" {
		http.Error(w, "Dataset ID and file name are required", http.StatusBadRequest)
		return
	}

	filePath := outputs.FileLocation(datasetID, fileName)
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.Header().Set("Content-Type", "application/octet-stream")
	http.ServeFile(w, r, filePath)
}

// tableFromPath resolves the dataset ID in the request path to its
// in-memory table, writing the error response itself on failure.
func tableFromPath(w http.ResponseWriter, r *http.Request) (*model.Table, string, bool) {
	datasetID := router.PathSegment(r, 3)
	if datasetID == "" {
		http.Error(w, "Dataset ID is required", http.StatusBadRequest)
		return nil, "", false
	}
	table, ok := lookupTable(datasetID)
	if !ok {
		http.Error(w, "Dataset not loaded; upload it again", http.StatusNotFound)
		return nil, "", false
	}
	return table, datasetID, true
}

// decodeFilter reads filter predicates from the request body. An empty
// body means the identity filter.
func decodeFilter(r *http.Request) (model.Filter, error) {
	var f model.Filter
	err := json.NewDecoder(r.Body).Decode(&f)
	if err != nil && !errors.Is(err, io.EOF) {
		return model.Filter{}, err
	}
	return f, nil
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}
