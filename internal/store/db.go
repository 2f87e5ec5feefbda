package store

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"go-product-analytics/internal/model"
)

var db *sql.DB

// InitDB opens the metadata database and creates the schema. Uploaded
// tables themselves stay in memory; only dataset metadata, metric
// snapshots and the export log are persisted.
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	datasetTable := `
	CREATE TABLE IF NOT EXISTS datasets (
		id TEXT PRIMARY KEY,
		name TEXT,
		content_hash TEXT,
		kept_rows INTEGER,
		dropped_rows INTEGER,
		created_at DATETIME
	);
	`
	snapshotTable := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		dataset_id TEXT,
		metrics TEXT,
		created_at DATETIME
	);
	`
	exportTable := `
	CREATE TABLE IF NOT EXISTS exports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		dataset_id TEXT,
		file_name TEXT,
		file_path TEXT,
		format TEXT,
		record_count INTEGER,
		created_at DATETIME
	);
	`

	if _, err := db.Exec(datasetTable); err != nil {
		return err
	}
	if _, err := db.Exec(snapshotTable); err != nil {
		return err
	}
	if _, err := db.Exec(exportTable); err != nil {
		return err
	}

	return nil
}

// SaveDataset stores metadata for a newly uploaded dataset
func SaveDataset(datasetID, name, contentHash string, keptRows, droppedRows int) error {
	_, err := db.Exec(`INSERT INTO datasets (id, name, content_hash, kept_rows, dropped_rows, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		datasetID, name, contentHash, keptRows, droppedRows, time.Now().UTC())
	return err
}

// ListDatasets returns all uploaded datasets, newest first
func ListDatasets() ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT id, name, kept_rows, dropped_rows, created_at FROM datasets ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var datasets []map[string]interface{}
	for rows.Next() {
		var id, name string
		var keptRows, droppedRows int
		var createdAt time.Time
		if err := rows.Scan(&id, &name, &keptRows, &droppedRows, &createdAt); err != nil {
			return nil, err
		}
		datasets = append(datasets, map[string]interface{}{
			"id":          id,
			"name":        name,
			"keptRows":    keptRows,
			"droppedRows": droppedRows,
			"createdAt":   createdAt,
		})
	}
	return datasets, rows.Err()
}

// GetDataset fetches one dataset's metadata
func GetDataset(datasetID string) (map[string]interface{}, error) {
	var name, contentHash string
	var keptRows, droppedRows int
	var createdAt time.Time

	err := db.QueryRow(`SELECT name, content_hash, kept_rows, dropped_rows, created_at FROM datasets WHERE id = ?`, datasetID).
		Scan(&name, &contentHash, &keptRows, &droppedRows, &createdAt)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id":          datasetID,
		"name":        name,
		"contentHash": contentHash,
		"keptRows":    keptRows,
		"droppedRows": droppedRows,
		"createdAt":   createdAt,
	}, nil
}

// SaveSnapshot records a computed metrics snapshot for a dataset
func SaveSnapshot(datasetID string, snap model.MetricsSnapshot) error {
	metricsJSON, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	_, err = db.Exec(`INSERT INTO snapshots (dataset_id, metrics, created_at) VALUES (?, ?, ?)`,
		datasetID, metricsJSON, time.Now().UTC())
	return err
}

// SaveExport records a completed export operation
func SaveExport(datasetID, fileName, filePath, format string, recordCount int) error {
	_, err := db.Exec(`INSERT INTO exports (dataset_id, file_name, file_path, format, record_count, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		datasetID, fileName, filePath, format, recordCount, time.Now().UTC())
	return err
}

// GetExports returns the export history for a dataset, newest first
func GetExports(datasetID string) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT file_name, file_path, format, record_count, created_at FROM exports WHERE dataset_id = ? ORDER BY created_at DESC`, datasetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exports []map[string]interface{}
	for rows.Next() {
		var fileName, filePath, format string
		var recordCount int
		var createdAt time.Time
		if err := rows.Scan(&fileName, &filePath, &format, &recordCount, &createdAt); err != nil {
			return nil, err
		}
		exports = append(exports, map[string]interface{}{
			"fileName":    fileName,
			"filePath":    filePath,
			"format":      format,
			"recordCount": recordCount,
			"createdAt":   createdAt,
		})
	}
	return exports, rows.Err()
}
