package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputManager handles export file organization and path management
type OutputManager struct {
	BaseOutputDir string
}

// NewOutputManager creates a new output manager
func NewOutputManager(baseOutputDir string) *OutputManager {
	return &OutputManager{BaseOutputDir: baseOutputDir}
}

// CreateDatasetDir creates a per-dataset directory for exported files
func (om *OutputManager) CreateDatasetDir(datasetID string) (string, error) {
	dir := filepath.Join(om.BaseOutputDir, datasetID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	return dir, nil
}

// ExportFilePath generates a full path for an export file
func (om *OutputManager) ExportFilePath(datasetID, fileName string) (string, error) {
	dir, err := om.CreateDatasetDir(datasetID)
	if err != nil {
		return "", err
	}
	// Strip any path separators smuggled in through the filename
	return filepath.Join(dir, filepath.Base(fileName)), nil
}

// FileLocation resolves where an export file lives without creating any
// directories, for read paths like downloads
func (om *OutputManager) FileLocation(datasetID, fileName string) string {
	return filepath.Join(om.BaseOutputDir, datasetID, filepath.Base(fileName))
}

// DownloadURL generates the download URL for an exported file
func (om *OutputManager) DownloadURL(datasetID, fileName string) string {
	return fmt.Sprintf("/api/v1/download/%s/%s", datasetID, filepath.Base(fileName))
}

// FileType determines the export format from a filename extension
func (om *OutputManager) FileType(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return "csv"
	case ".xlsx":
		return "xlsx"
	default:
		return "unknown"
	}
}

// FileSize returns the size of an exported file in bytes
func (om *OutputManager) FileSize(filePath string) (int64, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return 0, err
	}
	return fileInfo.Size(), nil
}
